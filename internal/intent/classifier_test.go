package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/despacholegal-ai/intake-platform/internal/model"
)

func TestClassifyAppointment(t *testing.T) {
	scores := Classify("quiero una cita con un abogado", nil)
	top, score := scores.Top()
	assert.Equal(t, Appointment, top)
	assert.Greater(t, score, 0.6)
}

func TestClassifyGreeting(t *testing.T) {
	scores := Classify("hola, buenos días", nil)
	assert.Greater(t, scores[Greeting], 0.5)
}

func TestClassifyNoMatch(t *testing.T) {
	scores := Classify("xyzzy", nil)
	top, score := scores.Top()
	assert.Equal(t, GeneralQuestion, top)
	assert.Equal(t, 0.0, score)
}

func TestClassifyHistoryBoost(t *testing.T) {
	history := []model.ChatMessage{
		{Text: "quiero agendar una visita", IsUser: true},
	}
	without := Classify("para el martes", nil)
	with := Classify("para el martes", history)
	assert.InDelta(t, without[Appointment]+historyBoost, with[Appointment], 1e-9)
}

func TestClassifyHistoryOnlyUserTurns(t *testing.T) {
	history := []model.ChatMessage{
		{Text: "¿Te gustaría agendar una cita?", IsUser: false},
	}
	scores := Classify("para el martes", history)
	assert.Equal(t, 0.0, scores[Appointment])
}

func TestClassifyHistoryWindow(t *testing.T) {
	// The boosting window is the last 3 turns; older mentions don't count.
	history := []model.ChatMessage{
		{Text: "quiero cita", IsUser: true},
		{Text: "claro", IsUser: false},
		{Text: "mmm", IsUser: true},
		{Text: "¿algo más?", IsUser: false},
		{Text: "mmm", IsUser: true},
	}
	scores := Classify("para el martes", history)
	assert.Equal(t, 0.0, scores[Appointment])
}

func TestTopTieBreaksByPriority(t *testing.T) {
	s := Scores{Appointment: 0.5, Pricing: 0.5}
	top, _ := s.Top()
	assert.Equal(t, Appointment, top)
}

func TestSentiment(t *testing.T) {
	assert.Equal(t, model.SentimentPositive, Sentiment("excelente, muchas gracias"))
	assert.Equal(t, model.SentimentNegative, Sentiment("esto es terrible, estoy molesto"))
	assert.Equal(t, model.SentimentNeutral, Sentiment("necesito información"))
}
