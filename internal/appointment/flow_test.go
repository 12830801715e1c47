package appointment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/despacholegal-ai/intake-platform/internal/backend"
	"github.com/despacholegal-ai/intake-platform/internal/model"
	"github.com/despacholegal-ai/intake-platform/pkg/logger"
)

type fakeSubmitter struct {
	err      error
	calls    int
	received *model.AppointmentRecord
}

func (f *fakeSubmitter) SubmitAppointment(_ context.Context, record *model.AppointmentRecord) (*model.SubmissionResult, error) {
	f.calls++
	f.received = record
	if f.err != nil {
		return nil, f.err
	}
	return &model.SubmissionResult{ID: "apt-1", Status: "pending", CreatedAt: time.Now().Format(time.RFC3339)}, nil
}

func newTestFlow(sub *fakeSubmitter) *Flow {
	f := NewFlow(sub, nil, logger.NewNop())
	f.now = func() time.Time {
		return time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC)
	}
	return f
}

// drive feeds messages through the full collection sequence up to the
// confirmation summary.
func drive(t *testing.T, f *Flow, sess *model.ConversationSession, inputs []string) string {
	t.Helper()
	var reply string
	for _, in := range inputs {
		reply, _ = f.Handle(context.Background(), "u1", sess, in)
	}
	return reply
}

func collectInputs() []string {
	return []string{"Juan Pérez López", "28", "612345678", "juan@example.com", "me despidieron del trabajo", "1"}
}

func TestFlowHappyPath(t *testing.T) {
	sub := &fakeSubmitter{}
	f := newTestFlow(sub)
	sess := model.NewConversationSession()
	ctx := context.Background()

	reply := f.Start(sess)
	assert.Contains(t, reply, "¿Cuál es tu nombre completo?")
	assert.Equal(t, model.StageCollecting, sess.Stage)

	reply, _ = f.Handle(ctx, "u1", sess, "Juan Pérez López")
	assert.Contains(t, reply, "Gracias Juan Pérez López")

	reply, _ = f.Handle(ctx, "u1", sess, "28")
	assert.Contains(t, reply, "teléfono")

	reply, _ = f.Handle(ctx, "u1", sess, "612345678")
	assert.Contains(t, reply, "correo electrónico")

	reply, _ = f.Handle(ctx, "u1", sess, "juan@example.com")
	assert.Contains(t, reply, "motivo de tu consulta")

	reply, _ = f.Handle(ctx, "u1", sess, "me despidieron del trabajo")
	assert.Contains(t, reply, "Opciones disponibles")
	require.Len(t, sess.DateOptions, 8)
	// Area derived from the reason, never asked.
	assert.Equal(t, model.AreaLaboral, sess.Record.ConsultationType)

	reply, _ = f.Handle(ctx, "u1", sess, "1")
	assert.Contains(t, reply, "Resumen de tu cita")
	assert.Contains(t, reply, "Juan Pérez López")
	assert.Contains(t, reply, "Derecho Laboral")
	assert.Equal(t, model.StageConfirmation, sess.Stage)

	reply, done := f.Handle(ctx, "u1", sess, "sí")
	assert.True(t, done)
	assert.Contains(t, reply, "agendada exitosamente")
	assert.Equal(t, model.StageCompleted, sess.Stage)
	assert.Equal(t, 1, sub.calls)
	require.NotNil(t, sub.received.PreferredDate)
	assert.Equal(t, sess.DateOptions[0], *sub.received.PreferredDate)
}

func TestFlowValidationRetries(t *testing.T) {
	f := newTestFlow(&fakeSubmitter{})
	sess := model.NewConversationSession()
	ctx := context.Background()
	f.Start(sess)

	// Each invalid answer re-asks without advancing.
	reply, _ := f.Handle(ctx, "u1", sess, "Juan")
	assert.Contains(t, reply, "nombre completo")
	assert.Empty(t, sess.Record.FullName)

	f.Handle(ctx, "u1", sess, "Juan Pérez")

	reply, _ = f.Handle(ctx, "u1", sess, "16")
	assert.Contains(t, reply, "mayor de edad")
	assert.Zero(t, sess.Record.Age)

	reply, _ = f.Handle(ctx, "u1", sess, "120")
	assert.Contains(t, reply, "entre 18 y 100")

	reply, _ = f.Handle(ctx, "u1", sess, "muchos")
	assert.Contains(t, reply, "solo el número")

	f.Handle(ctx, "u1", sess, "30")

	reply, _ = f.Handle(ctx, "u1", sess, "123")
	assert.Contains(t, reply, "teléfono válido")

	f.Handle(ctx, "u1", sess, "612 345 678")
	assert.Equal(t, "612345678", sess.Record.Phone)

	reply, _ = f.Handle(ctx, "u1", sess, "sin correo")
	assert.Contains(t, reply, "email válido")
}

func TestFlowDateSelectionErrors(t *testing.T) {
	f := newTestFlow(&fakeSubmitter{})
	sess := model.NewConversationSession()
	ctx := context.Background()
	f.Start(sess)
	drive(t, f, sess, []string{"Juan Pérez", "30", "612345678", "juan@example.com", "herencia de mi padre"})

	before := append([]time.Time(nil), sess.DateOptions...)

	// Out of range and non-numeric get distinct guidance, and the option
	// list never changes underneath the user.
	reply, _ := f.Handle(ctx, "u1", sess, "99")
	assert.Contains(t, reply, "selecciona una opción válida (1-8)")

	reply, _ = f.Handle(ctx, "u1", sess, "mañana")
	assert.Contains(t, reply, "responde con el número de la opción (1-8)")

	assert.Equal(t, before, sess.DateOptions)
	assert.Equal(t, model.StageCollecting, sess.Stage)

	reply, _ = f.Handle(ctx, "u1", sess, "3")
	assert.Contains(t, reply, "Resumen de tu cita")
	assert.Equal(t, before[2], *sess.Record.PreferredDate)
}

func TestFlowDateByLabel(t *testing.T) {
	f := newTestFlow(&fakeSubmitter{})
	sess := model.NewConversationSession()
	f.Start(sess)
	drive(t, f, sess, []string{"Juan Pérez", "30", "612345678", "juan@example.com", "herencia de mi padre"})

	label := FormatDateOption(sess.DateOptions[4])
	reply, _ := f.Handle(context.Background(), "u1", sess, label)
	assert.Contains(t, reply, "Resumen de tu cita")
	assert.Equal(t, sess.DateOptions[4], *sess.Record.PreferredDate)
}

func TestFlowEditField(t *testing.T) {
	f := newTestFlow(&fakeSubmitter{})
	sess := model.NewConversationSession()
	ctx := context.Background()
	f.Start(sess)
	drive(t, f, sess, collectInputs())

	reply, _ := f.Handle(ctx, "u1", sess, "no")
	assert.Contains(t, reply, "Qué te gustaría cambiar")
	assert.Equal(t, model.StageEditing, sess.Stage)

	reply, _ = f.Handle(ctx, "u1", sess, "4")
	assert.Contains(t, reply, "correo electrónico")
	assert.Contains(t, reply, "Actualmente: juan@example.com")

	reply, _ = f.Handle(ctx, "u1", sess, "nuevo@example.com")
	assert.Contains(t, reply, "Resumen de tu cita")
	assert.Contains(t, reply, "nuevo@example.com")
	assert.Equal(t, model.StageConfirmation, sess.Stage)

	// Only the edited field changed.
	assert.Equal(t, "Juan Pérez López", sess.Record.FullName)
	assert.Equal(t, 28, sess.Record.Age)
}

func TestFlowEditReasonRederivesArea(t *testing.T) {
	f := newTestFlow(&fakeSubmitter{})
	sess := model.NewConversationSession()
	ctx := context.Background()
	f.Start(sess)
	drive(t, f, sess, collectInputs())
	require.Equal(t, model.AreaLaboral, sess.Record.ConsultationType)

	f.Handle(ctx, "u1", sess, "no")
	f.Handle(ctx, "u1", sess, "5")
	reply, _ := f.Handle(ctx, "u1", sess, "divorcio y custodia de mis hijos")
	assert.Contains(t, reply, "Derecho Familiar")
	assert.Equal(t, model.AreaFamiliar, sess.Record.ConsultationType)
}

func TestFlowEditAreaByNumber(t *testing.T) {
	f := newTestFlow(&fakeSubmitter{})
	sess := model.NewConversationSession()
	ctx := context.Background()
	f.Start(sess)
	drive(t, f, sess, collectInputs())

	f.Handle(ctx, "u1", sess, "no")
	reply, _ := f.Handle(ctx, "u1", sess, "6")
	assert.Contains(t, reply, "área del derecho")

	reply, _ = f.Handle(ctx, "u1", sess, "99")
	assert.Contains(t, reply, "selecciona un número válido")

	reply, _ = f.Handle(ctx, "u1", sess, "5")
	assert.Contains(t, reply, "Resumen de tu cita")
	assert.Equal(t, model.AllPracticeAreas[4], sess.Record.ConsultationType)
}

func TestFlowEditMenuValidation(t *testing.T) {
	f := newTestFlow(&fakeSubmitter{})
	sess := model.NewConversationSession()
	ctx := context.Background()
	f.Start(sess)
	drive(t, f, sess, collectInputs())

	f.Handle(ctx, "u1", sess, "no")

	reply, _ := f.Handle(ctx, "u1", sess, "9")
	assert.Contains(t, reply, "número válido del 1 al 8")

	reply, _ = f.Handle(ctx, "u1", sess, "el nombre")
	assert.Contains(t, reply, "número de la opción")
	assert.Equal(t, model.StageEditing, sess.Stage)
}

func TestFlowStartOver(t *testing.T) {
	f := newTestFlow(&fakeSubmitter{})
	sess := model.NewConversationSession()
	ctx := context.Background()
	f.Start(sess)
	drive(t, f, sess, collectInputs())

	f.Handle(ctx, "u1", sess, "no")
	reply, _ := f.Handle(ctx, "u1", sess, "8")
	assert.Contains(t, reply, "Empecemos de nuevo")
	assert.Equal(t, model.StageCollecting, sess.Stage)
	assert.Empty(t, sess.Record.FullName)
	assert.Zero(t, sess.Record.Age)
	assert.Nil(t, sess.Record.PreferredDate)
	// Options are regenerated on the next pass, not reused.
	assert.Nil(t, sess.DateOptions)
}

func TestFlowConfirmationReprompt(t *testing.T) {
	f := newTestFlow(&fakeSubmitter{})
	sess := model.NewConversationSession()
	ctx := context.Background()
	f.Start(sess)
	drive(t, f, sess, collectInputs())

	reply, done := f.Handle(ctx, "u1", sess, "quizás")
	assert.False(t, done)
	assert.Contains(t, reply, "responde 'sí' para confirmar")
	assert.Equal(t, model.StageConfirmation, sess.Stage)
}

func TestFlowSubmitRejectedKeepsSession(t *testing.T) {
	sub := &fakeSubmitter{err: &backend.SubmissionError{Status: 500, Body: "boom"}}
	f := newTestFlow(sub)
	sess := model.NewConversationSession()
	ctx := context.Background()
	f.Start(sess)
	drive(t, f, sess, collectInputs())

	reply, done := f.Handle(ctx, "u1", sess, "sí")
	assert.False(t, done)
	assert.Contains(t, reply, "Error 500")
	assert.Equal(t, model.StageConfirmation, sess.Stage)

	// The user can simply confirm again.
	sub.err = nil
	reply, done = f.Handle(ctx, "u1", sess, "sí")
	assert.True(t, done)
	assert.Contains(t, reply, "agendada exitosamente")
	assert.Equal(t, 2, sub.calls)
}

func TestFlowSubmitNetworkError(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("connection refused")}
	f := newTestFlow(sub)
	sess := model.NewConversationSession()
	ctx := context.Background()
	f.Start(sess)
	drive(t, f, sess, collectInputs())

	reply, done := f.Handle(ctx, "u1", sess, "sí")
	assert.False(t, done)
	assert.Contains(t, reply, "connection refused")
	assert.Equal(t, model.StageConfirmation, sess.Stage)
}

func TestStartsAppointment(t *testing.T) {
	assert.True(t, StartsAppointment("quiero agendar una visita"))
	assert.True(t, StartsAppointment("necesito una CITA"))
	assert.False(t, StartsAppointment("hola"))
}

func TestDeriveArea(t *testing.T) {
	tests := []struct {
		reason string
		area   model.PracticeArea
	}{
		{"me despidieron del trabajo", model.AreaLaboral},
		{"divorcio complicado", model.AreaFamiliar},
		{"herencia de mi abuelo", model.AreaCivil},
		{"constituir una sociedad", model.AreaMercantil},
		{"me pusieron una multa", model.AreaAdministrativo},
		{"algo que no encaja", model.AreaCivil},
	}
	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			assert.Equal(t, tt.area, DeriveArea(tt.reason))
		})
	}
}

func TestDetectArea(t *testing.T) {
	area, explanation, ok := DetectArea("tengo un problema penal")
	assert.True(t, ok)
	assert.Equal(t, model.AreaPenal, area)
	assert.True(t, strings.Contains(explanation, "Derecho Penal"))

	_, _, ok = DetectArea("hola")
	assert.False(t, ok)
}
