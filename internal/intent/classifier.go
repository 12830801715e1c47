// Package intent scores free text against a fixed intent vocabulary using
// weighted keyword patterns, adjusted by recent conversation history.
package intent

import (
	"strings"

	"github.com/despacholegal-ai/intake-platform/internal/model"
)

// Intent labels, in fixed priority order. Top() walks this slice, so exact
// score ties resolve deterministically to the earlier label.
const (
	Appointment        = "appointment"
	Greeting           = "greeting"
	Farewell           = "farewell"
	InformationRequest = "information_request"
	Complaint          = "complaint"
	Thanks             = "thanks"
	Help               = "help"
	Emergency          = "emergency"
	DocumentRequest    = "document_request"
	Pricing            = "pricing"
	Location           = "location"
	Schedule           = "schedule"
	GeneralQuestion    = "general_question"
)

// Labels is the closed intent vocabulary in priority order.
var Labels = []string{
	Appointment,
	Greeting,
	Farewell,
	InformationRequest,
	Complaint,
	Thanks,
	Help,
	Emergency,
	DocumentRequest,
	Pricing,
	Location,
	Schedule,
	GeneralQuestion,
}

var patterns = map[string][]string{
	Appointment:        {"agendar cita", "programar cita", "cita con abogado", "consultar abogado", "quiero una cita", "necesito cita", "hacer cita", "quiero agendar", "necesito agendar", "quiero programar", "necesito programar", "cita", "quiero cita", "necesito una cita"},
	Greeting:           {"hola", "buenos días", "buenas tardes", "buenas noches", "saludos", "hey", "buen día"},
	Farewell:           {"adiós", "hasta luego", "nos vemos", "chao", "bye", "hasta la vista", "que tengas buen día"},
	InformationRequest: {"información", "dime", "cuéntame", "qué", "cómo", "dónde", "cuándo", "por qué", "explica"},
	Complaint:          {"queja", "problema", "mal", "pésimo", "terrible", "no funciona", "error", "molesto"},
	Thanks:             {"gracias", "thank you", "muchas gracias", "te agradezco", "muy agradecido"},
	Help:               {"ayuda", "help", "socorro", "necesito ayuda", "no sé qué hacer", "perdido"},
	Emergency:          {"emergencia", "urgente", "inmediato", "ahora", "pronto", "crítico", "grave"},
	DocumentRequest:    {"documento", "papeles", "escritura", "contrato", "demanda", "expediente", "certificado"},
	Pricing:            {"costo", "precio", "honorarios", "cobran", "tarifa", "pago", "cuánto cuesta", "valor"},
	Location:           {"dónde", "ubicación", "dirección", "lugar", "sitio", "oficina", "despacho"},
	Schedule:           {"horario", "atención", "abierto", "cerrado", "cuándo", "días", "horas"},
	GeneralQuestion:    {"pregunta", "duda", "curiosidad", "saber", "conocer", "entender"},
}

// History phrasings that boost appointment/pricing confidence when found
// in the user's recent turns.
var appointmentHistoryWords = []string{"agendar cita", "programar cita", "cita con abogado", "quiero agendar", "necesito agendar", "cita", "quiero cita", "necesito una cita"}
var pricingHistoryWords = []string{"costo", "precio", "honorarios"}

const historyBoost = 0.3

// Scores maps each intent label to a confidence in [0,1] (history boosts
// are applied after capping and may exceed 1).
type Scores map[string]float64

// Top returns the argmax intent and its score. Ties resolve by Labels
// order.
func (s Scores) Top() (string, float64) {
	best := GeneralQuestion
	bestScore := 0.0
	for _, label := range Labels {
		if s[label] > bestScore {
			best = label
			bestScore = s[label]
		}
	}
	return best, bestScore
}

// Classify scores text against every intent. Any pattern match boosts the
// intent to at least 0.5; more matches raise confidence up to the 1.0 cap.
// The last 3 history turns authored by the user add 0.3 to the appointment
// and pricing intents when they carry related phrasing.
func Classify(text string, history []model.ChatMessage) Scores {
	lower := strings.ToLower(strings.TrimSpace(text))

	scores := make(Scores, len(Labels))
	for _, label := range Labels {
		scores[label] = 0
	}

	for label, pats := range patterns {
		matches := 0
		for _, p := range pats {
			if strings.Contains(lower, p) {
				matches++
			}
		}
		if matches > 0 {
			score := float64(matches)/float64(len(pats)) + 0.5
			if score > 1.0 {
				score = 1.0
			}
			scores[label] = score
		}
	}

	if len(history) > 0 {
		recent := history
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}
		for _, msg := range recent {
			if !msg.IsUser {
				continue
			}
			msgLower := strings.ToLower(msg.Text)
			if containsAny(msgLower, appointmentHistoryWords) {
				scores[Appointment] += historyBoost
			}
			if containsAny(msgLower, pricingHistoryWords) {
				scores[Pricing] += historyBoost
			}
		}
	}

	return scores
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
