// Package dialogue routes each incoming message to the right subsystem:
// session commands, the appointment flow, intent-keyed replies, the
// knowledge base, or the fallback menu.
package dialogue

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/despacholegal-ai/intake-platform/internal/appointment"
	"github.com/despacholegal-ai/intake-platform/internal/events"
	"github.com/despacholegal-ai/intake-platform/internal/extract"
	"github.com/despacholegal-ai/intake-platform/internal/intent"
	"github.com/despacholegal-ai/intake-platform/internal/knowledge"
	"github.com/despacholegal-ai/intake-platform/internal/model"
	"github.com/despacholegal-ai/intake-platform/internal/session"
	"github.com/despacholegal-ai/intake-platform/pkg/logger"
	"github.com/despacholegal-ai/intake-platform/pkg/metrics"
)

const resetAck = "🔄 Conversación reiniciada. ¿En qué puedo ayudarte?"

var resetCommands = map[string]bool{
	"reset":            true,
	"reiniciar":        true,
	"limpiar":          true,
	"nuevo":            true,
	"empezar de nuevo": true,
}

var appointmentShortcuts = map[string]bool{"1": true, "1️⃣": true, "uno": true, "primero": true}
var servicesShortcuts = map[string]bool{"2": true, "2️⃣": true, "dos": true, "segundo": true}
var contactShortcuts = map[string]bool{"3": true, "3️⃣": true, "tres": true, "tercero": true}
var otherShortcuts = map[string]bool{"4": true, "4️⃣": true, "cuatro": true, "cuarto": true}

// Assistant phrasings that invite the user to book. An affirmative reply
// right after one of these starts the appointment flow.
var solicitingPhrases = []string{
	"agendar tu cita",
	"programar tu cita",
	"ayudarte a agendar",
	"empezar a agendar",
	"¿te gustaría que te ayude a programar una cita?",
	"¿te gustaría agendar una cita?",
	"te recomiendo programar una cita",
	"brindarte la mejor asesoría",
}

// Orchestrator is the single entry point for every chat message. All state
// access goes through the registry, so one user's messages are handled
// strictly in order.
type Orchestrator struct {
	registry  *session.Registry
	flow      *appointment.Flow
	knowledge *knowledge.Responder
	events    *events.Publisher
	logger    *logger.Logger
	tracer    trace.Tracer
}

func NewOrchestrator(registry *session.Registry, flow *appointment.Flow, responder *knowledge.Responder, publisher *events.Publisher, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		registry:  registry,
		flow:      flow,
		knowledge: responder,
		events:    publisher,
		logger:    log,
		tracer:    otel.Tracer("dialogue"),
	}
}

// HandleMessage processes one user message and returns the reply.
func (o *Orchestrator) HandleMessage(ctx context.Context, userID, text string) string {
	ctx, span := o.tracer.Start(ctx, "dialogue.HandleMessage",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	var reply string
	o.registry.Do(userID, func(st *session.State) {
		st.Append(text, true)
		reply = o.process(ctx, st, userID, text)
		st.Append(reply, false)
	})
	return reply
}

// EndConversation discards a user's state, as when the widget is closed.
func (o *Orchestrator) EndConversation(userID string) bool {
	return o.registry.End(userID)
}

func (o *Orchestrator) process(ctx context.Context, st *session.State, userID, text string) string {
	scores := intent.Classify(text, st.History())
	primary, _ := scores.Top()
	o.updateContext(st.Context(), text, primary, intent.Sentiment(text))
	metrics.MessagesTotal.WithLabelValues(primary).Inc()

	normalized := strings.ToLower(strings.TrimSpace(text))
	if resetCommands[normalized] {
		st.Reset()
		o.events.Publish(ctx, userID, model.EventSessionReset, "user command")
		return resetAck
	}

	// A live appointment flow owns every message until it finishes.
	if appointment.Active(st.Session()) {
		reply, done := o.flow.Handle(ctx, userID, st.Session(), text)
		if done {
			st.ClearSession()
		}
		return reply
	}

	trimmed := strings.TrimSpace(text)
	switch {
	case appointmentShortcuts[trimmed]:
		return o.startFlow(ctx, userID, st)
	case servicesShortcuts[trimmed]:
		return servicesOverview
	case contactShortcuts[trimmed]:
		return o.contactOverview(ctx)
	case otherShortcuts[trimmed]:
		return "Por favor, cuéntame más sobre tu consulta específica. ¿En qué puedo ayudarte?"
	}

	if scores[intent.Farewell] > 0.5 {
		return "¡Hasta luego! Ha sido un placer ayudarte. Si necesitas algo más, no dudes en volver."
	}
	if scores[intent.Thanks] > 0.5 {
		return "¡De nada! Es un placer poder ayudarte. ¿Hay algo más en lo que pueda asistirte?"
	}
	if scores[intent.Greeting] > 0.5 {
		if name := st.Context().UserName; name != "" {
			return fmt.Sprintf("¡Hola %s! Me alegra verte de nuevo. ¿En qué puedo ayudarte hoy?", name)
		}
		return "¡Hola! Soy el asistente virtual del despacho legal. ¿En qué puedo ayudarte hoy? Puedo informarte sobre nuestros servicios, honorarios, horarios de atención o ayudarte a agendar una cita."
	}

	if scores[intent.Appointment] > 0.6 {
		return o.startFlow(ctx, userID, st)
	}

	if extract.IsAffirmative(text) {
		if last, ok := st.LastAssistantMessage(); ok && isSoliciting(last) {
			return o.startFlow(ctx, userID, st)
		}
	}

	if scores[intent.Emergency] > 0.6 {
		contact := o.knowledge.ContactInfo(ctx)
		return fmt.Sprintf("Para casos urgentes, puedes llamarnos al %s. Tenemos abogados disponibles para emergencias.", contact.Phone)
	}
	if scores[intent.Complaint] > 0.5 {
		return "Entiendo tu frustración. Estoy aquí para ayudarte a encontrar una solución. ¿Podrías contarme más sobre tu situación?"
	}
	if scores[intent.Help] > 0.5 {
		return "¡No te preocupes! Estoy aquí para ayudarte. ¿Qué tipo de asunto legal tienes?"
	}

	if reply, ok := o.knowledge.Respond(ctx, text); ok {
		return reply
	}

	if st.Context().LastTopic() == intent.Pricing {
		return "¿Te gustaría que te ayude a agendar una consulta gratuita para discutir los honorarios específicos de tu caso?"
	}

	return fallbackMenu(text)
}

func (o *Orchestrator) startFlow(ctx context.Context, userID string, st *session.State) string {
	o.events.Publish(ctx, userID, model.EventSessionStarted, "appointment flow")
	return o.flow.Start(st.Session())
}

func (o *Orchestrator) updateContext(convCtx *model.ConversationContext, text, primary string, sentiment model.Sentiment) {
	if convCtx.UserName == "" {
		if name, ok := extract.UserName(text); ok {
			convCtx.UserName = name
		}
	}
	convCtx.RecordTopic(primary)
	convCtx.UserSentiment = sentiment
	convCtx.LastIntent = primary
	convCtx.InteractionCount++

	switch sentiment {
	case model.SentimentPositive:
		convCtx.ConversationStyle = "casual"
	case model.SentimentNegative:
		convCtx.ConversationStyle = "professional"
	default:
		convCtx.ConversationStyle = "formal"
	}
}

func isSoliciting(assistantText string) bool {
	lower := strings.ToLower(assistantText)
	for _, phrase := range solicitingPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// fallbackMenu is the catch-all reply. When the text names a practice area
// the menu is prefixed with a short explanation of that area.
func fallbackMenu(text string) string {
	prefix := ""
	if area, explanation, ok := appointment.DetectArea(text); ok {
		prefix = fmt.Sprintf("Has indicado el área: %s. %s\n\n", area, explanation)
	}
	return prefix + `Entiendo tu consulta. ¿Qué te gustaría hacer?

📋 **Opciones disponibles:**

1️⃣ **Agendar una cita**
   Para consulta personalizada con nuestros abogados

2️⃣ **Información general**
   Sobre servicios, honorarios, horarios

3️⃣ **Contacto directo**
   Teléfono, email, ubicación

4️⃣ **Otro asunto**
   Especifica tu consulta

Responde con el número de la opción que prefieras o escribe tu consulta directamente.`
}

const servicesOverview = `📋 **Información General del Despacho:**

⚖️ **Servicios disponibles:**
• Derecho Civil y Mercantil
• Derecho Laboral
• Derecho Familiar
• Derecho Penal
• Derecho Administrativo

💰 **Honorarios:**
• Consulta inicial: Gratuita
• Rango promedio: €50 - €300
• Depende de la complejidad del caso

🕐 **Horarios de atención:**
• Lunes a Viernes: 9:00 AM - 6:00 PM
• Sábados: 9:00 AM - 1:00 PM

¿Te gustaría agendar una cita para discutir tu caso específico?`

func (o *Orchestrator) contactOverview(ctx context.Context) string {
	contact := o.knowledge.ContactInfo(ctx)
	return fmt.Sprintf(`📞 **Información de Contacto:**

📱 **Teléfono:** %s
📧 **Email:** %s
📍 **Dirección:** %s

🕐 **Horarios de atención:**
• Lunes a Viernes: 9:00 AM - 6:00 PM
• Sábados: 9:00 AM - 1:00 PM

¿Te gustaría agendar una cita o tienes alguna otra consulta?`, contact.Phone, contact.Email, contact.Address)
}
