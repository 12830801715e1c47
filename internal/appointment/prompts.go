package appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/despacholegal-ai/intake-platform/internal/model"
)

// User-facing copy. Spanish-only: the strings are fixed content, not a
// localization concern.
const (
	msgStartCollecting = "¡Perfecto! Te ayudo a agendar tu cita. Para comenzar, necesito algunos datos:\n\n¿Cuál es tu nombre completo?"

	msgNameInvalid = "Por favor, proporciona tu nombre completo (nombre y apellidos, solo letras)."

	msgAgeTooYoung = "Debes ser mayor de edad (18 años o más) para agendar una cita. Por favor, proporciona tu edad real."
	msgAgeTooOld   = "Por favor, proporciona una edad válida (entre 18 y 100 años)."
	msgAgeInvalid  = "Por favor, proporciona tu edad (solo el número, entre 18 y 100 años)."

	msgAskPhone     = "Perfecto. ¿Cuál es tu número de teléfono de contacto?"
	msgPhoneInvalid = "Por favor, proporciona un número de teléfono válido (ejemplo: 612345678 o +34 612345678)."

	msgAskEmail     = "Excelente. ¿Cuál es tu correo electrónico?"
	msgEmailInvalid = "Por favor, proporciona un email válido."

	msgAskReason     = "Muy bien. ¿Cuál es el motivo de tu consulta? (Por ejemplo: despido, acoso laboral, impago de salarios, etc.)"
	msgReasonInvalid = "Por favor, describe el motivo de tu consulta con más detalle."

	msgConfirmInvalid = "Por favor, responde 'sí' para confirmar o 'no' para modificar algo."

	msgEditMenu = "Entiendo que quieres modificar algo. ¿Qué te gustaría cambiar?\n\n" +
		"Opciones disponibles:\n" +
		"• 1. Nombre\n" +
		"• 2. Edad\n" +
		"• 3. Teléfono\n" +
		"• 4. Email\n" +
		"• 5. Motivo de consulta\n" +
		"• 6. Área del derecho\n" +
		"• 7. Fecha y hora\n" +
		"• 8. Todo (empezar de nuevo)\n\n" +
		"Responde con el número de la opción que quieres modificar."

	msgEditMenuInvalid    = "Por favor, selecciona un número válido del 1 al 8."
	msgEditMenuNotANumber = "Por favor, responde con el número de la opción que quieres modificar."

	msgStartOver = "Entiendo. Empecemos de nuevo. ¿Cuál es tu nombre completo?"

	msgNotUnderstood = "No entiendo. ¿Podrías repetir?"
)

func msgAskAge(name string) string {
	return fmt.Sprintf("Gracias %s. ¿Cuál es tu edad?", name)
}

func msgAskDate(options []time.Time) string {
	return fmt.Sprintf("Perfecto. ¿Qué fecha prefieres para tu consulta?\n\nOpciones disponibles:\n%s\n\nResponde con el número de la opción que prefieras (1-%d).",
		renderDateOptions(options), len(options))
}

func msgDateOutOfRange(options []time.Time) string {
	return fmt.Sprintf("Por favor, selecciona una opción válida (1-%d):\n\n%s",
		len(options), renderDateOptions(options))
}

func msgDateNotANumber(options []time.Time) string {
	return fmt.Sprintf("Por favor, responde con el número de la opción (1-%d):\n\n%s",
		len(options), renderDateOptions(options))
}

func msgConfirmation(record *model.AppointmentRecord) string {
	dateStr := "Fecha no especificada"
	if record.PreferredDate != nil {
		dateStr = FormatDateOption(*record.PreferredDate)
	}
	return fmt.Sprintf(`📋 **Resumen de tu cita:**

👤 **Datos personales:**
• Nombre: %s
• Edad: %d años
• Teléfono: %s
• Email: %s

⚖️ **Consulta:**
• Motivo: %s
• Área: %s
• Fecha preferida: %s

¿Está todo correcto? Responde 'sí' para confirmar o 'no' para modificar algo.`,
		record.FullName, record.Age, record.Phone, record.Email,
		record.ConsultationReason, record.ConsultationType, dateStr)
}

func msgSubmitted(record *model.AppointmentRecord) string {
	dateStr := "Fecha no especificada"
	if record.PreferredDate != nil {
		dateStr = record.PreferredDate.Format("2006-01-02")
	}
	return fmt.Sprintf("¡Perfecto! Tu cita ha sido agendada exitosamente.\n\n"+
		"📅 **Detalles de tu cita:**\n"+
		"• Nombre: %s\n"+
		"• Fecha: %s\n"+
		"• Motivo: %s\n\n"+
		"Te hemos enviado un email de confirmación a %s.\n\n"+
		"Un abogado se pondrá en contacto contigo pronto para confirmar los detalles. ¡Gracias por confiar en nosotros!",
		record.FullName, dateStr, record.ConsultationReason, record.Email)
}

func msgSubmitRejected(status int) string {
	return fmt.Sprintf("Lo siento, hubo un problema al agendar tu cita (Error %d). Por favor, contacta directamente al despacho por teléfono o email.", status)
}

func msgSubmitFailed(err error) string {
	return fmt.Sprintf("Lo siento, hubo un problema al agendar tu cita (Error: %v). Por favor, contacta directamente al despacho por teléfono o email.", err)
}

func msgEditCurrent(question, current string) string {
	return fmt.Sprintf("Perfecto. %s (Actualmente: %s)", question, current)
}

func msgEditArea(current model.PracticeArea) string {
	lines := make([]string, len(model.AllPracticeAreas))
	for i, area := range model.AllPracticeAreas {
		lines[i] = fmt.Sprintf("• %d. %s", i+1, area)
	}
	return fmt.Sprintf("Perfecto. ¿En qué área del derecho necesitas ayuda? (Actualmente: %s)\n\nOpciones disponibles:\n%s\n\nResponde con el número de la opción.",
		current, strings.Join(lines, "\n"))
}

func msgEditAreaInvalid() string {
	return fmt.Sprintf("Por favor, selecciona un número válido del 1 al %d.", len(model.AllPracticeAreas))
}
