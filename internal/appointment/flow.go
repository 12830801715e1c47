package appointment

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/despacholegal-ai/intake-platform/internal/backend"
	"github.com/despacholegal-ai/intake-platform/internal/events"
	"github.com/despacholegal-ai/intake-platform/internal/extract"
	"github.com/despacholegal-ai/intake-platform/internal/model"
	"github.com/despacholegal-ai/intake-platform/pkg/logger"
	"github.com/despacholegal-ai/intake-platform/pkg/metrics"
)

// Submitter delivers a completed appointment to the case-management backend.
type Submitter interface {
	SubmitAppointment(ctx context.Context, record *model.AppointmentRecord) (*model.SubmissionResult, error)
}

var startKeywords = []string{"cita", "agendar", "programar", "consulta", "reunión", "visita"}

// StartsAppointment reports whether the text asks to book an appointment.
func StartsAppointment(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range startKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Flow walks a session through the appointment collection stages. It owns no
// locking; callers serialize access per user via the session registry.
type Flow struct {
	submitter Submitter
	events    *events.Publisher
	logger    *logger.Logger
	now       func() time.Time
}

func NewFlow(submitter Submitter, publisher *events.Publisher, log *logger.Logger) *Flow {
	return &Flow{
		submitter: submitter,
		events:    publisher,
		logger:    log,
		now:       time.Now,
	}
}

// Start moves a session into the collecting stage and returns the opening
// prompt. The caller decides when a user message warrants starting.
func (f *Flow) Start(sess *model.ConversationSession) string {
	sess.Stage = model.StageCollecting
	return msgStartCollecting
}

// Active reports whether the session is mid-collection and the next message
// belongs to the flow rather than the general dialogue.
func Active(sess *model.ConversationSession) bool {
	switch sess.Stage {
	case model.StageCollecting, model.StageConfirmation, model.StageEditing:
		return true
	}
	return false
}

// Handle consumes one user message. done is true only after a successful
// submission; a failed submission keeps the session alive so the user can
// retry by confirming again.
func (f *Flow) Handle(ctx context.Context, userID string, sess *model.ConversationSession, text string) (reply string, done bool) {
	switch sess.Stage {
	case model.StageCollecting:
		return f.handleCollecting(sess, text), false
	case model.StageConfirmation:
		return f.handleConfirmation(ctx, userID, sess, text)
	case model.StageEditing:
		return f.handleEditing(sess, text), false
	default:
		return msgNotUnderstood, false
	}
}

// handleCollecting asks for the first field the record is still missing. The
// order is fixed: name, age, phone, email, reason, then a date choice. The
// practice area is derived from the reason and never asked.
func (f *Flow) handleCollecting(sess *model.ConversationSession, text string) string {
	record := &sess.Record

	switch {
	case record.FullName == "":
		name, ok := extract.Name(text)
		if !ok {
			return msgNameInvalid
		}
		record.FullName = name
		return msgAskAge(name)

	case record.Age == 0:
		age, status := extract.Age(text)
		switch status {
		case extract.AgeTooYoung:
			return msgAgeTooYoung
		case extract.AgeTooOld:
			return msgAgeTooOld
		case extract.AgeNotFound:
			return msgAgeInvalid
		}
		record.Age = age
		return msgAskPhone

	case record.Phone == "":
		phone, ok := extract.Phone(text)
		if !ok {
			return msgPhoneInvalid
		}
		record.Phone = phone
		return msgAskEmail

	case record.Email == "":
		email, ok := extract.Email(text)
		if !ok {
			return msgEmailInvalid
		}
		record.Email = email
		return msgAskReason

	case record.ConsultationReason == "":
		reason := strings.TrimSpace(text)
		if len([]rune(reason)) < 5 {
			return msgReasonInvalid
		}
		record.ConsultationReason = reason
		record.ConsultationType = DeriveArea(reason)
		if sess.DateOptions == nil {
			sess.DateOptions = GenerateDateOptions(f.now())
		}
		return msgAskDate(sess.DateOptions)

	default:
		return f.handleDateChoice(sess, text)
	}
}

func (f *Flow) handleDateChoice(sess *model.ConversationSession, text string) string {
	idx, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		if chosen, ok := matchDateLabel(text, sess.DateOptions); ok {
			return f.acceptDate(sess, chosen)
		}
		return msgDateNotANumber(sess.DateOptions)
	}
	if idx < 1 || idx > len(sess.DateOptions) {
		return msgDateOutOfRange(sess.DateOptions)
	}
	return f.acceptDate(sess, sess.DateOptions[idx-1])
}

func (f *Flow) acceptDate(sess *model.ConversationSession, chosen time.Time) string {
	sess.Record.PreferredDate = &chosen
	sess.Stage = model.StageConfirmation
	return msgConfirmation(&sess.Record)
}

func (f *Flow) handleConfirmation(ctx context.Context, userID string, sess *model.ConversationSession, text string) (string, bool) {
	switch {
	case extract.IsAffirmative(text):
		return f.submit(ctx, userID, sess)
	case extract.IsNegative(text):
		sess.Stage = model.StageEditing
		sess.EditTarget = model.FieldNone
		return msgEditMenu, false
	default:
		return msgConfirmInvalid, false
	}
}

// submit posts the record to the backend. The session only completes on a
// 201; any failure leaves it in the confirmation stage.
func (f *Flow) submit(ctx context.Context, userID string, sess *model.ConversationSession) (string, bool) {
	result, err := f.submitter.SubmitAppointment(ctx, &sess.Record)
	if err != nil {
		var subErr *backend.SubmissionError
		if errors.As(err, &subErr) {
			f.logger.WithUser(userID).Warn("appointment rejected by backend",
				zap.Int("status", subErr.Status))
			metrics.RecordSubmission("rejected")
			return msgSubmitRejected(subErr.Status), false
		}
		f.logger.WithUser(userID).Error("appointment submission failed", zap.Error(err))
		metrics.RecordSubmission("error")
		return msgSubmitFailed(err), false
	}

	sess.Stage = model.StageCompleted
	metrics.RecordSubmission("accepted")
	f.logger.WithUser(userID).Info("appointment submitted",
		zap.String("appointment_id", result.ID),
		zap.String("area", string(sess.Record.ConsultationType)))
	f.events.Publish(ctx, userID, model.EventAppointmentSubmitted, result.ID)
	return msgSubmitted(&sess.Record), true
}

func (f *Flow) handleEditing(sess *model.ConversationSession, text string) string {
	if sess.EditTarget == model.FieldNone {
		return f.handleEditMenu(sess, text)
	}
	return f.applyEdit(sess, text)
}

func (f *Flow) handleEditMenu(sess *model.ConversationSession, text string) string {
	choice, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return msgEditMenuNotANumber
	}
	if choice < 1 || choice > 8 {
		return msgEditMenuInvalid
	}
	if choice == 8 {
		sess.Record.Clear()
		sess.DateOptions = nil
		sess.EditTarget = model.FieldNone
		sess.Stage = model.StageCollecting
		return msgStartOver
	}

	record := &sess.Record
	switch choice {
	case 1:
		sess.EditTarget = model.FieldName
		return msgEditCurrent("¿Cuál es tu nombre completo?", record.FullName)
	case 2:
		sess.EditTarget = model.FieldAge
		return msgEditCurrent("¿Cuál es tu edad?", strconv.Itoa(record.Age))
	case 3:
		sess.EditTarget = model.FieldPhone
		return msgEditCurrent("¿Cuál es tu número de teléfono de contacto?", record.Phone)
	case 4:
		sess.EditTarget = model.FieldEmail
		return msgEditCurrent("¿Cuál es tu correo electrónico?", record.Email)
	case 5:
		sess.EditTarget = model.FieldReason
		return msgEditCurrent("¿Cuál es el motivo de tu consulta?", record.ConsultationReason)
	case 6:
		sess.EditTarget = model.FieldType
		return msgEditArea(record.ConsultationType)
	default:
		sess.EditTarget = model.FieldDate
		current := "Fecha no especificada"
		if record.PreferredDate != nil {
			current = FormatDateOption(*record.PreferredDate)
		}
		return msgEditCurrent("¿Qué fecha prefieres?", current) + "\n\nOpciones disponibles:\n" +
			renderDateOptions(sess.DateOptions)
	}
}

// applyEdit validates the replacement value with the same rules the
// collecting stage uses, then returns to confirmation with a fresh summary.
func (f *Flow) applyEdit(sess *model.ConversationSession, text string) string {
	record := &sess.Record

	switch sess.EditTarget {
	case model.FieldName:
		name, ok := extract.Name(text)
		if !ok {
			return msgNameInvalid
		}
		record.FullName = name

	case model.FieldAge:
		age, status := extract.Age(text)
		switch status {
		case extract.AgeTooYoung:
			return msgAgeTooYoung
		case extract.AgeTooOld:
			return msgAgeTooOld
		case extract.AgeNotFound:
			return msgAgeInvalid
		}
		record.Age = age

	case model.FieldPhone:
		phone, ok := extract.Phone(text)
		if !ok {
			return msgPhoneInvalid
		}
		record.Phone = phone

	case model.FieldEmail:
		email, ok := extract.Email(text)
		if !ok {
			return msgEmailInvalid
		}
		record.Email = email

	case model.FieldReason:
		reason := strings.TrimSpace(text)
		if len([]rune(reason)) < 5 {
			return msgReasonInvalid
		}
		record.ConsultationReason = reason
		record.ConsultationType = DeriveArea(reason)

	case model.FieldType:
		idx, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || idx < 1 || idx > len(model.AllPracticeAreas) {
			return msgEditAreaInvalid()
		}
		record.ConsultationType = model.AllPracticeAreas[idx-1]

	case model.FieldDate:
		idx, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			if chosen, ok := matchDateLabel(text, sess.DateOptions); ok {
				record.PreferredDate = &chosen
				break
			}
			return msgDateNotANumber(sess.DateOptions)
		}
		if idx < 1 || idx > len(sess.DateOptions) {
			return msgDateOutOfRange(sess.DateOptions)
		}
		chosen := sess.DateOptions[idx-1]
		record.PreferredDate = &chosen
	}

	sess.EditTarget = model.FieldNone
	sess.Stage = model.StageConfirmation
	return msgConfirmation(record)
}
