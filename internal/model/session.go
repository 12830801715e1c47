package model

import "time"

// Stage tracks a session's progress through appointment collection.
type Stage string

const (
	StageInitial      Stage = "initial"
	StageCollecting   Stage = "collecting_info"
	StageConfirmation Stage = "confirmation"
	StageEditing      Stage = "editing"
	StageCompleted    Stage = "completed"
)

// Field identifies one collectable field of the appointment record.
type Field int

const (
	FieldNone Field = iota
	FieldName
	FieldAge
	FieldPhone
	FieldEmail
	FieldReason
	FieldType
	FieldDate
)

// ConversationSession is the per-user appointment collection state. It is
// owned exclusively by the session registry; all access goes through the
// registry's per-user lock.
type ConversationSession struct {
	Stage  Stage
	Record AppointmentRecord

	// DateOptions is generated exactly once, when the reason step
	// completes. Indices stay stable for the session's lifetime so a
	// later numeric selection resolves to the slot that was shown.
	DateOptions []time.Time

	// EditTarget is set while the user is re-entering a single field
	// from the edit menu, and cleared on return to confirmation.
	EditTarget Field

	CreatedAt time.Time
}

// NewConversationSession returns an empty session in the initial stage.
func NewConversationSession() *ConversationSession {
	return &ConversationSession{
		Stage:     StageInitial,
		CreatedAt: time.Now(),
	}
}
