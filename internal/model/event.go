package model

import "time"

// EventType classifies intake lifecycle events published to the stream.
type EventType string

const (
	EventSessionStarted       EventType = "session_started"
	EventSessionReset         EventType = "session_reset"
	EventSessionExpired       EventType = "session_expired"
	EventAppointmentSubmitted EventType = "appointment_submitted"
)

// IntakeEvent is a lifecycle event for one user's intake conversation.
type IntakeEvent struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      EventType `json:"type"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
