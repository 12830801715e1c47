// Package model defines data structures for the intake platform.
package model

import "time"

// PracticeArea is one of the fixed legal specialties the firm covers.
type PracticeArea string

const (
	AreaCivil          PracticeArea = "Derecho Civil"
	AreaMercantil      PracticeArea = "Derecho Mercantil"
	AreaLaboral        PracticeArea = "Derecho Laboral"
	AreaFamiliar       PracticeArea = "Derecho Familiar"
	AreaPenal          PracticeArea = "Derecho Penal"
	AreaAdministrativo PracticeArea = "Derecho Administrativo"
)

// AllPracticeAreas lists every practice area in presentation order.
var AllPracticeAreas = []PracticeArea{
	AreaCivil,
	AreaMercantil,
	AreaLaboral,
	AreaFamiliar,
	AreaPenal,
	AreaAdministrativo,
}

// AppointmentRecord is the datum built up during collection and submitted
// to the scheduling backend. Zero values mean "not collected yet"; fields
// are populated strictly in declaration order during initial collection.
type AppointmentRecord struct {
	FullName           string       `json:"fullName,omitempty"`
	Age                int          `json:"age,omitempty"`
	Phone              string       `json:"phone,omitempty"`
	Email              string       `json:"email,omitempty"`
	ConsultationReason string       `json:"consultationReason,omitempty"`
	ConsultationType   PracticeArea `json:"consultationType,omitempty"`
	PreferredDate      *time.Time   `json:"preferredDate,omitempty"`
	Notes              string       `json:"notes,omitempty"`
	Location           string       `json:"location,omitempty"`
}

// Clear wipes every collected field (the "start over" edit option).
func (r *AppointmentRecord) Clear() {
	*r = AppointmentRecord{}
}

// SubmissionResult is what the backend returns for an accepted appointment.
type SubmissionResult struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}
