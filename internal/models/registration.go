package models

import "time"

// DocTypeRegistration is the content store document type for registrations.
const DocTypeRegistration = "registration"

// RegistrationStatus is the review state set by admins in the CMS.
type RegistrationStatus string

const (
	StatusPending    RegistrationStatus = "pending"
	StatusApproved   RegistrationStatus = "approved"
	StatusRejected   RegistrationStatus = "rejected"
	StatusWaitlisted RegistrationStatus = "waitlisted"
)

// Reference points at another document.
type Reference struct {
	Type string `json:"_type"`
	Ref  string `json:"_ref"`
}

// Registration is a program registration document.
type Registration struct {
	ID             string             `json:"_id,omitempty"`
	Type           string             `json:"_type"`
	Program        Reference          `json:"program"`
	FirstName      string             `json:"firstName"`
	LastName       string             `json:"lastName"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	Reason         string             `json:"reason"`
	AdditionalInfo string             `json:"additionalInfo"`
	HearAbout      string             `json:"hearAbout,omitempty"`
	ConvenientTime string             `json:"convenientTime,omitempty"`
	RegisteredAt   time.Time          `json:"registeredAt"`
	Status         RegistrationStatus `json:"status"`
	AdminNotes     string             `json:"adminNotes,omitempty"`
}

// NewRegistration builds a pending registration for programID registered at now.
func NewRegistration(programID string, now time.Time) *Registration {
	return &Registration{
		Type:         DocTypeRegistration,
		Program:      Reference{Type: "reference", Ref: programID},
		RegisteredAt: now.UTC(),
		Status:       StatusPending,
	}
}

// RegistrationSummary is a lookup projection of a registration.
type RegistrationSummary struct {
	ID           string             `json:"_id"`
	ProgramID    string             `json:"programId"`
	ProgramTitle string             `json:"programTitle"`
	RegisteredAt time.Time          `json:"registeredAt"`
	Status       RegistrationStatus `json:"status"`
}

// RegistrantName identifies a registration by id and name; used by the backfill and attendance lists.
type RegistrantName struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`

	// ProgramTitle is only projected for the backfill.
	ProgramTitle string `json:"programTitle,omitempty"`
}
