package models

import "time"

// Program is a ministry program or activity open for registration.
type Program struct {
	ID                   string     `json:"_id"`
	Title                string     `json:"title"`
	Slug                 string     `json:"slug"`
	Description          string     `json:"description,omitempty"`
	StartDate            *time.Time `json:"startDate,omitempty"`
	EndDate              *time.Time `json:"endDate,omitempty"`
	Location             string     `json:"location,omitempty"`
	Category             string     `json:"category,omitempty"`
	Capacity             *int       `json:"capacity,omitempty"`
	RegistrationDeadline *time.Time `json:"registrationDeadline,omitempty"`
	RegistrationOpen     bool       `json:"registrationOpen"`
	Priority             int        `json:"priority"`
}

// Session is one day or meeting of a program, with its recap and attendance.
type Session struct {
	Label           string           `json:"label"`
	SessionDate     *time.Time       `json:"sessionDate,omitempty"`
	RecapYoutubeURL string           `json:"recapYoutubeUrl,omitempty"`
	Attended        []RegistrantName `json:"attended"`
}

// ParticipantProgram is the program projection shown on a participant page.
type ParticipantProgram struct {
	ID             string           `json:"_id"`
	Title          string           `json:"title"`
	Sessions       []Session        `json:"sessions"`
	AllRegistrants []RegistrantName `json:"allRegistrants"`
}

// Participant is a registration joined with its program for the participant page.
type Participant struct {
	ID        string              `json:"_id"`
	FirstName string              `json:"firstName"`
	LastName  string              `json:"lastName"`
	Status    RegistrationStatus  `json:"status"`
	Program   *ParticipantProgram `json:"program"`
}
