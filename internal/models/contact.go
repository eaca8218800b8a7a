package models

import "time"

// DocTypeContactMessage is the content store document type for contact form messages.
const DocTypeContactMessage = "contactMessage"

// ContactMessage is a message submitted through the contact form.
type ContactMessage struct {
	Type        string    `json:"_type"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submittedAt"`
	Read        bool      `json:"read"`
	Replied     bool      `json:"replied"`
}
