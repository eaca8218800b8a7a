package contact

import (
	"context"
	"time"

	"github.com/mediaarise/backend/internal/apperr"
	"github.com/mediaarise/backend/internal/forms"
	"github.com/mediaarise/backend/internal/models"
)

// DocumentCreator creates documents in the content store.
type DocumentCreator interface {
	Create(ctx context.Context, doc interface{}) (string, error)
}

// SubmitRequest is the body for POST /api/contact.
type SubmitRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Service stores contact form messages.
type Service struct {
	store DocumentCreator
	now   func() time.Time
}

// NewService creates a contact service.
func NewService(store DocumentCreator) *Service {
	return &Service{store: store, now: time.Now}
}

// Submit validates req and stores it as an unread message, returning the new document id.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (string, error) {
	if forms.MissingRequired(req) {
		return "", apperr.Validation("All fields are required")
	}
	if !forms.ValidEmail(req.Email) {
		return "", apperr.Validation("Invalid email format")
	}
	msg := models.ContactMessage{
		Type:        models.DocTypeContactMessage,
		Name:        req.Name,
		Email:       req.Email,
		Subject:     req.Subject,
		Message:     req.Message,
		SubmittedAt: s.now().UTC(),
	}
	id, err := s.store.Create(ctx, msg)
	if err != nil {
		return "", apperr.Remote("Failed to save message", err)
	}
	return id, nil
}
