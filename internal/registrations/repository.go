package registrations

import (
	"context"

	"github.com/mediaarise/backend/internal/models"
)

// Store is the content store API used by the repository.
type Store interface {
	Query(ctx context.Context, groq string, params map[string]interface{}, dest interface{}) error
	Create(ctx context.Context, doc interface{}) (string, error)
}

const lookupQuery = `*[_type == "registration"
  && lower(email) == lower($email)
  && ($lastName == null || lower(lastName) == lower($lastName))
  && status != "rejected"] | order(registeredAt desc) {
  _id,
  "programId": program._ref,
  "programTitle": program->title,
  registeredAt,
  status
}`

const participantQuery = `*[_type == "registration" && _id == $id][0] {
  _id,
  firstName,
  lastName,
  status,
  "program": program-> {
    _id,
    title,
    "sessions": coalesce(sessions[] {
      label,
      sessionDate,
      recapYoutubeUrl,
      "attended": coalesce(attended[]-> {_id, firstName, lastName}, [])
    }, []),
    "allRegistrants": *[_type == "registration" && program._ref == ^._id && status != "rejected"] | order(lastName asc) {_id, firstName, lastName}
  }
}`

const registrantsQuery = `*[_type == "registration"] {_id, firstName, lastName, email, "programTitle": program->title}`

// Repository reads and creates registration documents.
type Repository struct {
	store Store
}

// NewRepository creates a registrations repository.
func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

// Create stores reg and returns its document id.
func (r *Repository) Create(ctx context.Context, reg *models.Registration) (string, error) {
	return r.store.Create(ctx, reg)
}

// FindByEmail returns non-rejected registrations for email (and lastName when not empty),
// newest first.
func (r *Repository) FindByEmail(ctx context.Context, email, lastName string) ([]models.RegistrationSummary, error) {
	params := map[string]interface{}{"email": email, "lastName": nil}
	if lastName != "" {
		params["lastName"] = lastName
	}
	var list []models.RegistrationSummary
	if err := r.store.Query(ctx, lookupQuery, params, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetParticipant returns the registration with its program sessions, or nil when id is unknown.
func (r *Repository) GetParticipant(ctx context.Context, id string) (*models.Participant, error) {
	var p *models.Participant
	if err := r.store.Query(ctx, participantQuery, map[string]interface{}{"id": id}, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListRegistrants returns id, name and email of every registration.
func (r *Repository) ListRegistrants(ctx context.Context) ([]models.RegistrantName, error) {
	var list []models.RegistrantName
	if err := r.store.Query(ctx, registrantsQuery, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}
