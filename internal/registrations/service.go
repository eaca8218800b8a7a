package registrations

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mediaarise/backend/internal/apperr"
	"github.com/mediaarise/backend/internal/forms"
	"github.com/mediaarise/backend/internal/models"
)

// RowAppender records a new registration in the tracking spreadsheet.
type RowAppender interface {
	AppendRegistrationRow(ctx context.Context, reg *models.Registration, programTitle, registrationID string) error
}

// RegisterRequest is the body for POST /api/register.
type RegisterRequest struct {
	FirstName      string `json:"firstName" validate:"required"`
	LastName       string `json:"lastName" validate:"required"`
	Email          string `json:"email" validate:"required"`
	Phone          string `json:"phone"`
	Reason         string `json:"reason" validate:"required"`
	AdditionalInfo string `json:"additionalInfo"`
	HearAbout      string `json:"hearAbout"`
	ConvenientTime string `json:"convenientTime"`
	ProgramID      string `json:"programId" validate:"required"`
	ProgramTitle   string `json:"programTitle"`
}

// LookupRequest is the body for POST /api/register/lookup.
type LookupRequest struct {
	Email    string `json:"email"`
	LastName string `json:"lastName"`
}

// LookupResult is one entry of a lookup answer.
type LookupResult struct {
	RegistrationID string `json:"registrationId"`
	ProgramTitle   string `json:"programTitle"`
}

// Registered is the outcome of a successful registration.
type Registered struct {
	ID             string
	ParticipantURL string
}

// Service implements registration intake, lookup and the participant view.
type Service struct {
	repo    *Repository
	sheet   RowAppender
	baseURL string
	now     func() time.Time
	logger  *zap.Logger
}

// NewService creates a registrations service. sheet may be nil when spreadsheet sync is off.
func NewService(repo *Repository, sheet RowAppender, baseURL string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, sheet: sheet, baseURL: strings.TrimRight(baseURL, "/"), now: time.Now, logger: logger}
}

// Register validates req, creates a pending registration and appends its spreadsheet row.
// The row append is best effort: a failure is logged and left for the backfill to repair.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Registered, error) {
	if forms.MissingRequired(req) {
		return nil, apperr.Validation("Missing required fields")
	}
	if !forms.ValidEmail(req.Email) {
		return nil, apperr.Validation("Invalid email format")
	}

	reg := models.NewRegistration(req.ProgramID, s.now())
	reg.FirstName = req.FirstName
	reg.LastName = req.LastName
	reg.Email = req.Email
	reg.Phone = req.Phone
	reg.Reason = req.Reason
	reg.AdditionalInfo = req.AdditionalInfo
	reg.HearAbout = req.HearAbout
	reg.ConvenientTime = req.ConvenientTime

	id, err := s.repo.Create(ctx, reg)
	if err != nil {
		return nil, apperr.Remote("Failed to submit registration", err)
	}

	if s.sheet != nil {
		// The document exists now; a client disconnect must not cancel its row.
		if err := s.sheet.AppendRegistrationRow(context.WithoutCancel(ctx), reg, req.ProgramTitle, id); err != nil {
			s.logger.Warn("spreadsheet append failed; run backfill to repair",
				zap.String("registration_id", id),
				zap.Error(err),
			)
		}
	}

	return &Registered{ID: id, ParticipantURL: s.ParticipantURL(id)}, nil
}

// ParticipantURL returns the participant link for a registration id.
func (s *Service) ParticipantURL(id string) string {
	return s.baseURL + "/register/participant?id=" + url.QueryEscape(id)
}

// Lookup returns at most one non-rejected registration per program for the given email,
// choosing the most recent one. No match is an empty list.
func (s *Service) Lookup(ctx context.Context, req LookupRequest) ([]LookupResult, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, apperr.Validation("Email is required")
	}
	list, err := s.repo.FindByEmail(ctx, email, strings.TrimSpace(req.LastName))
	if err != nil {
		return nil, apperr.Remote("Failed to look up registration", err)
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].RegisteredAt.After(list[j].RegisteredAt)
	})

	seen := make(map[string]struct{}, len(list))
	out := make([]LookupResult, 0, len(list))
	for _, r := range list {
		if r.Status == models.StatusRejected {
			continue
		}
		key := r.ProgramID
		if key == "" {
			key = r.ID
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		title := r.ProgramTitle
		if title == "" {
			title = "Program"
		}
		out = append(out, LookupResult{RegistrationID: r.ID, ProgramTitle: title})
	}
	return out, nil
}

// SessionView is one session as shown to a participant.
type SessionView struct {
	Label         string     `json:"label"`
	SessionDate   *time.Time `json:"sessionDate,omitempty"`
	RecapVideoURL string     `json:"recapVideoUrl,omitempty"`
	AttendedByYou bool       `json:"attendedByYou"`
	Attended      []string   `json:"attended"`
	Absent        []string   `json:"absent"`
}

// ParticipantView is the participant page payload.
type ParticipantView struct {
	RegistrationID string        `json:"registrationId"`
	FirstName      string        `json:"firstName"`
	ProgramTitle   string        `json:"programTitle"`
	Sessions       []SessionView `json:"sessions"`
}

// Participant returns session recaps and attendance for the program of registration id.
func (s *Service) Participant(ctx context.Context, id string) (*ParticipantView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.NotFound("Invalid or expired link")
	}
	p, err := s.repo.GetParticipant(ctx, id)
	if err != nil {
		return nil, apperr.Remote("Failed to load participant", err)
	}
	if p == nil || p.Program == nil {
		return nil, apperr.NotFound("Invalid or expired link")
	}

	view := &ParticipantView{
		RegistrationID: p.ID,
		FirstName:      p.FirstName,
		ProgramTitle:   p.Program.Title,
		Sessions:       make([]SessionView, 0, len(p.Program.Sessions)),
	}
	for i, sess := range p.Program.Sessions {
		label := sess.Label
		if label == "" {
			label = "Session " + strconv.Itoa(i+1)
		}
		attendedIDs := make(map[string]struct{}, len(sess.Attended))
		sv := SessionView{
			Label:         label,
			SessionDate:   sess.SessionDate,
			RecapVideoURL: sess.RecapYoutubeURL,
			Attended:      make([]string, 0, len(sess.Attended)),
			Absent:        []string{},
		}
		for _, a := range sess.Attended {
			attendedIDs[a.ID] = struct{}{}
			sv.Attended = append(sv.Attended, displayName(a))
			if a.ID == p.ID {
				sv.AttendedByYou = true
			}
		}
		for _, r := range p.Program.AllRegistrants {
			if _, ok := attendedIDs[r.ID]; !ok {
				sv.Absent = append(sv.Absent, displayName(r))
			}
		}
		view.Sessions = append(view.Sessions, sv)
	}
	return view, nil
}

func displayName(r models.RegistrantName) string {
	name := strings.TrimSpace(strings.TrimSpace(r.FirstName) + " " + strings.TrimSpace(r.LastName))
	if name == "" {
		return "Unnamed"
	}
	return name
}
