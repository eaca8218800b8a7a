package sheetsync

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/mediaarise/backend/internal/apperr"
	"github.com/mediaarise/backend/internal/models"
)

// RegistrantSource lists every registration in the content store.
type RegistrantSource interface {
	ListRegistrants(ctx context.Context) ([]models.RegistrantName, error)
}

// BackfillReport summarizes one backfill run. Row numbers are 1-based sheet rows.
type BackfillReport struct {
	Scanned   int   `json:"scanned"`
	Skipped   int   `json:"skipped"`
	Matched   int   `json:"matched"`
	Written   int   `json:"written"`
	Unmatched []int `json:"unmatched"`
}

// Backfill fills empty join keys by matching rows to registrations on lowercased
// email, first name and last name, using the program title to separate a person's
// registrations. A row is only filled when exactly one unused registration matches. Rows that
// already carry an id are never touched, so a second run writes nothing. With dryRun set,
// matches are reported but not written.
func (s *Service) Backfill(ctx context.Context, src RegistrantSource, dryRun bool) (*BackfillReport, error) {
	if err := s.configured(); err != nil {
		return nil, err
	}
	registrants, err := src.ListRegistrants(ctx)
	if err != nil {
		return nil, apperr.Remote("Failed to load registrations", err)
	}
	s.logger.Info("registrations loaded", zap.Int("count", len(registrants)))

	byKey := make(map[string][]models.RegistrantName, len(registrants))
	for _, r := range registrants {
		key := matchKey(r.Email, r.FirstName, r.LastName)
		if key == emptyKey {
			continue
		}
		if len(byKey[key]) > 0 {
			s.logger.Info("several registrations share email and name",
				zap.String("email", r.Email), zap.String("registration_id", r.ID))
		}
		byKey[key] = append(byKey[key], r)
	}

	rows, err := s.values.Get(ctx, s.tableRange())
	if err != nil {
		return nil, apperr.Remote("Failed to read spreadsheet", err)
	}

	// An id already in column L must not be written to a second row.
	used := make(map[string]struct{}, len(rows))
	for i := 1; i < len(rows); i++ {
		if id := cellAt(rows[i], ColRegistrationID); id != "" {
			used[id] = struct{}{}
		}
	}

	report := &BackfillReport{}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowNum := i + 1
		report.Scanned++

		if cellAt(row, ColRegistrationID) != "" {
			report.Skipped++
			continue
		}
		key := matchKey(cellAt(row, ColEmail), cellAt(row, ColFirstName), cellAt(row, ColLastName))
		id, ok := pick(byKey[key], cellAt(row, ColProgram), used)
		if !ok {
			report.Unmatched = append(report.Unmatched, rowNum)
			s.logger.Info("no unique registration matches row", zap.Int("row", rowNum), zap.String("email", cellAt(row, ColEmail)))
			continue
		}
		used[id] = struct{}{}
		report.Matched++
		if dryRun {
			s.logger.Info("would write registration id", zap.Int("row", rowNum), zap.String("registration_id", id))
			continue
		}
		if err := s.values.Update(ctx, s.cell(ColRegistrationID, rowNum), id); err != nil {
			return report, apperr.Remote("Failed to update spreadsheet", err)
		}
		report.Written++
		s.logger.Info("registration id written", zap.Int("row", rowNum), zap.String("registration_id", id))
	}
	return report, nil
}

// pick returns the single unused candidate, narrowed by program title when several remain.
func pick(candidates []models.RegistrantName, programTitle string, used map[string]struct{}) (string, bool) {
	var free []models.RegistrantName
	for _, c := range candidates {
		if _, taken := used[c.ID]; !taken {
			free = append(free, c)
		}
	}
	if len(free) > 1 {
		var sameProgram []models.RegistrantName
		for _, c := range free {
			if strings.EqualFold(strings.TrimSpace(c.ProgramTitle), strings.TrimSpace(programTitle)) {
				sameProgram = append(sameProgram, c)
			}
		}
		free = sameProgram
	}
	if len(free) != 1 {
		return "", false
	}
	return free[0].ID, true
}

const emptyKey = "--"

func matchKey(email, firstName, lastName string) string {
	norm := func(v string) string { return strings.ToLower(strings.TrimSpace(v)) }
	return norm(email) + "-" + norm(firstName) + "-" + norm(lastName)
}
