// Package sheetsync keeps the registration tracking spreadsheet in step with the content store.
//
// Each registration owns exactly one row, appended when the registration is created. Column L
// holds the registration id and is the join key used to find the row again when an admin
// changes the status.
package sheetsync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mediaarise/backend/internal/apperr"
	"github.com/mediaarise/backend/internal/models"
)

// Column positions (0-based) in the tracking sheet.
const (
	ColDate = iota
	ColProgram
	ColFirstName
	ColLastName
	ColEmail
	ColPhone
	ColReason
	ColHearAbout
	ColConvenientTime
	ColAdditionalInfo
	ColStatus
	ColRegistrationID

	NumColumns
)

// DateLayout formats the date column like "Oct 19, 2026, 09:30 AM".
const DateLayout = "Jan 2, 2006, 03:04 PM"

// Values is the spreadsheet values API the service needs.
type Values interface {
	Get(ctx context.Context, a1Range string) ([][]string, error)
	Append(ctx context.Context, a1Range string, row []string) error
	Update(ctx context.Context, a1Cell, value string) error
}

// Service appends and updates registration rows.
type Service struct {
	values    Values
	sheetName string
	loc       *time.Location
	logger    *zap.Logger
}

// NewService creates a sync service. A nil values client means the sheet is not configured and
// every operation fails with a configuration error.
func NewService(values Values, sheetName string, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{values: values, sheetName: sheetName, loc: loc, logger: logger}
}

func (s *Service) configured() error {
	if s.values == nil {
		s.logger.Error("spreadsheet sync called without GOOGLE_SHEET_ID or credentials")
		return apperr.Configuration("Google Sheet not configured")
	}
	return nil
}

// BuildRow returns the 12 cells of reg's tracking row.
func (s *Service) BuildRow(reg *models.Registration, programTitle, registrationID string) []string {
	row := make([]string, NumColumns)
	row[ColDate] = reg.RegisteredAt.In(s.loc).Format(DateLayout)
	row[ColProgram] = programTitle
	row[ColFirstName] = reg.FirstName
	row[ColLastName] = reg.LastName
	row[ColEmail] = reg.Email
	row[ColPhone] = reg.Phone
	row[ColReason] = reg.Reason
	row[ColHearAbout] = reg.HearAbout
	row[ColConvenientTime] = reg.ConvenientTime
	row[ColAdditionalInfo] = reg.AdditionalInfo
	row[ColStatus] = string(reg.Status)
	row[ColRegistrationID] = registrationID
	return row
}

// AppendRegistrationRow appends reg's row to the sheet. It is not idempotent: call it once per
// registration, right after the registration is created.
func (s *Service) AppendRegistrationRow(ctx context.Context, reg *models.Registration, programTitle, registrationID string) error {
	if err := s.configured(); err != nil {
		return err
	}
	if err := s.values.Append(ctx, s.tableRange(), s.BuildRow(reg, programTitle, registrationID)); err != nil {
		return apperr.Remote("Failed to add to spreadsheet", err)
	}
	s.logger.Info("registration row appended", zap.String("registration_id", registrationID))
	return nil
}

// UpdateRegistrationStatus writes status into the status cell of the row whose join key equals
// registrationID. Only that one cell is written.
func (s *Service) UpdateRegistrationStatus(ctx context.Context, registrationID, status string) error {
	if err := s.configured(); err != nil {
		return err
	}
	rows, err := s.values.Get(ctx, s.tableRange())
	if err != nil {
		return apperr.Remote("Failed to update spreadsheet", err)
	}
	rowNum := FindRow(rows, registrationID)
	if rowNum == 0 {
		s.logger.Warn("registration not found in spreadsheet", zap.String("registration_id", registrationID))
		return apperr.NotFound("Registration not found in spreadsheet")
	}
	if err := s.values.Update(ctx, s.cell(ColStatus, rowNum), status); err != nil {
		return apperr.Remote("Failed to update spreadsheet", err)
	}
	s.logger.Info("registration status synced",
		zap.String("registration_id", registrationID),
		zap.String("status", status),
		zap.Int("row", rowNum),
	)
	return nil
}

// FindRow returns the 1-based sheet row whose join key equals registrationID, skipping the
// header row. It returns 0 when no row matches.
func FindRow(rows [][]string, registrationID string) int {
	if registrationID == "" {
		return 0
	}
	for i := 1; i < len(rows); i++ {
		if cellAt(rows[i], ColRegistrationID) == registrationID {
			return i + 1
		}
	}
	return 0
}

func cellAt(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}

func (s *Service) tableRange() string {
	return fmt.Sprintf("%s!A:%s", quoteSheet(s.sheetName), columnLetter(NumColumns-1))
}

func (s *Service) cell(col, row int) string {
	return fmt.Sprintf("%s!%s%d", quoteSheet(s.sheetName), columnLetter(col), row)
}

// columnLetter converts a 0-based column index below 26 to its A1 letter.
func columnLetter(col int) string {
	return string(rune('A' + col))
}

func quoteSheet(name string) string {
	for _, r := range name {
		if !(r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_') {
			return "'" + strings.ReplaceAll(name, "'", "''") + "'"
		}
	}
	return name
}
