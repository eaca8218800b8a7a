// Package app builds the shared dependencies of the server and the backfill command.
package app

import (
	"context"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mediaarise/backend/config"
	"github.com/mediaarise/backend/internal/sheetsync"
	"github.com/mediaarise/backend/pkg/sanity"
	"github.com/mediaarise/backend/pkg/sheets"
)

// NewLogger builds a JSON production logger at the given level (debug, info, warn, error).
func NewLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// NewSanityClient returns the content store client for cfg.
func NewSanityClient(cfg *config.Config, logger *zap.Logger) *sanity.Client {
	return sanity.NewClient(sanity.Config{
		ProjectID:  cfg.Sanity.ProjectID,
		Dataset:    cfg.Sanity.Dataset,
		Token:      cfg.Sanity.Token,
		APIVersion: cfg.Sanity.APIVersion,
		Timeout:    time.Duration(cfg.Sanity.TimeoutSeconds) * time.Second,
	}, logger)
}

// NewSheetSync returns the spreadsheet sync service. Without a sheet id or credentials the
// service is still returned and reports a configuration error on every call.
func NewSheetSync(ctx context.Context, cfg *config.Config, logger *zap.Logger) *sheetsync.Service {
	loc, err := time.LoadLocation(cfg.Sheets.Timezone)
	if err != nil {
		logger.Warn("unknown SHEETS_TIMEZONE, using UTC", zap.String("timezone", cfg.Sheets.Timezone))
		loc = time.UTC
	}

	var values sheetsync.Values
	switch {
	case cfg.Sheets.SpreadsheetID == "" || !cfg.Sheets.HasCredentials():
		logger.Warn("Google Sheet not configured; registrations will not be mirrored")
	default:
		client, err := sheets.NewClient(ctx, cfg.Sheets.SpreadsheetID, SheetCredentials(cfg.Sheets),
			time.Duration(cfg.Sheets.TimeoutSeconds)*time.Second, logger)
		if err != nil {
			logger.Error("Google Sheets client", zap.Error(err))
		} else {
			values = client
		}
	}
	return sheetsync.NewService(values, cfg.Sheets.SheetName, loc, logger)
}

// SheetCredentials maps the config section onto the transport's credential set.
func SheetCredentials(c config.SheetsConfig) sheets.Credentials {
	return sheets.Credentials{
		File:         c.CredentialsFile,
		ProjectID:    c.ProjectID,
		PrivateKeyID: c.PrivateKeyID,
		PrivateKey:   c.PrivateKey,
		ClientEmail:  c.ClientEmail,
		ClientID:     c.ClientID,
		CertURL:      c.CertURL,
	}
}
