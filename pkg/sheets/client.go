// Package sheets wraps the Google Sheets values API for a single spreadsheet.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// ValueInputOption used for every write; values are parsed as if typed into the UI.
const ValueInputOption = "USER_ENTERED"

// Credentials describes a service account, either as a key file or as individual fields.
type Credentials struct {
	File         string
	ProjectID    string
	PrivateKeyID string
	PrivateKey   string
	ClientEmail  string
	ClientID     string
	CertURL      string
}

// JSON returns the service-account key document.
func (c Credentials) JSON() ([]byte, error) {
	if c.File != "" {
		b, err := os.ReadFile(c.File)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		return b, nil
	}
	return json.Marshal(map[string]string{
		"type":                        "service_account",
		"project_id":                  c.ProjectID,
		"private_key_id":              c.PrivateKeyID,
		"private_key":                 c.PrivateKey,
		"client_email":                c.ClientEmail,
		"client_id":                   c.ClientID,
		"auth_uri":                    "https://accounts.google.com/o/oauth2/auth",
		"token_uri":                   "https://oauth2.googleapis.com/token",
		"auth_provider_x509_cert_url": "https://www.googleapis.com/oauth2/v1/certs",
		"client_x509_cert_url":        c.CertURL,
	})
}

// Client reads and writes cell values of one spreadsheet.
type Client struct {
	svc           *gsheets.Service
	spreadsheetID string
	timeout       time.Duration
	logger        *zap.Logger
}

// NewClient authenticates with the service account and returns a values client.
func NewClient(ctx context.Context, spreadsheetID string, creds Credentials, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	raw, err := creds.JSON()
	if err != nil {
		return nil, err
	}
	gcreds, err := google.CredentialsFromJSON(ctx, raw, gsheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account: %w", err)
	}
	svc, err := gsheets.NewService(ctx, option.WithCredentials(gcreds))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	logger.Info("Google Sheets client ready", zap.String("client_email", creds.ClientEmail))
	return &Client{svc: svc, spreadsheetID: spreadsheetID, timeout: timeout, logger: logger}, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

// Get returns the values of an A1 range as strings. Trailing empty cells are omitted by the API,
// so rows may be shorter than the range.
func (c *Client) Get(ctx context.Context, a1Range string) ([][]string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, a1Range).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", a1Range, err)
	}
	rows := make([][]string, len(resp.Values))
	for i, r := range resp.Values {
		cells := make([]string, len(r))
		for j, v := range r {
			cells[j] = fmt.Sprint(v)
		}
		rows[i] = cells
	}
	return rows, nil
}

// Append adds one row after the last row of the table in a1Range.
func (c *Client) Append(ctx context.Context, a1Range string, row []string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, a1Range, &gsheets.ValueRange{
		Values: [][]interface{}{cells},
	}).ValueInputOption(ValueInputOption).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append %s: %w", a1Range, err)
	}
	return nil
}

// Update writes a single value into the cell at a1Cell.
func (c *Client) Update(ctx context.Context, a1Cell, value string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, a1Cell, &gsheets.ValueRange{
		Values: [][]interface{}{{value}},
	}).ValueInputOption(ValueInputOption).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", a1Cell, err)
	}
	return nil
}
