// Package sanity is a small client for the Sanity content store HTTP API:
// GROQ queries with parameters and document create mutations.
package sanity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrNotConfigured is returned when the project id or dataset is missing.
var ErrNotConfigured = errors.New("sanity: project id and dataset are required")

// Config holds client settings.
type Config struct {
	ProjectID  string
	Dataset    string
	Token      string
	APIVersion string
	Timeout    time.Duration
	// BaseURL overrides https://<project>.api.sanity.io (tests, proxies).
	BaseURL string
}

// Client issues queries and mutations against one dataset.
type Client struct {
	cfg     Config
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// APIError is a non-2xx answer from the content store.
type APIError struct {
	StatusCode  int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sanity: status %d: %s", e.StatusCode, e.Description)
}

// NewClient creates a content store client. A client with missing project settings is still
// returned; its calls fail with ErrNotConfigured.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2024-01-01"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	base := cfg.BaseURL
	if base == "" && cfg.ProjectID != "" {
		base = fmt.Sprintf("https://%s.api.sanity.io", cfg.ProjectID)
	}
	return &Client{
		cfg:     cfg,
		baseURL: strings.TrimRight(base, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// Configured reports whether the client can reach a dataset.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.cfg.Dataset != ""
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
	Ms     int             `json:"ms"`
}

// Query runs a GROQ query and decodes its result into dest. Params are JSON-encoded and
// passed as $name query arguments; a nil value becomes null.
func (c *Client) Query(ctx context.Context, groq string, params map[string]interface{}, dest interface{}) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	q := url.Values{}
	q.Set("query", groq)
	for name, v := range params {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode param %s: %w", name, err)
		}
		q.Set("$"+name, string(raw))
	}
	endpoint := fmt.Sprintf("%s/v%s/data/query/%s?%s", c.baseURL, c.cfg.APIVersion, url.PathEscape(c.cfg.Dataset), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	var out queryResponse
	if err := c.do(req, &out); err != nil {
		return err
	}
	c.logger.Debug("sanity query", zap.Int("ms", out.Ms))
	if dest == nil || len(out.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(out.Result, dest); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}

type mutateRequest struct {
	Mutations []map[string]interface{} `json:"mutations"`
}

type mutateResponse struct {
	TransactionID string `json:"transactionId"`
	Results       []struct {
		ID        string `json:"id"`
		Operation string `json:"operation"`
	} `json:"results"`
}

// Create stores doc as a new document and returns the id assigned by the store.
// doc must marshal to a JSON object carrying _type.
func (c *Client) Create(ctx context.Context, doc interface{}) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	body, err := json.Marshal(mutateRequest{Mutations: []map[string]interface{}{{"create": doc}}})
	if err != nil {
		return "", fmt.Errorf("encode mutation: %w", err)
	}
	endpoint := fmt.Sprintf("%s/v%s/data/mutate/%s?returnIds=true&visibility=sync", c.baseURL, c.cfg.APIVersion, url.PathEscape(c.cfg.Dataset))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out mutateResponse
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if len(out.Results) == 0 || out.Results[0].ID == "" {
		return "", fmt.Errorf("sanity: mutation %s returned no document id", out.TransactionID)
	}
	c.logger.Debug("sanity create", zap.String("id", out.Results[0].ID), zap.String("transaction_id", out.TransactionID))
	return out.Results[0].ID, nil
}

func (c *Client) do(req *http.Request, dest interface{}) error {
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sanity request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Description: errorDescription(raw)}
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func errorDescription(raw []byte) string {
	var body struct {
		Error struct {
			Description string `json:"description"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error.Description != "" {
			return body.Error.Description
		}
		if body.Message != "" {
			return body.Message
		}
	}
	if len(raw) > 200 {
		raw = raw[:200]
	}
	return strings.TrimSpace(string(raw))
}
