// Package webhook receives content store change notifications and forwards registration
// status changes to the spreadsheet.
package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mediaarise/backend/internal/apperr"
	"github.com/mediaarise/backend/internal/models"
	"github.com/mediaarise/backend/pkg/response"
)

// SignatureHeader carries base64(HMAC-SHA256(secret, body)).
const SignatureHeader = "signature"

// StatusUpdater applies a registration status change to the spreadsheet.
type StatusUpdater interface {
	UpdateRegistrationStatus(ctx context.Context, registrationID, status string) error
}

// Payload is the projected document sent by the content store.
type Payload struct {
	ID     string `json:"_id"`
	Type   string `json:"_type"`
	Status string `json:"status"`
}

// Handler verifies and dispatches change notifications.
type Handler struct {
	updater      StatusUpdater
	secret       []byte
	maxBodyBytes int64
	logger       *zap.Logger
}

// NewHandler creates a webhook handler. An empty secret disables signature verification.
func NewHandler(updater StatusUpdater, secret string, maxBodyBytes int64, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = 1 << 20
	}
	if secret == "" {
		logger.Warn("webhook signature verification disabled (SANITY_WEBHOOK_SECRET not set)")
	}
	return &Handler{updater: updater, secret: []byte(secret), maxBodyBytes: maxBodyBytes, logger: logger}
}

// Sign returns the signature of body under secret.
func Sign(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify checks signature against the raw body. It always passes when no secret is set.
func (h *Handler) Verify(body []byte, signature string) error {
	if len(h.secret) == 0 {
		return nil
	}
	if signature == "" {
		return apperr.Auth("Missing signature")
	}
	if !hmac.Equal([]byte(Sign(h.secret, body)), []byte(signature)) {
		return apperr.Auth("Invalid signature")
	}
	return nil
}

// Receive handles POST /api/sanity-webhook.
func (h *Handler) Receive(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Status(c, http.StatusRequestEntityTooLarge, "Payload too large")
			return
		}
		response.BadRequest(c, "Invalid payload")
		return
	}

	// Verify before parsing: the signature covers the exact bytes received.
	if err := h.Verify(body, c.GetHeader(SignatureHeader)); err != nil {
		h.logger.Warn("webhook rejected", zap.Error(err), zap.String("client_ip", c.ClientIP()))
		response.Error(c, h.logger, err, "Unauthorized")
		return
	}

	if !json.Valid(body) {
		response.BadRequest(c, "Invalid payload")
		return
	}
	if docType := documentType(body); docType != models.DocTypeRegistration {
		h.logger.Info("webhook skipped", zap.String("type", docType))
		response.OK(c, gin.H{"message": "Not a registration document, skipping"})
		return
	}

	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		response.BadRequest(c, "Invalid payload")
		return
	}
	h.logger.Info("webhook received", zap.String("id", p.ID), zap.String("status", p.Status))
	if p.ID == "" || p.Status == "" {
		response.BadRequest(c, "Missing required fields")
		return
	}

	if err := h.updater.UpdateRegistrationStatus(c.Request.Context(), p.ID, p.Status); err != nil {
		h.logger.Error("status sync failed", zap.String("registration_id", p.ID), zap.Error(err))
		response.Internal(c, apperr.Message(err, "Webhook processing failed"))
		return
	}
	response.OK(c, gin.H{"success": true, "message": "Status synced to spreadsheet"})
}

// documentType returns the _type of a JSON object body, or "" when body is not an object or
// _type is not a string.
func documentType(body []byte) string {
	var head struct {
		Type json.RawMessage `json:"_type"`
	}
	if err := json.Unmarshal(body, &head); err != nil {
		return ""
	}
	var t string
	if err := json.Unmarshal(head.Type, &t); err != nil {
		return ""
	}
	return t
}
