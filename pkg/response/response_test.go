package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mediaarise/backend/internal/apperr"
)

func respond(err error, fallback string) (*httptest.ResponseRecorder, *observer.ObservedLogs) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.DebugLevel)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/thing", nil)
	Error(c, zap.New(core), err, fallback)
	return w, logs
}

func TestErrorValidation(t *testing.T) {
	w, logs := respond(apperr.Validation("Email is required"), "Something went wrong")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Email is required"}`, w.Body.String())
	assert.Zero(t, logs.Len())
}

func TestErrorRemoteUsesFallback(t *testing.T) {
	cause := errors.New("POST https://x.api.sanity.io: connection refused")
	w, logs := respond(apperr.Remote("Failed to save message", cause), "Failed to send message. Please try again later.")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Failed to send message. Please try again later."}`, w.Body.String())
	assert.Equal(t, 1, logs.Len())
}

func TestErrorForeignIsInternal(t *testing.T) {
	w, _ := respond(fmt.Errorf("wrap: %w", errors.New("boom")), "Internal error")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestErrorConfigurationKeepsMessage(t *testing.T) {
	w, _ := respond(apperr.Configuration("Google Sheet not configured"), "Internal error")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Google Sheet not configured")
}

func TestErrorNotFound(t *testing.T) {
	w, logs := respond(apperr.NotFound("Invalid or expired link"), "x")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, logs.Len())
}
