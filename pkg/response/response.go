package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mediaarise/backend/internal/apperr"
)

// ErrorBody is the error envelope returned by every endpoint.
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// OK sends a 200 JSON response with the given body.
func OK(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

// Created sends a 201 JSON response with the given body.
func Created(c *gin.Context, body interface{}) {
	c.JSON(http.StatusCreated, body)
}

// BadRequest sends 400 with error message.
func BadRequest(c *gin.Context, err string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: err})
}

// Unauthorized sends 401.
func Unauthorized(c *gin.Context, err string) {
	c.JSON(http.StatusUnauthorized, ErrorBody{Error: err})
}

// NotFound sends 404.
func NotFound(c *gin.Context, err string) {
	c.JSON(http.StatusNotFound, ErrorBody{Error: err})
}

// Internal sends 500.
func Internal(c *gin.Context, err string) {
	c.JSON(http.StatusInternalServerError, ErrorBody{Error: err})
}

// Status sends an error envelope with an explicit status code.
func Status(c *gin.Context, status int, err string) {
	c.JSON(status, ErrorBody{Error: err})
}

// Error maps err to its status code and caller-safe message. Server-side kinds are logged
// with the full cause; fallback replaces messages of foreign errors.
func Error(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError && logger != nil {
		logger.Error("request failed",
			zap.Error(err),
			zap.String("kind", apperr.KindOf(err).String()),
			zap.String("path", c.Request.URL.Path),
		)
	}
	msg := fallback
	if apperr.KindOf(err) != apperr.KindRemote {
		msg = apperr.Message(err, fallback)
	}
	Status(c, status, msg)
}
