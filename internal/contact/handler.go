package contact

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mediaarise/backend/pkg/response"
)

// Handler handles the contact form endpoint.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates a contact handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// Submit handles POST /api/contact.
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	id, err := h.svc.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, h.logger, err, "Failed to send message. Please try again later.")
		return
	}
	h.logger.Info("contact message stored", zap.String("id", id))
	response.OK(c, gin.H{
		"success": true,
		"message": "Your message has been received. We will get back to you soon!",
		"id":      id,
	})
}
