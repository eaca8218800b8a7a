package registrations

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mediaarise/backend/pkg/response"
)

// Handler handles registration HTTP endpoints.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates a registrations handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// Register handles POST /api/register. Creates a pending registration and returns its participant link.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	reg, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, h.logger, err, "Failed to submit registration")
		return
	}
	h.logger.Info("registration created", zap.String("registration_id", reg.ID), zap.String("program_id", req.ProgramID))
	response.Created(c, gin.H{
		"success":        true,
		"message":        "Registration submitted successfully",
		"registrationId": reg.ID,
		"participantUrl": reg.ParticipantURL,
	})
}

// Lookup handles POST /api/register/lookup. Returns one participant entry per program.
func (h *Handler) Lookup(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email is required")
		return
	}
	list, err := h.svc.Lookup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, h.logger, err, "Failed to look up registration")
		return
	}
	if len(list) == 0 {
		response.OK(c, gin.H{"registrations": list, "message": "No registration found for this email."})
		return
	}
	response.OK(c, gin.H{"registrations": list})
}

// Participant handles GET /api/register/participant?id=. Returns session recaps and attendance.
func (h *Handler) Participant(c *gin.Context) {
	view, err := h.svc.Participant(c.Request.Context(), c.Query("id"))
	if err != nil {
		response.Error(c, h.logger, err, "Failed to load participant")
		return
	}
	response.OK(c, view)
}
