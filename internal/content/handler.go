// Package content serves read-only site content from the content store, cached when Redis
// is configured.
package content

import (
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mediaarise/backend/internal/apperr"
	"github.com/mediaarise/backend/internal/models"
	"github.com/mediaarise/backend/pkg/cache"
	"github.com/mediaarise/backend/pkg/response"
)

// Querier runs GROQ queries.
type Querier interface {
	Query(ctx context.Context, groq string, params map[string]interface{}, dest interface{}) error
}

// Handler serves programs and named content documents.
type Handler struct {
	store  Querier
	cache  *cache.Cache
	logger *zap.Logger
}

// NewHandler creates a content handler. c may be nil.
func NewHandler(store Querier, c *cache.Cache, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, cache: c, logger: logger}
}

// Programs returns the active programs.
func (h *Handler) Programs(ctx context.Context) ([]models.Program, error) {
	var list []models.Program
	err := h.cache.Load(ctx, "programs", &list, func(ctx context.Context, dest interface{}) error {
		return h.store.Query(ctx, ProgramsQuery, nil, dest)
	})
	if err != nil {
		return nil, apperr.Remote("Failed to load programs", err)
	}
	if list == nil {
		list = []models.Program{}
	}
	return list, nil
}

// Named returns the raw result of a named content query.
func (h *Handler) Named(ctx context.Context, name string) (json.RawMessage, error) {
	q, ok := namedQueries[name]
	if !ok {
		return nil, apperr.NotFound("Unknown content")
	}
	var raw json.RawMessage
	err := h.cache.Load(ctx, "named:"+name, &raw, func(ctx context.Context, dest interface{}) error {
		return h.store.Query(ctx, q, nil, dest)
	})
	if err != nil {
		return nil, apperr.Remote("Failed to load content", err)
	}
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}
	return raw, nil
}

// ListPrograms handles GET /api/programs.
func (h *Handler) ListPrograms(c *gin.Context) {
	list, err := h.Programs(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err, "Failed to load programs")
		return
	}
	response.OK(c, gin.H{"programs": list})
}

// Get handles GET /api/content/:name.
func (h *Handler) Get(c *gin.Context) {
	name := c.Param("name")
	raw, err := h.Named(c.Request.Context(), name)
	if err != nil {
		response.Error(c, h.logger, err, "Failed to load content")
		return
	}
	response.OK(c, gin.H{"name": name, "data": raw})
}
