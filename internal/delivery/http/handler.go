package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kasichka/backend/internal/domain"
	"github.com/kasichka/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	products *usecase.ProductService
	matcher  *usecase.MatchingService
}

// NewHandler creates a new HTTP handler
func NewHandler(products *usecase.ProductService, matcher *usecase.MatchingService) *Handler {
	return &Handler{products: products, matcher: matcher}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "kasichka-backend",
		"version": "1.0.0",
	})
}

// NormalizeRequest is the body for normalization endpoints.
type NormalizeRequest struct {
	Name string `json:"name" binding:"required"`
}

// MatchRequest supplies a raw name plus an optional inline candidate list.
// Without candidates the catalog is queried instead.
type MatchRequest struct {
	Name       string                  `json:"name" binding:"required"`
	Candidates []domain.MatchCandidate `json:"candidates"`
}

// NormalizeProduct parses and normalizes a raw receipt product name.
func (h *Handler) NormalizeProduct(c *gin.Context) {
	if h.products == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "product service not available"})
		return
	}

	var req NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	result, err := h.products.Normalize(req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "normalization failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// MatchProduct resolves a raw product name against the catalog, or against
// the candidates supplied inline in the request.
func (h *Handler) MatchProduct(c *gin.Context) {
	if h.products == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "product service not available"})
		return
	}

	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if len(req.Candidates) > 0 {
		h.matchInline(c, req)
		return
	}

	resolution, err := h.products.ResolveProduct(c.Request.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "product resolution failed"})
		}
		return
	}

	c.JSON(http.StatusOK, resolution)
}

// matchInline scores caller-provided candidates without a catalog round trip.
func (h *Handler) matchInline(c *gin.Context, req MatchRequest) {
	normalized, err := h.products.Normalize(req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match := h.matcher.MatchProduct(normalized, req.Candidates)
	c.JSON(http.StatusOK, domain.ProductResolution{
		Normalized:  normalized,
		Match:       match,
		NeedsReview: match == nil,
		Source:      "live",
	})
}
