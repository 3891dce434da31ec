package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scentscan/backend/internal/domain"
)

// ComparisonService is the price-comparison engine the handler delegates to.
type ComparisonService interface {
	Compare(ctx context.Context, perfumeName string) (*domain.ComparisonResult, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	comparisons ComparisonService
}

// NewHandler creates a new HTTP handler
func NewHandler(comparisons ComparisonService) *Handler {
	return &Handler{comparisons: comparisons}
}

// Root returns the API banner
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "ScentScan Price Comparison API",
	})
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "scentscan-backend",
		"version": "1.0.0",
	})
}

// SearchPrices handles price comparison requests
func (h *Handler) SearchPrices(c *gin.Context) {
	var req domain.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "perfume name is required",
		})
		return
	}

	result, err := h.comparisons.Compare(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidQuery) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "perfume name is required",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "price comparison failed",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
