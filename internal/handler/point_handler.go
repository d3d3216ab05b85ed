package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/photoatlas/heatmap-backend-go/internal/models"
	"github.com/photoatlas/heatmap-backend-go/internal/service"
	"github.com/photoatlas/heatmap-backend-go/pkg/response"
)

// maxBatchSize caps a single point upload.
const maxBatchSize = 10000

// PointHandler handles HTTP requests for photo points
type PointHandler struct {
	service *service.PointService
}

// NewPointHandler creates a new point handler
func NewPointHandler(service *service.PointService) *PointHandler {
	return &PointHandler{service: service}
}

// CreatePoints handles POST /api/v1/points
func (h *PointHandler) CreatePoints(c *gin.Context) {
	var uploads []models.PointUpload
	if err := c.ShouldBindJSON(&uploads); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}
	if len(uploads) == 0 {
		response.BadRequest(c, "Empty point batch", nil)
		return
	}
	if len(uploads) > maxBatchSize {
		response.BadRequest(c, "Point batch too large", nil)
		return
	}

	inserted, err := h.service.CreatePoints(c.Request.Context(), uploads)
	if err != nil {
		response.BadRequest(c, "Failed to store points", err)
		return
	}

	response.Success(c, gin.H{"inserted": inserted})
}

// GetPoints handles GET /api/v1/points
func (h *PointHandler) GetPoints(c *gin.Context) {
	var filter models.PointFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	result, err := h.service.GetPoints(c.Request.Context(), filter)
	if err != nil {
		response.InternalError(c, "Failed to get points", err)
		return
	}

	response.Success(c, result)
}

// GetBounds handles GET /api/v1/points/bounds
func (h *PointHandler) GetBounds(c *gin.Context) {
	bounds, ok, err := h.service.GetBounds(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to get bounds", err)
		return
	}
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}

	response.Success(c, bounds)
}
