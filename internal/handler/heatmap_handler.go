package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/photoatlas/heatmap-backend-go/internal/models"
	"github.com/photoatlas/heatmap-backend-go/internal/service"
	"github.com/photoatlas/heatmap-backend-go/internal/spatial"
	"github.com/photoatlas/heatmap-backend-go/pkg/response"
)

// Defaults for heatmap requests that omit parameters.
const (
	defaultSpread    = 50.0
	defaultImageSize = 800
)

// HeatmapHandler handles HTTP requests for the density heatmap
type HeatmapHandler struct {
	service *service.HeatmapService
}

// NewHeatmapHandler creates a new heatmap handler
func NewHeatmapHandler(service *service.HeatmapService) *HeatmapHandler {
	return &HeatmapHandler{service: service}
}

// GetHeatmap handles GET /api/v1/heatmap, responding with a PNG overlay.
// The no-data sentinel maps to 204 so the map client skips drawing.
func (h *HeatmapHandler) GetHeatmap(c *gin.Context) {
	var req models.HeatmapRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}
	applyDefaults(&req)

	data, err := h.service.RenderPNG(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrNoData) {
			c.Status(http.StatusNoContent)
			return
		}
		if c.Request.Context().Err() != nil {
			// Client went away mid-computation; nothing to answer.
			return
		}
		response.InternalError(c, "Failed to render heatmap", err)
		return
	}

	c.Data(http.StatusOK, "image/png", data)
}

// GetGrid handles GET /api/v1/heatmap/grid
func (h *HeatmapHandler) GetGrid(c *gin.Context) {
	var req models.HeatmapRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}
	applyDefaults(&req)

	region := spatial.Region{
		CenterLat: req.CenterLat,
		CenterLon: req.CenterLon,
		LatSpan:   req.LatSpan,
		LonSpan:   req.LonSpan,
	}
	grid, err := h.service.GridResponse(c.Request.Context(), region, req.Spread)
	if err != nil {
		if c.Request.Context().Err() != nil {
			return
		}
		response.InternalError(c, "Failed to compute grid", err)
		return
	}

	response.Success(c, grid)
}

// GetLegend handles GET /api/v1/heatmap/legend
func (h *HeatmapHandler) GetLegend(c *gin.Context) {
	response.Success(c, gin.H{"stops": h.service.Legend()})
}

// PostViewport handles POST /api/v1/heatmap/viewport. Pushes from the map
// client are debounced into at most one in-flight recompute.
func (h *HeatmapHandler) PostViewport(c *gin.Context) {
	var req models.ViewportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}
	if req.Spread == 0 {
		req.Spread = defaultSpread
	}

	if err := h.service.SubmitViewport(c.Request.Context(), req); err != nil {
		response.InternalError(c, "Failed to submit viewport", err)
		return
	}

	c.Status(http.StatusAccepted)
}

// GetLatest handles GET /api/v1/heatmap/latest
func (h *HeatmapHandler) GetLatest(c *gin.Context) {
	grid, ok := h.service.Latest()
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}

	response.Success(c, grid)
}

func applyDefaults(req *models.HeatmapRequest) {
	if req.Spread == 0 {
		req.Spread = defaultSpread
	}
	if req.Width == 0 {
		req.Width = defaultImageSize
	}
	if req.Height == 0 {
		req.Height = defaultImageSize
	}
}
