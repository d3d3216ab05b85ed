package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"sync"

	"github.com/photoatlas/heatmap-backend-go/internal/heatmap"
	"github.com/photoatlas/heatmap-backend-go/internal/models"
	"github.com/photoatlas/heatmap-backend-go/internal/repository"
	"github.com/photoatlas/heatmap-backend-go/internal/spatial"
	"github.com/photoatlas/heatmap-backend-go/internal/stats"
)

// ErrNoData marks the canonical empty result: no points stored, or a
// degenerate viewport. Consumers skip drawing instead of failing.
var ErrNoData = errors.New("service: no heatmap data")

// HeatmapService orchestrates the density pipeline: point snapshot from
// the repository, grid build, normalization, and image synthesis. It also
// owns the background worker for debounced viewport-driven recomputes.
type HeatmapService struct {
	repo     *repository.PointRepository
	worker   *heatmap.Worker
	renderer *heatmap.Renderer

	mu     sync.RWMutex
	latest *heatmap.Result

	done chan struct{}
}

// NewHeatmapService creates the service and starts consuming worker
// results into the latest-result slot.
func NewHeatmapService(repo *repository.PointRepository, worker *heatmap.Worker) *HeatmapService {
	s := &HeatmapService{
		repo:     repo,
		worker:   worker,
		renderer: heatmap.NewRenderer(),
		done:     make(chan struct{}),
	}
	go s.consume()
	return s
}

func (s *HeatmapService) consume() {
	for {
		select {
		case res := <-s.worker.Results():
			s.mu.Lock()
			s.latest = &res
			s.mu.Unlock()
		case <-s.done:
			return
		}
	}
}

// Close stops the worker and the result consumer.
func (s *HeatmapService) Close() {
	s.worker.Close()
	close(s.done)
}

// Compute synchronously builds the grid and scale for the given viewport.
// Returns (nil, 1, nil) for the no-data sentinel.
func (s *HeatmapService) Compute(ctx context.Context, region spatial.Region, spread float64) (*heatmap.DensityGrid, float64, error) {
	snapshot, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, 1, fmt.Errorf("failed to load point snapshot: %w", err)
	}

	grid, err := heatmap.BuildGrid(ctx, snapshot, region, spread)
	if err != nil {
		return nil, 1, err
	}

	return grid, heatmap.NormalizationScale(grid), nil
}

// RenderPNG computes the grid for the viewport and encodes the rendered
// image as PNG. Returns ErrNoData for the empty sentinel.
func (s *HeatmapService) RenderPNG(ctx context.Context, req models.HeatmapRequest) ([]byte, error) {
	region := spatial.Region{
		CenterLat: req.CenterLat,
		CenterLon: req.CenterLon,
		LatSpan:   req.LatSpan,
		LonSpan:   req.LonSpan,
	}

	grid, scale, err := s.Compute(ctx, region, req.Spread)
	if err != nil {
		return nil, err
	}
	if grid == nil {
		return nil, ErrNoData
	}

	img, err := s.renderer.Render(grid, scale, req.Width, req.Height)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// GridResponse computes the grid for the viewport and returns its JSON
// form with summary statistics. The empty sentinel maps to Empty=true.
func (s *HeatmapService) GridResponse(ctx context.Context, region spatial.Region, spread float64) (*models.GridResponse, error) {
	grid, scale, err := s.Compute(ctx, region, spread)
	if err != nil {
		return nil, err
	}
	if grid == nil {
		return &models.GridResponse{Empty: true}, nil
	}

	return &models.GridResponse{
		Size:           grid.Size,
		CellSizeLat:    grid.CellSizeLat,
		CellSizeLon:    grid.CellSizeLon,
		CellSizeMeters: grid.CellSizeMeters(),
		Scale:          scale,
		Cells:          grid.Cells,
		Stats:          gridStats(grid, scale),
	}, nil
}

// SubmitViewport snapshots the points and hands a recompute job to the
// debounced worker. Rapid successive calls coalesce.
func (s *HeatmapService) SubmitViewport(ctx context.Context, req models.ViewportRequest) error {
	snapshot, err := s.repo.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to load point snapshot: %w", err)
	}

	s.worker.Submit(heatmap.Job{
		Points: snapshot,
		Region: spatial.Region{
			CenterLat: req.CenterLat,
			CenterLon: req.CenterLon,
			LatSpan:   req.LatSpan,
			LonSpan:   req.LonSpan,
		},
		Spread: req.Spread,
	})
	return nil
}

// Latest returns the most recently published worker result, if any.
func (s *HeatmapService) Latest() (*models.GridResponse, bool) {
	s.mu.RLock()
	res := s.latest
	s.mu.RUnlock()

	if res == nil {
		return nil, false
	}
	if res.Empty {
		return &models.GridResponse{Empty: true}, true
	}

	return &models.GridResponse{
		Size:           res.Grid.Size,
		CellSizeLat:    res.Grid.CellSizeLat,
		CellSizeLon:    res.Grid.CellSizeLon,
		CellSizeMeters: res.Grid.CellSizeMeters(),
		Scale:          res.Scale,
		Cells:          res.Grid.Cells,
		Stats:          gridStats(res.Grid, res.Scale),
	}, true
}

// Legend exposes the color stop table for UI legend rendering.
func (s *HeatmapService) Legend() []heatmap.ColorStop {
	return heatmap.Legend()
}

func gridStats(grid *heatmap.DensityGrid, scale float64) *models.GridStats {
	positives := make([]float64, 0, len(grid.Cells))
	for _, v := range grid.Cells {
		if v > 0 {
			positives = append(positives, v)
		}
	}

	return &models.GridStats{
		PositiveCells: len(positives),
		Median:        stats.Median(positives),
		P90:           stats.Percentile(positives, 90),
		Max:           stats.Max(positives),
		Scale:         scale,
	}
}
