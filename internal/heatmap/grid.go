// Package heatmap computes a continuous density field from geographic point
// samples and renders it as a smoothly shaded color overlay.
package heatmap

import (
	"context"
	"math"
	"sync/atomic"

	"github.com/photoatlas/heatmap-backend-go/internal/models"
	"github.com/photoatlas/heatmap-backend-go/internal/spatial"
)

// GridSize is the fixed grid resolution on both axes. Resolution is a
// quality/performance trade-off and does not adapt to data volume.
const GridSize = 150

// Spread parameter bounds. Out-of-range values are clamped, not rejected.
const (
	SpreadMin = 10.0
	SpreadMax = 100.0
)

// sigmaDivisor converts the kernel radius in cells to the Gaussian sigma.
const sigmaDivisor = 2.5

// cancelCheckInterval is how many points are accumulated between context
// checks during a build.
const cancelCheckInterval = 256

// gridVersion is a process-wide monotonic counter. Every grid gets a fresh
// version so downstream caches never depend on object identity.
var gridVersion atomic.Uint64

// DensityGrid is an immutable square matrix of accumulated Gaussian point
// weights over a viewport region. A nil *DensityGrid is the canonical
// no-data sentinel; an all-zero grid is valid and means no points fell
// inside the region.
type DensityGrid struct {
	Region      spatial.Region
	Size        int
	CellSizeLat float64 // degrees of latitude per cell
	CellSizeLon float64 // degrees of longitude per cell
	Cells       []float64
	Version     uint64
}

// At returns the accumulated weight of the cell at (row, col). Row 0 is the
// southern edge of the region.
func (g *DensityGrid) At(row, col int) float64 {
	return g.Cells[row*g.Size+col]
}

// CellSizeMeters returns the approximate ground size of one cell, measured
// along the latitude axis at the region center.
func (g *DensityGrid) CellSizeMeters() float64 {
	return spatial.HaversineDistance(
		g.Region.CenterLat, g.Region.CenterLon,
		g.Region.CenterLat+g.CellSizeLat, g.Region.CenterLon,
	)
}

// ClampSpread clamps the spread control value to its valid range.
func ClampSpread(spread float64) float64 {
	if math.IsNaN(spread) || spread < SpreadMin {
		return SpreadMin
	}
	if spread > SpreadMax {
		return SpreadMax
	}
	return spread
}

// RadiusCells converts the spread parameter to the kernel radius in cells.
func RadiusCells(spread float64) int {
	radius := int(ClampSpread(spread)/10) + 1
	if radius < 1 {
		radius = 1
	}
	return radius
}

// BuildGrid accumulates a Gaussian-weighted density contribution from each
// point into a fresh GridSize×GridSize grid covering region.
//
// Points outside the region are silently dropped. An empty point list or a
// degenerate region yields the nil sentinel with no error. Accumulation is
// purely additive, so the result is independent of point order.
//
// The build honors ctx: a cancelled build returns ctx's error and no grid.
func BuildGrid(ctx context.Context, points []models.Point, region spatial.Region, spread float64) (*DensityGrid, error) {
	if len(points) == 0 || !region.Valid() {
		return nil, nil
	}

	minLat, minLon, _, _ := region.Bounds()
	g := &DensityGrid{
		Region:      region,
		Size:        GridSize,
		CellSizeLat: region.LatSpan / GridSize,
		CellSizeLon: region.LonSpan / GridSize,
		Cells:       make([]float64, GridSize*GridSize),
		Version:     gridVersion.Add(1),
	}

	radius := RadiusCells(spread)
	sigma := float64(radius) / sigmaDivisor
	twoSigmaSq := 2 * sigma * sigma

	for i, p := range points {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		col := int(math.Floor((p.Longitude - minLon) / g.CellSizeLon))
		row := int(math.Floor((p.Latitude - minLat) / g.CellSizeLat))
		if row < 0 || row >= GridSize || col < 0 || col >= GridSize {
			continue
		}

		for dr := -radius; dr <= radius; dr++ {
			rr := row + dr
			if rr < 0 || rr >= GridSize {
				continue
			}
			for dc := -radius; dc <= radius; dc++ {
				cc := col + dc
				if cc < 0 || cc >= GridSize {
					continue
				}
				d2 := float64(dr*dr + dc*dc)
				g.Cells[rr*GridSize+cc] += math.Exp(-d2 / twoSigmaSq)
			}
		}
	}

	return g, nil
}
