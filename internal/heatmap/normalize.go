package heatmap

import (
	"math"
	"sort"
)

// Normalization constants. These are empirically tuned for visual contrast
// and are preserved exactly; a raw-maximum scale washes out sparse views
// because a single outlier dominates.
const (
	// denseCellThreshold separates sparse views from dense ones by the
	// number of strictly-positive cells.
	denseCellThreshold = 100

	// densePercentile is the rank used as the scale in dense views.
	densePercentile = 0.90

	// sparseMedianFactor and sparseMaxFactor blend the median and the true
	// maximum into the scale for sparse views.
	sparseMedianFactor = 3.0
	sparseMaxFactor    = 0.25
)

// NormalizationScale derives the adaptive divisor that maps raw cell
// density to a visually useful [0,1] range. The result is only ever used as
// a divisor; values above the scale are clamped later by the color mapper,
// not here.
//
// A nil grid or a grid with no positive cells yields 1.0 so division is
// always safe.
func NormalizationScale(g *DensityGrid) float64 {
	if g == nil {
		return 1.0
	}

	positives := make([]float64, 0, len(g.Cells))
	for _, v := range g.Cells {
		if v > 0 {
			positives = append(positives, v)
		}
	}
	if len(positives) == 0 {
		return 1.0
	}

	sort.Float64s(positives)
	n := len(positives)

	if n > denseCellThreshold {
		idx := int(densePercentile * float64(n))
		if idx >= n {
			idx = n - 1
		}
		return positives[idx]
	}

	median := positives[n/2]
	rawMax := positives[n-1]
	return math.Max(median*sparseMedianFactor, rawMax*sparseMaxFactor)
}
