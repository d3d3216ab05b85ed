package heatmap

import (
	"math/rand"
	"testing"
)

func gridWithValues(values []float64) *DensityGrid {
	g := &DensityGrid{
		Size:  GridSize,
		Cells: make([]float64, GridSize*GridSize),
	}
	copy(g.Cells, values)
	return g
}

func TestNormalizationScaleEmpty(t *testing.T) {
	if got := NormalizationScale(nil); got != 1.0 {
		t.Fatalf("nil grid scale = %v, want 1.0", got)
	}
	if got := NormalizationScale(gridWithValues(nil)); got != 1.0 {
		t.Fatalf("all-zero grid scale = %v, want 1.0", got)
	}
}

func TestNormalizationScaleSparse(t *testing.T) {
	// A single positive cell: median and max are both v, so the median
	// term dominates: max(3v, v/4) = 3v.
	if got := NormalizationScale(gridWithValues([]float64{4})); got != 12.0 {
		t.Fatalf("single-cell scale = %v, want 12.0", got)
	}

	// One outlier among small values: the max term dominates.
	// positives sorted = [1 1 1 100], median = idx 2 = 1, max = 100.
	// max(3*1, 0.25*100) = 25.
	if got := NormalizationScale(gridWithValues([]float64{1, 1, 100, 1})); got != 25.0 {
		t.Fatalf("outlier sparse scale = %v, want 25.0", got)
	}
}

func TestNormalizationScaleDense(t *testing.T) {
	// 150 positive cells 1..150, shuffled: rank floor(0.9*150)=135 of the
	// sorted positives, i.e. the value 136.
	values := make([]float64, 150)
	for i := range values {
		values[i] = float64(i + 1)
	}
	rand.New(rand.NewSource(3)).Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})

	if got := NormalizationScale(gridWithValues(values)); got != 136.0 {
		t.Fatalf("dense scale = %v, want 136.0 (90th percentile rank)", got)
	}
}

func TestNormalizationScaleThresholdBoundary(t *testing.T) {
	// Exactly 100 positive cells is still the sparse branch.
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i + 1)
	}
	// median = sorted[50] = 51, max = 100: max(153, 25) = 153.
	if got := NormalizationScale(gridWithValues(values)); got != 153.0 {
		t.Fatalf("boundary scale = %v, want 153.0 (sparse formula)", got)
	}

	// 101 positive cells flips to the dense branch: sorted[90] = 91.
	values = append(values, 101)
	if got := NormalizationScale(gridWithValues(values)); got != 91.0 {
		t.Fatalf("post-boundary scale = %v, want 91.0 (dense formula)", got)
	}
}
