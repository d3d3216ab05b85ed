package heatmap

import (
	"image/color"
	"testing"
)

func TestColorForEndpoints(t *testing.T) {
	first := color.NRGBA{R: 0, G: 0, B: 255, A: 0}
	if got := ColorFor(0); got != first {
		t.Fatalf("ColorFor(0) = %v, want first stop %v", got, first)
	}

	last := color.NRGBA{R: 255, G: 0, B: 0, A: 217}
	if got := ColorFor(1); got != last {
		t.Fatalf("ColorFor(1) = %v, want last stop %v", got, last)
	}
}

func TestColorForClampsInput(t *testing.T) {
	if ColorFor(-3) != ColorFor(0) {
		t.Fatal("negative density must clamp to the first stop")
	}
	if ColorFor(42) != ColorFor(1) {
		t.Fatal("density above 1 must clamp to the last stop")
	}
}

func TestColorForAlphaMonotone(t *testing.T) {
	prev := ColorFor(0).A
	for i := 1; i <= 1000; i++ {
		a := ColorFor(float64(i) / 1000).A
		if a < prev {
			t.Fatalf("alpha decreased at t=%v: %d -> %d", float64(i)/1000, prev, a)
		}
		prev = a
	}
}

func TestColorForDeterministic(t *testing.T) {
	for _, tv := range []float64{0, 0.13, 0.5, 0.77, 1} {
		if ColorFor(tv) != ColorFor(tv) {
			t.Fatalf("ColorFor(%v) is not deterministic", tv)
		}
	}
}

func TestLegendIsACopy(t *testing.T) {
	stops := Legend()
	if len(stops) != 8 {
		t.Fatalf("legend has %d stops, want 8", len(stops))
	}

	stops[0].R = 0.99
	if fresh := Legend(); fresh[0].R == 0.99 {
		t.Fatal("mutating the returned legend must not affect the stop table")
	}
}
