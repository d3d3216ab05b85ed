package heatmap

import (
	"bytes"
	"testing"

	"github.com/photoatlas/heatmap-backend-go/internal/spatial"
)

// smallGrid builds a 10x10 grid with a few positive cells directly; the
// renderer only depends on Size, Cells and Version.
func smallGrid() *DensityGrid {
	g := &DensityGrid{
		Region:      spatial.Region{CenterLat: 45, CenterLon: 9, LatSpan: 1, LonSpan: 1},
		Size:        10,
		CellSizeLat: 0.1,
		CellSizeLon: 0.1,
		Cells:       make([]float64, 100),
		Version:     gridVersion.Add(1),
	}
	g.Cells[4*10+4] = 3.0
	g.Cells[4*10+5] = 1.5
	g.Cells[7*10+2] = 0.5
	return g
}

func TestRenderNoGrid(t *testing.T) {
	r := NewRenderer()

	if _, err := r.Render(nil, 1, 64, 64); err != ErrNoGrid {
		t.Fatalf("nil grid: err = %v, want ErrNoGrid", err)
	}
	if _, err := r.Render(&DensityGrid{}, 1, 64, 64); err != ErrNoGrid {
		t.Fatalf("degenerate grid: err = %v, want ErrNoGrid", err)
	}
}

func TestRenderDeterministic(t *testing.T) {
	g := smallGrid()
	scale := NormalizationScale(g)

	a, err := NewRenderer().Render(g, scale, 64, 64)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	b, err := NewRenderer().Render(g, scale, 64, 64)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("re-rendering the same grid and scale must be bit-identical")
	}
}

func TestRenderMemo(t *testing.T) {
	g := smallGrid()
	r := NewRenderer()

	first, err := r.Render(g, 1, 64, 64)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, err := r.Render(g, 1, 64, 64)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if first != second {
		t.Fatal("unchanged grid and size must hit the memo")
	}

	// A different size misses the memo.
	third, err := r.Render(g, 1, 32, 32)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if third == first {
		t.Fatal("changed pixel size must not reuse the memoized image")
	}

	// A changed grid must never be served the stale image.
	g2 := smallGrid()
	g2.Cells[0] = 9.0
	fourth, err := r.Render(g2, 1, 32, 32)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if bytes.Equal(fourth.Pix, third.Pix) {
		t.Fatal("changed grid rendered identically to the previous grid")
	}
}

func TestRenderClampsDimensions(t *testing.T) {
	g := smallGrid()

	img, err := NewRenderer().Render(g, 1, 5000, 10)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if img.Bounds().Dx() != MaxImageDim {
		t.Fatalf("width = %d, want clamped %d", img.Bounds().Dx(), MaxImageDim)
	}
	if img.Bounds().Dy() != 10 {
		t.Fatalf("height = %d, want 10", img.Bounds().Dy())
	}
}

func TestRenderZeroGridIsTransparent(t *testing.T) {
	g := &DensityGrid{
		Size:    10,
		Cells:   make([]float64, 100),
		Version: gridVersion.Add(1),
	}

	img, err := NewRenderer().Render(g, 1, 40, 40)
	if err != nil {
		t.Fatalf("an all-zero grid is valid and must render: %v", err)
	}
	for i, v := range img.Pix {
		if v != 0 {
			t.Fatalf("pixel byte %d = %d, want fully transparent image", i, v)
		}
	}
}
