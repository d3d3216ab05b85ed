package heatmap

import (
	"errors"
	"image"
	"log"
	"math"
	"sync"

	"github.com/llgcode/draw2d/draw2dimg"
)

// ErrNoGrid is returned when rendering is requested for the no-data
// sentinel or a degenerate grid. The absence of a grid is distinct from an
// empty-but-valid grid, which renders to a fully transparent image.
var ErrNoGrid = errors.New("heatmap: no grid to render")

// MaxImageDim bounds the rendered image on both axes regardless of the
// requested size, to cap memory and CPU cost.
const MaxImageDim = 2048

const (
	// discRadiusFactor sizes each cell's disc relative to the larger cell
	// pixel extent. At 1.0 the disc diameter spans two cells, enough
	// overlap to hide cell boundaries before the blur.
	discRadiusFactor = 1.0

	// blurRadiusFactor sizes the post-raster blur relative to the larger
	// cell pixel extent.
	blurRadiusFactor = 1.5
)

type renderKey struct {
	version uint64
	w, h    int
}

// Renderer rasterizes density grids into RGBA images. It is stateless
// across calls except for a single-entry memo keyed by grid version and
// pixel size, so an unchanged viewport skips redundant rasterization
// without ever serving a stale image for a changed grid.
type Renderer struct {
	mu      sync.Mutex
	memoKey renderKey
	memoImg *image.RGBA
}

// NewRenderer creates a renderer with an empty memo.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render draws one filled, overlapping disc per positive cell, colored by
// ColorFor(value/scale), then applies a separable Gaussian blur to produce
// the final continuous gradient. If the blur fails the unblurred image is
// returned; degraded output beats no output.
//
// Requested dimensions are clamped to [1, MaxImageDim]. A nil or
// zero-sized grid yields ErrNoGrid and no image.
func (r *Renderer) Render(g *DensityGrid, scale float64, width, height int) (*image.RGBA, error) {
	if g == nil || g.Size == 0 || len(g.Cells) == 0 {
		return nil, ErrNoGrid
	}
	if scale <= 0 || math.IsNaN(scale) {
		scale = 1.0
	}
	width = clampDim(width)
	height = clampDim(height)

	key := renderKey{version: g.Version, w: width, h: height}
	r.mu.Lock()
	if r.memoImg != nil && r.memoKey == key {
		img := r.memoImg
		r.mu.Unlock()
		return img, nil
	}
	r.mu.Unlock()

	cellW := float64(width) / float64(g.Size)
	cellH := float64(height) / float64(g.Size)
	img := rasterize(g, scale, width, height, cellW, cellH)

	if err := blurRGBA(img, blurRadiusFactor*math.Max(cellW, cellH)); err != nil {
		log.Printf("[Renderer] blur failed, returning unblurred image: %v", err)
	}

	r.mu.Lock()
	r.memoKey = key
	r.memoImg = img
	r.mu.Unlock()

	return img, nil
}

// rasterize draws the discs for every positive cell. Grid row 0 is the
// southern edge, so rows are flipped into image space (y grows downward).
func rasterize(g *DensityGrid, scale float64, width, height int, cellW, cellH float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	gc := draw2dimg.NewGraphicContext(img)
	discR := discRadiusFactor * math.Max(cellW, cellH)

	for row := 0; row < g.Size; row++ {
		cy := float64(height) - (float64(row)+0.5)*cellH
		for col := 0; col < g.Size; col++ {
			v := g.Cells[row*g.Size+col]
			if v <= 0 {
				continue
			}
			cx := (float64(col) + 0.5) * cellW

			gc.SetFillColor(ColorFor(v / scale))
			gc.BeginPath()
			gc.MoveTo(cx-discR, cy)
			gc.ArcTo(cx, cy, discR, discR, 0, 2*math.Pi)
			gc.Close()
			gc.Fill()
		}
	}

	return img
}

func clampDim(d int) int {
	if d < 1 {
		return 1
	}
	if d > MaxImageDim {
		return MaxImageDim
	}
	return d
}
