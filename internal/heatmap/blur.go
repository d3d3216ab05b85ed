package heatmap

import (
	"errors"
	"image"
	"math"
)

// errNoImage is returned when the blur has nothing to operate on.
var errNoImage = errors.New("heatmap: no image to blur")

// gaussianKernel generates a normalized 1D Gaussian kernel for the given
// radius (used as sigma). Kernel size is 2*ceil(3σ)+1, covering 99.7% of
// the distribution. Radius <= 0 yields the identity kernel.
func gaussianKernel(radius float64) []float64 {
	if radius <= 0 {
		return []float64{1.0}
	}

	half := int(math.Ceil(radius * 3))
	kernel := make([]float64, half*2+1)
	twoSigmaSq := 2 * radius * radius

	var sum float64
	for i := range kernel {
		x := float64(i - half)
		kernel[i] = math.Exp(-(x * x) / twoSigmaSq)
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// blurRGBA applies a separable Gaussian blur to img in place. The two
// passes (rows, then columns) run over a float buffer and write back with
// rounding, clamping reads at the image edges.
func blurRGBA(img *image.RGBA, radius float64) error {
	if img == nil {
		return errNoImage
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return errNoImage
	}
	if radius <= 0 {
		return nil
	}

	kernel := gaussianKernel(radius)
	half := len(kernel) / 2
	temp := make([]float64, w*h*4)

	// Horizontal pass: img -> temp.
	for y := 0; y < h; y++ {
		rowOff := img.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < w; x++ {
			var r, g, bl, a float64
			for k, weight := range kernel {
				kx := x + k - half
				if kx < 0 {
					kx = 0
				} else if kx >= w {
					kx = w - 1
				}
				src := rowOff + kx*4
				r += float64(img.Pix[src]) * weight
				g += float64(img.Pix[src+1]) * weight
				bl += float64(img.Pix[src+2]) * weight
				a += float64(img.Pix[src+3]) * weight
			}
			dst := (y*w + x) * 4
			temp[dst] = r
			temp[dst+1] = g
			temp[dst+2] = bl
			temp[dst+3] = a
		}
	}

	// Vertical pass: temp -> img.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, bl, a float64
			for k, weight := range kernel {
				ky := y + k - half
				if ky < 0 {
					ky = 0
				} else if ky >= h {
					ky = h - 1
				}
				src := (ky*w + x) * 4
				r += temp[src] * weight
				g += temp[src+1] * weight
				bl += temp[src+2] * weight
				a += temp[src+3] * weight
			}
			dst := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			img.Pix[dst] = roundByte(r)
			img.Pix[dst+1] = roundByte(g)
			img.Pix[dst+2] = roundByte(bl)
			img.Pix[dst+3] = roundByte(a)
		}
	}

	return nil
}

func roundByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
