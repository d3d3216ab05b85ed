package heatmap

import "image/color"

// ColorStop is one anchor of the gradient table, with all components in
// [0,1]. Colors between stops are linearly interpolated per channel.
type ColorStop struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// colorStops spans [0,1] at implicit equal spacing: transparent blue up to
// opaque red, with alpha rising monotonically so low density fades to
// nothing and high density is both more saturated and more opaque.
var colorStops = [8]ColorStop{
	{0.00, 0.00, 1.00, 0.00}, // transparent blue
	{0.25, 0.55, 1.00, 0.12}, // light blue
	{0.00, 1.00, 1.00, 0.24}, // cyan
	{0.00, 1.00, 0.60, 0.36}, // green-cyan
	{0.60, 1.00, 0.00, 0.48}, // yellow-green
	{1.00, 1.00, 0.00, 0.60}, // yellow
	{1.00, 0.60, 0.00, 0.72}, // orange
	{1.00, 0.00, 0.00, 0.85}, // red
}

// Legend returns a copy of the gradient table for read-only legend
// rendering.
func Legend() []ColorStop {
	stops := make([]ColorStop, len(colorStops))
	copy(stops, colorStops[:])
	return stops
}

// ColorFor maps a normalized density value to a color. Input is clamped to
// [0,1]; the function is pure and produces bit-identical results for
// identical inputs.
func ColorFor(t float64) color.NRGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	pos := t * float64(len(colorStops)-1)
	i := int(pos)
	if i > len(colorStops)-2 {
		i = len(colorStops) - 2
	}
	f := pos - float64(i)

	lo, hi := colorStops[i], colorStops[i+1]
	return color.NRGBA{
		R: channelByte(lo.R + (hi.R-lo.R)*f),
		G: channelByte(lo.G + (hi.G-lo.G)*f),
		B: channelByte(lo.B + (hi.B-lo.B)*f),
		A: channelByte(lo.A + (hi.A-lo.A)*f),
	}
}

func channelByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
