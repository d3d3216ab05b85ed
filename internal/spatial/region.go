package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// Region is a rectangular viewport over the map, expressed as a center
// coordinate plus a span in degrees on each axis.
type Region struct {
	CenterLat float64 `json:"centerLat" form:"centerLat"`
	CenterLon float64 `json:"centerLon" form:"centerLon"`
	LatSpan   float64 `json:"latSpan" form:"latSpan"`
	LonSpan   float64 `json:"lonSpan" form:"lonSpan"`
}

// Valid reports whether the region has a finite center and strictly
// positive, finite spans. Zero-area regions are invalid.
func (r Region) Valid() bool {
	for _, v := range [...]float64{r.CenterLat, r.CenterLon, r.LatSpan, r.LonSpan} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.LatSpan > 0 && r.LonSpan > 0
}

// Bounds returns the bounding box corners (center ± span/2).
func (r Region) Bounds() (minLat, minLon, maxLat, maxLon float64) {
	minLat = r.CenterLat - r.LatSpan/2
	maxLat = r.CenterLat + r.LatSpan/2
	minLon = r.CenterLon - r.LonSpan/2
	maxLon = r.CenterLon + r.LonSpan/2
	return
}

// Rect returns the region as an s2 lat/lng rectangle.
func (r Region) Rect() s2.Rect {
	return s2.RectFromCenterSize(
		s2.LatLngFromDegrees(r.CenterLat, r.CenterLon),
		s2.LatLngFromDegrees(r.LatSpan, r.LonSpan),
	)
}

// Contains reports whether the coordinate lies inside the region.
func (r Region) Contains(lat, lon float64) bool {
	return r.Rect().ContainsLatLng(s2.LatLngFromDegrees(lat, lon))
}
