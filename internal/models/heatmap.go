package models

// HeatmapRequest carries the viewport, spread and target pixel size for a
// heatmap render.
type HeatmapRequest struct {
	CenterLat float64 `form:"centerLat"`
	CenterLon float64 `form:"centerLon"`
	LatSpan   float64 `form:"latSpan"`
	LonSpan   float64 `form:"lonSpan"`
	Spread    float64 `form:"spread"`
	Width     int     `form:"width"`
	Height    int     `form:"height"`
}

// ViewportRequest is the push payload for debounced background recomputes.
type ViewportRequest struct {
	CenterLat float64 `json:"centerLat"`
	CenterLon float64 `json:"centerLon"`
	LatSpan   float64 `json:"latSpan"`
	LonSpan   float64 `json:"lonSpan"`
	Spread    float64 `json:"spread"`
}

// GridStats summarizes the positive cells of a density grid.
type GridStats struct {
	PositiveCells int     `json:"positiveCells"`
	Median        float64 `json:"median"`
	P90           float64 `json:"p90"`
	Max           float64 `json:"max"`
	Scale         float64 `json:"scale"`
}

// GridResponse is the JSON form of a density grid plus its normalization
// scale. Empty is set when the computation produced the no-data sentinel;
// all other fields are zero in that case.
type GridResponse struct {
	Empty          bool       `json:"empty"`
	Size           int        `json:"size,omitempty"`
	CellSizeLat    float64    `json:"cellSizeLat,omitempty"`
	CellSizeLon    float64    `json:"cellSizeLon,omitempty"`
	CellSizeMeters float64    `json:"cellSizeMeters,omitempty"`
	Scale          float64    `json:"scale,omitempty"`
	Cells          []float64  `json:"cells,omitempty"`
	Stats          *GridStats `json:"stats,omitempty"`
}
