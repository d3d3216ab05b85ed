package models

// Point represents a single photo GPS sample. Points are read-only input
// to the density pipeline; the engine never mutates or persists them.
type Point struct {
	ID        int64   `json:"id" db:"id"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
	TakenAt   int64   `json:"takenAt,omitempty" db:"taken_at"` // Unix timestamp in seconds, 0 when unknown

	CreatedAt *string `json:"createdAt,omitempty" db:"created_at"`
}

// PointUpload is the payload for batch point ingestion.
type PointUpload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	TakenAt   int64   `json:"takenAt"`
}

// PointFilter represents filter parameters for querying points.
type PointFilter struct {
	MinLat   float64 `form:"minLat"`
	MaxLat   float64 `form:"maxLat"`
	MinLon   float64 `form:"minLon"`
	MaxLon   float64 `form:"maxLon"`
	Page     int     `form:"page"`
	PageSize int     `form:"pageSize"`
}

// HasBounds reports whether the filter restricts to a bounding box.
func (f PointFilter) HasBounds() bool {
	return f.MinLat != 0 || f.MaxLat != 0 || f.MinLon != 0 || f.MaxLon != 0
}

// PointsResponse represents a paginated response of points.
type PointsResponse struct {
	Data       []Point `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}

// BoundsResponse describes the bounding box and centroid of the stored
// points, used by clients to frame an initial viewport.
type BoundsResponse struct {
	Count       int64   `json:"count"`
	MinLat      float64 `json:"minLat"`
	MaxLat      float64 `json:"maxLat"`
	MinLon      float64 `json:"minLon"`
	MaxLon      float64 `json:"maxLon"`
	CentroidLat float64 `json:"centroidLat"`
	CentroidLon float64 `json:"centroidLon"`
}
