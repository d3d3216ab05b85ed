package service

import (
	"context"
	"fmt"

	"github.com/photoatlas/heatmap-backend-go/internal/models"
	"github.com/photoatlas/heatmap-backend-go/internal/repository"
	"github.com/photoatlas/heatmap-backend-go/internal/spatial"
)

// PointService handles business logic for photo points
type PointService struct {
	repo *repository.PointRepository
}

// NewPointService creates a new point service
func NewPointService(repo *repository.PointRepository) *PointService {
	return &PointService{repo: repo}
}

// CreatePoints validates and stores a batch of uploaded points.
func (s *PointService) CreatePoints(ctx context.Context, uploads []models.PointUpload) (int64, error) {
	points := make([]models.Point, 0, len(uploads))
	for i, u := range uploads {
		if u.Latitude < -90 || u.Latitude > 90 {
			return 0, fmt.Errorf("point %d: latitude %v out of range", i, u.Latitude)
		}
		if u.Longitude < -180 || u.Longitude > 180 {
			return 0, fmt.Errorf("point %d: longitude %v out of range", i, u.Longitude)
		}
		points = append(points, models.Point{
			Latitude:  u.Latitude,
			Longitude: u.Longitude,
			TakenAt:   u.TakenAt,
		})
	}

	return s.repo.InsertPoints(ctx, points)
}

// GetPoints retrieves points with filtering and pagination.
func (s *PointService) GetPoints(ctx context.Context, filter models.PointFilter) (*models.PointsResponse, error) {
	points, total, err := s.repo.GetPoints(ctx, filter)
	if err != nil {
		return nil, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))

	return &models.PointsResponse{
		Data:       points,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// GetBounds returns the bounding box and centroid of all stored points.
// ok is false when no points are stored.
func (s *PointService) GetBounds(ctx context.Context) (*models.BoundsResponse, bool, error) {
	minLat, maxLat, minLon, maxLon, ok, err := s.repo.Bounds(ctx)
	if err != nil || !ok {
		return nil, false, err
	}

	snapshot, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, false, err
	}

	coords := make([]spatial.Point, len(snapshot))
	for i, p := range snapshot {
		coords[i] = spatial.Point{Lat: p.Latitude, Lon: p.Longitude}
	}
	centroid := spatial.Centroid(coords)

	return &models.BoundsResponse{
		Count:       int64(len(snapshot)),
		MinLat:      minLat,
		MaxLat:      maxLat,
		MinLon:      minLon,
		MaxLon:      maxLon,
		CentroidLat: centroid.Lat,
		CentroidLon: centroid.Lon,
	}, true, nil
}
