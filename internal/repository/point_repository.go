package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/photoatlas/heatmap-backend-go/internal/models"
)

// PointRepository handles database operations for photo points
type PointRepository struct {
	db *sql.DB
}

// NewPointRepository creates a new point repository
func NewPointRepository(db *sql.DB) *PointRepository {
	return &PointRepository{db: db}
}

// InsertPoints inserts a batch of points inside a single transaction and
// returns the number inserted.
func (r *PointRepository) InsertPoints(ctx context.Context, points []models.Point) (int64, error) {
	if len(points) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO photo_points (latitude, longitude, taken_at)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, p := range points {
		if _, err := stmt.ExecContext(ctx, p.Latitude, p.Longitude, p.TakenAt); err != nil {
			return 0, fmt.Errorf("failed to insert point: %w", err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return inserted, nil
}

// GetPoints retrieves points with optional bounding-box filtering and
// pagination.
func (r *PointRepository) GetPoints(ctx context.Context, filter models.PointFilter) ([]models.Point, int64, error) {
	query := `SELECT id, latitude, longitude, taken_at, created_at FROM photo_points`

	var conditions []string
	var args []interface{}

	if filter.HasBounds() {
		conditions = append(conditions, "latitude >= ?", "latitude <= ?", "longitude >= ?", "longitude <= ?")
		args = append(args, filter.MinLat, filter.MaxLat, filter.MinLon, filter.MaxLon)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM photo_points"
	if len(conditions) > 0 {
		countQuery += " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count points: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	offset := (filter.Page - 1) * filter.PageSize
	query += " ORDER BY taken_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query points: %w", err)
	}
	defer rows.Close()

	points, err := scanPoints(rows)
	if err != nil {
		return nil, 0, err
	}

	return points, total, nil
}

// Snapshot loads the complete set of stored points. The grid computation
// always operates on a snapshot like this, never on a live cursor.
func (r *PointRepository) Snapshot(ctx context.Context) ([]models.Point, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, latitude, longitude, taken_at, created_at
		FROM photo_points
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	defer rows.Close()

	return scanPoints(rows)
}

// Count returns the number of stored points.
func (r *PointRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM photo_points").Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count points: %w", err)
	}
	return total, nil
}

// Bounds returns the bounding box of all stored points. ok is false when
// the table is empty.
func (r *PointRepository) Bounds(ctx context.Context) (minLat, maxLat, minLon, maxLon float64, ok bool, err error) {
	var count int64
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(MIN(latitude), 0), COALESCE(MAX(latitude), 0),
		       COALESCE(MIN(longitude), 0), COALESCE(MAX(longitude), 0)
		FROM photo_points
	`)
	if err = row.Scan(&count, &minLat, &maxLat, &minLon, &maxLon); err != nil {
		err = fmt.Errorf("failed to query bounds: %w", err)
		return
	}
	ok = count > 0
	return
}

func scanPoints(rows *sql.Rows) ([]models.Point, error) {
	var points []models.Point
	for rows.Next() {
		var p models.Point
		var createdAt sql.NullString
		if err := rows.Scan(&p.ID, &p.Latitude, &p.Longitude, &p.TakenAt, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan point: %w", err)
		}
		if createdAt.Valid {
			p.CreatedAt = &createdAt.String
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read points: %w", err)
	}
	return points, nil
}
