package repository

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/photoatlas/heatmap-backend-go/internal/database"
	"github.com/photoatlas/heatmap-backend-go/internal/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	// An in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func TestInsertAndSnapshot(t *testing.T) {
	repo := NewPointRepository(setupTestDB(t))
	ctx := context.Background()

	points := []models.Point{
		{Latitude: 45.1, Longitude: 9.1, TakenAt: 100},
		{Latitude: 45.2, Longitude: 9.2, TakenAt: 200},
		{Latitude: 45.3, Longitude: 9.3, TakenAt: 300},
	}
	inserted, err := repo.InsertPoints(ctx, points)
	if err != nil {
		t.Fatalf("InsertPoints: %v", err)
	}
	if inserted != 3 {
		t.Fatalf("inserted = %d, want 3", inserted)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}

	snapshot, err := repo.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snapshot) != 3 {
		t.Fatalf("snapshot has %d points, want 3", len(snapshot))
	}
	if snapshot[0].Latitude != 45.1 || snapshot[2].TakenAt != 300 {
		t.Fatalf("snapshot content unexpected: %+v", snapshot)
	}
}

func TestInsertPointsEmptyBatch(t *testing.T) {
	repo := NewPointRepository(setupTestDB(t))

	inserted, err := repo.InsertPoints(context.Background(), nil)
	if err != nil {
		t.Fatalf("InsertPoints: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("inserted = %d, want 0", inserted)
	}
}

func TestGetPointsBoundsFilter(t *testing.T) {
	repo := NewPointRepository(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.InsertPoints(ctx, []models.Point{
		{Latitude: 45, Longitude: 9},
		{Latitude: 46, Longitude: 9},
		{Latitude: 45, Longitude: 30},
	})
	if err != nil {
		t.Fatalf("InsertPoints: %v", err)
	}

	points, total, err := repo.GetPoints(ctx, models.PointFilter{
		MinLat: 44.5, MaxLat: 45.5,
		MinLon: 8.5, MaxLon: 9.5,
	})
	if err != nil {
		t.Fatalf("GetPoints: %v", err)
	}
	if total != 1 || len(points) != 1 {
		t.Fatalf("filtered total = %d (len %d), want 1", total, len(points))
	}
	if points[0].Latitude != 45 || points[0].Longitude != 9 {
		t.Fatalf("wrong point survived the filter: %+v", points[0])
	}
}

func TestBounds(t *testing.T) {
	repo := NewPointRepository(setupTestDB(t))
	ctx := context.Background()

	_, _, _, _, ok, err := repo.Bounds(ctx)
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	if ok {
		t.Fatal("empty table must report ok=false")
	}

	if _, err := repo.InsertPoints(ctx, []models.Point{
		{Latitude: 44, Longitude: 8},
		{Latitude: 46, Longitude: 10},
	}); err != nil {
		t.Fatalf("InsertPoints: %v", err)
	}

	minLat, maxLat, minLon, maxLon, ok, err := repo.Bounds(ctx)
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	if !ok {
		t.Fatal("populated table must report ok=true")
	}
	if minLat != 44 || maxLat != 46 || minLon != 8 || maxLon != 10 {
		t.Fatalf("bounds = [%v,%v]x[%v,%v], want [44,46]x[8,10]", minLat, maxLat, minLon, maxLon)
	}
}
