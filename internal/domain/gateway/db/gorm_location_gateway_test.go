package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"surfcast-api/internal/domain/entity"
	"surfcast-api/internal/domain/model"
)

func newTestGateway(t *testing.T) *GormLocationGateway {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "surfcast.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	gateway := NewGormLocationGateway(db)
	if err := gateway.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return gateway
}

func savedLocation(id string, order int, created time.Time) entity.SavedLocation {
	bali := time.FixedZone("", 8*3600)
	return entity.SavedLocation{
		Location:         entity.Location{ID: id, Latitude: -8.72, Longitude: 115.17, Perpendicular: 80, Title: id},
		DateCreated:      created,
		DateUpdated:      created,
		CustomOrderIndex: order,
		Background:       entity.Aurora(2),
		Weather: []entity.WeatherSample{
			{Date: time.Date(2026, 3, 1, 8, 0, 0, 0, bali), TideHeight: entity.Float(1.2), SurfRating: entity.SurfRatingFair},
			{Date: time.Date(2026, 3, 1, 9, 0, 0, 0, bali), TideHeight: nil, WindSpeed: entity.Float(12.5)},
		},
	}
}

func TestGormLocationGateway_RoundTrip(t *testing.T) {
	gateway := newTestGateway(t)
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	location := savedLocation("kuta", 0, created)
	location.Background = entity.Video("dawn.mov")
	if err := gateway.UpsertMany(ctx, []entity.SavedLocation{location}); err != nil {
		t.Fatalf("UpsertMany() error = %v", err)
	}

	got, err := gateway.FindByID(ctx, "kuta")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.Background != entity.Video("dawn.mov") {
		t.Errorf("Background = %v", got.Background)
	}
	if len(got.Weather) != 2 {
		t.Fatalf("len(Weather) = %d, want 2", len(got.Weather))
	}
	first := got.Weather[0]
	if !first.Date.Equal(location.Weather[0].Date) {
		t.Errorf("Date = %v, want %v", first.Date, location.Weather[0].Date)
	}
	if _, offset := first.Date.Zone(); offset != 8*3600 {
		t.Errorf("zone offset = %d, want 28800", offset)
	}
	if *first.TideHeight != 1.2 || first.SurfRating != entity.SurfRatingFair {
		t.Errorf("first sample = %+v", first)
	}
	if got.Weather[1].TideHeight != nil || *got.Weather[1].WindSpeed != 12.5 {
		t.Errorf("second sample = %+v", got.Weather[1])
	}
}

func TestGormLocationGateway_UpsertReplacesSamples(t *testing.T) {
	gateway := newTestGateway(t)
	ctx := context.Background()
	location := savedLocation("uluwatu", 0, time.Now().UTC())

	if err := gateway.UpsertMany(ctx, []entity.SavedLocation{location}); err != nil {
		t.Fatalf("UpsertMany() error = %v", err)
	}

	location.Weather = location.Weather[:1]
	location.CustomOrderIndex = 7
	if err := gateway.UpsertMany(ctx, []entity.SavedLocation{location}); err != nil {
		t.Fatalf("UpsertMany() second error = %v", err)
	}

	got, err := gateway.FindByID(ctx, "uluwatu")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if len(got.Weather) != 1 || got.CustomOrderIndex != 7 {
		t.Errorf("got %d samples and order %d, want 1 and 7", len(got.Weather), got.CustomOrderIndex)
	}

	var count int64
	gateway.DB.Model(&weatherSampleRow{}).Count(&count)
	if count != 1 {
		t.Errorf("weather_samples rows = %d, want 1", count)
	}
}

func TestGormLocationGateway_FetchAllOrder(t *testing.T) {
	gateway := newTestGateway(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	err := gateway.UpsertMany(ctx, []entity.SavedLocation{
		savedLocation("c", 2, base),
		savedLocation("a-old", 1, base),
		savedLocation("a-new", 1, base.Add(time.Hour)),
		savedLocation("z", 0, base),
	})
	if err != nil {
		t.Fatalf("UpsertMany() error = %v", err)
	}

	all, err := gateway.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}
	want := []string{"z", "a-new", "a-old", "c"}
	if len(all) != len(want) {
		t.Fatalf("FetchAll() returned %d, want %d", len(all), len(want))
	}
	for i, id := range want {
		if all[i].ID() != id {
			t.Errorf("FetchAll()[%d] = %s, want %s", i, all[i].ID(), id)
		}
	}
}

func TestGormLocationGateway_Delete(t *testing.T) {
	gateway := newTestGateway(t)
	ctx := context.Background()

	if err := gateway.UpsertMany(ctx, []entity.SavedLocation{savedLocation("kuta", 0, time.Now())}); err != nil {
		t.Fatalf("UpsertMany() error = %v", err)
	}
	if err := gateway.Delete(ctx, "kuta"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := gateway.FindByID(ctx, "kuta"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByID() after delete error = %v, want ErrNotFound", err)
	}

	var count int64
	gateway.DB.Model(&weatherSampleRow{}).Where("location_id = ?", "kuta").Count(&count)
	if count != 0 {
		t.Errorf("orphan samples = %d, want 0", count)
	}

	if err := gateway.Delete(ctx, "kuta"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() missing error = %v, want ErrNotFound", err)
	}
}

func TestGormHealthDBGateway(t *testing.T) {
	gateway := newTestGateway(t)
	health := NewGormHealthDBGateway(gateway.DB).Health(context.Background())
	if health.Status != model.StatusUp {
		t.Errorf("Health() = %v", health)
	}
	if health.Details["dialect"] != "sqlite" {
		t.Errorf("dialect = %s, want sqlite", health.Details["dialect"])
	}
}
