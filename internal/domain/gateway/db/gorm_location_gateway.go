package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"surfcast-api/internal/domain/entity"
)

const sampleBatchSize = 200

type locationRow struct {
	ID               string  `gorm:"primaryKey;size:128"`
	Latitude         float64 `gorm:"not null"`
	Longitude        float64 `gorm:"not null"`
	Perpendicular    float64 `gorm:"not null"`
	Title            string  `gorm:"not null"`
	DateCreated      time.Time
	DateUpdated      time.Time
	CustomOrderIndex int                `gorm:"index"`
	Background       string             `gorm:"size:255"`
	Samples          []weatherSampleRow `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE"`
}

func (locationRow) TableName() string {
	return "saved_locations"
}

type weatherSampleRow struct {
	ID             uint   `gorm:"primaryKey"`
	LocationID     string `gorm:"index;size:128;not null"`
	Position       int
	Date           time.Time
	UTCOffset      int
	AirTemperature *float64
	WindDirection  *float64
	WindSpeed      *float64
	WindGust       *float64
	SwellDirection *float64
	SwellPeriod    *float64
	SwellHeight    *float64
	TideHeight     *float64
	WaveHeightMin  *float64
	WaveHeightMax  *float64
	SurfRating     int
}

func (weatherSampleRow) TableName() string {
	return "weather_samples"
}

type GormLocationGateway struct {
	DB *gorm.DB
}

var _ LocationGateway = (*GormLocationGateway)(nil)

func NewGormLocationGateway(db *gorm.DB) *GormLocationGateway {
	return &GormLocationGateway{DB: db}
}

// Migrate creates or updates the location tables
func (gateway *GormLocationGateway) Migrate(ctx context.Context) error {
	return gateway.DB.WithContext(ctx).AutoMigrate(&locationRow{}, &weatherSampleRow{})
}

func (gateway *GormLocationGateway) FetchAll(ctx context.Context) ([]entity.SavedLocation, error) {
	var rows []locationRow
	err := gateway.DB.WithContext(ctx).
		Preload("Samples", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("custom_order_index ASC").
		Order("date_created DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch locations: %w", err)
	}

	locations := make([]entity.SavedLocation, 0, len(rows))
	for _, row := range rows {
		locations = append(locations, row.toEntity())
	}
	return locations, nil
}

func (gateway *GormLocationGateway) FindByID(ctx context.Context, id string) (*entity.SavedLocation, error) {
	var row locationRow
	err := gateway.DB.WithContext(ctx).
		Preload("Samples", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ?", id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find location %s: %w", id, err)
	}

	location := row.toEntity()
	return &location, nil
}

func (gateway *GormLocationGateway) UpsertMany(ctx context.Context, locations []entity.SavedLocation) error {
	if len(locations) == 0 {
		return nil
	}

	return gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, location := range locations {
			row := fromEntity(location)

			err := tx.Omit("Samples").
				Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
				Create(&row).Error
			if err != nil {
				return fmt.Errorf("failed to upsert location %s: %w", row.ID, err)
			}

			if err := tx.Where("location_id = ?", row.ID).Delete(&weatherSampleRow{}).Error; err != nil {
				return fmt.Errorf("failed to clear samples of %s: %w", row.ID, err)
			}
			if len(row.Samples) == 0 {
				continue
			}
			if err := tx.CreateInBatches(&row.Samples, sampleBatchSize).Error; err != nil {
				return fmt.Errorf("failed to insert samples of %s: %w", row.ID, err)
			}
		}
		return nil
	})
}

func (gateway *GormLocationGateway) Delete(ctx context.Context, id string) error {
	return gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("location_id = ?", id).Delete(&weatherSampleRow{}).Error; err != nil {
			return fmt.Errorf("failed to delete samples of %s: %w", id, err)
		}

		result := tx.Where("id = ?", id).Delete(&locationRow{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete location %s: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func fromEntity(location entity.SavedLocation) locationRow {
	row := locationRow{
		ID:               location.Location.ID,
		Latitude:         location.Location.Latitude,
		Longitude:        location.Location.Longitude,
		Perpendicular:    location.Location.Perpendicular,
		Title:            location.Location.Title,
		DateCreated:      location.DateCreated.UTC(),
		DateUpdated:      location.DateUpdated.UTC(),
		CustomOrderIndex: location.CustomOrderIndex,
		Background:       location.Background.String(),
		Samples:          make([]weatherSampleRow, 0, len(location.Weather)),
	}

	for i, s := range location.Weather {
		_, offset := s.Date.Zone()
		row.Samples = append(row.Samples, weatherSampleRow{
			LocationID:     row.ID,
			Position:       i,
			Date:           s.Date.UTC(),
			UTCOffset:      offset,
			AirTemperature: s.AirTemperature,
			WindDirection:  s.WindDirection,
			WindSpeed:      s.WindSpeed,
			WindGust:       s.WindGust,
			SwellDirection: s.SwellDirection,
			SwellPeriod:    s.SwellPeriod,
			SwellHeight:    s.SwellHeight,
			TideHeight:     s.TideHeight,
			WaveHeightMin:  s.WaveHeightMin,
			WaveHeightMax:  s.WaveHeightMax,
			SurfRating:     int(s.SurfRating),
		})
	}
	return row
}

func (row locationRow) toEntity() entity.SavedLocation {
	weather := make([]entity.WeatherSample, 0, len(row.Samples))
	for _, s := range row.Samples {
		weather = append(weather, entity.WeatherSample{
			Date:           s.Date.In(time.FixedZone("", s.UTCOffset)),
			AirTemperature: s.AirTemperature,
			WindDirection:  s.WindDirection,
			WindSpeed:      s.WindSpeed,
			WindGust:       s.WindGust,
			SwellDirection: s.SwellDirection,
			SwellPeriod:    s.SwellPeriod,
			SwellHeight:    s.SwellHeight,
			TideHeight:     s.TideHeight,
			WaveHeightMin:  s.WaveHeightMin,
			WaveHeightMax:  s.WaveHeightMax,
			SurfRating:     entity.SurfRatingFromCode(s.SurfRating),
		})
	}

	return entity.SavedLocation{
		Location: entity.Location{
			ID:            row.ID,
			Latitude:      row.Latitude,
			Longitude:     row.Longitude,
			Perpendicular: row.Perpendicular,
			Title:         row.Title,
		},
		DateCreated:      row.DateCreated,
		DateUpdated:      row.DateUpdated,
		Weather:          weather,
		CustomOrderIndex: row.CustomOrderIndex,
		Background:       entity.ParseBackground(row.Background),
	}
}
