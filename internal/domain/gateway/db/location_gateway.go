package db

import (
	"context"
	"errors"

	"surfcast-api/internal/domain/entity"
)

// ErrNotFound is returned when no saved location has the requested id
var ErrNotFound = errors.New("record not found")

// LocationGateway persists SavedLocation aggregates. A location and its samples are written atomically.
type LocationGateway interface {
	// FetchAll returns every location ordered by custom order index, newest first on ties
	FetchAll(ctx context.Context) ([]entity.SavedLocation, error)
	FindByID(ctx context.Context, id string) (*entity.SavedLocation, error)
	// UpsertMany replaces each aggregate, samples included, in one transaction
	UpsertMany(ctx context.Context, locations []entity.SavedLocation) error
	// Delete removes the location and its samples
	Delete(ctx context.Context, id string) error
}
