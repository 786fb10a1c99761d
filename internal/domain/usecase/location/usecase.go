package location

import (
	"context"

	"surfcast-api/internal/domain/entity"
	"surfcast-api/internal/domain/model"
)

type UseCase interface {
	// List returns the saved locations ordered by custom order index, newest first on ties
	List(ctx context.Context, page int, size int) (*model.Page[entity.SavedLocation], error)

	Get(ctx context.Context, id string) (*entity.SavedLocation, error)

	// Add saves a new location at the end of the list, without forecast data
	Add(ctx context.Context, dto model.AddLocationDTO) (*entity.SavedLocation, error)

	Delete(ctx context.Context, id string) error

	// Reorder assigns indexes 0..n-1 in the given order; unlisted locations keep their relative order after them
	Reorder(ctx context.Context, ids []string) ([]entity.SavedLocation, error)

	ChangeBackground(ctx context.Context, id string, background entity.BackgroundVariant) (*entity.SavedLocation, error)

	// PreviewLocations returns sample locations that are never persisted
	PreviewLocations() []entity.SavedLocation
}
