package weather

import (
	"context"
	"errors"

	"surfcast-api/internal/domain/entity"
	"surfcast-api/internal/domain/model"
)

// ErrRefreshInProgress is returned when a refresh of the same location is already running
var ErrRefreshInProgress = errors.New("refresh already in progress")

type UseCase interface {
	// RefreshLocation fetches every provider, merges the series and replaces the stored samples
	RefreshLocation(ctx context.Context, id string) (*entity.SavedLocation, error)

	// RefreshState returns the current refresh state of a location
	RefreshState(id string) model.RefreshStatus

	// Summary derives the forecast indicators of a location at the current instant
	Summary(ctx context.Context, id string) (*model.ForecastSummary, error)

	// EnsureFresh refreshes the location only when its data is stale, then returns the summary
	EnsureFresh(ctx context.Context, id string) (*model.ForecastSummary, error)

	// RefreshAllStale enqueues, or refreshes in process, every stale location
	RefreshAllStale(ctx context.Context, requestID string) (*model.RefreshAllResult, error)
}
