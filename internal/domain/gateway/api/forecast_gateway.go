package api

import (
	"context"
	"errors"

	"surfcast-api/internal/domain/entity"
	"surfcast-api/internal/domain/forecast"
)

// ErrSpotNotFound is returned when the site search has no usable hit for a location
var ErrSpotNotFound = errors.New("surf spot not found")

// MarineGateway fetches the hourly marine series of a coordinate
type MarineGateway interface {
	FetchMarine(ctx context.Context, latitude, longitude float64) (*forecast.MarineSeries, error)
}

// AtmosphericGateway fetches the hourly temperature and wind series of a coordinate
type AtmosphericGateway interface {
	FetchAtmospheric(ctx context.Context, latitude, longitude float64) (*forecast.AtmosphericSeries, error)
}

// TideGateway fetches tide heights keyed by unix seconds
type TideGateway interface {
	FetchTides(ctx context.Context, location entity.Location) (map[int64]float64, error)
}

// RatingGateway fetches surf ratings keyed by unix seconds
type RatingGateway interface {
	FetchRatings(ctx context.Context, location entity.Location) (map[int64]entity.SurfRating, error)
}

// SurfHeightGateway fetches surf height ranges keyed by unix seconds
type SurfHeightGateway interface {
	FetchSurfHeights(ctx context.Context, location entity.Location) (map[int64]forecast.SurfHeight, error)
}
