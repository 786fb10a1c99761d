package api

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"surfcast-api/internal/domain/entity"
	"surfcast-api/internal/domain/forecast"
	"surfcast-api/internal/domain/model/external"
	"surfcast-api/pkg/http"
	"surfcast-api/pkg/log"
	"surfcast-api/pkg/msg"
)

const surflineUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.6 Safari/605.1.15"

// SpotIDCache memoizes spot ids. It is satisfied by *redis.Cache.
type SpotIDCache interface {
	GetOrSet(ctx context.Context, key string, dest any, loader func(ctx context.Context) (any, error)) error
}

// RateLimiter throttles outgoing calls. It is satisfied by *redis.RateLimiter.
type RateLimiter interface {
	Acquire(ctx context.Context) error
}

// SurflineGateway serves the optional enrichments from the Surfline kbyg API
type SurflineGateway interface {
	TideGateway
	RatingGateway
	SurfHeightGateway
	SpotID(ctx context.Context, location entity.Location) (string, error)
}

type surflineGatewayImpl struct {
	httpClient *http.Client
	days       int
	cache      SpotIDCache
	limiter    RateLimiter
}

var _ SurflineGateway = (*surflineGatewayImpl)(nil)

// NewSurflineGateway creates the gateway. cache and limiter may be nil.
func NewSurflineGateway(baseUrl string, days int, clientOptions http.ClientOptions, cache SpotIDCache, limiter RateLimiter) SurflineGateway {
	if days <= 0 {
		days = 3
	}
	if clientOptions.DefaultHeaders == nil {
		clientOptions.DefaultHeaders = map[string]string{}
	}
	clientOptions.DefaultHeaders["User-agent"] = surflineUserAgent
	clientOptions.DefaultHeaders["Content-Type"] = "application/json"
	clientOptions.DefaultHeaders["Accept"] = "application/json"

	return &surflineGatewayImpl{
		httpClient: http.NewHttpClient(baseUrl, clientOptions),
		days:       days,
		cache:      cache,
		limiter:    limiter,
	}
}

// FetchTides gets tide heights by unix timestamp
func (s *surflineGatewayImpl) FetchTides(ctx context.Context, location entity.Location) (map[int64]float64, error) {
	response := &external.SurflineTidesResponse{}
	if err := s.fetchSpotForecast(ctx, location, "tides", response); err != nil {
		return nil, err
	}

	result := make(map[int64]float64, len(response.Data.Tides))
	for _, tide := range response.Data.Tides {
		result[tide.Timestamp] = tide.Height
	}
	return result, nil
}

// FetchRatings gets surf ratings by unix timestamp
func (s *surflineGatewayImpl) FetchRatings(ctx context.Context, location entity.Location) (map[int64]entity.SurfRating, error) {
	response := &external.SurflineRatingResponse{}
	if err := s.fetchSpotForecast(ctx, location, "rating", response); err != nil {
		return nil, err
	}

	result := make(map[int64]entity.SurfRating, len(response.Data.Rating))
	for _, rating := range response.Data.Rating {
		result[rating.Timestamp] = entity.SurfRatingFromCode(int(rating.Rating.Value))
	}
	return result, nil
}

// FetchSurfHeights gets surf height ranges by unix timestamp
func (s *surflineGatewayImpl) FetchSurfHeights(ctx context.Context, location entity.Location) (map[int64]forecast.SurfHeight, error) {
	response := &external.SurflineWaveResponse{}
	if err := s.fetchSpotForecast(ctx, location, "wave", response); err != nil {
		return nil, err
	}

	result := make(map[int64]forecast.SurfHeight, len(response.Data.Wave))
	for _, wave := range response.Data.Wave {
		result[wave.Timestamp] = forecast.SurfHeight{Min: wave.Surf.Min, Max: wave.Surf.Max}
	}
	return result, nil
}

// SpotID resolves the spot nearest to the location among the search hits for its title.
// Resolved ids are cached under the title without whitespace.
func (s *surflineGatewayImpl) SpotID(ctx context.Context, location entity.Location) (string, error) {
	if s.cache == nil {
		return s.searchSpotID(ctx, location)
	}

	var spotID string
	key := strings.Join(strings.Fields(location.Title), "")
	err := s.cache.GetOrSet(ctx, key, &spotID, func(ctx context.Context) (any, error) {
		return s.searchSpotID(ctx, location)
	})
	if err != nil {
		return "", err
	}
	return spotID, nil
}

func (s *surflineGatewayImpl) fetchSpotForecast(ctx context.Context, location entity.Location, kind string, target any) error {
	spotID, err := s.SpotID(ctx, location)
	if err != nil {
		return err
	}

	params := map[string]string{
		"days":          strconv.Itoa(s.days),
		"intervalHours": "1",
		"spotId":        spotID,
	}
	if err := s.get(ctx, "/kbyg/spots/forecasts/"+kind, params, target); err != nil {
		return fmt.Errorf("surfline %s: %w", kind, err)
	}
	return nil
}

func (s *surflineGatewayImpl) searchSpotID(ctx context.Context, location entity.Location) (string, error) {
	var sections []external.SurflineSearchResponse
	params := map[string]string{
		"q":              location.Title,
		"querySize":      "10",
		"suggestionSize": "10",
		"newsSearch":     "false",
	}
	if err := s.get(ctx, "/search/site", params, &sections); err != nil {
		return "", fmt.Errorf("surfline search: %w", err)
	}

	bestID, bestDistance := "", math.Inf(1)
	for _, section := range sections {
		for _, hit := range section.Hits.Hits {
			d := distanceKm(location.Latitude, location.Longitude, hit.Source.Location.Lat, hit.Source.Location.Lon)
			if d < bestDistance {
				bestID, bestDistance = hit.ID, d
			}
		}
	}
	if bestID == "" {
		return "", fmt.Errorf("%w: %s", ErrSpotNotFound, location.Title)
	}

	log.Debug(msg.GetMessage("surfline.spot.resolved", location.Title, bestID), zap.Float64("distance_km", bestDistance))
	return bestID, nil
}

func (s *surflineGatewayImpl) get(ctx context.Context, path string, params map[string]string, target any) error {
	if s.limiter != nil {
		if err := s.limiter.Acquire(ctx); err != nil {
			return err
		}
	}

	_, _, _, err := s.httpClient.Get(ctx, path, params, nil, target, nil)
	return err
}

const earthRadiusKm = 6371.0

// distanceKm is the haversine great-circle distance
func distanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
