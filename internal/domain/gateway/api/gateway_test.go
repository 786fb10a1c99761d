package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"surfcast-api/internal/domain/entity"
	pkghttp "surfcast-api/pkg/http"
)

var kuta = entity.Location{ID: "kuta", Latitude: -8.72, Longitude: 115.17, Perpendicular: 80, Title: "Kuta Beach"}

func TestOpenMeteoGateway_FetchMarine(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/marine" {
			t.Errorf("path = %s, want /v1/marine", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("latitude") != "-8.72" || q.Get("longitude") != "115.17" || q.Get("timezone") != "auto" || q.Get("forecast_days") != "3" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if !strings.Contains(q.Get("hourly"), "swell_wave_direction") {
			t.Errorf("hourly = %s", q.Get("hourly"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"utc_offset_seconds":28800,"hourly":{"time":["2026-03-01T08:00","2026-03-01T09:00"],"swell_wave_height":[1.2,null],"swell_wave_direction":[210,215],"swell_wave_period":[11.5,12]}}`))
	}))
	defer server.Close()

	gateway := NewOpenMeteoGateway(server.URL, server.URL, 3, pkghttp.ClientOptions{})
	series, err := gateway.FetchMarine(context.Background(), -8.72, 115.17)
	if err != nil {
		t.Fatalf("FetchMarine() error = %v", err)
	}
	if series.UTCOffsetSeconds != 28800 || len(series.Time) != 2 {
		t.Errorf("series = %+v", series)
	}
	if series.SwellWaveHeight[1] != nil || *series.SwellWaveHeight[0] != 1.2 {
		t.Errorf("SwellWaveHeight = %v", series.SwellWaveHeight)
	}
}

func TestOpenMeteoGateway_FetchAtmosphericError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":true,"reason":"Latitude must be in range of -90 to 90°."}`))
	}))
	defer server.Close()

	gateway := NewOpenMeteoGateway(server.URL, server.URL, 3, pkghttp.ClientOptions{})
	_, err := gateway.FetchAtmospheric(context.Background(), -99, 115.17)
	if err == nil {
		t.Fatal("FetchAtmospheric() error = nil")
	}
	if !strings.Contains(err.Error(), "Latitude must be in range") {
		t.Errorf("error = %v, want provider reason", err)
	}
	var statusErr *pkghttp.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusBadRequest {
		t.Errorf("error = %v, want StatusError 400", err)
	}
}

type memoryCache struct {
	mu     sync.Mutex
	values map[string]string
}

func (m *memoryCache) GetOrSet(ctx context.Context, key string, dest any, loader func(ctx context.Context) (any, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok {
		*dest.(*string) = v
		return nil
	}
	v, err := loader(ctx)
	if err != nil {
		return err
	}
	m.values[key] = v.(string)
	*dest.(*string) = v.(string)
	return nil
}

type countingLimiter struct{ calls int }

func (c *countingLimiter) Acquire(ctx context.Context) error {
	c.calls++
	return nil
}

func surflineServer(t *testing.T, searches *int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("User-agent"), "Mozilla/5.0") {
			t.Errorf("User-agent = %q", r.Header.Get("User-agent"))
		}
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/search/site":
			*searches++
			if r.URL.Query().Get("q") != "Kuta Beach" || r.URL.Query().Get("newsSearch") != "false" {
				t.Errorf("search query = %s", r.URL.RawQuery)
			}
			_, _ = w.Write([]byte(`[
				{"hits":{"hits":[
					{"_id":"far","_source":{"name":"Kuta Lombok","location":{"lat":-8.89,"lon":116.28}}},
					{"_id":"broken","_source":{"name":"No location"}},
					{"_id":123}
				]}},
				{"hits":{"hits":[{"_id":"near","_source":{"name":"Kuta Beach","location":{"lat":-8.718,"lon":115.168}}}]}}
			]`))
		case "/kbyg/spots/forecasts/tides":
			if r.URL.Query().Get("spotId") != "near" || r.URL.Query().Get("days") != "3" || r.URL.Query().Get("intervalHours") != "1" {
				t.Errorf("tides query = %s", r.URL.RawQuery)
			}
			_, _ = w.Write([]byte(`{"data":{"tides":[{"timestamp":1772323200,"utcOffset":8,"type":"NORMAL","height":1.4},{"timestamp":1772325120,"utcOffset":8,"type":"HIGH","height":1.9}]}}`))
		case "/kbyg/spots/forecasts/rating":
			_, _ = w.Write([]byte(`{"data":{"rating":[{"timestamp":1772323200,"utcOffset":8,"rating":{"key":"FAIR","value":4}},{"timestamp":1772326800,"utcOffset":8,"rating":{"key":"EPIC","value":9}}]}}`))
		case "/kbyg/spots/forecasts/wave":
			_, _ = w.Write([]byte(`{"data":{"wave":[{"timestamp":1772323200,"surf":{"min":0.9,"max":1.5}}]}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestSurflineGateway(t *testing.T) {
	searches := 0
	server := surflineServer(t, &searches)
	defer server.Close()

	cache := &memoryCache{values: map[string]string{}}
	limiter := &countingLimiter{}
	gateway := NewSurflineGateway(server.URL, 3, pkghttp.ClientOptions{}, cache, limiter)
	ctx := context.Background()

	tides, err := gateway.FetchTides(ctx, kuta)
	if err != nil {
		t.Fatalf("FetchTides() error = %v", err)
	}
	if len(tides) != 2 || tides[1772325120] != 1.9 {
		t.Errorf("tides = %v", tides)
	}

	ratings, err := gateway.FetchRatings(ctx, kuta)
	if err != nil {
		t.Fatalf("FetchRatings() error = %v", err)
	}
	if ratings[1772323200] != entity.SurfRatingFair || ratings[1772326800] != entity.SurfRatingUnknown {
		t.Errorf("ratings = %v", ratings)
	}

	heights, err := gateway.FetchSurfHeights(ctx, kuta)
	if err != nil {
		t.Fatalf("FetchSurfHeights() error = %v", err)
	}
	if h := heights[1772323200]; h.Min != 0.9 || h.Max != 1.5 {
		t.Errorf("heights = %v", heights)
	}

	if searches != 1 {
		t.Errorf("searches = %d, want 1 (cached spot id)", searches)
	}
	if cache.values["KutaBeach"] != "near" {
		t.Errorf("cache = %v, want KutaBeach=near", cache.values)
	}
	if limiter.calls != 4 {
		t.Errorf("limiter calls = %d, want 4", limiter.calls)
	}
}

func TestSurflineGateway_SpotNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"hits":{"hits":[]}}]`))
	}))
	defer server.Close()

	gateway := NewSurflineGateway(server.URL, 3, pkghttp.ClientOptions{}, nil, nil)
	if _, err := gateway.FetchTides(context.Background(), kuta); !errors.Is(err, ErrSpotNotFound) {
		t.Errorf("FetchTides() error = %v, want ErrSpotNotFound", err)
	}
}

func TestDistanceKm(t *testing.T) {
	d := distanceKm(-8.72, 115.17, -8.82, 115.09)
	if d < 13 || d > 15 {
		t.Errorf("distanceKm(Kuta, Uluwatu) = %.2f, want about 14", d)
	}
	if distanceKm(1, 1, 1, 1) != 0 {
		t.Error("distanceKm of the same point should be 0")
	}
}
