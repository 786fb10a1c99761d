package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"surfcast-api/internal/domain/entity"
	"surfcast-api/internal/domain/forecast"
	"surfcast-api/internal/domain/gateway/queue"
	"surfcast-api/internal/domain/model"
	"surfcast-api/internal/domain/usecase/weather"
)

type fakeLocationUseCase struct {
	err   error
	added model.AddLocationDTO
}

func (f *fakeLocationUseCase) List(ctx context.Context, page int, size int) (*model.Page[entity.SavedLocation], error) {
	return model.Paginate([]entity.SavedLocation{saved("kuta")}, page, size), f.err
}

func (f *fakeLocationUseCase) Get(ctx context.Context, id string) (*entity.SavedLocation, error) {
	if f.err != nil {
		return nil, f.err
	}
	l := saved(id)
	return &l, nil
}

func (f *fakeLocationUseCase) Add(ctx context.Context, dto model.AddLocationDTO) (*entity.SavedLocation, error) {
	f.added = dto
	if f.err != nil {
		return nil, f.err
	}
	l := saved(dto.ID)
	return &l, nil
}

func (f *fakeLocationUseCase) Delete(ctx context.Context, id string) error {
	return f.err
}

func (f *fakeLocationUseCase) Reorder(ctx context.Context, ids []string) ([]entity.SavedLocation, error) {
	return nil, f.err
}

func (f *fakeLocationUseCase) ChangeBackground(ctx context.Context, id string, background entity.BackgroundVariant) (*entity.SavedLocation, error) {
	if f.err != nil {
		return nil, f.err
	}
	l := saved(id)
	l.Background = background
	return &l, nil
}

func (f *fakeLocationUseCase) PreviewLocations() []entity.SavedLocation {
	return []entity.SavedLocation{saved("preview-kuta")}
}

type fakeWeatherUseCase struct {
	err         error
	ensureFresh bool
}

func (f *fakeWeatherUseCase) RefreshLocation(ctx context.Context, id string) (*entity.SavedLocation, error) {
	if f.err != nil {
		return nil, f.err
	}
	l := saved(id)
	return &l, nil
}

func (f *fakeWeatherUseCase) RefreshState(id string) model.RefreshStatus {
	return model.RefreshStatus{LocationID: id, State: model.RefreshLoading}
}

func (f *fakeWeatherUseCase) Summary(ctx context.Context, id string) (*model.ForecastSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.ForecastSummary{Location: saved(id)}, nil
}

func (f *fakeWeatherUseCase) EnsureFresh(ctx context.Context, id string) (*model.ForecastSummary, error) {
	f.ensureFresh = true
	return f.Summary(ctx, id)
}

func (f *fakeWeatherUseCase) RefreshAllStale(ctx context.Context, requestID string) (*model.RefreshAllResult, error) {
	return &model.RefreshAllResult{RequestID: requestID}, nil
}

func saved(id string) entity.SavedLocation {
	return entity.SavedLocation{
		Location:   entity.Location{ID: id, Title: id},
		Background: entity.DefaultBackground(),
	}
}

func newServer(locations *fakeLocationUseCase, forecasts *fakeWeatherUseCase, notifier queue.ChangeNotifier) *echo.Echo {
	e := echo.New()
	api := e.Group("/surfcast")
	NewLocationController(api, locations, notifier).InitLocationRoutes()
	NewWeatherController(api, forecasts).InitWeatherRoutes()
	return e
}

func serve(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: kuta", entity.ErrLocationNotFound), http.StatusNotFound},
		{entity.ErrLocationExists, http.StatusConflict},
		{errors.Join(model.ErrInvalidLocation, errors.New("title is required")), http.StatusBadRequest},
		{weather.ErrRefreshInProgress, http.StatusAccepted},
		{fmt.Errorf("marine forecast: %w: %w", forecast.ErrProviderUnavailable, errors.New("503")), http.StatusBadGateway},
		{fmt.Errorf("failed to merge forecast series: %w", forecast.ErrEmptyResult), http.StatusBadGateway},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := statusOf(tt.err); got != tt.want {
				t.Errorf("statusOf() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLocationController(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"list", nil, http.MethodGet, "/surfcast/locations?page=0&size=10", "", http.StatusOK},
		{"get", nil, http.MethodGet, "/surfcast/locations/kuta", "", http.StatusOK},
		{"get missing", entity.ErrLocationNotFound, http.MethodGet, "/surfcast/locations/kuta", "", http.StatusNotFound},
		{"add", nil, http.MethodPost, "/surfcast/locations", `{"id":"kuta","title":"Kuta","perpendicular":80}`, http.StatusCreated},
		{"add malformed", nil, http.MethodPost, "/surfcast/locations", `{"id":`, http.StatusBadRequest},
		{"add duplicate", entity.ErrLocationExists, http.MethodPost, "/surfcast/locations", `{"id":"kuta"}`, http.StatusConflict},
		{"delete", nil, http.MethodDelete, "/surfcast/locations/kuta", "", http.StatusNoContent},
		{"reorder unknown", entity.ErrLocationNotFound, http.MethodPut, "/surfcast/locations/order", `{"ids":["x"]}`, http.StatusNotFound},
		{"background", nil, http.MethodPut, "/surfcast/locations/kuta/background", `{"background":{"kind":"aurora","variant":3}}`, http.StatusOK},
		{"previews", nil, http.MethodGet, "/surfcast/locations/previews", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newServer(&fakeLocationUseCase{err: tt.err}, &fakeWeatherUseCase{}, queue.NewLocalChangeNotifier())
			rec := serve(e, tt.method, tt.path, tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("%s %s = %d, want %d (%s)", tt.method, tt.path, rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.err != nil && !strings.Contains(rec.Body.String(), `"error"`) {
				t.Errorf("body = %s, want an error field", rec.Body.String())
			}
		})
	}
}

func TestLocationController_AddBindsBody(t *testing.T) {
	locations := &fakeLocationUseCase{}
	e := newServer(locations, &fakeWeatherUseCase{}, queue.NewLocalChangeNotifier())

	rec := serve(e, http.MethodPost, "/surfcast/locations",
		`{"id":"uluwatu","latitude":-8.82,"longitude":115.09,"perpendicular":120,"title":"Uluwatu","background":{"kind":"video","fileName":"dawn.mov"}}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if locations.added.Perpendicular != 120 || locations.added.Background == nil || locations.added.Background.FileName != "dawn.mov" {
		t.Errorf("bound dto = %+v", locations.added)
	}
}

func TestWeatherController(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"refresh", nil, http.MethodPost, "/surfcast/locations/kuta/refresh", http.StatusOK, `"id":"kuta"`},
		{"refresh in progress", weather.ErrRefreshInProgress, http.MethodPost, "/surfcast/locations/kuta/refresh", http.StatusAccepted, `"state":"LOADING"`},
		{"refresh provider down", fmt.Errorf("marine forecast: %w", forecast.ErrProviderUnavailable), http.MethodPost, "/surfcast/locations/kuta/refresh", http.StatusBadGateway, `"error"`},
		{"refresh state", nil, http.MethodGet, "/surfcast/locations/kuta/refresh", http.StatusOK, `"locationId":"kuta"`},
		{"summary", nil, http.MethodGet, "/surfcast/locations/kuta/forecast", http.StatusOK, `"location"`},
		{"summary missing", entity.ErrLocationNotFound, http.MethodGet, "/surfcast/locations/kuta/forecast", http.StatusNotFound, `"error"`},
		{"refresh all", nil, http.MethodPost, "/surfcast/locations/refresh", http.StatusAccepted, `"requestId"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newServer(&fakeLocationUseCase{}, &fakeWeatherUseCase{err: tt.err}, queue.NewLocalChangeNotifier())
			rec := serve(e, tt.method, tt.path, "")
			if rec.Code != tt.wantStatus {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %s, want it to contain %s", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestWeatherController_SummaryFresh(t *testing.T) {
	forecasts := &fakeWeatherUseCase{}
	e := newServer(&fakeLocationUseCase{}, forecasts, queue.NewLocalChangeNotifier())

	if rec := serve(e, http.MethodGet, "/surfcast/locations/kuta/forecast?fresh=true", ""); rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !forecasts.ensureFresh {
		t.Error("fresh=true should go through EnsureFresh")
	}
}

func TestLocationController_StreamChanges(t *testing.T) {
	notifier := queue.NewLocalChangeNotifier()
	server := httptest.NewServer(newServer(&fakeLocationUseCase{}, &fakeWeatherUseCase{}, notifier))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/surfcast/locations/changes", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /locations/changes error = %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get(echo.HeaderContentType); ct != "text/event-stream" {
		t.Errorf("Content-Type = %s, want text/event-stream", ct)
	}

	change := model.LocationChange{Type: model.LocationAdded, LocationIDs: []string{"kuta"}, At: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	if err := notifier.Notify(ctx, change); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	reader := bufio.NewReader(resp.Body)
	event, _ := reader.ReadString('\n')
	data, _ := reader.ReadString('\n')
	if event != "event: ADDED\n" {
		t.Errorf("event line = %q", event)
	}

	var got model.LocationChange
	if err := json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(data), "data: ")), &got); err != nil {
		t.Fatalf("data line %q: %v", data, err)
	}
	if got.Type != model.LocationAdded || len(got.LocationIDs) != 1 || got.LocationIDs[0] != "kuta" {
		t.Errorf("change = %+v", got)
	}
}
