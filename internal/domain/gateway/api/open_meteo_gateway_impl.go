package api

import (
	"context"
	"fmt"
	"strconv"

	"surfcast-api/internal/domain/forecast"
	"surfcast-api/internal/domain/model/external"
	"surfcast-api/pkg/http"
)

const (
	marineHourly   = "wave_height,wave_direction,wave_period,swell_wave_height,swell_wave_direction,swell_wave_period"
	forecastHourly = "temperature_2m,wind_speed_10m,wind_direction_10m,wind_gusts_10m"
)

// OpenMeteoGateway serves both mandatory series from the Open-Meteo APIs
type OpenMeteoGateway interface {
	MarineGateway
	AtmosphericGateway
}

type openMeteoGatewayImpl struct {
	marineClient   *http.Client
	forecastClient *http.Client
	forecastDays   int
}

var _ OpenMeteoGateway = (*openMeteoGatewayImpl)(nil)

// NewOpenMeteoGateway creates a gateway for the marine and forecast hosts, which differ
func NewOpenMeteoGateway(marineURL, forecastURL string, forecastDays int, clientOptions http.ClientOptions) OpenMeteoGateway {
	if forecastDays <= 0 {
		forecastDays = 3
	}
	return &openMeteoGatewayImpl{
		marineClient:   http.NewHttpClient(marineURL, clientOptions),
		forecastClient: http.NewHttpClient(forecastURL, clientOptions),
		forecastDays:   forecastDays,
	}
}

// FetchMarine gets the hourly swell series
func (o *openMeteoGatewayImpl) FetchMarine(ctx context.Context, latitude, longitude float64) (*forecast.MarineSeries, error) {
	successResp, errResp, _, err := o.marineClient.Get(ctx, "/v1/marine",
		o.queryParams(latitude, longitude, marineHourly), nil,
		&external.OpenMeteoMarineResponse{}, &external.OpenMeteoErrorResponse{})

	if err != nil {
		return nil, openMeteoError("marine", errResp, err)
	}

	response := successResp.(*external.OpenMeteoMarineResponse)
	return &forecast.MarineSeries{
		UTCOffsetSeconds:   response.UTCOffsetSeconds,
		Time:               response.Hourly.Time,
		WaveHeight:         response.Hourly.WaveHeight,
		WaveDirection:      response.Hourly.WaveDirection,
		WavePeriod:         response.Hourly.WavePeriod,
		SwellWaveHeight:    response.Hourly.SwellWaveHeight,
		SwellWaveDirection: response.Hourly.SwellWaveDirection,
		SwellWavePeriod:    response.Hourly.SwellWavePeriod,
	}, nil
}

// FetchAtmospheric gets the hourly temperature and wind series
func (o *openMeteoGatewayImpl) FetchAtmospheric(ctx context.Context, latitude, longitude float64) (*forecast.AtmosphericSeries, error) {
	successResp, errResp, _, err := o.forecastClient.Get(ctx, "/v1/forecast",
		o.queryParams(latitude, longitude, forecastHourly), nil,
		&external.OpenMeteoForecastResponse{}, &external.OpenMeteoErrorResponse{})

	if err != nil {
		return nil, openMeteoError("forecast", errResp, err)
	}

	response := successResp.(*external.OpenMeteoForecastResponse)
	return &forecast.AtmosphericSeries{
		UTCOffsetSeconds: response.UTCOffsetSeconds,
		Time:             response.Hourly.Time,
		Temperature:      response.Hourly.Temperature2m,
		WindSpeed:        response.Hourly.WindSpeed10m,
		WindDirection:    response.Hourly.WindDirection10m,
		WindGusts:        response.Hourly.WindGusts10m,
	}, nil
}

func (o *openMeteoGatewayImpl) queryParams(latitude, longitude float64, hourly string) map[string]string {
	return map[string]string{
		"latitude":      strconv.FormatFloat(latitude, 'f', -1, 64),
		"longitude":     strconv.FormatFloat(longitude, 'f', -1, 64),
		"hourly":        hourly,
		"timezone":      "auto",
		"forecast_days": strconv.Itoa(o.forecastDays),
	}
}

func openMeteoError(api string, errResp any, err error) error {
	if errorResponse, ok := errResp.(*external.OpenMeteoErrorResponse); ok && errorResponse.Reason != "" {
		return fmt.Errorf("open-meteo %s: %s: %w", api, errorResponse.Reason, err)
	}
	return fmt.Errorf("open-meteo %s: %w", api, err)
}
