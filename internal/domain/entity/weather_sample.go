package entity

import "time"

// WeatherSample is one hourly (or tide-extremum) data point of a location.
// Every field except Date is optional.
type WeatherSample struct {
	Date           time.Time  `json:"date"`
	AirTemperature *float64   `json:"airTemperature"`
	WindDirection  *float64   `json:"windDirection"`
	WindSpeed      *float64   `json:"windSpeed"`
	WindGust       *float64   `json:"windGust"`
	SwellDirection *float64   `json:"swellDirection"`
	SwellPeriod    *float64   `json:"swellPeriod"`
	SwellHeight    *float64   `json:"swellHeight"`
	TideHeight     *float64   `json:"tideHeight"`
	WaveHeightMin  *float64   `json:"waveHeightMin"`
	WaveHeightMax  *float64   `json:"waveHeightMax"`
	SurfRating     SurfRating `json:"surfRating"`
}

// Float returns a pointer to v, used to fill optional sample fields
func Float(v float64) *float64 {
	return &v
}
