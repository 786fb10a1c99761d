package external

// OpenMeteoMarineResponse is the hourly marine forecast of the Open-Meteo marine API
type OpenMeteoMarineResponse struct {
	Latitude         float64               `json:"latitude"`
	Longitude        float64               `json:"longitude"`
	UTCOffsetSeconds int                   `json:"utc_offset_seconds"`
	Timezone         string                `json:"timezone"`
	Hourly           OpenMeteoMarineHourly `json:"hourly"`
	HourlyUnits      map[string]string     `json:"hourly_units"`
}

type OpenMeteoMarineHourly struct {
	Time               []string   `json:"time"`
	WaveHeight         []*float64 `json:"wave_height"`
	WaveDirection      []*float64 `json:"wave_direction"`
	WavePeriod         []*float64 `json:"wave_period"`
	SwellWaveHeight    []*float64 `json:"swell_wave_height"`
	SwellWaveDirection []*float64 `json:"swell_wave_direction"`
	SwellWavePeriod    []*float64 `json:"swell_wave_period"`
}

// OpenMeteoForecastResponse is the hourly atmospheric forecast of the Open-Meteo forecast API
type OpenMeteoForecastResponse struct {
	Latitude         float64                 `json:"latitude"`
	Longitude        float64                 `json:"longitude"`
	UTCOffsetSeconds int                     `json:"utc_offset_seconds"`
	Timezone         string                  `json:"timezone"`
	Hourly           OpenMeteoForecastHourly `json:"hourly"`
	HourlyUnits      map[string]string       `json:"hourly_units"`
}

type OpenMeteoForecastHourly struct {
	Time             []string   `json:"time"`
	Temperature2m    []*float64 `json:"temperature_2m"`
	WindSpeed10m     []*float64 `json:"wind_speed_10m"`
	WindDirection10m []*float64 `json:"wind_direction_10m"`
	WindGusts10m     []*float64 `json:"wind_gusts_10m"`
}

// OpenMeteoErrorResponse is returned by both Open-Meteo APIs on a bad request
type OpenMeteoErrorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}
