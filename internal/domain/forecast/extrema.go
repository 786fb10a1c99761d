package forecast

import (
	"encoding/json"
	"time"

	"surfcast-api/internal/domain/entity"
)

// TideTrend tells whether the tide is rising or falling towards the next turning point
type TideTrend int

const (
	TideUnknown TideTrend = iota
	TideRising
	TideFalling
)

// String returns the lower-case trend name
func (t TideTrend) String() string {
	switch t {
	case TideRising:
		return "rising"
	case TideFalling:
		return "falling"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the trend as its String form
func (t TideTrend) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// NextTideExtremum returns the next tide turning point of today, or nil
func NextTideExtremum(samples []entity.WeatherSample, now time.Time) *entity.WeatherSample {
	extremum, _ := NextTideExtremumWithTrend(samples, now)
	return extremum
}

// NextTideExtremumWithTrend scans today's samples from the current one and reports the
// first tide turning point. When the scan ends without a reversal the last running value
// is returned. The trend is rising while hunting a maximum and falling while hunting a minimum.
func NextTideExtremumWithTrend(samples []entity.WeatherSample, now time.Time) (*entity.WeatherSample, TideTrend) {
	current := Now(samples, now)
	if current == nil || current.TideHeight == nil {
		return nil, TideUnknown
	}
	nowTide := *current.TideHeight

	today := Today(samples, now)
	start := -1
	for i := len(today) - 1; i >= 0; i-- {
		if equalSamples(today[i], *current) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, TideUnknown
	}

	data := make([]entity.WeatherSample, 0, len(today)-start)
	for _, s := range today[start:] {
		if s.TideHeight != nil {
			data = append(data, s)
		}
	}
	if len(data) < 2 {
		return nil, TideUnknown
	}

	findMinimum := *data[1].TideHeight < nowTide
	trend := TideRising
	if findMinimum {
		trend = TideFalling
	}

	result := data[1]
	for i := 2; i < len(data); i++ {
		currentTide, previousTide := *data[i].TideHeight, *data[i-1].TideHeight
		if findMinimum {
			if currentTide >= previousTide {
				return &data[i-1], trend
			}
		} else if currentTide <= previousTide {
			return &data[i-1], trend
		}
		result = data[i]
	}
	return &result, trend
}

func equalSamples(a, b entity.WeatherSample) bool {
	return a.Date.Equal(b.Date) &&
		a.SurfRating == b.SurfRating &&
		equalFloat(a.AirTemperature, b.AirTemperature) &&
		equalFloat(a.WindDirection, b.WindDirection) &&
		equalFloat(a.WindSpeed, b.WindSpeed) &&
		equalFloat(a.WindGust, b.WindGust) &&
		equalFloat(a.SwellDirection, b.SwellDirection) &&
		equalFloat(a.SwellPeriod, b.SwellPeriod) &&
		equalFloat(a.SwellHeight, b.SwellHeight) &&
		equalFloat(a.TideHeight, b.TideHeight) &&
		equalFloat(a.WaveHeightMin, b.WaveHeightMin) &&
		equalFloat(a.WaveHeightMax, b.WaveHeightMax)
}

func equalFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
