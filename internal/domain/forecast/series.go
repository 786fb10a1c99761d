package forecast

import "surfcast-api/internal/domain/entity"

// TimeLayout is the local-time layout of the hourly provider series
const TimeLayout = "2006-01-02T15:04"

// MarineSeries holds the hourly marine series of one location.
// Time entries are local times at UTCOffsetSeconds.
type MarineSeries struct {
	UTCOffsetSeconds   int
	Time               []string
	WaveHeight         []*float64
	WaveDirection      []*float64
	WavePeriod         []*float64
	SwellWaveHeight    []*float64
	SwellWaveDirection []*float64
	SwellWavePeriod    []*float64
}

// AtmosphericSeries holds the hourly atmospheric series, index-aligned with MarineSeries
type AtmosphericSeries struct {
	UTCOffsetSeconds int
	Time             []string
	Temperature      []*float64
	WindSpeed        []*float64
	WindDirection    []*float64
	WindGusts        []*float64
}

type SurfHeight struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// MergeInput groups the provider data of one refresh. The maps are keyed by unix seconds
// and may be empty when the optional providers failed.
type MergeInput struct {
	Marine      MarineSeries
	Atmospheric AtmosphericSeries
	Tides       map[int64]float64
	Ratings     map[int64]entity.SurfRating
	SurfHeights map[int64]SurfHeight
}

// MergeReport describes what a merge discarded or synthesized
type MergeReport struct {
	Truncated     int      `json:"truncated"`
	Skipped       int      `json:"skipped"`
	SkippedTimes  []string `json:"skippedTimes,omitempty"`
	Backfilled    int      `json:"backfilled"`
	OrphanDropped int      `json:"orphanDropped"`
}
