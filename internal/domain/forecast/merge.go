package forecast

import (
	"sort"
	"time"

	"surfcast-api/internal/domain/entity"
)

// MergeSeries aligns the marine and atmospheric series on one hourly grid and
// enriches it with tide, rating and surf height data. See MergeSeriesWithReport.
func MergeSeries(in MergeInput) ([]entity.WeatherSample, error) {
	samples, _, err := MergeSeriesWithReport(in)
	return samples, err
}

// MergeSeriesWithReport merges the provider data into samples sorted ascending by date.
//
// Only the first min(len(marine), len(atmospheric)) indexes are merged. An index whose
// marine timestamp does not parse is skipped. Missing values read as 0. Tide timestamps
// that fall between grid points are backfilled from the next later sample.
// ErrEmptyResult is returned when no sample could be built.
func MergeSeriesWithReport(in MergeInput) ([]entity.WeatherSample, MergeReport, error) {
	var report MergeReport
	zone := time.FixedZone("", in.Marine.UTCOffsetSeconds)

	maxIndex := min(len(in.Marine.Time), len(in.Atmospheric.Time))
	report.Truncated = max(len(in.Marine.Time), len(in.Atmospheric.Time)) - maxIndex

	samples := make([]entity.WeatherSample, 0, maxIndex)
	present := make(map[int64]struct{}, maxIndex)

	for i := 0; i < maxIndex; i++ {
		date, err := time.ParseInLocation(TimeLayout, in.Marine.Time[i], zone)
		if err != nil {
			report.Skipped++
			report.SkippedTimes = append(report.SkippedTimes, in.Marine.Time[i])
			continue
		}

		unix := date.Unix()
		sample := entity.WeatherSample{
			Date:           date,
			AirTemperature: entity.Float(valueAt(in.Atmospheric.Temperature, i)),
			WindDirection:  entity.Float(valueAt(in.Atmospheric.WindDirection, i)),
			WindSpeed:      entity.Float(valueAt(in.Atmospheric.WindSpeed, i)),
			WindGust:       entity.Float(valueAt(in.Atmospheric.WindGusts, i)),
			SwellDirection: entity.Float(valueAt(in.Marine.SwellWaveDirection, i)),
			SwellPeriod:    entity.Float(valueAt(in.Marine.SwellWavePeriod, i)),
			SwellHeight:    entity.Float(valueAt(in.Marine.SwellWaveHeight, i)),
			TideHeight:     entity.Float(in.Tides[unix]),
			SurfRating:     entity.SurfRatingFromCode(int(in.Ratings[unix])),
		}
		if height, ok := in.SurfHeights[unix]; ok {
			sample.WaveHeightMin = entity.Float(height.Min)
			sample.WaveHeightMax = entity.Float(height.Max)
		}

		samples = append(samples, sample)
		present[unix] = struct{}{}
	}

	if len(samples) == 0 {
		return nil, report, ErrEmptyResult
	}

	backfilled, dropped := backfillTides(samples, in.Tides, present, zone)
	report.Backfilled = len(backfilled)
	report.OrphanDropped = dropped

	samples = append(samples, backfilled...)
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Date.Before(samples[j].Date)
	})

	return samples, report, nil
}

// backfillTides synthesizes a sample for every tide timestamp missing from the grid by
// copying the first sample strictly after it. Orphans with no later sample are dropped.
func backfillTides(samples []entity.WeatherSample, tides map[int64]float64, present map[int64]struct{}, zone *time.Location) ([]entity.WeatherSample, int) {
	orphans := make([]int64, 0)
	for unix := range tides {
		if _, ok := present[unix]; !ok {
			orphans = append(orphans, unix)
		}
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i] < orphans[j] })

	var (
		synthesized []entity.WeatherSample
		dropped     int
	)
	for _, orphan := range orphans {
		neighbor := -1
		for i := range samples {
			if samples[i].Date.Unix() > orphan {
				neighbor = i
				break
			}
		}
		if neighbor < 0 {
			dropped++
			continue
		}

		sample := samples[neighbor]
		sample.Date = time.Unix(orphan, 0).In(zone)
		sample.TideHeight = entity.Float(tides[orphan])
		synthesized = append(synthesized, sample)
	}
	return synthesized, dropped
}

func valueAt(values []*float64, i int) float64 {
	if i < 0 || i >= len(values) || values[i] == nil {
		return 0
	}
	return *values[i]
}
