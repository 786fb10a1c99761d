package forecast

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"surfcast-api/internal/domain/entity"
)

var base = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func hourly(tides ...float64) []entity.WeatherSample {
	samples := make([]entity.WeatherSample, len(tides))
	for i, tide := range tides {
		samples[i] = entity.WeatherSample{Date: base.Add(time.Duration(i) * time.Hour), TideHeight: entity.Float(tide)}
	}
	return samples
}

func floats(values ...float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		out[i] = entity.Float(values[i])
	}
	return out
}

func TestClosest(t *testing.T) {
	samples := []entity.WeatherSample{
		{Date: base.Add(2 * time.Hour), SurfRating: entity.SurfRatingPoor},
		{Date: base, SurfRating: entity.SurfRatingFair},
		{Date: base.Add(-time.Hour), SurfRating: entity.SurfRatingGood},
		{Date: base.Add(time.Hour), SurfRating: entity.SurfRatingVeryPoor},
	}

	tests := []struct {
		name   string
		target time.Time
		want   entity.SurfRating
	}{
		{"exact", base, entity.SurfRatingFair},
		{"nearest", base.Add(100 * time.Minute), entity.SurfRatingPoor},
		{"tie goes to first in input order", base.Add(-30 * time.Minute), entity.SurfRatingFair},
		{"tie between later samples", base.Add(90 * time.Minute), entity.SurfRatingPoor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Closest(samples, tt.target)
			if got == nil || got.SurfRating != tt.want {
				t.Errorf("Closest() = %v, want rating %v", got, tt.want)
			}
		})
	}

	if Closest(nil, base) != nil {
		t.Error("Closest(nil) should be nil")
	}
}

func TestNow(t *testing.T) {
	samples := []entity.WeatherSample{
		{Date: base, SurfRating: entity.SurfRatingPoor},
		{Date: base.Add(40 * time.Minute), SurfRating: entity.SurfRatingGood},
		{Date: base.Add(time.Hour), SurfRating: entity.SurfRatingFair},
	}

	if got := Now(samples, base.Add(35*time.Minute)); got == nil || got.SurfRating != entity.SurfRatingGood {
		t.Errorf("Now() = %v, want the 08:40 sample", got)
	}
	if got := Now(samples, base.Add(5*time.Minute)); got == nil || got.SurfRating != entity.SurfRatingPoor {
		t.Errorf("Now() = %v, want the 08:00 sample", got)
	}
	if got := Now(samples, base.Add(3*time.Hour)); got != nil {
		t.Errorf("Now() = %v, want nil", got)
	}
	if got := Now(samples, base.Add(24*time.Hour)); got != nil {
		t.Errorf("Now() on next day = %v, want nil", got)
	}
}

func TestToday(t *testing.T) {
	samples := []entity.WeatherSample{
		{Date: base.Add(3 * time.Hour)},
		{Date: base.Add(-9 * time.Hour)},
		{Date: base},
		{Date: base.Add(16 * time.Hour)},
		{Date: base.Add(time.Hour)},
	}

	got := Today(samples, base)
	want := []time.Time{base, base.Add(time.Hour), base.Add(3 * time.Hour)}
	if len(got) != len(want) {
		t.Fatalf("Today() returned %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Date.Equal(want[i]) {
			t.Errorf("Today()[%d] = %v, want %v", i, got[i].Date, want[i])
		}
	}
}

func TestToday_UsesReferenceZone(t *testing.T) {
	bali := time.FixedZone("WITA", 8*3600)
	now := time.Date(2026, 3, 1, 7, 0, 0, 0, bali)
	samples := []entity.WeatherSample{
		{Date: time.Date(2026, 2, 28, 23, 0, 0, 0, time.UTC)},
		{Date: time.Date(2026, 2, 28, 15, 0, 0, 0, time.UTC)},
	}
	if got := Today(samples, now); len(got) != 1 {
		t.Errorf("Today() returned %d samples, want 1", len(got))
	}
}

func TestNextTideExtremum(t *testing.T) {
	tests := []struct {
		name      string
		tides     []float64
		want      float64
		wantTrend TideTrend
	}{
		{"rising then falling", []float64{0.5, 0.8, 1.0, 1.5, 1.4, 1.3}, 1.5, TideRising},
		{"minimum hunting", []float64{1.5, 1.2, 1.9, 1.5, 1.4, 1.3}, 1.2, TideFalling},
		{"two samples", []float64{1.5, 1.2}, 1.2, TideFalling},
		{"monotonic exhausts scan", []float64{0.2, 0.4, 0.6, 0.9}, 0.9, TideRising},
		{"flat counts as turning point", []float64{1.0, 1.0, 1.0}, 1.0, TideRising},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, trend := NextTideExtremumWithTrend(hourly(tt.tides...), base)
			if got == nil {
				t.Fatal("NextTideExtremumWithTrend() = nil")
			}
			if *got.TideHeight != tt.want {
				t.Errorf("tide = %v, want %v", *got.TideHeight, tt.want)
			}
			if trend != tt.wantTrend {
				t.Errorf("trend = %v, want %v", trend, tt.wantTrend)
			}
		})
	}
}

func TestTideTrend_MarshalJSON(t *testing.T) {
	tests := []struct {
		trend TideTrend
		want  string
	}{
		{TideRising, `"rising"`},
		{TideFalling, `"falling"`},
		{TideUnknown, `"unknown"`},
	}
	for _, tt := range tests {
		got, err := json.Marshal(tt.trend)
		if err != nil {
			t.Fatalf("Marshal(%v) error = %v", tt.trend, err)
		}
		if string(got) != tt.want {
			t.Errorf("Marshal(%v) = %s, want %s", tt.trend, got, tt.want)
		}
	}
}

func TestNextTideExtremum_Nil(t *testing.T) {
	noTide := hourly(1.0, 1.2, 1.4)
	noTide[0].TideHeight = nil

	single := hourly(1.0, 1.2)
	single[1].TideHeight = nil

	tests := []struct {
		name    string
		samples []entity.WeatherSample
		now     time.Time
	}{
		{"no sample this hour", hourly(1.0, 1.2), base.Add(5 * time.Hour)},
		{"current sample without tide", noTide, base},
		{"fewer than two tides", single, base},
		{"empty", nil, base},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextTideExtremum(tt.samples, tt.now); got != nil {
				t.Errorf("NextTideExtremum() = %v, want nil", *got.TideHeight)
			}
		})
	}
}

func TestNextTideExtremum_StartsFromCurrentHour(t *testing.T) {
	samples := hourly(2.0, 1.0, 0.5, 0.8, 1.1, 0.9)
	got := NextTideExtremum(samples, base.Add(2*time.Hour+10*time.Minute))
	if got == nil || *got.TideHeight != 1.1 {
		t.Errorf("NextTideExtremum() = %v, want 1.1", got)
	}
}

func TestClassifyWind(t *testing.T) {
	tests := []struct {
		wind, perpendicular float64
		want                entity.WindClassification
	}{
		{80, 90, entity.WindOffshore},
		{90, 90, entity.WindOffshore},
		{135, 90, entity.WindOffshore},
		{136, 90, entity.WindCrossShore},
		{224.9, 90, entity.WindCrossShore},
		{225, 90, entity.WindOnshore},
		{270, 90, entity.WindOnshore},
		{44, 90, entity.WindOnshore},
		{45, 90, entity.WindOffshore},
		{45, 0, entity.WindOffshore},
		{46, 0, entity.WindCrossShore},
		{135, 0, entity.WindOnshore},
		{315, 0, entity.WindOffshore},
		{314, 0, entity.WindOnshore},
		{350, 0, entity.WindOffshore},
		{10, 350, entity.WindOffshore},
		{-30, 0, entity.WindOffshore},
	}
	for _, tt := range tests {
		if got := ClassifyWind(tt.wind, tt.perpendicular); got != tt.want {
			t.Errorf("ClassifyWind(%v, %v) = %v, want %v", tt.wind, tt.perpendicular, got, tt.want)
		}
	}
}

func TestClassifySample(t *testing.T) {
	if _, ok := ClassifySample(nil, 90); ok {
		t.Error("ClassifySample(nil) ok = true")
	}
	if _, ok := ClassifySample(&entity.WeatherSample{}, 90); ok {
		t.Error("ClassifySample(no wind) ok = true")
	}
	got, ok := ClassifySample(&entity.WeatherSample{WindDirection: entity.Float(100)}, 90)
	if !ok || got != entity.WindOffshore {
		t.Errorf("ClassifySample() = %v, %v", got, ok)
	}
}

func TestNeedsRefresh(t *testing.T) {
	now := base.Add(30 * time.Minute)
	withCurrentHour := hourly(1, 2, 3)

	tests := []struct {
		name     string
		location entity.SavedLocation
		want     bool
	}{
		{"no sample this hour", entity.SavedLocation{Weather: hourly(1)[:0], DateUpdated: now}, true},
		{"fresh with current hour", entity.SavedLocation{Weather: withCurrentHour, DateUpdated: now}, false},
		{"10h1s old", entity.SavedLocation{Weather: withCurrentHour, DateUpdated: now.Add(-10*time.Hour - time.Second)}, true},
		{"9h59m old", entity.SavedLocation{Weather: withCurrentHour, DateUpdated: now.Add(-9*time.Hour - 59*time.Minute)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsRefresh(tt.location, now); got != tt.want {
				t.Errorf("NeedsRefresh() = %v, want %v", got, tt.want)
			}
		})
	}

	stale := entity.SavedLocation{Weather: hourly(1), DateUpdated: now}
	if !NeedsRefresh(stale, base.Add(5*time.Hour)) {
		t.Error("NeedsRefresh() = false for a recent update without current-hour data")
	}
}

func TestMergeSeries_BoundedByShorterSeries(t *testing.T) {
	in := MergeInput{
		Marine: MarineSeries{
			Time:            []string{"2026-03-01T08:00", "2026-03-01T09:00", "2026-03-01T10:00", "2026-03-01T11:00", "2026-03-01T12:00"},
			SwellWaveHeight: floats(1, 2, 3, 4, 5),
		},
		Atmospheric: AtmosphericSeries{
			Time:        []string{"2026-03-01T08:00", "2026-03-01T09:00", "2026-03-01T10:00"},
			Temperature: floats(27, 28),
		},
	}

	samples, report, err := MergeSeriesWithReport(in)
	if err != nil {
		t.Fatalf("MergeSeriesWithReport() error = %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("len = %d, want 3", len(samples))
	}
	if report.Truncated != 2 {
		t.Errorf("Truncated = %d, want 2", report.Truncated)
	}
	if *samples[2].AirTemperature != 0 {
		t.Errorf("out-of-range temperature = %v, want 0", *samples[2].AirTemperature)
	}
	if *samples[2].SwellHeight != 3 {
		t.Errorf("SwellHeight = %v, want 3", *samples[2].SwellHeight)
	}
	if *samples[0].TideHeight != 0 || samples[0].SurfRating != entity.SurfRatingUnknown {
		t.Errorf("missing tide/rating = %v/%v, want 0/unknown", *samples[0].TideHeight, samples[0].SurfRating)
	}
	if samples[0].WaveHeightMin != nil {
		t.Error("WaveHeightMin should stay nil without surf heights")
	}
}

func TestMergeSeries_ZoneAndEnrichment(t *testing.T) {
	const offset = 8 * 3600
	zone := time.FixedZone("", offset)
	at := func(clock string) int64 {
		d, _ := time.ParseInLocation(TimeLayout, clock, zone)
		return d.Unix()
	}

	in := MergeInput{
		Marine: MarineSeries{
			UTCOffsetSeconds:   offset,
			Time:               []string{"2026-03-01T08:00", "bad", "2026-03-01T10:00", "2026-03-01T11:00"},
			SwellWaveDirection: []*float64{entity.Float(200), nil, entity.Float(210), entity.Float(215)},
		},
		Atmospheric: AtmosphericSeries{
			Time:          []string{"x", "x", "x", "x"},
			WindDirection: floats(80, 90, 100, 110),
		},
		Tides: map[int64]float64{
			at("2026-03-01T08:00"): 1.1,
			at("2026-03-01T10:37"): 1.8,
			at("2026-03-01T09:12"): 0.4,
			at("2026-03-01T13:00"): 0.9,
		},
		Ratings: map[int64]entity.SurfRating{
			at("2026-03-01T10:00"): entity.SurfRatingFairToGood,
			at("2026-03-01T11:00"): entity.SurfRating(12),
		},
		SurfHeights: map[int64]SurfHeight{
			at("2026-03-01T08:00"): {Min: 0.9, Max: 1.4},
		},
	}

	samples, report, err := MergeSeriesWithReport(in)
	if err != nil {
		t.Fatalf("MergeSeriesWithReport() error = %v", err)
	}
	if report.Skipped != 1 || report.SkippedTimes[0] != "bad" {
		t.Errorf("Skipped = %d %v, want 1 [bad]", report.Skipped, report.SkippedTimes)
	}
	if report.Backfilled != 2 || report.OrphanDropped != 1 {
		t.Errorf("Backfilled/OrphanDropped = %d/%d, want 2/1", report.Backfilled, report.OrphanDropped)
	}

	wantTimes := []string{"2026-03-01T08:00", "2026-03-01T09:12", "2026-03-01T10:00", "2026-03-01T10:37", "2026-03-01T11:00"}
	if len(samples) != len(wantTimes) {
		t.Fatalf("len = %d, want %d", len(samples), len(wantTimes))
	}
	for i, want := range wantTimes {
		if got := samples[i].Date.In(zone).Format(TimeLayout); got != want {
			t.Errorf("samples[%d].Date = %s, want %s", i, got, want)
		}
	}

	first := samples[0]
	if *first.TideHeight != 1.1 || *first.WaveHeightMin != 0.9 || *first.WaveHeightMax != 1.4 {
		t.Errorf("first sample tide/min/max = %v/%v/%v", *first.TideHeight, *first.WaveHeightMin, *first.WaveHeightMax)
	}
	if _, offsetGot := first.Date.Zone(); offsetGot != offset {
		t.Errorf("zone offset = %d, want %d", offsetGot, offset)
	}

	orphan := samples[1]
	if *orphan.TideHeight != 0.4 || *orphan.WindDirection != 100 || orphan.SurfRating != entity.SurfRatingFairToGood {
		t.Errorf("backfilled sample = tide %v wind %v rating %v, want copy of 10:00 with tide 0.4",
			*orphan.TideHeight, *orphan.WindDirection, orphan.SurfRating)
	}
	if samples[4].SurfRating != entity.SurfRatingUnknown {
		t.Errorf("out-of-range rating = %v, want unknown", samples[4].SurfRating)
	}
}

func TestMergeSeries_EmptyResult(t *testing.T) {
	tests := []struct {
		name string
		in   MergeInput
	}{
		{"no data", MergeInput{}},
		{"atmospheric empty", MergeInput{Marine: MarineSeries{Time: []string{"2026-03-01T08:00"}}}},
		{"all malformed", MergeInput{
			Marine:      MarineSeries{Time: []string{"08:00", "2026/03/01"}},
			Atmospheric: AtmosphericSeries{Time: []string{"a", "b"}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := MergeSeries(tt.in); !errors.Is(err, ErrEmptyResult) {
				t.Errorf("MergeSeries() error = %v, want ErrEmptyResult", err)
			}
		})
	}
}
