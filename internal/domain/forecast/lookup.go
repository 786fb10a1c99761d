package forecast

import (
	"sort"
	"time"

	"surfcast-api/internal/domain/entity"
)

// Closest returns the sample nearest to target. Ties go to the earliest sample in input order.
func Closest(samples []entity.WeatherSample, target time.Time) *entity.WeatherSample {
	best := -1
	var bestDistance time.Duration
	for i := range samples {
		d := absDuration(samples[i].Date.Sub(target))
		if best < 0 || d < bestDistance {
			best, bestDistance = i, d
		}
	}
	if best < 0 {
		return nil
	}
	sample := samples[best]
	return &sample
}

// Now returns the sample of the current calendar hour closest to now, or nil
func Now(samples []entity.WeatherSample, now time.Time) *entity.WeatherSample {
	hour := make([]entity.WeatherSample, 0, 1)
	for _, s := range samples {
		if sameHour(s.Date, now) {
			hour = append(hour, s)
		}
	}
	return Closest(hour, now)
}

// Today returns the samples of now's calendar day sorted ascending
func Today(samples []entity.WeatherSample, now time.Time) []entity.WeatherSample {
	today := make([]entity.WeatherSample, 0)
	for _, s := range samples {
		if sameDay(s.Date, now) {
			today = append(today, s)
		}
	}
	sort.SliceStable(today, func(i, j int) bool {
		return today[i].Date.Before(today[j].Date)
	})
	return today
}

func sameDay(t, ref time.Time) bool {
	t = t.In(ref.Location())
	y1, m1, d1 := t.Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func sameHour(t, ref time.Time) bool {
	return sameDay(t, ref) && t.In(ref.Location()).Hour() == ref.Hour()
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
