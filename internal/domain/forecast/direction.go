package forecast

import (
	"math"

	"surfcast-api/internal/domain/entity"
)

// ClassifyWind classifies a wind bearing against the shore-perpendicular bearing.
// diff <= 45 or diff >= 315 is offshore, 45 < diff < 135 is cross-shore, anything else onshore.
func ClassifyWind(wind, perpendicular float64) entity.WindClassification {
	diff := math.Mod(wind-perpendicular+360, 360)
	if diff < 0 {
		diff += 360
	}

	switch {
	case diff <= 45 || diff >= 315:
		return entity.WindOffshore
	case diff > 45 && diff < 135:
		return entity.WindCrossShore
	default:
		return entity.WindOnshore
	}
}

// ClassifySample classifies the wind of a sample; ok is false when it has no wind direction
func ClassifySample(sample *entity.WeatherSample, perpendicular float64) (entity.WindClassification, bool) {
	if sample == nil || sample.WindDirection == nil {
		return entity.WindOnshore, false
	}
	return ClassifyWind(*sample.WindDirection, perpendicular), true
}
