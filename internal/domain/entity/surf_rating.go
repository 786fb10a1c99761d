package entity

import (
	"encoding/json"
	"strings"
)

type SurfRating int

const (
	SurfRatingUnknown SurfRating = iota
	SurfRatingVeryPoor
	SurfRatingPoor
	SurfRatingPoorToFair
	SurfRatingFair
	SurfRatingFairToGood
	SurfRatingGood
)

var surfRatingNames = [...]string{"unknown", "veryPoor", "poor", "poorToFair", "fair", "fairToGood", "good"}

// SurfRatingFromCode maps a raw provider code to a rating. Anything outside 0..6 is unknown.
func SurfRatingFromCode(code int) SurfRating {
	if code < int(SurfRatingUnknown) || code > int(SurfRatingGood) {
		return SurfRatingUnknown
	}
	return SurfRating(code)
}

// SurfRatingFromKey maps a provider key such as "FAIR_TO_GOOD" to a rating
func SurfRatingFromKey(key string) SurfRating {
	normalized := strings.ReplaceAll(strings.ToLower(key), "_", "")
	for i, name := range surfRatingNames {
		if strings.ToLower(name) == normalized {
			return SurfRating(i)
		}
	}
	return SurfRatingUnknown
}

func (r SurfRating) String() string {
	if r < SurfRatingUnknown || r > SurfRatingGood {
		return surfRatingNames[SurfRatingUnknown]
	}
	return surfRatingNames[r]
}

func (r SurfRating) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(SurfRatingFromCode(int(r))))
}

func (r *SurfRating) UnmarshalJSON(data []byte) error {
	var code int
	if err := json.Unmarshal(data, &code); err != nil {
		*r = SurfRatingUnknown
		return nil
	}
	*r = SurfRatingFromCode(code)
	return nil
}
