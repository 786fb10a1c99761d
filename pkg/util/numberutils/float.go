package numberutils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToFloat64WithError parses a decimal number, accepting a comma as decimal separator
func ToFloat64WithError(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}

// IsFloatInRange checks if the given number is within the specified range (inclusive).
func IsFloatInRange(num, min, max float64) bool {
	return num >= min && num <= max
}

// NormalizeDegrees maps any bearing to [0, 360)
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
