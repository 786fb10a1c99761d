package forecast

import (
	"time"

	"surfcast-api/internal/domain/entity"
)

// StaleAfter is the age after which a saved forecast is refreshed
const StaleAfter = 10 * time.Hour

// NeedsRefresh reports whether the location has no sample for the current hour
// or was last updated more than StaleAfter ago.
func NeedsRefresh(location entity.SavedLocation, now time.Time) bool {
	if Now(location.Weather, now) == nil {
		return true
	}
	return location.DateUpdated.Before(now.Add(-StaleAfter))
}
