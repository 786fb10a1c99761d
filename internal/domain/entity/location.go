package entity

import "time"

type Location struct {
	ID            string  `json:"id"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Perpendicular float64 `json:"perpendicular"`
	Title         string  `json:"title"`
}

// SavedLocation is the persisted aggregate: a Location plus the merged forecast and display preferences
type SavedLocation struct {
	Location         Location          `json:"location"`
	DateCreated      time.Time         `json:"dateCreated"`
	DateUpdated      time.Time         `json:"dateUpdated"`
	Weather          []WeatherSample   `json:"weather"`
	CustomOrderIndex int               `json:"customOrderIndex"`
	Background       BackgroundVariant `json:"background"`
}

func (s SavedLocation) ID() string {
	return s.Location.ID
}
