package model

import (
	"errors"
	"strings"
	"time"

	"surfcast-api/internal/domain/entity"
)

var ErrInvalidLocation = errors.New("invalid location")

type AddLocationDTO struct {
	ID            string  `json:"id"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Perpendicular float64 `json:"perpendicular"`
	Title         string  `json:"title"`
	// Background defaults to the one of the last saved location
	Background *entity.BackgroundVariant `json:"background,omitempty"`
}

// Validate checks coordinates, bearing and the required text fields
func (d AddLocationDTO) Validate() error {
	switch {
	case strings.TrimSpace(d.ID) == "":
		return errors.Join(ErrInvalidLocation, errors.New("id is required"))
	case strings.TrimSpace(d.Title) == "":
		return errors.Join(ErrInvalidLocation, errors.New("title is required"))
	case d.Latitude < -90 || d.Latitude > 90:
		return errors.Join(ErrInvalidLocation, errors.New("latitude must be between -90 and 90"))
	case d.Longitude < -180 || d.Longitude > 180:
		return errors.Join(ErrInvalidLocation, errors.New("longitude must be between -180 and 180"))
	case d.Perpendicular < 0 || d.Perpendicular >= 360:
		return errors.Join(ErrInvalidLocation, errors.New("perpendicular must be within [0, 360)"))
	}
	if d.Background != nil {
		if err := d.Background.Validate(); err != nil {
			return errors.Join(ErrInvalidLocation, err)
		}
	}
	return nil
}

func (d AddLocationDTO) ToEntity() entity.Location {
	return entity.Location{
		ID:            strings.TrimSpace(d.ID),
		Latitude:      d.Latitude,
		Longitude:     d.Longitude,
		Perpendicular: d.Perpendicular,
		Title:         strings.TrimSpace(d.Title),
	}
}

type ReorderLocationsDTO struct {
	IDs []string `json:"ids"`
}

type ChangeBackgroundDTO struct {
	Background entity.BackgroundVariant `json:"background"`
}

type LocationChangeType string

const (
	LocationAdded      LocationChangeType = "ADDED"
	LocationDeleted    LocationChangeType = "DELETED"
	LocationRefreshed  LocationChangeType = "REFRESHED"
	LocationsReordered LocationChangeType = "REORDERED"
	BackgroundChanged  LocationChangeType = "BACKGROUND_CHANGED"
)

// LocationChange is published after every successful write
type LocationChange struct {
	Type        LocationChangeType `json:"type"`
	LocationIDs []string           `json:"locationIds"`
	At          time.Time          `json:"at"`
}

// RefreshMessage is the body of a refresh job on the queue
type RefreshMessage struct {
	LocationID string `json:"locationId"`
	RequestID  string `json:"requestId"`
}
