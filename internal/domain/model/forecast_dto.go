package model

import (
	"time"

	"surfcast-api/internal/domain/entity"
	"surfcast-api/internal/domain/forecast"
)

type RefreshState string

const (
	RefreshIdle    RefreshState = "IDLE"
	RefreshLoading RefreshState = "LOADING"
	RefreshLoaded  RefreshState = "LOADED"
	RefreshFailed  RefreshState = "FAILED"
)

type RefreshStatus struct {
	LocationID string       `json:"locationId"`
	State      RefreshState `json:"state"`
	Error      string       `json:"error,omitempty"`
	UpdatedAt  *time.Time   `json:"updatedAt,omitempty"`
}

type TideExtremum struct {
	Sample entity.WeatherSample `json:"sample"`
	Trend  forecast.TideTrend   `json:"trend"`
}

// ForecastSummary bundles the indicators derived from a location's samples at one instant
type ForecastSummary struct {
	Location     entity.SavedLocation       `json:"location"`
	GeneratedAt  time.Time                  `json:"generatedAt"`
	NeedsRefresh bool                       `json:"needsRefresh"`
	Now          *entity.WeatherSample      `json:"now"`
	Today        []entity.WeatherSample     `json:"today"`
	NextTide     *TideExtremum              `json:"nextTide"`
	Wind         *entity.WindClassification `json:"wind"`
	Timeline     []TimelineEntry            `json:"timeline"`
}

// TimelineEntry is the sample shown at one instant of the widget timeline
type TimelineEntry struct {
	Date   time.Time             `json:"date"`
	Sample *entity.WeatherSample `json:"sample"`
}

type RefreshAllResult struct {
	RequestID string   `json:"requestId"`
	Scanned   int      `json:"scanned"`
	Stale     []string `json:"stale"`
	Enqueued  []string `json:"enqueued"`
	Refreshed []string `json:"refreshed"`
	Failed    []string `json:"failed"`
}
