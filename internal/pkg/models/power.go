package models

import "time"

// AppState tracks whether the participant's app session is foregrounded
type AppState string

const (
	AppStateForeground AppState = "foreground"
	AppStateBackground AppState = "background"
)

// PowerSnapshot is a point-in-time view of device power conditions. Reads are
// cached for a short window, so ObservedAt may lag the current moment.
type PowerSnapshot struct {
	BatteryPercent int       `json:"battery_percent"`
	Charging       bool      `json:"charging"`
	AppState       AppState  `json:"app_state"`
	ObservedAt     time.Time `json:"observed_at"`
}

// Foregrounded reports whether retry-worthy work should run (publisher write
// retries are suppressed in background to avoid fighting a dead connection).
func (s PowerSnapshot) Foregrounded() bool {
	return s.AppState == AppStateForeground
}
