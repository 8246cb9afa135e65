package models

import "time"

// SessionRequest carries the enterSession command parameters
type SessionRequest struct {
	ParticipantID string `json:"participant_id"`
	Role          Role   `json:"role"`
	Destination   string `json:"destination"`
}

// Counterpart is one discovered entity in a watched partition. Role records
// which partition it came from, so per-partition snapshots prune only their
// own entries.
type Counterpart struct {
	ParticipantID string    `json:"participant_id"`
	Role          Role      `json:"role"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	DistanceKm    float64   `json:"distance_km"`
	LastSeen      time.Time `json:"last_seen"`
}

// SessionState is the observable state exposed to the UI layer. The UI only
// ever sees available / not available / error, never raw internals.
type SessionState struct {
	Active           bool          `json:"active"`
	ParticipantID    string        `json:"participant_id,omitempty"`
	Role             Role          `json:"role,omitempty"`
	Destination      string        `json:"destination,omitempty"`
	Position         *Fix          `json:"position,omitempty"`
	UpdateInProgress bool          `json:"update_in_progress"`
	Monitoring       string        `json:"monitoring"`
	Counterparts     []Counterpart `json:"counterparts"`
	CounterpartCount int           `json:"counterpart_count"`
}
