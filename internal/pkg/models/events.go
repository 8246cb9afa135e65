package models

import "time"

// ProximityAlert is emitted at most once per counterpart per session when a
// counterpart first comes within the configured radius.
type ProximityAlert struct {
	ParticipantID string    `json:"participant_id"`
	CounterpartID string    `json:"counterpart_id"`
	Role          Role      `json:"counterpart_role"`
	Destination   string    `json:"destination"`
	DistanceKm    float64   `json:"distance_km"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	AlertedAt     time.Time `json:"alerted_at"`
}

// TelemetryEvent is a structured error/diagnostic event for the ops pipeline
type TelemetryEvent struct {
	Kind       string            `json:"kind"`
	Message    string            `json:"message"`
	Context    map[string]string `json:"context,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
