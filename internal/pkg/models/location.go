package models

import "time"

// Fix represents a single position fix delivered by a location provider
type Fix struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	AccuracyM float64   `json:"accuracy_m,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// LocationPriority expresses the accuracy/power trade-off requested from the provider
type LocationPriority int

const (
	PriorityLowPower LocationPriority = iota
	PriorityBalanced
	PriorityHighAccuracy
)

func (p LocationPriority) String() string {
	switch p {
	case PriorityLowPower:
		return "low_power"
	case PriorityBalanced:
		return "balanced"
	case PriorityHighAccuracy:
		return "high_accuracy"
	default:
		return "unknown"
	}
}

// LocationDemand is one consumer's requested update parameters. The union of
// all active demands determines the single physical subscription in force.
type LocationDemand struct {
	Interval time.Duration `json:"interval"`
	Priority LocationPriority `json:"priority"`
}

// ProviderConfig is the effective configuration applied to the physical
// location subscription after demand aggregation and power policy.
type ProviderConfig struct {
	Interval         time.Duration
	MinInterval      time.Duration
	Priority         LocationPriority
	MinDisplacementM float64
}

// Equal reports whether two configurations would produce the same physical
// subscription, which is what decides whether a reconfigure call is issued.
func (c ProviderConfig) Equal(other ProviderConfig) bool {
	return c.Interval == other.Interval &&
		c.MinInterval == other.MinInterval &&
		c.Priority == other.Priority &&
		c.MinDisplacementM == other.MinDisplacementM
}
