package models

import (
	"fmt"
	"time"
)

// Role identifies which side of a meetup a participant is on
type Role string

const (
	RoleSeeker   Role = "seeker"
	RoleProvider Role = "provider"
)

// Valid reports whether the role is one of the two known roles
func (r Role) Valid() bool {
	return r == RoleSeeker || r == RoleProvider
}

// Opposite returns the counterpart role
func (r Role) Opposite() Role {
	if r == RoleSeeker {
		return RoleProvider
	}
	return RoleSeeker
}

// Partition identifies one role bucket under a destination. Discovery
// subscribes to exactly one partition at a time.
type Partition struct {
	Role        Role   `json:"role"`
	Destination string `json:"destination"`
}

func (p Partition) String() string {
	return fmt.Sprintf("%ss/%s", p.Role, p.Destination)
}

// Path identifies a single presence record in the directory
type Path struct {
	Partition
	ParticipantID string `json:"participant_id"`
}

func (p Path) String() string {
	return fmt.Sprintf("%ss/%s/%s", p.Role, p.Destination, p.ParticipantID)
}

// PresenceRecord is the directory entry proving a participant is currently
// available. A record exists iff the owning participant is available; at most
// one record per participant across all partitions at any time.
type PresenceRecord struct {
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	UpdatedAt   time.Time `json:"updated_at"`
	Role        Role      `json:"role"`
	Destination string    `json:"destination"`
	Geohash     string    `json:"geohash,omitempty"`
}

// NearbyEntity is a directory entry with its distance from a query point
type NearbyEntity struct {
	ParticipantID string  `json:"participant_id"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	DistanceKm    float64 `json:"distance_km"`
}
