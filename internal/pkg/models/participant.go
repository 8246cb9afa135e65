package models

import (
	"time"

	"github.com/google/uuid"
)

// Participant is a registered user of the directory. Identity is externally
// assigned and stable across sessions; role and destination are chosen per
// session and never stored here.
type Participant struct {
	ID          uuid.UUID `json:"id" db:"id"`
	MSISDN      string    `json:"msisdn" db:"msisdn"`
	DisplayName string    `json:"display_name" db:"display_name"`
	DefaultRole Role      `json:"default_role" db:"default_role"`
	APIKeyHash  string    `json:"-" db:"api_key_hash"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// AuthResponse is returned after a successful token issue
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}
