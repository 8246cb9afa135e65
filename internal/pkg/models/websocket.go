package models

import (
	"encoding/json"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/websocket"
)

// WSMessage represents a WebSocket message structure
type WSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// WSErrorMessage represents an error message sent over WebSocket
type WSErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WebSocketClient is one authenticated UI connection
type WebSocketClient struct {
	ParticipantID string
	Role          string
	Conn          *websocket.Conn
}

// WebSocketClaims are the JWT claims carried by session tokens
type WebSocketClaims struct {
	ParticipantID string `json:"participant_id"`
	Role          string `json:"role"`
	jwt.RegisteredClaims
}

// AppStateUpdate is the ws payload reporting device power/app-state changes
type AppStateUpdate struct {
	AppState       AppState `json:"app_state"`
	BatteryPercent int      `json:"battery_percent"`
	Charging       bool     `json:"charging"`
}
