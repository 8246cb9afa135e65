package constants

// WebSocket event types
const (
	// Common events
	EventError = "error"
	EventPing  = "ping"
	EventPong  = "pong"

	// Inbound commands from the UI layer
	EventSessionEnter      = "session_enter"
	EventSessionExit       = "session_exit"
	EventChangeDestination = "change_destination"
	EventChangeRole        = "change_role"
	EventLocationUpdate    = "location_update"
	EventAppState          = "app_state"

	// Outbound pushes to the UI layer
	EventProximityAlert = "proximity_alert"
	EventSessionState   = "session_state"
)

// WebSocket error codes
const (
	ErrorInvalidFormat    = "invalid_format"
	ErrorValidationFailed = "validation_failed"
	ErrorUnauthorized     = "unauthorized"
	ErrorInternalError    = "internal_error"
	ErrorInvalidLocation  = "invalid_location"
	ErrorSessionState     = "session_state_error"
)
