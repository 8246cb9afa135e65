package constants

// NATS subjects
const (
	// Published by the discovery engine, consumed by the notification fan-out
	SubjectProximityAlert = "proximity.alert"
)

// NSQ topics
const (
	TopicTelemetry = "agent.telemetry"
)
