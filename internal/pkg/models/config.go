package models

import "time"

// Config represents agent configuration. Every numeric tunable the runtime
// uses comes from here; components receive their section at construction.
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	NATS      NATSConfig
	NSQ       NSQConfig
	JWT       JWTConfig
	NewRelic  NewRelicConfig
	Logger    LoggerConfig
	Location  LocationConfig
	Publisher PublisherConfig
	Discovery DiscoveryConfig
	Presence  PresenceConfig
	Bootstrap BootstrapConfig
	MapSDK    MapSDKConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains Postgres connection configuration for the registry
type DatabaseConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// NSQConfig contains the NSQ daemon address for the telemetry pipeline
type NSQConfig struct {
	Address string
	Topic   string
}

// JWTConfig contains session token configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// NewRelicConfig contains the optional APM configuration
type NewRelicConfig struct {
	LicenseKey string
	AppName    string
	Enabled    bool
}

// LoggerConfig contains logging configuration
type LoggerConfig struct {
	Level    string
	FilePath string // empty means stdout only
}

// SamplingProfile is one row of the power policy table
type SamplingProfile struct {
	Interval         time.Duration
	MinInterval      time.Duration
	Priority         LocationPriority
	MinDisplacementM float64
}

// LocationConfig tunes acquisition and consumer coordination
type LocationConfig struct {
	// Power policy table: profile selected by charging / app state / battery
	Charging          SamplingProfile
	Foreground        SamplingProfile
	Background        SamplingProfile
	BackgroundLowBatt SamplingProfile

	LowBatteryPercent int // threshold selecting the low-battery profile

	// Simulate replaces the app-fed provider with a random walk from
	// (SimulateLat, SimulateLng), for local runs without a device.
	Simulate    bool
	SimulateLat float64
	SimulateLng float64
}

// PublisherConfig tunes debouncing and retry of directory writes
type PublisherConfig struct {
	DebounceWindow time.Duration // min time between accepted writes
	MinDistanceM   float64       // movement that forces a write inside the window
	SettleDelay    time.Duration // burst-coalescing delay before a triggered write
	RetryMax       int
	RetryBase      time.Duration
	RetryCap       time.Duration
}

// DiscoveryConfig tunes the proximity engine
type DiscoveryConfig struct {
	RadiusKm      float64
	WatchSameRole bool
}

// PresenceConfig tunes the directory lease that backs disconnect cleanup
type PresenceConfig struct {
	LeaseTTL          time.Duration // record lifetime without a heartbeat
	HeartbeatInterval time.Duration // lease refresh cadence while connected
}

// BootstrapConfig bounds the startup sequencer stages
type BootstrapConfig struct {
	CriticalTimeout    time.Duration
	NonCriticalTimeout time.Duration
}

// MapSDKConfig bounds the mapping SDK readiness guard
type MapSDKConfig struct {
	StatusURL     string
	InitTimeout   time.Duration // overall budget for the whole attempt
	ProbeDelayCap time.Duration // backoff ceiling between probes
	MaxProbes     int
}
