package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/jumpa-app/jumpa/internal/pkg/constants"
	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

func InitConfig(configPath string) *models.Config {
	local := GetEnv("APP_ENV", "local")
	if local == "local" {
		// Load config from file
		err := godotenv.Load(configPath)
		if err != nil {
			log.Println("error loading config from file", err)
		}
	}
	// Create config from environment variables
	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "jumpa-agent")
	configs.App.Environment = GetEnv("APP_ENV", "local")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", true)
	configs.App.Version = GetEnv("APP_VERSION", "1.0.0")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "0.0.0.0")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 9990)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 30)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 30)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 10)

	// Database config (participant registry)
	configs.Database.Host = GetEnv("DB_HOST", "localhost")
	configs.Database.Port = GetEnvAsInt("DB_PORT", 5432)
	configs.Database.Username = GetEnv("DB_USERNAME", "jumpa")
	configs.Database.Password = GetEnv("DB_PASSWORD", "")
	configs.Database.Database = GetEnv("DB_DATABASE", "jumpa")
	configs.Database.SSLMode = GetEnv("DB_SSL_MODE", "disable")
	configs.Database.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 10)
	configs.Database.IdleConns = GetEnvAsInt("DB_IDLE_CONNS", 5)

	// Redis config (presence directory)
	configs.Redis.Host = GetEnv("REDIS_HOST", "localhost")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 6379)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 10)

	// NATS config (proximity alerts)
	configs.NATS.URL = GetEnv("NATS_URL", "nats://localhost:4222")

	// NSQ config (telemetry pipeline)
	configs.NSQ.Address = GetEnv("NSQ_ADDRESS", "localhost:4150")
	configs.NSQ.Topic = GetEnv("NSQ_TOPIC", constants.TopicTelemetry)

	// JWT config
	configs.JWT.Secret = GetEnv("JWT_SECRET", "")
	configs.JWT.Expiration = GetEnvAsInt("JWT_EXPIRATION", 60)
	configs.JWT.Issuer = GetEnv("JWT_ISSUER", "jumpa")

	// NewRelic config
	configs.NewRelic.LicenseKey = GetEnv("NEW_RELIC_LICENSE_KEY", "")
	configs.NewRelic.AppName = GetEnv("NEW_RELIC_APP_NAME", "jumpa-agent")
	configs.NewRelic.Enabled = GetEnvAsBool("NEW_RELIC_ENABLED", false)

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "")

	// Location config: power policy table plus power read caching.
	// Profile selection: charging wins, then foreground, then background
	// split on the low battery threshold.
	configs.Location.Charging = models.SamplingProfile{
		Interval:         GetEnvAsDuration("LOCATION_CHARGING_INTERVAL", 2*time.Second),
		MinInterval:      GetEnvAsDuration("LOCATION_CHARGING_MIN_INTERVAL", 1*time.Second),
		Priority:         models.PriorityHighAccuracy,
		MinDisplacementM: GetEnvAsFloat("LOCATION_CHARGING_MIN_DISPLACEMENT_M", 0),
	}
	configs.Location.Foreground = models.SamplingProfile{
		Interval:         GetEnvAsDuration("LOCATION_FOREGROUND_INTERVAL", 5*time.Second),
		MinInterval:      GetEnvAsDuration("LOCATION_FOREGROUND_MIN_INTERVAL", 2*time.Second),
		Priority:         models.PriorityHighAccuracy,
		MinDisplacementM: GetEnvAsFloat("LOCATION_FOREGROUND_MIN_DISPLACEMENT_M", 5),
	}
	configs.Location.Background = models.SamplingProfile{
		Interval:         GetEnvAsDuration("LOCATION_BACKGROUND_INTERVAL", 15*time.Second),
		MinInterval:      GetEnvAsDuration("LOCATION_BACKGROUND_MIN_INTERVAL", 10*time.Second),
		Priority:         models.PriorityBalanced,
		MinDisplacementM: GetEnvAsFloat("LOCATION_BACKGROUND_MIN_DISPLACEMENT_M", 25),
	}
	configs.Location.BackgroundLowBatt = models.SamplingProfile{
		Interval:         GetEnvAsDuration("LOCATION_LOW_BATT_INTERVAL", 60*time.Second),
		MinInterval:      GetEnvAsDuration("LOCATION_LOW_BATT_MIN_INTERVAL", 30*time.Second),
		Priority:         models.PriorityLowPower,
		MinDisplacementM: GetEnvAsFloat("LOCATION_LOW_BATT_MIN_DISPLACEMENT_M", 100),
	}
	configs.Location.LowBatteryPercent = GetEnvAsInt("LOCATION_LOW_BATTERY_PERCENT", 20)
	configs.Location.Simulate = GetEnvAsBool("LOCATION_SIMULATE", false)
	configs.Location.SimulateLat = GetEnvAsFloat("LOCATION_SIMULATE_LAT", -6.2088)
	configs.Location.SimulateLng = GetEnvAsFloat("LOCATION_SIMULATE_LNG", 106.8456)

	// Publisher config: time/distance debouncing and retry bounds
	configs.Publisher.DebounceWindow = GetEnvAsDuration("PUBLISHER_DEBOUNCE_WINDOW", 5*time.Second)
	configs.Publisher.MinDistanceM = GetEnvAsFloat("PUBLISHER_MIN_DISTANCE_M", 10)
	configs.Publisher.SettleDelay = GetEnvAsDuration("PUBLISHER_SETTLE_DELAY", 250*time.Millisecond)
	configs.Publisher.RetryMax = GetEnvAsInt("PUBLISHER_RETRY_MAX", 5)
	configs.Publisher.RetryBase = GetEnvAsDuration("PUBLISHER_RETRY_BASE", 500*time.Millisecond)
	configs.Publisher.RetryCap = GetEnvAsDuration("PUBLISHER_RETRY_CAP", 8*time.Second)

	// Discovery config
	configs.Discovery.RadiusKm = GetEnvAsFloat("DISCOVERY_RADIUS_KM", 1.0)
	configs.Discovery.WatchSameRole = GetEnvAsBool("DISCOVERY_WATCH_SAME_ROLE", false)

	// Presence config: lease backing the disconnect cleanup
	configs.Presence.LeaseTTL = GetEnvAsDuration("PRESENCE_LEASE_TTL", 45*time.Second)
	configs.Presence.HeartbeatInterval = GetEnvAsDuration("PRESENCE_HEARTBEAT_INTERVAL", 15*time.Second)

	// Bootstrap config
	configs.Bootstrap.CriticalTimeout = GetEnvAsDuration("BOOTSTRAP_CRITICAL_TIMEOUT", 10*time.Second)
	configs.Bootstrap.NonCriticalTimeout = GetEnvAsDuration("BOOTSTRAP_NON_CRITICAL_TIMEOUT", 20*time.Second)

	// Map SDK readiness config
	configs.MapSDK.StatusURL = GetEnv("MAPSDK_STATUS_URL", "")
	configs.MapSDK.InitTimeout = GetEnvAsDuration("MAPSDK_INIT_TIMEOUT", 10*time.Second)
	configs.MapSDK.ProbeDelayCap = GetEnvAsDuration("MAPSDK_PROBE_DELAY_CAP", 2*time.Second)
	configs.MapSDK.MaxProbes = GetEnvAsInt("MAPSDK_MAX_PROBES", 10)

	return configs
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

// GetEnvAsDuration parses values like "5s", "250ms" or "1m30s"
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}
