package newrelic

import (
	"fmt"

	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

// InitNewRelic initializes the New Relic application from configuration.
// Returns nil when APM is disabled; every consumer of the application
// tolerates a nil app, so a disabled agent costs nothing.
func InitNewRelic(cfg *models.Config) (*newrelic.Application, error) {
	if !cfg.NewRelic.Enabled || cfg.NewRelic.LicenseKey == "" {
		return nil, nil
	}

	nrApp, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.NewRelic.AppName),
		newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(true),
		newrelic.ConfigAppLogForwardingEnabled(true),
		newrelic.ConfigAppLogDecoratingEnabled(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize new relic: %w", err)
	}

	return nrApp, nil
}
