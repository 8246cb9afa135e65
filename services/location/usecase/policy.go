package usecase

import (
	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

// aggregateDemand reduces the active consumer set to its most demanding
// request: smallest interval, highest priority.
func aggregateDemand(consumers map[string]models.LocationDemand) models.LocationDemand {
	var out models.LocationDemand
	for _, d := range consumers {
		if out.Interval == 0 || (d.Interval > 0 && d.Interval < out.Interval) {
			out.Interval = d.Interval
		}
		if d.Priority > out.Priority {
			out.Priority = d.Priority
		}
	}
	return out
}

// selectProfile picks the sampling profile for the current power conditions.
// Charging wins outright; a backgrounded session on low battery gets the
// cheapest profile; otherwise background and foreground each have their own.
func selectProfile(cfg models.LocationConfig, power models.PowerSnapshot) models.SamplingProfile {
	switch {
	case power.Charging:
		return cfg.Charging
	case power.AppState == models.AppStateBackground && power.BatteryPercent <= cfg.LowBatteryPercent:
		return cfg.BackgroundLowBatt
	case power.AppState == models.AppStateBackground:
		return cfg.Background
	default:
		return cfg.Foreground
	}
}

// effectiveConfig merges the aggregated consumer demand into the power
// profile. Demand can tighten the interval or raise the priority, but never
// below the profile's minimum interval: the power policy is the floor.
func effectiveConfig(demand models.LocationDemand, profile models.SamplingProfile) models.ProviderConfig {
	cfg := models.ProviderConfig{
		Interval:         profile.Interval,
		MinInterval:      profile.MinInterval,
		Priority:         profile.Priority,
		MinDisplacementM: profile.MinDisplacementM,
	}
	if demand.Interval > 0 && demand.Interval < cfg.Interval {
		cfg.Interval = demand.Interval
		if cfg.Interval < cfg.MinInterval {
			cfg.Interval = cfg.MinInterval
		}
	}
	if demand.Priority > cfg.Priority {
		cfg.Priority = demand.Priority
	}
	return cfg
}
