package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

func TestAggregateDemand_MostDemandingWins(t *testing.T) {
	consumers := map[string]models.LocationDemand{
		"a": {Interval: 10 * time.Second, Priority: models.PriorityLowPower},
		"b": {Interval: 3 * time.Second, Priority: models.PriorityBalanced},
		"c": {Interval: 30 * time.Second, Priority: models.PriorityHighAccuracy},
	}

	demand := aggregateDemand(consumers)

	assert.Equal(t, 3*time.Second, demand.Interval)
	assert.Equal(t, models.PriorityHighAccuracy, demand.Priority)
}

func TestSelectProfile_PolicyTable(t *testing.T) {
	cfg := testLocationConfig()

	tests := []struct {
		name     string
		power    models.PowerSnapshot
		expected models.SamplingProfile
	}{
		{
			name:     "charging wins over everything",
			power:    models.PowerSnapshot{Charging: true, BatteryPercent: 5, AppState: models.AppStateBackground},
			expected: cfg.Charging,
		},
		{
			name:     "background low battery",
			power:    models.PowerSnapshot{BatteryPercent: 15, AppState: models.AppStateBackground},
			expected: cfg.BackgroundLowBatt,
		},
		{
			name:     "background healthy battery",
			power:    models.PowerSnapshot{BatteryPercent: 60, AppState: models.AppStateBackground},
			expected: cfg.Background,
		},
		{
			name:     "foreground default",
			power:    models.PowerSnapshot{BatteryPercent: 60, AppState: models.AppStateForeground},
			expected: cfg.Foreground,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, selectProfile(cfg, tt.power))
		})
	}
}

func TestEffectiveConfig_DemandTightensButRespectsFloor(t *testing.T) {
	profile := models.SamplingProfile{
		Interval:         10 * time.Second,
		MinInterval:      5 * time.Second,
		Priority:         models.PriorityBalanced,
		MinDisplacementM: 25,
	}

	// Demand tighter than the floor gets clamped to MinInterval
	cfg := effectiveConfig(models.LocationDemand{Interval: time.Second, Priority: models.PriorityHighAccuracy}, profile)
	assert.Equal(t, 5*time.Second, cfg.Interval)
	assert.Equal(t, models.PriorityHighAccuracy, cfg.Priority)
	assert.Equal(t, float64(25), cfg.MinDisplacementM)

	// Weaker demand leaves the profile untouched
	cfg = effectiveConfig(models.LocationDemand{Interval: time.Minute, Priority: models.PriorityLowPower}, profile)
	assert.Equal(t, 10*time.Second, cfg.Interval)
	assert.Equal(t, models.PriorityBalanced, cfg.Priority)
}
