package power

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

func TestReported_DefaultsToHealthyForeground(t *testing.T) {
	src := NewReported()

	snap := src.Snapshot(context.Background())

	assert.Equal(t, models.AppStateForeground, snap.AppState)
	assert.Equal(t, 100, snap.BatteryPercent)
	assert.False(t, snap.Charging)
}

func TestReported_SetIsVisibleImmediately(t *testing.T) {
	src := NewReported()
	src.Snapshot(context.Background())

	src.Set(models.AppStateUpdate{
		AppState:       models.AppStateBackground,
		BatteryPercent: 12,
		Charging:       false,
	})

	snap := src.Snapshot(context.Background())
	assert.Equal(t, models.AppStateBackground, snap.AppState)
	assert.Equal(t, 12, snap.BatteryPercent)
}
