package power

import (
	"context"
	"sync"

	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

// Reported is the production power source: the mobile app reports battery and
// app-state transitions over the WebSocket surface and Set records them.
// Snapshot serves the last report directly; a push-fed source has nothing to
// poll, so the coordinator's per-fix policy checks never wait on the device.
type Reported struct {
	mu       sync.Mutex
	snapshot models.PowerSnapshot
}

// NewReported creates a reported power source. Until the first report arrives
// it assumes a foregrounded, healthy device.
func NewReported() *Reported {
	return &Reported{
		snapshot: models.PowerSnapshot{
			BatteryPercent: 100,
			AppState:       models.AppStateForeground,
			ObservedAt:     models.Now(),
		},
	}
}

// Set records a reported power/app-state update
func (r *Reported) Set(update models.AppStateUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = models.PowerSnapshot{
		BatteryPercent: update.BatteryPercent,
		Charging:       update.Charging,
		AppState:       update.AppState,
		ObservedAt:     models.Now(),
	}
}

// Snapshot returns the power view as of the last report
func (r *Reported) Snapshot(ctx context.Context) models.PowerSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot
}
