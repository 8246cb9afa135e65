package discovery

import (
	"context"

	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/jumpa-app/jumpa/services/discovery DiscoveryUC

// DiscoveryUC is the proximity discovery engine: it watches the counterpart
// partition for the current session and raises at most one alert per newly
// proximate entity.
type DiscoveryUC interface {
	// Start begins monitoring for the given identity. It returns true when
	// a new listener was registered, false when an identical monitoring
	// session was already active (duplicate request, no-op).
	Start(ctx context.Context, path models.Path) (bool, error)

	// Stop tears the active listener down. It returns true when a running
	// session was stopped, false when there was nothing to stop.
	Stop(ctx context.Context) (bool, error)

	// ForceStop resets monitoring unconditionally after an invariant
	// violation, discarding discovered state.
	ForceStop(ctx context.Context)

	// Counterparts returns the discovered entities of the watched partition
	Counterparts() []models.Counterpart

	// Phase reports the monitoring lifecycle phase for observability
	Phase() string
}
