package location

import (
	"context"

	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

// Provider is the platform location provider boundary. The coordinator is the
// provider's only caller; every other component expresses demand through the
// consumer abstraction instead.
type Provider interface {
	// Start begins or reconfigures delivery of fixes to the callback.
	// Calling Start on a running provider applies the new configuration
	// in place, without an intermediate stop.
	Start(cfg models.ProviderConfig, callback func(models.Fix)) error

	// Stop halts fix delivery
	Stop() error

	// LastKnown returns the provider's last fix without starting updates
	LastKnown(ctx context.Context) (models.Fix, bool, error)
}

// FixSink receives fixes that passed the displacement gate
type FixSink interface {
	Publish(ctx context.Context, fix models.Fix)
}
