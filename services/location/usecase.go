package location

import (
	"context"

	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/jumpa-app/jumpa/services/location LocationUC

// LocationUC coordinates logical consumers of location updates over the one
// physical provider subscription.
type LocationUC interface {
	// RequestUpdates registers a consumer. It returns true when a physical
	// start or reconfigure was issued, false when an equivalent
	// subscription was already running and the consumer merely joined it.
	RequestUpdates(ctx context.Context, consumerID string, demand models.LocationDemand) (bool, error)

	// ReleaseUpdates removes a consumer. It returns true only when the
	// released consumer was the last one and the provider was stopped.
	ReleaseUpdates(ctx context.Context, consumerID string) (bool, error)

	// Reconfigure re-derives the effective subscription after a power or
	// app-state change and applies it only if it differs.
	Reconfigure(ctx context.Context) error

	// LastFix returns the most recently accepted fix, if any
	LastFix() (models.Fix, bool)

	// ActiveConsumers returns the size of the consumer set
	ActiveConsumers() int
}
