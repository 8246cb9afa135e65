package presence

import (
	"context"

	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/jumpa-app/jumpa/services/presence PublisherUC

// PublisherUC turns accepted fixes into debounced, retried directory writes
// for exactly one identity at a time.
type PublisherUC interface {
	// SetIdentity rewires the write target. The previous identity's record
	// is removed, awaited, before any write for the new identity can run,
	// and the new path's disconnect hook is armed alongside.
	SetIdentity(ctx context.Context, path models.Path) error

	// Publish offers a fix. Fire-and-forget: debouncing, coalescing and
	// retries happen behind it.
	Publish(ctx context.Context, fix models.Fix)

	// Remove deletes the current identity's record, awaited, and clears
	// the identity. Graceful-exit cleanup sequences after it.
	Remove(ctx context.Context) error

	// Pending reports whether a write is scheduled or in flight
	Pending() bool

	// Stop cancels timers and pending work and shuts the worker down
	Stop(ctx context.Context) error
}
