package location

import (
	"context"

	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

// PowerSource reports device power conditions. Implementations may serve a
// cached snapshot so hot paths never pay for a fresh system query.
type PowerSource interface {
	Snapshot(ctx context.Context) models.PowerSnapshot
}
