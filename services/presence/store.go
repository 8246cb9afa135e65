package presence

import (
	"context"

	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks github.com/jumpa-app/jumpa/services/presence Store,Subscription

// Snapshot is the full contents of one partition, keyed by participant id
type Snapshot map[string]models.PresenceRecord

// Subscription is a handle to one partition watch
type Subscription interface {
	// Unsubscribe tears down the watch. Safe to call more than once.
	Unsubscribe(ctx context.Context) error
}

// Store is the remote presence directory boundary. Implementations must
// deliver Subscribe callbacks sequentially per subscription and must keep a
// record visible only while its owner is provably connected.
type Store interface {
	// Write upserts the record at the path
	Write(ctx context.Context, path models.Path, record models.PresenceRecord) error

	// Remove deletes the record at the path and disarms its disconnect hook
	Remove(ctx context.Context, path models.Path) error

	// OnDisconnectRemove arms the server-side rule that removes the record
	// at the path if the owning connection drops without an explicit
	// Remove call.
	OnDisconnectRemove(ctx context.Context, path models.Path) error

	// Subscribe watches a partition subtree. onChange receives a fresh
	// snapshot after every change, starting with the current contents.
	Subscribe(ctx context.Context, partition models.Partition, onChange func(Snapshot)) (Subscription, error)

	// Nearby returns partition members within radiusKm of the position
	Nearby(ctx context.Context, partition models.Partition, latitude, longitude, radiusKm float64) ([]models.NearbyEntity, error)
}
