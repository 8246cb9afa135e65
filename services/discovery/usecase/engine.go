package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jumpa-app/jumpa/internal/pkg/errs"
	"github.com/jumpa-app/jumpa/internal/pkg/logger"
	"github.com/jumpa-app/jumpa/internal/pkg/metrics"
	"github.com/jumpa-app/jumpa/internal/pkg/models"
	"github.com/jumpa-app/jumpa/internal/pkg/telemetry"
	"github.com/jumpa-app/jumpa/internal/utils"
	"github.com/jumpa-app/jumpa/services/discovery"
	"github.com/jumpa-app/jumpa/services/location"
	"github.com/jumpa-app/jumpa/services/presence"
)

// Engine watches the counterpart partition for the current identity and
// raises at most one proximity alert per entity per session. Whether an
// entity was already alerted is session-scoped: the notified set is cleared
// only by a destination/role change or a monitoring restart, never while an
// entity merely lingers nearby.
type Engine struct {
	monitor *Monitor
	store   presence.Store
	alerts  discovery.AlertGW
	loc     location.LocationUC
	cfg     models.DiscoveryConfig
	logger  *logger.ZapLogger
	events  telemetry.Sink
	mets    *metrics.Metrics

	mu           sync.Mutex
	self         models.Path
	sub          presence.Subscription
	sameRoleSub  presence.Subscription
	notified     map[string]struct{}
	counterparts map[string]models.Counterpart
}

// NewEngine creates the discovery engine. mets may be nil.
func NewEngine(
	monitor *Monitor,
	store presence.Store,
	alerts discovery.AlertGW,
	loc location.LocationUC,
	cfg models.DiscoveryConfig,
	l *logger.ZapLogger,
	events telemetry.Sink,
	mets *metrics.Metrics,
) *Engine {
	return &Engine{
		monitor:      monitor,
		store:        store,
		alerts:       alerts,
		loc:          loc,
		cfg:          cfg,
		logger:       l,
		events:       events,
		mets:         mets,
		notified:     make(map[string]struct{}),
		counterparts: make(map[string]models.Counterpart),
	}
}

// Start begins monitoring for the identity. A duplicate request against the
// already-active identity is a no-op; a different identity forces a restart,
// tearing the old listener down first so at most one subtree listener exists.
func (e *Engine) Start(ctx context.Context, path models.Path) (bool, error) {
	if !e.monitor.RequestStart(path) {
		return false, nil
	}

	e.teardown(ctx)

	e.mu.Lock()
	e.self = path
	e.notified = make(map[string]struct{})
	e.counterparts = make(map[string]models.Counterpart)
	e.mu.Unlock()

	partition := models.Partition{Role: path.Role.Opposite(), Destination: path.Destination}
	sub, err := e.store.Subscribe(ctx, partition, e.makeSnapshotHandler(path, partition))
	if err != nil {
		e.monitor.MarkStopped()
		telemetry.Error(e.events, "discovery_subscribe_failed", err, map[string]string{
			"partition": partition.String(),
		})
		return false, fmt.Errorf("failed to subscribe to partition %s: %w", partition, err)
	}

	var sameRoleSub presence.Subscription
	if e.cfg.WatchSameRole {
		samePartition := models.Partition{Role: path.Role, Destination: path.Destination}
		sameRoleSub, err = e.store.Subscribe(ctx, samePartition, e.makeSnapshotHandler(path, samePartition))
		if err != nil {
			// Same-role visibility is optional; the session keeps going
			// on the counterpart watch alone.
			e.logger.Warn("same-role subscription failed",
				logger.String("partition", samePartition.String()),
				logger.Err(err))
			sameRoleSub = nil
			err = nil
		}
	}

	if !e.monitor.MarkStarted(path) {
		// A restart raced us; this listener lost, drop it.
		_ = sub.Unsubscribe(ctx)
		if sameRoleSub != nil {
			_ = sameRoleSub.Unsubscribe(ctx)
		}
		return false, nil
	}

	e.mu.Lock()
	e.sub = sub
	e.sameRoleSub = sameRoleSub
	e.mu.Unlock()

	e.mets.SetMonitoringActive(true)
	e.logger.Info("discovery monitoring started",
		logger.String("identity", path.String()),
		logger.String("watching", partition.String()))
	return true, nil
}

// Stop tears the active listener down
func (e *Engine) Stop(ctx context.Context) (bool, error) {
	if !e.monitor.RequestStop() {
		return false, nil
	}

	e.teardown(ctx)

	e.mu.Lock()
	e.notified = make(map[string]struct{})
	e.counterparts = make(map[string]models.Counterpart)
	e.self = models.Path{}
	e.mu.Unlock()

	e.monitor.MarkStopped()
	e.mets.SetMonitoringActive(false)
	e.logger.Info("discovery monitoring stopped")
	return true, nil
}

// ForceStop resets the engine after an invariant violation: fail toward
// showing nothing rather than something possibly wrong.
func (e *Engine) ForceStop(ctx context.Context) {
	e.teardown(ctx)
	e.mu.Lock()
	e.notified = make(map[string]struct{})
	e.counterparts = make(map[string]models.Counterpart)
	e.self = models.Path{}
	e.mu.Unlock()
	e.monitor.MarkStopped()
	e.mets.SetMonitoringActive(false)
}

// Counterparts returns the discovered entities, nearest first
func (e *Engine) Counterparts() []models.Counterpart {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Counterpart, 0, len(e.counterparts))
	for _, c := range e.counterparts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out
}

// Phase reports the monitoring lifecycle phase
func (e *Engine) Phase() string {
	phase, _ := e.monitor.Snapshot()
	return phase.String()
}

// teardown unsubscribes the active listeners, if any
func (e *Engine) teardown(ctx context.Context) {
	e.mu.Lock()
	sub := e.sub
	sameRoleSub := e.sameRoleSub
	e.sub = nil
	e.sameRoleSub = nil
	e.mu.Unlock()

	if sub != nil {
		if err := sub.Unsubscribe(ctx); err != nil {
			e.logger.Warn("failed to unsubscribe partition listener", logger.Err(err))
		}
	}
	if sameRoleSub != nil {
		if err := sameRoleSub.Unsubscribe(ctx); err != nil {
			e.logger.Warn("failed to unsubscribe same-role listener", logger.Err(err))
		}
	}
}

// makeSnapshotHandler binds a snapshot handler to the identity and partition
// it was started for, so a late callback from a torn-down listener can be
// ignored and each snapshot only prunes entries of its own partition.
func (e *Engine) makeSnapshotHandler(self models.Path, partition models.Partition) func(presence.Snapshot) {
	return func(snap presence.Snapshot) {
		e.onSnapshot(self, partition, snap)
	}
}

// onSnapshot computes distances for every entity in the partition snapshot
// and alerts each newly proximate one exactly once.
func (e *Engine) onSnapshot(self models.Path, partition models.Partition, snap presence.Snapshot) {
	e.mu.Lock()
	if e.self != self {
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()

	// Our own record must only ever live under our own partition. Seeing it
	// in the counterpart partition means a stale duplicate survived a role
	// change; reset to showing nothing rather than something possibly wrong.
	if partition.Role != self.Role {
		if _, dup := snap[self.ParticipantID]; dup {
			err := errs.Invariant("own record %s found in partition %s", self.ParticipantID, partition)
			e.logger.Error("duplicate presence record detected", logger.Err(err))
			telemetry.Error(e.events, "invariant_violation", err, map[string]string{
				"partition": partition.String(),
			})
			e.ForceStop(context.Background())
			return
		}
	}

	pos, havePos := e.loc.LastFix()

	seen := make(map[string]struct{}, len(snap))
	var alerts []*models.ProximityAlert

	e.mu.Lock()
	for id, record := range snap {
		if id == self.ParticipantID {
			continue
		}
		seen[id] = struct{}{}
		if !havePos {
			continue
		}

		dist := utils.CalculateDistance(
			utils.GeoPoint{Latitude: pos.Latitude, Longitude: pos.Longitude},
			utils.GeoPoint{Latitude: record.Latitude, Longitude: record.Longitude},
		)
		e.counterparts[id] = models.Counterpart{
			ParticipantID: id,
			Role:          partition.Role,
			Latitude:      record.Latitude,
			Longitude:     record.Longitude,
			DistanceKm:    dist,
			LastSeen:      record.UpdatedAt,
		}

		if dist > e.cfg.RadiusKm {
			continue
		}
		if _, already := e.notified[id]; already {
			continue
		}
		e.notified[id] = struct{}{}
		alerts = append(alerts, &models.ProximityAlert{
			ParticipantID: self.ParticipantID,
			CounterpartID: id,
			Role:          record.Role,
			Destination:   self.Destination,
			DistanceKm:    dist,
			Latitude:      record.Latitude,
			Longitude:     record.Longitude,
			AlertedAt:     models.Now(),
		})
	}
	// Entities that left the directory drop off the counterpart list, but
	// stay in the notified set: proximity alerts are once per session. Only
	// this snapshot's partition is pruned; entries from the other watched
	// partition are not visible in it.
	for id, c := range e.counterparts {
		if c.Role != partition.Role {
			continue
		}
		if _, ok := seen[id]; !ok {
			delete(e.counterparts, id)
		}
	}
	e.mu.Unlock()

	for _, alert := range alerts {
		if err := e.alerts.PublishProximityAlert(context.Background(), alert); err != nil {
			e.logger.Warn("failed to publish proximity alert",
				logger.String("counterpart_id", alert.CounterpartID),
				logger.Err(err))
			continue
		}
		e.mets.IncAlertsEmitted()
	}
}
