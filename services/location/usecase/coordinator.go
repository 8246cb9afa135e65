package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/jumpa-app/jumpa/internal/pkg/errs"
	"github.com/jumpa-app/jumpa/internal/pkg/logger"
	"github.com/jumpa-app/jumpa/internal/pkg/metrics"
	"github.com/jumpa-app/jumpa/internal/pkg/models"
	"github.com/jumpa-app/jumpa/internal/pkg/telemetry"
	"github.com/jumpa-app/jumpa/internal/utils"
	"github.com/jumpa-app/jumpa/services/location"
)

// Coordinator owns the single physical location subscription. Consumers are
// reference-counted and the provider is only started, reconfigured or stopped
// when the effective configuration actually changes, so overlapping requests
// from several screens never thrash the provider.
type Coordinator struct {
	provider location.Provider
	power    location.PowerSource
	sink     location.FixSink
	cfg      models.LocationConfig
	logger   *logger.ZapLogger
	events   telemetry.Sink
	mets     *metrics.Metrics

	mu           sync.Mutex
	consumers    map[string]models.LocationDemand
	running      bool
	activeCfg    models.ProviderConfig
	lastAccepted *models.Fix
}

// NewCoordinator creates the acquisition coordinator. mets may be nil.
func NewCoordinator(
	provider location.Provider,
	power location.PowerSource,
	sink location.FixSink,
	cfg models.LocationConfig,
	l *logger.ZapLogger,
	events telemetry.Sink,
	mets *metrics.Metrics,
) *Coordinator {
	return &Coordinator{
		provider:  provider,
		power:     power,
		sink:      sink,
		cfg:       cfg,
		logger:    l,
		events:    events,
		mets:      mets,
		consumers: make(map[string]models.LocationDemand),
	}
}

// RequestUpdates registers a consumer and applies the resulting effective
// configuration if it differs from the one in force.
func (c *Coordinator) RequestUpdates(ctx context.Context, consumerID string, demand models.LocationDemand) (bool, error) {
	if consumerID == "" {
		return false, fmt.Errorf("consumer id is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	prev, existed := c.consumers[consumerID]
	c.consumers[consumerID] = demand

	changed, err := c.applyLocked(ctx)
	if err != nil {
		// Roll back the consumer set so state stays consistent with the
		// provider we failed to (re)configure.
		if existed {
			c.consumers[consumerID] = prev
		} else {
			delete(c.consumers, consumerID)
		}
		return false, err
	}

	c.mets.SetActiveConsumers(len(c.consumers))
	return changed, nil
}

// ReleaseUpdates removes a consumer. Releasing an unknown consumer is a
// no-op. The provider stops only when the set becomes empty.
func (c *Coordinator) ReleaseUpdates(ctx context.Context, consumerID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	demand, existed := c.consumers[consumerID]
	if !existed {
		return false, nil
	}
	delete(c.consumers, consumerID)

	if len(c.consumers) == 0 {
		if !c.running {
			c.mets.SetActiveConsumers(0)
			return false, nil
		}
		if err := c.provider.Stop(); err != nil {
			c.consumers[consumerID] = demand
			return false, fmt.Errorf("failed to stop location provider: %w", err)
		}
		c.running = false
		c.activeCfg = models.ProviderConfig{}
		c.mets.SetActiveConsumers(0)
		c.logger.Info("location updates stopped", logger.String("last_consumer", consumerID))
		return true, nil
	}

	if _, err := c.applyLocked(ctx); err != nil {
		c.consumers[consumerID] = demand
		return false, err
	}
	c.mets.SetActiveConsumers(len(c.consumers))
	return false, nil
}

// Reconfigure re-derives the effective configuration, typically after an
// app-state or charging transition, and applies it only if it changed.
func (c *Coordinator) Reconfigure(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.consumers) == 0 {
		return nil
	}
	_, err := c.applyLocked(ctx)
	return err
}

// LastFix returns the most recently accepted fix
func (c *Coordinator) LastFix() (models.Fix, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastAccepted == nil {
		return models.Fix{}, false
	}
	return *c.lastAccepted, true
}

// ActiveConsumers returns the current consumer count
func (c *Coordinator) ActiveConsumers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.consumers)
}

// applyLocked computes the desired configuration and issues a provider call
// only when it differs from the active one. Caller holds c.mu.
func (c *Coordinator) applyLocked(ctx context.Context) (bool, error) {
	desired := effectiveConfig(
		aggregateDemand(c.consumers),
		selectProfile(c.cfg, c.power.Snapshot(ctx)),
	)

	if c.running && desired.Equal(c.activeCfg) {
		return false, nil
	}

	if err := c.provider.Start(desired, c.onFix); err != nil {
		if errs.IsTerminal(err) {
			telemetry.Error(c.events, "permission_denied", err, nil)
			return false, err
		}
		telemetry.Error(c.events, "provider_error", err, nil)
		return false, fmt.Errorf("failed to start location provider: %w", err)
	}

	wasRunning := c.running
	c.running = true
	c.activeCfg = desired
	c.logger.Info("location subscription applied",
		logger.Bool("reconfigured", wasRunning),
		logger.Duration("interval", desired.Interval),
		logger.String("priority", desired.Priority.String()),
		logger.Float64("min_displacement_m", desired.MinDisplacementM))
	return true, nil
}

// onFix gates every incoming fix on the active displacement threshold and
// hands accepted fixes to the sink.
func (c *Coordinator) onFix(fix models.Fix) {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	if c.lastAccepted != nil && c.activeCfg.MinDisplacementM > 0 {
		if utils.DistanceMeters(*c.lastAccepted, fix) < c.activeCfg.MinDisplacementM {
			c.mu.Unlock()
			c.mets.IncFixesDropped()
			return
		}
	}
	accepted := fix
	c.lastAccepted = &accepted
	c.mu.Unlock()

	c.mets.IncFixesAccepted()
	c.sink.Publish(context.Background(), fix)
}
