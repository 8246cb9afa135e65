package mapsdk

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jumpa-app/jumpa/internal/pkg/errs"
	"github.com/jumpa-app/jumpa/internal/pkg/logger"
	"github.com/jumpa-app/jumpa/internal/pkg/models"
	"github.com/jumpa-app/jumpa/internal/pkg/telemetry"
)

// SDK is the boundary to the external mapping SDK. Initialize kicks off the
// asynchronous setup; ProbeReady reports whether it became usable yet.
type SDK interface {
	Initialize(ctx context.Context) error
	ProbeReady(ctx context.Context) (bool, error)
}

// State is the readiness guard's lifecycle state
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// probeBaseDelay is where the inter-probe backoff starts before doubling
// toward the configured ceiling.
const probeBaseDelay = 100 * time.Millisecond

// Guard serializes mapping-SDK initialization. Concurrent callers awaiting
// readiness share one in-flight attempt; failure is a reported terminal state
// that never blocks the rest of the application.
type Guard struct {
	sdk    SDK
	cfg    models.MapSDKConfig
	logger *logger.ZapLogger
	sink   telemetry.Sink

	mu       sync.Mutex
	state    State
	attempts int
	failure  error
	done     chan struct{}
}

// NewGuard creates a readiness guard around the given SDK
func NewGuard(sdk SDK, cfg models.MapSDKConfig, l *logger.ZapLogger, sink telemetry.Sink) *Guard {
	return &Guard{
		sdk:    sdk,
		cfg:    cfg,
		logger: l,
		sink:   sink,
		state:  StateNotStarted,
	}
}

// State returns the current guard state and how many probes have run
func (g *Guard) State() (State, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state, g.attempts
}

// AwaitReady blocks until the SDK is usable, the attempt fails, or the
// caller's context is done. The first caller starts the single attempt;
// later callers latch onto it. A Failed guard keeps returning its failure
// until Reset is called by an explicit user action.
func (g *Guard) AwaitReady(ctx context.Context) error {
	g.mu.Lock()
	switch g.state {
	case StateCompleted:
		g.mu.Unlock()
		return nil
	case StateFailed:
		failure := g.failure
		g.mu.Unlock()
		return failure
	case StateNotStarted:
		g.state = StateInProgress
		g.attempts = 0
		g.done = make(chan struct{})
		go g.run()
	}
	done := g.done
	g.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateCompleted {
		return nil
	}
	return g.failure
}

// Reset returns a Failed guard to NotStarted so a user-driven retry can run
// a fresh attempt. Resetting a completed or in-flight guard is a no-op.
func (g *Guard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateFailed {
		g.state = StateNotStarted
		g.failure = nil
		g.attempts = 0
	}
}

// run executes the single initialization attempt: one Initialize call, then
// bounded readiness probes under the overall timeout.
func (g *Guard) run() {
	ctx, cancel := context.WithTimeout(context.Background(), g.cfg.InitTimeout)
	defer cancel()

	if err := g.sdk.Initialize(ctx); err != nil {
		g.finish(err)
		return
	}

	delay := probeBaseDelay
	var lastErr error
	for probe := 1; probe <= g.cfg.MaxProbes; probe++ {
		g.mu.Lock()
		g.attempts = probe
		g.mu.Unlock()

		ready, err := g.sdk.ProbeReady(ctx)
		if err != nil {
			lastErr = err
		} else if ready {
			g.finish(nil)
			return
		}

		if probe == g.cfg.MaxProbes {
			break
		}
		select {
		case <-ctx.Done():
			g.finish(ctx.Err())
			return
		case <-time.After(delay):
		}
		delay *= 2
		if delay > g.cfg.ProbeDelayCap {
			delay = g.cfg.ProbeDelayCap
		}
	}

	// Budget exhausted without a ready probe. A nil lastErr means every
	// probe answered "not yet", which is still a failed attempt.
	if lastErr == nil {
		lastErr = fmt.Errorf("sdk not ready after %d probes", g.cfg.MaxProbes)
	}
	g.finish(lastErr)
}

// finish records the attempt outcome exactly once and releases waiters
func (g *Guard) finish(cause error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if cause == nil {
		g.state = StateCompleted
		g.logger.Info("map sdk ready", logger.Int("probes", g.attempts))
	} else {
		g.state = StateFailed
		g.failure = &errs.SDKInitError{Attempts: g.attempts, Err: cause}
		g.logger.Warn("map sdk initialization failed",
			logger.Int("probes", g.attempts),
			logger.Err(cause))
		telemetry.Error(g.sink, "sdk_init_timeout", g.failure, map[string]string{
			"status_url": g.cfg.StatusURL,
		})
	}
	close(g.done)
}
