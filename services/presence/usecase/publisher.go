package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jumpa-app/jumpa/internal/pkg/errs"
	"github.com/jumpa-app/jumpa/internal/pkg/logger"
	"github.com/jumpa-app/jumpa/internal/pkg/metrics"
	"github.com/jumpa-app/jumpa/internal/pkg/models"
	"github.com/jumpa-app/jumpa/internal/pkg/retry"
	"github.com/jumpa-app/jumpa/internal/pkg/telemetry"
	"github.com/jumpa-app/jumpa/internal/utils"
	"github.com/jumpa-app/jumpa/services/location"
	"github.com/jumpa-app/jumpa/services/presence"
)

const (
	opWrite = iota
	opRemove
)

// request is one unit of work for the store worker. All store mutations for
// the current identity flow through the single worker goroutine, which is
// what guarantees writes reach the store in send order.
type request struct {
	op    int
	path  models.Path
	fix   models.Fix
	epoch uint64
	reply chan error
}

// Publisher is the remote presence publisher: it debounces and coalesces
// accepted fixes into directory writes, retries transient failures with
// backoff while the session is foregrounded, and keeps exactly one record
// alive for the current identity.
type Publisher struct {
	store  presence.Store
	power  location.PowerSource
	cfg    models.PublisherConfig
	logger *logger.ZapLogger
	events telemetry.Sink
	mets   *metrics.Metrics

	mu          sync.Mutex
	identity    *models.Path
	pending     *models.Fix
	timer       *time.Timer
	lastWritten *models.Fix
	lastWriteAt time.Time
	inflight    int
	epoch       uint64

	requests chan request
	stopped  chan struct{}
	stopOnce sync.Once
}

// NewPublisher creates the publisher and starts its store worker
func NewPublisher(
	store presence.Store,
	power location.PowerSource,
	cfg models.PublisherConfig,
	l *logger.ZapLogger,
	events telemetry.Sink,
	mets *metrics.Metrics,
) *Publisher {
	p := &Publisher{
		store:    store,
		power:    power,
		cfg:      cfg,
		logger:   l,
		events:   events,
		mets:     mets,
		requests: make(chan request, 16),
		stopped:  make(chan struct{}),
	}
	go p.worker()
	return p
}

// SetIdentity rewires the write target. The previous identity's record is
// removed through the worker queue, so it lands after every write already
// issued for it, and the call returns only once that removal finished: the
// participant can never be visible under two partitions at once.
func (p *Publisher) SetIdentity(ctx context.Context, path models.Path) error {
	old := p.detachIdentity()

	if old != nil {
		if err := p.enqueueRemove(ctx, *old); err != nil {
			return fmt.Errorf("failed to remove previous record %s: %w", old, err)
		}
	}

	if err := p.store.OnDisconnectRemove(ctx, path); err != nil {
		return fmt.Errorf("failed to arm disconnect hook for %s: %w", path, err)
	}

	p.mu.Lock()
	target := path
	p.identity = &target
	p.lastWritten = nil
	p.lastWriteAt = time.Time{}
	p.mu.Unlock()
	return nil
}

// Publish offers one accepted fix. The write fires when the debounce window
// elapsed since the last write or the fix moved beyond the minimum distance
// from the last written position; either way a settle delay batches bursts,
// and a newer fix arriving inside it replaces the pending one.
func (p *Publisher) Publish(ctx context.Context, fix models.Fix) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.identity == nil {
		return
	}

	if p.pending == nil && !p.shouldWriteLocked(fix) {
		p.mets.IncSuppressedWrites()
		return
	}

	keep := fix
	p.pending = &keep
	if p.timer == nil {
		epoch := p.epoch
		p.timer = time.AfterFunc(p.cfg.SettleDelay, func() { p.flush(epoch) })
	}
}

// shouldWriteLocked applies the time-or-distance debounce. Caller holds p.mu.
func (p *Publisher) shouldWriteLocked(fix models.Fix) bool {
	if p.lastWriteAt.IsZero() || p.lastWritten == nil {
		return true
	}
	if time.Since(p.lastWriteAt) >= p.cfg.DebounceWindow {
		return true
	}
	return utils.DistanceMeters(*p.lastWritten, fix) >= p.cfg.MinDistanceM
}

// flush hands the coalesced pending fix to the worker
func (p *Publisher) flush(epoch uint64) {
	p.mu.Lock()
	if p.epoch != epoch || p.pending == nil || p.identity == nil {
		p.timer = nil
		p.pending = nil
		p.mu.Unlock()
		return
	}
	fix := *p.pending
	path := *p.identity
	p.pending = nil
	p.timer = nil
	p.inflight++
	p.mu.Unlock()

	select {
	case p.requests <- request{op: opWrite, path: path, fix: fix, epoch: epoch}:
	case <-p.stopped:
		p.writeDone()
	}
}

// Remove deletes the current identity's record, awaited, and clears the
// identity so later fixes are dropped until a new SetIdentity.
func (p *Publisher) Remove(ctx context.Context) error {
	old := p.detachIdentity()
	if old == nil {
		return nil
	}
	if err := p.enqueueRemove(ctx, *old); err != nil {
		return fmt.Errorf("failed to remove record %s: %w", old, err)
	}
	return nil
}

// Pending reports whether a write is scheduled or in flight
func (p *Publisher) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending != nil || p.timer != nil || p.inflight > 0
}

// Stop cancels pending work and shuts the worker down
func (p *Publisher) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		p.mu.Lock()
		if p.timer != nil {
			p.timer.Stop()
			p.timer = nil
		}
		p.pending = nil
		p.epoch++
		p.mu.Unlock()
		close(p.stopped)
	})
	return nil
}

// detachIdentity cancels pending work and invalidates stale timers, leaving
// the publisher with no write target.
func (p *Publisher) detachIdentity() *models.Path {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.pending = nil
	p.epoch++
	old := p.identity
	p.identity = nil
	return old
}

// enqueueRemove routes a removal through the worker and awaits the outcome
func (p *Publisher) enqueueRemove(ctx context.Context, path models.Path) error {
	reply := make(chan error, 1)
	select {
	case p.requests <- request{op: opRemove, path: path, reply: reply}:
	case <-p.stopped:
		// Worker is gone; best effort straight against the store.
		return p.store.Remove(ctx, path)
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-p.stopped:
		return fmt.Errorf("publisher stopped while removing %s", path)
	}
}

// worker applies queued store operations strictly in order
func (p *Publisher) worker() {
	for {
		select {
		case <-p.stopped:
			return
		case req := <-p.requests:
			switch req.op {
			case opWrite:
				p.performWrite(req)
			case opRemove:
				req.reply <- p.performRemove(req.path)
			}
		}
	}
}

func (p *Publisher) newRetrier() *retry.Retrier {
	return retry.New(retry.Config{
		MaxRetries: p.cfg.RetryMax,
		BaseDelay:  p.cfg.RetryBase,
		MaxDelay:   p.cfg.RetryCap,
		Multiplier: 2.0,
		Jitter:     true,
		RetryableFunc: func(err error) bool {
			if errs.IsTerminal(err) {
				return false
			}
			// Background failures are logged and dropped: retrying
			// against a dead connection just burns battery.
			return p.power.Snapshot(context.Background()).Foregrounded()
		},
	}, p.logger)
}

func (p *Publisher) performWrite(req request) {
	defer p.writeDone()

	record := models.PresenceRecord{
		Latitude:    req.fix.Latitude,
		Longitude:   req.fix.Longitude,
		UpdatedAt:   req.fix.Timestamp,
		Role:        req.path.Role,
		Destination: req.path.Destination,
		Geohash:     utils.EncodeLocation(req.fix, utils.DefaultGeohashPrecision),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-p.stopped:
			cancel()
		case <-ctx.Done():
		}
	}()

	err := p.newRetrier().Execute(ctx, func(ctx context.Context) error {
		return p.store.Write(ctx, req.path, record)
	})
	if err != nil {
		p.mets.IncPresenceWriteErrors()
		p.mets.IncRetriesExhausted()
		telemetry.Error(p.events, "presence_write_failed", err, map[string]string{
			"path": req.path.String(),
		})
		return
	}

	p.mets.IncPresenceWrites()
	p.mu.Lock()
	if p.epoch == req.epoch {
		fix := req.fix
		p.lastWritten = &fix
		p.lastWriteAt = time.Now()
	}
	p.mu.Unlock()
}

func (p *Publisher) writeDone() {
	p.mu.Lock()
	p.inflight--
	p.mu.Unlock()
}

func (p *Publisher) performRemove(path models.Path) error {
	ctx, cancel := context.WithTimeout(context.Background(), removeTimeout(p.cfg))
	defer cancel()
	err := p.newRetrier().Execute(ctx, func(ctx context.Context) error {
		return p.store.Remove(ctx, path)
	})
	if err != nil {
		telemetry.Error(p.events, "presence_remove_failed", err, map[string]string{
			"path": path.String(),
		})
	}
	return err
}

// removeTimeout bounds an awaited removal so graceful exits cannot hang
func removeTimeout(cfg models.PublisherConfig) time.Duration {
	budget := cfg.RetryCap * time.Duration(cfg.RetryMax+1)
	if budget < 5*time.Second {
		budget = 5 * time.Second
	}
	return budget
}
