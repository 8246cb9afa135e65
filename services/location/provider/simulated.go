package provider

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

// SimulatedProvider generates a random walk of fixes on the configured
// interval. It backs local development and the integration tests, where no
// phone is attached.
type SimulatedProvider struct {
	mu       sync.Mutex
	cfg      models.ProviderConfig
	callback func(models.Fix)
	stop     chan struct{}
	current  models.Fix
	// StepM is the walk step per tick in meters
	StepM float64
}

// NewSimulatedProvider creates a simulated provider walking from the origin
func NewSimulatedProvider(origin models.Fix) *SimulatedProvider {
	return &SimulatedProvider{
		current: origin,
		StepM:   25,
	}
}

// Start begins or reconfigures the tick loop
func (p *SimulatedProvider) Start(cfg models.ProviderConfig, callback func(models.Fix)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stop != nil {
		// Reconfigure in place: swap config and callback, keep the loop
		p.cfg = cfg
		p.callback = callback
		return nil
	}

	p.cfg = cfg
	p.callback = callback
	p.stop = make(chan struct{})
	go p.loop(p.stop)
	return nil
}

// Stop halts the tick loop
func (p *SimulatedProvider) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
	return nil
}

// LastKnown returns the walk's current position
func (p *SimulatedProvider) LastKnown(ctx context.Context) (models.Fix, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, true, nil
}

func (p *SimulatedProvider) loop(stop chan struct{}) {
	for {
		p.mu.Lock()
		interval := p.cfg.Interval
		p.mu.Unlock()
		if interval <= 0 {
			interval = time.Second
		}

		select {
		case <-stop:
			return
		case <-time.After(interval):
		}

		p.mu.Lock()
		// Roughly convert the step to degrees; precision is irrelevant
		// for a simulator.
		stepDeg := p.StepM / 111_000.0
		p.current.Latitude += (rand.Float64()*2 - 1) * stepDeg
		p.current.Longitude += (rand.Float64()*2 - 1) * stepDeg
		p.current.Timestamp = models.Now()
		fix := p.current
		callback := p.callback
		p.mu.Unlock()

		if callback != nil {
			callback(fix)
		}
	}
}
