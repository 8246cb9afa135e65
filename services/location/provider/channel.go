package provider

import (
	"context"
	"sync"
	"time"

	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

// ChannelProvider is the platform provider used in production: the mobile app
// streams raw fixes over the WebSocket surface and Offer feeds them in here.
// The provider enforces the active minimum interval so a chatty phone cannot
// push fixes faster than the effective configuration allows.
type ChannelProvider struct {
	mu        sync.Mutex
	cfg       models.ProviderConfig
	callback  func(models.Fix)
	running   bool
	lastSent  time.Time
	lastKnown *models.Fix
}

// NewChannelProvider creates a provider fed by externally offered fixes
func NewChannelProvider() *ChannelProvider {
	return &ChannelProvider{}
}

// Start begins or reconfigures delivery. A running provider picks up the new
// configuration in place.
func (p *ChannelProvider) Start(cfg models.ProviderConfig, callback func(models.Fix)) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cfg = cfg
	p.callback = callback
	p.running = true
	return nil
}

// Stop halts delivery; offered fixes still update the last-known position
func (p *ChannelProvider) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.running = false
	p.callback = nil
	p.lastSent = time.Time{}
	return nil
}

// LastKnown returns the most recently offered fix
func (p *ChannelProvider) LastKnown(ctx context.Context) (models.Fix, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastKnown == nil {
		return models.Fix{}, false, nil
	}
	return *p.lastKnown, true, nil
}

// Offer feeds one raw fix from the transport. Fixes arriving faster than the
// configured minimum interval are absorbed here, before any gating the
// coordinator applies.
func (p *ChannelProvider) Offer(fix models.Fix) {
	p.mu.Lock()
	keep := fix
	p.lastKnown = &keep

	if !p.running || p.callback == nil {
		p.mu.Unlock()
		return
	}
	if p.cfg.MinInterval > 0 && !p.lastSent.IsZero() && time.Since(p.lastSent) < p.cfg.MinInterval {
		p.mu.Unlock()
		return
	}
	p.lastSent = time.Now()
	callback := p.callback
	p.mu.Unlock()

	callback(fix)
}
