package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jumpa-app/jumpa/internal/pkg/errs"
	"github.com/jumpa-app/jumpa/internal/pkg/logger"
	"github.com/jumpa-app/jumpa/internal/pkg/models"
	"github.com/jumpa-app/jumpa/internal/pkg/telemetry"
)

// fakeProvider records Start/Stop calls and exposes the active callback
type fakeProvider struct {
	mu         sync.Mutex
	startCalls int
	stopCalls  int
	cfg        models.ProviderConfig
	callback   func(models.Fix)
	startErr   error
}

func (f *fakeProvider) Start(cfg models.ProviderConfig, callback func(models.Fix)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startErr != nil {
		return f.startErr
	}
	f.startCalls++
	f.cfg = cfg
	f.callback = callback
	return nil
}

func (f *fakeProvider) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopCalls++
	f.callback = nil
	return nil
}

func (f *fakeProvider) LastKnown(ctx context.Context) (models.Fix, bool, error) {
	return models.Fix{}, false, nil
}

func (f *fakeProvider) deliver(fix models.Fix) {
	f.mu.Lock()
	callback := f.callback
	f.mu.Unlock()
	if callback != nil {
		callback(fix)
	}
}

func (f *fakeProvider) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.startCalls, f.stopCalls
}

// fakePower serves a settable snapshot
type fakePower struct {
	mu   sync.Mutex
	snap models.PowerSnapshot
}

func (f *fakePower) Snapshot(ctx context.Context) models.PowerSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakePower) set(snap models.PowerSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = snap
}

// fixCollector records fixes that reached the sink
type fixCollector struct {
	mu    sync.Mutex
	fixes []models.Fix
}

func (c *fixCollector) Publish(ctx context.Context, fix models.Fix) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fixes = append(c.fixes, fix)
}

func (c *fixCollector) all() []models.Fix {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Fix, len(c.fixes))
	copy(out, c.fixes)
	return out
}

func testLocationConfig() models.LocationConfig {
	return models.LocationConfig{
		Charging: models.SamplingProfile{
			Interval: 2 * time.Second, MinInterval: time.Second,
			Priority: models.PriorityHighAccuracy, MinDisplacementM: 5,
		},
		Foreground: models.SamplingProfile{
			Interval: 5 * time.Second, MinInterval: 2 * time.Second,
			Priority: models.PriorityHighAccuracy, MinDisplacementM: 10,
		},
		Background: models.SamplingProfile{
			Interval: 30 * time.Second, MinInterval: 15 * time.Second,
			Priority: models.PriorityBalanced, MinDisplacementM: 50,
		},
		BackgroundLowBatt: models.SamplingProfile{
			Interval: 2 * time.Minute, MinInterval: time.Minute,
			Priority: models.PriorityLowPower, MinDisplacementM: 200,
		},
		LowBatteryPercent: 20,
	}
}

func foregroundPower() *fakePower {
	return &fakePower{snap: models.PowerSnapshot{
		BatteryPercent: 80,
		AppState:       models.AppStateForeground,
	}}
}

func newTestCoordinator(provider *fakeProvider, power *fakePower, sink *fixCollector) *Coordinator {
	return NewCoordinator(provider, power, sink, testLocationConfig(),
		logger.NewNopLogger(), telemetry.NopSink{}, nil)
}

func TestRequestUpdates_FirstConsumerStartsProvider(t *testing.T) {
	// Arrange
	provider := &fakeProvider{}
	coord := newTestCoordinator(provider, foregroundPower(), &fixCollector{})

	// Act
	changed, err := coord.RequestUpdates(context.Background(), "screen-a", models.LocationDemand{})

	// Assert
	require.NoError(t, err)
	assert.True(t, changed)
	starts, stops := provider.counts()
	assert.Equal(t, 1, starts)
	assert.Equal(t, 0, stops)
	assert.Equal(t, 1, coord.ActiveConsumers())
}

func TestRequestUpdates_EquivalentConsumerJoinsWithoutRestart(t *testing.T) {
	// Arrange
	provider := &fakeProvider{}
	coord := newTestCoordinator(provider, foregroundPower(), &fixCollector{})
	_, err := coord.RequestUpdates(context.Background(), "screen-a", models.LocationDemand{})
	require.NoError(t, err)

	// Act: a second consumer with an identical effective requirement
	changed, err := coord.RequestUpdates(context.Background(), "screen-b", models.LocationDemand{})

	// Assert: no physical action taken
	require.NoError(t, err)
	assert.False(t, changed)
	starts, _ := provider.counts()
	assert.Equal(t, 1, starts)
	assert.Equal(t, 2, coord.ActiveConsumers())
}

func TestRequestUpdates_MoreDemandingConsumerReconfigures(t *testing.T) {
	// Arrange
	provider := &fakeProvider{}
	coord := newTestCoordinator(provider, foregroundPower(), &fixCollector{})
	_, err := coord.RequestUpdates(context.Background(), "screen-a", models.LocationDemand{})
	require.NoError(t, err)

	// Act: tighter interval forces a reconfigure, no stop in between
	changed, err := coord.RequestUpdates(context.Background(), "nav-screen", models.LocationDemand{
		Interval: 3 * time.Second,
	})

	// Assert
	require.NoError(t, err)
	assert.True(t, changed)
	starts, stops := provider.counts()
	assert.Equal(t, 2, starts)
	assert.Equal(t, 0, stops)
	assert.Equal(t, 3*time.Second, provider.cfg.Interval)
}

func TestReleaseUpdates_LastConsumerStopsProvider(t *testing.T) {
	// Arrange
	provider := &fakeProvider{}
	coord := newTestCoordinator(provider, foregroundPower(), &fixCollector{})
	_, err := coord.RequestUpdates(context.Background(), "screen-a", models.LocationDemand{})
	require.NoError(t, err)
	_, err = coord.RequestUpdates(context.Background(), "screen-b", models.LocationDemand{})
	require.NoError(t, err)

	// Act
	stoppedFirst, err := coord.ReleaseUpdates(context.Background(), "screen-a")
	require.NoError(t, err)
	stoppedLast, err := coord.ReleaseUpdates(context.Background(), "screen-b")
	require.NoError(t, err)

	// Assert
	assert.False(t, stoppedFirst)
	assert.True(t, stoppedLast)
	_, stops := provider.counts()
	assert.Equal(t, 1, stops)
}

func TestReleaseUpdates_UnknownConsumerIsNoop(t *testing.T) {
	// Arrange
	provider := &fakeProvider{}
	coord := newTestCoordinator(provider, foregroundPower(), &fixCollector{})

	// Act
	stopped, err := coord.ReleaseUpdates(context.Background(), "ghost")

	// Assert
	require.NoError(t, err)
	assert.False(t, stopped)
	_, stops := provider.counts()
	assert.Equal(t, 0, stops)
}

func TestRequestUpdates_PermissionDeniedRollsBackConsumer(t *testing.T) {
	// Arrange
	provider := &fakeProvider{startErr: errs.PermissionDenied(errors.New("denied by user"))}
	coord := newTestCoordinator(provider, foregroundPower(), &fixCollector{})

	// Act
	changed, err := coord.RequestUpdates(context.Background(), "screen-a", models.LocationDemand{})

	// Assert: terminal error, consumer set unchanged
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrPermissionDenied))
	assert.False(t, changed)
	assert.Equal(t, 0, coord.ActiveConsumers())
}

func TestOnFix_DisplacementFilterDropsNearbyFixes(t *testing.T) {
	// Arrange: foreground profile has a 10m displacement threshold
	provider := &fakeProvider{}
	sink := &fixCollector{}
	coord := newTestCoordinator(provider, foregroundPower(), sink)
	_, err := coord.RequestUpdates(context.Background(), "screen-a", models.LocationDemand{})
	require.NoError(t, err)

	base := models.Fix{Latitude: -6.2088, Longitude: 106.8456, Timestamp: models.Now()}

	// Act: first fix accepted, a ~1m wiggle dropped, a ~100m move accepted
	provider.deliver(base)
	provider.deliver(models.Fix{Latitude: base.Latitude + 0.00001, Longitude: base.Longitude, Timestamp: models.Now()})
	provider.deliver(models.Fix{Latitude: base.Latitude + 0.001, Longitude: base.Longitude, Timestamp: models.Now()})

	// Assert
	fixes := sink.all()
	require.Len(t, fixes, 2)
	assert.InDelta(t, base.Latitude, fixes[0].Latitude, 1e-9)
	assert.InDelta(t, base.Latitude+0.001, fixes[1].Latitude, 1e-9)

	last, ok := coord.LastFix()
	require.True(t, ok)
	assert.InDelta(t, base.Latitude+0.001, last.Latitude, 1e-9)
}

func TestReconfigure_PowerTransitionChangesProfile(t *testing.T) {
	// Arrange
	provider := &fakeProvider{}
	power := foregroundPower()
	coord := newTestCoordinator(provider, power, &fixCollector{})
	_, err := coord.RequestUpdates(context.Background(), "screen-a", models.LocationDemand{})
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, provider.cfg.Interval)

	// Act: app goes to background on low battery
	power.set(models.PowerSnapshot{BatteryPercent: 10, AppState: models.AppStateBackground})
	require.NoError(t, coord.Reconfigure(context.Background()))

	// Assert: cheapest profile in force
	assert.Equal(t, 2*time.Minute, provider.cfg.Interval)
	assert.Equal(t, models.PriorityLowPower, provider.cfg.Priority)
	assert.Equal(t, float64(200), provider.cfg.MinDisplacementM)

	// A second reconfigure with unchanged power is a no-op
	starts, _ := provider.counts()
	require.NoError(t, coord.Reconfigure(context.Background()))
	startsAfter, _ := provider.counts()
	assert.Equal(t, starts, startsAfter)
}

func TestReconfigure_WithoutConsumersIsNoop(t *testing.T) {
	// Arrange
	provider := &fakeProvider{}
	coord := newTestCoordinator(provider, foregroundPower(), &fixCollector{})

	// Act
	err := coord.Reconfigure(context.Background())

	// Assert
	require.NoError(t, err)
	starts, _ := provider.counts()
	assert.Equal(t, 0, starts)
}
