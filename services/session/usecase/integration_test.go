package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jumpa-app/jumpa/internal/pkg/logger"
	"github.com/jumpa-app/jumpa/internal/pkg/models"
	"github.com/jumpa-app/jumpa/internal/pkg/telemetry"
	discoveryuc "github.com/jumpa-app/jumpa/services/discovery/usecase"
	"github.com/jumpa-app/jumpa/services/location/power"
	"github.com/jumpa-app/jumpa/services/location/provider"
	locationuc "github.com/jumpa-app/jumpa/services/location/usecase"
	"github.com/jumpa-app/jumpa/services/presence"
	presenceuc "github.com/jumpa-app/jumpa/services/presence/usecase"
)

// directoryStore is an in-memory presence.Store with working subscriptions,
// standing in for the remote directory so full participant pipelines can be
// wired against each other in one process.
type directoryStore struct {
	mu       sync.Mutex
	records  map[string]models.PresenceRecord // keyed by path string
	watchers map[string][]func(presence.Snapshot)
}

func newDirectoryStore() *directoryStore {
	return &directoryStore{
		records:  make(map[string]models.PresenceRecord),
		watchers: make(map[string][]func(presence.Snapshot)),
	}
}

func (d *directoryStore) Write(ctx context.Context, path models.Path, record models.PresenceRecord) error {
	d.mu.Lock()
	d.records[path.String()] = record
	handlers, snap := d.snapshotLocked(path.Partition)
	d.mu.Unlock()
	for _, h := range handlers {
		h(snap)
	}
	return nil
}

func (d *directoryStore) Remove(ctx context.Context, path models.Path) error {
	d.mu.Lock()
	delete(d.records, path.String())
	handlers, snap := d.snapshotLocked(path.Partition)
	d.mu.Unlock()
	for _, h := range handlers {
		h(snap)
	}
	return nil
}

func (d *directoryStore) OnDisconnectRemove(ctx context.Context, path models.Path) error { return nil }

func (d *directoryStore) Subscribe(ctx context.Context, partition models.Partition, onChange func(presence.Snapshot)) (presence.Subscription, error) {
	d.mu.Lock()
	key := partition.String()
	d.watchers[key] = append(d.watchers[key], onChange)
	idx := len(d.watchers[key]) - 1
	_, snap := d.snapshotLocked(partition)
	d.mu.Unlock()

	onChange(snap)
	return &directorySub{store: d, key: key, idx: idx}, nil
}

func (d *directoryStore) Nearby(ctx context.Context, partition models.Partition, latitude, longitude, radiusKm float64) ([]models.NearbyEntity, error) {
	return nil, nil
}

// snapshotLocked returns the partition's watchers and current contents
func (d *directoryStore) snapshotLocked(partition models.Partition) ([]func(presence.Snapshot), presence.Snapshot) {
	snap := presence.Snapshot{}
	for key, record := range d.records {
		if record.Role == partition.Role && record.Destination == partition.Destination {
			snap[pathParticipant(key)] = record
		}
	}
	var handlers []func(presence.Snapshot)
	handlers = append(handlers, d.watchers[partition.String()]...)
	return handlers, snap
}

// pathParticipant extracts the participant id from a path string
// ({role}s/{destination}/{participantId}).
func pathParticipant(key string) string {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '/' {
			return key[i+1:]
		}
	}
	return key
}

func (d *directoryStore) recordCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.records)
}

type directorySub struct {
	store *directoryStore
	key   string
	idx   int
	once  sync.Once
}

func (s *directorySub) Unsubscribe(ctx context.Context) error {
	s.once.Do(func() {
		s.store.mu.Lock()
		if handlers, ok := s.store.watchers[s.key]; ok && s.idx < len(handlers) {
			handlers[s.idx] = func(presence.Snapshot) {}
		}
		s.store.mu.Unlock()
	})
	return nil
}

// alertCounter records proximity alerts per counterpart
type alertCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func newAlertCounter() *alertCounter {
	return &alertCounter{counts: make(map[string]int)}
}

func (a *alertCounter) PublishProximityAlert(ctx context.Context, alert *models.ProximityAlert) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.counts[alert.ParticipantID+"->"+alert.CounterpartID]++
	return nil
}

func (a *alertCounter) count(from, to string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counts[from+"->"+to]
}

// openRegistry accepts every participant
type openRegistry struct{}

func (openRegistry) GetParticipant(ctx context.Context, id string) (*models.Participant, error) {
	return &models.Participant{}, nil
}
func (openRegistry) IssueToken(ctx context.Context, msisdn, apiKey string) (*models.AuthResponse, error) {
	return nil, nil
}
func (openRegistry) EnsureSchema(ctx context.Context) error { return nil }

// participant is one fully wired pipeline sharing the directory store
type participant struct {
	session   *Session
	publisher *presenceuc.Publisher
	channel   *provider.ChannelProvider
}

func newParticipant(t *testing.T, store *directoryStore, alerts *alertCounter) *participant {
	t.Helper()
	nop := logger.NewNopLogger()
	sink := telemetry.NopSink{}

	channel := provider.NewChannelProvider()
	reported := power.NewReported()

	profile := models.SamplingProfile{
		Interval:    10 * time.Millisecond,
		MinInterval: time.Millisecond,
	}
	locCfg := models.LocationConfig{
		Charging:          profile,
		Foreground:        profile,
		Background:        profile,
		BackgroundLowBatt: profile,
		LowBatteryPercent: 20,
	}

	pub := presenceuc.NewPublisher(store, reported, models.PublisherConfig{
		DebounceWindow: 5 * time.Millisecond,
		MinDistanceM:   10,
		SettleDelay:    time.Millisecond,
		RetryMax:       2,
		RetryBase:      time.Millisecond,
		RetryCap:       5 * time.Millisecond,
	}, nop, sink, nil)
	t.Cleanup(func() { _ = pub.Stop(context.Background()) })

	coordinator := locationuc.NewCoordinator(channel, reported, pub, locCfg, nop, sink, nil)

	engine := discoveryuc.NewEngine(
		discoveryuc.NewMonitor(),
		store,
		alerts,
		coordinator,
		models.DiscoveryConfig{RadiusKm: 1.0},
		nop,
		sink,
		nil,
	)

	session := NewSession(openRegistry{}, pub, coordinator, engine, channel, reported, nop)
	return &participant{session: session, publisher: pub, channel: channel}
}

// waitFor polls until the condition holds or the deadline passes
func waitFor(t *testing.T, d time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(2 * time.Millisecond)
	}
	return cond()
}

func TestSessions_MutualDiscoveryExactlyOnce(t *testing.T) {
	store := newDirectoryStore()
	alerts := newAlertCounter()
	ctx := context.Background()

	seeker := newParticipant(t, store, alerts)
	providerP := newParticipant(t, store, alerts)

	require.NoError(t, seeker.session.EnterSession(ctx, models.SessionRequest{
		ParticipantID: "seeker-1", Role: models.RoleSeeker, Destination: "route-x",
	}))
	require.NoError(t, providerP.session.EnterSession(ctx, models.SessionRequest{
		ParticipantID: "provider-1", Role: models.RoleProvider, Destination: "route-x",
	}))

	// Both report positions ~150m apart, repeatedly
	for i := 0; i < 5; i++ {
		seeker.session.ReportFix(ctx, models.Fix{Latitude: -6.2014, Longitude: 106.8456, Timestamp: time.Now()})
		providerP.session.ReportFix(ctx, models.Fix{Latitude: -6.2001, Longitude: 106.8456, Timestamp: time.Now()})
		time.Sleep(15 * time.Millisecond)
	}

	assert.True(t, waitFor(t, time.Second, func() bool {
		return alerts.count("seeker-1", "provider-1") >= 1 &&
			alerts.count("provider-1", "seeker-1") >= 1
	}), "both sides discover each other")

	// Continued position churn must not re-alert
	for i := 0; i < 5; i++ {
		seeker.session.ReportFix(ctx, models.Fix{Latitude: -6.2014, Longitude: 106.8456, Timestamp: time.Now()})
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, 1, alerts.count("seeker-1", "provider-1"))
	assert.Equal(t, 1, alerts.count("provider-1", "seeker-1"))

	require.NoError(t, seeker.session.ExitSession(ctx))
	require.NoError(t, providerP.session.ExitSession(ctx))
	assert.Zero(t, store.recordCount())
}

func TestSession_ChangeDestinationRemovesOldRecordFirst(t *testing.T) {
	store := newDirectoryStore()
	alerts := newAlertCounter()
	ctx := context.Background()

	p := newParticipant(t, store, alerts)
	require.NoError(t, p.session.EnterSession(ctx, models.SessionRequest{
		ParticipantID: "p-1", Role: models.RoleSeeker, Destination: "route-x",
	}))

	p.session.ReportFix(ctx, models.Fix{Latitude: -6.2, Longitude: 106.8, Timestamp: time.Now()})
	oldPath := models.Path{
		Partition:     models.Partition{Role: models.RoleSeeker, Destination: "route-x"},
		ParticipantID: "p-1",
	}
	require.True(t, waitFor(t, time.Second, func() bool {
		store.mu.Lock()
		_, ok := store.records[oldPath.String()]
		store.mu.Unlock()
		return ok
	}), "record appears under the original destination")

	require.NoError(t, p.session.ChangeDestination(ctx, "route-y"))

	// The old record is gone the moment ChangeDestination returns:
	// SetIdentity awaits the removal before queuing anything new.
	store.mu.Lock()
	_, oldExists := store.records[oldPath.String()]
	store.mu.Unlock()
	assert.False(t, oldExists, "old destination record removed before new identity writes")

	newPath := models.Path{
		Partition:     models.Partition{Role: models.RoleSeeker, Destination: "route-y"},
		ParticipantID: "p-1",
	}
	assert.True(t, waitFor(t, time.Second, func() bool {
		store.mu.Lock()
		_, ok := store.records[newPath.String()]
		store.mu.Unlock()
		return ok
	}), "record reappears under the new destination")

	require.NoError(t, p.session.ExitSession(ctx))
	assert.Zero(t, store.recordCount())
}

func TestSession_RapidEnterExitCyclesLeaveNoRecords(t *testing.T) {
	store := newDirectoryStore()
	alerts := newAlertCounter()
	ctx := context.Background()

	p := newParticipant(t, store, alerts)
	start := time.Now()

	for i := 0; i < 5; i++ {
		require.NoError(t, p.session.EnterSession(ctx, models.SessionRequest{
			ParticipantID: "p-1", Role: models.RoleSeeker, Destination: "route-x",
		}))
		p.session.ReportFix(ctx, models.Fix{Latitude: -6.2, Longitude: 106.8, Timestamp: time.Now()})
		require.NoError(t, p.session.ExitSession(ctx))
	}

	assert.Less(t, time.Since(start), 2*time.Second, "cycles complete promptly")
	assert.Zero(t, store.recordCount(), "no record survives the churn")
	assert.False(t, p.publisher.Pending())
}
