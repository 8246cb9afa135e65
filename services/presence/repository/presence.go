package repository

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/jumpa-app/jumpa/internal/pkg/constants"
	"github.com/jumpa-app/jumpa/internal/pkg/database"
	"github.com/jumpa-app/jumpa/internal/pkg/errs"
	"github.com/jumpa-app/jumpa/internal/pkg/logger"
	"github.com/jumpa-app/jumpa/internal/pkg/models"
	"github.com/jumpa-app/jumpa/internal/utils"
	"github.com/jumpa-app/jumpa/services/presence"
)

// PresenceRepo is the Redis-backed presence directory. Each record is a hash
// under a lease TTL, indexed by a partition membership zset (scored by last
// write) and a geo set for nearby queries. A pub/sub channel per partition
// carries change notifications.
//
// The disconnect hook is a lease: OnDisconnectRemove starts a heartbeat that
// keeps refreshing the record's TTL while this process lives. Kill the
// process and the record expires on its own within the lease window.
type PresenceRepo struct {
	redisClient *database.RedisClient
	cfg         models.PresenceConfig
	logger      *logger.ZapLogger

	mu     sync.Mutex
	leases map[string]chan struct{}
	closed bool
}

// NewPresenceRepo creates the Redis presence store
func NewPresenceRepo(redisClient *database.RedisClient, cfg models.PresenceConfig, l *logger.ZapLogger) *PresenceRepo {
	return &PresenceRepo{
		redisClient: redisClient,
		cfg:         cfg,
		logger:      l,
		leases:      make(map[string]chan struct{}),
	}
}

func recordKey(path models.Path) string {
	return fmt.Sprintf(constants.KeyPresenceRecord, path.Role, path.Destination, path.ParticipantID)
}

func membersKey(p models.Partition) string {
	return fmt.Sprintf(constants.KeyPresenceMembers, p.Role, p.Destination)
}

func geoKey(p models.Partition) string {
	return fmt.Sprintf(constants.KeyPresenceGeo, p.Role, p.Destination)
}

func channelName(p models.Partition) string {
	return fmt.Sprintf(constants.ChannelPresence, p.Role, p.Destination)
}

// Write upserts the record hash and its indexes, then notifies the partition
func (r *PresenceRepo) Write(ctx context.Context, path models.Path, record models.PresenceRecord) error {
	fields := map[string]interface{}{
		constants.FieldLatitude:    strconv.FormatFloat(record.Latitude, 'f', -1, 64),
		constants.FieldLongitude:   strconv.FormatFloat(record.Longitude, 'f', -1, 64),
		constants.FieldTimestamp:   strconv.FormatInt(record.UpdatedAt.Unix(), 10),
		constants.FieldGeohash:     record.Geohash,
		constants.FieldRole:        string(path.Role),
		constants.FieldDestination: path.Destination,
	}

	key := recordKey(path)
	if err := r.redisClient.HMSet(ctx, key, fields); err != nil {
		return errs.Store(fmt.Errorf("failed to write presence record: %w", err))
	}
	if err := r.redisClient.Expire(ctx, key, r.cfg.LeaseTTL); err != nil {
		return errs.Store(fmt.Errorf("failed to set record lease: %w", err))
	}
	if err := r.redisClient.ZAdd(ctx, membersKey(path.Partition), float64(time.Now().Unix()), path.ParticipantID); err != nil {
		return errs.Store(fmt.Errorf("failed to index partition member: %w", err))
	}
	if err := r.redisClient.GeoAdd(ctx, geoKey(path.Partition), record.Longitude, record.Latitude, path.ParticipantID); err != nil {
		return errs.Store(fmt.Errorf("failed to index record position: %w", err))
	}

	r.notify(ctx, path.Partition, path.ParticipantID)
	return nil
}

// Remove deletes the record, its index entries and its lease heartbeat
func (r *PresenceRepo) Remove(ctx context.Context, path models.Path) error {
	r.stopLease(path)

	if err := r.redisClient.Delete(ctx, recordKey(path)); err != nil {
		return errs.Store(fmt.Errorf("failed to delete presence record: %w", err))
	}
	if err := r.redisClient.ZRem(ctx, membersKey(path.Partition), path.ParticipantID); err != nil {
		return errs.Store(fmt.Errorf("failed to drop partition member: %w", err))
	}
	if err := r.redisClient.ZRem(ctx, geoKey(path.Partition), path.ParticipantID); err != nil {
		return errs.Store(fmt.Errorf("failed to drop record position: %w", err))
	}

	r.notify(ctx, path.Partition, path.ParticipantID)
	return nil
}

// OnDisconnectRemove arms the lease heartbeat for the path, replacing any
// previous lease held by this process.
func (r *PresenceRepo) OnDisconnectRemove(ctx context.Context, path models.Path) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return errs.Store(fmt.Errorf("presence store is closed"))
	}

	key := path.String()
	if stop, ok := r.leases[key]; ok {
		close(stop)
	}
	stop := make(chan struct{})
	r.leases[key] = stop
	go r.heartbeat(path, stop)
	return nil
}

// heartbeat refreshes the record lease until stopped. A record that does not
// exist yet is left alone; the refresh picks it up after the first write.
func (r *PresenceRepo) heartbeat(path models.Path, stop chan struct{}) {
	ticker := time.NewTicker(r.cfg.HeartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), r.cfg.HeartbeatInterval)
			if err := r.redisClient.Expire(ctx, recordKey(path), r.cfg.LeaseTTL); err != nil {
				r.logger.Warn("lease refresh failed",
					logger.String("path", path.String()),
					logger.Err(err))
			}
			_ = r.redisClient.ZAddXX(ctx, membersKey(path.Partition), float64(time.Now().Unix()), path.ParticipantID)
			cancel()
		}
	}
}

func (r *PresenceRepo) stopLease(path models.Path) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stop, ok := r.leases[path.String()]; ok {
		close(stop)
		delete(r.leases, path.String())
	}
}

// notify publishes a change marker; subscribers re-read the snapshot
func (r *PresenceRepo) notify(ctx context.Context, partition models.Partition, participantID string) {
	if err := r.redisClient.Publish(ctx, channelName(partition), participantID); err != nil {
		r.logger.Warn("failed to publish presence change",
			logger.String("partition", partition.String()),
			logger.Err(err))
	}
}

// subscription wraps one partition watch
type subscription struct {
	pubsub interface{ Close() error }
	once   sync.Once
}

func (s *subscription) Unsubscribe(ctx context.Context) error {
	var err error
	s.once.Do(func() {
		err = s.pubsub.Close()
	})
	return err
}

// Subscribe watches a partition. The goroutine behind it serializes
// onChange deliveries, starting with the current snapshot.
func (r *PresenceRepo) Subscribe(ctx context.Context, partition models.Partition, onChange func(presence.Snapshot)) (presence.Subscription, error) {
	pubsub := r.redisClient.Subscribe(ctx, channelName(partition))
	// Force the subscription onto the wire before the initial snapshot so
	// no change between the two is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, errs.Store(fmt.Errorf("failed to subscribe to partition %s: %w", partition, err))
	}

	go func() {
		if snap, err := r.readSnapshot(context.Background(), partition); err == nil {
			onChange(snap)
		}
		for range pubsub.Channel() {
			snap, err := r.readSnapshot(context.Background(), partition)
			if err != nil {
				r.logger.Warn("failed to read partition snapshot",
					logger.String("partition", partition.String()),
					logger.Err(err))
				continue
			}
			onChange(snap)
		}
	}()

	return &subscription{pubsub: pubsub}, nil
}

// readSnapshot loads the partition's live records and lazily prunes members
// whose record hash expired (the lease fired for a dead process).
func (r *PresenceRepo) readSnapshot(ctx context.Context, partition models.Partition) (presence.Snapshot, error) {
	members, err := r.redisClient.ZRangeWithScores(ctx, membersKey(partition))
	if err != nil {
		return nil, errs.Store(fmt.Errorf("failed to list partition members: %w", err))
	}

	snap := make(presence.Snapshot, len(members))
	for _, member := range members {
		id, ok := member.Member.(string)
		if !ok {
			continue
		}
		record, err := r.readRecord(ctx, models.Path{Partition: partition, ParticipantID: id})
		if err != nil {
			return nil, err
		}
		if record == nil {
			// Lease expired: drop the orphaned index entries
			_ = r.redisClient.ZRem(ctx, membersKey(partition), id)
			_ = r.redisClient.ZRem(ctx, geoKey(partition), id)
			continue
		}
		snap[id] = *record
	}
	return snap, nil
}

func (r *PresenceRepo) readRecord(ctx context.Context, path models.Path) (*models.PresenceRecord, error) {
	fields, err := r.redisClient.HGetAll(ctx, recordKey(path))
	if err != nil {
		return nil, errs.Store(fmt.Errorf("failed to read presence record: %w", err))
	}
	if len(fields) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(fields[constants.FieldLatitude], 64)
	if err != nil {
		return nil, errs.Store(fmt.Errorf("invalid latitude in record %s: %w", path, err))
	}
	lng, err := strconv.ParseFloat(fields[constants.FieldLongitude], 64)
	if err != nil {
		return nil, errs.Store(fmt.Errorf("invalid longitude in record %s: %w", path, err))
	}
	ts, err := strconv.ParseInt(fields[constants.FieldTimestamp], 10, 64)
	if err != nil {
		return nil, errs.Store(fmt.Errorf("invalid timestamp in record %s: %w", path, err))
	}

	return &models.PresenceRecord{
		Latitude:    lat,
		Longitude:   lng,
		UpdatedAt:   time.Unix(ts, 0).UTC(),
		Role:        path.Role,
		Destination: path.Destination,
		Geohash:     fields[constants.FieldGeohash],
	}, nil
}

// Nearby runs a geo radius query over the partition, filtering out members
// whose record lease already expired.
func (r *PresenceRepo) Nearby(ctx context.Context, partition models.Partition, latitude, longitude, radiusKm float64) ([]models.NearbyEntity, error) {
	locations, err := r.redisClient.GeoRadius(ctx, geoKey(partition), longitude, latitude, radiusKm, "km")
	if err != nil {
		return nil, errs.Store(fmt.Errorf("failed to query nearby members: %w", err))
	}

	entities := make([]models.NearbyEntity, 0, len(locations))
	for _, loc := range locations {
		record, err := r.readRecord(ctx, models.Path{Partition: partition, ParticipantID: loc.Name})
		if err != nil {
			return nil, err
		}
		if record == nil {
			continue
		}
		dist := loc.Dist
		if dist == 0 {
			dist = utils.CalculateDistance(
				utils.GeoPoint{Latitude: latitude, Longitude: longitude},
				utils.GeoPoint{Latitude: record.Latitude, Longitude: record.Longitude},
			)
		}
		entities = append(entities, models.NearbyEntity{
			ParticipantID: loc.Name,
			Latitude:      record.Latitude,
			Longitude:     record.Longitude,
			DistanceKm:    dist,
		})
	}
	return entities, nil
}

// Close stops every lease heartbeat. Pending subscriptions are owned by
// their callers.
func (r *PresenceRepo) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	for key, stop := range r.leases {
		close(stop)
		delete(r.leases, key)
	}
}
