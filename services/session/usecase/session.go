package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/jumpa-app/jumpa/internal/pkg/logger"
	"github.com/jumpa-app/jumpa/internal/pkg/models"
	"github.com/jumpa-app/jumpa/services/discovery"
	"github.com/jumpa-app/jumpa/services/location"
	"github.com/jumpa-app/jumpa/services/location/power"
	"github.com/jumpa-app/jumpa/services/location/provider"
	"github.com/jumpa-app/jumpa/services/presence"
	"github.com/jumpa-app/jumpa/services/registry"
)

// locationConsumerPrefix namespaces the session's consumer id on the
// location coordinator.
const locationConsumerPrefix = "session:"

// Session wires the participant lifecycle across the registry, publisher,
// location coordinator and discovery engine. Enter order matters: the
// identity is set before location updates flow, so the first accepted fix
// already has a directory path to land on. Exit order is the reverse, with
// the awaited record removal last so nothing can write behind it.
type Session struct {
	registry  registry.RegistryUC
	publisher presence.PublisherUC
	locations location.LocationUC
	discovery discovery.DiscoveryUC
	channel   *provider.ChannelProvider
	reported  *power.Reported
	logger    *logger.ZapLogger

	mu      sync.Mutex
	active  bool
	current models.Path
}

// NewSession creates the session orchestrator
func NewSession(
	reg registry.RegistryUC,
	publisher presence.PublisherUC,
	locations location.LocationUC,
	disc discovery.DiscoveryUC,
	channel *provider.ChannelProvider,
	reported *power.Reported,
	l *logger.ZapLogger,
) *Session {
	return &Session{
		registry:  reg,
		publisher: publisher,
		locations: locations,
		discovery: disc,
		channel:   channel,
		reported:  reported,
		logger:    l,
	}
}

// EnterSession validates the participant against the registry and brings the
// session up. Re-entering with a different role or destination re-points the
// live session instead of stacking a second one.
func (s *Session) EnterSession(ctx context.Context, req models.SessionRequest) error {
	if !req.Role.Valid() {
		return fmt.Errorf("invalid role %q", req.Role)
	}
	if req.Destination == "" {
		return fmt.Errorf("destination is required")
	}

	if _, err := s.registry.GetParticipant(ctx, req.ParticipantID); err != nil {
		return fmt.Errorf("failed to validate participant: %w", err)
	}

	path := models.Path{
		Partition:     models.Partition{Role: req.Role, Destination: req.Destination},
		ParticipantID: req.ParticipantID,
	}

	s.mu.Lock()
	if s.active && s.current == path {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	// Identity first: the previous record (if any) is removed, awaited,
	// inside SetIdentity, so at most one record ever exists.
	if err := s.publisher.SetIdentity(ctx, path); err != nil {
		return fmt.Errorf("failed to set presence identity: %w", err)
	}

	consumerID := locationConsumerPrefix + req.ParticipantID
	if _, err := s.locations.RequestUpdates(ctx, consumerID, models.LocationDemand{}); err != nil {
		// Roll the identity back so no orphaned record outlives the
		// failed enter.
		if rmErr := s.publisher.Remove(ctx); rmErr != nil {
			s.logger.Warn("failed to roll back presence identity", logger.Err(rmErr))
		}
		return fmt.Errorf("failed to start location updates: %w", err)
	}

	if _, err := s.discovery.Start(ctx, path); err != nil {
		if _, relErr := s.locations.ReleaseUpdates(ctx, consumerID); relErr != nil {
			s.logger.Warn("failed to roll back location consumer", logger.Err(relErr))
		}
		if rmErr := s.publisher.Remove(ctx); rmErr != nil {
			s.logger.Warn("failed to roll back presence identity", logger.Err(rmErr))
		}
		return fmt.Errorf("failed to start discovery: %w", err)
	}

	s.mu.Lock()
	s.active = true
	s.current = path
	s.mu.Unlock()

	// Seed the directory immediately if the provider already knows where
	// we are, instead of waiting for the next platform fix.
	if fix, ok, _ := s.channel.LastKnown(ctx); ok {
		s.publisher.Publish(ctx, fix)
	}

	s.logger.Info("session entered",
		logger.String("participant_id", req.ParticipantID),
		logger.String("role", string(req.Role)),
		logger.String("destination", req.Destination))
	return nil
}

// ExitSession tears the session down in reverse order of enter. The awaited
// Remove runs last: by the time it returns, no scheduled write can land
// behind it and the directory holds no record for this participant.
func (s *Session) ExitSession(ctx context.Context) error {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return nil
	}
	current := s.current
	s.active = false
	s.current = models.Path{}
	s.mu.Unlock()

	consumerID := locationConsumerPrefix + current.ParticipantID
	if _, err := s.locations.ReleaseUpdates(ctx, consumerID); err != nil {
		s.logger.Warn("failed to release location consumer", logger.Err(err))
	}
	if _, err := s.discovery.Stop(ctx); err != nil {
		s.logger.Warn("failed to stop discovery", logger.Err(err))
	}
	if err := s.publisher.Remove(ctx); err != nil {
		return fmt.Errorf("failed to remove presence record: %w", err)
	}

	s.logger.Info("session exited",
		logger.String("participant_id", current.ParticipantID))
	return nil
}

// ChangeDestination re-points the live session at a new destination
func (s *Session) ChangeDestination(ctx context.Context, destination string) error {
	if destination == "" {
		return fmt.Errorf("destination is required")
	}
	return s.repoint(ctx, func(p models.Path) models.Path {
		p.Destination = destination
		return p
	})
}

// ChangeRole re-points the live session at a new role
func (s *Session) ChangeRole(ctx context.Context, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("invalid role %q", role)
	}
	return s.repoint(ctx, func(p models.Path) models.Path {
		p.Role = role
		return p
	})
}

// repoint applies a path mutation to the active session: the publisher
// removes the old record, awaited, before the new identity can be written,
// and discovery restarts with a cleared notification set.
func (s *Session) repoint(ctx context.Context, mutate func(models.Path) models.Path) error {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return fmt.Errorf("no active session")
	}
	next := mutate(s.current)
	if next == s.current {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	if err := s.publisher.SetIdentity(ctx, next); err != nil {
		return fmt.Errorf("failed to re-point presence identity: %w", err)
	}
	if _, err := s.discovery.Start(ctx, next); err != nil {
		// The record is already under the new path but monitoring is not:
		// that split state must not survive. Reset discovery, pull the
		// record and deactivate rather than keep a half-live session.
		s.discovery.ForceStop(ctx)
		if rmErr := s.publisher.Remove(ctx); rmErr != nil {
			s.logger.Warn("failed to remove record after discovery reset", logger.Err(rmErr))
		}
		s.mu.Lock()
		s.active = false
		s.current = models.Path{}
		s.mu.Unlock()
		return fmt.Errorf("failed to restart discovery: %w", err)
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	if fix, ok, _ := s.channel.LastKnown(ctx); ok {
		s.publisher.Publish(ctx, fix)
	}

	s.logger.Info("session re-pointed",
		logger.String("participant_id", next.ParticipantID),
		logger.String("role", string(next.Role)),
		logger.String("destination", next.Destination))
	return nil
}

// State returns the observable session state
func (s *Session) State(ctx context.Context) models.SessionState {
	s.mu.Lock()
	active := s.active
	current := s.current
	s.mu.Unlock()

	state := models.SessionState{
		Active:           active,
		UpdateInProgress: s.publisher.Pending(),
		Monitoring:       s.discovery.Phase(),
		Counterparts:     []models.Counterpart{},
	}
	if active {
		state.ParticipantID = current.ParticipantID
		state.Role = current.Role
		state.Destination = current.Destination
		state.Counterparts = s.discovery.Counterparts()
	}
	state.CounterpartCount = len(state.Counterparts)

	if fix, ok := s.locations.LastFix(); ok {
		state.Position = &fix
	}
	return state
}

// ReportFix feeds one raw platform fix into the location pipeline. Fixes
// flow whether or not a session is active; without one they only refresh
// the last-known position.
func (s *Session) ReportFix(ctx context.Context, fix models.Fix) {
	if fix.Timestamp.IsZero() {
		fix.Timestamp = models.Now()
	}
	s.channel.Offer(fix)
}

// ReportAppState records a power transition and re-derives the effective
// location subscription under the new policy.
func (s *Session) ReportAppState(ctx context.Context, update models.AppStateUpdate) {
	s.reported.Set(update)
	if err := s.locations.Reconfigure(ctx); err != nil {
		s.logger.Warn("failed to reconfigure location updates", logger.Err(err))
	}
}
