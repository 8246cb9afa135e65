package usecase

import (
	"sync"

	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

// Phase is one state of the monitoring lifecycle
type Phase int

const (
	PhaseStopped Phase = iota
	PhaseStarting
	PhaseActive
	PhaseStopping
)

func (p Phase) String() string {
	switch p {
	case PhaseStopped:
		return "stopped"
	case PhaseStarting:
		return "starting"
	case PhaseActive:
		return "active"
	case PhaseStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Monitor is the monitoring lifecycle state machine. It answers "is a
// listener already registered for this identity" without races, which is
// what keeps duplicate subtree subscriptions and duplicate alert bursts
// from ever being created. Exactly one instance exists per process.
type Monitor struct {
	mu     sync.Mutex
	phase  Phase
	target models.Path
}

// NewMonitor creates a monitor at rest
func NewMonitor() *Monitor {
	return &Monitor{phase: PhaseStopped}
}

// RequestStart claims the transition into Starting. It returns true from
// Stopped, and from any non-stopped phase whose target differs from the
// requested one (which forces a restart); a duplicate request against the
// same target already Starting or Active returns false.
func (m *Monitor) RequestStart(target models.Path) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.phase {
	case PhaseStopped:
		m.phase = PhaseStarting
		m.target = target
		return true
	case PhaseStarting, PhaseActive:
		if m.target == target {
			return false
		}
		m.phase = PhaseStarting
		m.target = target
		return true
	default: // PhaseStopping: the old listener is going away, claim a start
		m.phase = PhaseStarting
		m.target = target
		return true
	}
}

// MarkStarted completes the Starting to Active transition, but only if the target still
// matches: a restart requested in between wins.
func (m *Monitor) MarkStarted(target models.Path) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseStarting || m.target != target {
		return false
	}
	m.phase = PhaseActive
	return true
}

// RequestStop claims the transition into Stopping. Stopping an already
// stopped or stopping monitor is a no-op.
func (m *Monitor) RequestStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase == PhaseStopped || m.phase == PhaseStopping {
		return false
	}
	m.phase = PhaseStopping
	return true
}

// MarkStopped unconditionally returns the monitor to rest
func (m *Monitor) MarkStopped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.phase = PhaseStopped
	m.target = models.Path{}
}

// Snapshot returns the current phase and target
func (m *Monitor) Snapshot() (Phase, models.Path) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase, m.target
}
