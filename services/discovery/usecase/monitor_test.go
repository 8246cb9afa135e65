package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

func monitorPath(id string, role models.Role, dest string) models.Path {
	return models.Path{
		Partition:     models.Partition{Role: role, Destination: dest},
		ParticipantID: id,
	}
}

func TestMonitor_StartFromStopped(t *testing.T) {
	m := NewMonitor()
	target := monitorPath("p-1", models.RoleSeeker, "route-x")

	assert.True(t, m.RequestStart(target))

	phase, current := m.Snapshot()
	assert.Equal(t, PhaseStarting, phase)
	assert.Equal(t, target, current)
}

func TestMonitor_DuplicateStartIsNoop(t *testing.T) {
	m := NewMonitor()
	target := monitorPath("p-1", models.RoleSeeker, "route-x")
	assert.True(t, m.RequestStart(target))
	assert.True(t, m.MarkStarted(target))

	// Identical request while Active
	assert.False(t, m.RequestStart(target))
	phase, _ := m.Snapshot()
	assert.Equal(t, PhaseActive, phase)
}

func TestMonitor_DifferentTargetForcesRestart(t *testing.T) {
	m := NewMonitor()
	first := monitorPath("p-1", models.RoleSeeker, "route-x")
	assert.True(t, m.RequestStart(first))
	assert.True(t, m.MarkStarted(first))

	second := monitorPath("p-1", models.RoleSeeker, "route-y")
	assert.True(t, m.RequestStart(second))

	phase, current := m.Snapshot()
	assert.Equal(t, PhaseStarting, phase)
	assert.Equal(t, second, current)
}

func TestMonitor_MarkStartedRequiresMatchingTarget(t *testing.T) {
	m := NewMonitor()
	first := monitorPath("p-1", models.RoleSeeker, "route-x")
	second := monitorPath("p-1", models.RoleSeeker, "route-y")
	assert.True(t, m.RequestStart(first))

	// A restart raced in between
	assert.True(t, m.RequestStart(second))

	// The stale starter must not win
	assert.False(t, m.MarkStarted(first))
	assert.True(t, m.MarkStarted(second))
}

func TestMonitor_StopLifecycle(t *testing.T) {
	m := NewMonitor()
	target := monitorPath("p-1", models.RoleProvider, "route-x")

	// Stopping at rest is a no-op
	assert.False(t, m.RequestStop())

	assert.True(t, m.RequestStart(target))
	assert.True(t, m.MarkStarted(target))
	assert.True(t, m.RequestStop())

	// Second stop while Stopping is a no-op
	assert.False(t, m.RequestStop())

	m.MarkStopped()
	phase, _ := m.Snapshot()
	assert.Equal(t, PhaseStopped, phase)
}

func TestMonitor_StartWhileStoppingClaimsRestart(t *testing.T) {
	m := NewMonitor()
	target := monitorPath("p-1", models.RoleSeeker, "route-x")
	assert.True(t, m.RequestStart(target))
	assert.True(t, m.MarkStarted(target))
	assert.True(t, m.RequestStop())

	assert.True(t, m.RequestStart(target))
	phase, _ := m.Snapshot()
	assert.Equal(t, PhaseStarting, phase)
}
