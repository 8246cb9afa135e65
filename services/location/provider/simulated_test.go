package provider

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

func TestSimulatedProvider_DeliversFixes(t *testing.T) {
	p := NewSimulatedProvider(models.Fix{Latitude: -6.2, Longitude: 106.8, Timestamp: models.Now()})
	defer p.Stop()

	var delivered int64
	err := p.Start(models.ProviderConfig{Interval: 5 * time.Millisecond}, func(fix models.Fix) {
		atomic.AddInt64(&delivered, 1)
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&delivered) >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestSimulatedProvider_StartWhileRunningReconfiguresInPlace(t *testing.T) {
	p := NewSimulatedProvider(models.Fix{Latitude: -6.2, Longitude: 106.8})
	defer p.Stop()

	require.NoError(t, p.Start(models.ProviderConfig{Interval: time.Hour}, func(models.Fix) {}))

	var delivered int64
	require.NoError(t, p.Start(models.ProviderConfig{Interval: 5 * time.Millisecond}, func(fix models.Fix) {
		atomic.AddInt64(&delivered, 1)
	}))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&delivered) >= 1
	}, time.Second, 5*time.Millisecond)
}

func TestSimulatedProvider_StopHaltsDelivery(t *testing.T) {
	p := NewSimulatedProvider(models.Fix{Latitude: -6.2, Longitude: 106.8})

	var delivered int64
	require.NoError(t, p.Start(models.ProviderConfig{Interval: 5 * time.Millisecond}, func(fix models.Fix) {
		atomic.AddInt64(&delivered, 1)
	}))
	require.NoError(t, p.Stop())

	// Let any tick already in flight land before sampling.
	time.Sleep(15 * time.Millisecond)
	settled := atomic.LoadInt64(&delivered)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, atomic.LoadInt64(&delivered))

	// Stop is idempotent.
	require.NoError(t, p.Stop())
}

func TestSimulatedProvider_LastKnown(t *testing.T) {
	origin := models.Fix{Latitude: -6.2, Longitude: 106.8, Timestamp: models.Now()}
	p := NewSimulatedProvider(origin)

	fix, ok, err := p.LastKnown(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, origin, fix)
}
