package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jumpa-app/jumpa/internal/pkg/errs"
	"github.com/jumpa-app/jumpa/internal/pkg/logger"
)

func failingFn(err error) func(context.Context) error {
	return func(ctx context.Context) error { return err }
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cfg := DefaultConfig("test")
	cfg.FailureThreshold = 3
	cb := New(cfg, logger.NewNopLogger())

	storeErr := errors.New("store down")
	for i := 0; i < 3; i++ {
		err := cb.Execute(context.Background(), failingFn(storeErr))
		assert.ErrorIs(t, err, storeErr)
	}

	assert.Equal(t, StateOpen, cb.State())

	err := cb.Execute(context.Background(), failingFn(nil))
	assert.ErrorIs(t, err, ErrCircuitBreakerOpen)
}

func TestCircuitBreaker_TerminalErrorsDoNotTrip(t *testing.T) {
	cfg := DefaultConfig("test")
	cfg.FailureThreshold = 2
	cb := New(cfg, logger.NewNopLogger())

	denied := fmt.Errorf("revoked: %w", errs.ErrPermissionDenied)
	for i := 0; i < 5; i++ {
		err := cb.Execute(context.Background(), failingFn(denied))
		assert.ErrorIs(t, err, errs.ErrPermissionDenied)
	}

	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	cfg := DefaultConfig("test")
	cfg.FailureThreshold = 1
	cfg.Timeout = 10 * time.Millisecond
	cb := New(cfg, logger.NewNopLogger())

	require.Error(t, cb.Execute(context.Background(), failingFn(errors.New("boom"))))
	require.Equal(t, StateOpen, cb.State())

	time.Sleep(20 * time.Millisecond)

	// First probe after the timeout runs half-open and its success closes
	// the breaker again.
	require.NoError(t, cb.Execute(context.Background(), failingFn(nil)))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cfg := DefaultConfig("test")
	cfg.FailureThreshold = 1
	cfg.Timeout = 10 * time.Millisecond
	cb := New(cfg, logger.NewNopLogger())

	require.Error(t, cb.Execute(context.Background(), failingFn(errors.New("boom"))))
	time.Sleep(20 * time.Millisecond)

	require.Error(t, cb.Execute(context.Background(), failingFn(errors.New("still down"))))
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	var transitions []string
	cfg := DefaultConfig("test")
	cfg.FailureThreshold = 1
	cfg.OnStateChange = func(name string, from, to State) {
		transitions = append(transitions, fmt.Sprintf("%s->%s", from, to))
	}
	cb := New(cfg, logger.NewNopLogger())

	_ = cb.Execute(context.Background(), failingFn(errors.New("boom")))

	assert.Equal(t, []string{"CLOSED->OPEN"}, transitions)
}

func TestManager_SharesBreakerByName(t *testing.T) {
	m := NewManager(logger.NewNopLogger())

	storeErr := errors.New("store down")
	for i := 0; i < int(DefaultConfig("x").FailureThreshold); i++ {
		_ = m.Execute(context.Background(), "presence-nearby", failingFn(storeErr))
	}

	err := m.Execute(context.Background(), "presence-nearby", failingFn(nil))
	assert.ErrorIs(t, err, ErrCircuitBreakerOpen)

	// A different name is an independent breaker.
	assert.NoError(t, m.Execute(context.Background(), "registry", failingFn(nil)))
}

func TestManager_GetStats(t *testing.T) {
	m := NewManager(logger.NewNopLogger())
	require.NoError(t, m.Execute(context.Background(), "presence-nearby", failingFn(nil)))

	stats := m.GetStats()
	require.Contains(t, stats, "presence-nearby")
	assert.Equal(t, uint32(1), stats["presence-nearby"].TotalSuccesses)
	assert.Equal(t, "CLOSED", stats["presence-nearby"].State)
}
