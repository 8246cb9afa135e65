package bootstrap

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jumpa-app/jumpa/internal/pkg/logger"
	"github.com/jumpa-app/jumpa/internal/pkg/models"
	"github.com/jumpa-app/jumpa/internal/pkg/telemetry"
)

func testBootstrapConfig() models.BootstrapConfig {
	return models.BootstrapConfig{
		CriticalTimeout:    200 * time.Millisecond,
		NonCriticalTimeout: 200 * time.Millisecond,
	}
}

func TestRun_CriticalStagesRunSequentiallyBeforeNonCritical(t *testing.T) {
	// Arrange
	var mu sync.Mutex
	var order []string
	record := func(name string) func(context.Context) error {
		return func(ctx context.Context) error {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return nil
		}
	}

	seq := NewSequencer(testBootstrapConfig(), logger.NewNopLogger(), telemetry.NopSink{}, nil)

	// Act
	failures := seq.Run(context.Background(), []Stage{
		{Name: "redis", Critical: true, Run: record("redis")},
		{Name: "nats", Critical: true, Run: record("nats")},
		{Name: "schema", Critical: false, Run: record("schema")},
		{Name: "mapsdk", Critical: false, Run: record("mapsdk")},
	})

	// Assert
	assert.Empty(t, failures)
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, order, 4)
	assert.Equal(t, []string{"redis", "nats"}, order[:2])
	assert.ElementsMatch(t, []string{"schema", "mapsdk"}, order[2:])

	select {
	case <-seq.Done():
	default:
		t.Fatal("completion was not signaled")
	}
}

func TestRun_FailedStageDoesNotBlockCompletion(t *testing.T) {
	// Arrange
	var reported []StageError
	seq := NewSequencer(testBootstrapConfig(), logger.NewNopLogger(), telemetry.NopSink{}, func(e StageError) {
		reported = append(reported, e)
	})

	boom := errors.New("nsqd unreachable")

	// Act
	failures := seq.Run(context.Background(), []Stage{
		{Name: "telemetry", Critical: false, Run: func(ctx context.Context) error { return boom }},
		{Name: "schema", Critical: false, Run: func(ctx context.Context) error { return nil }},
	})

	// Assert
	require.Len(t, failures, 1)
	assert.Equal(t, "telemetry", failures[0].Stage)
	assert.ErrorIs(t, failures[0].Err, boom)
	require.Len(t, reported, 1)

	select {
	case <-seq.Done():
	default:
		t.Fatal("completion was not signaled")
	}
}

func TestRun_HungStageTimesOutAndCompletionStillFires(t *testing.T) {
	// Arrange: one stage ignores its context entirely
	seq := NewSequencer(testBootstrapConfig(), logger.NewNopLogger(), telemetry.NopSink{}, nil)

	// Act
	start := time.Now()
	failures := seq.Run(context.Background(), []Stage{
		{Name: "hung", Critical: true, Run: func(ctx context.Context) error {
			time.Sleep(10 * time.Second)
			return nil
		}},
		{Name: "ok", Critical: false, Run: func(ctx context.Context) error { return nil }},
	})
	elapsed := time.Since(start)

	// Assert: completion arrived within the stage budgets, not after 10s
	assert.Less(t, elapsed, 2*time.Second)
	require.Len(t, failures, 1)
	assert.Equal(t, "hung", failures[0].Stage)
	assert.ErrorIs(t, failures[0].Err, context.DeadlineExceeded)

	select {
	case <-seq.Done():
	default:
		t.Fatal("completion was not signaled")
	}
}

func TestRun_CriticalFailureStillRunsRemainingStages(t *testing.T) {
	// Arrange
	var ran []string
	var mu sync.Mutex
	seq := NewSequencer(testBootstrapConfig(), logger.NewNopLogger(), telemetry.NopSink{}, nil)

	// Act
	failures := seq.Run(context.Background(), []Stage{
		{Name: "broken", Critical: true, Run: func(ctx context.Context) error {
			return errors.New("connect refused")
		}},
		{Name: "second", Critical: true, Run: func(ctx context.Context) error {
			mu.Lock()
			ran = append(ran, "second")
			mu.Unlock()
			return nil
		}},
	})

	// Assert
	require.Len(t, failures, 1)
	mu.Lock()
	assert.Contains(t, ran, "second")
	mu.Unlock()
}
