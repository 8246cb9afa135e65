package telemetry

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jumpa-app/jumpa/internal/pkg/logger"
	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

// collectorSink records every event it receives
type collectorSink struct {
	mu     sync.Mutex
	events []models.TelemetryEvent
}

func (c *collectorSink) Report(event models.TelemetryEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

// fakeProducer captures NSQ publishes and can be armed to fail
type fakeProducer struct {
	mu       sync.Mutex
	topics   []string
	payloads []interface{}
	err      error
}

func (f *fakeProducer) Publish(topic string, message interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.topics = append(f.topics, topic)
	f.payloads = append(f.payloads, message)
	return nil
}

func TestError_BuildsEventFromError(t *testing.T) {
	// Arrange
	sink := &collectorSink{}

	// Act
	Error(sink, "network_error", errors.New("connection refused"), map[string]string{
		"participant_id": "p-1",
	})

	// Assert
	require.Len(t, sink.events, 1)
	assert.Equal(t, "network_error", sink.events[0].Kind)
	assert.Equal(t, "connection refused", sink.events[0].Message)
	assert.Equal(t, "p-1", sink.events[0].Context["participant_id"])
	assert.False(t, sink.events[0].OccurredAt.IsZero())
}

func TestError_NilSinkIsNoop(t *testing.T) {
	// Must not panic
	Error(nil, "network_error", errors.New("boom"), nil)
}

func TestNSQSink_PublishesToConfiguredTopic(t *testing.T) {
	// Arrange
	producer := &fakeProducer{}
	sink := NewNSQSink(producer, "agent.telemetry", logger.NewNopLogger())

	// Act
	sink.Report(models.TelemetryEvent{Kind: "store_error", Message: "write failed"})

	// Assert
	require.Len(t, producer.topics, 1)
	assert.Equal(t, "agent.telemetry", producer.topics[0])
	event, ok := producer.payloads[0].(models.TelemetryEvent)
	require.True(t, ok)
	assert.Equal(t, "store_error", event.Kind)
}

func TestNSQSink_PublishFailureIsSwallowed(t *testing.T) {
	// Arrange
	producer := &fakeProducer{err: errors.New("nsqd unreachable")}
	sink := NewNSQSink(producer, "agent.telemetry", logger.NewNopLogger())

	// Act: must not panic or propagate
	sink.Report(models.TelemetryEvent{Kind: "store_error"})

	// Assert
	assert.Empty(t, producer.topics)
}

func TestMultiSink_FansOutAndSkipsNil(t *testing.T) {
	// Arrange
	first := &collectorSink{}
	second := &collectorSink{}
	multi := NewMultiSink(first, nil, second)

	// Act
	multi.Report(models.TelemetryEvent{Kind: "sdk_init_timeout"})

	// Assert
	assert.Len(t, first.events, 1)
	assert.Len(t, second.events, 1)
}
