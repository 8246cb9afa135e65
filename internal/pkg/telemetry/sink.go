package telemetry

import (
	"github.com/jumpa-app/jumpa/internal/pkg/logger"
	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

// Sink receives structured error/diagnostic events. Implementations must be
// safe for concurrent use and must never block the caller for long: the
// components reporting into the sink run on hot paths.
type Sink interface {
	Report(event models.TelemetryEvent)
}

// Error builds and reports an event from an error in one call
func Error(sink Sink, kind string, err error, context map[string]string) {
	if sink == nil {
		return
	}
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	sink.Report(models.TelemetryEvent{
		Kind:       kind,
		Message:    msg,
		Context:    context,
		OccurredAt: models.Now(),
	})
}

// ZapSink writes telemetry events to the application log
type ZapSink struct {
	logger *logger.ZapLogger
}

// NewZapSink creates a sink backed by the application logger
func NewZapSink(l *logger.ZapLogger) *ZapSink {
	return &ZapSink{logger: l}
}

// Report logs the event at error level
func (s *ZapSink) Report(event models.TelemetryEvent) {
	fields := []logger.Field{
		logger.String("kind", event.Kind),
		logger.Time("occurred_at", event.OccurredAt),
	}
	for k, v := range event.Context {
		fields = append(fields, logger.String(k, v))
	}
	s.logger.Error(event.Message, fields...)
}

// publisher is the slice of the NSQ producer the sink needs
type publisher interface {
	Publish(topic string, message interface{}) error
}

// NSQSink forwards telemetry events to the ops pipeline over NSQ.
// Publish failures are logged and dropped: telemetry must never become a
// failure source of its own.
type NSQSink struct {
	producer publisher
	topic    string
	logger   *logger.ZapLogger
}

// NewNSQSink creates a sink publishing to the given NSQ topic
func NewNSQSink(producer publisher, topic string, l *logger.ZapLogger) *NSQSink {
	return &NSQSink{
		producer: producer,
		topic:    topic,
		logger:   l,
	}
}

// Report publishes the event to the telemetry topic
func (s *NSQSink) Report(event models.TelemetryEvent) {
	if err := s.producer.Publish(s.topic, event); err != nil {
		s.logger.Warn("failed to publish telemetry event",
			logger.String("topic", s.topic),
			logger.String("kind", event.Kind),
			logger.Err(err))
	}
}

// MultiSink fans one event out to several sinks
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink combines sinks; nil entries are skipped
func NewMultiSink(sinks ...Sink) *MultiSink {
	kept := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &MultiSink{sinks: kept}
}

// Report delivers the event to every sink in registration order
func (s *MultiSink) Report(event models.TelemetryEvent) {
	for _, sink := range s.sinks {
		sink.Report(event)
	}
}

// NopSink discards everything, for tests
type NopSink struct{}

// Report discards the event
func (NopSink) Report(models.TelemetryEvent) {}
