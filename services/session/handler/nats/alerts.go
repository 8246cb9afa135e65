package nats

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/jumpa-app/jumpa/internal/pkg/constants"
	"github.com/jumpa-app/jumpa/internal/pkg/logger"
	"github.com/jumpa-app/jumpa/internal/pkg/models"
	natspkg "github.com/jumpa-app/jumpa/internal/pkg/nats"
)

// ClientNotifier pushes an event to a connected participant
type ClientNotifier interface {
	NotifyClient(participantID string, event string, data interface{})
}

// NatsHandler bridges the proximity alert fan-out onto WebSocket pushes
type NatsHandler struct {
	natsClient *natspkg.Client
	notifier   ClientNotifier
	logger     *logger.ZapLogger
	subs       []*nats.Subscription
}

// NewNatsHandler creates the NATS subscriber side of the session service
func NewNatsHandler(natsClient *natspkg.Client, notifier ClientNotifier, l *logger.ZapLogger) *NatsHandler {
	return &NatsHandler{
		natsClient: natsClient,
		notifier:   notifier,
		logger:     l,
	}
}

// InitConsumers subscribes to the subjects the session surface serves
func (h *NatsHandler) InitConsumers() error {
	alertSub, err := h.natsClient.Subscribe(constants.SubjectProximityAlert, func(msg *nats.Msg) {
		if err := h.handleProximityAlert(msg.Data); err != nil {
			h.logger.Error("failed to handle proximity alert", logger.Err(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to proximity alerts: %w", err)
	}
	h.subs = append(h.subs, alertSub)

	return nil
}

// Close drains the subscriptions
func (h *NatsHandler) Close() {
	for _, sub := range h.subs {
		if err := sub.Unsubscribe(); err != nil {
			h.logger.Warn("failed to unsubscribe", logger.Err(err))
		}
	}
	h.subs = nil
}

// handleProximityAlert pushes one alert to the participant it belongs to
func (h *NatsHandler) handleProximityAlert(data []byte) error {
	var alert models.ProximityAlert
	if err := json.Unmarshal(data, &alert); err != nil {
		return fmt.Errorf("failed to unmarshal proximity alert: %w", err)
	}

	h.notifier.NotifyClient(alert.ParticipantID, constants.EventProximityAlert, alert)
	return nil
}
