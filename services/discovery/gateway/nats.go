package gateway

import (
	"context"
	"fmt"

	"github.com/jumpa-app/jumpa/internal/pkg/constants"
	"github.com/jumpa-app/jumpa/internal/pkg/logger"
	"github.com/jumpa-app/jumpa/internal/pkg/models"
	natspkg "github.com/jumpa-app/jumpa/internal/pkg/nats"
)

// AlertGateway publishes proximity alerts over NATS for the notification
// fan-out (the session service pushes them to the mobile app).
type AlertGateway struct {
	producer *natspkg.Producer
	logger   *logger.ZapLogger
}

// NewAlertGateway creates a NATS alert gateway
func NewAlertGateway(producer *natspkg.Producer, l *logger.ZapLogger) *AlertGateway {
	return &AlertGateway{
		producer: producer,
		logger:   l,
	}
}

// PublishProximityAlert publishes one alert to the proximity subject
func (g *AlertGateway) PublishProximityAlert(ctx context.Context, alert *models.ProximityAlert) error {
	if err := g.producer.Publish(constants.SubjectProximityAlert, alert); err != nil {
		return fmt.Errorf("failed to publish proximity alert: %w", err)
	}

	g.logger.Debug("published proximity alert",
		logger.String("participant_id", alert.ParticipantID),
		logger.String("counterpart_id", alert.CounterpartID),
		logger.Float64("distance_km", alert.DistanceKm))
	return nil
}
