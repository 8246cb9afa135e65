package discovery

import (
	"context"

	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/jumpa-app/jumpa/services/discovery AlertGW

// AlertGW publishes proximity alerts to the notification fan-out
type AlertGW interface {
	PublishProximityAlert(ctx context.Context, alert *models.ProximityAlert) error
}
