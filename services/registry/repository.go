package registry

import (
	"context"

	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/jumpa-app/jumpa/services/registry ParticipantRepo

// ParticipantRepo is the persistent participant registry boundary
type ParticipantRepo interface {
	// GetParticipant looks a participant up by id
	GetParticipant(ctx context.Context, id string) (*models.Participant, error)

	// GetParticipantByMSISDN looks a participant up by phone number
	GetParticipantByMSISDN(ctx context.Context, msisdn string) (*models.Participant, error)

	// CreateParticipant inserts a new participant
	CreateParticipant(ctx context.Context, participant *models.Participant) error

	// EnsureSchema creates the registry tables if they do not exist
	EnsureSchema(ctx context.Context) error
}
