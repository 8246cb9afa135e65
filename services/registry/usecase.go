package registry

import (
	"context"

	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/jumpa-app/jumpa/services/registry RegistryUC

// RegistryUC validates participants and issues session tokens
type RegistryUC interface {
	// GetParticipant returns the participant with the id, or
	// errs.ErrStoreUnauthorized when no such participant exists.
	GetParticipant(ctx context.Context, id string) (*models.Participant, error)

	// IssueToken verifies the participant's API key and returns a signed
	// session token.
	IssueToken(ctx context.Context, msisdn, apiKey string) (*models.AuthResponse, error)

	// EnsureSchema prepares the registry storage. Bootstrap runs it as a
	// non-critical stage.
	EnsureSchema(ctx context.Context) error
}
