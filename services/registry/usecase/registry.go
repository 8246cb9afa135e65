package usecase

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jumpa-app/jumpa/internal/pkg/errs"
	"github.com/jumpa-app/jumpa/internal/pkg/jwt"
	"github.com/jumpa-app/jumpa/internal/pkg/logger"
	"github.com/jumpa-app/jumpa/internal/pkg/models"
	"github.com/jumpa-app/jumpa/services/registry"
)

// Registry validates participants against the persistent registry and
// issues session tokens.
type Registry struct {
	repo   registry.ParticipantRepo
	jwtCfg models.JWTConfig
	logger *logger.ZapLogger
}

// NewRegistry creates the registry usecase
func NewRegistry(repo registry.ParticipantRepo, jwtCfg models.JWTConfig, l *logger.ZapLogger) *Registry {
	return &Registry{repo: repo, jwtCfg: jwtCfg, logger: l}
}

// GetParticipant returns the participant with the id
func (r *Registry) GetParticipant(ctx context.Context, id string) (*models.Participant, error) {
	return r.repo.GetParticipant(ctx, id)
}

// IssueToken verifies the API key against the stored hash and returns a
// signed session token. Lookup and verification failures both surface as
// ErrStoreUnauthorized so callers cannot distinguish an unknown msisdn from
// a wrong key.
func (r *Registry) IssueToken(ctx context.Context, msisdn, apiKey string) (*models.AuthResponse, error) {
	participant, err := r.repo.GetParticipantByMSISDN(ctx, msisdn)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(participant.APIKeyHash), []byte(apiKey)); err != nil {
		r.logger.Warn("api key verification failed",
			logger.String("msisdn", msisdn))
		return nil, fmt.Errorf("api key mismatch: %w", errs.ErrStoreUnauthorized)
	}

	token, expiresAt, err := jwt.GenerateToken(participant.ID, participant.MSISDN, participant.DefaultRole, r.jwtCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	r.logger.Info("session token issued",
		logger.String("participant_id", participant.ID.String()))

	return &models.AuthResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// EnsureSchema prepares the registry storage
func (r *Registry) EnsureSchema(ctx context.Context) error {
	return r.repo.EnsureSchema(ctx)
}
