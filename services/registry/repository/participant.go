package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jumpa-app/jumpa/internal/pkg/database"
	"github.com/jumpa-app/jumpa/internal/pkg/errs"
	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS participants (
	id UUID PRIMARY KEY,
	msisdn VARCHAR(20) NOT NULL UNIQUE,
	display_name VARCHAR(255) NOT NULL,
	default_role VARCHAR(16) NOT NULL,
	api_key_hash VARCHAR(255) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_participants_msisdn ON participants (msisdn);
`

// ParticipantRepo persists the participant registry in PostgreSQL
type ParticipantRepo struct {
	pg *database.PostgresClient
}

// NewParticipantRepo creates a participant repository
func NewParticipantRepo(pg *database.PostgresClient) *ParticipantRepo {
	return &ParticipantRepo{pg: pg}
}

// EnsureSchema creates the participants table if it does not exist
func (r *ParticipantRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.pg.GetDB().ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to ensure registry schema: %w", err)
	}
	return nil
}

// GetParticipant retrieves a participant by id
func (r *ParticipantRepo) GetParticipant(ctx context.Context, id string) (*models.Participant, error) {
	query := `
		SELECT id, msisdn, display_name, default_role, api_key_hash, created_at
		FROM participants
		WHERE id = $1
	`

	var participant models.Participant
	err := r.pg.GetDB().GetContext(ctx, &participant, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("participant %s: %w", id, errs.ErrStoreUnauthorized)
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	return &participant, nil
}

// GetParticipantByMSISDN retrieves a participant by phone number
func (r *ParticipantRepo) GetParticipantByMSISDN(ctx context.Context, msisdn string) (*models.Participant, error) {
	query := `
		SELECT id, msisdn, display_name, default_role, api_key_hash, created_at
		FROM participants
		WHERE msisdn = $1
	`

	var participant models.Participant
	err := r.pg.GetDB().GetContext(ctx, &participant, query, msisdn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("msisdn %s: %w", msisdn, errs.ErrStoreUnauthorized)
		}
		return nil, fmt.Errorf("failed to get participant by msisdn: %w", err)
	}

	return &participant, nil
}

// CreateParticipant inserts a new participant
func (r *ParticipantRepo) CreateParticipant(ctx context.Context, participant *models.Participant) error {
	if participant.ID == uuid.Nil {
		participant.ID = uuid.New()
	}
	if participant.CreatedAt.IsZero() {
		participant.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO participants (id, msisdn, display_name, default_role, api_key_hash, created_at)
		VALUES (:id, :msisdn, :display_name, :default_role, :api_key_hash, :created_at)
	`
	if _, err := r.pg.GetDB().NamedExecContext(ctx, query, participant); err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}
