package session

import (
	"context"

	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/jumpa-app/jumpa/services/session SessionUC

// SessionUC orchestrates the participant's live session: one identity in the
// presence directory, one location consumer, one discovery listener, all
// entered and torn down together.
type SessionUC interface {
	// EnterSession validates the participant and brings publishing and
	// discovery up for the role/destination pair.
	EnterSession(ctx context.Context, req models.SessionRequest) error

	// ExitSession tears the session down. The directory record is removed,
	// awaited, before the call returns.
	ExitSession(ctx context.Context) error

	// ChangeDestination re-points the identity at a new destination. The
	// old record is removed before the new one can appear.
	ChangeDestination(ctx context.Context, destination string) error

	// ChangeRole re-points the identity at a new role within the same
	// destination.
	ChangeRole(ctx context.Context, role models.Role) error

	// State returns the observable session state for the UI surface
	State(ctx context.Context) models.SessionState

	// ReportFix feeds one raw fix from the transport into the pipeline
	ReportFix(ctx context.Context, fix models.Fix)

	// ReportAppState records a power/app-state transition and re-derives
	// the location subscription.
	ReportAppState(ctx context.Context, update models.AppStateUpdate)
}
