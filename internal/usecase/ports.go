package usecase

import (
	"context"

	"github.com/mirukibs/contradots/internal/domain"
)

// ActionRepository defines persistence for action aggregates.
type ActionRepository interface {
	Save(ctx context.Context, action *domain.Action) error
	FindByID(ctx context.Context, id domain.ActionID) (*domain.Action, error)
	FindByPersonID(ctx context.Context, id domain.PersonID) ([]*domain.Action, error)
	FindByActivityID(ctx context.Context, id domain.ActivityID) ([]*domain.Action, error)
	FindVerifiedByPersonID(ctx context.Context, id domain.PersonID) ([]*domain.Action, error)
	FindPending(ctx context.Context) ([]*domain.Action, error)
}

// ActivityRepository defines persistence for activity aggregates.
type ActivityRepository interface {
	Save(ctx context.Context, activity *domain.Activity) error
	FindByID(ctx context.Context, id domain.ActivityID) (*domain.Activity, error)
	FindByCreatorID(ctx context.Context, id domain.PersonID) ([]*domain.Activity, error)
	FindAllActive(ctx context.Context) ([]*domain.Activity, error)
}

// PersonRepository defines persistence for person aggregates. Save returns
// domain.ConflictError when the persisted version is newer than the loaded
// one.
type PersonRepository interface {
	Save(ctx context.Context, person *domain.Person) error
	FindByID(ctx context.Context, id domain.PersonID) (*domain.Person, error)
	FindByEmail(ctx context.Context, email string) (*domain.Person, error)
}

// ChainMirror mirrors local writes to the on-chain tracker contract.
// Calls are best-effort: a failure must never roll back the local write.
type ChainMirror interface {
	CreateActivity(ctx context.Context, activity *domain.Activity) (uint64, error)
	SubmitAction(ctx context.Context, action *domain.Action) (uint64, error)
	ValidateProof(ctx context.Context, id domain.ActionID, isValid bool) error
}

// LeaderboardEntry is one ranked row of the reputation leaderboard.
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	PersonID   string `json:"personId"`
	Name       string `json:"name"`
	Reputation int    `json:"reputationScore"`
}

// LeaderboardQuery reads the denormalized leaderboard projection.
type LeaderboardQuery interface {
	Top(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}

// ActivityStats is the read-projection of submission volume per activity.
type ActivityStats struct {
	Submissions  int64 `json:"totalSubmissions"`
	Participants int64 `json:"participantCount"`
}

// ActivityStatsQuery reads the activity statistics projection.
type ActivityStatsQuery interface {
	Stats(ctx context.Context, id domain.ActivityID) (ActivityStats, error)
}

// TokenIssuer mints API tokens for newly registered persons.
type TokenIssuer interface {
	Issue(ctx context.Context, id domain.PersonID) (string, error)
}
