package usecase

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/mirukibs/contradots/internal/domain"
)

// PersonProfile is the read model returned for a person lookup.
type PersonProfile struct {
	Person              *domain.Person
	VerifiedActionCount int
	UpgradeEligible     bool
}

// RegistrationResult carries the new person id and their API token.
type RegistrationResult struct {
	PersonID domain.PersonID
	Token    string
}

// PersonUsecase handles registration, profiles and the leaderboard read
// side.
type PersonUsecase struct {
	persons     PersonRepository
	actions     ActionRepository
	leaderboard LeaderboardQuery
	tokens      TokenIssuer
	reputation  *domain.ReputationService
}

func NewPersonUsecase(
	persons PersonRepository,
	actions ActionRepository,
	leaderboard LeaderboardQuery,
	tokens TokenIssuer,
	reputation *domain.ReputationService,
) *PersonUsecase {
	return &PersonUsecase{
		persons:     persons,
		actions:     actions,
		leaderboard: leaderboard,
		tokens:      tokens,
		reputation:  reputation,
	}
}

func (uc *PersonUsecase) Register(ctx context.Context, cmd RegisterPersonCommand) (RegistrationResult, error) {
	if err := cmd.Validate(); err != nil {
		return RegistrationResult{}, err
	}

	if existing, err := uc.persons.FindByEmail(ctx, cmd.Email); err == nil && existing != nil {
		return RegistrationResult{}, domain.StateError{Msg: "email is already registered"}
	}

	role, _ := domain.ParseRole(cmd.Role)
	person, err := domain.NewPerson(domain.NewPersonID(), cmd.Name, cmd.Email, role)
	if err != nil {
		return RegistrationResult{}, err
	}

	if err := uc.persons.Save(ctx, person); err != nil {
		return RegistrationResult{}, errors.Wrap(err, "PersonUsecase.Register: save failed")
	}

	result := RegistrationResult{PersonID: person.ID()}
	if uc.tokens != nil {
		token, err := uc.tokens.Issue(ctx, person.ID())
		if err != nil {
			slog.WarnContext(ctx, "token issue failed",
				slog.String("personId", person.ID().String()),
				slog.String("error", err.Error()),
				slog.String("module", "person"),
			)
		} else {
			result.Token = token
		}
	}

	return result, nil
}

func (uc *PersonUsecase) Profile(ctx context.Context, id domain.PersonID) (PersonProfile, error) {
	person, err := uc.persons.FindByID(ctx, id)
	if err != nil {
		return PersonProfile{}, err
	}

	verified, err := uc.actions.FindVerifiedByPersonID(ctx, id)
	if err != nil {
		return PersonProfile{}, err
	}

	return PersonProfile{
		Person:              person,
		VerifiedActionCount: len(verified),
		UpgradeEligible:     uc.reputation.EligibleForRoleUpgrade(person, verified),
	}, nil
}

func (uc *PersonUsecase) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.leaderboard.Top(ctx, limit)
}
