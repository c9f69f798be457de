package usecase_test

import (
	"context"
	"testing"

	"github.com/mirukibs/contradots/internal/domain"
	"github.com/mirukibs/contradots/internal/events"
	"github.com/mirukibs/contradots/internal/projection"
	"github.com/mirukibs/contradots/internal/service"
	"github.com/mirukibs/contradots/internal/usecase"
)

// The flow tests wire the real publisher and event handlers against
// in-memory stores, covering the whole submit-validate-award path.

type flowActionRepo struct {
	actions map[domain.ActionID]*domain.Action
}

func (r *flowActionRepo) Save(ctx context.Context, action *domain.Action) error {
	r.actions[action.ID()] = action
	return nil
}

func (r *flowActionRepo) FindByID(ctx context.Context, id domain.ActionID) (*domain.Action, error) {
	action, ok := r.actions[id]
	if !ok {
		return nil, domain.NotFoundError{Resource: "action"}
	}
	return action, nil
}

func (r *flowActionRepo) FindByPersonID(ctx context.Context, id domain.PersonID) ([]*domain.Action, error) {
	var out []*domain.Action
	for _, a := range r.actions {
		if a.PersonID() == id {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *flowActionRepo) FindByActivityID(ctx context.Context, id domain.ActivityID) ([]*domain.Action, error) {
	var out []*domain.Action
	for _, a := range r.actions {
		if a.ActivityID() == id {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *flowActionRepo) FindVerifiedByPersonID(ctx context.Context, id domain.PersonID) ([]*domain.Action, error) {
	var out []*domain.Action
	for _, a := range r.actions {
		if a.PersonID() == id && a.IsVerified() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *flowActionRepo) FindPending(ctx context.Context) ([]*domain.Action, error) {
	var out []*domain.Action
	for _, a := range r.actions {
		if a.Status() == domain.StatusSubmitted {
			out = append(out, a)
		}
	}
	return out, nil
}

type flowActivityRepo struct {
	activities map[domain.ActivityID]*domain.Activity
}

func (r *flowActivityRepo) Save(ctx context.Context, activity *domain.Activity) error {
	r.activities[activity.ID()] = activity
	return nil
}

func (r *flowActivityRepo) FindByID(ctx context.Context, id domain.ActivityID) (*domain.Activity, error) {
	activity, ok := r.activities[id]
	if !ok {
		return nil, domain.NotFoundError{Resource: "activity"}
	}
	return activity, nil
}

func (r *flowActivityRepo) FindByCreatorID(ctx context.Context, id domain.PersonID) ([]*domain.Activity, error) {
	return nil, nil
}

func (r *flowActivityRepo) FindAllActive(ctx context.Context) ([]*domain.Activity, error) {
	return nil, nil
}

type flowPersonRepo struct {
	persons   map[domain.PersonID]*domain.Person
	saveCalls int
}

func (r *flowPersonRepo) Save(ctx context.Context, person *domain.Person) error {
	r.saveCalls++
	r.persons[person.ID()] = person
	return nil
}

func (r *flowPersonRepo) FindByID(ctx context.Context, id domain.PersonID) (*domain.Person, error) {
	person, ok := r.persons[id]
	if !ok {
		return nil, domain.NotFoundError{Resource: "person"}
	}
	return person, nil
}

func (r *flowPersonRepo) FindByEmail(ctx context.Context, email string) (*domain.Person, error) {
	for _, p := range r.persons {
		if p.Email() == email {
			return p, nil
		}
	}
	return nil, domain.NotFoundError{Resource: "person"}
}

type flowLeaderboard struct {
	scores map[domain.PersonID]int
}

func (l *flowLeaderboard) UpdateScore(ctx context.Context, personID domain.PersonID, name string, score int) error {
	l.scores[personID] = score
	return nil
}

func TestSubmitAndValidateAwardsReputation(t *testing.T) {
	ctx := context.Background()

	actions := &flowActionRepo{actions: make(map[domain.ActionID]*domain.Action)}
	activities := &flowActivityRepo{activities: make(map[domain.ActivityID]*domain.Activity)}
	persons := &flowPersonRepo{persons: make(map[domain.PersonID]*domain.Person)}
	board := &flowLeaderboard{scores: make(map[domain.PersonID]int)}
	reputation := domain.NewReputationService()

	member := domain.RestorePerson(domain.NewPersonID(), "Mika", "mika@example.com", domain.RoleMember, 50, 1)
	lead := domain.RestorePerson(domain.NewPersonID(), "Noa", "noa@example.com", domain.RoleLead, 0, 1)
	persons.Save(ctx, member)
	persons.Save(ctx, lead)

	activity, err := domain.NewActivity(domain.NewActivityID(), "Office cleanup", "Weekly shift", lead.ID(), 10)
	if err != nil {
		t.Fatalf("new activity failed: %v", err)
	}
	activities.Save(ctx, activity)

	// Reputation handler registers first so the leaderboard reads the
	// post-award score.
	publisher := events.NewInMemoryPublisher()
	repHandler := service.NewReputationEventHandler(persons, activities, reputation)
	boardHandler := projection.NewLeaderboardHandler(persons, board, nil)
	for _, eventType := range []string{domain.EventTypeActionSubmitted, domain.EventTypeProofValidated} {
		publisher.Register(eventType, repHandler)
		publisher.Register(eventType, boardHandler)
	}

	uc := usecase.NewActionUsecase(actions, activities, persons, publisher, nil)

	cmd := usecase.SubmitActionCommand{
		PersonID:    member.ID().String(),
		ActivityID:  activity.ID().String(),
		Description: "Cleaned the east wing",
		ProofHash:   "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
	}

	persons.saveCalls = 0
	actionID, err := uc.Submit(ctx, cmd, member.ID())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// Submission alone awards nothing.
	current, _ := persons.FindByID(ctx, member.ID())
	if current.Reputation() != 50 {
		t.Fatalf("reputation must be unchanged after submit, got %d", current.Reputation())
	}
	if persons.saveCalls != 0 {
		t.Fatalf("no person writes expected on submit, got %d", persons.saveCalls)
	}

	verdict := usecase.ValidateProofCommand{ActionID: actionID.String(), IsValid: true}
	if err := uc.ValidateProof(ctx, verdict, lead.ID()); err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	current, _ = persons.FindByID(ctx, member.ID())
	if current.Reputation() != 60 {
		t.Fatalf("expected reputation 60 after award, got %d", current.Reputation())
	}
	if persons.saveCalls != 1 {
		t.Fatalf("expected exactly one person save, got %d", persons.saveCalls)
	}
	if board.scores[member.ID()] != 60 {
		t.Fatalf("leaderboard must carry the post-award score, got %d", board.scores[member.ID()])
	}
}

func TestRejectedProofAwardsNothing(t *testing.T) {
	ctx := context.Background()

	actions := &flowActionRepo{actions: make(map[domain.ActionID]*domain.Action)}
	activities := &flowActivityRepo{activities: make(map[domain.ActivityID]*domain.Activity)}
	persons := &flowPersonRepo{persons: make(map[domain.PersonID]*domain.Person)}
	board := &flowLeaderboard{scores: make(map[domain.PersonID]int)}

	member := domain.RestorePerson(domain.NewPersonID(), "Mika", "mika@example.com", domain.RoleMember, 50, 1)
	lead := domain.RestorePerson(domain.NewPersonID(), "Noa", "noa@example.com", domain.RoleLead, 0, 1)
	persons.Save(ctx, member)
	persons.Save(ctx, lead)

	activity, err := domain.NewActivity(domain.NewActivityID(), "Office cleanup", "Weekly shift", lead.ID(), 10)
	if err != nil {
		t.Fatalf("new activity failed: %v", err)
	}
	activities.Save(ctx, activity)

	publisher := events.NewInMemoryPublisher()
	repHandler := service.NewReputationEventHandler(persons, activities, domain.NewReputationService())
	boardHandler := projection.NewLeaderboardHandler(persons, board, nil)
	for _, eventType := range []string{domain.EventTypeActionSubmitted, domain.EventTypeProofValidated} {
		publisher.Register(eventType, repHandler)
		publisher.Register(eventType, boardHandler)
	}

	uc := usecase.NewActionUsecase(actions, activities, persons, publisher, nil)

	cmd := usecase.SubmitActionCommand{
		PersonID:    member.ID().String(),
		ActivityID:  activity.ID().String(),
		Description: "Cleaned the east wing",
		ProofHash:   "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
	}
	actionID, err := uc.Submit(ctx, cmd, member.ID())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	persons.saveCalls = 0
	verdict := usecase.ValidateProofCommand{ActionID: actionID.String(), IsValid: false}
	if err := uc.ValidateProof(ctx, verdict, lead.ID()); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	current, _ := persons.FindByID(ctx, member.ID())
	if current.Reputation() != 50 {
		t.Fatalf("rejected proof must not change reputation, got %d", current.Reputation())
	}
	if persons.saveCalls != 0 {
		t.Fatalf("no person writes expected on rejection, got %d", persons.saveCalls)
	}
	if len(board.scores) != 0 {
		t.Fatalf("leaderboard must be untouched, got %v", board.scores)
	}
}
