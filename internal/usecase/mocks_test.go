package usecase

import (
	"context"

	"github.com/mirukibs/contradots/internal/domain"
	"github.com/mirukibs/contradots/internal/events"
)

type memActionRepo struct {
	actions   map[domain.ActionID]*domain.Action
	saveCalls int
	saveErr   error
}

func newMemActionRepo() *memActionRepo {
	return &memActionRepo{actions: make(map[domain.ActionID]*domain.Action)}
}

func (r *memActionRepo) Save(ctx context.Context, action *domain.Action) error {
	r.saveCalls++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.actions[action.ID()] = action
	return nil
}

func (r *memActionRepo) FindByID(ctx context.Context, id domain.ActionID) (*domain.Action, error) {
	action, ok := r.actions[id]
	if !ok {
		return nil, domain.NotFoundError{Resource: "action"}
	}
	return action, nil
}

func (r *memActionRepo) FindByPersonID(ctx context.Context, id domain.PersonID) ([]*domain.Action, error) {
	var out []*domain.Action
	for _, a := range r.actions {
		if a.PersonID() == id {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memActionRepo) FindByActivityID(ctx context.Context, id domain.ActivityID) ([]*domain.Action, error) {
	var out []*domain.Action
	for _, a := range r.actions {
		if a.ActivityID() == id {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memActionRepo) FindVerifiedByPersonID(ctx context.Context, id domain.PersonID) ([]*domain.Action, error) {
	var out []*domain.Action
	for _, a := range r.actions {
		if a.PersonID() == id && a.IsVerified() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memActionRepo) FindPending(ctx context.Context) ([]*domain.Action, error) {
	var out []*domain.Action
	for _, a := range r.actions {
		if a.Status() == domain.StatusSubmitted {
			out = append(out, a)
		}
	}
	return out, nil
}

type memActivityRepo struct {
	activities map[domain.ActivityID]*domain.Activity
	saveCalls  int
}

func newMemActivityRepo() *memActivityRepo {
	return &memActivityRepo{activities: make(map[domain.ActivityID]*domain.Activity)}
}

func (r *memActivityRepo) Save(ctx context.Context, activity *domain.Activity) error {
	r.saveCalls++
	r.activities[activity.ID()] = activity
	return nil
}

func (r *memActivityRepo) FindByID(ctx context.Context, id domain.ActivityID) (*domain.Activity, error) {
	activity, ok := r.activities[id]
	if !ok {
		return nil, domain.NotFoundError{Resource: "activity"}
	}
	return activity, nil
}

func (r *memActivityRepo) FindByCreatorID(ctx context.Context, id domain.PersonID) ([]*domain.Activity, error) {
	var out []*domain.Activity
	for _, a := range r.activities {
		if a.CreatorID() == id {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memActivityRepo) FindAllActive(ctx context.Context) ([]*domain.Activity, error) {
	var out []*domain.Activity
	for _, a := range r.activities {
		if a.IsActive() {
			out = append(out, a)
		}
	}
	return out, nil
}

type memPersonRepo struct {
	persons   map[domain.PersonID]*domain.Person
	saveCalls int
}

func newMemPersonRepo() *memPersonRepo {
	return &memPersonRepo{persons: make(map[domain.PersonID]*domain.Person)}
}

func (r *memPersonRepo) Save(ctx context.Context, person *domain.Person) error {
	r.saveCalls++
	r.persons[person.ID()] = person
	return nil
}

func (r *memPersonRepo) FindByID(ctx context.Context, id domain.PersonID) (*domain.Person, error) {
	person, ok := r.persons[id]
	if !ok {
		return nil, domain.NotFoundError{Resource: "person"}
	}
	return person, nil
}

func (r *memPersonRepo) FindByEmail(ctx context.Context, email string) (*domain.Person, error) {
	for _, p := range r.persons {
		if p.Email() == email {
			return p, nil
		}
	}
	return nil, domain.NotFoundError{Resource: "person"}
}

type recordingPublisher struct {
	published []domain.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event domain.Event) {
	p.published = append(p.published, event)
}

func (p *recordingPublisher) Register(eventType string, handler events.Handler) {}

type stubMirror struct {
	chainID       uint64
	err           error
	submitCalls   int
	createCalls   int
	validateCalls int
}

func (m *stubMirror) CreateActivity(ctx context.Context, activity *domain.Activity) (uint64, error) {
	m.createCalls++
	return m.chainID, m.err
}

func (m *stubMirror) SubmitAction(ctx context.Context, action *domain.Action) (uint64, error) {
	m.submitCalls++
	return m.chainID, m.err
}

func (m *stubMirror) ValidateProof(ctx context.Context, id domain.ActionID, isValid bool) error {
	m.validateCalls++
	return m.err
}

type stubLeaderboard struct {
	entries   []LeaderboardEntry
	lastLimit int
}

func (l *stubLeaderboard) Top(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	l.lastLimit = limit
	if limit < len(l.entries) {
		return l.entries[:limit], nil
	}
	return l.entries, nil
}

type stubStats struct {
	stats ActivityStats
	err   error
}

func (s *stubStats) Stats(ctx context.Context, id domain.ActivityID) (ActivityStats, error) {
	return s.stats, s.err
}

type stubTokenIssuer struct {
	token string
	err   error
}

func (t *stubTokenIssuer) Issue(ctx context.Context, id domain.PersonID) (string, error) {
	return t.token, t.err
}

func mustPerson(name, email string, role domain.Role) *domain.Person {
	person, err := domain.NewPerson(domain.NewPersonID(), name, email, role)
	if err != nil {
		panic(err)
	}
	return person
}
