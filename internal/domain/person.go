package domain

import (
	"strings"
)

// Role is a person's position in the community.
type Role string

const (
	RoleMember Role = "MEMBER"
	RoleLead   Role = "LEAD"
)

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleMember:
		return RoleMember, nil
	case RoleLead:
		return RoleLead, nil
	}
	return "", ValidationError{Field: "role", Reason: "must be MEMBER or LEAD"}
}

// Person is the aggregate root for a registered community member.
// Reputation is updated via events only; the reputation event handler is
// the sole writer.
type Person struct {
	id         PersonID
	name       string
	email      string
	role       Role
	reputation int

	// version supports optimistic concurrency on reputation writes.
	version int
}

func NewPerson(id PersonID, name, email string, role Role) (*Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ValidationError{Field: "name", Reason: "cannot be empty"}
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ValidationError{Field: "email", Reason: "cannot be empty"}
	}
	if !strings.Contains(email, "@") {
		return nil, ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	return &Person{
		id:    id,
		name:  name,
		email: email,
		role:  role,
	}, nil
}

// RestorePerson rebuilds a person from persisted state.
func RestorePerson(id PersonID, name, email string, role Role, reputation, version int) *Person {
	return &Person{
		id:         id,
		name:       name,
		email:      email,
		role:       role,
		reputation: reputation,
		version:    version,
	}
}

func (p *Person) ID() PersonID    { return p.id }
func (p *Person) Name() string    { return p.name }
func (p *Person) Email() string   { return p.email }
func (p *Person) Role() Role      { return p.role }
func (p *Person) Reputation() int { return p.reputation }
func (p *Person) Version() int    { return p.version }

// UpdateReputation applies a point delta. The score never goes negative.
func (p *Person) UpdateReputation(points int) {
	p.reputation += points
	if p.reputation < 0 {
		p.reputation = 0
	}
}

// CanCreateActivities reports whether this person may create and manage
// activities. Only leads can.
func (p *Person) CanCreateActivities() bool {
	return p.role == RoleLead
}
