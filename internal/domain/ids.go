package domain

import (
	"github.com/google/uuid"
)

// PersonID identifies a Person aggregate.
type PersonID struct {
	value uuid.UUID
}

// ActivityID identifies an Activity aggregate.
type ActivityID struct {
	value uuid.UUID
}

// ActionID identifies an Action aggregate.
type ActionID struct {
	value uuid.UUID
}

func NewPersonID() PersonID {
	return PersonID{value: uuid.New()}
}

func ParsePersonID(s string) (PersonID, error) {
	v, err := uuid.Parse(s)
	if err != nil {
		return PersonID{}, ValidationError{Field: "personId", Reason: "must be a valid UUID"}
	}
	return PersonID{value: v}, nil
}

func (id PersonID) String() string { return id.value.String() }
func (id PersonID) IsZero() bool   { return id.value == uuid.Nil }

func (id PersonID) MarshalText() ([]byte, error) { return []byte(id.value.String()), nil }

func (id *PersonID) UnmarshalText(b []byte) error {
	parsed, err := ParsePersonID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func NewActivityID() ActivityID {
	return ActivityID{value: uuid.New()}
}

func ParseActivityID(s string) (ActivityID, error) {
	v, err := uuid.Parse(s)
	if err != nil {
		return ActivityID{}, ValidationError{Field: "activityId", Reason: "must be a valid UUID"}
	}
	return ActivityID{value: v}, nil
}

func (id ActivityID) String() string { return id.value.String() }
func (id ActivityID) IsZero() bool   { return id.value == uuid.Nil }

func (id ActivityID) MarshalText() ([]byte, error) { return []byte(id.value.String()), nil }

func (id *ActivityID) UnmarshalText(b []byte) error {
	parsed, err := ParseActivityID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func NewActionID() ActionID {
	return ActionID{value: uuid.New()}
}

func ParseActionID(s string) (ActionID, error) {
	v, err := uuid.Parse(s)
	if err != nil {
		return ActionID{}, ValidationError{Field: "actionId", Reason: "must be a valid UUID"}
	}
	return ActionID{value: v}, nil
}

func (id ActionID) String() string { return id.value.String() }
func (id ActionID) IsZero() bool   { return id.value == uuid.Nil }

func (id ActionID) MarshalText() ([]byte, error) { return []byte(id.value.String()), nil }

func (id *ActionID) UnmarshalText(b []byte) error {
	parsed, err := ParseActionID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
