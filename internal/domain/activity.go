package domain

import (
	"strings"
	"time"
)

// Activity is the aggregate root for a scoreable activity owned by a lead.
type Activity struct {
	id          ActivityID
	title       string
	description string
	creatorID   PersonID
	points      int
	createdAt   time.Time
	active      bool
}

// NewActivity creates an activity with a trimmed non-empty title and
// description and a positive points value. Activities start active.
func NewActivity(id ActivityID, title, description string, creatorID PersonID, points int) (*Activity, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ValidationError{Field: "title", Reason: "cannot be empty"}
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ValidationError{Field: "description", Reason: "cannot be empty"}
	}
	if points <= 0 {
		return nil, ValidationError{Field: "points", Reason: "must be positive"}
	}
	return &Activity{
		id:          id,
		title:       title,
		description: description,
		creatorID:   creatorID,
		points:      points,
		createdAt:   time.Now().UTC(),
		active:      true,
	}, nil
}

// RestoreActivity rebuilds an activity from persisted state.
func RestoreActivity(id ActivityID, title, description string, creatorID PersonID, points int, createdAt time.Time, active bool) *Activity {
	return &Activity{
		id:          id,
		title:       title,
		description: description,
		creatorID:   creatorID,
		points:      points,
		createdAt:   createdAt,
		active:      active,
	}
}

func (a *Activity) ID() ActivityID      { return a.id }
func (a *Activity) Title() string       { return a.title }
func (a *Activity) Description() string { return a.description }
func (a *Activity) CreatorID() PersonID { return a.creatorID }
func (a *Activity) Points() int         { return a.points }
func (a *Activity) CreatedAt() time.Time { return a.createdAt }
func (a *Activity) IsActive() bool      { return a.active }

func (a *Activity) UpdateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ValidationError{Field: "title", Reason: "cannot be empty"}
	}
	a.title = title
	return nil
}

func (a *Activity) UpdateDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return ValidationError{Field: "description", Reason: "cannot be empty"}
	}
	a.description = description
	return nil
}

// Deactivate takes the activity out of rotation. Deactivating an inactive
// activity is a no-op. Creator-only enforcement lives in the usecase layer.
func (a *Activity) Deactivate() {
	a.active = false
}

// Reactivate is the symmetric idempotent transition.
func (a *Activity) Reactivate() {
	a.active = true
}
