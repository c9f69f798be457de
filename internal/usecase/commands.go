package usecase

import (
	"strings"

	"github.com/mirukibs/contradots/internal/domain"
)

// Commands carry raw presentation input. Validate rejects malformed fields
// before any persistence or event work begins.

// Accepted proof hash lengths: MD5=32, SHA-1=40, SHA-256=64, SHA-512=128.
var proofHashLengths = map[int]bool{32: true, 40: true, 64: true, 128: true}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// SubmitActionCommand submits an action with proof for an activity.
type SubmitActionCommand struct {
	PersonID    string `json:"personId"`
	ActivityID  string `json:"activityId"`
	Description string `json:"description"`
	ProofHash   string `json:"proofHash"`
}

func (c SubmitActionCommand) Validate() error {
	if _, err := domain.ParsePersonID(c.PersonID); err != nil {
		return err
	}
	if _, err := domain.ParseActivityID(c.ActivityID); err != nil {
		return err
	}
	if strings.TrimSpace(c.Description) == "" {
		return domain.ValidationError{Field: "description", Reason: "cannot be empty"}
	}
	hash := strings.TrimSpace(c.ProofHash)
	if hash == "" {
		return domain.ValidationError{Field: "proofHash", Reason: "cannot be empty"}
	}
	if !proofHashLengths[len(hash)] || !isHex(hash) {
		return domain.ValidationError{Field: "proofHash", Reason: "must be a hex digest of length 32, 40, 64 or 128"}
	}
	return nil
}

// ValidateProofCommand records a lead's verdict on an action's proof.
type ValidateProofCommand struct {
	ActionID string `json:"actionId"`
	IsValid  bool   `json:"isValid"`
}

func (c ValidateProofCommand) Validate() error {
	_, err := domain.ParseActionID(c.ActionID)
	return err
}

// CreateActivityCommand creates a new activity owned by a lead.
type CreateActivityCommand struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	LeadID      string `json:"leadId"`
}

func (c CreateActivityCommand) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return domain.ValidationError{Field: "name", Reason: "cannot be empty"}
	}
	if strings.TrimSpace(c.Description) == "" {
		return domain.ValidationError{Field: "description", Reason: "cannot be empty"}
	}
	if c.Points <= 0 {
		return domain.ValidationError{Field: "points", Reason: "must be positive"}
	}
	if _, err := domain.ParsePersonID(c.LeadID); err != nil {
		return domain.ValidationError{Field: "leadId", Reason: "must be a valid UUID"}
	}
	return nil
}

// DeactivateActivityCommand takes an activity out of rotation.
type DeactivateActivityCommand struct {
	ActivityID string `json:"activityId"`
	LeadID     string `json:"leadId"`
}

func (c DeactivateActivityCommand) Validate() error {
	if _, err := domain.ParseActivityID(c.ActivityID); err != nil {
		return err
	}
	if _, err := domain.ParsePersonID(c.LeadID); err != nil {
		return domain.ValidationError{Field: "leadId", Reason: "must be a valid UUID"}
	}
	return nil
}

// ReactivateActivityCommand is the symmetric counterpart.
type ReactivateActivityCommand struct {
	ActivityID string `json:"activityId"`
	LeadID     string `json:"leadId"`
}

func (c ReactivateActivityCommand) Validate() error {
	return DeactivateActivityCommand(c).Validate()
}

// RegisterPersonCommand registers a new community member.
type RegisterPersonCommand struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (c RegisterPersonCommand) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return domain.ValidationError{Field: "name", Reason: "cannot be empty"}
	}
	email := strings.TrimSpace(c.Email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	if _, err := domain.ParseRole(c.Role); err != nil {
		return err
	}
	return nil
}
