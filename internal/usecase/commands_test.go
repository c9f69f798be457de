package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/mirukibs/contradots/internal/domain"
)

func TestSubmitActionCommandProofHash(t *testing.T) {
	base := SubmitActionCommand{
		PersonID:    domain.NewPersonID().String(),
		ActivityID:  domain.NewActivityID().String(),
		Description: "Cleaned the east wing",
	}

	valid := []string{
		strings.Repeat("a", 32),  // MD5
		strings.Repeat("0", 40),  // SHA-1
		strings.Repeat("f", 64),  // SHA-256
		strings.Repeat("9", 128), // SHA-512
		strings.Repeat("A", 64),  // uppercase hex
	}
	for _, hash := range valid {
		cmd := base
		cmd.ProofHash = hash
		if err := cmd.Validate(); err != nil {
			t.Fatalf("hash of length %d should be accepted: %v", len(hash), err)
		}
	}

	invalid := []string{
		"",
		strings.Repeat("a", 31),
		strings.Repeat("a", 65),
		strings.Repeat("g", 64),
		strings.Repeat("a", 63) + "!",
	}
	for _, hash := range invalid {
		cmd := base
		cmd.ProofHash = hash
		if err := cmd.Validate(); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("hash %q should be rejected, got %v", hash, err)
		}
	}
}

func TestSubmitActionCommandRequiredFields(t *testing.T) {
	hash := strings.Repeat("a", 64)

	cmd := SubmitActionCommand{PersonID: "not-a-uuid", ActivityID: domain.NewActivityID().String(), Description: "d", ProofHash: hash}
	if err := cmd.Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("bad person id should be rejected, got %v", err)
	}

	cmd = SubmitActionCommand{PersonID: domain.NewPersonID().String(), ActivityID: domain.NewActivityID().String(), Description: "   ", ProofHash: hash}
	if err := cmd.Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("blank description should be rejected, got %v", err)
	}
}

func TestCreateActivityCommandValidation(t *testing.T) {
	lead := domain.NewPersonID().String()

	cases := []struct {
		name string
		cmd  CreateActivityCommand
		ok   bool
	}{
		{"valid", CreateActivityCommand{Name: "Garden duty", Description: "Water plants", Points: 10, LeadID: lead}, true},
		{"empty name", CreateActivityCommand{Name: " ", Description: "d", Points: 10, LeadID: lead}, false},
		{"empty description", CreateActivityCommand{Name: "n", Description: "", Points: 10, LeadID: lead}, false},
		{"zero points", CreateActivityCommand{Name: "n", Description: "d", Points: 0, LeadID: lead}, false},
		{"negative points", CreateActivityCommand{Name: "n", Description: "d", Points: -5, LeadID: lead}, false},
		{"bad lead id", CreateActivityCommand{Name: "n", Description: "d", Points: 10, LeadID: "nope"}, false},
	}
	for _, tc := range cases {
		err := tc.cmd.Validate()
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestRegisterPersonCommandValidation(t *testing.T) {
	cases := []struct {
		name string
		cmd  RegisterPersonCommand
		ok   bool
	}{
		{"member", RegisterPersonCommand{Name: "Mika", Email: "mika@example.com", Role: "MEMBER"}, true},
		{"lead", RegisterPersonCommand{Name: "Noa", Email: "noa@example.com", Role: "LEAD"}, true},
		{"empty name", RegisterPersonCommand{Name: "", Email: "a@b.c", Role: "MEMBER"}, false},
		{"bad email", RegisterPersonCommand{Name: "Mika", Email: "not-an-email", Role: "MEMBER"}, false},
		{"bad role", RegisterPersonCommand{Name: "Mika", Email: "a@b.c", Role: "ADMIN"}, false},
	}
	for _, tc := range cases {
		err := tc.cmd.Validate()
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}
