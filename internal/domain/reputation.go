package domain

import "math"

const (
	pointsPerVerifiedAction = 10
	leadRoleModifier        = 1.2
	memberRoleModifier      = 1.0
	roleUpgradeThreshold    = 50
)

// ReputationService holds the reputation and scoring rules that span
// aggregates. All methods are pure.
type ReputationService struct{}

func NewReputationService() *ReputationService {
	return &ReputationService{}
}

// RoleModifier returns the point multiplier for a role: 1.2 for leads,
// 1.0 for members.
func (s *ReputationService) RoleModifier(role Role) float64 {
	if role == RoleLead {
		return leadRoleModifier
	}
	return memberRoleModifier
}

// PersonReputation computes a person's full reputation score from their
// verified actions: 10 points per action, with the role modifier applied
// and the result floored.
func (s *ReputationService) PersonReputation(person *Person, verifiedActions []*Action) int {
	if len(verifiedActions) == 0 {
		return 0
	}
	score := int(math.Floor(float64(len(verifiedActions)) * pointsPerVerifiedAction * s.RoleModifier(person.Role())))
	if score < 0 {
		return 0
	}
	return score
}

// ValidationAward is the incremental award for one newly validated action.
// The reputation event handler delegates here so the role-modifier rule has
// a single home.
func (s *ReputationService) ValidationAward(role Role) int {
	return int(math.Floor(pointsPerVerifiedAction * s.RoleModifier(role)))
}

// ActivityScore measures engagement on one activity: each matching action
// contributes 1 point, plus 2 more when verified.
func (s *ReputationService) ActivityScore(activity *Activity, actions []*Action) int {
	score := 0
	for _, action := range actions {
		if action.ActivityID() != activity.ID() {
			continue
		}
		score++
		if action.IsVerified() {
			score += 2
		}
	}
	return score
}

// EligibleForRoleUpgrade reports whether a member qualifies for promotion.
// Leads are never eligible; members need 50 verified actions.
func (s *ReputationService) EligibleForRoleUpgrade(person *Person, verifiedActions []*Action) bool {
	if person.Role() == RoleLead {
		return false
	}
	return len(verifiedActions) >= roleUpgradeThreshold
}
