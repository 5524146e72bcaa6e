package app

import (
	"github.com/samber/lo"

	"github.com/duetapp/duet/internal/domain"
)

const (
	sharedInterestWeight = 10
	ageOverlapBonus      = 5
	genderMatchBonus     = 3
)

// Score rates how well a waiting candidate fits a seeker. The second return
// is false when the pair is incompatible outright: different modes, or a
// failed gender requirement in connections mode. A hard rejection is not the
// same as a zero score; rejected rooms must never be paired, however empty
// the alternatives.
//
// Scores have no absolute meaning, they are only compared within one
// pairing attempt.
func Score(seeker, candidate *domain.Preferences) (int, bool) {
	if seeker == nil || candidate == nil {
		return 0, false
	}
	if seeker.Mode != candidate.Mode {
		return 0, false
	}

	// Connections mode filters on gender before any scoring. The check is
	// mutual: both sides must accept each other.
	if seeker.Mode == domain.ModeConnections {
		if !seeker.LookingFor.Accepts(candidate.Gender) {
			return 0, false
		}
		if !candidate.LookingFor.Accepts(seeker.Gender) {
			return 0, false
		}
	}

	score := sharedInterestWeight * len(lo.Intersect(seeker.Interests, candidate.Interests))

	if seeker.AgeRange != nil && candidate.AgeRange != nil && seeker.AgeRange.Overlaps(*candidate.AgeRange) {
		score += ageOverlapBonus
	}
	if seeker.LookingFor != "" && candidate.Gender != "" && string(seeker.LookingFor) == string(candidate.Gender) {
		score += genderMatchBonus
	}
	if candidate.LookingFor != "" && seeker.Gender != "" && string(candidate.LookingFor) == string(seeker.Gender) {
		score += genderMatchBonus
	}
	return score, true
}
