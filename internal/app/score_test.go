package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duetapp/duet/internal/app"
	"github.com/duetapp/duet/internal/domain"
)

func prefs(mode domain.Mode, interests ...string) *domain.Preferences {
	return &domain.Preferences{Mode: mode, Interests: interests}
}

func TestScoreRejectsMissingOrMismatchedMode(t *testing.T) {
	_, ok := app.Score(nil, prefs(domain.ModeCasual))
	assert.False(t, ok, "nil seeker must be rejected")

	_, ok = app.Score(prefs(domain.ModeCasual), nil)
	assert.False(t, ok, "nil candidate must be rejected")

	_, ok = app.Score(prefs(domain.ModeCasual), prefs(domain.ModeConnections))
	assert.False(t, ok, "different modes must be rejected")
}

func TestScoreGenderHardFilterIsMutual(t *testing.T) {
	seeker := &domain.Preferences{
		Mode:       domain.ModeConnections,
		Gender:     domain.GenderMale,
		LookingFor: domain.LookingForFemale,
	}
	candidate := &domain.Preferences{
		Mode:       domain.ModeConnections,
		Gender:     domain.GenderMale,
		LookingFor: domain.LookingForFemale,
	}

	// Seeker wants a woman, candidate is a man.
	_, ok := app.Score(seeker, candidate)
	assert.False(t, ok)

	// Candidate now fits the seeker but the candidate's own requirement
	// still fails: compatibility must hold in both directions.
	candidate.Gender = domain.GenderFemale
	candidate.LookingFor = domain.LookingForFemale
	_, ok = app.Score(seeker, candidate)
	assert.False(t, ok)

	candidate.LookingFor = domain.LookingForMale
	score, ok := app.Score(seeker, candidate)
	assert.True(t, ok)
	assert.Equal(t, 6, score, "mutual gender bonus on both sides")
}

func TestScoreHighInterestOverlapCannotBypassGenderFilter(t *testing.T) {
	seeker := &domain.Preferences{
		Mode:       domain.ModeConnections,
		Interests:  []string{"music", "movies", "hiking", "food"},
		LookingFor: domain.LookingForFemale,
	}
	candidate := &domain.Preferences{
		Mode:      domain.ModeConnections,
		Interests: []string{"music", "movies", "hiking", "food"},
		Gender:    domain.GenderMale,
	}
	_, ok := app.Score(seeker, candidate)
	assert.False(t, ok, "rejection is hard, not a low score")
}

func TestScoreLookingForAnyPasses(t *testing.T) {
	seeker := &domain.Preferences{Mode: domain.ModeConnections, LookingFor: domain.LookingForAny}
	candidate := &domain.Preferences{Mode: domain.ModeConnections, Gender: domain.GenderOther}
	_, ok := app.Score(seeker, candidate)
	assert.True(t, ok)
}

func TestScoreCasualModeSkipsGenderFilter(t *testing.T) {
	seeker := &domain.Preferences{
		Mode:       domain.ModeCasual,
		Interests:  []string{"music"},
		LookingFor: domain.LookingForFemale,
	}
	candidate := &domain.Preferences{
		Mode:      domain.ModeCasual,
		Interests: []string{"music"},
		Gender:    domain.GenderMale,
	}
	score, ok := app.Score(seeker, candidate)
	assert.True(t, ok, "casual mode never hard-filters on gender")
	assert.Equal(t, 10, score)
}

func TestScoreArithmetic(t *testing.T) {
	seeker := &domain.Preferences{
		Mode:       domain.ModeConnections,
		Interests:  []string{"music", "movies", "books"},
		AgeRange:   &domain.AgeRange{Min: 20, Max: 30},
		Gender:     domain.GenderFemale,
		LookingFor: domain.LookingForMale,
	}
	candidate := &domain.Preferences{
		Mode:       domain.ModeConnections,
		Interests:  []string{"movies", "music", "sports"},
		AgeRange:   &domain.AgeRange{Min: 28, Max: 40},
		Gender:     domain.GenderMale,
		LookingFor: domain.LookingForFemale,
	}
	score, ok := app.Score(seeker, candidate)
	assert.True(t, ok)
	// 2 shared interests ×10, overlapping ages +5, both gender bonuses +3+3.
	assert.Equal(t, 31, score)
}

func TestScoreNoAgeBonusWhenOnlyOneRangePresent(t *testing.T) {
	seeker := &domain.Preferences{Mode: domain.ModeCasual, AgeRange: &domain.AgeRange{Min: 20, Max: 30}}
	candidate := prefs(domain.ModeCasual)
	score, ok := app.Score(seeker, candidate)
	assert.True(t, ok)
	assert.Zero(t, score)
}
