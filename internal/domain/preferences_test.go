package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duetapp/duet/internal/domain"
)

func TestNormalizeDefaultsToCasual(t *testing.T) {
	var p *domain.Preferences
	assert.Equal(t, domain.ModeCasual, p.Normalize().Mode)

	p = &domain.Preferences{Interests: []string{"music"}}
	normalized := p.Normalize()
	assert.Equal(t, domain.ModeCasual, normalized.Mode)
	assert.Equal(t, []string{"music"}, normalized.Interests)

	p = &domain.Preferences{Mode: domain.ModeConnections}
	assert.Equal(t, domain.ModeConnections, p.Normalize().Mode)
}

func TestAgeRangeOverlaps(t *testing.T) {
	a := domain.AgeRange{Min: 20, Max: 30}

	assert.True(t, a.Overlaps(domain.AgeRange{Min: 25, Max: 40}))
	assert.True(t, a.Overlaps(domain.AgeRange{Min: 30, Max: 35}), "bounds are inclusive")
	assert.True(t, a.Overlaps(domain.AgeRange{Min: 10, Max: 20}))
	assert.False(t, a.Overlaps(domain.AgeRange{Min: 31, Max: 40}))
	assert.False(t, a.Overlaps(domain.AgeRange{Min: 10, Max: 19}))
}

func TestLookingForAccepts(t *testing.T) {
	assert.True(t, domain.LookingForAny.Accepts(domain.GenderMale))
	assert.True(t, domain.LookingFor("").Accepts(domain.GenderFemale))
	assert.True(t, domain.LookingForFemale.Accepts(domain.GenderFemale))
	assert.False(t, domain.LookingForFemale.Accepts(domain.GenderMale))
	assert.False(t, domain.LookingForFemale.Accepts(""))
}

func TestRoomRoleAndPartnerHelpers(t *testing.T) {
	room := domain.NewRoom("a", &domain.Preferences{Mode: domain.ModeCasual})
	assert.True(t, room.Available)
	assert.True(t, room.Contains("a"))
	assert.False(t, room.Contains(""))

	role, ok := room.RoleOf("a")
	assert.True(t, ok)
	assert.Equal(t, domain.RoleP1, role)

	assert.Empty(t, room.Partner("a"), "no partner while waiting")

	room.P2 = domain.Slot{ID: "b"}
	room.Available = false
	assert.Equal(t, domain.ClientID("b"), room.Partner("a"))
	assert.Equal(t, domain.ClientID("a"), room.Partner("b"))
	role, _ = room.RoleOf("b")
	assert.Equal(t, domain.RoleP2, role)
}

func TestMatchThreadHelpers(t *testing.T) {
	m := domain.NewMatch("a", "b", []string{"music"}, []string{"movies"})

	assert.True(t, m.Has("a"))
	assert.False(t, m.Has("c"))
	assert.Equal(t, domain.ClientID("b"), m.Other("a").ID)

	m.Append("a", "one")
	m.Append("b", "two")
	m.Append("b", "three")

	assert.Equal(t, 2, m.UnreadFor("a"))
	assert.Equal(t, 1, m.UnreadFor("b"))
}
