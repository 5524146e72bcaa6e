// Package domain contains entities without logic, just meta-data.
package domain

// Mode selects the matching strategy a participant asked for.
type Mode string

const (
	ModeCasual      Mode = "casual"
	ModeConnections Mode = "connections"
)

// Gender is what a participant says they are.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// LookingFor is the gender a participant wants to be paired with.
// LookingForAny (or empty) disables the filter.
type LookingFor string

const (
	LookingForMale   LookingFor = "male"
	LookingForFemale LookingFor = "female"
	LookingForAny    LookingFor = "any"
)

type AgeRange struct {
	Min int `json:"min" validate:"gte=0"`
	Max int `json:"max" validate:"gtefield=Min"`
}

// Overlaps reports whether the two inclusive ranges share at least one age.
func (a AgeRange) Overlaps(b AgeRange) bool {
	return a.Max >= b.Min && b.Max >= a.Min
}

// Preferences describe what a participant is looking for in one search
// attempt. Immutable once submitted; the registry stores the pointer as-is.
type Preferences struct {
	Mode       Mode       `json:"mode" validate:"omitempty,oneof=casual connections"`
	Interests  []string   `json:"interests" validate:"max=32,dive,min=1,max=64"`
	AgeRange   *AgeRange  `json:"ageRange,omitempty"`
	Gender     Gender     `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	LookingFor LookingFor `json:"lookingFor,omitempty" validate:"omitempty,oneof=male female any"`
}

// Normalize coerces an absent or partially filled payload into a usable
// value: nil preferences and an unset mode both mean a casual search.
func (p *Preferences) Normalize() *Preferences {
	if p == nil {
		return &Preferences{Mode: ModeCasual}
	}
	if p.Mode == "" {
		p.Mode = ModeCasual
	}
	return p
}

// Accepts reports whether the wanted gender admits the candidate's.
func (l LookingFor) Accepts(g Gender) bool {
	if l == "" || l == LookingForAny {
		return true
	}
	return string(l) == string(g)
}
