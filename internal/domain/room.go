package domain

import "github.com/google/uuid"

type (
	// ClientID is the transport connection identifier. It is stable for the
	// lifetime of one connection and never survives a reconnect.
	ClientID string
	RoomID   string
)

// Role names a slot inside a room. The first arrival is p1, the joiner p2.
type Role string

const (
	RoleP1 Role = "p1"
	RoleP2 Role = "p2"
)

// Slot is one occupant position of a room. A zero ClientID means empty.
type Slot struct {
	ID    ClientID
	Prefs *Preferences
}

func (s Slot) Occupied() bool { return s.ID != "" }

// Room is a two-slot pairing container. Available is true iff exactly one
// slot is occupied (the occupant is waiting for a partner).
type Room struct {
	ID        RoomID
	Available bool
	P1        Slot
	P2        Slot
}

// NewRoom creates a waiting room with the given participant in slot p1.
func NewRoom(id ClientID, prefs *Preferences) *Room {
	return &Room{
		ID:        RoomID(uuid.NewString()),
		Available: true,
		P1:        Slot{ID: id, Prefs: prefs},
	}
}

func (r *Room) Contains(id ClientID) bool {
	return id != "" && (r.P1.ID == id || r.P2.ID == id)
}

// RoleOf returns the role the participant holds in this room.
func (r *Room) RoleOf(id ClientID) (Role, bool) {
	if id == "" {
		return "", false
	}
	switch id {
	case r.P1.ID:
		return RoleP1, true
	case r.P2.ID:
		return RoleP2, true
	}
	return "", false
}

// SlotOf returns the slot the participant occupies.
func (r *Room) SlotOf(id ClientID) (Slot, bool) {
	role, ok := r.RoleOf(id)
	if !ok {
		return Slot{}, false
	}
	if role == RoleP1 {
		return r.P1, true
	}
	return r.P2, true
}

// Partner returns the occupant of the other slot, empty if there is none.
func (r *Room) Partner(id ClientID) ClientID {
	if id == "" {
		return ""
	}
	switch id {
	case r.P1.ID:
		return r.P2.ID
	case r.P2.ID:
		return r.P1.ID
	}
	return ""
}
