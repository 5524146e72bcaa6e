package app

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/duetapp/duet/internal/domain"
)

// ErrAlreadyPaired is returned when a participant who is still present in a
// room asks to be paired again. The arrival is dropped as a defensive no-op.
var ErrAlreadyPaired = errors.New("participant already occupies a room")

// Placement is the outcome of a pairing attempt.
type Placement struct {
	Room           *domain.Room
	Role           domain.Role
	JoinedExisting bool
}

// Departure is the outcome of removing a participant from the registry.
type Departure struct {
	Room      *domain.Room
	Partner   domain.ClientID
	Promoted  bool
	Destroyed bool
}

// RoomRegistry owns the room collection. The slice keeps creation order,
// which doubles as the score tie-break and the casual first-fit order.
//
// The registry is not safe for concurrent use on its own; the Broker
// serializes all access behind its event mutex.
type RoomRegistry struct {
	rooms []*domain.Room
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{}
}

func (r *RoomRegistry) Len() int { return len(r.rooms) }

// RoomOf returns the room currently holding the participant. It also flags
// the should-never-happen case of one id occupying two rooms.
func (r *RoomRegistry) RoomOf(id domain.ClientID) *domain.Room {
	var found *domain.Room
	for _, room := range r.rooms {
		if !room.Contains(id) {
			continue
		}
		if found != nil {
			log.Error().Str("module", "app.registry").Str("cid", string(id)).
				Str("room_a", string(found.ID)).Str("room_b", string(room.ID)).
				Msg("internal consistency: participant in two rooms")
			break
		}
		found = room
	}
	return found
}

func (r *RoomRegistry) RoomByID(id domain.RoomID) (*domain.Room, bool) {
	for _, room := range r.rooms {
		if room.ID == id {
			return room, true
		}
	}
	return nil, false
}

// FindOrCreate places an arriving participant: best-scoring available room
// in connections mode, first available same-mode room otherwise, a fresh
// room when nothing fits.
func (r *RoomRegistry) FindOrCreate(id domain.ClientID, prefs *domain.Preferences) (Placement, error) {
	if existing := r.RoomOf(id); existing != nil {
		return Placement{}, ErrAlreadyPaired
	}
	prefs = prefs.Normalize()

	if prefs.Mode == domain.ModeConnections {
		if room := r.bestScored(prefs); room != nil {
			return r.join(room, id, prefs), nil
		}
	}
	if room := r.firstFit(prefs); room != nil {
		return r.join(room, id, prefs), nil
	}

	room := domain.NewRoom(id, prefs)
	r.rooms = append(r.rooms, room)
	log.Info().Str("module", "app.registry").Str("cid", string(id)).
		Str("room", string(room.ID)).Str("mode", string(prefs.Mode)).Msg("created room")
	return Placement{Room: room, Role: domain.RoleP1}, nil
}

// bestScored scans every waiting room and keeps the strictly highest score.
// Earlier rooms win ties because the scan runs in creation order.
func (r *RoomRegistry) bestScored(prefs *domain.Preferences) *domain.Room {
	var best *domain.Room
	bestScore := -1
	for _, room := range r.rooms {
		if !room.Available || room.P1.Prefs == nil {
			continue
		}
		score, ok := Score(prefs, room.P1.Prefs)
		if !ok {
			continue
		}
		if score > bestScore {
			best, bestScore = room, score
		}
	}
	return best
}

// firstFit returns the earliest waiting room whose occupant searches in the
// same mode. Rooms the scorer rejected stay excluded: a failed gender
// requirement must not sneak back in through the fallback.
func (r *RoomRegistry) firstFit(prefs *domain.Preferences) *domain.Room {
	for _, room := range r.rooms {
		if !room.Available || room.P1.Prefs == nil || room.P1.Prefs.Mode != prefs.Mode {
			continue
		}
		if prefs.Mode == domain.ModeConnections {
			if _, ok := Score(prefs, room.P1.Prefs); !ok {
				continue
			}
		}
		return room
	}
	return nil
}

func (r *RoomRegistry) join(room *domain.Room, id domain.ClientID, prefs *domain.Preferences) Placement {
	room.P2 = domain.Slot{ID: id, Prefs: prefs}
	room.Available = false
	log.Info().Str("module", "app.registry").Str("cid", string(id)).
		Str("room", string(room.ID)).Msg("joined room")
	return Placement{Room: room, Role: domain.RoleP2, JoinedExisting: true}
}

// Disconnect removes the participant from their room. The p2 occupant is
// promoted into p1 when the latter leaves; the room id survives so an
// in-flight partner search can reuse it. The room is destroyed only when its
// last occupant leaves.
func (r *RoomRegistry) Disconnect(id domain.ClientID) Departure {
	if id == "" {
		return Departure{}
	}
	for i, room := range r.rooms {
		switch id {
		case room.P1.ID:
			dep := Departure{Room: room, Partner: room.P2.ID}
			if room.P2.Occupied() {
				room.P1 = room.P2
				room.P2 = domain.Slot{}
				room.Available = true
				dep.Promoted = true
				log.Info().Str("module", "app.registry").Str("room", string(room.ID)).
					Str("cid", string(room.P1.ID)).Msg("promoted p2 into p1")
			} else {
				r.remove(i)
				dep.Destroyed = true
			}
			return dep
		case room.P2.ID:
			dep := Departure{Room: room, Partner: room.P1.ID}
			if room.P1.Occupied() {
				room.P2 = domain.Slot{}
				room.Available = true
			} else {
				r.remove(i)
				dep.Destroyed = true
			}
			return dep
		}
	}
	return Departure{}
}

// Cancel removes the participant's room if they are its sole occupant.
// Unlike Disconnect it never promotes: a paired participant cannot cancel a
// search that already completed.
func (r *RoomRegistry) Cancel(id domain.ClientID) bool {
	for i, room := range r.rooms {
		if room.Available && room.P1.ID == id && !room.P2.Occupied() {
			r.remove(i)
			log.Info().Str("module", "app.registry").Str("cid", string(id)).
				Str("room", string(room.ID)).Msg("canceled search")
			return true
		}
	}
	return false
}

func (r *RoomRegistry) remove(i int) {
	r.rooms = append(r.rooms[:i], r.rooms[i+1:]...)
}
