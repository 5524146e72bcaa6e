package app

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/duetapp/duet/internal/core"
	"github.com/duetapp/duet/internal/domain"
)

// SignalKind selects the relay channel for a negotiation payload. Offers and
// answers travel the descriptor channel; the wire does not tell them apart.
type SignalKind string

const (
	SignalSDP       SignalKind = "sdp"
	SignalCandidate SignalKind = "candidate"
)

// Sender labels shown to the room-chat recipient, keyed by the sender's role.
var chatLabels = map[domain.Role]string{
	domain.RoleP1: "You: ",
	domain.RoleP2: "Stranger: ",
}

// Broker is the single entry point for inbound participant events. It owns
// all process state: the room registry, the match table and the online
// counter. One mutex serializes every event, so each handler runs to
// completion before the next starts and the owned structures need no
// locking of their own.
type Broker struct {
	mu      sync.Mutex
	rooms   *RoomRegistry
	matches *MatchTable
	online  int

	sender core.Sender
}

func NewBroker(sender core.Sender) *Broker {
	return &Broker{
		rooms:   NewRoomRegistry(),
		matches: NewMatchTable(),
		sender:  sender,
	}
}

// Connect registers a new participant and broadcasts the online count.
func (b *Broker) Connect(id domain.ClientID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.online++
	b.sender.Broadcast(OnlineEvent{Type: "online", Count: b.online})
	log.Info().Str("module", "app.broker").Str("cid", string(id)).
		Int("online", b.online).Msg("participant connected")
}

// Disconnect removes the participant everywhere a connection can leave
// state: the online counter and their room, promoting or destroying it as
// needed. Matches deliberately survive; their ids just go stale.
func (b *Broker) Disconnect(id domain.ClientID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.online--
	b.sender.Broadcast(OnlineEvent{Type: "online", Count: b.online})

	dep := b.rooms.Disconnect(id)
	if dep.Partner != "" {
		b.sender.To(dep.Partner, PartnerDisconnectedEvent{Type: "disconnected"})
	}
	if dep.Room != nil {
		log.Info().Str("module", "app.broker").Str("cid", string(id)).
			Str("room", string(dep.Room.ID)).Bool("promoted", dep.Promoted).
			Bool("destroyed", dep.Destroyed).Msg("participant left room")
	}
}

// Start runs one pairing attempt. The joiner learns its role and room, and
// on a successful pairing both sides learn each other's id within this same
// handling step.
func (b *Broker) Start(id domain.ClientID, prefs *domain.Preferences) {
	b.mu.Lock()
	defer b.mu.Unlock()

	placement, err := b.rooms.FindOrCreate(id, prefs.Normalize())
	if err != nil {
		log.Warn().Err(err).Str("module", "app.broker").Str("cid", string(id)).
			Msg("pairing attempt dropped")
		return
	}

	b.sender.To(id, RoleEvent{Type: "role", Role: placement.Role})
	b.sender.To(id, RoomAssignedEvent{Type: "roomid", Room: placement.Room.ID})
	if placement.JoinedExisting {
		partner := placement.Room.P1.ID
		b.sender.To(partner, PartnerEvent{Type: "remote-socket", ID: id})
		b.sender.To(id, PartnerEvent{Type: "remote-socket", ID: partner})
	}
}

// Cancel aborts an in-progress search. Nothing is emitted: no partner was
// ever assigned, so there is nobody to notify.
func (b *Broker) Cancel(id domain.ClientID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rooms.Cancel(id)
}

// RelaySignal forwards an opaque negotiation payload to the sender's
// partner. A missing room or empty partner slot means the sender raced a
// disconnect; the payload is dropped without comment.
func (b *Broker) RelaySignal(id domain.ClientID, kind SignalKind, payload json.RawMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()

	room := b.rooms.RoomOf(id)
	if room == nil {
		return
	}
	partner := room.Partner(id)
	if partner == "" {
		return
	}
	switch kind {
	case SignalSDP:
		b.sender.To(partner, SDPReplyEvent{Type: "sdp:reply", SDP: payload, From: id})
	case SignalCandidate:
		b.sender.To(partner, ICEReplyEvent{Type: "ice:reply", Candidate: payload, From: id})
	default:
		log.Warn().Str("module", "app.broker").Str("kind", string(kind)).Msg("unknown signal kind")
	}
}

// RoomChat relays a text line to the other occupant of the room, labeled
// with the sender's role.
func (b *Broker) RoomChat(id domain.ClientID, roomID domain.RoomID, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	room, ok := b.rooms.RoomByID(roomID)
	if !ok {
		return
	}
	role, ok := room.RoleOf(id)
	if !ok {
		return
	}
	partner := room.Partner(id)
	if partner == "" {
		return
	}
	b.sender.To(partner, RoomChatEvent{Type: "get-message", Text: text, Label: chatLabels[role]})
}

// Like records a like from id towards to. A reciprocal like forms a match
// whose participant interests come from the room's recorded preferences;
// otherwise the target is told who liked them and the like stays pending.
func (b *Broker) Like(id, to domain.ClientID, roomID domain.RoomID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var fromInterests, toInterests []string
	if room, ok := b.rooms.RoomByID(roomID); ok {
		if slot, ok := room.SlotOf(id); ok && slot.Prefs != nil {
			fromInterests = slot.Prefs.Interests
		}
		if slot, ok := room.SlotOf(to); ok && slot.Prefs != nil {
			toInterests = slot.Prefs.Interests
		}
	}

	m := b.matches.Like(id, to, fromInterests, toInterests)
	if m == nil {
		b.sender.To(to, LikeReceivedEvent{Type: "like:received", From: id})
		return
	}
	b.sender.To(id, MatchFormedEvent{Type: "match:mutual", MatchID: m.ID, OtherUser: m.Other(id)})
	b.sender.To(to, MatchFormedEvent{Type: "match:mutual", MatchID: m.ID, OtherUser: m.Other(to)})
}

// MatchMessage appends to a match thread and delivers the message to the
// other participant. Stale match ids and non-participants are benign no-ops.
func (b *Broker) MatchMessage(id domain.ClientID, matchID domain.MatchID, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	msg, ok := b.matches.PostMessage(matchID, id, text)
	if !ok {
		log.Debug().Str("module", "app.broker").Str("match", string(matchID)).
			Str("cid", string(id)).Msg("message to stale or foreign match dropped")
		return
	}
	m, _ := b.matches.Get(matchID)
	b.sender.To(m.Other(id).ID, MatchMessageEvent{Type: "match:message", MatchID: matchID, Message: msg})
}

// MarkRead acknowledges the whole thread and tells the other side their
// messages were seen.
func (b *Broker) MarkRead(id domain.ClientID, matchID domain.MatchID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	other, _, ok := b.matches.MarkRead(matchID, id)
	if !ok {
		return
	}
	b.sender.To(other, MatchesReadEvent{Type: "match:messages_read", MatchID: matchID})
}

// Unmatch dissolves a match on behalf of one of its participants and tells
// both sides. The conversation thread is gone for good.
func (b *Broker) Unmatch(id domain.ClientID, matchID domain.MatchID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	m, ok := b.matches.Unmatch(matchID, id)
	if !ok {
		return
	}
	b.sender.To(id, UnmatchedEvent{Type: "match:unmatched", MatchID: matchID})
	b.sender.To(m.Other(id).ID, UnmatchedEvent{Type: "match:unmatched", MatchID: matchID})
}

// ListMatches sends the requester their matches in creation order.
func (b *Broker) ListMatches(id domain.ClientID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sender.To(id, MatchListEvent{Type: "matches:list", Matches: b.matches.ListFor(id)})
}
