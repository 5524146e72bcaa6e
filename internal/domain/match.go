package domain

import (
	"time"

	"github.com/google/uuid"
)

type (
	MatchID   string
	MessageID string
)

// MaxMessageLen bounds the text of a single chat message, in bytes.
const MaxMessageLen = 2000

// Participant is one side of a match, captured at match time. The ID goes
// stale once the underlying connection drops; the thread is kept anyway.
type Participant struct {
	ID        ClientID `json:"socketId"`
	Interests []string `json:"interests"`
	LastSeen  int64    `json:"lastSeen"`
}

// ChatMessage is one entry of a match conversation thread. Read flips in
// place when the recipient acknowledges the thread.
type ChatMessage struct {
	ID        MessageID `json:"id"`
	MatchID   MatchID   `json:"matchId"`
	SenderID  ClientID  `json:"senderId"`
	Text      string    `json:"text"`
	Timestamp int64     `json:"timestamp"`
	Read      bool      `json:"read"`
}

// Match is a mutually confirmed pairing with its own conversation thread.
// It outlives the room that produced it and any participant connection.
type Match struct {
	ID        MatchID        `json:"matchId"`
	A         Participant    `json:"user1"`
	B         Participant    `json:"user2"`
	CreatedAt int64          `json:"timestamp"`
	Messages  []*ChatMessage `json:"messages"`
}

// NewMatch pairs two participants with their interests as known right now.
func NewMatch(a, b ClientID, aInterests, bInterests []string) *Match {
	now := NowMillis()
	return &Match{
		ID:        MatchID(uuid.NewString()),
		A:         Participant{ID: a, Interests: aInterests, LastSeen: now},
		B:         Participant{ID: b, Interests: bInterests, LastSeen: now},
		CreatedAt: now,
	}
}

func (m *Match) Has(id ClientID) bool {
	return m.A.ID == id || m.B.ID == id
}

// Other returns the participant that is not id. Callers must have checked
// membership with Has first.
func (m *Match) Other(id ClientID) Participant {
	if m.A.ID == id {
		return m.B
	}
	return m.A
}

// Append adds a message to the thread and returns it.
func (m *Match) Append(sender ClientID, text string) *ChatMessage {
	msg := &ChatMessage{
		ID:        MessageID(uuid.NewString()),
		MatchID:   m.ID,
		SenderID:  sender,
		Text:      text,
		Timestamp: NowMillis(),
		Read:      false,
	}
	m.Messages = append(m.Messages, msg)
	return msg
}

// UnreadFor counts messages the given participant has not read yet.
func (m *Match) UnreadFor(id ClientID) int {
	n := 0
	for _, msg := range m.Messages {
		if msg.SenderID != id && !msg.Read {
			n++
		}
	}
	return n
}

// NowMillis is the wire timestamp format (milliseconds since epoch).
func NowMillis() int64 { return time.Now().UnixMilli() }
