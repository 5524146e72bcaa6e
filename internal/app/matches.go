package app

import (
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/duetapp/duet/internal/domain"
)

// MatchTable tracks pending one-directional likes and the matches formed
// from reciprocal ones. Matches outlive rooms and connections; nothing here
// is ever expired, only consumed or explicitly dissolved.
//
// Like the registry, the table relies on the Broker's event mutex for
// serialization.
type MatchTable struct {
	matches map[domain.MatchID]*domain.Match
	order   []domain.MatchID

	// pending maps a like's target to the set of participants who liked
	// them. An entry is consumed the instant it forms a match.
	pending map[domain.ClientID]map[domain.ClientID]struct{}
}

func NewMatchTable() *MatchTable {
	return &MatchTable{
		matches: make(map[domain.MatchID]*domain.Match),
		pending: make(map[domain.ClientID]map[domain.ClientID]struct{}),
	}
}

// Like records a directed like. When the target had already liked the
// sender, the pending entry is consumed and the returned match is the newly
// formed one; otherwise nil is returned and the like stays pending.
func (t *MatchTable) Like(from, to domain.ClientID, fromInterests, toInterests []string) *domain.Match {
	if likers, ok := t.pending[from]; ok {
		if _, hit := likers[to]; hit {
			delete(likers, to)
			if len(likers) == 0 {
				delete(t.pending, from)
			}
			m := domain.NewMatch(from, to, fromInterests, toInterests)
			t.matches[m.ID] = m
			t.order = append(t.order, m.ID)
			log.Info().Str("module", "app.matches").Str("match", string(m.ID)).
				Str("a", string(from)).Str("b", string(to)).Msg("mutual match formed")
			return m
		}
	}
	if t.pending[to] == nil {
		t.pending[to] = make(map[domain.ClientID]struct{})
	}
	t.pending[to][from] = struct{}{}
	return nil
}

func (t *MatchTable) Get(id domain.MatchID) (*domain.Match, bool) {
	m, ok := t.matches[id]
	return m, ok
}

// HasPending reports whether from has a pending like towards to.
func (t *MatchTable) HasPending(from, to domain.ClientID) bool {
	_, ok := t.pending[to][from]
	return ok
}

// Unmatch deletes the match entirely, conversation included. Only a match
// participant may dissolve it; anyone else gets a no-op.
func (t *MatchTable) Unmatch(id domain.MatchID, requester domain.ClientID) (*domain.Match, bool) {
	m, ok := t.matches[id]
	if !ok || !m.Has(requester) {
		return nil, false
	}
	delete(t.matches, id)
	t.order = lo.Without(t.order, id)
	log.Info().Str("module", "app.matches").Str("match", string(id)).
		Str("cid", string(requester)).Msg("match dissolved")
	return m, true
}

// PostMessage appends a message to the thread. Returns false when the match
// does not exist or the sender is not part of it.
func (t *MatchTable) PostMessage(id domain.MatchID, sender domain.ClientID, text string) (*domain.ChatMessage, bool) {
	m, ok := t.matches[id]
	if !ok || !m.Has(sender) {
		return nil, false
	}
	return m.Append(sender, text), true
}

// MarkRead flips read on every message the reader did not send and returns
// the other participant so they can be told their messages were seen.
func (t *MatchTable) MarkRead(id domain.MatchID, reader domain.ClientID) (domain.ClientID, int, bool) {
	m, ok := t.matches[id]
	if !ok || !m.Has(reader) {
		return "", 0, false
	}
	marked := 0
	for _, msg := range m.Messages {
		if msg.SenderID != reader && !msg.Read {
			msg.Read = true
			marked++
		}
	}
	return m.Other(reader).ID, marked, true
}

// MatchView is the per-requester projection of a match.
type MatchView struct {
	MatchID     domain.MatchID        `json:"matchId"`
	OtherUser   domain.Participant    `json:"otherUser"`
	Messages    []*domain.ChatMessage `json:"messages"`
	UnreadCount int                   `json:"unreadCount"`
}

// ListFor returns the requester's matches in creation order, each annotated
// with the number of messages they have not read.
func (t *MatchTable) ListFor(requester domain.ClientID) []MatchView {
	views := make([]MatchView, 0, len(t.order))
	for _, id := range t.order {
		m := t.matches[id]
		if !m.Has(requester) {
			continue
		}
		views = append(views, MatchView{
			MatchID:     m.ID,
			OtherUser:   m.Other(requester),
			Messages:    m.Messages,
			UnreadCount: m.UnreadFor(requester),
		})
	}
	return views
}
