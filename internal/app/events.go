package app

import (
	"encoding/json"

	"github.com/duetapp/duet/internal/domain"
)

// Outbound events. Type values match what deployed clients already listen
// for; the adapter only ever marshals what the broker hands it.

type OnlineEvent struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type RoleEvent struct {
	Type string      `json:"type"`
	Role domain.Role `json:"role"`
}

type RoomAssignedEvent struct {
	Type string        `json:"type"`
	Room domain.RoomID `json:"roomid"`
}

type PartnerEvent struct {
	Type string          `json:"type"`
	ID   domain.ClientID `json:"id"`
}

type SDPReplyEvent struct {
	Type string          `json:"type"`
	SDP  json.RawMessage `json:"sdp"`
	From domain.ClientID `json:"from"`
}

type ICEReplyEvent struct {
	Type      string          `json:"type"`
	Candidate json.RawMessage `json:"candidate"`
	From      domain.ClientID `json:"from"`
}

type RoomChatEvent struct {
	Type  string `json:"type"`
	Text  string `json:"input"`
	Label string `json:"label"`
}

type PartnerDisconnectedEvent struct {
	Type string `json:"type"`
}

type LikeReceivedEvent struct {
	Type string          `json:"type"`
	From domain.ClientID `json:"from"`
}

type MatchFormedEvent struct {
	Type      string             `json:"type"`
	MatchID   domain.MatchID     `json:"matchId"`
	OtherUser domain.Participant `json:"otherUser"`
}

type MatchMessageEvent struct {
	Type    string              `json:"type"`
	MatchID domain.MatchID      `json:"matchId"`
	Message *domain.ChatMessage `json:"message"`
}

type MatchesReadEvent struct {
	Type    string         `json:"type"`
	MatchID domain.MatchID `json:"matchId"`
}

type UnmatchedEvent struct {
	Type    string         `json:"type"`
	MatchID domain.MatchID `json:"matchId"`
}

type MatchListEvent struct {
	Type    string      `json:"type"`
	Matches []MatchView `json:"matches"`
}
