package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/duetapp/duet/internal/domain"
)

func (ctl *Controller) handleLike(
	cid domain.ClientID,
	conn *wsConn,
	data []byte,
) {
	type likePayload struct {
		Type string `json:"type"`
		To   string `json:"to"`
		Room string `json:"roomId"`
	}
	var p likePayload
	if err := json.Unmarshal(data, &p); err != nil || p.To == "" {
		log.Error().Err(err).Str("module", "signal").Msg("bad like payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	if domain.ClientID(p.To) == cid {
		ctl.sendError(conn, "bad_payload")
		return
	}
	ctl.broker.Like(cid, domain.ClientID(p.To), domain.RoomID(p.Room))
}

func (ctl *Controller) handleMatchMessage(
	cid domain.ClientID,
	conn *wsConn,
	data []byte,
) {
	type matchMessagePayload struct {
		Type    string `json:"type"`
		MatchID string `json:"matchId"`
		Text    string `json:"text"`
	}
	var p matchMessagePayload
	if err := json.Unmarshal(data, &p); err != nil || p.MatchID == "" {
		log.Error().Err(err).Str("module", "signal").Msg("bad match message payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	if p.Text == "" || len(p.Text) > domain.MaxMessageLen {
		ctl.sendError(conn, "bad_payload")
		return
	}
	ctl.broker.MatchMessage(cid, domain.MatchID(p.MatchID), p.Text)
}

func (ctl *Controller) handleMatchRead(
	cid domain.ClientID,
	conn *wsConn,
	data []byte,
) {
	type matchReadPayload struct {
		Type    string `json:"type"`
		MatchID string `json:"matchId"`
	}
	var p matchReadPayload
	if err := json.Unmarshal(data, &p); err != nil || p.MatchID == "" {
		log.Error().Err(err).Str("module", "signal").Msg("bad match read payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	ctl.broker.MarkRead(cid, domain.MatchID(p.MatchID))
}

func (ctl *Controller) handleUnmatch(
	cid domain.ClientID,
	conn *wsConn,
	data []byte,
) {
	type unmatchPayload struct {
		Type    string `json:"type"`
		MatchID string `json:"matchId"`
	}
	var p unmatchPayload
	if err := json.Unmarshal(data, &p); err != nil || p.MatchID == "" {
		log.Error().Err(err).Str("module", "signal").Msg("bad unmatch payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	ctl.broker.Unmatch(cid, domain.MatchID(p.MatchID))
}

func (ctl *Controller) handleMatchesGet(cid domain.ClientID) {
	ctl.broker.ListMatches(cid)
}

// Deprecated: the one-way request/accept/reject exchange predates mutual
// likes and nothing consumes its outcome. Kept as a stateless passthrough
// for old clients; matches are only ever created by handleLike.
func (ctl *Controller) handleLegacyMatch(
	cid domain.ClientID,
	conn *wsConn,
	kind string,
	data []byte,
) {
	type legacyPayload struct {
		Type         string              `json:"type"`
		To           string              `json:"to"`
		ContactType  string              `json:"contactType,omitempty"`
		ContactValue string              `json:"contactValue,omitempty"`
		Preferences  *domain.Preferences `json:"userPreferences,omitempty"`
	}
	var p legacyPayload
	if err := json.Unmarshal(data, &p); err != nil || p.To == "" {
		log.Error().Err(err).Str("module", "signal").Msg("bad legacy match payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	to := domain.ClientID(p.To)

	switch kind {
	case "match:request":
		ctl.To(to, struct {
			Type         string              `json:"type"`
			From         domain.ClientID     `json:"from"`
			ContactType  string              `json:"contactType,omitempty"`
			ContactValue string              `json:"contactValue,omitempty"`
			Preferences  *domain.Preferences `json:"userPreferences,omitempty"`
		}{"match:request", cid, p.ContactType, p.ContactValue, p.Preferences})
	case "match:accept":
		ctl.To(to, struct {
			Type         string `json:"type"`
			ContactType  string `json:"contactType,omitempty"`
			ContactValue string `json:"contactValue,omitempty"`
		}{"match:accepted", p.ContactType, p.ContactValue})
	case "match:reject":
		ctl.To(to, struct {
			Type string `json:"type"`
		}{"match:rejected"})
	}
}
