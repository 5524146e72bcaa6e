package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/duetapp/duet/internal/app"
	"github.com/duetapp/duet/internal/domain"
)

// The descriptor channel carries offers and answers alike; the broker never
// looks inside either.
func (ctl *Controller) handleSDP(
	cid domain.ClientID,
	conn *wsConn,
	data []byte,
) {
	type sdpPayload struct {
		Type string          `json:"type"`
		SDP  json.RawMessage `json:"sdp"`
	}
	var p sdpPayload
	if err := json.Unmarshal(data, &p); err != nil || len(p.SDP) == 0 {
		log.Error().Err(err).Str("module", "signal").Msg("bad sdp payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	ctl.broker.RelaySignal(cid, app.SignalSDP, p.SDP)
}

func (ctl *Controller) handleICE(
	cid domain.ClientID,
	conn *wsConn,
	data []byte,
) {
	type icePayload struct {
		Type      string          `json:"type"`
		Candidate json.RawMessage `json:"candidate"`
	}
	var p icePayload
	if err := json.Unmarshal(data, &p); err != nil || len(p.Candidate) == 0 {
		log.Error().Err(err).Str("module", "signal").Msg("bad candidate payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	ctl.broker.RelaySignal(cid, app.SignalCandidate, p.Candidate)
}

func (ctl *Controller) handleRoomMessage(
	cid domain.ClientID,
	conn *wsConn,
	data []byte,
) {
	type messagePayload struct {
		Type string `json:"type"`
		Text string `json:"input"`
		Room string `json:"roomid"`
	}
	var p messagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad message payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	if p.Text == "" || len(p.Text) > domain.MaxMessageLen || p.Room == "" {
		ctl.sendError(conn, "bad_payload")
		return
	}
	ctl.broker.RoomChat(cid, domain.RoomID(p.Room), p.Text)
}
