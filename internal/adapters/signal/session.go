package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/duetapp/duet/internal/domain"
)

func (ctl *Controller) handleStart(
	cid domain.ClientID,
	conn *wsConn,
	data []byte,
) {
	type startPayload struct {
		Type        string              `json:"type"`
		Preferences *domain.Preferences `json:"preferences,omitempty"`
	}
	var p startPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad start payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	if p.Preferences != nil {
		if err := ctl.validate.Struct(p.Preferences); err != nil {
			log.Warn().Err(err).Str("module", "signal").Str("cid", string(cid)).
				Msg("invalid preferences")
			ctl.sendError(conn, "bad_payload")
			return
		}
	}

	log.Info().Str("module", "signal").Str("cid", string(cid)).Msg("start search")
	ctl.broker.Start(cid, p.Preferences)
}

func (ctl *Controller) handleCancel(cid domain.ClientID) {
	log.Info().Str("module", "signal").Str("cid", string(cid)).Msg("cancel search")
	ctl.broker.Cancel(cid)
}

func (ctl *Controller) handlePing(conn *wsConn) {
	resp := struct {
		Type string `json:"type"`
	}{
		Type: "pong",
	}
	ctl.sendJSON(conn, resp)
}
