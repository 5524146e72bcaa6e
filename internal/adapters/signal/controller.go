package signal

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/duetapp/duet/internal/app"
	"github.com/duetapp/duet/internal/config"
	"github.com/duetapp/duet/internal/domain"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Controller owns every live websocket connection and is the transport the
// broker sends through. One instance serves all participants; identities are
// per-connection uuids, minted at upgrade time and discarded on close.
type Controller struct {
	broker   *app.Broker
	limiter  *rateLimiter
	validate *validator.Validate

	mu    sync.RWMutex
	conns map[domain.ClientID]*wsConn

	cfg *config.Config
}

func NewController(cfg *config.Config) *Controller {
	return &Controller{
		limiter:  newRateLimiter(cfg.EventLimit, cfg.EventWindow),
		validate: validator.New(),
		conns:    make(map[domain.ClientID]*wsConn),
		cfg:      cfg,
	}
}

// Attach wires the broker in after construction; controller and broker
// reference each other, so one of the two links has to be set late.
func (ctl *Controller) Attach(b *app.Broker) { ctl.broker = b }

// To delivers one event to one connection. Unknown ids and full queues are
// fire-and-forget no-ops, per the transport contract.
func (ctl *Controller) To(id domain.ClientID, v any) {
	ctl.mu.RLock()
	conn, ok := ctl.conns[id]
	ctl.mu.RUnlock()
	if !ok {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("marshal outbound event")
		return
	}
	if err := conn.TrySend(b); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("cid", string(id)).Msg("dropped outbound event")
	}
}

// Broadcast delivers one event to every live connection.
func (ctl *Controller) Broadcast(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("marshal broadcast event")
		return
	}
	ctl.mu.RLock()
	defer ctl.mu.RUnlock()
	for id, conn := range ctl.conns {
		if err := conn.TrySend(b); err != nil {
			log.Warn().Err(err).Str("module", "signal").Str("cid", string(id)).Msg("dropped broadcast event")
		}
	}
}

// HandleSignal upgrades the request and runs the connection until it drops.
func (ctl *Controller) HandleSignal(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	cid := domain.ClientID(uuid.NewString())
	log.Info().Str("module", "signal").Str("cid", string(cid)).
		Str("ct", c.GetString("client_token")).Msg("new WS connection")

	conn := newWSConn(ws)
	ctl.register(cid, conn)
	ctl.broker.Connect(cid)

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go func() {
		defer cancel()
		ctl.readPump(ctx, cid, conn)
		ctl.unregister(cid)
		ctl.broker.Disconnect(cid)
	}()
}

func (ctl *Controller) register(id domain.ClientID, conn *wsConn) {
	ctl.mu.Lock()
	ctl.conns[id] = conn
	ctl.mu.Unlock()
}

func (ctl *Controller) unregister(id domain.ClientID) {
	ctl.mu.Lock()
	delete(ctl.conns, id)
	ctl.mu.Unlock()
	ctl.limiter.Forget(id)
}

func (ctl *Controller) sendJSON(c *wsConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}

func (ctl *Controller) sendError(c *wsConn, reason string) {
	ctl.sendJSON(c, map[string]any{
		"type":  "error",
		"error": reason,
	})
}
