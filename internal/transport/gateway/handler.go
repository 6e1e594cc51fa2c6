package gateway

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/artik0811/vkr-photostudio/internal/transport"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBufferSize = 256
)

// Handler upgrades bridge connections and pumps frames between the
// websocket and the engine.
type Handler struct {
	hub      *Hub
	engine   transport.Handler
	token    string
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, engine transport.Handler, token string, allowedOrigins []string) *Handler {
	return &Handler{
		hub:    hub,
		engine: engine,
		token:  token,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")

				// Bridges are server processes; no origin is fine.
				if origin == "" || len(allowedOrigins) == 0 {
					return true
				}

				for _, allowed := range allowedOrigins {
					if origin == allowed {
						return true
					}
				}

				log.Warn().Str("origin", origin).Msg("gateway origin rejected")
				return false
			},
		},
	}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/ws", h.Connect)
	return r
}

// Connect handles GET /gateway/ws
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("gateway upgrade failed")
		return
	}

	c := &Connection{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
	h.hub.Register(c)

	go h.writePump(c)
	go h.readPump(c)
}

func (h *Handler) authorized(r *http.Request) bool {
	if h.token == "" {
		return true
	}

	header := r.Header.Get("Authorization")
	presented := strings.TrimPrefix(header, "Bearer ")
	if presented == header {
		// Browsers cannot set headers on websocket upgrades, so the
		// token may ride in the query string instead.
		presented = r.URL.Query().Get("token")
	}

	return subtle.ConstantTimeCompare([]byte(presented), []byte(h.token)) == 1
}

// readPump decodes inbound frames and hands them to the engine. The
// engine is called synchronously so turns from one connection stay in
// arrival order.
func (h *Handler) readPump(c *Connection) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error().Err(err).Msg("gateway read error")
			}
			return
		}

		wsInboundFramesTotal.Add(1)

		var in transport.Inbound
		if err := json.Unmarshal(raw, &in); err != nil {
			wsInboundRejectsTotal.Add(1)
			log.Debug().Err(err).Msg("malformed inbound frame")
			continue
		}
		if in.ChatID == 0 || (in.Kind != transport.KindMessage && in.Kind != transport.KindAction) {
			wsInboundRejectsTotal.Add(1)
			continue
		}

		h.engine.Handle(h.hub.ctx, in)
	}
}

// writePump flushes outbound frames and keeps the connection alive with
// pings.
func (h *Handler) writePump(c *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
