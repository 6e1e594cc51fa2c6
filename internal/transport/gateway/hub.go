package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/artik0811/vkr-photostudio/internal/transport"
)

var (
	wsConnectionsGauge    = expvar.NewInt("gateway_connections")
	wsFramesSentTotal     = expvar.NewInt("gateway_frames_sent_total")
	wsFramesDroppedTotal  = expvar.NewInt("gateway_frames_dropped_total")
	wsInboundFramesTotal  = expvar.NewInt("gateway_inbound_frames_total")
	wsInboundRejectsTotal = expvar.NewInt("gateway_inbound_rejects_total")
)

// ErrNoBridge is returned when no bridge connection is attached to carry
// an outbound frame.
var ErrNoBridge = errors.New("no bridge connected")

// frameType is the outbound frame discriminator on the wire.
type frameType string

const (
	frameSend frameType = "send"
	frameEdit frameType = "edit"
	frameAck  frameType = "ack"
)

// outboundFrame is what the hub writes to bridge connections.
type outboundFrame struct {
	Type       frameType          `json:"type"`
	ChatID     int64              `json:"chat_id,omitempty"`
	MessageRef string             `json:"message_ref,omitempty"`
	EventRef   string             `json:"event_ref,omitempty"`
	Message    *transport.Message `json:"message,omitempty"`
}

// Connection is one attached bridge process.
type Connection struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans outbound frames to attached bridge connections and feeds
// inbound frames to the engine. A bridge is the process that speaks the
// actual messenger protocol; any number may attach, each carrying a
// disjoint set of chats.
type Hub struct {
	mu          sync.RWMutex
	connections map[*Connection]bool

	register   chan *Connection
	unregister chan *Connection

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Run starts connection management. Call in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.connections[conn] = true
			h.mu.Unlock()
			wsConnectionsGauge.Add(1)
			log.Debug().Msg("bridge connected")

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.connections[conn]; ok {
				delete(h.connections, conn)
				close(conn.send)
				wsConnectionsGauge.Add(-1)
			}
			h.mu.Unlock()
			log.Debug().Msg("bridge disconnected")
		}
	}
}

// Register attaches a bridge connection.
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister detaches a bridge connection.
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// Send implements transport.Transport.
func (h *Hub) Send(ctx context.Context, chatID int64, msg transport.Message) error {
	return h.write(outboundFrame{Type: frameSend, ChatID: chatID, Message: &msg})
}

// Edit implements transport.Transport.
func (h *Hub) Edit(ctx context.Context, chatID int64, messageRef string, msg transport.Message) error {
	return h.write(outboundFrame{Type: frameEdit, ChatID: chatID, MessageRef: messageRef, Message: &msg})
}

// Ack implements transport.Transport.
func (h *Hub) Ack(ctx context.Context, eventRef string) error {
	return h.write(outboundFrame{Type: frameAck, EventRef: eventRef})
}

func (h *Hub) write(frame outboundFrame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.connections) == 0 {
		return ErrNoBridge
	}

	for conn := range h.connections {
		select {
		case conn.send <- data:
			wsFramesSentTotal.Add(1)
		default:
			// Buffer full, the bridge is stuck; drop rather than block.
			wsFramesDroppedTotal.Add(1)
			log.Warn().Msg("gateway send buffer full")
		}
	}

	return nil
}

// ConnectionCount returns the number of attached bridges.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Shutdown stops the hub.
func (h *Hub) Shutdown() {
	h.cancel()
}
