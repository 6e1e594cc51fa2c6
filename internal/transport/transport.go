// Package transport defines the chat-platform boundary. The engine talks
// to clients and photographers only through these types; the concrete
// delivery (a websocket gateway bridged to a messenger) stays behind the
// Transport interface.
package transport

import "context"

// Kind distinguishes free text from a tapped control.
type Kind string

const (
	KindMessage Kind = "message"
	KindAction  Kind = "action"
)

// Contact is what the platform knows about the sender.
type Contact struct {
	Name   string `json:"name"`
	Handle string `json:"handle"`
}

// Inbound is one turn from a chat: either a text message or an action
// token from a tapped control.
type Inbound struct {
	ChatID int64 `json:"chat_id"`
	Kind   Kind  `json:"kind"`
	// Text is set for messages
	Text string `json:"text,omitempty"`
	// Token is set for actions, at most 64 bytes
	Token string `json:"token,omitempty"`
	// MessageRef identifies the message the control was attached to
	MessageRef string `json:"message_ref,omitempty"`
	// EventRef acknowledges the action back to the platform
	EventRef string  `json:"event_ref,omitempty"`
	From     Contact `json:"from"`
}

// Control is one tappable element attached to a message. Token round-trips
// back as an action; URL controls open a link instead.
type Control struct {
	Label string `json:"label"`
	Token string `json:"token,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Message is an outbound message. Controls are laid out in rows; Menu is a
// persistent reply keyboard of plain labels.
type Message struct {
	Text     string      `json:"text"`
	Controls [][]Control `json:"controls,omitempty"`
	Menu     [][]string  `json:"menu,omitempty"`
}

// Transport delivers messages to a chat.
type Transport interface {
	// Send posts a new message to the chat.
	Send(ctx context.Context, chatID int64, msg Message) error
	// Edit replaces the text and controls of an earlier message.
	Edit(ctx context.Context, chatID int64, messageRef string, msg Message) error
	// Ack confirms an action so the platform stops its progress indicator.
	Ack(ctx context.Context, eventRef string) error
}

// Handler consumes inbound turns.
type Handler interface {
	Handle(ctx context.Context, in Inbound)
}
