package conversation

import (
	"context"
	"fmt"

	"github.com/artik0811/vkr-photostudio/internal/domain/booking"
	"github.com/artik0811/vkr-photostudio/internal/transport"
)

// Notifier delivers booking lifecycle events to the counterparty's chat.
// Created events go to the photographer, everything else to the client,
// except cancellations which go to whichever side did not act.
type Notifier struct {
	transport transport.Transport
}

func NewNotifier(t transport.Transport) *Notifier {
	return &Notifier{transport: t}
}

func (n *Notifier) Notify(ctx context.Context, e booking.Event) error {
	chatID, err := n.recipient(e)
	if err != nil {
		return err
	}

	text := eventText(e)
	if text == "" {
		return nil
	}

	var controls [][]transport.Control
	if e.Kind == booking.EventCreated {
		controls = [][]transport.Control{{
			{Label: "✅ Confirm", Token: confirmBookingToken(e.Details.ID)},
			{Label: "❌ Decline", Token: rejectBookingToken(e.Details.ID)},
		}}
	}

	return n.transport.Send(ctx, chatID, transport.Message{Text: text, Controls: controls})
}

func (n *Notifier) recipient(e booking.Event) (int64, error) {
	toPhotographer := e.Kind == booking.EventCreated ||
		(e.Kind == booking.EventCancelled && e.Actor == booking.ActorClient)

	if toPhotographer {
		if e.Details.PhotographerExternal == nil {
			return 0, fmt.Errorf("photographer %d has no chat", e.Details.PhotographerID)
		}
		return *e.Details.PhotographerExternal, nil
	}

	return e.Details.ClientExternalID, nil
}
