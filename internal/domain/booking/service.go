package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// EventKind names a lifecycle change that the other party should hear about.
type EventKind string

const (
	EventCreated   EventKind = "created"
	EventConfirmed EventKind = "confirmed"
	EventCancelled EventKind = "cancelled"
	EventCompleted EventKind = "completed"
)

// Actor identifies which side triggered a cancellation.
type Actor string

const (
	ActorClient       Actor = "client"
	ActorPhotographer Actor = "photographer"
)

// Event describes a lifecycle change for delivery to the counterparty.
type Event struct {
	Kind    EventKind
	Actor   Actor
	Details Details
}

// Notifier delivers lifecycle events to the affected party. Delivery is
// best effort: a failed notification never rolls back the state change.
type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// Ledger drives the booking lifecycle on top of the repository.
type Ledger struct {
	repo     Repository
	notifier Notifier
	log      zerolog.Logger
}

func NewLedger(repo Repository, notifier Notifier, log zerolog.Logger) *Ledger {
	return &Ledger{repo: repo, notifier: notifier, log: log}
}

// Create reserves the window and records a new booking awaiting the
// photographer's decision. The photographer is notified best effort.
func (l *Ledger) Create(ctx context.Context, clientID, photographerID, serviceID int64, start, end time.Time) (*Booking, error) {
	if !start.Before(end) {
		return nil, ErrInvalidWindow
	}

	b := &Booking{
		ClientID:       clientID,
		PhotographerID: photographerID,
		ServiceID:      serviceID,
		BookingStart:   start,
		BookingEnd:     end,
	}
	if err := l.repo.CreateIfFree(ctx, b); err != nil {
		return nil, err
	}

	l.notify(ctx, b.ID, EventCreated, ActorClient)
	return b, nil
}

// Confirm moves a new booking to confirmed and tells the client. A booking
// in any other state is left untouched and nobody is notified.
func (l *Ledger) Confirm(ctx context.Context, id int64) (bool, error) {
	changed, err := l.repo.UpdateStatusIf(ctx, id, []Status{StatusNew}, StatusConfirmed)
	if err != nil || !changed {
		return changed, err
	}

	l.notify(ctx, id, EventConfirmed, ActorPhotographer)
	return true, nil
}

// Cancel releases the window. Either side may cancel a new or confirmed
// booking; the other side is told who did it.
func (l *Ledger) Cancel(ctx context.Context, id int64, by Actor) (bool, error) {
	changed, err := l.repo.UpdateStatusIf(ctx, id, []Status{StatusNew, StatusConfirmed}, StatusCancelled)
	if err != nil || !changed {
		return changed, err
	}

	l.notify(ctx, id, EventCancelled, by)
	return true, nil
}

// Complete marks a confirmed booking as done and tells the client.
func (l *Ledger) Complete(ctx context.Context, id int64) (bool, error) {
	changed, err := l.repo.UpdateStatusIf(ctx, id, []Status{StatusConfirmed}, StatusCompleted)
	if err != nil || !changed {
		return changed, err
	}

	l.notify(ctx, id, EventCompleted, ActorPhotographer)
	return true, nil
}

// Details exposes the joined view for presentation.
func (l *Ledger) Details(ctx context.Context, id int64) (*Details, error) {
	return l.repo.DetailsByID(ctx, id)
}

func (l *Ledger) ForPhotographer(ctx context.Context, photographerID int64, filter ListFilter) ([]Details, error) {
	return l.repo.ListForPhotographer(ctx, photographerID, filter)
}

func (l *Ledger) ForClient(ctx context.Context, clientID int64) ([]Details, error) {
	return l.repo.ListForClient(ctx, clientID)
}

func (l *Ledger) notify(ctx context.Context, id int64, kind EventKind, actor Actor) {
	if l.notifier == nil {
		return
	}

	d, err := l.repo.DetailsByID(ctx, id)
	if err != nil {
		l.log.Error().Err(err).Int64("booking_id", id).Msg("load details for notification")
		return
	}

	if err := l.notifier.Notify(ctx, Event{Kind: kind, Actor: actor, Details: *d}); err != nil {
		l.log.Error().Err(err).Int64("booking_id", id).Str("event", string(kind)).Msg("notify counterparty")
	}
}
