package conversation

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/artik0811/vkr-photostudio/internal/domain/booking"
	"github.com/artik0811/vkr-photostudio/internal/domain/client"
	"github.com/artik0811/vkr-photostudio/internal/domain/photographer"
	"github.com/artik0811/vkr-photostudio/internal/domain/schedule"
	"github.com/artik0811/vkr-photostudio/internal/domain/service"
	"github.com/artik0811/vkr-photostudio/internal/domain/session"
	"github.com/artik0811/vkr-photostudio/internal/transport"
)

// Engine is the conversation state machine. Every inbound turn loads the
// chat's session under its lock, interprets the turn against the current
// step, and stores the session back.
type Engine struct {
	sessions      session.Store
	clients       client.Repository
	photographers photographer.Repository
	services      service.Repository
	hours         schedule.Repository
	availability  *schedule.Availability
	ledger        *booking.Ledger
	transport     transport.Transport
	address       string
	log           zerolog.Logger
}

type Config struct {
	Sessions      session.Store
	Clients       client.Repository
	Photographers photographer.Repository
	Services      service.Repository
	Hours         schedule.Repository
	Availability  *schedule.Availability
	Ledger        *booking.Ledger
	Transport     transport.Transport
	StudioAddress string
	Logger        zerolog.Logger
}

func NewEngine(cfg Config) *Engine {
	return &Engine{
		sessions:      cfg.Sessions,
		clients:       cfg.Clients,
		photographers: cfg.Photographers,
		services:      cfg.Services,
		hours:         cfg.Hours,
		availability:  cfg.Availability,
		ledger:        cfg.Ledger,
		transport:     cfg.Transport,
		address:       cfg.StudioAddress,
		log:           cfg.Logger,
	}
}

// Handle implements transport.Handler.
func (e *Engine) Handle(ctx context.Context, in transport.Inbound) {
	e.sessions.Lock(in.ChatID)
	defer e.sessions.Unlock(in.ChatID)

	s, err := e.sessions.Get(ctx, in.ChatID)
	if err != nil {
		e.log.Error().Err(err).Int64("chat_id", in.ChatID).Msg("load session")
		return
	}

	switch in.Kind {
	case transport.KindMessage:
		e.handleMessage(ctx, s, in)
	case transport.KindAction:
		e.handleAction(ctx, s, in)
		if in.EventRef != "" {
			if err := e.transport.Ack(ctx, in.EventRef); err != nil {
				e.log.Debug().Err(err).Msg("ack failed")
			}
		}
	}

	if err := e.sessions.Put(ctx, s); err != nil {
		e.log.Error().Err(err).Int64("chat_id", in.ChatID).Msg("store session")
	}
}

func (e *Engine) send(ctx context.Context, chatID int64, msg transport.Message) {
	if err := e.transport.Send(ctx, chatID, msg); err != nil {
		e.log.Error().Err(err).Int64("chat_id", chatID).Msg("send failed")
	}
}

func (e *Engine) edit(ctx context.Context, chatID int64, messageRef string, msg transport.Message) {
	if messageRef == "" {
		e.send(ctx, chatID, msg)
		return
	}
	if err := e.transport.Edit(ctx, chatID, messageRef, msg); err != nil {
		e.log.Error().Err(err).Int64("chat_id", chatID).Msg("edit failed")
	}
}

func clientMenu() [][]string {
	return [][]string{
		{menuSelectService},
		{menuPersonalCabinet},
	}
}

func cabinetMenu() [][]string {
	return [][]string{
		{menuBookingHistory},
		{menuChangeName},
		{menuRevokeConsent},
		{menuBack},
	}
}

func photographerMenu() [][]string {
	return [][]string{
		{menuMySchedule, menuMyBookings},
		{menuChangePortfolio, menuChangeDescription},
	}
}
