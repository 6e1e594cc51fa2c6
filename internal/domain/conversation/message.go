package conversation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/artik0811/vkr-photostudio/internal/domain/client"
	"github.com/artik0811/vkr-photostudio/internal/domain/schedule"
	"github.com/artik0811/vkr-photostudio/internal/domain/session"
	"github.com/artik0811/vkr-photostudio/internal/transport"
)

func (e *Engine) handleMessage(ctx context.Context, s *session.Session, in transport.Inbound) {
	text := strings.TrimSpace(in.Text)

	if text == "/start" {
		e.start(ctx, s, in)
		return
	}

	switch s.Step {
	case session.StepRegistration:
		e.captureName(ctx, s, in, text)
		return
	case session.StepChangeName:
		e.changeName(ctx, s, text)
		return
	case session.StepCustomHours:
		e.customHours(ctx, s, text)
		return
	case session.StepChangeDescription:
		e.changeDescription(ctx, s, text)
		return
	case session.StepChangePortfolio:
		e.changePortfolio(ctx, s, text)
		return
	}

	switch s.Role {
	case session.RoleClient:
		e.clientMenuTurn(ctx, s, text)
	case session.RolePhotographer:
		e.photographerMenuTurn(ctx, s, text)
	default:
		e.send(ctx, s.ChatID, transport.Message{Text: textSessionLost})
	}
}

// start re-detects the role on every /start. A photographer identity wins
// over a client one; an unknown identity enters registration.
func (e *Engine) start(ctx context.Context, s *session.Session, in transport.Inbound) {
	chatID := s.ChatID
	*s = *session.New(chatID)

	if p, err := e.photographers.GetByExternalID(ctx, chatID); err == nil {
		s.Role = session.RolePhotographer
		s.PhotographerID = p.ID
		s.Step = session.StepPhotographerMenu
		e.send(ctx, chatID, transport.Message{Text: textPhotographerMenu, Menu: photographerMenu()})
		return
	}

	if c, err := e.clients.GetByExternalID(ctx, chatID); err == nil {
		s.Role = session.RoleClient
		s.ClientID = c.ID
		s.Step = session.StepMainMenu
		e.send(ctx, chatID, transport.Message{Text: textMainMenu, Menu: clientMenu()})
		return
	}

	s.Step = session.StepRegistration
	e.send(ctx, chatID, transport.Message{Text: textAskName})
}

// captureName stashes the name and asks for consent. The client row is
// only written once the consent control comes back.
func (e *Engine) captureName(ctx context.Context, s *session.Session, in transport.Inbound, text string) {
	if len(strings.TrimSpace(text)) < 2 {
		e.send(ctx, s.ChatID, transport.Message{Text: textNameTooShort})
		return
	}

	s.PendingName = text
	s.PendingUser = in.From.Handle

	e.send(ctx, s.ChatID, transport.Message{
		Text: textConsent,
		Controls: [][]transport.Control{
			{{Label: textConsentButton, Token: tokenAgree}},
		},
	})
}

func (e *Engine) changeName(ctx context.Context, s *session.Session, text string) {
	if err := e.clients.UpdateName(ctx, s.ChatID, text); err != nil {
		if errors.Is(err, client.ErrNameTooShort) {
			e.send(ctx, s.ChatID, transport.Message{Text: textNameTooShort})
			return
		}
		e.log.Error().Err(err).Int64("chat_id", s.ChatID).Msg("update name")
		e.send(ctx, s.ChatID, transport.Message{Text: textSessionLost})
		return
	}

	s.Step = session.StepPersonalCabinet
	e.send(ctx, s.ChatID, transport.Message{Text: textNameChanged, Menu: cabinetMenu()})
}

func (e *Engine) customHours(ctx context.Context, s *session.Session, text string) {
	start, end, ok := parseHoursText(text)
	if !ok {
		e.send(ctx, s.ChatID, transport.Message{Text: textBadHours})
		return
	}

	e.saveWorkingHours(ctx, s, start, end)
}

func (e *Engine) saveWorkingHours(ctx context.Context, s *session.Session, start, end int) {
	if s.ScheduleDate == nil {
		e.send(ctx, s.ChatID, transport.Message{Text: textSessionLost})
		return
	}

	err := e.hours.Upsert(ctx, schedule.WorkingHours{
		PhotographerID: s.PhotographerID,
		Date:           *s.ScheduleDate,
		StartHour:      start,
		EndHour:        end,
	})
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidHours) {
			e.send(ctx, s.ChatID, transport.Message{Text: textBadHours})
			return
		}
		e.log.Error().Err(err).Int64("chat_id", s.ChatID).Msg("save working hours")
		e.send(ctx, s.ChatID, transport.Message{Text: textSessionLost})
		return
	}

	s.ScheduleDate = nil
	s.Step = session.StepPhotographerMenu
	e.send(ctx, s.ChatID, transport.Message{Text: textScheduleSaved, Menu: photographerMenu()})
}

func (e *Engine) changeDescription(ctx context.Context, s *session.Session, text string) {
	if err := e.photographers.UpdateDescription(ctx, s.PhotographerID, text); err != nil {
		e.log.Error().Err(err).Int64("chat_id", s.ChatID).Msg("update description")
		e.send(ctx, s.ChatID, transport.Message{Text: textSessionLost})
		return
	}

	s.Step = session.StepPhotographerMenu
	e.send(ctx, s.ChatID, transport.Message{Text: textDescriptionSaved, Menu: photographerMenu()})
}

func (e *Engine) changePortfolio(ctx context.Context, s *session.Session, text string) {
	if err := e.photographers.UpdatePortfolio(ctx, s.PhotographerID, text); err != nil {
		e.log.Error().Err(err).Int64("chat_id", s.ChatID).Msg("update portfolio")
		e.send(ctx, s.ChatID, transport.Message{Text: textSessionLost})
		return
	}

	s.Step = session.StepPhotographerMenu
	e.send(ctx, s.ChatID, transport.Message{Text: textPortfolioSaved, Menu: photographerMenu()})
}

func (e *Engine) clientMenuTurn(ctx context.Context, s *session.Session, text string) {
	switch text {
	case menuSelectService:
		e.showServices(ctx, s, "")

	case menuPersonalCabinet:
		s.Step = session.StepPersonalCabinet
		e.send(ctx, s.ChatID, transport.Message{Text: textCabinet, Menu: cabinetMenu()})

	case menuBookingHistory:
		e.showClientBookings(ctx, s, 0, "")

	case menuChangeName:
		s.Step = session.StepChangeName
		e.send(ctx, s.ChatID, transport.Message{Text: textAskNewName})

	case menuRevokeConsent:
		e.send(ctx, s.ChatID, transport.Message{
			Text: textRevokeQuestion,
			Controls: [][]transport.Control{
				{{Label: textRevokeConfirm, Token: revokeConsentToken(true)}},
				{{Label: textRevokeCancel, Token: revokeConsentToken(false)}},
			},
		})

	case menuBack:
		s.Step = session.StepMainMenu
		e.send(ctx, s.ChatID, transport.Message{Text: textMainMenu, Menu: clientMenu()})

	default:
		e.send(ctx, s.ChatID, transport.Message{Text: textMainMenu, Menu: clientMenu()})
	}
}

func (e *Engine) photographerMenuTurn(ctx context.Context, s *session.Session, text string) {
	switch text {
	case menuMySchedule:
		e.showScheduleCalendar(ctx, s, time.Now(), "")

	case menuMyBookings:
		e.send(ctx, s.ChatID, transport.Message{
			Text: textBookingsWhich,
			Controls: [][]transport.Control{{
				{Label: labelNewBookings, Token: tokenNewBookings},
				{Label: labelUpcoming, Token: tokenUpcoming},
				{Label: labelAllBookings, Token: tokenAllBookings},
			}},
		})

	case menuChangePortfolio:
		s.Step = session.StepChangePortfolio
		e.send(ctx, s.ChatID, transport.Message{Text: textAskPortfolio})

	case menuChangeDescription:
		s.Step = session.StepChangeDescription
		e.send(ctx, s.ChatID, transport.Message{Text: textAskDescription})

	default:
		s.Step = session.StepPhotographerMenu
		e.send(ctx, s.ChatID, transport.Message{Text: textPhotographerMenu, Menu: photographerMenu()})
	}
}
