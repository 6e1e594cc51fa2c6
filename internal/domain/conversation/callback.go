package conversation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/artik0811/vkr-photostudio/internal/domain/booking"
	"github.com/artik0811/vkr-photostudio/internal/domain/schedule"
	"github.com/artik0811/vkr-photostudio/internal/domain/session"
	"github.com/artik0811/vkr-photostudio/internal/transport"
)

type actionFunc func(e *Engine, ctx context.Context, s *session.Session, in transport.Inbound, args []string)

type actionHandler struct {
	// roles that may fire the action; nil means any role
	roles []session.Role
	fn    actionFunc
}

func (h actionHandler) allows(role session.Role) bool {
	if h.roles == nil {
		return true
	}
	for _, r := range h.roles {
		if r == role {
			return true
		}
	}
	return false
}

var (
	clientOnly       = []session.Role{session.RoleClient}
	photographerOnly = []session.Role{session.RolePhotographer}
)

// actionHandlers keys every token namespace to its handler and the roles
// allowed to use it. A token from the wrong role gets a polite refusal
// and never mutates state.
var actionHandlers = map[string]actionHandler{
	"agree":                 {fn: (*Engine).actAgree},
	"service":               {roles: clientOnly, fn: (*Engine).actService},
	"service_info":          {roles: clientOnly, fn: (*Engine).actServiceInfo},
	"photographer":          {roles: clientOnly, fn: (*Engine).actPhotographer},
	"photographer_info":     {roles: clientOnly, fn: (*Engine).actPhotographerInfo},
	"calendar":              {fn: (*Engine).actCalendar},
	"time":                  {roles: clientOnly, fn: (*Engine).actTime},
	"confirming":            {roles: clientOnly, fn: (*Engine).actConfirming},
	"back_to_services":      {roles: clientOnly, fn: (*Engine).actBackToServices},
	"back_to_photographers": {roles: clientOnly, fn: (*Engine).actBackToPhotographers},
	"back_to_calendar":      {roles: clientOnly, fn: (*Engine).actBackToCalendar},
	"client_bookings":       {roles: clientOnly, fn: (*Engine).actClientBookings},
	"client_reject_booking": {roles: clientOnly, fn: (*Engine).actClientReject},
	"revoke_consent":        {roles: clientOnly, fn: (*Engine).actRevokeConsent},
	"edit_schedule":         {roles: photographerOnly, fn: (*Engine).actEditSchedule},
	"working_hours":         {roles: photographerOnly, fn: (*Engine).actWorkingHours},
	"custom_hours":          {roles: photographerOnly, fn: (*Engine).actCustomHours},
	"new_bookings":          {roles: photographerOnly, fn: (*Engine).actNewBookings},
	"upcoming_bookings":     {roles: photographerOnly, fn: (*Engine).actUpcomingBookings},
	"all_bookings":          {roles: photographerOnly, fn: (*Engine).actAllBookings},
	"page_new":              {roles: photographerOnly, fn: (*Engine).actPageNew},
	"page_upcoming":         {roles: photographerOnly, fn: (*Engine).actPageUpcoming},
	"page_all":              {roles: photographerOnly, fn: (*Engine).actPageAll},
	"confirm_booking":       {roles: photographerOnly, fn: (*Engine).actConfirmBooking},
	"reject_booking":        {roles: photographerOnly, fn: (*Engine).actRejectBooking},
	"complete_booking":      {roles: photographerOnly, fn: (*Engine).actCompleteBooking},
}

func (e *Engine) handleAction(ctx context.Context, s *session.Session, in transport.Inbound) {
	token := in.Token
	if token == "" || token == tokenIgnore || len(token) > maxTokenLen {
		return
	}

	ns, args := splitToken(token)
	h, ok := actionHandlers[ns]
	if !ok {
		e.log.Debug().Str("token", token).Int64("chat_id", s.ChatID).Msg("unknown action token")
		return
	}
	if !h.allows(s.Role) {
		e.send(ctx, s.ChatID, transport.Message{Text: textUnknownCommand})
		return
	}

	h.fn(e, ctx, s, in, args)
}

// actAgree finishes registration: the consent tap is what actually writes
// the client row.
func (e *Engine) actAgree(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	if s.PendingName == "" {
		e.send(ctx, s.ChatID, transport.Message{Text: textSessionLost})
		return
	}

	c, err := e.clients.Upsert(ctx, s.ChatID, s.PendingName, s.PendingUser)
	if err != nil {
		e.log.Error().Err(err).Int64("chat_id", s.ChatID).Msg("register client")
		e.send(ctx, s.ChatID, transport.Message{Text: textSessionLost})
		return
	}

	s.Role = session.RoleClient
	s.ClientID = c.ID
	s.PendingName = ""
	s.PendingUser = ""
	s.Step = session.StepMainMenu
	e.send(ctx, s.ChatID, transport.Message{Text: textRegistered, Menu: clientMenu()})
}

func (e *Engine) actService(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	if len(args) != 1 {
		return
	}
	id, ok := parseID(args[0])
	if !ok {
		return
	}

	if _, err := e.services.GetByID(ctx, id); err != nil {
		e.send(ctx, s.ChatID, transport.Message{Text: textUnknownCommand})
		return
	}

	s.ServiceID = id
	e.showPhotographers(ctx, s, in.MessageRef)
}

func (e *Engine) actServiceInfo(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	if len(args) != 1 {
		return
	}
	id, ok := parseID(args[0])
	if !ok {
		return
	}

	svc, err := e.services.GetByID(ctx, id)
	if err != nil {
		return
	}

	comment := ""
	if svc.Comment != nil {
		comment = *svc.Comment
	}
	e.send(ctx, s.ChatID, transport.Message{Text: serviceCard(svc.Name, svc.Cost, svc.Duration, comment)})
}

func (e *Engine) actPhotographer(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	if len(args) != 1 {
		return
	}

	if args[0] == "any" {
		s.Photographer = session.PhotographerChoice{Kind: session.ChoiceAny}
	} else {
		id, ok := parseID(args[0])
		if !ok {
			return
		}
		if _, err := e.photographers.GetByID(ctx, id); err != nil {
			e.send(ctx, s.ChatID, transport.Message{Text: textUnknownCommand})
			return
		}
		s.Photographer = session.PhotographerChoice{Kind: session.ChoiceSpecific, ID: id}
	}

	now := time.Now()
	e.showBookingCalendar(ctx, s, now.Month(), now.Year(), in.MessageRef)
}

func (e *Engine) actPhotographerInfo(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	if len(args) != 1 {
		return
	}
	id, ok := parseID(args[0])
	if !ok {
		return
	}

	p, err := e.photographers.GetByID(ctx, id)
	if err != nil {
		return
	}

	description, portfolio := "", ""
	if p.Description != nil {
		description = *p.Description
	}
	if p.PortfolioURL != nil {
		portfolio = *p.PortfolioURL
	}
	e.send(ctx, s.ChatID, transport.Message{Text: photographerCard(p.Name, description, portfolio)})
}

func (e *Engine) actCalendar(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	if len(args) == 0 {
		return
	}

	editing := s.Role == session.RolePhotographer && s.Step == session.StepEditSchedule

	switch args[0] {
	case "select":
		if len(args) != 2 {
			return
		}
		day, ok := parseDateArg(args[1])
		if !ok {
			return
		}
		// A calendar rendered yesterday still has today's cells tappable,
		// so the token itself must be checked against today.
		now := time.Now().In(day.Location())
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, day.Location())
		if day.Before(today) {
			e.send(ctx, s.ChatID, transport.Message{Text: textPastDate})
			return
		}
		if editing {
			s.ScheduleDate = &day
			e.showHourPresets(ctx, s)
			return
		}
		if s.Role != session.RoleClient || s.Step != session.StepSelectingDate {
			return
		}
		s.SelectedDate = &day
		e.showSlots(ctx, s, in.MessageRef)

	case "prev_month", "next_month":
		month, year, ok := parseMonthYear(args[1:])
		if !ok {
			return
		}
		if editing {
			e.renderScheduleCalendar(ctx, s, month, year, in.MessageRef)
			return
		}
		if s.Role == session.RoleClient && s.Step == session.StepSelectingDate {
			e.showBookingCalendar(ctx, s, month, year, in.MessageRef)
		}
	}
}

func (e *Engine) actTime(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	if len(args) != 1 || s.Step != session.StepSelectingTime || s.SelectedDate == nil || s.ServiceID == 0 {
		return
	}
	start, end, ok := parseTimeArg(args[0])
	if !ok {
		return
	}

	s.StartHour = start
	s.EndHour = end

	svc, err := e.services.GetByID(ctx, s.ServiceID)
	if err != nil {
		e.send(ctx, s.ChatID, transport.Message{Text: textSessionLost})
		return
	}

	photographerName := textAnyPhotographer
	if s.Photographer.Kind == session.ChoiceSpecific {
		p, err := e.photographers.GetByID(ctx, s.Photographer.ID)
		if err != nil {
			e.send(ctx, s.ChatID, transport.Message{Text: textSessionLost})
			return
		}
		photographerName = p.Name
	}

	slot := schedule.Slot{StartHour: start, EndHour: end}
	s.Step = session.StepConfirmingBooking
	e.send(ctx, s.ChatID, transport.Message{
		Text: confirmationSummary(svc.Name, svc.Cost, photographerName, *s.SelectedDate, slot.Label(), e.address),
		Controls: [][]transport.Control{{
			{Label: "✅ Yes", Token: confirmingToken(true)},
			{Label: "❌ No", Token: confirmingToken(false)},
		}},
	})
}

func (e *Engine) actConfirming(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	if len(args) != 1 || s.Step != session.StepConfirmingBooking {
		return
	}

	if args[0] != "yes" {
		s.ResetBooking()
		s.Step = session.StepMainMenu
		e.send(ctx, s.ChatID, transport.Message{Text: textBookingCancelled, Menu: clientMenu()})
		return
	}

	if s.SelectedDate == nil || s.EndHour == 0 {
		e.send(ctx, s.ChatID, transport.Message{Text: textSessionLost})
		return
	}

	day := *s.SelectedDate
	slot := schedule.Slot{StartHour: s.StartHour, EndHour: s.EndHour}

	photographerID := s.Photographer.ID
	if s.Photographer.Kind == session.ChoiceAny {
		id, found, err := e.availability.FindAvailable(ctx, s.ServiceID, day, slot)
		if err != nil {
			e.log.Error().Err(err).Int64("chat_id", s.ChatID).Msg("auto-assign photographer")
			e.send(ctx, s.ChatID, transport.Message{Text: textSessionLost})
			return
		}
		if !found {
			s.Step = session.StepSelectingTime
			e.send(ctx, s.ChatID, transport.Message{Text: textSlotTaken})
			e.showSlots(ctx, s, "")
			return
		}
		photographerID = id
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), s.StartHour, 0, 0, 0, day.Location())
	end := time.Date(day.Year(), day.Month(), day.Day(), s.EndHour, 0, 0, 0, day.Location())

	_, err := e.ledger.Create(ctx, s.ClientID, photographerID, s.ServiceID, start, end)
	if err != nil {
		if errors.Is(err, booking.ErrSlotTaken) {
			s.Step = session.StepSelectingTime
			e.send(ctx, s.ChatID, transport.Message{Text: textSlotTaken})
			e.showSlots(ctx, s, "")
			return
		}
		e.log.Error().Err(err).Int64("chat_id", s.ChatID).Msg("create booking")
		e.send(ctx, s.ChatID, transport.Message{Text: textSessionLost})
		return
	}

	s.ResetBooking()
	s.Step = session.StepMainMenu
	e.send(ctx, s.ChatID, transport.Message{Text: textBookingRequested, Menu: clientMenu()})
}

func (e *Engine) actBackToServices(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	e.showServices(ctx, s, in.MessageRef)
}

func (e *Engine) actBackToPhotographers(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	if s.ServiceID == 0 {
		e.showServices(ctx, s, in.MessageRef)
		return
	}
	e.showPhotographers(ctx, s, in.MessageRef)
}

func (e *Engine) actBackToCalendar(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	now := time.Now()
	month, year := now.Month(), now.Year()
	if s.SelectedDate != nil {
		month, year = s.SelectedDate.Month(), s.SelectedDate.Year()
	}
	e.showBookingCalendar(ctx, s, month, year, in.MessageRef)
}

func (e *Engine) actClientBookings(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	p := 0
	if len(args) == 1 {
		if parsed, err := strconv.Atoi(args[0]); err == nil {
			p = parsed
		}
	}
	e.showClientBookings(ctx, s, p, in.MessageRef)
}

func (e *Engine) actClientReject(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	if len(args) != 1 {
		return
	}
	id, ok := parseID(args[0])
	if !ok {
		return
	}

	if !e.ownedByClient(ctx, s, id) {
		e.send(ctx, s.ChatID, transport.Message{Text: textUnknownCommand})
		return
	}

	changed, err := e.ledger.Cancel(ctx, id, booking.ActorClient)
	if err != nil {
		e.log.Error().Err(err).Int64("booking_id", id).Msg("client cancel")
		e.send(ctx, s.ChatID, transport.Message{Text: textSessionLost})
		return
	}
	if !changed {
		e.send(ctx, s.ChatID, transport.Message{Text: textAlreadyHandled})
		return
	}

	e.send(ctx, s.ChatID, transport.Message{Text: textYourBookingCancel})
}

func (e *Engine) actRevokeConsent(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	if len(args) != 1 {
		return
	}

	if args[0] != "confirm" {
		s.Step = session.StepPersonalCabinet
		e.send(ctx, s.ChatID, transport.Message{Text: textCabinet, Menu: cabinetMenu()})
		return
	}

	if err := e.clients.Archive(ctx, s.ChatID); err != nil {
		e.log.Error().Err(err).Int64("chat_id", s.ChatID).Msg("archive client")
		e.send(ctx, s.ChatID, transport.Message{Text: textSessionLost})
		return
	}

	*s = *session.New(s.ChatID)
	e.send(ctx, s.ChatID, transport.Message{Text: textRevoked})
}

func (e *Engine) actEditSchedule(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	e.showScheduleCalendar(ctx, s, time.Now(), in.MessageRef)
}

func (e *Engine) actWorkingHours(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	if len(args) != 2 {
		return
	}
	start, err1 := strconv.Atoi(args[0])
	end, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		return
	}

	e.saveWorkingHours(ctx, s, start, end)
}

func (e *Engine) actCustomHours(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	if s.ScheduleDate == nil {
		e.send(ctx, s.ChatID, transport.Message{Text: textSessionLost})
		return
	}
	s.Step = session.StepCustomHours
	e.send(ctx, s.ChatID, transport.Message{Text: textCustomHoursPrompt})
}

func (e *Engine) actNewBookings(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	e.showPhotographerBookings(ctx, s, booking.FilterNew, 0, in.MessageRef)
}

func (e *Engine) actUpcomingBookings(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	e.showPhotographerBookings(ctx, s, booking.FilterUpcoming, 0, in.MessageRef)
}

func (e *Engine) actAllBookings(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	e.showPhotographerBookings(ctx, s, booking.FilterAll, 0, in.MessageRef)
}

func (e *Engine) actPageNew(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	e.actPage(ctx, s, in, args, booking.FilterNew)
}

func (e *Engine) actPageUpcoming(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	e.actPage(ctx, s, in, args, booking.FilterUpcoming)
}

func (e *Engine) actPageAll(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	e.actPage(ctx, s, in, args, booking.FilterAll)
}

func (e *Engine) actPage(ctx context.Context, s *session.Session, in transport.Inbound, args []string, filter booking.ListFilter) {
	if len(args) != 1 {
		return
	}
	p, err := strconv.Atoi(args[0])
	if err != nil {
		return
	}
	e.showPhotographerBookings(ctx, s, filter, p, in.MessageRef)
}

func (e *Engine) actConfirmBooking(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	e.photographerDecision(ctx, s, args, func(ctx context.Context, id int64) (bool, error) {
		return e.ledger.Confirm(ctx, id)
	}, textBookingConfirmed)
}

func (e *Engine) actRejectBooking(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	e.photographerDecision(ctx, s, args, func(ctx context.Context, id int64) (bool, error) {
		return e.ledger.Cancel(ctx, id, booking.ActorPhotographer)
	}, textBookingDeclined)
}

func (e *Engine) actCompleteBooking(ctx context.Context, s *session.Session, in transport.Inbound, args []string) {
	e.photographerDecision(ctx, s, args, func(ctx context.Context, id int64) (bool, error) {
		return e.ledger.Complete(ctx, id)
	}, textBookingCompleted)
}

func (e *Engine) photographerDecision(ctx context.Context, s *session.Session, args []string, apply func(context.Context, int64) (bool, error), done string) {
	if len(args) != 1 {
		return
	}
	id, ok := parseID(args[0])
	if !ok {
		return
	}

	if !e.ownedByPhotographer(ctx, s, id) {
		e.send(ctx, s.ChatID, transport.Message{Text: textUnknownCommand})
		return
	}

	changed, err := apply(ctx, id)
	if err != nil {
		e.log.Error().Err(err).Int64("booking_id", id).Msg("booking decision")
		e.send(ctx, s.ChatID, transport.Message{Text: textSessionLost})
		return
	}
	if !changed {
		e.send(ctx, s.ChatID, transport.Message{Text: textAlreadyHandled})
		return
	}

	e.send(ctx, s.ChatID, transport.Message{Text: done})
}

func (e *Engine) ownedByClient(ctx context.Context, s *session.Session, bookingID int64) bool {
	d, err := e.ledger.Details(ctx, bookingID)
	return err == nil && d.ClientID == s.ClientID
}

func (e *Engine) ownedByPhotographer(ctx context.Context, s *session.Session, bookingID int64) bool {
	d, err := e.ledger.Details(ctx, bookingID)
	return err == nil && d.PhotographerID == s.PhotographerID
}

func (e *Engine) showServices(ctx context.Context, s *session.Session, messageRef string) {
	services, err := e.services.List(ctx)
	if err != nil {
		e.log.Error().Err(err).Msg("list services")
		e.send(ctx, s.ChatID, transport.Message{Text: textSessionLost})
		return
	}

	controls := make([][]transport.Control, 0, len(services))
	for _, svc := range services {
		controls = append(controls, []transport.Control{
			{Label: fmt.Sprintf("%s · %d ₽", svc.Name, svc.Cost), Token: serviceToken(svc.ID)},
			{Label: "ℹ️", Token: serviceInfoToken(svc.ID)},
		})
	}

	s.Step = session.StepSelectingService
	e.edit(ctx, s.ChatID, messageRef, transport.Message{Text: textChooseService, Controls: controls})
}

func (e *Engine) showPhotographers(ctx context.Context, s *session.Session, messageRef string) {
	photographers, err := e.photographers.ListByService(ctx, s.ServiceID)
	if err != nil {
		e.log.Error().Err(err).Msg("list photographers")
		e.send(ctx, s.ChatID, transport.Message{Text: textSessionLost})
		return
	}
	if len(photographers) == 0 {
		e.edit(ctx, s.ChatID, messageRef, transport.Message{
			Text: textNoPhotographers,
			Controls: [][]transport.Control{
				{{Label: menuBack, Token: tokenBackToServices}},
			},
		})
		return
	}

	controls := make([][]transport.Control, 0, len(photographers)+2)
	for _, p := range photographers {
		controls = append(controls, []transport.Control{
			{Label: p.Name, Token: photographerToken(p.ID)},
			{Label: "ℹ️", Token: photographerInfoToken(p.ID)},
		})
	}
	controls = append(controls,
		[]transport.Control{{Label: textAnyPhotographer, Token: photographerAnyToken()}},
		[]transport.Control{{Label: menuBack, Token: tokenBackToServices}},
	)

	s.Step = session.StepSelectingPhotographer
	e.edit(ctx, s.ChatID, messageRef, transport.Message{Text: textChoosePhotographer, Controls: controls})
}

func (e *Engine) showBookingCalendar(ctx context.Context, s *session.Session, month time.Month, year int, messageRef string) {
	now := time.Now()

	available := func(day time.Time) bool {
		var working bool
		var err error
		if s.Photographer.Kind == session.ChoiceSpecific {
			working, err = e.availability.IsWorkingDay(ctx, s.Photographer.ID, day)
		} else {
			working, err = e.availability.AnyWorkingDay(ctx, s.ServiceID, day)
		}
		if err != nil {
			e.log.Error().Err(err).Msg("check working day")
			return false
		}
		return working
	}

	grid := calendarGrid(month, year, now, available)
	grid = append(grid, []transport.Control{{Label: menuBack, Token: tokenBackToPhotogs}})

	s.Step = session.StepSelectingDate
	e.edit(ctx, s.ChatID, messageRef, transport.Message{Text: textChooseDate, Controls: grid})
}

func (e *Engine) showScheduleCalendar(ctx context.Context, s *session.Session, now time.Time, messageRef string) {
	s.Step = session.StepEditSchedule
	e.renderScheduleCalendar(ctx, s, now.Month(), now.Year(), messageRef)
}

func (e *Engine) renderScheduleCalendar(ctx context.Context, s *session.Session, month time.Month, year int, messageRef string) {
	// Any future day is selectable when declaring hours.
	grid := calendarGrid(month, year, time.Now(), func(time.Time) bool { return true })
	e.edit(ctx, s.ChatID, messageRef, transport.Message{Text: textScheduleDate, Controls: grid})
}

func (e *Engine) showHourPresets(ctx context.Context, s *session.Session) {
	e.send(ctx, s.ChatID, transport.Message{
		Text: textScheduleHours,
		Controls: [][]transport.Control{
			{{Label: "08:00-20:00", Token: workingHoursToken(8, 20)}},
			{{Label: "09:00-19:00", Token: workingHoursToken(9, 19)}},
			{{Label: "10:00-18:00", Token: workingHoursToken(10, 18)}},
			{{Label: "Custom", Token: tokenCustomHours}},
		},
	})
}

func (e *Engine) showSlots(ctx context.Context, s *session.Session, messageRef string) {
	if s.SelectedDate == nil {
		e.send(ctx, s.ChatID, transport.Message{Text: textSessionLost})
		return
	}
	day := *s.SelectedDate

	var slots []schedule.Slot
	var err error
	if s.Photographer.Kind == session.ChoiceSpecific {
		slots, err = e.availability.FreeSlots(ctx, s.Photographer.ID, s.ServiceID, day)
		if errors.Is(err, schedule.ErrNotWorking) {
			slots, err = nil, nil
		}
	} else {
		slots, err = e.availability.FreeSlotsAny(ctx, s.ServiceID, day)
	}
	if err != nil {
		if errors.Is(err, schedule.ErrNoPhotographer) {
			e.edit(ctx, s.ChatID, messageRef, transport.Message{Text: textNoPhotographers})
			return
		}
		e.log.Error().Err(err).Msg("compute slots")
		e.send(ctx, s.ChatID, transport.Message{Text: textSessionLost})
		return
	}

	if len(slots) == 0 {
		e.edit(ctx, s.ChatID, messageRef, transport.Message{
			Text: textNoSlots,
			Controls: [][]transport.Control{
				{{Label: menuBack, Token: tokenBackToCalendar}},
			},
		})
		return
	}

	controls := make([][]transport.Control, 0, len(slots)/2+2)
	row := make([]transport.Control, 0, 2)
	for _, slot := range slots {
		row = append(row, transport.Control{Label: slot.Label(), Token: timeToken(slot)})
		if len(row) == 2 {
			controls = append(controls, row)
			row = make([]transport.Control, 0, 2)
		}
	}
	if len(row) > 0 {
		controls = append(controls, row)
	}
	controls = append(controls, []transport.Control{{Label: menuBack, Token: tokenBackToCalendar}})

	s.Step = session.StepSelectingTime
	e.edit(ctx, s.ChatID, messageRef, transport.Message{Text: textChooseTime, Controls: controls})
}

func (e *Engine) showPhotographerBookings(ctx context.Context, s *session.Session, filter booking.ListFilter, p int, messageRef string) {
	all, err := e.ledger.ForPhotographer(ctx, s.PhotographerID, filter)
	if err != nil {
		e.log.Error().Err(err).Msg("list photographer bookings")
		e.send(ctx, s.ChatID, transport.Message{Text: textSessionLost})
		return
	}
	if len(all) == 0 {
		e.edit(ctx, s.ChatID, messageRef, transport.Message{Text: textNoBookings})
		return
	}

	view := map[booking.ListFilter]string{
		booking.FilterNew:      "page_new",
		booking.FilterUpcoming: "page_upcoming",
		booking.FilterAll:      "page_all",
	}[filter]

	items, p, totalPages := page(all, p)

	text := ""
	controls := make([][]transport.Control, 0, len(items)+1)
	for i, d := range items {
		if i > 0 {
			text += "\n\n"
		}
		text += bookingLine(d, true)

		var row []transport.Control
		switch {
		case filter == booking.FilterNew && d.Status == booking.StatusNew:
			row = []transport.Control{
				{Label: "✅ Confirm", Token: confirmBookingToken(d.ID)},
				{Label: "❌ Decline", Token: rejectBookingToken(d.ID)},
			}
		case filter == booking.FilterUpcoming && d.Status == booking.StatusConfirmed:
			row = []transport.Control{
				{Label: "✔️ Complete", Token: completeBookingToken(d.ID)},
				{Label: "❌ Cancel", Token: rejectBookingToken(d.ID)},
			}
		}
		if d.ClientHandle != "" {
			row = append(row, transport.Control{Label: "📞 Contact", URL: contactURL(d.ClientHandle)})
		}
		if len(row) > 0 {
			controls = append(controls, row)
		}
	}
	controls = append(controls, navControls(view, p, totalPages))

	s.Step = session.StepViewingBookings
	e.edit(ctx, s.ChatID, messageRef, transport.Message{Text: text, Controls: controls})
}

func (e *Engine) showClientBookings(ctx context.Context, s *session.Session, p int, messageRef string) {
	all, err := e.ledger.ForClient(ctx, s.ClientID)
	if err != nil {
		e.log.Error().Err(err).Msg("list client bookings")
		e.send(ctx, s.ChatID, transport.Message{Text: textSessionLost})
		return
	}
	if len(all) == 0 {
		e.edit(ctx, s.ChatID, messageRef, transport.Message{Text: textNoBookings, Menu: cabinetMenu()})
		return
	}

	items, p, totalPages := page(all, p)

	text := ""
	controls := make([][]transport.Control, 0, len(items)+1)
	for i, d := range items {
		if i > 0 {
			text += "\n\n"
		}
		text += bookingLine(d, false)

		if d.Status == booking.StatusNew || d.Status == booking.StatusConfirmed {
			controls = append(controls, []transport.Control{
				{Label: "❌ Cancel", Token: clientRejectToken(d.ID)},
			})
		}
	}
	controls = append(controls, navControls("client_bookings", p, totalPages))

	s.Step = session.StepBookingHistory
	e.edit(ctx, s.ChatID, messageRef, transport.Message{Text: text, Controls: controls})
}
