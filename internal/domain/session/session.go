package session

import "time"

// Role is what /start detected for the chat identity. Photographer wins
// when an identity is somehow both.
type Role int

const (
	RoleUnknown Role = iota
	RoleClient
	RolePhotographer
)

// Step is the conversation position. Every inbound message or action is
// interpreted against the current step.
type Step int

const (
	StepStart Step = iota
	StepRegistration
	StepMainMenu
	StepSelectingService
	StepSelectingPhotographer
	StepSelectingDate
	StepSelectingTime
	StepConfirmingBooking
	StepPersonalCabinet
	StepChangeName
	StepBookingHistory
	StepPhotographerMenu
	StepEditSchedule
	StepCustomHours
	StepChangeDescription
	StepChangePortfolio
	StepViewingBookings
)

// ChoiceKind distinguishes the three photographer selection states. A
// client who tapped "any photographer" is not the same as one who has not
// chosen yet.
type ChoiceKind int

const (
	ChoiceUnselected ChoiceKind = iota
	ChoiceAny
	ChoiceSpecific
)

// PhotographerChoice is the client's photographer selection.
type PhotographerChoice struct {
	Kind ChoiceKind `json:"kind"`
	ID   int64      `json:"id,omitempty"`
}

// Session is the per-chat conversation state. It lives in the store
// between turns and is mutated under the chat's lock.
type Session struct {
	ChatID       int64              `json:"chat_id"`
	Step         Step               `json:"step"`
	Role         Role               `json:"role"`
	ClientID     int64              `json:"client_id,omitempty"`
	Photographer PhotographerChoice `json:"photographer"`
	// PhotographerID is set for photographer-role chats
	PhotographerID int64      `json:"photographer_id,omitempty"`
	ServiceID      int64      `json:"service_id,omitempty"`
	SelectedDate   *time.Time `json:"selected_date,omitempty"`
	StartHour      int        `json:"start_hour,omitempty"`
	EndHour        int        `json:"end_hour,omitempty"`
	// ScheduleDate is the day a photographer is declaring hours for
	ScheduleDate *time.Time `json:"schedule_date,omitempty"`
	PendingName  string     `json:"pending_name,omitempty"`
	PendingUser  string     `json:"pending_user,omitempty"`
}

// New returns a fresh session at the start step.
func New(chatID int64) *Session {
	return &Session{ChatID: chatID, Step: StepStart}
}

// ResetBooking clears the in-progress booking selection while keeping the
// identity.
func (s *Session) ResetBooking() {
	s.Photographer = PhotographerChoice{}
	s.ServiceID = 0
	s.SelectedDate = nil
	s.StartHour = 0
	s.EndHour = 0
}
