package conversation

import (
	"fmt"
	"strings"
	"time"

	"github.com/artik0811/vkr-photostudio/internal/domain/booking"
)

// contactURL turns a stored handle into a deep link the chat client opens.
func contactURL(handle string) string {
	return "https://t.me/" + strings.TrimPrefix(handle, "@")
}

// Menu labels double as the dispatch keys for free-text turns, so they
// are constants rather than inline literals.
const (
	menuSelectService   = "Select a service"
	menuPersonalCabinet = "Personal cabinet"
	menuBookingHistory  = "Booking history"
	menuChangeName      = "Change name"
	menuRevokeConsent   = "Revoke consent"
	menuBack            = "⟵ Back"

	menuMySchedule        = "My schedule"
	menuMyBookings        = "My bookings"
	menuChangePortfolio   = "Change portfolio"
	menuChangeDescription = "Change description"
)

const (
	textAskName = "Welcome! What is your name?"
	textConsent = "To book a session we store your name and contact handle. " +
		"Tap the button below to agree and continue."
	textConsentButton = "I agree"
	textRegistered    = "Thanks, you are all set! Use the menu below to make a booking."
	textMainMenu      = "What would you like to do?"
	textNameTooShort  = "The name is too short. Please use at least 2 characters."
	textAskNewName    = "Send your new name."
	textNameChanged   = "Your name has been updated."

	textChooseService      = "Choose a service:"
	textChoosePhotographer = "Choose a photographer, or let us pick one for you:"
	textAnyPhotographer    = "Any photographer"
	textChooseDate         = "Choose a date:"
	textPastDate           = "You can't pick a date in the past. Choose another one."
	textChooseTime         = "Choose a time:"
	textNoSlots            = "No free slots on that day. Pick another date."
	textSlotTaken          = "Sorry, that slot has just been taken. Pick another time."
	textNoPhotographers    = "No photographer offers this service yet."
	textBookingCancelled   = "Booking cancelled. You are back in the main menu."
	textUnknownCommand     = "Unknown command."
	textSessionLost        = "Let's start over. Send /start."

	textCabinet        = "Your personal cabinet:"
	textNoBookings     = "Nothing here yet."
	textRevokeQuestion = "Revoking consent deletes your profile and you will need " +
		"to register again to book. Are you sure?"
	textRevokeConfirm = "Yes, delete my data"
	textRevokeCancel  = "No, keep it"
	textRevoked       = "Your data has been removed. Send /start to begin again."

	textPhotographerMenu  = "Photographer menu:"
	textScheduleDate      = "Pick the day you want to set hours for:"
	textScheduleHours     = "Pick your working hours:"
	textCustomHoursPrompt = "Send your hours as HH:MM-HH:MM, for example 10:00-18:00."
	textBadHours          = "Could not read that. Send hours as HH:MM-HH:MM, for example 10:00-18:00."
	textScheduleSaved     = "Working hours saved."
	textAskDescription    = "Send your new description."
	textDescriptionSaved  = "Description updated."
	textAskPortfolio      = "Send a link to your portfolio."
	textPortfolioSaved    = "Portfolio updated."

	textBookingRequested = "Your request has been sent to the photographer. " +
		"You will get a message once it is confirmed."
	textAlreadyHandled    = "This booking has already been handled."
	textBookingConfirmed  = "Booking confirmed. The client has been notified."
	textBookingDeclined   = "Booking declined. The client has been notified."
	textBookingCompleted  = "Booking marked as completed."
	textYourBookingCancel = "Your booking has been cancelled."

	textBookingsWhich = "Which bookings do you want to see?"
	labelNewBookings  = "New"
	labelUpcoming     = "Upcoming"
	labelAllBookings  = "All"
)

func statusLabel(s booking.Status) string {
	switch s {
	case booking.StatusNew:
		return "awaiting confirmation"
	case booking.StatusConfirmed:
		return "confirmed"
	case booking.StatusCompleted:
		return "completed"
	case booking.StatusCancelled:
		return "cancelled"
	default:
		return string(s)
	}
}

// confirmationSummary is shown to the client before the final yes/no.
func confirmationSummary(serviceName string, cost int64, photographerName string, day time.Time, slotLabel, address string) string {
	return fmt.Sprintf(
		"Please confirm your booking:\n\n"+
			"Service: %s\n"+
			"Price: %d ₽\n"+
			"Photographer: %s\n"+
			"Date: %s\n"+
			"Time: %s\n"+
			"Address: %s",
		serviceName, cost, photographerName, day.Format("02.01.2006"), slotLabel, address)
}

func bookingLine(d booking.Details, forPhotographer bool) string {
	who := d.PhotographerName
	if forPhotographer {
		who = fmt.Sprintf("%s (@%s)", d.ClientName, d.ClientHandle)
	}
	return fmt.Sprintf("%s %s-%s · %s · %s · %s",
		d.BookingStart.Format("02.01.2006"),
		d.BookingStart.Format("15:04"),
		d.BookingEnd.Format("15:04"),
		d.ServiceName,
		who,
		statusLabel(d.Status))
}

func serviceCard(name string, cost int64, durationMinutes int, comment string) string {
	text := fmt.Sprintf("%s\nPrice: %d ₽\nDuration: %d min", name, cost, durationMinutes)
	if comment != "" {
		text += "\n" + comment
	}
	return text
}

func photographerCard(name, description, portfolioURL string) string {
	text := name
	if description != "" {
		text += "\n\n" + description
	}
	if portfolioURL != "" {
		text += "\nPortfolio: " + portfolioURL
	}
	return text
}

func eventText(e booking.Event) string {
	d := e.Details
	when := fmt.Sprintf("%s %s-%s",
		d.BookingStart.Format("02.01.2006"),
		d.BookingStart.Format("15:04"),
		d.BookingEnd.Format("15:04"))

	switch e.Kind {
	case booking.EventCreated:
		return fmt.Sprintf("New booking request:\n%s · %s\nClient: %s (@%s)",
			when, d.ServiceName, d.ClientName, d.ClientHandle)
	case booking.EventConfirmed:
		return fmt.Sprintf("Your booking on %s for %s is confirmed. See you there!",
			when, d.ServiceName)
	case booking.EventCancelled:
		if e.Actor == booking.ActorClient {
			return fmt.Sprintf("The client cancelled the booking on %s (%s).", when, d.ServiceName)
		}
		return fmt.Sprintf("Unfortunately your booking on %s for %s was cancelled.", when, d.ServiceName)
	case booking.EventCompleted:
		return fmt.Sprintf("Your session on %s is complete. Thank you for choosing us!", when)
	default:
		return ""
	}
}
