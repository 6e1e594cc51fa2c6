package conversation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/artik0811/vkr-photostudio/internal/domain/schedule"
)

// Action tokens round-trip through the chat platform inside controls, so
// they must stay short and stable. The platform caps them at 64 bytes.
const maxTokenLen = 64

const (
	tokenAgree          = "agree"
	tokenIgnore         = "ignore"
	tokenCustomHours    = "custom_hours"
	tokenEditSchedule   = "edit_schedule"
	tokenNewBookings    = "new_bookings"
	tokenUpcoming       = "upcoming_bookings"
	tokenAllBookings    = "all_bookings"
	tokenBackToServices = "back_to_services"
	tokenBackToPhotogs  = "back_to_photographers"
	tokenBackToCalendar = "back_to_calendar"
)

const dateLayout = "2006-01-02"

func serviceToken(id int64) string {
	return fmt.Sprintf("service:%d", id)
}

func serviceInfoToken(id int64) string {
	return fmt.Sprintf("service_info:%d", id)
}

func photographerToken(id int64) string {
	return fmt.Sprintf("photographer:%d", id)
}

func photographerAnyToken() string {
	return "photographer:any"
}

func photographerInfoToken(id int64) string {
	return fmt.Sprintf("photographer_info:%d", id)
}

func calendarSelectToken(day time.Time) string {
	return "calendar:select:" + day.Format(dateLayout)
}

func calendarPrevToken(month time.Month, year int) string {
	return fmt.Sprintf("calendar:prev_month:%d:%d", month, year)
}

func calendarNextToken(month time.Month, year int) string {
	return fmt.Sprintf("calendar:next_month:%d:%d", month, year)
}

// timeToken uses hyphens throughout because the slot label already
// contains colons.
func timeToken(s schedule.Slot) string {
	return "time-" + s.Label()
}

func confirmingToken(yes bool) string {
	if yes {
		return "confirming:yes"
	}
	return "confirming:no"
}

func workingHoursToken(start, end int) string {
	return fmt.Sprintf("working_hours:%d:%d", start, end)
}

func pageToken(view string, page int) string {
	return fmt.Sprintf("%s:%d", view, page)
}

func confirmBookingToken(id int64) string {
	return fmt.Sprintf("confirm_booking:%d", id)
}

func rejectBookingToken(id int64) string {
	return fmt.Sprintf("reject_booking:%d", id)
}

func clientRejectToken(id int64) string {
	return fmt.Sprintf("client_reject_booking:%d", id)
}

func completeBookingToken(id int64) string {
	return fmt.Sprintf("complete_booking:%d", id)
}

func revokeConsentToken(confirm bool) string {
	if confirm {
		return "revoke_consent:confirm"
	}
	return "revoke_consent:cancel"
}

// splitToken separates the namespace from its arguments. The time token
// is the one hyphenated form; everything else is colon separated.
func splitToken(token string) (string, []string) {
	if strings.HasPrefix(token, "time-") {
		return "time", []string{strings.TrimPrefix(token, "time-")}
	}

	parts := strings.Split(token, ":")
	return parts[0], parts[1:]
}

// parseTimeArg parses "09:00-11:00" into whole start and end hours.
func parseTimeArg(arg string) (int, int, bool) {
	bounds := strings.Split(arg, "-")
	if len(bounds) != 2 {
		return 0, 0, false
	}

	start, ok := parseHourMinute(bounds[0])
	if !ok {
		return 0, 0, false
	}
	end, ok := parseHourMinute(bounds[1])
	if !ok {
		return 0, 0, false
	}
	if start >= end {
		return 0, 0, false
	}

	return start, end, true
}

// parseHourMinute accepts "9:00" or "09:00" and returns the hour. Minutes
// other than zero are rejected, bookings snap to whole hours.
func parseHourMinute(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 24 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute != 0 {
		return 0, false
	}

	return hour, true
}

// parseHoursText parses the free-text custom hours form, e.g.
// "10:00-18:00".
func parseHoursText(text string) (int, int, bool) {
	return parseTimeArg(strings.TrimSpace(text))
}

func parseID(arg string) (int64, bool) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func parseDateArg(arg string) (time.Time, bool) {
	day, err := time.Parse(dateLayout, arg)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

func parseMonthYear(args []string) (time.Month, int, bool) {
	if len(args) != 2 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(args[0])
	if err != nil || m < 1 || m > 12 {
		return 0, 0, false
	}
	y, err := strconv.Atoi(args[1])
	if err != nil || y < 1 {
		return 0, 0, false
	}
	return time.Month(m), y, true
}
