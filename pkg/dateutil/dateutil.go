package dateutil

import (
	"fmt"
	"time"
)

// WireFormat is the timestamp layout the backend exchanges (no zone suffix,
// interpreted in local time like the mobile client does).
const WireFormat = "2006-01-02T15:04:05"

const (
	displayDateTimeFormat = "Jan 02, 2006 15:04"
	displayDateFormat     = "Jan 02, 2006"
	displayTimeFormat     = "15:04"
)

// Parse converts a wire timestamp into a time.Time.
func Parse(value string) (time.Time, error) {
	return time.ParseInLocation(WireFormat, value, time.Local)
}

// FormatDateTime renders a wire timestamp for display. Unparseable input is
// returned unchanged.
func FormatDateTime(value string) string {
	t, err := Parse(value)
	if err != nil {
		return value
	}
	return t.Format(displayDateTimeFormat)
}

// FormatDate renders only the calendar date. Unparseable input is returned
// unchanged.
func FormatDate(value string) string {
	t, err := Parse(value)
	if err != nil {
		return value
	}
	return t.Format(displayDateFormat)
}

// FormatTime renders only the clock time. Unparseable input is returned
// unchanged.
func FormatTime(value string) string {
	t, err := Parse(value)
	if err != nil {
		return value
	}
	return t.Format(displayTimeFormat)
}

// CurrentDateTime returns the current wall clock in wire format.
func CurrentDateTime() string {
	return time.Now().Format(WireFormat)
}

// IsOverdue reports whether the given wire timestamp lies strictly before
// now. Unparseable input is never overdue.
func IsOverdue(endDateTime string) bool {
	t, err := Parse(endDateTime)
	if err != nil {
		return false
	}
	return t.Before(time.Now())
}

// TimeRemaining describes how far away a deadline is, in the largest two
// units that apply. Unparseable input yields "Unknown".
func TimeRemaining(endDateTime string) string {
	t, err := Parse(endDateTime)
	if err != nil {
		return "Unknown"
	}

	diff := time.Until(t)
	if diff <= 0 {
		return "Overdue"
	}

	days := int(diff.Hours()) / 24
	hours := int(diff.Hours()) % 24
	minutes := int(diff.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh remaining", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm remaining", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm remaining", minutes)
	default:
		return "Due now"
	}
}
