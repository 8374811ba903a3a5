package timestamp

import (
	"fmt"
	"time"
)

var formats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700", // Without colon
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

func Parse(timeStr string) (time.Time, error) {
	for _, format := range formats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &time.ParseError{
		Value:   timeStr,
		Message: "unable to parse time string",
	}
}

// FlightDuration returns arrival minus departure. Both timestamps need an
// offset for the difference to be meaningful across time zones, so values
// without one are only compared when both lack it.
func FlightDuration(departure, arrival string) (time.Duration, bool) {
	dep, err := Parse(departure)
	if err != nil {
		return 0, false
	}
	arr, err := Parse(arrival)
	if err != nil {
		return 0, false
	}
	if hasOffset(departure) != hasOffset(arrival) {
		return 0, false
	}

	d := arr.Sub(dep)
	if d < 0 {
		return 0, false
	}
	return d, true
}

func FormatDuration(d time.Duration) string {
	totalMinutes := int(d.Round(time.Minute).Minutes())
	hours := totalMinutes / 60
	mins := totalMinutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %02dm", hours, mins)
}

func hasOffset(s string) bool {
	if len(s) < 6 {
		return false
	}
	if s[len(s)-1] == 'Z' {
		return true
	}
	tail := s[len(s)-6:]
	if (tail[0] == '+' || tail[0] == '-') && tail[3] == ':' {
		return true
	}
	tail = s[len(s)-5:]
	return tail[0] == '+' || tail[0] == '-'
}
