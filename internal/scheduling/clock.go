package scheduling

import (
	"fmt"
	"strings"
)

// ParseClock converts a 24-hour "HH:MM" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DayRange is a parsed per-weekday working-hours entry.
type DayRange struct {
	Open   int
	Close  int
	Closed bool
}

// ParseDayRange parses an "HH:MM-HH:MM" working-hours entry. An empty value,
// the closed marker, or a malformed or inverted range parses as closed.
func ParseDayRange(s string) DayRange {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "closed") {
		return DayRange{Closed: true}
	}

	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return DayRange{Closed: true}
	}

	open, err := ParseClock(strings.TrimSpace(parts[0]))
	if err != nil {
		return DayRange{Closed: true}
	}
	close, err := ParseClock(strings.TrimSpace(parts[1]))
	if err != nil {
		return DayRange{Closed: true}
	}
	if close <= open {
		return DayRange{Closed: true}
	}

	return DayRange{Open: open, Close: close}
}
