package scheduling

// StepMinutes is the fixed spacing between offered slot starts.
const StepMinutes = 30

// Interval is a half-open [Start, End) span in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

// NewInterval builds the interval covered by a booking starting at start
// minutes with the given duration.
func NewInterval(start, durationMinutes int) Interval {
	return Interval{Start: start, End: start + durationMinutes}
}

// Overlaps reports whether two half-open intervals intersect. Back-to-back
// intervals (a.End == b.Start) do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// OverlapsAny reports whether iv intersects any of the busy intervals.
func OverlapsAny(iv Interval, busy []Interval) bool {
	for _, b := range busy {
		if Overlaps(iv, b) {
			return true
		}
	}
	return false
}

// Slot is one candidate booking start on a barber's day grid.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// GenerateSlots produces the ordered slot grid for one day.
//
// dayRange is the weekday's working-hours entry ("HH:MM-HH:MM" or the closed
// marker). busy holds the non-cancelled booked intervals for that barber and
// date. nowMinutes is the current minute-of-day when the grid is for today,
// or a negative value otherwise.
//
// Slots start at the range open and advance by StepMinutes; a slot whose
// interval would run past closing is not offered. A slot is unavailable when
// it already started (today only) or when it overlaps a busy interval.
func GenerateSlots(dayRange string, durationMinutes int, busy []Interval, nowMinutes int) []Slot {
	if durationMinutes <= 0 {
		return nil
	}

	day := ParseDayRange(dayRange)
	if day.Closed {
		return nil
	}

	var slots []Slot
	for start := day.Open; start+durationMinutes <= day.Close; start += StepMinutes {
		iv := NewInterval(start, durationMinutes)
		past := nowMinutes >= 0 && start <= nowMinutes
		slots = append(slots, Slot{
			Time:      FormatClock(start),
			Available: !past && !OverlapsAny(iv, busy),
		})
	}
	return slots
}
