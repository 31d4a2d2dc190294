package scheduling

import "testing"

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint", Interval{540, 570}, Interval{600, 630}, false},
		{"identical", Interval{600, 630}, Interval{600, 630}, true},
		{"partial", Interval{600, 660}, Interval{630, 690}, true},
		{"containment", Interval{540, 720}, Interval{600, 630}, true},
		{"back_to_back", Interval{540, 600}, Interval{600, 660}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.a, tc.b); got != tc.want {
				t.Fatalf("Overlaps(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
			// predicate must be symmetric
			if got := Overlaps(tc.b, tc.a); got != tc.want {
				t.Fatalf("Overlaps(%v, %v) = %v, want %v", tc.b, tc.a, got, tc.want)
			}
		})
	}
}

func TestGenerateSlots_MarksBookedSlot(t *testing.T) {
	busy := []Interval{NewInterval(600, 30)} // 10:00 for 30 min

	slots := GenerateSlots("09:00-18:00", 30, busy, -1)
	if len(slots) == 0 {
		t.Fatal("expected slots for an open day")
	}

	byTime := map[string]bool{}
	for _, s := range slots {
		byTime[s.Time] = s.Available
	}
	if byTime["10:00"] {
		t.Fatal("10:00 should be unavailable")
	}
	if !byTime["09:30"] {
		t.Fatal("09:30 should be available")
	}
	if !byTime["10:30"] {
		t.Fatal("10:30 should be available")
	}
}

func TestGenerateSlots_NeverPastClosing(t *testing.T) {
	slots := GenerateSlots("09:00-18:00", 45, nil, -1)
	if len(slots) == 0 {
		t.Fatal("expected slots")
	}

	last := slots[len(slots)-1]
	start, err := ParseClock(last.Time)
	if err != nil {
		t.Fatalf("bad slot time %q: %v", last.Time, err)
	}
	end, _ := ParseClock("18:00")
	if start+45 > end {
		t.Fatalf("slot %s runs past closing", last.Time)
	}
	// 17:30 + 45 would end 18:15, so the last offer must be 17:00
	if last.Time != "17:00" {
		t.Fatalf("expected last slot 17:00, got %s", last.Time)
	}
}

func TestGenerateSlots_Ordering(t *testing.T) {
	slots := GenerateSlots("09:00-12:00", 30, nil, -1)
	prev := -1
	for _, s := range slots {
		m, err := ParseClock(s.Time)
		if err != nil {
			t.Fatalf("bad slot time %q: %v", s.Time, err)
		}
		if m <= prev {
			t.Fatalf("slots out of order at %s", s.Time)
		}
		prev = m
	}
	if slots[0].Time != "09:00" {
		t.Fatalf("expected first slot 09:00, got %s", slots[0].Time)
	}
}

func TestGenerateSlots_ClosedDay(t *testing.T) {
	if slots := GenerateSlots("Closed", 30, nil, -1); slots != nil {
		t.Fatalf("expected no slots on a closed day, got %d", len(slots))
	}
	if slots := GenerateSlots("closed", 30, nil, -1); slots != nil {
		t.Fatalf("closed marker should be case-insensitive")
	}
}

func TestGenerateSlots_DegenerateInput(t *testing.T) {
	if slots := GenerateSlots("09:00-18:00", 0, nil, -1); slots != nil {
		t.Fatal("zero duration should produce no slots")
	}
	if slots := GenerateSlots("18:00-09:00", 30, nil, -1); slots != nil {
		t.Fatal("inverted range should produce no slots")
	}
	if slots := GenerateSlots("garbage", 30, nil, -1); slots != nil {
		t.Fatal("malformed range should produce no slots")
	}
}

func TestGenerateSlots_PastToday(t *testing.T) {
	now, _ := ParseClock("10:00")
	slots := GenerateSlots("09:00-12:00", 30, nil, now)

	byTime := map[string]bool{}
	for _, s := range slots {
		byTime[s.Time] = s.Available
	}

	// slots starting at or before now are gone for the day
	for _, tm := range []string{"09:00", "09:30", "10:00"} {
		if byTime[tm] {
			t.Fatalf("%s should be unavailable at 10:00", tm)
		}
	}
	if !byTime["10:30"] {
		t.Fatal("10:30 should still be available")
	}
}

func TestGenerateSlots_BackToBackBusy(t *testing.T) {
	// booking 10:00-10:30 must not block the 09:30 or 10:30 starts
	busy := []Interval{NewInterval(600, 30)}
	slots := GenerateSlots("09:00-11:00", 30, busy, -1)

	byTime := map[string]bool{}
	for _, s := range slots {
		byTime[s.Time] = s.Available
	}
	if !byTime["09:30"] || !byTime["10:30"] {
		t.Fatal("back-to-back slots should remain available")
	}
}

func TestParseDayRange(t *testing.T) {
	r := ParseDayRange("09:00-18:00")
	if r.Closed || r.Open != 540 || r.Close != 1080 {
		t.Fatalf("unexpected range %+v", r)
	}
	if !ParseDayRange("").Closed {
		t.Fatal("empty entry should be closed")
	}
	if !ParseDayRange("09:00").Closed {
		t.Fatal("missing end should be closed")
	}
	if !ParseDayRange("25:00-26:00").Closed {
		t.Fatal("out-of-range clock should be closed")
	}
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("14:30")
	if err != nil || m != 870 {
		t.Fatalf("ParseClock(14:30) = %d, %v", m, err)
	}
	if _, err := ParseClock("9:30"); err == nil {
		t.Fatal("expected error for short form")
	}
	if _, err := ParseClock("14:60"); err == nil {
		t.Fatal("expected error for invalid minutes")
	}
	if FormatClock(870) != "14:30" {
		t.Fatalf("FormatClock(870) = %s", FormatClock(870))
	}
}
