package dates

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStripTimeIdempotent(t *testing.T) {
	inputs := []time.Time{
		time.Date(2024, time.February, 29, 23, 59, 59, 999, time.UTC),
		time.Date(1999, time.December, 31, 0, 0, 0, 1, time.UTC),
		time.Date(2030, time.July, 4, 12, 30, 0, 0, time.FixedZone("X", -7*3600)),
	}
	for _, in := range inputs {
		once := StripTime(in)
		if !StripTime(once).Equal(once) {
			t.Fatalf("StripTime not idempotent for %v", in)
		}
		if once.Hour() != 0 || once.Minute() != 0 || once.Nanosecond() != 0 {
			t.Fatalf("expected midnight, got %v", once)
		}
		if !IsSameDay(once, in) {
			t.Fatalf("StripTime changed the day: %v -> %v", in, once)
		}
	}
}

func TestParseDateRoundTrip(t *testing.T) {
	for _, s := range []string{"01/01/2024", "02/29/2024", "12/31/1999", "07/04/2030", "10/19/2026"} {
		d, ok := ParseDate(s, time.UTC)
		if !ok {
			t.Fatalf("expected %q to parse", s)
		}
		if got := FormatDate(d); got != s {
			t.Fatalf("round trip mismatch: %q -> %q", s, got)
		}
	}
}

func TestParseDateRejects(t *testing.T) {
	tests := []string{
		"02/30/2024",
		"13/01/2024",
		"00/10/2024",
		"02/29/2023",
		"04/31/2024",
		"01/00/2024",
		"1/2",
		"01/02/2024/05",
		"aa/01/2024",
		"01/bb/2024",
		"01/01/cccc",
		"",
		"01/01/0000",
	}
	for _, s := range tests {
		if _, ok := ParseDate(s, time.UTC); ok {
			t.Fatalf("expected %q to be rejected", s)
		}
	}
}

func TestParseDateToleratesPadding(t *testing.T) {
	d, ok := ParseDate(" 3/5/2024 ", time.UTC)
	if !ok {
		t.Fatalf("expected unpadded fields to parse")
	}
	if !d.Equal(day(2024, time.March, 5)) {
		t.Fatalf("unexpected date %v", d)
	}
}

func TestAddDaysCrossesBoundaries(t *testing.T) {
	tests := []struct {
		from time.Time
		n    int
		want time.Time
	}{
		{day(2024, time.February, 28), 1, day(2024, time.February, 29)},
		{day(2024, time.February, 29), 1, day(2024, time.March, 1)},
		{day(2023, time.February, 28), 1, day(2023, time.March, 1)},
		{day(2024, time.December, 31), 1, day(2025, time.January, 1)},
		{day(2025, time.January, 1), -1, day(2024, time.December, 31)},
		{day(2024, time.March, 1), -366, day(2023, time.March, 1)},
	}
	for _, tt := range tests {
		if got := AddDays(tt.from, tt.n); !got.Equal(tt.want) {
			t.Fatalf("AddDays(%v, %d) = %v, want %v", tt.from, tt.n, got, tt.want)
		}
	}
}

func TestAddDaysKeepsMidnightAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	start := time.Date(2024, time.March, 9, 0, 0, 0, 0, loc)
	got := AddDays(start, 2)
	if got.Day() != 11 || got.Hour() != 0 {
		t.Fatalf("expected March 11 midnight, got %v", got)
	}
}

func TestWeekBoundaries(t *testing.T) {
	wed := day(2024, time.January, 17)
	if got := StartOfWeek(wed, time.Sunday); !got.Equal(day(2024, time.January, 14)) {
		t.Fatalf("sunday week start: %v", got)
	}
	if got := EndOfWeek(wed, time.Sunday); !got.Equal(day(2024, time.January, 20)) {
		t.Fatalf("sunday week end: %v", got)
	}
	if got := StartOfWeek(wed, time.Monday); !got.Equal(day(2024, time.January, 15)) {
		t.Fatalf("monday week start: %v", got)
	}
	sun := day(2024, time.January, 21)
	if got := StartOfWeek(sun, time.Monday); !got.Equal(day(2024, time.January, 15)) {
		t.Fatalf("sunday should belong to the monday-started week: %v", got)
	}
}

func TestMonthBoundaries(t *testing.T) {
	d := day(2024, time.February, 10)
	if got := StartOfMonth(d); !got.Equal(day(2024, time.February, 1)) {
		t.Fatalf("start of month: %v", got)
	}
	if got := EndOfMonth(d); !got.Equal(day(2024, time.February, 29)) {
		t.Fatalf("end of month: %v", got)
	}
	if n := DaysIn(2023, time.February); n != 28 {
		t.Fatalf("expected 28 days, got %d", n)
	}
}

func TestIsInRangeInclusive(t *testing.T) {
	start, end := day(2024, time.January, 10), day(2024, time.January, 20)
	if !IsInRange(start, start, end) || !IsInRange(end.Add(23*time.Hour), start, end) {
		t.Fatalf("range ends should be inclusive")
	}
	if IsInRange(day(2024, time.January, 21), start, end) {
		t.Fatalf("day after end should be outside")
	}
}

func TestISORoundTrip(t *testing.T) {
	d := day(2024, time.March, 5)
	s := FormatISO(d)
	if s != "2024-03-05T00:00:00.000Z" {
		t.Fatalf("unexpected ISO %q", s)
	}
	back, ok := ParseISO(s, time.UTC)
	if !ok || !back.Equal(d) {
		t.Fatalf("ParseISO(%q) = %v, %v", s, back, ok)
	}
	if _, ok := ParseISO("not-a-date", time.UTC); ok {
		t.Fatalf("expected garbage to be rejected")
	}
	if got, ok := ParseISO("2024-03-05", time.UTC); !ok || !got.Equal(d) {
		t.Fatalf("plain date should parse, got %v %v", got, ok)
	}
}
