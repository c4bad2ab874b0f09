package dates

import "time"

// Day describes a single cell of a month grid.
type Day struct {
	Date           time.Time
	Number         int
	IsCurrentMonth bool
	IsToday        bool
	IsInRange      bool
	IsRangeStart   bool
	IsRangeEnd     bool
}

// Week is seven consecutive days.
type Week [7]Day

const maxWeeks = 6

// MonthNames are the month picker captions, January first.
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var weekdayShort = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// WeekdayHeaders returns the header row starting at firstDay.
func WeekdayHeaders(firstDay time.Weekday) [7]string {
	var out [7]string
	for i := range out {
		out[i] = weekdayShort[(int(firstDay)+i)%7]
	}
	return out
}

// MonthGrid lays out the given month in weeks starting at firstDay. Range
// flags are set only when both rangeStart and rangeEnd are non-zero. The
// grid always completes the week holding the last day of the month and
// never has more than six rows.
func MonthGrid(year int, month time.Month, firstDay time.Weekday, rangeStart, rangeEnd, now time.Time) []Week {
	loc := now.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := EndOfMonth(first)
	today := Today(now)
	hasRange := !rangeStart.IsZero() && !rangeEnd.IsZero()

	cursor := StartOfWeek(first, firstDay)
	weeks := make([]Week, 0, maxWeeks)
	for w := 0; w < maxWeeks; w++ {
		var week Week
		for i := range week {
			day := Day{
				Date:           cursor,
				Number:         cursor.Day(),
				IsCurrentMonth: cursor.Month() == first.Month(),
				IsToday:        IsSameDay(cursor, today),
			}
			if hasRange {
				day.IsInRange = IsInRange(cursor, rangeStart, rangeEnd)
				day.IsRangeStart = IsSameDay(cursor, rangeStart)
				day.IsRangeEnd = IsSameDay(cursor, rangeEnd)
			}
			week[i] = day
			cursor = AddDays(cursor, 1)
		}
		weeks = append(weeks, week)
		if cursor.After(last) && cursor.Weekday() == firstDay {
			break
		}
	}
	return weeks
}
