package policy

import "time"

// dayLabels maps time.Weekday to display names for rotation payloads.
var dayLabels = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Rotation describes which batch owns a given calendar day. It is
// derived on demand and never stored.
type Rotation struct {
	Date        string `json:"date"`
	WeekNumber  int    `json:"week_number"`
	DayOfWeek   int    `json:"day_of_week"`
	DayLabel    string `json:"day_label"`
	ActiveBatch int    `json:"active_batch"` // 1 or 2; 0 on weekends
}

// IsWeekend reports whether the date falls on one of the two
// non-working days (Saturday or Sunday).
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ActiveBatchFor returns the batch whose designated seats are active
// on the given date, or 0 on weekends.
//
// The schedule alternates with ISO week parity: in odd ISO weeks
// batch 1 holds Monday through Wednesday and batch 2 Thursday and
// Friday; even weeks invert the mapping. Each batch therefore gets
// one 3-day block and one 2-day block across any two consecutive
// weeks. The mapping is a pure function of the date.
func ActiveBatchFor(date time.Time) int {
	if IsWeekend(date) {
		return 0
	}
	_, week := date.ISOWeek()
	monToWed := date.Weekday() >= time.Monday && date.Weekday() <= time.Wednesday
	if week%2 == 1 {
		if monToWed {
			return 1
		}
		return 2
	}
	if monToWed {
		return 2
	}
	return 1
}

// NextWorkingDay returns the first non-weekend day strictly after
// the calendar day of `now`, at UTC midnight.
func NextWorkingDay(now time.Time) time.Time {
	d := dayUTC(now).AddDate(0, 0, 1)
	for IsWeekend(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// RotationFor assembles the rotation payload for a date.
func RotationFor(date time.Time) Rotation {
	_, week := date.ISOWeek()
	return Rotation{
		Date:        DateKey(date),
		WeekNumber:  week,
		DayOfWeek:   int(date.Weekday()),
		DayLabel:    dayLabels[date.Weekday()],
		ActiveBatch: ActiveBatchFor(date),
	}
}
