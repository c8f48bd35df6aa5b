package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDateOnly(s)
	require.NoError(t, err)
	return d
}

func TestActiveBatchFor(t *testing.T) {
	cases := []struct {
		date string
		want int
	}{
		// Week 11 of 2026 (odd): batch 1 Mon-Wed, batch 2 Thu-Fri.
		{"2026-03-09", 1}, // Monday
		{"2026-03-10", 1}, // Tuesday
		{"2026-03-11", 1}, // Wednesday
		{"2026-03-12", 2}, // Thursday
		{"2026-03-13", 2}, // Friday

		// Week 10 of 2026 (even): inverted.
		{"2026-03-02", 2}, // Monday
		{"2026-03-04", 2}, // Wednesday
		{"2026-03-05", 1}, // Thursday
		{"2026-03-06", 1}, // Friday

		// Weekends never belong to a batch.
		{"2026-03-14", 0}, // Saturday
		{"2026-03-15", 0}, // Sunday
	}
	for _, tc := range cases {
		t.Run(tc.date, func(t *testing.T) {
			assert.Equal(t, tc.want, ActiveBatchFor(mustDate(t, tc.date)))
		})
	}
}

func TestActiveBatchForYearBoundary(t *testing.T) {
	// 2025-12-29 is a Monday but already belongs to ISO week 1 of
	// 2026 (odd), so it goes to batch 1 even though the calendar year
	// has not turned yet.
	assert.Equal(t, 1, ActiveBatchFor(mustDate(t, "2025-12-29")))

	// The Friday before it is still week 52 of 2025 (even): Thu-Fri
	// belongs to batch 1.
	assert.Equal(t, 1, ActiveBatchFor(mustDate(t, "2025-12-26")))

	// 2026 has 53 ISO weeks. Week 53 starts Monday 2026-12-28 and
	// runs into January 2027: odd parity on both sides of the year
	// boundary.
	assert.Equal(t, 1, ActiveBatchFor(mustDate(t, "2026-12-28"))) // Monday, week 53
	assert.Equal(t, 2, ActiveBatchFor(mustDate(t, "2027-01-01"))) // Friday, still week 53
}

func TestActiveBatchForAlternatesLongAndShortBlocks(t *testing.T) {
	// In any week one batch gets the 3-day Mon-Wed block and the
	// other the 2-day Thu-Fri block, and the assignment flips every
	// week, so across two consecutive weeks each batch gets one long
	// and one short block.
	start := mustDate(t, "2025-12-29") // Monday, ISO week 1 of 2026
	prevLong := 0
	for week := 0; week < 8; week++ {
		counts := map[int]int{}
		for day := 0; day < 5; day++ {
			d := start.AddDate(0, 0, week*7+day)
			counts[ActiveBatchFor(d)]++
		}
		assert.Zero(t, counts[0], "weekdays must always have an active batch")

		long := 1
		if counts[2] == 3 {
			long = 2
		}
		assert.Equal(t, 3, counts[long])
		assert.Equal(t, 2, counts[3-long])
		if week > 0 {
			assert.NotEqual(t, prevLong, long, "long block must flip between weeks")
		}
		prevLong = long
	}
}

func TestNextWorkingDay(t *testing.T) {
	cases := []struct {
		now  string
		want string
	}{
		{"2026-03-09", "2026-03-10"}, // Mon -> Tue
		{"2026-03-12", "2026-03-13"}, // Thu -> Fri
		{"2026-03-13", "2026-03-16"}, // Fri -> Mon, skipping the weekend
		{"2026-03-14", "2026-03-16"}, // Sat -> Mon
		{"2026-03-15", "2026-03-16"}, // Sun -> Mon
	}
	for _, tc := range cases {
		t.Run(tc.now, func(t *testing.T) {
			got := NextWorkingDay(mustDate(t, tc.now))
			assert.Equal(t, tc.want, DateKey(got))
		})
	}
}

func TestNextWorkingDayIgnoresTimeOfDay(t *testing.T) {
	lateFriday := time.Date(2026, 3, 13, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-16", DateKey(NextWorkingDay(lateFriday)))
}

func TestRotationFor(t *testing.T) {
	r := RotationFor(mustDate(t, "2026-03-12"))
	assert.Equal(t, "2026-03-12", r.Date)
	assert.Equal(t, 11, r.WeekNumber)
	assert.Equal(t, int(time.Thursday), r.DayOfWeek)
	assert.Equal(t, "Thursday", r.DayLabel)
	assert.Equal(t, 2, r.ActiveBatch)
}

func TestParseDateOnly(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2026-03-09", true},
		{"2026-3-9", false},     // no zero padding
		{"2026-02-30", false},   // not a real day
		{"2026-13-01", false},   // month out of range
		{"09-03-2026", false},   // wrong order
		{"2026-03-09T00", false},
		{"", false},
	}
	for _, tc := range cases {
		_, err := ParseDateOnly(tc.in)
		if tc.ok {
			assert.NoError(t, err, tc.in)
		} else {
			assert.ErrorIs(t, err, ErrInvalidDate, tc.in)
		}
	}
}
