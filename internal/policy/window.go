package policy

import (
	"time"

	"github.com/iliyamo/office-seat-rotation/internal/model"
)

// ReasonCode identifies the branch of the admission state machine
// that produced a Decision. Codes are stable and part of the API
// contract; clients key their guidance messages off them.
type ReasonCode string

const (
	ReasonPastDate            ReasonCode = "PAST_DATE"
	ReasonWeekendBlocked      ReasonCode = "WEEKEND_BLOCKED"
	ReasonDesignatedLimit     ReasonCode = "DESIGNATED_LIMIT_EXCEEDED"
	ReasonFloatingOpens3PM    ReasonCode = "FLOATING_OPENS_3PM"
	ReasonFloatingNextDayOnly ReasonCode = "FLOATING_NEXT_WORKING_DAY_ONLY"
	ReasonBatchDay            ReasonCode = "BATCH_DAY"
	ReasonNonBatchDay         ReasonCode = "NON_BATCH_DAY"
)

const (
	// designatedAdvanceDays is how far ahead a batch member may book
	// a designated seat on their own batch days.
	designatedAdvanceDays = 14
	// floatingOpensHour is the local hour (24h) at which next-day
	// floating booking opens for non-batch users.
	floatingOpensHour = 15
)

// Decision is the result of evaluating the booking window for one
// (target date, requester batch, now) triple. It is never persisted;
// every request recomputes it. All context fields are populated on
// both admitted and rejected outcomes so handlers can render guidance
// without re-deriving policy.
type Decision struct {
	OK             bool       `json:"can_book_now"`
	Code           ReasonCode `json:"code"`
	Message        string     `json:"message"`
	ActiveBatch    int        `json:"active_batch"`
	IsBatchDay     bool       `json:"is_batch_day"`
	After3PM       bool       `json:"after_3pm"`
	DaysAhead      int        `json:"days_ahead"`
	NextWorkingDay string     `json:"next_working_day"`
}

// Evaluate runs the admission state machine in fixed priority order:
// past date, weekend, batch-day advance limit, floating 15:00 gate,
// floating next-working-day gate. The first matching rule wins. The
// caller supplies `now` explicitly; this function never reads a
// clock.
func Evaluate(target time.Time, requesterBatch int, now time.Time) Decision {
	next := NextWorkingDay(now)
	activeBatch := ActiveBatchFor(target)
	d := Decision{
		ActiveBatch:    activeBatch,
		IsBatchDay:     activeBatch != 0 && activeBatch == requesterBatch,
		After3PM:       now.Hour() >= floatingOpensHour,
		DaysAhead:      daysBetween(target, now),
		NextWorkingDay: DateKey(next),
	}

	switch {
	case dayUTC(target).Before(dayUTC(now)):
		d.Code = ReasonPastDate
		d.Message = "Past date booking is not allowed."
	case IsWeekend(target):
		d.Code = ReasonWeekendBlocked
		d.Message = "Weekend booking is not allowed."
	case d.IsBatchDay:
		if d.DaysAhead > designatedAdvanceDays {
			d.Code = ReasonDesignatedLimit
			d.Message = "Designated seats can be booked only up to 14 days in advance."
		} else {
			d.OK = true
			d.Code = ReasonBatchDay
			d.Message = "Your batch is active. You can book designated seats."
		}
	case !d.After3PM:
		d.Code = ReasonFloatingOpens3PM
		d.Message = "Floating seats for non-batch users open after 3:00 PM."
	case !sameDay(target, next):
		d.Code = ReasonFloatingNextDayOnly
		d.Message = "On non-batch days, floating seats can only be booked for the next working day."
	default:
		d.OK = true
		d.Code = ReasonNonBatchDay
		d.Message = "Non-batch booking window open for next working day floating seats."
	}
	return d
}

// SeatEligible reports whether a seat of the given type and release
// state matches the eligibility class this decision admits: an
// unreleased designated seat on a batch day, or a floating/released
// seat on a non-batch day. It is meaningless on rejected decisions.
func (d Decision) SeatEligible(seatType model.SeatType, released bool) bool {
	if d.IsBatchDay {
		return seatType == model.SeatDesignated && !released
	}
	return seatType == model.SeatFloating || released
}
