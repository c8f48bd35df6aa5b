package policy

import (
	"sort"

	"github.com/iliyamo/office-seat-rotation/internal/model"
)

// SeatStatus is the display state of a seat on a given date, derived
// per request from booking state. Precedence is Booked > Released >
// Floating > Available.
type SeatStatus string

const (
	SeatStatusBooked    SeatStatus = "BOOKED"
	SeatStatusReleased  SeatStatus = "RELEASED"
	SeatStatusFloating  SeatStatus = "FLOATING"
	SeatStatusAvailable SeatStatus = "AVAILABLE"
)

// SeatView is a seat as one requester sees it for one date.
type SeatView struct {
	model.Seat
	Status      SeatStatus `json:"status"`
	IsMyBooking bool       `json:"is_my_booking"`
	IsBookable  bool       `json:"is_bookable"`
}

// VisibilityInput carries everything ResolveSeats needs: the window
// decision for the requester, the full seat list and the date's
// booking state. BookedBy maps seat ID to the employee holding an
// active booking; Released holds seat IDs with a RELEASED row for
// the date.
type VisibilityInput struct {
	Decision    Decision
	RequesterID uint64
	Seats       []model.Seat
	BookedBy    map[uint64]uint64
	Released    map[uint64]bool
}

// ResolveSeats computes the visible seat list for a requester. On a
// batch day only unreleased designated seats are shown (a released
// designated seat leaves the designated pool for that day); on a
// non-batch day, floating seats plus anything released. A seat the
// requester has actively booked is always shown, even when the
// general rule would hide it, so they can manage their own booking.
// Pure function of its inputs.
func ResolveSeats(in VisibilityInput) []SeatView {
	var ownSeatID uint64
	hasOwnBooking := false
	for seatID, employeeID := range in.BookedBy {
		if employeeID == in.RequesterID {
			ownSeatID = seatID
			hasOwnBooking = true
			break
		}
	}

	views := make([]SeatView, 0, len(in.Seats))
	for _, seat := range in.Seats {
		released := in.Released[seat.ID]
		visible := in.Decision.SeatEligible(seat.SeatType, released)
		if !visible && !(hasOwnBooking && seat.ID == ownSeatID) {
			continue
		}

		holder, booked := in.BookedBy[seat.ID]
		var status SeatStatus
		switch {
		case booked:
			status = SeatStatusBooked
		case released:
			status = SeatStatusReleased
		case seat.SeatType == model.SeatFloating:
			status = SeatStatusFloating
		default:
			status = SeatStatusAvailable
		}

		bookable := in.Decision.OK &&
			!booked &&
			!hasOwnBooking &&
			in.Decision.SeatEligible(seat.SeatType, released)

		views = append(views, SeatView{
			Seat:        seat,
			Status:      status,
			IsMyBooking: booked && holder == in.RequesterID,
			IsBookable:  bookable,
		})
	}

	sort.Slice(views, func(i, j int) bool { return views[i].SeatNumber < views[j].SeatNumber })
	return views
}
