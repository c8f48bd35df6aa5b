package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/office-seat-rotation/internal/model"
)

func batchPtr(b int) *int { return &b }

// testSeats is a small office: two designated seats for batch 1, one
// for batch 2, and one floating seat.
func testSeats() []model.Seat {
	return []model.Seat{
		{ID: 1, SeatNumber: 1, SeatType: model.SeatDesignated, AssignedBatch: batchPtr(1)},
		{ID: 2, SeatNumber: 2, SeatType: model.SeatDesignated, AssignedBatch: batchPtr(1)},
		{ID: 3, SeatNumber: 21, SeatType: model.SeatDesignated, AssignedBatch: batchPtr(2)},
		{ID: 4, SeatNumber: 41, SeatType: model.SeatFloating},
	}
}

func seatByID(t *testing.T, views []SeatView, id uint64) SeatView {
	t.Helper()
	for _, v := range views {
		if v.ID == id {
			return v
		}
	}
	t.Fatalf("seat %d not in view", id)
	return SeatView{}
}

func TestResolveSeatsBatchDay(t *testing.T) {
	dec := Decision{OK: true, Code: ReasonBatchDay, IsBatchDay: true}
	views := ResolveSeats(VisibilityInput{
		Decision:    dec,
		RequesterID: 100,
		Seats:       testSeats(),
		BookedBy:    map[uint64]uint64{1: 200}, // seat 1 held by someone else
		Released:    map[uint64]bool{2: true},  // seat 2 released today
	})

	// Seat 2 left the designated pool for the day and the floating
	// seat is never offered on a batch day.
	ids := make([]uint64, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	assert.ElementsMatch(t, []uint64{1, 3}, ids)

	taken := seatByID(t, views, 1)
	assert.Equal(t, SeatStatusBooked, taken.Status)
	assert.False(t, taken.IsBookable)
	assert.False(t, taken.IsMyBooking)

	free := seatByID(t, views, 3)
	assert.Equal(t, SeatStatusAvailable, free.Status)
	assert.True(t, free.IsBookable)
}

func TestResolveSeatsNonBatchDay(t *testing.T) {
	dec := Decision{OK: true, Code: ReasonNonBatchDay}
	views := ResolveSeats(VisibilityInput{
		Decision:    dec,
		RequesterID: 100,
		Seats:       testSeats(),
		Released:    map[uint64]bool{2: true},
	})

	// Only the floating seat and the released designated seat show.
	ids := make([]uint64, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	assert.ElementsMatch(t, []uint64{2, 4}, ids)

	released := seatByID(t, views, 2)
	assert.Equal(t, SeatStatusReleased, released.Status)
	assert.True(t, released.IsBookable)

	floating := seatByID(t, views, 4)
	assert.Equal(t, SeatStatusFloating, floating.Status)
	assert.True(t, floating.IsBookable)
}

func TestResolveSeatsOwnBookingAlwaysVisible(t *testing.T) {
	// The requester holds designated seat 1; on a non-batch day the
	// general rule would hide it, but they must still see their own
	// booking to release it.
	dec := Decision{OK: true, Code: ReasonNonBatchDay}
	views := ResolveSeats(VisibilityInput{
		Decision:    dec,
		RequesterID: 100,
		Seats:       testSeats(),
		BookedBy:    map[uint64]uint64{1: 100},
	})

	own := seatByID(t, views, 1)
	assert.Equal(t, SeatStatusBooked, own.Status)
	assert.True(t, own.IsMyBooking)
	assert.False(t, own.IsBookable)

	// Holding a booking blocks booking anything else for the day.
	for _, v := range views {
		assert.False(t, v.IsBookable, "seat %d", v.ID)
	}
}

func TestResolveSeatsClosedWindow(t *testing.T) {
	// Before 15:00 the non-batch view still renders, but nothing is
	// bookable.
	dec := Decision{OK: false, Code: ReasonFloatingOpens3PM}
	views := ResolveSeats(VisibilityInput{
		Decision:    dec,
		RequesterID: 100,
		Seats:       testSeats(),
	})
	require.NotEmpty(t, views)
	for _, v := range views {
		assert.False(t, v.IsBookable)
	}
}

func TestResolveSeatsSortedBySeatNumber(t *testing.T) {
	dec := Decision{OK: true, Code: ReasonBatchDay, IsBatchDay: true}
	seats := testSeats()
	// Shuffle the input order; output must still be sorted.
	seats[0], seats[2] = seats[2], seats[0]
	views := ResolveSeats(VisibilityInput{
		Decision:    dec,
		RequesterID: 100,
		Seats:       seats,
	})
	require.Len(t, views, 3)
	for i := 1; i < len(views); i++ {
		assert.Less(t, views[i-1].SeatNumber, views[i].SeatNumber)
	}
}
