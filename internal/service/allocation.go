// Package service contains the seat allocation engine and the event
// publisher. The allocator is the only component that mutates
// booking state; every read-side view (rotation, visibility, pool
// snapshots) is derived elsewhere without synchronization.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/office-seat-rotation/internal/model"
	"github.com/iliyamo/office-seat-rotation/internal/policy"
	"github.com/iliyamo/office-seat-rotation/internal/service/ports"
)

// Eligibility-class failures: the seat exists and is free, but its
// kind or release state does not match what the admission decision
// allows. Caller errors, surfaced verbatim and never retried.
var (
	ErrDesignatedOnly = errors.New("on your batch day, only designated seats are allowed")
	ErrFloatingOnly   = errors.New("on non-batch days, only floating or released seats can be booked")
)

// PolicyError wraps a rejected booking-window decision so handlers
// can surface the reason code and message without re-running policy.
type PolicyError struct {
	Decision policy.Decision
}

func (e *PolicyError) Error() string { return e.Decision.Message }

// BookRequest carries one admission-checked booking attempt. Now is
// injected by the caller so the commit-time policy re-check stays
// deterministic under test.
type BookRequest struct {
	EmployeeID uint64
	Batch      int
	SeatID     uint64
	Date       time.Time
	Now        time.Time
}

// Allocator turns admitted booking requests into durable,
// conflict-free seat assignments. All mutation funnels through Book
// and Release; concurrent attempts on the same seat and date
// serialize on the store's row lock so exactly one wins.
type Allocator struct {
	store ports.AllocationStore
}

// NewAllocator constructs an Allocator over the given store.
func NewAllocator(store ports.AllocationStore) *Allocator {
	if store == nil {
		panic("nil store passed to NewAllocator")
	}
	return &Allocator{store: store}
}

// Book creates a BOOKED row for (employee, seat, date).
//
// The booking window is re-evaluated here with the current instant
// rather than trusted from an earlier read: time may have advanced
// past a boundary between the caller's check and the commit. Under
// the seat row lock both uniqueness invariants and the eligibility
// class are re-checked, then the insert and commit complete the
// attempt; any failure path rolls the transaction back with no
// partial state.
func (a *Allocator) Book(ctx context.Context, req BookRequest) (model.Booking, policy.Decision, error) {
	dec := policy.Evaluate(req.Date, req.Batch, req.Now)
	if !dec.OK {
		return model.Booking{}, dec, &PolicyError{Decision: dec}
	}
	dateKey := policy.DateKey(req.Date)

	tx, err := a.store.Begin(ctx)
	if err != nil {
		return model.Booking{}, dec, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	seat, err := tx.SeatForUpdate(ctx, req.SeatID)
	if err != nil {
		return model.Booking{}, dec, err
	}
	if held, err := tx.HasActiveBookingForEmployee(ctx, req.EmployeeID, dateKey); err != nil {
		return model.Booking{}, dec, err
	} else if held {
		return model.Booking{}, dec, model.ErrAlreadyBooked
	}
	if taken, err := tx.HasActiveBookingForSeat(ctx, req.SeatID, dateKey); err != nil {
		return model.Booking{}, dec, err
	} else if taken {
		return model.Booking{}, dec, model.ErrSeatTaken
	}
	released, err := tx.SeatReleased(ctx, req.SeatID, dateKey)
	if err != nil {
		return model.Booking{}, dec, err
	}
	if !dec.SeatEligible(seat.SeatType, released) {
		if dec.IsBatchDay {
			return model.Booking{}, dec, ErrDesignatedOnly
		}
		return model.Booking{}, dec, ErrFloatingOnly
	}

	booking := model.Booking{
		BookingRef:  uuid.NewString(),
		EmployeeID:  req.EmployeeID,
		SeatID:      req.SeatID,
		BookingDate: dateKey,
	}
	if err := tx.InsertBooking(ctx, &booking); err != nil {
		return model.Booking{}, dec, err
	}
	if err := tx.Commit(); err != nil {
		return model.Booking{}, dec, err
	}
	committed = true
	return booking, dec, nil
}

// Release gives the requester's seat back to the date's floating
// pool and returns the fresh pool snapshot. The released seat is
// immediately visible to subsequent bookings; there is no separate
// activation step. Releasing without an active booking fails with
// model.ErrNoActiveBooking rather than succeeding silently.
func (a *Allocator) Release(ctx context.Context, employeeID, seatID uint64, date time.Time) (model.FloatingPool, error) {
	dateKey := policy.DateKey(date)
	if err := a.store.ReleaseBooking(ctx, employeeID, seatID, dateKey); err != nil {
		return model.FloatingPool{}, err
	}
	return a.store.FloatingPool(ctx, dateKey)
}
