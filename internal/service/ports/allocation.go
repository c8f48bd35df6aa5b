// Package ports declares the storage interfaces consumed by the
// allocation service. The production implementation lives in the
// repository package and is backed by MySQL transactions; tests
// substitute an in-memory store to exercise the serialization
// properties without a database.
package ports

import (
	"context"

	"github.com/iliyamo/office-seat-rotation/internal/model"
)

// AllocationTx is one exclusive allocation attempt for a seat. The
// implementation must hold a write lock on the seat row from
// SeatForUpdate until Commit or Rollback, so that two concurrent
// attempts on the same seat serialize. Every tx must end in exactly
// one of Commit or Rollback on all paths.
type AllocationTx interface {
	// SeatForUpdate loads the seat row under an exclusive lock.
	// Returns model.ErrSeatNotFound when the seat does not exist.
	SeatForUpdate(ctx context.Context, seatID uint64) (model.Seat, error)

	// HasActiveBookingForEmployee reports whether the employee holds
	// a BOOKED row for the date.
	HasActiveBookingForEmployee(ctx context.Context, employeeID uint64, date string) (bool, error)

	// HasActiveBookingForSeat reports whether the seat has a BOOKED
	// row for the date.
	HasActiveBookingForSeat(ctx context.Context, seatID uint64, date string) (bool, error)

	// SeatReleased reports whether the seat has a RELEASED row for
	// the date, i.e. it belongs to the day's floating pool.
	SeatReleased(ctx context.Context, seatID uint64, date string) (bool, error)

	// InsertBooking adds a new BOOKED row, populating the generated
	// ID and timestamps. A uniqueness violation is reported as
	// model.ErrSeatTaken.
	InsertBooking(ctx context.Context, b *model.Booking) error

	Commit() error
	Rollback() error
}

// AllocationStore is the durable seat/booking state the allocator
// mutates. It is the only shared mutable resource in the engine.
type AllocationStore interface {
	// Begin opens a new allocation attempt.
	Begin(ctx context.Context) (AllocationTx, error)

	// ReleaseBooking transitions the requester's BOOKED row for
	// (seat, date) to RELEASED. Returns model.ErrNoActiveBooking
	// when no such row exists. The row is never deleted.
	ReleaseBooking(ctx context.Context, employeeID, seatID uint64, date string) error

	// FloatingPool recomputes the floating-capacity snapshot for a
	// date. Never cached.
	FloatingPool(ctx context.Context, date string) (model.FloatingPool, error)
}
