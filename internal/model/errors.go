package model

import "errors"

// Sentinel errors shared by the allocation engine and the storage
// layer. Handlers translate these into HTTP responses; everything
// else that comes out of the store is treated as a transient storage
// failure and is safe to retry whole.
var (
	// ErrSeatNotFound means the referenced seat does not exist.
	ErrSeatNotFound = errors.New("seat not found")

	// ErrSeatTaken means the seat already has an active booking for
	// the date, or a uniqueness violation surfaced at commit. The
	// caller should retry with a different seat, not blindly.
	ErrSeatTaken = errors.New("seat is already booked for this date")

	// ErrAlreadyBooked means the requester already holds an active
	// booking for the date and may not take a second seat.
	ErrAlreadyBooked = errors.New("you can book only one seat per day")

	// ErrNoActiveBooking means a release was attempted without a
	// matching BOOKED row owned by the requester.
	ErrNoActiveBooking = errors.New("no active booking found to release")
)
