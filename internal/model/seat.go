package model

// SeatType distinguishes permanently assigned seats from the shared
// floating pool. Designated seats carry the batch that owns them;
// floating seats have no batch and are open to anyone once the
// booking window admits floating eligibility.
type SeatType string

const (
	SeatDesignated SeatType = "DESIGNATED" // seats.seat_type = 'DESIGNATED'
	SeatFloating   SeatType = "FLOATING"   // seats.seat_type = 'FLOATING'
)

// Seat describes one physical workspace seat. Seats are provisioned
// once at seed time and are never created or deleted by the booking
// engine; number and type are stable for the lifetime of the seat.
//
// Fields:
//  ID            – primary key identifier.
//  SeatNumber    – unique, human-facing seat number.
//  SeatType      – DESIGNATED or FLOATING.
//  AssignedBatch – owning batch for designated seats; nil for floating.
type Seat struct {
	ID            uint64   `json:"id"`             // seats.id
	SeatNumber    uint32   `json:"seat_number"`    // seats.seat_number
	SeatType      SeatType `json:"seat_type"`      // seats.seat_type
	AssignedBatch *int     `json:"assigned_batch"` // seats.assigned_batch (nullable)
}
