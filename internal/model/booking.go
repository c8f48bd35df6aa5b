package model

import "time"

// BookingStatus is the lifecycle state of a booking row. Rows only
// ever move BOOKED -> RELEASED; they are never deleted, so the table
// doubles as an audit history of who held which seat on which day.
type BookingStatus string

const (
	BookingBooked   BookingStatus = "BOOKED"   // bookings.status = 'BOOKED'
	BookingReleased BookingStatus = "RELEASED" // bookings.status = 'RELEASED'
)

// Booking records that an employee holds (or once held) a seat for a
// calendar day. BookingDate is a date key in YYYY-MM-DD form with no
// time component. At most one BOOKED row may exist per (employee,
// date) and per (seat, date); the schema enforces both with partial
// unique keys built from generated columns.
//
// Fields:
//  ID          – primary key identifier.
//  BookingRef  – opaque UUID reference returned to clients.
//  EmployeeID  – employee holding the seat.
//  SeatID      – seat being held.
//  BookingDate – calendar day key (YYYY-MM-DD).
//  Status      – BOOKED or RELEASED.
//  CreatedAt   – creation timestamp.
type Booking struct {
	ID          uint64        `json:"id"`           // bookings.id
	BookingRef  string        `json:"booking_ref"`  // bookings.booking_ref
	EmployeeID  uint64        `json:"employee_id"`  // bookings.employee_id
	SeatID      uint64        `json:"seat_id"`      // bookings.seat_id
	BookingDate string        `json:"booking_date"` // bookings.booking_date (DATE)
	Status      BookingStatus `json:"status"`       // bookings.status
	CreatedAt   time.Time     `json:"created_at"`   // bookings.created_at
}

// FloatingPool is the derived floating-capacity snapshot for one
// date. It is recomputed on every query and never cached: a released
// designated seat must count toward the pool immediately.
type FloatingPool struct {
	BaseFloating       int `json:"base_floating"`
	ReleasedDesignated int `json:"released_designated"`
	EffectiveFloating  int `json:"effective_floating"`
}
