// Package queue defines message payloads exchanged over the message
// broker and the background consumer that turns them into an audit
// log.
package queue

// SeatEvent is published when a seat is booked or released. It
// carries enough information for downstream consumers to log or
// notify without querying the primary database. Action is "BOOKED"
// or "RELEASED".
type SeatEvent struct {
	Action       string `json:"action"`
	BookingRef   string `json:"booking_ref,omitempty"`
	EmployeeID   uint64 `json:"employee_id"`
	SeatID       uint64 `json:"seat_id"`
	SeatNumber   uint32 `json:"seat_number"`
	BookingDate  string `json:"booking_date"`
	ActiveBatch  int    `json:"active_batch"`
	WindowReason string `json:"window_reason"`
	OccurredAt   string `json:"occurred_at"`
}
