package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/office-seat-rotation/internal/model"
	"github.com/iliyamo/office-seat-rotation/internal/service/ports"
)

// BookingRepo provides data access to the bookings table and is the
// MySQL implementation of ports.AllocationStore. Booking rows are
// append/transition only: a row is inserted as BOOKED and may later
// be flipped to RELEASED, but is never deleted, so the table retains
// the full allocation history for each seat and day.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

var _ ports.AllocationStore = (*BookingRepo)(nil)

// Begin opens an allocation transaction. Lock waits inside the tx
// are bounded by the caller's context deadline.
func (r *BookingRepo) Begin(ctx context.Context) (ports.AllocationTx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &allocationTx{tx: tx}, nil
}

// allocationTx wraps a *sql.Tx for one allocation attempt. The
// SELECT ... FOR UPDATE in SeatForUpdate holds the seat row lock
// until commit or rollback, serializing concurrent attempts on the
// same seat.
type allocationTx struct {
	tx *sql.Tx
}

func (t *allocationTx) SeatForUpdate(ctx context.Context, seatID uint64) (model.Seat, error) {
	const q = `SELECT id, seat_number, seat_type, assigned_batch FROM seats WHERE id = ? FOR UPDATE`
	s, err := scanSeat(t.tx.QueryRowContext(ctx, q, seatID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Seat{}, model.ErrSeatNotFound
	}
	return s, err
}

func (t *allocationTx) HasActiveBookingForEmployee(ctx context.Context, employeeID uint64, date string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM bookings WHERE employee_id = ? AND booking_date = ? AND status = 'BOOKED')`
	var exists bool
	err := t.tx.QueryRowContext(ctx, q, employeeID, date).Scan(&exists)
	return exists, err
}

func (t *allocationTx) HasActiveBookingForSeat(ctx context.Context, seatID uint64, date string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM bookings WHERE seat_id = ? AND booking_date = ? AND status = 'BOOKED')`
	var exists bool
	err := t.tx.QueryRowContext(ctx, q, seatID, date).Scan(&exists)
	return exists, err
}

func (t *allocationTx) SeatReleased(ctx context.Context, seatID uint64, date string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM bookings WHERE seat_id = ? AND booking_date = ? AND status = 'RELEASED')`
	var exists bool
	err := t.tx.QueryRowContext(ctx, q, seatID, date).Scan(&exists)
	return exists, err
}

// InsertBooking adds the BOOKED row. The schema's partial unique
// keys on (seat, date) and (employee, date) are the second line of
// defense behind the row lock; a duplicate-key error from a race
// that slipped past the lock is reported as model.ErrSeatTaken so
// callers treat it as a conflict, not a generic failure.
func (t *allocationTx) InsertBooking(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (booking_ref, employee_id, seat_id, booking_date, status) VALUES (?, ?, ?, ?, 'BOOKED')`
	res, err := t.tx.ExecContext(ctx, q, b.BookingRef, b.EmployeeID, b.SeatID, b.BookingDate)
	if err != nil {
		if isDuplicateKey(err) {
			return model.ErrSeatTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	b.Status = model.BookingBooked
	return nil
}

func (t *allocationTx) Commit() error   { return t.tx.Commit() }
func (t *allocationTx) Rollback() error { return t.tx.Rollback() }

// ReleaseBooking flips the requester's BOOKED row to RELEASED. The
// single UPDATE is atomic on its own, so no explicit transaction is
// needed; zero affected rows means there was nothing to release.
func (r *BookingRepo) ReleaseBooking(ctx context.Context, employeeID, seatID uint64, date string) error {
	const q = `UPDATE bookings SET status = 'RELEASED'
	           WHERE employee_id = ? AND seat_id = ? AND booking_date = ? AND status = 'BOOKED'`
	res, err := r.db.ExecContext(ctx, q, employeeID, seatID, date)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNoActiveBooking
	}
	return nil
}

// FloatingPool counts the base floating seats plus designated seats
// released for the date. Computed fresh on every call.
func (r *BookingRepo) FloatingPool(ctx context.Context, date string) (model.FloatingPool, error) {
	var p model.FloatingPool
	const baseQ = `SELECT COUNT(*) FROM seats WHERE seat_type = 'FLOATING'`
	if err := r.db.QueryRowContext(ctx, baseQ).Scan(&p.BaseFloating); err != nil {
		return model.FloatingPool{}, err
	}
	const relQ = `SELECT COUNT(DISTINCT b.seat_id)
	              FROM bookings b
	              JOIN seats s ON s.id = b.seat_id
	              WHERE b.booking_date = ? AND b.status = 'RELEASED' AND s.seat_type = 'DESIGNATED'`
	if err := r.db.QueryRowContext(ctx, relQ, date).Scan(&p.ReleasedDesignated); err != nil {
		return model.FloatingPool{}, err
	}
	p.EffectiveFloating = p.BaseFloating + p.ReleasedDesignated
	return p, nil
}

// ActiveBookingsFor maps seat ID to the employee holding a BOOKED
// row for the date.
func (r *BookingRepo) ActiveBookingsFor(ctx context.Context, date string) (map[uint64]uint64, error) {
	const q = `SELECT seat_id, employee_id FROM bookings WHERE booking_date = ? AND status = 'BOOKED'`
	rows, err := r.db.QueryContext(ctx, q, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	booked := make(map[uint64]uint64)
	for rows.Next() {
		var seatID, employeeID uint64
		if err := rows.Scan(&seatID, &employeeID); err != nil {
			return nil, err
		}
		booked[seatID] = employeeID
	}
	return booked, rows.Err()
}

// ReleasedSeatsFor returns the set of seat IDs with a RELEASED row
// for the date, i.e. the day's temporary additions to the floating
// pool.
func (r *BookingRepo) ReleasedSeatsFor(ctx context.Context, date string) (map[uint64]bool, error) {
	const q = `SELECT DISTINCT seat_id FROM bookings WHERE booking_date = ? AND status = 'RELEASED'`
	rows, err := r.db.QueryContext(ctx, q, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	released := make(map[uint64]bool)
	for rows.Next() {
		var seatID uint64
		if err := rows.Scan(&seatID); err != nil {
			return nil, err
		}
		released[seatID] = true
	}
	return released, rows.Err()
}

// EmployeeBooking is a booking joined with its seat for listings.
type EmployeeBooking struct {
	BookingID   uint64              `json:"booking_id"`
	BookingRef  string              `json:"booking_ref"`
	BookingDate string              `json:"booking_date"`
	Status      model.BookingStatus `json:"status"`
	SeatID      uint64              `json:"seat_id"`
	SeatNumber  uint32              `json:"seat_number"`
}

// ListForEmployee returns the employee's bookings. With a date it
// returns that day's rows; otherwise all rows from fromDate onward.
func (r *BookingRepo) ListForEmployee(ctx context.Context, employeeID uint64, date, fromDate string) ([]EmployeeBooking, error) {
	q := `SELECT b.id, b.booking_ref, b.booking_date, b.status, s.id, s.seat_number
	      FROM bookings b
	      JOIN seats s ON s.id = b.seat_id
	      WHERE b.employee_id = ?`
	args := []any{employeeID}
	if date != "" {
		q += ` AND b.booking_date = ?`
		args = append(args, date)
	} else {
		q += ` AND b.booking_date >= ?`
		args = append(args, fromDate)
	}
	q += ` ORDER BY b.booking_date ASC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]EmployeeBooking, 0)
	for rows.Next() {
		var eb EmployeeBooking
		var day time.Time
		if err := rows.Scan(&eb.BookingID, &eb.BookingRef, &day, &eb.Status, &eb.SeatID, &eb.SeatNumber); err != nil {
			return nil, err
		}
		eb.BookingDate = day.Format("2006-01-02")
		items = append(items, eb)
	}
	return items, rows.Err()
}

// WeeklyBooking is one row of the weekly occupancy view.
type WeeklyBooking struct {
	BookingDate  string              `json:"booking_date"`
	Status       model.BookingStatus `json:"status"`
	SeatID       uint64              `json:"seat_id"`
	SeatNumber   uint32              `json:"seat_number"`
	EmployeeID   uint64              `json:"employee_id"`
	EmployeeName string              `json:"employee_name"`
}

// WeeklyView lists all bookings between startDate and endDate
// inclusive, joined with seat and employee details, ordered by date
// then seat number.
func (r *BookingRepo) WeeklyView(ctx context.Context, startDate, endDate string) ([]WeeklyBooking, error) {
	const q = `SELECT b.booking_date, b.status, s.id, s.seat_number, e.id, e.name
	           FROM bookings b
	           JOIN seats s ON s.id = b.seat_id
	           JOIN employees e ON e.id = b.employee_id
	           WHERE b.booking_date >= ? AND b.booking_date <= ?
	           ORDER BY b.booking_date ASC, s.seat_number ASC`
	rows, err := r.db.QueryContext(ctx, q, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]WeeklyBooking, 0)
	for rows.Next() {
		var wb WeeklyBooking
		var day time.Time
		if err := rows.Scan(&day, &wb.Status, &wb.SeatID, &wb.SeatNumber, &wb.EmployeeID, &wb.EmployeeName); err != nil {
			return nil, err
		}
		wb.BookingDate = day.Format("2006-01-02")
		items = append(items, wb)
	}
	return items, rows.Err()
}
