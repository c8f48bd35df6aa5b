package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/office-seat-rotation/internal/model"
)

// SeatRepo provides read access to the seats table. Seats are
// provisioned by the seed tool and never mutated by the engine, so
// there are no write methods here.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo returns a new SeatRepo bound to the given database.
func NewSeatRepo(db *sql.DB) *SeatRepo { return &SeatRepo{db: db} }

// ListAll returns every seat ordered by seat number.
func (r *SeatRepo) ListAll(ctx context.Context) ([]model.Seat, error) {
	const q = `SELECT id, seat_number, seat_type, assigned_batch FROM seats ORDER BY seat_number ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seats := make([]model.Seat, 0)
	for rows.Next() {
		s, err := scanSeat(rows.Scan)
		if err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}

// GetByID returns one seat, or model.ErrSeatNotFound.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (model.Seat, error) {
	const q = `SELECT id, seat_number, seat_type, assigned_batch FROM seats WHERE id = ?`
	s, err := scanSeat(r.db.QueryRowContext(ctx, q, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Seat{}, model.ErrSeatNotFound
	}
	return s, err
}

// scanSeat reads one seats row; the nullable assigned_batch column
// becomes a nil pointer for floating seats.
func scanSeat(scan func(dest ...any) error) (model.Seat, error) {
	var s model.Seat
	var batch sql.NullInt64
	if err := scan(&s.ID, &s.SeatNumber, &s.SeatType, &batch); err != nil {
		return model.Seat{}, err
	}
	if batch.Valid {
		b := int(batch.Int64)
		s.AssignedBatch = &b
	}
	return s, nil
}
