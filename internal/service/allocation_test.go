package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/office-seat-rotation/internal/model"
	"github.com/iliyamo/office-seat-rotation/internal/policy"
	"github.com/iliyamo/office-seat-rotation/internal/service/ports"
)

// memStore is an in-memory AllocationStore. SeatForUpdate takes the
// store mutex and holds it until Commit or Rollback, mirroring the
// row lock the MySQL implementation relies on.
type memStore struct {
	mu       sync.Mutex
	seats    map[uint64]model.Seat
	bookings []memBooking
	nextID   uint64
}

type memBooking struct {
	id         uint64
	employeeID uint64
	seatID     uint64
	date       string
	status     model.BookingStatus
}

var _ ports.AllocationStore = (*memStore)(nil)

func newMemStore(seats ...model.Seat) *memStore {
	s := &memStore{seats: make(map[uint64]model.Seat)}
	for _, seat := range seats {
		s.seats[seat.ID] = seat
	}
	return s
}

func (s *memStore) Begin(ctx context.Context) (ports.AllocationTx, error) {
	return &memTx{store: s}, nil
}

func (s *memStore) ReleaseBooking(ctx context.Context, employeeID, seatID uint64, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		b := &s.bookings[i]
		if b.employeeID == employeeID && b.seatID == seatID && b.date == date && b.status == model.BookingBooked {
			b.status = model.BookingReleased
			return nil
		}
	}
	return model.ErrNoActiveBooking
}

func (s *memStore) FloatingPool(ctx context.Context, date string) (model.FloatingPool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var p model.FloatingPool
	for _, seat := range s.seats {
		if seat.SeatType == model.SeatFloating {
			p.BaseFloating++
		}
	}
	released := map[uint64]bool{}
	for _, b := range s.bookings {
		if b.date == date && b.status == model.BookingReleased && s.seats[b.seatID].SeatType == model.SeatDesignated {
			released[b.seatID] = true
		}
	}
	p.ReleasedDesignated = len(released)
	p.EffectiveFloating = p.BaseFloating + p.ReleasedDesignated
	return p, nil
}

type memTx struct {
	store  *memStore
	locked bool
	staged *model.Booking
}

func (t *memTx) SeatForUpdate(ctx context.Context, seatID uint64) (model.Seat, error) {
	t.store.mu.Lock()
	t.locked = true
	seat, ok := t.store.seats[seatID]
	if !ok {
		return model.Seat{}, model.ErrSeatNotFound
	}
	return seat, nil
}

func (t *memTx) HasActiveBookingForEmployee(ctx context.Context, employeeID uint64, date string) (bool, error) {
	for _, b := range t.store.bookings {
		if b.employeeID == employeeID && b.date == date && b.status == model.BookingBooked {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) HasActiveBookingForSeat(ctx context.Context, seatID uint64, date string) (bool, error) {
	for _, b := range t.store.bookings {
		if b.seatID == seatID && b.date == date && b.status == model.BookingBooked {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) SeatReleased(ctx context.Context, seatID uint64, date string) (bool, error) {
	for _, b := range t.store.bookings {
		if b.seatID == seatID && b.date == date && b.status == model.BookingReleased {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) InsertBooking(ctx context.Context, b *model.Booking) error {
	for _, existing := range t.store.bookings {
		if existing.seatID == b.SeatID && existing.date == b.BookingDate && existing.status == model.BookingBooked {
			return model.ErrSeatTaken
		}
	}
	t.store.nextID++
	b.ID = t.store.nextID
	b.Status = model.BookingBooked
	t.staged = b
	return nil
}

func (t *memTx) Commit() error {
	if t.staged != nil {
		t.store.bookings = append(t.store.bookings, memBooking{
			id:         t.staged.ID,
			employeeID: t.staged.EmployeeID,
			seatID:     t.staged.SeatID,
			date:       t.staged.BookingDate,
			status:     model.BookingBooked,
		})
	}
	t.unlock()
	return nil
}

func (t *memTx) Rollback() error {
	t.staged = nil
	t.unlock()
	return nil
}

func (t *memTx) unlock() {
	if t.locked {
		t.locked = false
		t.store.mu.Unlock()
	}
}

// ----- fixtures -----

func batchPtr(b int) *int { return &b }

func officeSeats() []model.Seat {
	return []model.Seat{
		{ID: 1, SeatNumber: 1, SeatType: model.SeatDesignated, AssignedBatch: batchPtr(1)},
		{ID: 2, SeatNumber: 2, SeatType: model.SeatDesignated, AssignedBatch: batchPtr(1)},
		{ID: 3, SeatNumber: 41, SeatType: model.SeatFloating},
	}
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := policy.ParseDateOnly(s)
	require.NoError(t, err)
	return d
}

// batchMonday is a Monday in an odd ISO week (week 11 of 2026), so
// batch 1 is active.
const batchMonday = "2026-03-09"

func batchDayRequest(t *testing.T, employeeID, seatID uint64) BookRequest {
	return BookRequest{
		EmployeeID: employeeID,
		Batch:      1,
		SeatID:     seatID,
		Date:       day(t, batchMonday),
		Now:        day(t, batchMonday).Add(10 * time.Hour),
	}
}

// ----- tests -----

func TestBookSuccess(t *testing.T) {
	store := newMemStore(officeSeats()...)
	alloc := NewAllocator(store)

	booking, dec, err := alloc.Book(context.Background(), batchDayRequest(t, 100, 1))
	require.NoError(t, err)
	assert.Equal(t, policy.ReasonBatchDay, dec.Code)
	assert.Equal(t, uint64(100), booking.EmployeeID)
	assert.Equal(t, uint64(1), booking.SeatID)
	assert.Equal(t, batchMonday, booking.BookingDate)
	assert.Equal(t, model.BookingBooked, booking.Status)
	assert.NotEmpty(t, booking.BookingRef)
	assert.NotZero(t, booking.ID)
}

func TestBookSeatAlreadyTaken(t *testing.T) {
	store := newMemStore(officeSeats()...)
	alloc := NewAllocator(store)

	_, _, err := alloc.Book(context.Background(), batchDayRequest(t, 100, 1))
	require.NoError(t, err)

	_, _, err = alloc.Book(context.Background(), batchDayRequest(t, 101, 1))
	assert.ErrorIs(t, err, model.ErrSeatTaken)
}

func TestBookOneSeatPerEmployeePerDay(t *testing.T) {
	store := newMemStore(officeSeats()...)
	alloc := NewAllocator(store)

	_, _, err := alloc.Book(context.Background(), batchDayRequest(t, 100, 1))
	require.NoError(t, err)

	_, _, err = alloc.Book(context.Background(), batchDayRequest(t, 100, 2))
	assert.ErrorIs(t, err, model.ErrAlreadyBooked)
}

func TestBookSeatNotFound(t *testing.T) {
	store := newMemStore(officeSeats()...)
	alloc := NewAllocator(store)

	_, _, err := alloc.Book(context.Background(), batchDayRequest(t, 100, 999))
	assert.ErrorIs(t, err, model.ErrSeatNotFound)
}

func TestBookEligibilityClasses(t *testing.T) {
	store := newMemStore(officeSeats()...)
	alloc := NewAllocator(store)

	// Floating seat on a batch day.
	req := batchDayRequest(t, 100, 3)
	_, _, err := alloc.Book(context.Background(), req)
	assert.ErrorIs(t, err, ErrDesignatedOnly)

	// Unreleased designated seat on a non-batch window (Sunday 16:00
	// targeting Monday).
	_, _, err = alloc.Book(context.Background(), BookRequest{
		EmployeeID: 200,
		Batch:      2,
		SeatID:     1,
		Date:       day(t, batchMonday),
		Now:        day(t, "2026-03-08").Add(16 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrFloatingOnly)
}

func TestBookRejectedWindow(t *testing.T) {
	store := newMemStore(officeSeats()...)
	alloc := NewAllocator(store)

	// Non-batch requester before 15:00: rejected before any storage
	// work happens.
	_, dec, err := alloc.Book(context.Background(), BookRequest{
		EmployeeID: 200,
		Batch:      2,
		SeatID:     3,
		Date:       day(t, batchMonday),
		Now:        day(t, batchMonday).Add(10 * time.Hour),
	})
	var policyErr *PolicyError
	require.ErrorAs(t, err, &policyErr)
	assert.Equal(t, policy.ReasonFloatingOpens3PM, policyErr.Decision.Code)
	assert.Equal(t, dec, policyErr.Decision)
	assert.Empty(t, store.bookings)
}

func TestBookConcurrentSameSeatExactlyOneWins(t *testing.T) {
	store := newMemStore(officeSeats()...)
	alloc := NewAllocator(store)

	const attempts = 32
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Distinct employees so only the seat invariant contends.
			_, _, err := alloc.Book(context.Background(), batchDayRequest(t, uint64(1000+i), 1))
			errs[i] = err
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, model.ErrSeatTaken)
		}
	}
	assert.Equal(t, 1, wins)

	active := 0
	for _, b := range store.bookings {
		if b.seatID == 1 && b.date == batchMonday && b.status == model.BookingBooked {
			active++
		}
	}
	assert.Equal(t, 1, active)
}

func TestReleaseReturnsPoolSnapshot(t *testing.T) {
	store := newMemStore(officeSeats()...)
	alloc := NewAllocator(store)

	_, _, err := alloc.Book(context.Background(), batchDayRequest(t, 100, 1))
	require.NoError(t, err)

	pool, err := alloc.Release(context.Background(), 100, 1, day(t, batchMonday))
	require.NoError(t, err)
	assert.Equal(t, 1, pool.BaseFloating)
	assert.Equal(t, 1, pool.ReleasedDesignated)
	assert.Equal(t, 2, pool.EffectiveFloating)
}

func TestReleaseWithoutActiveBooking(t *testing.T) {
	store := newMemStore(officeSeats()...)
	alloc := NewAllocator(store)

	_, err := alloc.Release(context.Background(), 100, 1, day(t, batchMonday))
	assert.ErrorIs(t, err, model.ErrNoActiveBooking)

	// Releasing twice is also rejected.
	_, _, err = alloc.Book(context.Background(), batchDayRequest(t, 100, 1))
	require.NoError(t, err)
	_, err = alloc.Release(context.Background(), 100, 1, day(t, batchMonday))
	require.NoError(t, err)
	_, err = alloc.Release(context.Background(), 100, 1, day(t, batchMonday))
	assert.ErrorIs(t, err, model.ErrNoActiveBooking)
}

func TestReleasedSeatBookableByOtherBatch(t *testing.T) {
	store := newMemStore(officeSeats()...)
	alloc := NewAllocator(store)

	// Batch 1 books and releases their designated seat for Monday.
	_, _, err := alloc.Book(context.Background(), batchDayRequest(t, 100, 1))
	require.NoError(t, err)
	_, err = alloc.Release(context.Background(), 100, 1, day(t, batchMonday))
	require.NoError(t, err)

	// A batch 2 employee picks it up through the floating window on
	// Sunday evening.
	booking, dec, err := alloc.Book(context.Background(), BookRequest{
		EmployeeID: 200,
		Batch:      2,
		SeatID:     1,
		Date:       day(t, batchMonday),
		Now:        day(t, "2026-03-08").Add(16 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, policy.ReasonNonBatchDay, dec.Code)
	assert.Equal(t, uint64(200), booking.EmployeeID)

	// Rebooking by the original holder is blocked again: the seat now
	// has an active booking.
	_, _, err = alloc.Book(context.Background(), batchDayRequest(t, 101, 1))
	assert.ErrorIs(t, err, model.ErrSeatTaken)
}

func TestBookRolledBackAttemptLeavesNoState(t *testing.T) {
	store := newMemStore(officeSeats()...)
	alloc := NewAllocator(store)

	_, _, err := alloc.Book(context.Background(), batchDayRequest(t, 100, 3))
	require.Error(t, err)
	assert.Empty(t, store.bookings)

	// The store lock must have been dropped by the rollback; a new
	// attempt proceeds immediately.
	done := make(chan error, 1)
	go func() {
		_, _, err := alloc.Book(context.Background(), batchDayRequest(t, 100, 1))
		done <- err
	}()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("allocation deadlocked after rollback")
	}
}

func TestPolicyErrorMessage(t *testing.T) {
	var err error = &PolicyError{Decision: policy.Decision{Message: "Weekend booking is not allowed."}}
	var target *PolicyError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, "Weekend booking is not allowed.", err.Error())
}
