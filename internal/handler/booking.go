package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/office-seat-rotation/internal/model"
	"github.com/iliyamo/office-seat-rotation/internal/policy"
	"github.com/iliyamo/office-seat-rotation/internal/queue"
	"github.com/iliyamo/office-seat-rotation/internal/repository"
	"github.com/iliyamo/office-seat-rotation/internal/service"
)

// BookingHandler serves the rotation, seat-view and booking endpoints.
type BookingHandler struct {
	SeatRepo *repository.SeatRepo
	Bookings *repository.BookingRepo
	Alloc    *service.Allocator
}

func NewBookingHandler(seats *repository.SeatRepo, bookings *repository.BookingRepo, alloc *service.Allocator) *BookingHandler {
	return &BookingHandler{SeatRepo: seats, Bookings: bookings, Alloc: alloc}
}

// parseDateParam reads a YYYY-MM-DD query/body value, defaulting to
// today when empty.
func parseDateParam(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return policy.ParseDateOnly(policy.DateKey(now))
	}
	return policy.ParseDateOnly(raw)
}

// Rotation returns the batch schedule for one date. Pure function of
// the date, so the response is safe to cache.
//
// GET /v1/rotation?date=YYYY-MM-DD
func (h *BookingHandler) Rotation(c echo.Context) error {
	date, err := parseDateParam(c.QueryParam("date"), time.Now())
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, policy.RotationFor(date))
}

// FloatingStats returns the floating-pool snapshot for one date.
//
// GET /v1/floating-stats?date=YYYY-MM-DD
func (h *BookingHandler) FloatingStats(c echo.Context) error {
	date, err := parseDateParam(c.QueryParam("date"), time.Now())
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pool, err := h.Bookings.FloatingPool(ctx, policy.DateKey(date))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":          policy.DateKey(date),
		"rotation":      policy.RotationFor(date),
		"floating_pool": pool,
	})
}

// Seats returns the seat map for one date as the requester sees it:
// the window decision, the floating pool and the per-seat visibility
// rows. Past dates and weekends have no seat map at all and are
// rejected up front; any other closed window still renders the view
// with is_bookable false everywhere.
//
// GET /v1/seats?date=YYYY-MM-DD
func (h *BookingHandler) Seats(c echo.Context) error {
	employeeID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	batch, err := getBatch(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	now := time.Now()
	date, err := parseDateParam(c.QueryParam("date"), now)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	dec := policy.Evaluate(date, batch, now)
	if dec.Code == policy.ReasonPastDate || dec.Code == policy.ReasonWeekendBlocked {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": dec.Code, "error": dec.Message})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	dateKey := policy.DateKey(date)
	seats, err := h.SeatRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	booked, err := h.Bookings.ActiveBookingsFor(ctx, dateKey)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	released, err := h.Bookings.ReleasedSeatsFor(ctx, dateKey)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	pool, err := h.Bookings.FloatingPool(ctx, dateKey)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	views := policy.ResolveSeats(policy.VisibilityInput{
		Decision:    dec,
		RequesterID: employeeID,
		Seats:       seats,
		BookedBy:    booked,
		Released:    released,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"date":           dateKey,
		"rotation":       policy.RotationFor(date),
		"booking_window": dec,
		"floating_pool":  pool,
		"seats":          views,
	})
}

type bookReq struct {
	SeatID uint64 `json:"seat_id"`
	Date   string `json:"date"`
}

// BookSeat attempts to book one seat for the requester.
//
// POST /v1/book-seat
func (h *BookingHandler) BookSeat(c echo.Context) error {
	employeeID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	batch, err := getBatch(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req bookReq
	if err := c.Bind(&req); err != nil || req.SeatID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_id and date required"})
	}
	now := time.Now()
	date, err := parseDateParam(req.Date, now)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	// 10s rather than the read-side 5s: the attempt may wait on the
	// seat row lock behind other writers.
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	booking, dec, err := h.Alloc.Book(ctx, service.BookRequest{
		EmployeeID: employeeID,
		Batch:      batch,
		SeatID:     req.SeatID,
		Date:       date,
		Now:        now,
	})
	if err != nil {
		return bookErrorResponse(c, err)
	}

	seat, seatErr := h.SeatRepo.GetByID(ctx, req.SeatID)
	go publishEvent(queue.SeatEvent{
		Action:       string(model.BookingBooked),
		BookingRef:   booking.BookingRef,
		EmployeeID:   employeeID,
		SeatID:       req.SeatID,
		SeatNumber:   seat.SeatNumber,
		BookingDate:  booking.BookingDate,
		ActiveBatch:  dec.ActiveBatch,
		WindowReason: string(dec.Code),
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	})
	_ = seatErr // seat number in the event is best effort

	return c.JSON(http.StatusCreated, echo.Map{
		"booking":        booking,
		"booking_window": dec,
	})
}

// ReleaseSeat gives the requester's booking back to the date's
// floating pool and returns the updated pool snapshot.
//
// POST /v1/release-seat
func (h *BookingHandler) ReleaseSeat(c echo.Context) error {
	employeeID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req bookReq
	if err := c.Bind(&req); err != nil || req.SeatID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_id and date required"})
	}
	now := time.Now()
	date, err := parseDateParam(req.Date, now)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pool, err := h.Alloc.Release(ctx, employeeID, req.SeatID, date)
	if err != nil {
		if errors.Is(err, model.ErrNoActiveBooking) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "release failed"})
	}

	seat, seatErr := h.SeatRepo.GetByID(ctx, req.SeatID)
	go publishEvent(queue.SeatEvent{
		Action:      string(model.BookingReleased),
		EmployeeID:  employeeID,
		SeatID:      req.SeatID,
		SeatNumber:  seat.SeatNumber,
		BookingDate: policy.DateKey(date),
		ActiveBatch: policy.ActiveBatchFor(date),
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})
	_ = seatErr

	return c.JSON(http.StatusOK, echo.Map{
		"message":       "seat released to the floating pool",
		"date":          policy.DateKey(date),
		"floating_pool": pool,
	})
}

// WeeklyView lists all bookings for the working week starting at
// `start` (Monday expected, any day accepted; the range is start
// through start+4 days).
//
// GET /v1/weekly-view?start=YYYY-MM-DD
func (h *BookingHandler) WeeklyView(c echo.Context) error {
	start, err := parseDateParam(c.QueryParam("start"), time.Now())
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	end := start.AddDate(0, 0, 4)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Bookings.WeeklyView(ctx, policy.DateKey(start), policy.DateKey(end))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	// One rotation entry per day so clients can render headers
	// without re-deriving the schedule.
	days := make([]policy.Rotation, 0, 5)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, policy.RotationFor(d))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"start":    policy.DateKey(start),
		"end":      policy.DateKey(end),
		"days":     days,
		"bookings": items,
	})
}

// MyBookings lists the requester's bookings: one day with ?date=, or
// everything from today onward without it.
//
// GET /v1/my-bookings?date=YYYY-MM-DD
func (h *BookingHandler) MyBookings(c echo.Context) error {
	employeeID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var dateKey string
	if raw := strings.TrimSpace(c.QueryParam("date")); raw != "" {
		d, err := policy.ParseDateOnly(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		dateKey = policy.DateKey(d)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Bookings.ListForEmployee(ctx, employeeID, dateKey, policy.DateKey(time.Now()))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": items})
}

// bookErrorResponse maps allocation failures to HTTP responses.
func bookErrorResponse(c echo.Context, err error) error {
	var policyErr *service.PolicyError
	switch {
	case errors.As(err, &policyErr):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"code":           policyErr.Decision.Code,
			"error":          policyErr.Decision.Message,
			"booking_window": policyErr.Decision,
		})
	case errors.Is(err, model.ErrSeatNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, model.ErrSeatTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, model.ErrAlreadyBooked),
		errors.Is(err, service.ErrDesignatedOnly),
		errors.Is(err, service.ErrFloatingOnly):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}
}

// publishEvent fires a seat event with its own short deadline,
// detached from the request context.
func publishEvent(ev queue.SeatEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = service.PublishSeatEvent(ctx, ev)
}
