package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/office-seat-rotation/internal/model"
	"github.com/iliyamo/office-seat-rotation/internal/policy"
	"github.com/iliyamo/office-seat-rotation/internal/service"
)

func getContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRotationEndpoint(t *testing.T) {
	h := &BookingHandler{}

	c, rec := getContext(t, "/v1/rotation?date=2026-03-12")
	require.NoError(t, h.Rotation(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var r policy.Rotation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
	assert.Equal(t, "2026-03-12", r.Date)
	assert.Equal(t, "Thursday", r.DayLabel)
	assert.Equal(t, 2, r.ActiveBatch)
}

func TestRotationEndpointRejectsBadDate(t *testing.T) {
	h := &BookingHandler{}
	for _, raw := range []string{"2026-02-30", "12-03-2026", "tomorrow"} {
		c, rec := getContext(t, "/v1/rotation?date="+raw)
		require.NoError(t, h.Rotation(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, raw)
	}
}

func TestBookErrorResponseMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"window rejection", &service.PolicyError{Decision: policy.Decision{
			Code:    policy.ReasonFloatingOpens3PM,
			Message: "Floating seats for non-batch users open after 3:00 PM.",
		}}, http.StatusBadRequest},
		{"seat missing", model.ErrSeatNotFound, http.StatusNotFound},
		{"seat conflict", model.ErrSeatTaken, http.StatusConflict},
		{"double booking", model.ErrAlreadyBooked, http.StatusBadRequest},
		{"wrong seat class batch day", service.ErrDesignatedOnly, http.StatusBadRequest},
		{"wrong seat class floating day", service.ErrFloatingOnly, http.StatusBadRequest},
		{"unknown failure", assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := getContext(t, "/v1/book-seat")
			require.NoError(t, bookErrorResponse(c, tc.err))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestBookErrorResponseCarriesReasonCode(t *testing.T) {
	c, rec := getContext(t, "/v1/book-seat")
	err := &service.PolicyError{Decision: policy.Decision{
		Code:    policy.ReasonWeekendBlocked,
		Message: "Weekend booking is not allowed.",
	}}
	require.NoError(t, bookErrorResponse(c, err))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, string(policy.ReasonWeekendBlocked), body["code"])
	assert.Equal(t, "Weekend booking is not allowed.", body["error"])
}
