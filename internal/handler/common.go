// Package handler implements the HTTP handlers of the seat rotation
// API. Handlers translate between the transport layer and the
// policy/allocation engine; all booking rules live in the policy and
// service packages.
package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

// getUserID extracts the user_id claim from echo.Context and
// converts it to uint64. JWT claims decode as float64, but other
// middlewares may store native integer types.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getBatch extracts the rotation batch claim from echo.Context.
func getBatch(c echo.Context) (int, error) {
	switch t := c.Get("batch").(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		return int(t), nil
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid batch in context")
}
