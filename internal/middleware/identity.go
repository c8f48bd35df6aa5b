package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// contextUserID returns the authenticated user ID from the request
// context as a string for use in cache and rate-limit keys, or
// "anon" when no user is authenticated. The JWT middleware stores
// the raw claim, whose concrete type depends on the JSON decoder.
func contextUserID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case nil:
		return "anon"
	case string:
		if v == "" {
			return "anon"
		}
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprint(v)
	}
}
