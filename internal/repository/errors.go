// Package repository implements data access over MySQL for seats,
// bookings, employees and refresh tokens. Sentinel errors defined
// here cover repository-local failure modes; booking-engine
// sentinels shared with the service layer live in the model package.
package repository

import (
	"errors"
	"strings"
)

// ErrEmployeeCodeExists is returned when registering an employee
// whose code is already taken. Handlers should translate this into
// an HTTP 409 response.
var ErrEmployeeCodeExists = errors.New("employee code already exists")

// isDuplicateKey reports whether err is a MySQL duplicate-key
// violation (error 1062). The driver does not expose a typed error
// for this, so the number is matched in the message.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
