package store

import (
	"errors"
	"strings"
)

// Sentinel errors the API layer translates to HTTP statuses.
var (
	ErrNotFound               = errors.New("not found")
	ErrDuplicateChassisNumber = errors.New("chassis number already exists")
	ErrDuplicateName          = errors.New("name already exists")
	ErrVehicleSold            = errors.New("vehicle is sold")
	ErrStatusNotSettable      = errors.New("status is managed by lifecycle operations")
	ErrUnknownLocation        = errors.New("unknown or inactive location")
	ErrLocationInUse          = errors.New("location still holds vehicles")
)

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure on the given column (as "table.column"). Uniqueness is enforced
// by the database, not by in-process locking; this is how the store
// recognizes a lost race or a plain duplicate.
func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") &&
		!strings.Contains(msg, "constraint failed: index") {
		return false
	}
	return column == "" || strings.Contains(msg, column)
}
