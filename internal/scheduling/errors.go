package scheduling

import "errors"

// Sentinel errors for the scheduling core. Handlers translate these into
// HTTP status codes (conflict 409, not found 404, everything else 400).
var (
	ErrInvalidInterval = errors.New("interval end must be after its start")
	ErrInvalidDate     = errors.New("invalid or past date")
	ErrServiceNotFound = errors.New("service not found")
	ErrStylistNotFound = errors.New("stylist not found")
	ErrPastDate        = errors.New("appointment time is in the past")
	ErrOutOfHours      = errors.New("appointment time is outside salon hours")
	ErrConflict        = errors.New("stylist already has an appointment in that time range")
)
