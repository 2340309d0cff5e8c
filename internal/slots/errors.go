package slots

import "errors"

var (
	// ErrIncompleteSpec is returned when a required field is missing.
	ErrIncompleteSpec = errors.New("time slot spec is incomplete")

	// ErrInvalidDayPattern is returned for an unknown day pattern token.
	ErrInvalidDayPattern = errors.New("invalid day pattern")

	// ErrInvalidTime is returned when a time is not HH:MM 24-hour form.
	ErrInvalidTime = errors.New("invalid time, expected HH:MM")

	// ErrInvalidPrice is returned when the base price is not a non-negative
	// decimal number.
	ErrInvalidPrice = errors.New("invalid base price")
)
