package booking

import "errors"

var (
	// ErrInvalidInput wraps every request validation failure.
	ErrInvalidInput = errors.New("invalid input")
	// ErrProfessionalNotFound is returned when the professional id is unknown.
	ErrProfessionalNotFound = errors.New("professional not found")
)
