package professional

import (
	"errors"
	"fmt"
)

// ErrProfessionalNotFound is returned when the professional id is unknown.
var ErrProfessionalNotFound = errors.New("professional not found")

// ValidationError reports the first invalid field of an update.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
