package args

import "fmt"

// MissingFieldError reports a required call argument that was not provided.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// ValidationError reports an argument that was present but could not be
// coerced to the expected numeric type.
type ValidationError struct {
	Field string
	Value any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q: %v is not a number", e.Field, e.Value)
}
