package schedule

import (
	"fmt"
	"strings"
)

// SchemaError means the sheet lacks a required column. Nothing can be rendered from it.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schedule sheet is missing required column(s): %s", strings.Join(e.Missing, ", "))
}

// ValidationError rejects a submission. Reason is the user-facing message.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
