package models

import "fmt"

// ValidationError rejects bad input before any mutation happens. Field names
// the offending attribute; Reason is safe to show to the operator.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
