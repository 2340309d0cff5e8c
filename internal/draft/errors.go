package draft

import (
	"errors"
	"fmt"
)

// ValidationError blocks a forward step transition or a submission. It never
// reaches the chain boundary; callers surface it as a field-level message.
type ValidationError struct {
	Step    Step
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %s: %s", e.Step, e.Message)
}

var (
	// ErrAlreadySubmitted is returned when mutating a finalized draft.
	ErrAlreadySubmitted = errors.New("draft already submitted")

	// ErrNotFound is returned by the store for an unknown draft ID.
	ErrNotFound = errors.New("draft not found")
)
