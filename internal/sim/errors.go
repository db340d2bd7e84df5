package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates a motor configuration rejected before the
// run starts; no trajectory exists for such runs.
var ErrInvalidConfig = errors.New("sim: invalid configuration")

// StepError wraps a component failure with the step at which it
// occurred. The trajectory accumulated before the failing step is
// preserved on the result.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.3fs): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
