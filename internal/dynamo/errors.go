package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for integration runs.
var (
	// ErrConfig indicates an invalid step size or iteration count.
	ErrConfig = errors.New("dynamo: invalid integration config")

	// ErrDimension indicates a state or derivative whose length differs from the order.
	ErrDimension = errors.New("dynamo: dimension mismatch between state and order")

	// ErrSink indicates the trajectory sink rejected a record.
	ErrSink = errors.New("dynamo: trajectory sink failed")

	// ErrUnstable indicates a step produced NaN or Inf.
	ErrUnstable = errors.New("dynamo: integration unstable (NaN or Inf detected)")
)

type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("dynamo: invalid %s=%g: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// DimensionError reports a length mismatch. Step is -1 when the mismatch
// was found before stepping began.
type DimensionError struct {
	Step   int
	Time   float64
	Want   int
	Got    int
	Source string
}

func (e *DimensionError) Error() string {
	if e.Step < 0 {
		return fmt.Sprintf("dynamo: %s has length %d, want %d", e.Source, e.Got, e.Want)
	}
	return fmt.Sprintf("dynamo: step %d (t=%g): %s has length %d, want %d", e.Step, e.Time, e.Source, e.Got, e.Want)
}

func (e *DimensionError) Is(target error) bool { return target == ErrDimension }

type SinkError struct {
	Step int
	Time float64
	Err  error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("dynamo: sink rejected record %d (t=%g): %v", e.Step, e.Time, e.Err)
}

func (e *SinkError) Is(target error) bool { return target == ErrSink }

func (e *SinkError) Unwrap() error { return e.Err }

// StepError wraps a failure raised while computing a step.
type StepError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
