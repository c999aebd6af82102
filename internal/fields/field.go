package fields

import (
	"fmt"

	"github.com/san-kum/rkode/internal/dynamo"
)

// Field is a named vector field with a fixed order and a default initial state.
type Field interface {
	dynamo.VectorField
	dynamo.Configurable
	Name() string
	Order() int
	DefaultState() dynamo.State
}

func unknownParam(field, name string) error {
	return fmt.Errorf("%s: unknown parameter %q", field, name)
}

// Apply sets every parameter in params on f.
func Apply(f Field, params map[string]float64) error {
	for name, value := range params {
		if err := f.SetParam(name, value); err != nil {
			return err
		}
	}
	return nil
}
