package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/rkode/internal/dynamo"
)

var constructors = map[string]func() dynamo.Stepper{
	"rk1": func() dynamo.Stepper { return NewEuler() },
	"rk2": func() dynamo.Stepper { return NewRK2() },
	"rk3": func() dynamo.Stepper { return NewRK3() },
	"rk4": func() dynamo.Stepper { return NewRK4() },
}

var aliases = map[string]string{
	"euler": "rk1",
	"heun":  "rk2",
}

// New returns a fresh stepper by name ("rk1".."rk4", "euler", "heun").
func New(name string) (dynamo.Stepper, error) {
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	fn, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown method: %s (available: %v)", name, Names())
	}
	return fn(), nil
}

// Names lists the canonical method names in order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns one fresh stepper per method, rk1 first.
func All() []dynamo.Stepper {
	names := Names()
	steppers := make([]dynamo.Stepper, len(names))
	for i, name := range names {
		steppers[i] = constructors[name]()
	}
	return steppers
}
