package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/rkode/internal/dynamo"
	"github.com/san-kum/rkode/internal/fields"
	"github.com/san-kum/rkode/internal/integrators"
	"github.com/san-kum/rkode/internal/metrics"
)

type Registry struct {
	fields map[string]func() fields.Field
}

func NewRegistry() *Registry {
	r := &Registry{
		fields: make(map[string]func() fields.Field),
	}

	r.fields["zero"] = func() fields.Field { return fields.NewZero(2) }
	r.fields["decay"] = func() fields.Field { return fields.NewDecay() }
	r.fields["harmonic"] = func() fields.Field { return fields.NewHarmonic() }
	r.fields["pendulum"] = func() fields.Field { return fields.NewPendulum() }
	r.fields["vanderpol"] = func() fields.Field { return fields.NewVanDerPol() }
	r.fields["lorenz"] = func() fields.Field { return fields.NewLorenz() }
	r.fields["rossler"] = func() fields.Field { return fields.NewRossler() }
	r.fields["duffing"] = func() fields.Field { return fields.NewDuffing() }

	return r
}

// Register adds or replaces a field constructor.
func (r *Registry) Register(name string, fn func() fields.Field) {
	r.fields[name] = fn
}

func (r *Registry) GetField(name string) (fields.Field, error) {
	fn, ok := r.fields[name]
	if !ok {
		return nil, fmt.Errorf("unknown field: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetStepper(name string) (dynamo.Stepper, error) {
	return integrators.New(name)
}

func (r *Registry) ListFields() []string {
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListMethods() []string {
	return integrators.Names()
}

func (r *Registry) DefaultMetrics(field dynamo.VectorField) []dynamo.Metric {
	return metrics.For(field)
}
