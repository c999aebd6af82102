package calculus

// Backward estimates f'(x) as (f(x) - f(x-h)) / h.
func Backward(f Func, x, h float64) (float64, error) {
	if err := checkStep(h); err != nil {
		return 0, err
	}
	return (f(x) - f(x-h)) / h, nil
}

// Forward estimates f'(x) as (f(x+h) - f(x)) / h.
func Forward(f Func, x, h float64) (float64, error) {
	if err := checkStep(h); err != nil {
		return 0, err
	}
	return (f(x+h) - f(x)) / h, nil
}

// Central estimates f'(x) as (f(x+h) - f(x-h)) / 2h.
func Central(f Func, x, h float64) (float64, error) {
	if err := checkStep(h); err != nil {
		return 0, err
	}
	return (f(x+h) - f(x-h)) / (2 * h), nil
}

// Richardson extrapolates two central differences:
// (4*D(h/2) - D(h)) / 3, which cancels the h^2 error term.
func Richardson(f Func, x, h float64) (float64, error) {
	coarse, err := Central(f, x, h)
	if err != nil {
		return 0, err
	}
	fine, err := Central(f, x, h/2)
	if err != nil {
		return 0, err
	}
	return (4*fine - coarse) / 3, nil
}

// Estimator is the common shape of the difference functions.
type Estimator func(f Func, x, h float64) (float64, error)

// Estimators lists the difference schemes in a fixed order.
var Estimators = []struct {
	Name string
	Fn   Estimator
}{
	{"backward", Backward},
	{"forward", Forward},
	{"central", Central},
	{"richardson", Richardson},
}
