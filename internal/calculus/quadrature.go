package calculus

import "fmt"

func checkIntervals(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: need at least 1 interval, got %d", ErrSampleCount, n)
	}
	return nil
}

// Midpoint integrates f over [a, b] with n intervals sampled at their centres.
func Midpoint(f Func, a, b float64, n int) (float64, error) {
	if err := checkIntervals(n); err != nil {
		return 0, err
	}
	del := (b - a) / float64(n)
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += f(a + (float64(i)+0.5)*del)
	}
	return del * sum, nil
}

// Trapezoid integrates f over [a, b] with n intervals.
func Trapezoid(f Func, a, b float64, n int) (float64, error) {
	if err := checkIntervals(n); err != nil {
		return 0, err
	}
	del := (b - a) / float64(n)
	sum := (f(a) + f(b)) / 2.0
	for i := 1; i < n; i++ {
		sum += f(a + float64(i)*del)
	}
	return del * sum, nil
}

// Simpson integrates f over [a, b]; n must be even and at least 2.
func Simpson(f Func, a, b float64, n int) (float64, error) {
	if n < 2 {
		return 0, fmt.Errorf("%w: simpson needs n >= 2, got %d", ErrSampleCount, n)
	}
	if n%2 != 0 {
		return 0, fmt.Errorf("%w: simpson needs an even n, got %d", ErrSampleCount, n)
	}
	del := (b - a) / float64(n)
	sum := f(a) + f(b)
	for i := 1; i < n; i++ {
		x := a + float64(i)*del
		if i%2 == 0 {
			sum += 2 * f(x)
		} else {
			sum += 4 * f(x)
		}
	}
	return del * sum / 3.0, nil
}

// Rule is the common shape of the quadrature functions.
type Rule func(f Func, a, b float64, n int) (float64, error)

// Rules lists the quadrature rules in a fixed order.
var Rules = []struct {
	Name string
	Fn   Rule
}{
	{"midpoint", Midpoint},
	{"trapezoid", Trapezoid},
	{"simpson", Simpson},
}
