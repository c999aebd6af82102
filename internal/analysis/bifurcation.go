package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/rkode/internal/dynamo"
)

// BifurcationPoint represents the attractor for a given parameter value
type BifurcationPoint struct {
	Param  float64
	Values []float64 // Distinct local maxima found
}

// Tunable is a vector field with named parameters.
type Tunable interface {
	dynamo.VectorField
	dynamo.Configurable
}

// BifurcationDiagram sweeps a parameter and records the distinct local
// maxima of one state component once transients have died out.
// This is useful for visualizing transitions to chaos.
//
// Parameters:
// - field: vector field whose parameter is swept
// - stepper: method to use
// - paramName: name of parameter to sweep
// - paramMin, paramMax: range to sweep
// - paramSteps: number of parameter values to test
// - stateIndex: which state variable to record
// - h, transient, record: step size and step counts
//
// The parameter is restored to its original value before returning.
func BifurcationDiagram(
	field Tunable,
	stepper dynamo.Stepper,
	paramName string,
	paramMin, paramMax float64,
	paramSteps int,
	stateIndex int,
	y0 dynamo.State,
	h float64,
	transient, record int,
) (results []BifurcationPoint, err error) {
	original, ok := field.GetParams()[paramName]
	if !ok {
		return nil, fmt.Errorf("analysis: unknown parameter %q", paramName)
	}
	if stateIndex < 0 || stateIndex >= len(y0) {
		return nil, fmt.Errorf("analysis: state index %d out of range [0, %d)", stateIndex, len(y0))
	}
	defer func() {
		if rerr := field.SetParam(paramName, original); rerr != nil && err == nil {
			err = rerr
		}
	}()

	if paramSteps <= 1 {
		paramSteps = 2 // Prevent division by zero
	}
	paramStep := (paramMax - paramMin) / float64(paramSteps-1)
	results = make([]BifurcationPoint, 0, paramSteps)

	for i := 0; i < paramSteps; i++ {
		param := paramMin + float64(i)*paramStep
		if err := field.SetParam(paramName, param); err != nil {
			return nil, err
		}

		y := y0.Clone()
		t := 0.0

		// Run transient (let system settle)
		for s := 0; s < transient; s++ {
			if y, err = stepper.Step(field, t, h, y); err != nil {
				return nil, err
			}
			t += h
		}

		values := make([]float64, 0, 16)
		seen := make(map[int]bool)
		prev2, prev1 := y[stateIndex], y[stateIndex]

		for s := 0; s < record; s++ {
			if y, err = stepper.Step(field, t, h, y); err != nil {
				return nil, err
			}
			t += h

			curr := y[stateIndex]
			if s >= 1 && prev1 > prev2 && prev1 >= curr {
				// Quantize to find distinct values
				key := int(prev1 * 1000)
				if !seen[key] {
					seen[key] = true
					values = append(values, prev1)
				}
			}
			prev2, prev1 = prev1, curr
		}

		results = append(results, BifurcationPoint{
			Param:  param,
			Values: values,
		})
	}

	return results, nil
}

// BifurcationToASCII converts bifurcation data to ASCII art
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	// Find value range - need at least one valid value
	var minVal, maxVal float64
	foundFirst := false
	for _, p := range data {
		for _, v := range p.Values {
			if !foundFirst {
				minVal, maxVal = v, v
				foundFirst = true
			} else {
				minVal = min(minVal, v)
				maxVal = max(maxVal, v)
			}
		}
	}
	if !foundFirst {
		return "" // No values to plot
	}

	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for i, p := range data {
		col := min(i*width/len(data), width-1)
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
