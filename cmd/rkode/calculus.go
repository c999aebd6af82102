package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/rkode/internal/calculus"
)

func derivative(cmd *cobra.Command, args []string) error {
	f, err := calculus.Builtin(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("d/dx %s at x=%g, h=%g\n", args[0], atX, diffStep)
	for _, e := range calculus.Estimators {
		v, err := e.Fn(f, atX, diffStep)
		if err != nil {
			return err
		}
		fmt.Printf("  %-10s  %.12g\n", e.Name, v)
	}
	return nil
}

func quadrature(cmd *cobra.Command, args []string) error {
	f, err := calculus.Builtin(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("integral of %s over [%g, %g], n=%d\n", args[0], lower, upper, intervals)
	for _, r := range calculus.Rules {
		v, err := r.Fn(f, lower, upper, intervals)
		if err != nil {
			fmt.Printf("  %-10s  error: %v\n", r.Name, err)
			continue
		}
		fmt.Printf("  %-10s  %.12g\n", r.Name, v)
	}
	return nil
}
