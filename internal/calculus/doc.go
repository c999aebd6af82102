// Package calculus provides single-point finite difference estimators and
// fixed-interval quadrature rules over scalar functions.
//
// Every function is pure: it samples f at points derived from its arguments
// and combines the samples with fixed weights. Bad step sizes or sample
// counts fail fast with [ErrStepSize] or [ErrSampleCount].
package calculus
