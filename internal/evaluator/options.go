package evaluator

import "github.com/exprlang/exprlang/internal/registry"

// Option configures a Context, following the lexer/parser's
// functional-options pattern.
type Option func(*config)

type config struct {
	maxRecursionDepth     int
	forceDoubleArithmetic bool
	angleUnit             registry.AngleUnit
}

func defaultConfig() config {
	return config{
		maxRecursionDepth:     1000,
		forceDoubleArithmetic: false,
		angleUnit:             registry.Radians,
	}
}

// WithMaxRecursionDepth overrides the default user-function call-stack
// ceiling (default 1000).
func WithMaxRecursionDepth(n int) Option {
	return func(c *config) { c.maxRecursionDepth = n }
}

// WithForceDoubleArithmetic bypasses rational arithmetic, degrading
// every numeric result to Double (default false).
func WithForceDoubleArithmetic(force bool) Option {
	return func(c *config) { c.forceDoubleArithmetic = force }
}

// WithAngleUnit sets the unit trigonometric built-ins interpret their
// arguments/results in (default radians).
func WithAngleUnit(u registry.AngleUnit) Option {
	return func(c *config) { c.angleUnit = u }
}
