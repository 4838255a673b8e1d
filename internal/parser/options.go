package parser

// Option configures a Parser, following the lexer's functional-options
// pattern.
type Option func(*config)

type config struct {
	maxExpressionDepth int
}

func defaultConfig() config {
	return config{maxExpressionDepth: 1000}
}

// WithMaxExpressionDepth overrides the default nesting ceiling for `(`,
// `{`, `[` (default 1000).
func WithMaxExpressionDepth(n int) Option {
	return func(c *config) { c.maxExpressionDepth = n }
}
