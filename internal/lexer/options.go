package lexer

// Option configures a Scanner/Processor pipeline using the functional
// options pattern: each Option mutates a private config struct rather
// than exposing its fields.
type Option func(*config)

type config struct {
	maxIdentifierLength          int
	implicitMultiplicationEnabled bool
}

func defaultConfig() config {
	return config{
		maxIdentifierLength:           256,
		implicitMultiplicationEnabled: true,
	}
}

// WithMaxIdentifierLength overrides the default identifier length bound
// (default 256).
func WithMaxIdentifierLength(n int) Option {
	return func(c *config) { c.maxIdentifierLength = n }
}

// WithImplicitMultiplication toggles Pass 2's synthesis of implicit `*`
// tokens (default true).
func WithImplicitMultiplication(enabled bool) Option {
	return func(c *config) { c.implicitMultiplicationEnabled = enabled }
}
