// Package keywords provides a default KeywordRegistry implementation
// reserved keywords (for, in, if, step, true, false, to,
// as) and keyword-operators (and, or, xor, not, mod, of). `if`
// classifies as a Keyword at lex time even
// though the parser builds it into the same Call/lazy-built-in shape
// as any other function.
package keywords

import "github.com/exprlang/exprlang/internal/registry"

// Registry is the closed set of reserved words the lexer's Pass 2
// classifies.
type Registry struct {
	reserved  map[string]bool
	operators map[string]registry.OperatorKind
}

// NewDefault builds the default keyword registry.
func NewDefault() *Registry {
	return &Registry{
		reserved: map[string]bool{
			"for": true, "in": true, "if": true, "step": true,
			"true": true, "false": true, "to": true, "as": true,
		},
		operators: map[string]registry.OperatorKind{
			"and": registry.OpAnd,
			"or":  registry.OpOr,
			"xor": registry.OpXor,
			"not": registry.OpNot,
			"mod": registry.OpMod,
			"of":  registry.OpOf,
		},
	}
}

func (r *Registry) IsKeyword(name string) bool {
	return r.reserved[name]
}

func (r *Registry) KeywordOperatorKindFor(name string) (registry.OperatorKind, bool) {
	k, ok := r.operators[name]
	return k, ok
}
