package evaluator

import "github.com/exprlang/exprlang/internal/value"

// Scope is one frame of the lexical scope stack: only the current
// scope may introduce bindings; reading walks outward.
// It satisfies value.Environment structurally, so a Lambda can capture
// one as its Closure without this package ever being imported by
// internal/value.
type Scope struct {
	parent *Scope
	vars   map[string]value.Value
}

// NewScope creates a child scope of parent (nil for the root/globals
// scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, vars: make(map[string]value.Value)}
}

// Get walks the scope chain outward (innermost first): local scope →
// function parameters → globals. Constants are consulted by the
// caller only after Get fails.
func (s *Scope) Get(name string) (value.Value, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set binds name in this scope only, never a parent.
func (s *Scope) Set(name string, v value.Value) {
	s.vars[name] = v
}

// Root walks to the outermost scope (the globals frame), used for
// late-binding function lookups.
func (s *Scope) Root() *Scope {
	sc := s
	for sc.parent != nil {
		sc = sc.parent
	}
	return sc
}
