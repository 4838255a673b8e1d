package value

import (
	"strings"

	"github.com/exprlang/exprlang/internal/ast"
)

// Environment is the narrow view of a lexical scope a Lambda needs at
// call time: lookup of the bindings captured when the lambda literal
// was evaluated. The evaluator's Scope type satisfies this interface
// structurally; value never imports the evaluator package.
type Environment interface {
	Get(name string) (Value, bool)
}

// Lambda is an anonymous function: parameters, a body AST, and the
// binding environment captured at the point the lambda literal was
// evaluated. Lambdas capture lexically, unlike named functions, which
// late-bind against globals at call time.
type Lambda struct {
	Params  []string
	Body    ast.Node
	Closure Environment
}

func (Lambda) Kind() Kind { return KindLambda }

func (l Lambda) String() string {
	return "(" + strings.Join(l.Params, ", ") + ") -> " + l.Body.String()
}

// Function is a named, user-defined function. It holds its body by
// value (an immutable AST) and has no direct pointer to itself, so
// recursive definitions create no reference cycles; a recursive call
// looks its own name up again through the evaluator's global scope at
// call time.
type Function struct {
	Name   string
	Params []string
	Body   ast.Node
}

func (Function) Kind() Kind { return KindFunction }

func (f Function) String() string {
	return f.Name + "(" + strings.Join(f.Params, ", ") + ") := " + f.Body.String()
}
