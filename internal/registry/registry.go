// Package registry declares the narrow lookup interfaces the lexer,
// parser, and evaluator consume to resolve built-in functions, units,
// constants, and keyword-operators. The lexer and parser never import a
// concrete catalog, and the evaluator holds its registries only as these
// interfaces (evaluator.New fills them with the default catalogs), so a
// caller can supply an overlay (chained: overlay first, base next)
// without touching the base.
package registry

import "github.com/exprlang/exprlang/internal/value"

// OperatorKind identifies a keyword spelled as a word but acting as an
// operator: and, or, xor, not, mod, of.
type OperatorKind int

const (
	OpAnd OperatorKind = iota
	OpOr
	OpXor
	OpNot
	OpMod
	OpOf
)

// AngleUnit selects the unit trigonometric built-ins interpret their
// arguments/results in.
type AngleUnit int

const (
	Radians AngleUnit = iota
	Degrees
	Gradians
)

// CallContext is the narrow view of evaluation state a built-in
// function body may consult. It is implemented structurally by
// whatever the evaluator uses as its context, so this package never
// imports the evaluator.
type CallContext interface {
	AngleUnit() AngleUnit
	ForceDoubleArithmetic() bool
	// Call invokes a Value as a function (lambda or user function),
	// used by higher-order built-ins such as map/filter/reduce.
	Call(fn value.Value, args []value.Value) (value.Value, error)
}

// Laziness describes whether a built-in receives evaluated arguments or
// the raw AST thunks (needed for `if`, which must not evaluate the
// branch it discards).
type Laziness int

const (
	Eager Laziness = iota
	Lazy
)

// Category groups built-ins for documentation/introspection purposes
// only; it has no effect on dispatch.
type Category string

const (
	CategoryMath        Category = "math"
	CategoryTrig        Category = "trig"
	CategoryCollection  Category = "collection"
	CategoryControl     Category = "control"
	CategoryString      Category = "string"
	CategoryInterop     Category = "interop"
	CategoryLinearAlg   Category = "linear-algebra"
)

// Invocation is an eager built-in function's body: it receives
// pre-evaluated arguments. Lazy built-ins use InvokeLazy instead.
type Invocation func(ctx CallContext, args []value.Value) (value.Value, error)

// FunctionDescriptor describes one built-in entry.
type FunctionDescriptor struct {
	Name                 string
	Aliases              []string
	MinArity             int
	MaxArity             int // -1 means unbounded
	Category             Category
	SupportsBroadcasting bool
	Laziness             Laziness
	Invoke               Invocation
	// InvokeLazy is used instead of Invoke when Laziness == Lazy: each
	// argument is passed as an unevaluated Thunk so the built-in (e.g.
	// `if`) controls which branches are ever evaluated.
	InvokeLazy LazyInvocation
}

// Thunk defers evaluation of one call argument.
type Thunk func() (value.Value, error)

// LazyInvocation is a built-in body that receives its arguments
// unevaluated.
type LazyInvocation func(ctx CallContext, args []Thunk) (value.Value, error)

// FunctionRegistry resolves built-in function names.
type FunctionRegistry interface {
	IsFunction(name string) bool
	Lookup(name string) (*FunctionDescriptor, bool)
}

// UnitRegistry resolves named units within dimensions (length, mass,
// temperature, ...) and converts magnitudes between units of the same
// dimension.
type UnitRegistry interface {
	IsUnit(name string) bool
	DimensionOf(name string) (string, bool)
	Convert(v value.Value, fromUnit, toUnit string) (value.Value, error)
}

// ConstantRegistry resolves named constants (pi, e, ...).
type ConstantRegistry interface {
	IsConstant(name string) bool
	ValueOf(name string) (value.Value, bool)
}

// KeywordRegistry resolves reserved keywords and keyword-operators.
type KeywordRegistry interface {
	IsKeyword(name string) bool
	KeywordOperatorKindFor(name string) (OperatorKind, bool)
}
