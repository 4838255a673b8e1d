// Package evaluator walks the AST the parser produces and computes a
// value: scoped variable binding, recursion tracking, short-circuit/
// lazy operators, and late-binding user functions versus
// lexically-capturing lambdas.
package evaluator

import (
	"github.com/exprlang/exprlang/internal/ast"
	"github.com/exprlang/exprlang/internal/constants"
	"github.com/exprlang/exprlang/internal/errors"
	"github.com/exprlang/exprlang/internal/functions"
	"github.com/exprlang/exprlang/internal/keywords"
	"github.com/exprlang/exprlang/internal/registry"
	"github.com/exprlang/exprlang/internal/units"
	"github.com/exprlang/exprlang/internal/value"
)

// Context is a single evaluation session, owned by one evaluator at a
// time: the registries, the globals scope, and the recursion call
// stack. It is not safe for concurrent use.
type Context struct {
	Functions registry.FunctionRegistry
	Units     registry.UnitRegistry
	Constants registry.ConstantRegistry
	Keywords  registry.KeywordRegistry

	globals   *Scope
	callStack []errors.StackFrame
	cfg       config
}

// New builds a Context wired to the default registries. Callers that
// need user-defined additions should wrap a registry in its package's
// Overlay type and assign it onto the returned Context's fields before
// first use.
func New(opts ...Option) *Context {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Context{
		Functions: functions.NewDefault(),
		Units:     units.NewDefault(),
		Constants: constants.NewDefault(),
		Keywords:  keywords.NewDefault(),
		globals:   NewScope(nil),
		cfg:       cfg,
	}
}

// Globals returns the root scope, where top-level assignments and
// function definitions land.
func (c *Context) Globals() *Scope {
	return c.globals
}

// Run evaluates every statement of a program in order against the
// globals scope, returning the last statement's value.
func (c *Context) Run(prog *ast.Program) (value.Value, error) {
	var result value.Value
	for _, stmt := range prog.Statements {
		v, err := c.Eval(stmt, c.globals)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// AngleUnit implements registry.CallContext.
func (c *Context) AngleUnit() registry.AngleUnit {
	return c.cfg.angleUnit
}

// ForceDoubleArithmetic implements registry.CallContext.
func (c *Context) ForceDoubleArithmetic() bool {
	return c.cfg.forceDoubleArithmetic
}

// arithmeticOptions builds the value.Options every arithmetic
// dispatch needs. Units is nil unless the configured registry's
// concrete type also implements value.UnitConverter (units.Registry
// does; a custom UnitRegistry need not).
func (c *Context) arithmeticOptions() value.Options {
	conv, _ := c.Units.(value.UnitConverter)
	return value.Options{ForceDouble: c.cfg.forceDoubleArithmetic, Units: conv}
}

func wrapValueErr(pos errors.Position, err error) error {
	if err == nil {
		return nil
	}
	switch e := err.(type) {
	case *value.TypeError:
		return errors.New(errors.KindType, pos, "%s", e.Error())
	case *value.DomainError:
		return errors.New(errors.KindDomain, pos, "%s", e.Error())
	default:
		return err
	}
}
