package evaluator

import (
	"github.com/exprlang/exprlang/internal/ast"
	"github.com/exprlang/exprlang/internal/errors"
	"github.com/exprlang/exprlang/internal/registry"
	"github.com/exprlang/exprlang/internal/value"
)

// BuiltinFunction is a first-class reference to a registered built-in,
// letting a bare built-in name flow into higher-order functions (e.g.
// `reduce(add, v, 0)`) the same way a Lambda or Function value does.
type BuiltinFunction struct {
	Name string
}

func (BuiltinFunction) Kind() value.Kind { return value.KindFunction }

func (b BuiltinFunction) String() string { return b.Name }

// Call implements registry.CallContext: invoking a Value as a function
// from inside a built-in body (map/filter/reduce and friends). Args
// arrive already evaluated, so lazy built-ins (if) are only reachable
// here through their eager arity, which never matches.
func (c *Context) Call(fn value.Value, args []value.Value) (value.Value, error) {
	switch f := fn.(type) {
	case value.Lambda:
		return c.callLambda(f, args, errors.Position{})
	case value.Function:
		return c.callFunction(f, args, errors.Position{})
	case BuiltinFunction:
		desc, ok := c.Functions.Lookup(f.Name)
		if !ok {
			return nil, errors.New(errors.KindUndefinedVariable, errors.Position{}, "undefined function %q", f.Name)
		}
		if err := checkArity(desc, len(args), errors.Position{}); err != nil {
			return nil, err
		}
		return c.invokeBuiltinEager(desc, args)
	default:
		return nil, &value.TypeError{Op: "call", Left: fn.Kind(), Right: -1, Detail: "value is not callable"}
	}
}

func (c *Context) callLambda(f value.Lambda, args []value.Value, pos errors.Position) (value.Value, error) {
	if len(args) != len(f.Params) {
		return nil, errors.New(errors.KindArity, pos, "lambda expects %d argument(s), got %d", len(f.Params), len(args))
	}
	if err := c.pushFrame("<lambda>", pos); err != nil {
		return nil, err
	}
	defer c.popFrame()

	closure, _ := f.Closure.(*Scope)
	callScope := NewScope(closure)
	for i, p := range f.Params {
		callScope.Set(p, args[i])
	}
	return c.Eval(f.Body, callScope)
}

func (c *Context) callFunction(f value.Function, args []value.Value, pos errors.Position) (value.Value, error) {
	if len(args) != len(f.Params) {
		return nil, errors.New(errors.KindArity, pos, "%s expects %d argument(s), got %d", f.Name, len(f.Params), len(args))
	}
	if err := c.pushFrame(f.Name, pos); err != nil {
		return nil, err
	}
	defer c.popFrame()

	callScope := NewScope(c.globals)
	for i, p := range f.Params {
		callScope.Set(p, args[i])
	}
	return c.Eval(f.Body, callScope)
}

// pushFrame records a user-function/lambda invocation for recursion
// tracking; built-in calls never reach this.
func (c *Context) pushFrame(name string, pos errors.Position) error {
	if len(c.callStack) >= c.cfg.maxRecursionDepth {
		return errors.New(errors.KindStackOverflow, pos,
			"maximum recursion depth (%d) exceeded", c.cfg.maxRecursionDepth).WithFrames(append([]errors.StackFrame(nil), c.callStack...))
	}
	c.callStack = append(c.callStack, errors.StackFrame{FunctionName: name, Pos: pos})
	return nil
}

func (c *Context) popFrame() {
	c.callStack = c.callStack[:len(c.callStack)-1]
}

// evalCall resolves a call's callee: user-defined bindings
// (Lambda/Function reachable through the current scope chain) take
// priority over a same-named built-in, so a local variable can shadow
// a built-in's name.
func (c *Context) evalCall(call *ast.CallExpr, scope *Scope) (value.Value, error) {
	if ident, ok := call.Callee.(*ast.Identifier); ok {
		if v, found := scope.Get(ident.Name); found {
			return c.callResolvedValue(v, call, scope)
		}
		if desc, found := c.Functions.Lookup(ident.Name); found {
			return c.evalBuiltinCall(desc, call, scope)
		}
		return nil, errors.New(errors.KindUndefinedVariable, call.Position, "undefined function %q", ident.Name)
	}

	callee, err := c.Eval(call.Callee, scope)
	if err != nil {
		return nil, err
	}
	return c.callResolvedValue(callee, call, scope)
}

func (c *Context) callResolvedValue(callee value.Value, call *ast.CallExpr, scope *Scope) (value.Value, error) {
	switch f := callee.(type) {
	case value.Lambda:
		args, err := c.evalArgs(call.Args, scope)
		if err != nil {
			return nil, err
		}
		return c.callLambda(f, args, call.Position)
	case value.Function:
		args, err := c.evalArgs(call.Args, scope)
		if err != nil {
			return nil, err
		}
		return c.callFunction(f, args, call.Position)
	case BuiltinFunction:
		desc, ok := c.Functions.Lookup(f.Name)
		if !ok {
			return nil, errors.New(errors.KindUndefinedVariable, call.Position, "undefined function %q", f.Name)
		}
		return c.evalBuiltinCall(desc, call, scope)
	default:
		return nil, errors.New(errors.KindType, call.Position, "%s is not callable", callee.Kind())
	}
}

func (c *Context) evalArgs(nodes []ast.Node, scope *Scope) ([]value.Value, error) {
	args := make([]value.Value, len(nodes))
	for i, n := range nodes {
		v, err := c.Eval(n, scope)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

func (c *Context) evalBuiltinCall(desc *registry.FunctionDescriptor, call *ast.CallExpr, scope *Scope) (value.Value, error) {
	if err := checkArity(desc, len(call.Args), call.Position); err != nil {
		return nil, err
	}

	if desc.Laziness == registry.Lazy {
		thunks := make([]registry.Thunk, len(call.Args))
		for i, n := range call.Args {
			n := n
			thunks[i] = func() (value.Value, error) { return c.Eval(n, scope) }
		}
		v, err := desc.InvokeLazy(c, thunks)
		return v, wrapValueErr(call.Position, err)
	}

	args, err := c.evalArgs(call.Args, scope)
	if err != nil {
		return nil, err
	}
	v, err := c.invokeBuiltinEager(desc, args)
	return v, wrapValueErr(call.Position, err)
}

// invokeBuiltinEager applies an eager built-in, lifting through the
// broadcasting engine when it declares SupportsBroadcasting and
// receives a single container argument: such a built-in automatically
// receives the broadcast-lifted result when called with a
// vector/matrix argument.
func (c *Context) invokeBuiltinEager(desc *registry.FunctionDescriptor, args []value.Value) (value.Value, error) {
	if desc.SupportsBroadcasting && len(args) == 1 {
		if value.IsContainer(args[0]) {
			fn := func(v value.Value, opts value.Options) (value.Value, error) {
				return desc.Invoke(c, []value.Value{v})
			}
			return value.BroadcastUnary(fn, args[0], c.arithmeticOptions())
		}
	}
	return desc.Invoke(c, args)
}

func checkArity(desc *registry.FunctionDescriptor, n int, pos errors.Position) error {
	if n < desc.MinArity {
		return errors.New(errors.KindArity, pos, "%s expects at least %d argument(s), got %d", desc.Name, desc.MinArity, n)
	}
	if desc.MaxArity >= 0 && n > desc.MaxArity {
		return errors.New(errors.KindArity, pos, "%s expects at most %d argument(s), got %d", desc.Name, desc.MaxArity, n)
	}
	return nil
}
