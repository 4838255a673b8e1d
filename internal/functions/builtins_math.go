package functions

import (
	"math"

	"github.com/exprlang/exprlang/internal/registry"
	"github.com/exprlang/exprlang/internal/value"
)

func registerMath(r *Registry) {
	r.register(unaryMath("abs", func(x float64) (float64, error) { return math.Abs(x), nil }))
	r.register(unaryMath("sqrt", func(x float64) (float64, error) {
		if x < 0 {
			return 0, &value.DomainError{Detail: "sqrt of a negative number"}
		}
		return math.Sqrt(x), nil
	}))
	r.register(unaryMath("floor", func(x float64) (float64, error) { return math.Floor(x), nil }))
	r.register(unaryMath("ceil", func(x float64) (float64, error) { return math.Ceil(x), nil }))
	r.register(unaryMath("round", func(x float64) (float64, error) { return math.Round(x), nil }))
	r.register(unaryMath("sign", func(x float64) (float64, error) {
		switch {
		case x > 0:
			return 1, nil
		case x < 0:
			return -1, nil
		default:
			return 0, nil
		}
	}))
	r.register(unaryMath("exp", func(x float64) (float64, error) { return math.Exp(x), nil }))
	r.register(unaryMath("ln", func(x float64) (float64, error) {
		if x <= 0 {
			return 0, &value.DomainError{Detail: "ln of a non-positive number"}
		}
		return math.Log(x), nil
	}))
	r.register(unaryMath("log10", func(x float64) (float64, error) {
		if x <= 0 {
			return 0, &value.DomainError{Detail: "log10 of a non-positive number"}
		}
		return math.Log10(x), nil
	}))

	r.register(&registry.FunctionDescriptor{
		Name: "pow", MinArity: 2, MaxArity: 2, Category: registry.CategoryMath,
		SupportsBroadcasting: true,
		Invoke: func(ctx registry.CallContext, args []value.Value) (value.Value, error) {
			return value.Power(args[0], args[1], opts(ctx))
		},
	})

	r.register(&registry.FunctionDescriptor{
		Name: "min", MinArity: 1, MaxArity: -1, Category: registry.CategoryMath,
		Invoke: func(ctx registry.CallContext, args []value.Value) (value.Value, error) {
			return extremum(args, opts(ctx), true)
		},
	})
	r.register(&registry.FunctionDescriptor{
		Name: "max", MinArity: 1, MaxArity: -1, Category: registry.CategoryMath,
		Invoke: func(ctx registry.CallContext, args []value.Value) (value.Value, error) {
			return extremum(args, opts(ctx), false)
		},
	})
}

func unaryMath(name string, fn func(float64) (float64, error)) *registry.FunctionDescriptor {
	return &registry.FunctionDescriptor{
		Name: name, MinArity: 1, MaxArity: 1, Category: registry.CategoryMath,
		SupportsBroadcasting: true,
		Invoke: func(ctx registry.CallContext, args []value.Value) (value.Value, error) {
			x, err := asFloat(args[0])
			if err != nil {
				return nil, err
			}
			out, err := fn(x)
			if err != nil {
				return nil, err
			}
			return value.Double(out), nil
		},
	}
}

func asFloat(v value.Value) (float64, error) {
	switch t := v.(type) {
	case value.Rational:
		return t.Float64(), nil
	case value.Double:
		return float64(t), nil
	case value.Percent:
		return t.Fraction, nil
	default:
		return 0, &value.TypeError{Op: "numeric conversion", Left: v.Kind(), Right: -1}
	}
}

func opts(ctx registry.CallContext) value.Options {
	return value.Options{ForceDouble: ctx.ForceDoubleArithmetic()}
}

func extremum(args []value.Value, o value.Options, wantMin bool) (value.Value, error) {
	best := args[0]
	bestF, err := asFloat(best)
	if err != nil {
		return nil, err
	}
	for _, a := range args[1:] {
		f, err := asFloat(a)
		if err != nil {
			return nil, err
		}
		if (wantMin && f < bestF) || (!wantMin && f > bestF) {
			best, bestF = a, f
		}
	}
	return best, nil
}
