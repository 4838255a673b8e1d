package functions

import (
	"math"

	"github.com/exprlang/exprlang/internal/registry"
	"github.com/exprlang/exprlang/internal/value"
)

func registerTrig(r *Registry) {
	r.register(trigFn("sin", math.Sin, true))
	r.register(trigFn("cos", math.Cos, true))
	r.register(trigFn("tan", math.Tan, true))
	r.register(inverseTrigFn("asin", math.Asin))
	r.register(inverseTrigFn("acos", math.Acos))
	r.register(inverseTrigFn("atan", math.Atan))
}

// trigFn registers a forward trig function; toRadians controls whether
// the argument is converted from the context's angle unit into radians
// before the math library call.
func trigFn(name string, fn func(float64) float64, toRadians bool) *registry.FunctionDescriptor {
	return &registry.FunctionDescriptor{
		Name: name, MinArity: 1, MaxArity: 1, Category: registry.CategoryTrig,
		SupportsBroadcasting: true,
		Invoke: func(ctx registry.CallContext, args []value.Value) (value.Value, error) {
			x, err := asFloat(args[0])
			if err != nil {
				return nil, err
			}
			if toRadians {
				x = toRadiansFrom(x, ctx.AngleUnit())
			}
			return value.Double(fn(x)), nil
		},
	}
}

// inverseTrigFn registers an inverse trig function, converting its
// radian result into the context's configured angle unit.
func inverseTrigFn(name string, fn func(float64) float64) *registry.FunctionDescriptor {
	return &registry.FunctionDescriptor{
		Name: name, MinArity: 1, MaxArity: 1, Category: registry.CategoryTrig,
		SupportsBroadcasting: true,
		Invoke: func(ctx registry.CallContext, args []value.Value) (value.Value, error) {
			x, err := asFloat(args[0])
			if err != nil {
				return nil, err
			}
			result := fn(x)
			return value.Double(fromRadiansTo(result, ctx.AngleUnit())), nil
		},
	}
}

func toRadiansFrom(x float64, unit registry.AngleUnit) float64 {
	switch unit {
	case registry.Degrees:
		return x * math.Pi / 180
	case registry.Gradians:
		return x * math.Pi / 200
	default:
		return x
	}
}

func fromRadiansTo(x float64, unit registry.AngleUnit) float64 {
	switch unit {
	case registry.Degrees:
		return x * 180 / math.Pi
	case registry.Gradians:
		return x * 200 / math.Pi
	default:
		return x
	}
}
