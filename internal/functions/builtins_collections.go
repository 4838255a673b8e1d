package functions

import (
	"sort"

	"github.com/exprlang/exprlang/internal/registry"
	"github.com/exprlang/exprlang/internal/value"
)

func registerCollections(r *Registry) {
	r.register(&registry.FunctionDescriptor{
		Name: "map", MinArity: 2, MaxArity: 2, Category: registry.CategoryCollection,
		Invoke: func(ctx registry.CallContext, args []value.Value) (value.Value, error) {
			elems, err := elementsOf(args[1])
			if err != nil {
				return nil, err
			}
			out := make([]value.Value, len(elems))
			for i, e := range elems {
				r, err := ctx.Call(args[0], []value.Value{e})
				if err != nil {
					return nil, err
				}
				out[i] = r
			}
			return value.Vector{Elements: out}, nil
		},
	})

	r.register(&registry.FunctionDescriptor{
		Name: "filter", MinArity: 2, MaxArity: 2, Category: registry.CategoryCollection,
		Invoke: func(ctx registry.CallContext, args []value.Value) (value.Value, error) {
			elems, err := elementsOf(args[1])
			if err != nil {
				return nil, err
			}
			var out []value.Value
			for _, e := range elems {
				keep, err := ctx.Call(args[0], []value.Value{e})
				if err != nil {
					return nil, err
				}
				b, ok := keep.(value.Bool)
				if !ok {
					return nil, &value.TypeError{Op: "filter", Left: keep.Kind(), Right: -1,
						Detail: "filter predicate must return a boolean"}
				}
				if bool(b) {
					out = append(out, e)
				}
			}
			return value.Vector{Elements: out}, nil
		},
	})

	r.register(&registry.FunctionDescriptor{
		Name: "reduce", MinArity: 3, MaxArity: 3, Category: registry.CategoryCollection,
		Invoke: func(ctx registry.CallContext, args []value.Value) (value.Value, error) {
			elems, err := elementsOf(args[1])
			if err != nil {
				return nil, err
			}
			acc := args[2]
			for _, e := range elems {
				acc, err = ctx.Call(args[0], []value.Value{acc, e})
				if err != nil {
					return nil, err
				}
			}
			return acc, nil
		},
	})

	r.register(&registry.FunctionDescriptor{
		Name: "sum", MinArity: 1, MaxArity: 1, Category: registry.CategoryCollection,
		Invoke: func(ctx registry.CallContext, args []value.Value) (value.Value, error) {
			elems, err := elementsOf(args[0])
			if err != nil {
				return nil, err
			}
			var acc value.Value = value.NewRationalInt64(0)
			o := opts(ctx)
			for _, e := range elems {
				acc, err = value.Add(acc, e, o)
				if err != nil {
					return nil, err
				}
			}
			return acc, nil
		},
	})

	r.register(&registry.FunctionDescriptor{
		Name: "sort", MinArity: 1, MaxArity: 1, Category: registry.CategoryCollection,
		Invoke: func(ctx registry.CallContext, args []value.Value) (value.Value, error) {
			elems, err := elementsOf(args[0])
			if err != nil {
				return nil, err
			}
			out := make([]value.Value, len(elems))
			copy(out, elems)
			o := opts(ctx)
			var sortErr error
			sort.SliceStable(out, func(i, j int) bool {
				if sortErr != nil {
					return false
				}
				cmp, ok, err := value.Compare(out[i], out[j], o)
				if err != nil {
					sortErr = err
					return false
				}
				if !ok {
					return false
				}
				return cmp < 0
			})
			if sortErr != nil {
				return nil, sortErr
			}
			return value.Vector{Elements: out}, nil
		},
	})

	r.register(&registry.FunctionDescriptor{
		Name: "length", Aliases: []string{"len"}, MinArity: 1, MaxArity: 1, Category: registry.CategoryCollection,
		Invoke: func(ctx registry.CallContext, args []value.Value) (value.Value, error) {
			elems, err := elementsOf(args[0])
			if err != nil {
				return nil, err
			}
			return value.NewRationalInt64(int64(len(elems))), nil
		},
	})
}

func elementsOf(v value.Value) ([]value.Value, error) {
	switch t := v.(type) {
	case value.Vector:
		return t.Elements, nil
	case value.Range:
		return t.Materialize().Elements, nil
	case value.Matrix:
		var out []value.Value
		for _, row := range t.Rows {
			out = append(out, row...)
		}
		return out, nil
	default:
		return nil, &value.TypeError{Op: "iterate", Left: v.Kind(), Right: -1,
			Detail: "value is not iterable"}
	}
}
