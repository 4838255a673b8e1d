package functions

import (
	"github.com/exprlang/exprlang/internal/registry"
	"github.com/exprlang/exprlang/internal/value"
)

func registerControl(r *Registry) {
	r.register(&registry.FunctionDescriptor{
		Name: "if", MinArity: 3, MaxArity: 3, Category: registry.CategoryControl,
		Laziness: registry.Lazy,
		InvokeLazy: func(ctx registry.CallContext, args []registry.Thunk) (value.Value, error) {
			cond, err := args[0]()
			if err != nil {
				return nil, err
			}
			b, ok := cond.(value.Bool)
			if !ok {
				return nil, &value.TypeError{Op: "if", Left: cond.Kind(), Right: -1,
					Detail: "if condition must be boolean"}
			}
			if bool(b) {
				return args[1]()
			}
			return args[2]()
		},
	})
}
