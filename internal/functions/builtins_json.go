package functions

import (
	"github.com/exprlang/exprlang/internal/registry"
	"github.com/exprlang/exprlang/internal/value"
)

// registerJSON wires the gjson/sjson-backed JSON interop built-ins.
func registerJSON(r *Registry) {
	r.register(&registry.FunctionDescriptor{
		Name: "json_encode", MinArity: 1, MaxArity: 1, Category: registry.CategoryInterop,
		Invoke: func(ctx registry.CallContext, args []value.Value) (value.Value, error) {
			doc, err := value.ToJSON(args[0])
			if err != nil {
				return nil, err
			}
			return value.String(doc), nil
		},
	})

	r.register(&registry.FunctionDescriptor{
		Name: "json_decode", MinArity: 1, MaxArity: 1, Category: registry.CategoryInterop,
		Invoke: func(ctx registry.CallContext, args []value.Value) (value.Value, error) {
			s, ok := args[0].(value.String)
			if !ok {
				return nil, &value.TypeError{Op: "json_decode", Left: args[0].Kind(), Right: -1,
					Detail: "json_decode requires a string argument"}
			}
			return value.FromJSON(s.Raw())
		},
	})
}
