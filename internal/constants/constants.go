// Package constants provides a default ConstantRegistry implementation
// A data concern, not a design concern.
package constants

import (
	"math"

	"github.com/exprlang/exprlang/internal/value"
)

// Registry is the default, read-only set of mathematical constants.
type Registry struct {
	values map[string]value.Value
}

// NewDefault builds the default constant registry.
func NewDefault() *Registry {
	return &Registry{values: map[string]value.Value{
		"pi":  value.Double(math.Pi),
		"e":   value.Double(math.E),
		"phi": value.Double(1.618033988749895),
		"tau": value.Double(2 * math.Pi),
	}}
}

func (r *Registry) IsConstant(name string) bool {
	_, ok := r.values[name]
	return ok
}

func (r *Registry) ValueOf(name string) (value.Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Overlay chains a caller-supplied registry in front of a base
// registry, checked first.
type Overlay struct {
	Overlay *Registry
	Base    *Registry
}

func (o Overlay) IsConstant(name string) bool {
	return o.Overlay.IsConstant(name) || o.Base.IsConstant(name)
}

func (o Overlay) ValueOf(name string) (value.Value, bool) {
	if v, ok := o.Overlay.ValueOf(name); ok {
		return v, true
	}
	return o.Base.ValueOf(name)
}
