// Package functions provides a default FunctionRegistry implementation
// The catalog of built-ins is explicitly a data concern
// out of the core's scope; this package supplies a
// representative set rather than the full ~150-entry catalog.
package functions

import "github.com/exprlang/exprlang/internal/registry"

// Registry is the default, read-only set of built-in functions.
type Registry struct {
	descriptors map[string]*registry.FunctionDescriptor
	aliases     map[string]string
}

func newRegistry() *Registry {
	return &Registry{
		descriptors: make(map[string]*registry.FunctionDescriptor),
		aliases:     make(map[string]string),
	}
}

func (r *Registry) register(d *registry.FunctionDescriptor) {
	r.descriptors[d.Name] = d
	for _, alias := range d.Aliases {
		r.aliases[alias] = d.Name
	}
}

// NewDefault builds the default function registry: math, trig,
// collection, control-flow, and JSON interop built-ins.
func NewDefault() *Registry {
	r := newRegistry()
	registerMath(r)
	registerTrig(r)
	registerCollections(r)
	registerControl(r)
	registerJSON(r)
	return r
}

func (r *Registry) IsFunction(name string) bool {
	_, ok := r.resolve(name)
	return ok
}

func (r *Registry) Lookup(name string) (*registry.FunctionDescriptor, bool) {
	return r.resolve(name)
}

func (r *Registry) resolve(name string) (*registry.FunctionDescriptor, bool) {
	if d, ok := r.descriptors[name]; ok {
		return d, true
	}
	if canonical, ok := r.aliases[name]; ok {
		d, ok := r.descriptors[canonical]
		return d, ok
	}
	return nil, false
}

// Overlay chains a caller-supplied registry in front of a base
// registry, checked first.
type Overlay struct {
	Overlay registry.FunctionRegistry
	Base    registry.FunctionRegistry
}

func (o Overlay) IsFunction(name string) bool {
	return o.Overlay.IsFunction(name) || o.Base.IsFunction(name)
}

func (o Overlay) Lookup(name string) (*registry.FunctionDescriptor, bool) {
	if d, ok := o.Overlay.Lookup(name); ok {
		return d, true
	}
	return o.Base.Lookup(name)
}
