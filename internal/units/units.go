// Package units provides a default UnitRegistry implementation. The
// evaluator core only ever consumes the registry.UnitRegistry
// interface; this package is a data concern, not a
// design concern, and callers are free to supply their own.
package units

import (
	"fmt"
	"math"

	"github.com/exprlang/exprlang/internal/value"
)

type unitDef struct {
	dimension string
	// toBase converts a magnitude in this unit to the dimension's base
	// unit; fromBase is its inverse. Both are affine (ax+b) to allow
	// temperature's non-multiplicative conversions.
	toBase   func(x float64) float64
	fromBase func(x float64) float64
}

// Registry is the default, read-only set of built-in units, organized
// by physical dimension. It is
// initialized once and never mutated; per-evaluation additions use
// Overlay instead.
type Registry struct {
	units map[string]unitDef
}

// NewDefault builds the default unit registry: length, mass,
// temperature, and time.
func NewDefault() *Registry {
	r := &Registry{units: make(map[string]unitDef)}

	linear := func(dimension string, name string, scale float64) {
		r.units[name] = unitDef{
			dimension: dimension,
			toBase:    func(x float64) float64 { return x * scale },
			fromBase:  func(x float64) float64 { return x / scale },
		}
	}

	linear("length", "meters", 1)
	linear("length", "meter", 1)
	linear("length", "m", 1)
	linear("length", "feet", 0.3048)
	linear("length", "foot", 0.3048)
	linear("length", "ft", 0.3048)
	linear("length", "inches", 0.0254)
	linear("length", "inch", 0.0254)
	linear("length", "in", 0.0254)
	linear("length", "yards", 0.9144)
	linear("length", "yard", 0.9144)
	linear("length", "miles", 1609.344)
	linear("length", "mile", 1609.344)
	linear("length", "km", 1000)
	linear("length", "cm", 0.01)
	linear("length", "mm", 0.001)

	linear("mass", "kg", 1)
	linear("mass", "kilograms", 1)
	linear("mass", "g", 0.001)
	linear("mass", "grams", 0.001)
	linear("mass", "lb", 0.45359237)
	linear("mass", "pounds", 0.45359237)
	linear("mass", "oz", 0.028349523125)

	linear("time", "s", 1)
	linear("time", "seconds", 1)
	linear("time", "min", 60)
	linear("time", "minutes", 60)
	linear("time", "hr", 3600)
	linear("time", "hours", 3600)
	linear("time", "day", 86400)
	linear("time", "days", 86400)

	// Temperature's base unit is Celsius; Fahrenheit and Kelvin are
	// affine, not multiplicative.
	r.units["celsius"] = unitDef{dimension: "temperature",
		toBase: func(x float64) float64 { return x }, fromBase: func(x float64) float64 { return x }}
	r.units["c"] = r.units["celsius"]
	r.units["fahrenheit"] = unitDef{dimension: "temperature",
		toBase:   func(x float64) float64 { return (x - 32) * 5 / 9 },
		fromBase: func(x float64) float64 { return x*9/5 + 32 }}
	r.units["f"] = r.units["fahrenheit"]
	r.units["kelvin"] = unitDef{dimension: "temperature",
		toBase:   func(x float64) float64 { return x - 273.15 },
		fromBase: func(x float64) float64 { return x + 273.15 }}
	r.units["k"] = r.units["kelvin"]

	return r
}

func (r *Registry) IsUnit(name string) bool {
	_, ok := r.units[name]
	return ok
}

func (r *Registry) DimensionOf(name string) (string, bool) {
	d, ok := r.units[name]
	if !ok {
		return "", false
	}
	return d.dimension, true
}

// SameDimension implements value.UnitConverter.
func (r *Registry) SameDimension(a, b string) bool {
	da, ok1 := r.units[a]
	db, ok2 := r.units[b]
	return ok1 && ok2 && da.dimension == db.dimension
}

// Convert implements both registry.UnitRegistry and value.UnitConverter.
func (r *Registry) Convert(v value.Value, fromUnit, toUnit string) (value.Value, error) {
	from, ok := r.units[fromUnit]
	if !ok {
		return nil, fmt.Errorf("unknown unit %q", fromUnit)
	}
	to, ok := r.units[toUnit]
	if !ok {
		return nil, fmt.Errorf("unknown unit %q", toUnit)
	}
	if from.dimension != to.dimension {
		return nil, fmt.Errorf("cannot convert %q to %q: incompatible dimensions", fromUnit, toUnit)
	}
	mag, err := toFloat(v)
	if err != nil {
		return nil, err
	}
	converted := to.fromBase(from.toBase(mag))
	return value.Double(converted), nil
}

func toFloat(v value.Value) (float64, error) {
	switch t := v.(type) {
	case value.Rational:
		return t.Float64(), nil
	case value.Double:
		return float64(t), nil
	default:
		return math.NaN(), fmt.Errorf("unit conversion requires a numeric magnitude, got %s", v.Kind())
	}
}

// Overlay chains a caller-supplied registry in front of a base registry
// (checked first), without mutating either.
type Overlay struct {
	Overlay *Registry
	Base    *Registry
}

func (o Overlay) IsUnit(name string) bool {
	return o.Overlay.IsUnit(name) || o.Base.IsUnit(name)
}

func (o Overlay) DimensionOf(name string) (string, bool) {
	if d, ok := o.Overlay.DimensionOf(name); ok {
		return d, ok
	}
	return o.Base.DimensionOf(name)
}

func (o Overlay) SameDimension(a, b string) bool {
	return o.Overlay.SameDimension(a, b) || o.Base.SameDimension(a, b)
}

func (o Overlay) Convert(v value.Value, fromUnit, toUnit string) (value.Value, error) {
	if o.Overlay.IsUnit(fromUnit) || o.Overlay.IsUnit(toUnit) {
		return o.Overlay.Convert(v, fromUnit, toUnit)
	}
	return o.Base.Convert(v, fromUnit, toUnit)
}
