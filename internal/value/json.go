package value

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ToJSON and FromJSON back the `json_encode`/`json_decode` built-ins.
// Rational/Percent/Unit values are tagged with a
// `$type` discriminator so they round-trip exactly instead of losing
// precision through a plain JSON number; Double/Bool/String/Vector/
// Matrix map onto ordinary JSON scalars and arrays.

// ToJSON renders v as a JSON document.
func ToJSON(v Value) (string, error) {
	return toJSONRaw(v)
}

// FromJSON parses a JSON document produced by ToJSON (or any
// compatible JSON value) back into a Value.
func FromJSON(doc string) (Value, error) {
	if !gjson.Valid(doc) {
		return nil, errors.New("invalid JSON document")
	}
	return fromGJSON(gjson.Parse(doc))
}

func toJSONRaw(v Value) (string, error) {
	switch t := v.(type) {
	case Bool:
		return rawScalar(bool(t))
	case Double:
		return rawScalar(float64(t))
	case String:
		return rawScalar(t.Raw())
	case Rational:
		return taggedJSON("rational", map[string]string{"value": t.String()})
	case Percent:
		doc := ""
		doc, err := sjson.SetRaw(doc, "$type", `"percent"`)
		if err != nil {
			return "", err
		}
		return sjson.Set(doc, "value", t.Fraction)
	case Unit:
		mag, err := toJSONRaw(t.Magnitude)
		if err != nil {
			return "", err
		}
		doc := ""
		doc, err = sjson.SetRaw(doc, "$type", `"unit"`)
		if err != nil {
			return "", err
		}
		doc, err = sjson.SetRaw(doc, "magnitude", mag)
		if err != nil {
			return "", err
		}
		return sjson.Set(doc, "unit", t.UnitName)
	case Vector:
		arr := "[]"
		for i, e := range t.Elements {
			raw, err := toJSONRaw(e)
			if err != nil {
				return "", err
			}
			arr, err = sjson.SetRaw(arr, strconv.Itoa(i), raw)
			if err != nil {
				return "", err
			}
		}
		return arr, nil
	case Matrix:
		arr := "[]"
		for i, row := range t.Rows {
			rowJSON, err := toJSONRaw(Vector{Elements: row})
			if err != nil {
				return "", err
			}
			arr, err = sjson.SetRaw(arr, strconv.Itoa(i), rowJSON)
			if err != nil {
				return "", err
			}
		}
		return arr, nil
	default:
		return "", fmt.Errorf("json_encode: %s values cannot be serialized", v.Kind())
	}
}

func rawScalar(goValue interface{}) (string, error) {
	doc, err := sjson.Set("", "v", goValue)
	if err != nil {
		return "", err
	}
	return gjson.Get(doc, "v").Raw, nil
}

func taggedJSON(typeName string, fields map[string]string) (string, error) {
	doc := ""
	doc, err := sjson.SetRaw(doc, "$type", strconv.Quote(typeName))
	if err != nil {
		return "", err
	}
	for k, v := range fields {
		doc, err = sjson.Set(doc, k, v)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}

func fromGJSON(r gjson.Result) (Value, error) {
	if t := r.Get("$type"); t.Exists() {
		switch t.String() {
		case "rational":
			rat, ok := NewRationalFromString(r.Get("value").String())
			if !ok {
				return nil, fmt.Errorf("invalid rational value %q", r.Get("value").String())
			}
			return rat, nil
		case "percent":
			return Percent{Fraction: r.Get("value").Float()}, nil
		case "unit":
			mag, err := fromGJSON(r.Get("magnitude"))
			if err != nil {
				return nil, err
			}
			return Unit{Magnitude: mag, UnitName: r.Get("unit").String()}, nil
		}
	}

	switch r.Type {
	case gjson.True, gjson.False:
		return Bool(r.Bool()), nil
	case gjson.String:
		return String(r.String()), nil
	case gjson.Number:
		return Double(r.Float()), nil
	case gjson.JSON:
		if r.IsArray() {
			elems := r.Array()
			if len(elems) > 0 && elems[0].IsArray() {
				rows := make([][]Value, len(elems))
				for i, rowResult := range elems {
					rowVal, err := fromGJSON(rowResult)
					if err != nil {
						return nil, err
					}
					rows[i] = rowVal.(Vector).Elements
				}
				m, err := NewMatrix(rows)
				return m, err
			}
			vals := make([]Value, len(elems))
			for i, e := range elems {
				v, err := fromGJSON(e)
				if err != nil {
					return nil, err
				}
				vals[i] = v
			}
			return Vector{Elements: vals}, nil
		}
		return nil, errors.New("json_decode: null is not a representable value")
	default:
		return nil, fmt.Errorf("json_decode: unsupported JSON type")
	}
}
