package ecs

import (
	"maps"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Data is the plain structured representation of a component or system configuration:
// a tree of maps, lists and scalars as produced by a YAML or JSON decoder.
//
// The typed accessors assign into dst only when the key is present. A present key with
// a value that cannot be coerced yields an error wrapping ErrFieldType; dst is left untouched.
type Data map[string]any

// Clone returns a shallow copy of the record.
func (d Data) Clone() Data {
	if d == nil {
		return nil
	}
	return maps.Clone(d)
}

// Has reports whether the key is present.
func (d Data) Has(key string) bool {
	_, ok := d[key]
	return ok
}

func (d Data) Float32(key string, dst *float32) error {
	raw, ok := d[key]
	if !ok {
		return nil
	}

	f, ok := toFloat(raw)
	if !ok {
		return fieldTypeError(key, "number", raw)
	}

	*dst = float32(f)
	return nil
}

func (d Data) Float64(key string, dst *float64) error {
	raw, ok := d[key]
	if !ok {
		return nil
	}

	f, ok := toFloat(raw)
	if !ok {
		return fieldTypeError(key, "number", raw)
	}

	*dst = f
	return nil
}

// Int accepts integers and floats without a fractional part.
func (d Data) Int(key string, dst *int) error {
	raw, ok := d[key]
	if !ok {
		return nil
	}

	f, ok := toFloat(raw)
	if !ok || f != float64(int(f)) {
		return fieldTypeError(key, "integer", raw)
	}

	*dst = int(f)
	return nil
}

func (d Data) Bool(key string, dst *bool) error {
	raw, ok := d[key]
	if !ok {
		return nil
	}

	b, ok := raw.(bool)
	if !ok {
		return fieldTypeError(key, "bool", raw)
	}

	*dst = b
	return nil
}

func (d Data) String(key string, dst *string) error {
	raw, ok := d[key]
	if !ok {
		return nil
	}

	s, ok := raw.(string)
	if !ok {
		return fieldTypeError(key, "string", raw)
	}

	*dst = s
	return nil
}

// Strings accepts a list of strings.
func (d Data) Strings(key string, dst *[]string) error {
	raw, ok := d[key]
	if !ok {
		return nil
	}

	switch v := raw.(type) {
	case []string:
		*dst = append([]string(nil), v...)
		return nil

	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fieldTypeError(key, "list of strings", raw)
			}
			out = append(out, s)
		}
		*dst = out
		return nil
	}

	return fieldTypeError(key, "list of strings", raw)
}

// Vec3 accepts a list of three numbers, or a map with any of the keys x, y and z.
// The map form only overwrites the axes it names.
func (d Data) Vec3(key string, dst *[3]float32) error {
	raw, ok := d[key]
	if !ok {
		return nil
	}

	vec, ok := toVec3(raw, *dst)
	if !ok {
		return fieldTypeError(key, "vec3", raw)
	}

	*dst = vec
	return nil
}

// Color accepts the same forms as Vec3, plus a "#rrggbb" hex string.
func (d Data) Color(key string, dst *[3]float32) error {
	raw, ok := d[key]
	if !ok {
		return nil
	}

	if s, ok := raw.(string); ok {
		color, ok := parseHexColor(s)
		if !ok {
			return fieldTypeError(key, "color", raw)
		}

		*dst = color
		return nil
	}

	return d.Vec3(key, dst)
}

// Map returns the nested record stored under key. A missing key yields a nil Data.
func (d Data) Map(key string) (Data, error) {
	raw, ok := d[key]
	if !ok || raw == nil {
		return nil, nil
	}

	nested, ok := toData(raw)
	if !ok {
		return nil, fieldTypeError(key, "map", raw)
	}

	return nested, nil
}

func fieldTypeError(key, want string, got any) error {
	return eris.Wrapf(ErrFieldType, "field %q: expected %s, got %T", key, want, got)
}

func toData(raw any) (Data, bool) {
	switch v := raw.(type) {
	case Data:
		return v, true
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(Data, len(v))
		for key, value := range v {
			s, ok := key.(string)
			if !ok {
				return nil, false
			}
			out[s] = value
		}
		return out, true
	}

	return nil, false
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}

	return 0, false
}

func toVec3(raw any, base [3]float32) ([3]float32, bool) {
	switch v := raw.(type) {
	case [3]float32:
		return v, true

	case []float32:
		if len(v) != 3 {
			return base, false
		}
		return [3]float32{v[0], v[1], v[2]}, true

	case []float64:
		if len(v) != 3 {
			return base, false
		}
		return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}, true

	case []any:
		if len(v) != 3 {
			return base, false
		}

		var out [3]float32
		for idx, item := range v {
			f, ok := toFloat(item)
			if !ok {
				return base, false
			}
			out[idx] = float32(f)
		}
		return out, true
	}

	record, ok := toData(raw)
	if !ok || !(record.Has("x") || record.Has("y") || record.Has("z")) {
		return base, false
	}

	out := base
	for idx, axis := range [3]string{"x", "y", "z"} {
		if err := record.Float32(axis, &out[idx]); err != nil {
			return base, false
		}
	}

	return out, true
}

func parseHexColor(s string) ([3]float32, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return [3]float32{}, false
	}

	value, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return [3]float32{}, false
	}

	return [3]float32{
		float32((value>>16)&0xff) / 255,
		float32((value>>8)&0xff) / 255,
		float32(value&0xff) / 255,
	}, true
}
