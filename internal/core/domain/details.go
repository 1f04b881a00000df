package domain

import (
	"strconv"

	"github.com/iancoleman/strcase"
)

// Details is the untyped key-value block attached to report checks and chain
// API objects. Upstream payloads mix snake_case and camelCase spellings of
// the same field (schema drift), so every read resolves an ordered alias
// list, trying each key's lowerCamel form as well, and falls back to a typed
// default when nothing matches.
type Details map[string]any

func (d Details) lookup(keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := d[key]; ok {
			return v, true
		}
		if camel := strcase.ToLowerCamel(key); camel != key {
			if v, ok := d[camel]; ok {
				return v, true
			}
		}
	}
	return nil, false
}

// Str returns the first present alias as a string, or "" when absent or not
// a string.
func (d Details) Str(keys ...string) string {
	return d.StrOr("", keys...)
}

// StrOr is Str with an explicit default.
func (d Details) StrOr(def string, keys ...string) string {
	v, ok := d.lookup(keys...)
	if !ok {
		return def
	}
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

// Float returns the first present alias coerced to float64. JSON numbers,
// integer types and numeric strings all coerce; anything else reports
// ok=false. Chain REST endpoints encode big integers as strings, which is
// why string coercion is not optional here.
func (d Details) Float(keys ...string) (float64, bool) {
	v, ok := d.lookup(keys...)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Int returns the first present alias coerced to int64, truncating
// fractional JSON numbers.
func (d Details) Int(keys ...string) (int64, bool) {
	v, ok := d.lookup(keys...)
	if !ok {
		return 0, false
	}
	if s, ok := v.(string); ok {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	}
	f, ok := d.Float(keys...)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

// Map returns the first present alias as a nested Details block.
func (d Details) Map(keys ...string) (Details, bool) {
	v, ok := d.lookup(keys...)
	if !ok {
		return nil, false
	}
	switch m := v.(type) {
	case Details:
		return m, true
	case map[string]any:
		return Details(m), true
	default:
		return nil, false
	}
}

// Slice returns the first present alias as a raw slice.
func (d Details) Slice(keys ...string) ([]any, bool) {
	v, ok := d.lookup(keys...)
	if !ok {
		return nil, false
	}
	s, ok := v.([]any)
	return s, ok
}
