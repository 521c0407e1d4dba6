package core

import (
	"fmt"
	"math"
)

// Values is an ordered string-keyed mapping. Keys keep the position of their
// first insertion; setting an existing key replaces the value in place.
type Values struct {
	keys   []string
	values map[string]any
}

// NewValues creates an empty mapping
func NewValues() *Values {
	return &Values{values: make(map[string]any)}
}

// Set stores value under key
func (v *Values) Set(key string, value any) {
	if _, exists := v.values[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.values[key] = value
}

// Get returns the value stored under key
func (v *Values) Get(key string) (any, bool) {
	value, ok := v.values[key]
	return value, ok
}

// Has reports whether key is present
func (v *Values) Has(key string) bool {
	_, ok := v.values[key]
	return ok
}

// Delete removes key, keeping the order of the remaining keys
func (v *Values) Delete(key string) {
	if _, ok := v.values[key]; !ok {
		return
	}
	delete(v.values, key)
	for i, k := range v.keys {
		if k == key {
			v.keys = append(v.keys[:i], v.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order
func (v *Values) Keys() []string {
	keys := make([]string, len(v.keys))
	copy(keys, v.keys)
	return keys
}

// Len returns the number of keys
func (v *Values) Len() int {
	return len(v.keys)
}

// Clone returns a shallow copy
func (v *Values) Clone() *Values {
	c := NewValues()
	for _, k := range v.keys {
		c.Set(k, v.values[k])
	}
	return c
}

// Float returns the value under key as a float64.
func (v *Values) Float(key string) (float64, error) {
	value, ok := v.values[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s is not set", ErrInvalidParameter, key)
	}
	f, ok := toFloat(value)
	if !ok {
		return 0, fmt.Errorf("%w: %s must be a number, got %T", ErrInvalidParameter, key, value)
	}
	return f, nil
}

// Int returns the value under key as an int. Floats are accepted only when
// they hold an integral value.
func (v *Values) Int(key string) (int, error) {
	value, ok := v.values[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s is not set", ErrInvalidParameter, key)
	}
	switch n := value.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	}
	f, ok := toFloat(value)
	if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s must be an integer, got %v", ErrInvalidParameter, key, value)
	}
	return int(f), nil
}

// String returns the value under key when it is a non-empty string
func (v *Values) String(key string) (string, bool) {
	s, ok := v.values[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// FloatOr returns the value under key as a float64, or def when it is unset or nil.
func (v *Values) FloatOr(key string, def float64) (float64, error) {
	if value, ok := v.values[key]; !ok || value == nil {
		return def, nil
	}
	return v.Float(key)
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	}
	return 0, false
}
