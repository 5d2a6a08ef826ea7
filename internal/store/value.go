package store

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind is the type of a Value.
type Kind uint8

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindMap:
		return "mapping"
	default:
		return "string"
	}
}

// Value is a typed store value. The zero Value is the empty string.
// Mapping values are treated as immutable once stored.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
	m    map[string]Value
}

func Number(f float64) Value { return Value{kind: KindNumber, num: f} }
func String(s string) Value  { return Value{kind: KindString, str: s} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }

// Map returns a mapping value holding a copy of m.
func Map(m map[string]Value) Value {
	cp := make(map[string]Value, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Value{kind: KindMap, m: cp}
}

// Kind returns the type of v.
func (v Value) Kind() Kind { return v.kind }

// Equal reports whether v and o have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == o.num || (math.IsNaN(v.num) && math.IsNaN(o.num))
	case KindBool:
		return v.b == o.b
	case KindMap:
		if len(v.m) != len(o.m) {
			return false
		}
		for k, a := range v.m {
			b, ok := o.m[k]
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	default:
		return v.str == o.str
	}
}

// String renders v the way it is substituted into a template.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindMap:
		keys := v.Keys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ":" + v.m[k].String()
		}
		return "{" + strings.Join(parts, " ") + "}"
	default:
		return v.str
	}
}

// Number converts v to a number. Strings are parsed; booleans are 0 or 1.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Bool reports the truthiness of v: false, 0, "", "false", "0" and empty
// mappings are false.
func (v Value) Bool() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.num != 0
	case KindMap:
		return len(v.m) > 0
	default:
		switch strings.ToLower(strings.TrimSpace(v.str)) {
		case "", "0", "false", "no", "off":
			return false
		}
		return true
	}
}

// Field returns the child of a mapping value.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	c, ok := v.m[key]
	return c, ok
}

// Keys returns the sorted keys of a mapping value.
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.m))
	for k := range v.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Interface returns v as plain Go data (float64, string, bool, map[string]any).
func (v Value) Interface() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindMap:
		out := make(map[string]any, len(v.m))
		for k, c := range v.m {
			out[k] = c.Interface()
		}
		return out
	default:
		return v.str
	}
}

// FromInterface converts decoded JSON data into a Value. Arrays become
// mappings keyed by index; null becomes the empty string.
func FromInterface(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return String(""), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, c := range t {
			if strings.Contains(k, ".") {
				return Value{}, fmt.Errorf("key %q: %w", k, ErrInvalidPath)
			}
			cv, err := FromInterface(c)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", k, err)
			}
			m[k] = cv
		}
		return Value{kind: KindMap, m: m}, nil
	case []any:
		m := make(map[string]Value, len(t))
		for i, c := range t {
			cv, err := FromInterface(c)
			if err != nil {
				return Value{}, err
			}
			m[strconv.Itoa(i)] = cv
		}
		return Value{kind: KindMap, m: m}, nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", x)
	}
}
