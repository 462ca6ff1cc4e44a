// Package value defines the closed universe of runtime values the script
// engine can produce: Integer, Float, Boolean, String, Array, Map, and
// LambdaRef. Every value implements Value; there are no other
// implementations outside this package.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the concrete runtime type of a Value.
type Kind byte

const (
	// InvalidKind is the zero value and never appears on a real Value.
	InvalidKind Kind = iota
	IntegerKind
	FloatKind
	BooleanKind
	StringKind
	ArrayKind
	MapKind
	LambdaRefKind
)

// String renders the kind's display name, used in type-checker diagnostics.
func (k Kind) String() string {
	switch k {
	case IntegerKind:
		return "Integer"
	case FloatKind:
		return "Float"
	case BooleanKind:
		return "Boolean"
	case StringKind:
		return "String"
	case ArrayKind:
		return "Array"
	case MapKind:
		return "Map"
	case LambdaRefKind:
		return "Lambda"
	default:
		return "Invalid"
	}
}

// Value is any member of the runtime value universe.
type Value interface {
	// Kind reports the concrete runtime type.
	Kind() Kind
	// Display renders the value the way it appears when concatenated into a
	// format string or nested inside an Array/Map's JSON-like rendering.
	Display() string
	// Equal reports structural equality.
	Equal(other Value) bool
}

// Integer is a signed 64-bit integer (backed by int64).
type Integer struct{ V int64 }

func (Integer) Kind() Kind          { return IntegerKind }
func (i Integer) Display() string   { return strconv.FormatInt(i.V, 10) }
func (i Integer) Equal(o Value) bool {
	other, ok := o.(Integer)
	return ok && other.V == i.V
}

// Float is a double-precision floating point value.
type Float struct{ V float64 }

func (Float) Kind() Kind        { return FloatKind }
func (f Float) Equal(o Value) bool {
	other, ok := o.(Float)
	return ok && other.V == f.V
}

// Display renders without a trailing ".0": 2.0 displays as "2", matching
// spec.md's display-rendering rule (only int(x.0) performs the rounding to
// an actual Integer; Float keeps its own "no trailing .0" display form).
func (f Float) Display() string {
	s := strconv.FormatFloat(f.V, 'f', -1, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// Boolean is a true/false value.
type Boolean struct{ V bool }

func (Boolean) Kind() Kind { return BooleanKind }
func (b Boolean) Display() string {
	if b.V {
		return "True"
	}
	return "False"
}
func (b Boolean) Equal(o Value) bool {
	other, ok := o.(Boolean)
	return ok && other.V == b.V
}

// String is Unicode text.
type String struct{ V string }

func (String) Kind() Kind        { return StringKind }
func (s String) Display() string { return s.V }
func (s String) Equal(o Value) bool {
	other, ok := o.(String)
	return ok && other.V == s.V
}

// Array is an ordered sequence of values.
type Array struct{ V []Value }

func (Array) Kind() Kind { return ArrayKind }

func (a Array) Display() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, elem := range a.V {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(jsonLike(elem))
	}
	sb.WriteByte(']')
	return sb.String()
}

func (a Array) Equal(o Value) bool {
	other, ok := o.(Array)
	if !ok || len(other.V) != len(a.V) {
		return false
	}
	for i := range a.V {
		if !a.V[i].Equal(other.V[i]) {
			return false
		}
	}
	return true
}

// mapEntry is one insertion-ordered key/value pair of a Map.
type mapEntry struct {
	Key   Value
	Value Value
}

// Map is an insertion-ordered mapping whose keys are Hashable
// (Integer, String, or Boolean).
type Map struct {
	entries []mapEntry
	index   map[string]int
}

// NewMap builds a Map preserving the given insertion order. Every key must
// be Hashable; callers (parser/evaluator) are responsible for enforcing
// that before constructing a Map.
func NewMap(keys, values []Value) Map {
	m := Map{index: make(map[string]int, len(keys))}
	for i, k := range keys {
		hk := hashKey(k)
		if pos, ok := m.index[hk]; ok {
			m.entries[pos].Value = values[i]
			continue
		}
		m.index[hk] = len(m.entries)
		m.entries = append(m.entries, mapEntry{Key: k, Value: values[i]})
	}
	return m
}

func hashKey(v Value) string {
	switch k := v.(type) {
	case Integer:
		return "i:" + strconv.FormatInt(k.V, 10)
	case String:
		return "s:" + k.V
	case Boolean:
		return "b:" + strconv.FormatBool(k.V)
	default:
		return "?:" + v.Display()
	}
}

// IsHashable reports whether v is a legal Map key (Integer, String, or
// Boolean).
func IsHashable(v Value) bool {
	switch v.(type) {
	case Integer, String, Boolean:
		return true
	default:
		return false
	}
}

// Get returns the value bound to key and whether it was present.
func (m Map) Get(key Value) (Value, bool) {
	pos, ok := m.index[hashKey(key)]
	if !ok {
		return nil, false
	}
	return m.entries[pos].Value, true
}

// Contains reports whether key is present in the map.
func (m Map) Contains(key Value) bool {
	_, ok := m.index[hashKey(key)]
	return ok
}

// Entries returns the key/value pairs in insertion order. Callers must not
// mutate the returned slice's contents.
func (m Map) Entries() []struct{ Key, Value Value } {
	out := make([]struct{ Key, Value Value }, len(m.entries))
	for i, e := range m.entries {
		out[i] = struct{ Key, Value Value }{Key: e.Key, Value: e.Value}
	}
	return out
}

func (Map) Kind() Kind { return MapKind }

func (m Map) Display() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(jsonLike(e.Key))
		sb.WriteString(": ")
		sb.WriteString(jsonLike(e.Value))
	}
	sb.WriteByte('}')
	return sb.String()
}

func (m Map) Equal(o Value) bool {
	other, ok := o.(Map)
	if !ok || len(other.entries) != len(m.entries) {
		return false
	}
	for _, e := range m.entries {
		ov, ok := other.Get(e.Key)
		if !ok || !ov.Equal(e.Value) {
			return false
		}
	}
	return true
}

// LambdaRef is a first-class reference to a function (built-in or custom)
// used as an argument to a higher-order built-in. It carries only the
// referenced name; the evaluator resolves it against the function registry
// and the custom-function table at call time.
type LambdaRef struct{ Name string }

func (LambdaRef) Kind() Kind        { return LambdaRefKind }
func (l LambdaRef) Display() string { return "%" + l.Name }
func (l LambdaRef) Equal(o Value) bool {
	other, ok := o.(LambdaRef)
	return ok && other.Name == l.Name
}

// jsonLike renders a value the way it appears nested inside an Array/Map's
// Display: strings double-quoted, everything else as its own Display.
func jsonLike(v Value) string {
	if s, ok := v.(String); ok {
		return fmt.Sprintf("%q", s.V)
	}
	return v.Display()
}
