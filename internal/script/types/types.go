// Package types implements the static type system the parser's type-check
// pass uses to validate built-in function-call arguments (spec.md §4.3):
// concrete value classes, Any, Unions, and the three generic return
// markers RetA/RetB/Ret that project to the runtime type of a
// correspondingly indexed argument.
package types

import (
	"strings"

	"github.com/jmbannon/ytdl-sub/internal/script/value"
)

// marker distinguishes an ordinary Type from one of the three generic
// return-marker sentinels (spec.md §9: "a lightweight stand-in for
// parametric polymorphism... sentinel type tokens looked up by position").
type marker byte

const (
	noMarker marker = iota
	markerRetA
	markerRetB
	markerRet // Ret: projects to the type of the parameter that declares it; no built-in declares it
)

// Type is either:
//   - Unconstrained: a Variable's or custom-function-call's static type,
//     which is compatible with every expected parameter type.
//   - Any: the full value universe.
//   - a concrete Union of one or more value.Kind members.
//   - one of the generic return-marker sentinels (legal as a function's
//     declared Return type and as the formal parameter type whose argument
//     the Return projects from, e.g. `if`'s RetA/RetB parameters).
type Type struct {
	Unconstrained bool
	Any           bool
	Members       []value.Kind // sorted, de-duplicated when len(Members) > 0
	markers       []marker     // one entry per generic marker combined into this type (e.g. RetA∪RetB)
}

// Unconstrained is the static type assigned to a Variable reference or a
// custom-function call node: it satisfies any expected parameter type.
var Unconstrained = Type{Unconstrained: true}

// AnyType is the full value universe, {Integer, Float, Boolean, String,
// Array, Map, Lambda}.
var AnyType = Type{Any: true}

// RetA, RetB, and Ret are the three generic return markers from spec.md
// §4.2/§9. They appear in a function's declared Return type and on the
// formal parameters that Return projects from; any argument is compatible
// with a marker parameter.
var (
	RetA = Type{markers: []marker{markerRetA}}
	RetB = Type{markers: []marker{markerRetB}}
	Ret  = Type{markers: []marker{markerRet}}
)

// UnionMarkers combines multiple generic return markers into one declared
// Return type, e.g. `if`'s RetA∪RetB (spec.md §4.2).
func UnionMarkers(ts ...Type) Type {
	var out Type
	for _, t := range ts {
		out.markers = append(out.markers, t.markers...)
	}
	return out
}

// Of builds a concrete single-member Type.
func Of(k value.Kind) Type { return Type{Members: []value.Kind{k}} }

// Union builds a concrete multi-member Type.
func Union(kinds ...value.Kind) Type {
	seen := make(map[value.Kind]bool, len(kinds))
	out := make([]value.Kind, 0, len(kinds))
	for _, k := range kinds {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return Type{Members: out}
}

// Numeric is the {Integer, Float} union used throughout the numeric
// built-ins.
var Numeric = Union(value.IntegerKind, value.FloatKind)

// Hashable is the {Integer, String, Boolean} union legal as a Map key.
var Hashable = Union(value.IntegerKind, value.StringKind, value.BooleanKind)

// IsMarker reports whether t is (or combines) RetA/RetB/Ret, i.e. only
// legal as a declared return type or as an unconstrained formal-parameter
// placeholder, never as a concrete argument's static type.
func (t Type) IsMarker() bool { return len(t.markers) > 0 }

// OfValue returns the most specific static Type of a runtime value.
func OfValue(v value.Value) Type { return Of(v.Kind()) }

// String renders the type the way diagnostics display it (spec.md §4.3:
// "rendered with type names").
func (t Type) String() string {
	switch {
	case t.Unconstrained:
		return "Any" // a Variable argument is permissive, but unlabeled in practice
	case t.Any:
		return "Any"
	case t.IsMarker():
		names := make([]string, len(t.markers))
		for i, m := range t.markers {
			names[i] = markerName(m)
		}
		return strings.Join(names, "|")
	}
	names := make([]string, len(t.Members))
	for i, m := range t.Members {
		names[i] = m.String()
	}
	return strings.Join(names, "|")
}

func markerName(m marker) string {
	switch m {
	case markerRetA:
		return "RetA"
	case markerRetB:
		return "RetB"
	case markerRet:
		return "Ret"
	default:
		return ""
	}
}

// Marker is the exported form of a generic return-marker sentinel, used by
// the builtins package to locate which formal parameter a marker was
// declared on (spec.md §9: markers "project to the concrete runtime type of
// the correspondingly indexed argument" — the index of whichever formal
// parameter declares that marker, not a fixed position).
type Marker byte

const (
	NoMarker Marker = iota
	MarkerRetA
	MarkerRetB
	MarkerRet
)

// Markers returns the generic markers t combines, if any.
func (t Type) Markers() []Marker {
	if len(t.markers) == 0 {
		return nil
	}
	out := make([]Marker, len(t.markers))
	for i, m := range t.markers {
		out[i] = Marker(m)
	}
	return out
}

// IsCompatible implements the compatibility rule from spec.md §4.3:
//
//  1. If expected is Any: always compatible.
//  2. If expected is a Union: actual is compatible if it is compatible
//     with at least one member — unless actual is itself a Union, in which
//     case the two unions must be exactly equal.
//  3. Otherwise: actual (or, if actual is a Union, every member of it)
//     must be a subtype of (equal to) expected.
//
// Unconstrained (Variable / custom-function-call) actual types are always
// compatible, regardless of expected.
func IsCompatible(actual, expected Type) bool {
	if actual.Unconstrained {
		return true
	}
	if expected.Any || expected.IsMarker() {
		return true
	}
	if len(expected.Members) > 1 {
		if len(actual.Members) > 1 {
			return actual.equalUnion(expected)
		}
		return containsKind(expected.Members, singleKind(actual))
	}

	want := singleKind(expected)
	if len(actual.Members) > 1 {
		for _, m := range actual.Members {
			if m != want {
				return false
			}
		}
		return len(actual.Members) > 0
	}
	return singleKind(actual) == want
}

func singleKind(t Type) value.Kind {
	if len(t.Members) == 1 {
		return t.Members[0]
	}
	return value.InvalidKind
}

func containsKind(members []value.Kind, k value.Kind) bool {
	for _, m := range members {
		if m == k {
			return true
		}
	}
	return false
}

func (t Type) equalUnion(other Type) bool {
	if len(t.Members) != len(other.Members) {
		return false
	}
	for _, m := range t.Members {
		if !containsKind(other.Members, m) {
			return false
		}
	}
	return true
}
