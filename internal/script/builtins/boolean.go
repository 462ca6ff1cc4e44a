package builtins

import (
	"github.com/jmbannon/ytdl-sub/internal/script/types"
	"github.com/jmbannon/ytdl-sub/internal/script/value"
)

// compareValues orders two values of the same comparable kind. Only
// Integer, Float, and String are ordered; other kinds are compared only
// for equality via equals.
func compareValues(a, b value.Value) int {
	switch av := a.(type) {
	case value.Integer:
		switch bv := b.(type) {
		case value.Integer:
			switch {
			case av.V < bv.V:
				return -1
			case av.V > bv.V:
				return 1
			default:
				return 0
			}
		case value.Float:
			return compareFloat(float64(av.V), bv.V)
		}
	case value.Float:
		return compareFloat(av.V, asFloat(b))
	case value.String:
		if bv, ok := b.(value.String); ok {
			switch {
			case av.V < bv.V:
				return -1
			case av.V > bv.V:
				return 1
			default:
				return 0
			}
		}
	}
	return 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func registerBooleanCmp(r *Registry) {
	anyAny := Signature{Params: []Param{{Type: types.AnyType}, {Type: types.AnyType}}, Return: types.Of(value.BooleanKind)}
	boolBool := Signature{Params: []Param{{Type: types.Of(value.BooleanKind)}, {Type: types.Of(value.BooleanKind)}}, Return: types.Of(value.BooleanKind)}

	r.Register("equals", FuncInfo{
		Description: "Return True if left equals right.",
		Signature:   anyAny,
		Callback: func(args []value.Value) (value.Value, error) {
			return value.Boolean{V: args[0].Equal(args[1])}, nil
		},
	})
	r.Register("lt", FuncInfo{
		Description: "Return True if left < right.",
		Signature:   anyAny,
		Callback: func(args []value.Value) (value.Value, error) {
			return value.Boolean{V: compareValues(args[0], args[1]) < 0}, nil
		},
	})
	r.Register("lte", FuncInfo{
		Description: "Return True if left <= right.",
		Signature:   anyAny,
		Callback: func(args []value.Value) (value.Value, error) {
			return value.Boolean{V: compareValues(args[0], args[1]) <= 0}, nil
		},
	})
	r.Register("gt", FuncInfo{
		Description: "Return True if left > right.",
		Signature:   anyAny,
		Callback: func(args []value.Value) (value.Value, error) {
			return value.Boolean{V: compareValues(args[0], args[1]) > 0}, nil
		},
	})
	r.Register("gte", FuncInfo{
		Description: "Return True if left >= right.",
		Signature:   anyAny,
		Callback: func(args []value.Value) (value.Value, error) {
			return value.Boolean{V: compareValues(args[0], args[1]) >= 0}, nil
		},
	})

	// "and", "or", "not", "xor" collide with reserved words in the host
	// language the spec was distilled from. None of them is reserved in Go,
	// but their implementations keep the `_` suffix (and_, or_, xor_, not_)
	// per spec.md §4.2's name-clash rule.
	r.Register("and", FuncInfo{
		Description: "Boolean AND.",
		Signature:   boolBool,
		Callback:    and_,
	})
	r.Register("or", FuncInfo{
		Description: "Boolean OR.",
		Signature:   boolBool,
		Callback:    or_,
	})
	r.Register("xor", FuncInfo{
		Description: "Boolean XOR.",
		Signature:   boolBool,
		Callback:    xor_,
	})
	r.Register("not", FuncInfo{
		Description: "Boolean NOT.",
		Signature:   Signature{Params: []Param{{Type: types.Of(value.BooleanKind)}}, Return: types.Of(value.BooleanKind)},
		Callback:    not_,
	})
}

func and_(args []value.Value) (value.Value, error) {
	return value.Boolean{V: args[0].(value.Boolean).V && args[1].(value.Boolean).V}, nil
}

func or_(args []value.Value) (value.Value, error) {
	return value.Boolean{V: args[0].(value.Boolean).V || args[1].(value.Boolean).V}, nil
}

func xor_(args []value.Value) (value.Value, error) {
	return value.Boolean{V: args[0].(value.Boolean).V != args[1].(value.Boolean).V}, nil
}

func not_(args []value.Value) (value.Value, error) {
	return value.Boolean{V: !args[0].(value.Boolean).V}, nil
}
