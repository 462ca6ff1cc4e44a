package builtins

import (
	"github.com/jmbannon/ytdl-sub/internal/script/scripterr"
	"github.com/jmbannon/ytdl-sub/internal/script/types"
	"github.com/jmbannon/ytdl-sub/internal/script/value"
)

func registerArrays(r *Registry) {
	r.Register("array_extend", FuncInfo{
		Description: "Concatenate any number of Arrays into one.",
		Signature: Signature{
			Variadic: &Param{Type: types.Of(value.ArrayKind)},
			Return:   types.Of(value.ArrayKind),
		},
		Callback: func(args []value.Value) (value.Value, error) {
			var out []value.Value
			for _, a := range args {
				arr, ok := a.(value.Array)
				if !ok {
					return nil, scripterr.New(scripterr.FunctionRuntime, "array_extend: expected Array, got "+a.Kind().String())
				}
				out = append(out, arr.V...)
			}
			return value.Array{V: out}, nil
		},
	})

	r.Register("array_at", FuncInfo{
		Description: "Return the element at the given index.",
		Signature: Signature{
			Params: []Param{{Type: types.Of(value.ArrayKind)}, {Type: types.Of(value.IntegerKind)}},
			Return: types.AnyType,
		},
		Callback: func(args []value.Value) (value.Value, error) {
			arr := args[0].(value.Array).V
			idx := args[1].(value.Integer).V
			if idx < 0 || idx >= int64(len(arr)) {
				return nil, scripterr.New(scripterr.FunctionRuntime, "array_at: index %d out of range for array of length %d", idx, len(arr))
			}
			return arr[idx], nil
		},
	})

	r.Register("array_contains", FuncInfo{
		Description: "Report whether an Array contains a value.",
		Signature: Signature{
			Params: []Param{{Type: types.Of(value.ArrayKind)}, {Type: types.AnyType}},
			Return: types.Of(value.BooleanKind),
		},
		Callback: func(args []value.Value) (value.Value, error) {
			arr := args[0].(value.Array).V
			needle := args[1]
			for _, v := range arr {
				if v.Equal(needle) {
					return value.Boolean{V: true}, nil
				}
			}
			return value.Boolean{V: false}, nil
		},
	})

	r.Register("array_index", FuncInfo{
		Description: "Return the index of a value within an Array, raising an error if absent.",
		Signature: Signature{
			Params: []Param{{Type: types.Of(value.ArrayKind)}, {Type: types.AnyType}},
			Return: types.Of(value.IntegerKind),
		},
		Callback: func(args []value.Value) (value.Value, error) {
			arr := args[0].(value.Array).V
			needle := args[1]
			for i, v := range arr {
				if v.Equal(needle) {
					return value.Integer{V: int64(i)}, nil
				}
			}
			return nil, scripterr.New(scripterr.ArrayValueDoesNotExist, "array_index: value %s not found in array", needle.Display())
		},
	})

	r.Register("array_slice", FuncInfo{
		Description: "Return a sub-range of an Array, from start up to an optional end (exclusive).",
		Signature: Signature{
			Params: []Param{
				{Type: types.Of(value.ArrayKind)},
				{Type: types.Of(value.IntegerKind)},
				{Type: types.Of(value.IntegerKind), Optional: true},
			},
			Return: types.Of(value.ArrayKind),
		},
		Callback: func(args []value.Value) (value.Value, error) {
			arr := args[0].(value.Array).V
			start := int(args[1].(value.Integer).V)
			end := len(arr)
			if len(args) > 2 {
				end = int(args[2].(value.Integer).V)
			}
			if start < 0 {
				start = 0
			}
			if end > len(arr) {
				end = len(arr)
			}
			if start > end {
				return value.Array{}, nil
			}
			out := make([]value.Value, end-start)
			copy(out, arr[start:end])
			return value.Array{V: out}, nil
		},
	})

	r.Register("array_flatten", FuncInfo{
		Description: "Recursively flatten nested Arrays into a single Array.",
		Signature: Signature{
			Params: []Param{{Type: types.Of(value.ArrayKind)}},
			Return: types.Of(value.ArrayKind),
		},
		Callback: func(args []value.Value) (value.Value, error) {
			return value.Array{V: flatten(args[0].(value.Array).V)}, nil
		},
	})

	r.Register("array_reverse", FuncInfo{
		Description: "Return a new Array with elements in reverse order.",
		Signature: Signature{
			Params: []Param{{Type: types.Of(value.ArrayKind)}},
			Return: types.Of(value.ArrayKind),
		},
		Callback: func(args []value.Value) (value.Value, error) {
			arr := args[0].(value.Array).V
			out := make([]value.Value, len(arr))
			for i, v := range arr {
				out[len(arr)-1-i] = v
			}
			return value.Array{V: out}, nil
		},
	})

	r.Register("array_apply", FuncInfo{
		Description: "Apply a lambda of arity 1 to every element of an Array, returning the per-element argument arrays for the evaluator to dispatch.",
		LambdaTaking: true,
		Signature: Signature{
			Params: []Param{{Type: types.Of(value.ArrayKind)}, {Type: types.Of(value.LambdaRefKind)}},
			Return: types.Of(value.ArrayKind),
		},
		Callback: func(args []value.Value) (value.Value, error) {
			arr := args[0].(value.Array).V
			out := make([]value.Value, len(arr))
			for i, v := range arr {
				out[i] = value.Array{V: []value.Value{v}}
			}
			return value.Array{V: out}, nil
		},
	})

	r.Register("array_enumerate", FuncInfo{
		Description: "Apply a lambda of arity 2 (index, element) to every element of an Array, returning the per-element argument arrays for the evaluator to dispatch.",
		LambdaTaking: true,
		Signature: Signature{
			Params: []Param{{Type: types.Of(value.ArrayKind)}, {Type: types.Of(value.LambdaRefKind)}},
			Return: types.Of(value.ArrayKind),
		},
		Callback: func(args []value.Value) (value.Value, error) {
			arr := args[0].(value.Array).V
			out := make([]value.Value, len(arr))
			for i, v := range arr {
				out[i] = value.Array{V: []value.Value{value.Integer{V: int64(i)}, v}}
			}
			return value.Array{V: out}, nil
		},
	})
}

func flatten(elems []value.Value) []value.Value {
	var out []value.Value
	for _, v := range elems {
		if arr, ok := v.(value.Array); ok {
			out = append(out, flatten(arr.V)...)
			continue
		}
		out = append(out, v)
	}
	return out
}
