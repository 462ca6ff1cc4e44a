package builtins

import (
	"github.com/jmbannon/ytdl-sub/internal/script/scripterr"
	"github.com/jmbannon/ytdl-sub/internal/script/types"
	"github.com/jmbannon/ytdl-sub/internal/script/value"
)

func registerMaps(r *Registry) {
	r.Register("map_get", FuncInfo{
		Description: "Return the value bound to a key, raising an error if absent and no default is given.",
		Signature: Signature{
			Params: []Param{
				{Type: types.Of(value.MapKind)},
				{Type: types.Hashable},
				{Type: types.AnyType, Optional: true},
			},
			Return: types.AnyType,
		},
		Callback: func(args []value.Value) (value.Value, error) {
			m := args[0].(value.Map)
			if v, ok := m.Get(args[1]); ok {
				return v, nil
			}
			if len(args) > 2 {
				return args[2], nil
			}
			return nil, scripterr.New(scripterr.KeyDoesNotExistRuntime, "map_get: key %s not found", args[1].Display())
		},
	})

	r.Register("map_contains", FuncInfo{
		Description: "Report whether a Map contains a key.",
		Signature: Signature{
			Params: []Param{{Type: types.Of(value.MapKind)}, {Type: types.Hashable}},
			Return: types.Of(value.BooleanKind),
		},
		Callback: func(args []value.Value) (value.Value, error) {
			return value.Boolean{V: args[0].(value.Map).Contains(args[1])}, nil
		},
	})

	r.Register("map_apply", FuncInfo{
		Description: "Apply a lambda of arity 2 (key, value) to every entry of a Map, returning the per-entry argument arrays for the evaluator to dispatch.",
		LambdaTaking: true,
		Signature: Signature{
			Params: []Param{{Type: types.Of(value.MapKind)}, {Type: types.Of(value.LambdaRefKind)}},
			Return: types.Of(value.ArrayKind),
		},
		Callback: func(args []value.Value) (value.Value, error) {
			entries := args[0].(value.Map).Entries()
			out := make([]value.Value, len(entries))
			for i, e := range entries {
				out[i] = value.Array{V: []value.Value{e.Key, e.Value}}
			}
			return value.Array{V: out}, nil
		},
	})

	r.Register("map_enumerate", FuncInfo{
		Description: "Apply a lambda of arity 3 (index, key, value) to every entry of a Map, returning the per-entry argument arrays for the evaluator to dispatch.",
		LambdaTaking: true,
		Signature: Signature{
			Params: []Param{{Type: types.Of(value.MapKind)}, {Type: types.Of(value.LambdaRefKind)}},
			Return: types.Of(value.ArrayKind),
		},
		Callback: func(args []value.Value) (value.Value, error) {
			entries := args[0].(value.Map).Entries()
			out := make([]value.Value, len(entries))
			for i, e := range entries {
				out[i] = value.Array{V: []value.Value{value.Integer{V: int64(i)}, e.Key, e.Value}}
			}
			return value.Array{V: out}, nil
		},
	})
}
