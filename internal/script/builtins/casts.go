package builtins

import (
	"math"
	"strconv"

	"github.com/jmbannon/ytdl-sub/internal/script/scripterr"
	"github.com/jmbannon/ytdl-sub/internal/script/types"
	"github.com/jmbannon/ytdl-sub/internal/script/value"
)

func registerCasts(r *Registry) {
	r.Register("string", FuncInfo{
		Description: "Cast any value to a String.",
		Signature:   Signature{Params: []Param{{Type: types.AnyType}}, Return: types.Of(value.StringKind)},
		Callback: func(args []value.Value) (value.Value, error) {
			return value.String{V: args[0].Display()}, nil
		},
	})

	r.Register("int", FuncInfo{
		Description: "Cast any value to an Integer, truncating Floats toward zero.",
		Signature:   Signature{Params: []Param{{Type: types.AnyType}}, Return: types.Of(value.IntegerKind)},
		Callback: func(args []value.Value) (value.Value, error) {
			switch v := args[0].(type) {
			case value.Integer:
				return v, nil
			case value.Float:
				return value.Integer{V: int64(math.Trunc(v.V))}, nil
			case value.Boolean:
				if v.V {
					return value.Integer{V: 1}, nil
				}
				return value.Integer{V: 0}, nil
			case value.String:
				n, err := strconv.ParseInt(v.V, 10, 64)
				if err != nil {
					return nil, scripterr.New(scripterr.FunctionRuntime, "cannot cast %q to Integer", v.V)
				}
				return value.Integer{V: n}, nil
			default:
				return nil, scripterr.New(scripterr.FunctionRuntime, "cannot cast %s to Integer", args[0].Kind())
			}
		},
	})

	r.Register("float", FuncInfo{
		Description: "Cast any value to a Float.",
		Signature:   Signature{Params: []Param{{Type: types.AnyType}}, Return: types.Of(value.FloatKind)},
		Callback: func(args []value.Value) (value.Value, error) {
			switch v := args[0].(type) {
			case value.Float:
				return v, nil
			case value.Integer:
				return value.Float{V: float64(v.V)}, nil
			case value.Boolean:
				if v.V {
					return value.Float{V: 1}, nil
				}
				return value.Float{V: 0}, nil
			case value.String:
				f, err := strconv.ParseFloat(v.V, 64)
				if err != nil {
					return nil, scripterr.New(scripterr.FunctionRuntime, "cannot cast %q to Float", v.V)
				}
				return value.Float{V: f}, nil
			default:
				return nil, scripterr.New(scripterr.FunctionRuntime, "cannot cast %s to Float", args[0].Kind())
			}
		},
	})

	r.Register("bool", FuncInfo{
		Description: "Cast any value to a Boolean.",
		Signature:   Signature{Params: []Param{{Type: types.AnyType}}, Return: types.Of(value.BooleanKind)},
		Callback: func(args []value.Value) (value.Value, error) {
			return value.Boolean{V: truthy(args[0])}, nil
		},
	})
}

// truthy mirrors Python's bool(x) coercion used by the original
// implementation's bool() cast: zero/empty values are false.
func truthy(v value.Value) bool {
	switch t := v.(type) {
	case value.Boolean:
		return t.V
	case value.Integer:
		return t.V != 0
	case value.Float:
		return t.V != 0
	case value.String:
		return t.V != ""
	case value.Array:
		return len(t.V) != 0
	case value.Map:
		return len(t.Entries()) != 0
	default:
		return true
	}
}
