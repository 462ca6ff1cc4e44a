package builtins

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jmbannon/ytdl-sub/internal/script/scripterr"
	"github.com/jmbannon/ytdl-sub/internal/script/types"
	"github.com/jmbannon/ytdl-sub/internal/script/value"
)

var titleCaser = cases.Title(language.Und)

func registerStrings(r *Registry) {
	stringToString := Signature{Params: []Param{{Type: types.Of(value.StringKind)}}, Return: types.Of(value.StringKind)}

	r.Register("lower", FuncInfo{
		Description: "Lowercase a String.",
		Signature:   stringToString,
		Callback: func(args []value.Value) (value.Value, error) {
			return value.String{V: strings.ToLower(args[0].(value.String).V)}, nil
		},
	})

	r.Register("upper", FuncInfo{
		Description: "Uppercase a String.",
		Signature:   stringToString,
		Callback: func(args []value.Value) (value.Value, error) {
			return value.String{V: strings.ToUpper(args[0].(value.String).V)}, nil
		},
	})

	r.Register("capitalize", FuncInfo{
		Description: "Uppercase only the first rune of a String.",
		Signature:   stringToString,
		Callback: func(args []value.Value) (value.Value, error) {
			s := args[0].(value.String).V
			if s == "" {
				return value.String{V: s}, nil
			}
			rs := []rune(s)
			rs[0] = unicode.ToUpper(rs[0])
			return value.String{V: string(rs)}, nil
		},
	})

	r.Register("titlecase", FuncInfo{
		Description: "Title-case a String: uppercase the first letter of each word.",
		Signature:   stringToString,
		Callback: func(args []value.Value) (value.Value, error) {
			return value.String{V: titleCaser.String(args[0].(value.String).V)}, nil
		},
	})

	r.Register("replace", FuncInfo{
		Description: "Replace occurrences of a substring within a String, up to an optional limit.",
		Signature: Signature{
			Params: []Param{
				{Type: types.Of(value.StringKind)},
				{Type: types.Of(value.StringKind)},
				{Type: types.Of(value.StringKind)},
				{Type: types.Of(value.IntegerKind), Optional: true},
			},
			Return: types.Of(value.StringKind),
		},
		Callback: func(args []value.Value) (value.Value, error) {
			s := args[0].(value.String).V
			old := args[1].(value.String).V
			newS := args[2].(value.String).V
			n := -1
			if len(args) > 3 {
				n = int(args[3].(value.Integer).V)
			}
			return value.String{V: strings.Replace(s, old, newS, n)}, nil
		},
	})

	r.Register("concat", FuncInfo{
		Description: "Concatenate any number of Strings.",
		Signature: Signature{
			Variadic: &Param{Type: types.Of(value.StringKind)},
			Return:   types.Of(value.StringKind),
		},
		Callback: func(args []value.Value) (value.Value, error) {
			var sb strings.Builder
			for _, a := range args {
				s, ok := a.(value.String)
				if !ok {
					return nil, scripterr.New(scripterr.FunctionRuntime, "concat: expected String, got "+a.Kind().String())
				}
				sb.WriteString(s.V)
			}
			return value.String{V: sb.String()}, nil
		},
	})
}
