package builtins

import (
	"github.com/jmbannon/ytdl-sub/internal/script/types"
	"github.com/jmbannon/ytdl-sub/internal/script/value"
)

func registerConditional(r *Registry) {
	r.Register("if", FuncInfo{
		Description: "Return true or false depending on condition. Both branches are evaluated; only the selected one is returned.",
		Signature: Signature{
			Params: []Param{
				{Type: types.Of(value.BooleanKind)},
				{Type: types.RetA},
				{Type: types.RetB},
			},
			Return: types.UnionMarkers(types.RetA, types.RetB),
		},
		Callback: if_,
	})
}

func if_(args []value.Value) (value.Value, error) {
	if args[0].(value.Boolean).V {
		return args[1], nil
	}
	return args[2], nil
}
