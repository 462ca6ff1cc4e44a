package builtins

import (
	"github.com/jmbannon/ytdl-sub/internal/script/scripterr"
	"github.com/jmbannon/ytdl-sub/internal/script/types"
	"github.com/jmbannon/ytdl-sub/internal/script/value"
)

func registerControl(r *Registry) {
	r.Register("throw", FuncInfo{
		Description: "Raise a user-thrown runtime error carrying the given message.",
		Signature: Signature{
			Params: []Param{{Type: types.Of(value.StringKind)}},
			Return: types.AnyType,
		},
		Callback: func(args []value.Value) (value.Value, error) {
			return nil, scripterr.New(scripterr.UserThrownRuntime, "%s", args[0].(value.String).V)
		},
	})
}
