package builtins

import (
	"github.com/jmbannon/ytdl-sub/internal/script/scripterr"
	"github.com/jmbannon/ytdl-sub/internal/script/types"
	"github.com/jmbannon/ytdl-sub/internal/script/value"
)

// asFloat extracts a float64 from an Integer or Float value.
func asFloat(v value.Value) float64 {
	switch t := v.(type) {
	case value.Integer:
		return float64(t.V)
	case value.Float:
		return t.V
	}
	return 0
}

func bothInteger(a, b value.Value) (int64, int64, bool) {
	ai, aok := a.(value.Integer)
	bi, bok := b.(value.Integer)
	if aok && bok {
		return ai.V, bi.V, true
	}
	return 0, 0, false
}

func numericSignature() Signature {
	return Signature{
		Params: []Param{{Type: types.Numeric}, {Type: types.Numeric}},
		Return: types.Numeric,
	}
}

func registerNumeric(r *Registry) {
	r.Register("add", FuncInfo{
		Description: "Add two numbers. Result is Integer iff both operands are Integer.",
		Signature:   numericSignature(),
		Callback: func(args []value.Value) (value.Value, error) {
			if l, rr, ok := bothInteger(args[0], args[1]); ok {
				return value.Integer{V: l + rr}, nil
			}
			return value.Float{V: asFloat(args[0]) + asFloat(args[1])}, nil
		},
	})

	r.Register("sub", FuncInfo{
		Description: "Subtract two numbers. Result is Integer iff both operands are Integer.",
		Signature:   numericSignature(),
		Callback: func(args []value.Value) (value.Value, error) {
			if l, rr, ok := bothInteger(args[0], args[1]); ok {
				return value.Integer{V: l - rr}, nil
			}
			return value.Float{V: asFloat(args[0]) - asFloat(args[1])}, nil
		},
	})

	r.Register("mul", FuncInfo{
		Description: "Multiply two numbers. Result is Integer iff both operands are Integer.",
		Signature:   numericSignature(),
		Callback: func(args []value.Value) (value.Value, error) {
			if l, rr, ok := bothInteger(args[0], args[1]); ok {
				return value.Integer{V: l * rr}, nil
			}
			return value.Float{V: asFloat(args[0]) * asFloat(args[1])}, nil
		},
	})

	r.Register("div", FuncInfo{
		Description: "Divide two numbers. Result is Integer iff both operands are Integer and the division is exact.",
		Signature:   numericSignature(),
		Callback: func(args []value.Value) (value.Value, error) {
			if asFloat(args[1]) == 0 {
				return nil, scripterr.New(scripterr.FunctionRuntime, "div: division by zero")
			}
			if l, rr, ok := bothInteger(args[0], args[1]); ok && rr != 0 && l%rr == 0 {
				return value.Integer{V: l / rr}, nil
			}
			return value.Float{V: asFloat(args[0]) / asFloat(args[1])}, nil
		},
	})

	r.Register("max", FuncInfo{
		Description: "Return the larger of two numbers.",
		Signature:   numericSignature(),
		Callback: func(args []value.Value) (value.Value, error) {
			if l, rr, ok := bothInteger(args[0], args[1]); ok {
				if l >= rr {
					return value.Integer{V: l}, nil
				}
				return value.Integer{V: rr}, nil
			}
			if asFloat(args[0]) >= asFloat(args[1]) {
				return value.Float{V: asFloat(args[0])}, nil
			}
			return value.Float{V: asFloat(args[1])}, nil
		},
	})

	r.Register("min", FuncInfo{
		Description: "Return the smaller of two numbers.",
		Signature:   numericSignature(),
		Callback: func(args []value.Value) (value.Value, error) {
			if l, rr, ok := bothInteger(args[0], args[1]); ok {
				if l <= rr {
					return value.Integer{V: l}, nil
				}
				return value.Integer{V: rr}, nil
			}
			if asFloat(args[0]) <= asFloat(args[1]) {
				return value.Float{V: asFloat(args[0])}, nil
			}
			return value.Float{V: asFloat(args[1])}, nil
		},
	})

	r.Register("mod", FuncInfo{
		Description: "Integer modulo.",
		Signature: Signature{
			Params: []Param{{Type: types.Of(value.IntegerKind)}, {Type: types.Of(value.IntegerKind)}},
			Return: types.Of(value.IntegerKind),
		},
		Callback: func(args []value.Value) (value.Value, error) {
			l := args[0].(value.Integer).V
			rr := args[1].(value.Integer).V
			if rr == 0 {
				return nil, scripterr.New(scripterr.FunctionRuntime, "mod: division by zero")
			}
			return value.Integer{V: l % rr}, nil
		},
	})
}
