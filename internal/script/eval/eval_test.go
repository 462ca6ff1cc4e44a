package eval

import (
	"testing"

	"github.com/jmbannon/ytdl-sub/internal/script/ast"
	"github.com/jmbannon/ytdl-sub/internal/script/builtins"
	"github.com/jmbannon/ytdl-sub/internal/script/parser"
	"github.com/jmbannon/ytdl-sub/internal/script/scripterr"
	"github.com/jmbannon/ytdl-sub/internal/script/value"
)

func mustParse(t *testing.T, src string) ast.Tree {
	t.Helper()
	tree, err := parser.Parse(src, builtins.Default)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return tree
}

func TestEvalPlainTextConcatenation(t *testing.T) {
	env := &Env{Registry: builtins.Default, Vars: map[string]value.Value{}}
	tree := mustParse(t, "sum={%add(%int(1), %int(2))}")
	v, err := Eval(tree, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Display() != "sum=3" {
		t.Fatalf("expected %q, got %q", "sum=3", v.Display())
	}
}

func TestEvalVariableLookup(t *testing.T) {
	env := &Env{Registry: builtins.Default, Vars: map[string]value.Value{"count": value.Integer{V: 5}}}
	tree := mustParse(t, "{count}")
	v, err := Eval(tree, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, ok := v.(value.Integer); !ok || got.V != 5 {
		t.Fatalf("expected Integer(5), got %#v", v)
	}
}

func TestEvalMapApplyLambdaProtocol(t *testing.T) {
	custom := map[string]ast.CustomFunction{}
	tree, arity, err := parser.ParseCustomFunction("{[%upper($0), %lower($1)]}", builtins.Default)
	if err != nil {
		t.Fatalf("parse custom function: %v", err)
	}
	custom["f"] = ast.CustomFunction{Name: "f", Arity: arity, Body: tree}

	m := mustParse(t, "{{'Key1':'Value1','Key2':'Value2'}}")
	mv, err := Eval(m, &Env{Registry: builtins.Default, Vars: map[string]value.Value{}, Custom: custom})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	env := &Env{
		Registry: builtins.Default,
		Vars:     map[string]value.Value{"m": mv},
		Custom:   custom,
	}
	out := mustParse(t, "{%map_apply(m, %f)}")
	v, err := Eval(out, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr, ok := v.(value.Array)
	if !ok || len(arr.V) != 2 {
		t.Fatalf("expected 2-element array, got %#v", v)
	}
	first, ok := arr.V[0].(value.Array)
	if !ok || len(first.V) != 2 {
		t.Fatalf("expected [upper(key), lower(value)] pair, got %#v", arr.V[0])
	}
	if first.V[0].Display() != "KEY1" || first.V[1].Display() != "value1" {
		t.Fatalf("unexpected pair contents: %#v", first)
	}
}

func TestEvalThrowPropagatesUnwrapped(t *testing.T) {
	env := &Env{Registry: builtins.Default, Vars: map[string]value.Value{}}
	tree := mustParse(t, "{%throw('nope')}")
	_, err := Eval(tree, env)
	if !scripterr.Is(err, scripterr.UserThrownRuntime) {
		t.Fatalf("expected an unwrapped UserThrownRuntimeError from %%throw, got %v", err)
	}
}
