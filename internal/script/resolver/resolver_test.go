package resolver

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

func TestResolveSimpleDependencyChain(t *testing.T) {
	vars := map[string]ast.Tree{
		"a": mustParse(t, "{%int(1)}"),
		"b": mustParse(t, "{%add(%int(1),%int(2))}"),
		"c": mustParse(t, "sum={%add(a,b)}"),
	}
	out, err := Resolve(vars, nil, builtins.Default, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["c"].Display() != "sum=4" {
		t.Fatalf("expected sum=4, got %v", out["c"])
	}
}

func TestResolveCycleDetected(t *testing.T) {
	vars := map[string]ast.Tree{
		"a": mustParse(t, "{b}"),
		"b": mustParse(t, "{a}"),
	}
	_, err := Resolve(vars, nil, builtins.Default, nil, nil)
	if !scripterr.Is(err, scripterr.StringFormatting) {
		t.Fatalf("expected StringFormattingException, got %v", err)
	}
}

func TestResolveUnresolvablePropagation(t *testing.T) {
	vars := map[string]ast.Tree{
		"entry":    mustParse(t, "{%throw('nope')}"),
		"title":    mustParse(t, "{%map_get(entry,'title')}"),
		"greeting": mustParse(t, "hi"),
	}
	out, err := Resolve(vars, nil, builtins.Default, nil, map[string]bool{"entry": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out["greeting"].Display() != "hi" {
		t.Fatalf("expected only greeting=hi, got %#v", out)
	}
}

func TestResolveMonotonicUpdate(t *testing.T) {
	vars := map[string]ast.Tree{"a": mustParse(t, "{%int(1)}")}
	first, err := Resolve(vars, nil, builtins.Default, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vars["b"] = mustParse(t, "{%add(a,a)}")
	second, err := Resolve(vars, nil, builtins.Default, first, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second["a"].(value.Integer).Equal(first["a"]) {
		t.Fatalf("re-resolving should not change a previously resolved value")
	}
	if second["b"].Display() != "2" {
		t.Fatalf("expected b=2, got %v", second["b"])
	}
}
