package parser

import (
	"testing"

	"github.com/jmbannon/ytdl-sub/internal/script/ast"
	"github.com/jmbannon/ytdl-sub/internal/script/builtins"
	"github.com/jmbannon/ytdl-sub/internal/script/scripterr"
	"github.com/jmbannon/ytdl-sub/internal/script/value"
)

func TestParsePlainText(t *testing.T) {
	tree, err := Parse("hello world", builtins.Default)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Tokens) != 1 {
		t.Fatalf("expected 1 token, got %d", len(tree.Tokens))
	}
	lit, ok := tree.Tokens[0].(ast.Literal)
	if !ok || lit.Value.(value.String).V != "hello world" {
		t.Fatalf("expected literal %q, got %#v", "hello world", tree.Tokens[0])
	}
}

func TestParseVariableReference(t *testing.T) {
	tree, err := Parse("{count}", builtins.Default)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := tree.Tokens[0].(ast.Variable); !ok {
		t.Fatalf("expected Variable, got %#v", tree.Tokens[0])
	}
}

func TestParseBareIntegerLiteralRejected(t *testing.T) {
	_, err := Parse("{1}", builtins.Default)
	if !scripterr.Is(err, scripterr.InvalidSyntax) {
		t.Fatalf("expected InvalidSyntaxException for a bare integer literal, got %v", err)
	}
}

func TestParseFunctionCall(t *testing.T) {
	tree, err := Parse("{%int(2)}", builtins.Default)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call, ok := tree.Tokens[0].(ast.Call)
	if !ok || call.Name != "int" || call.Custom {
		t.Fatalf("expected builtin call to int, got %#v", tree.Tokens[0])
	}
}

func TestParseCustomCallIsUnconstrained(t *testing.T) {
	tree, err := Parse("{%mycustom(1, 'x')}", builtins.Default)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call, ok := tree.Tokens[0].(ast.Call)
	if !ok || call.Name != "mycustom" || !call.Custom {
		t.Fatalf("expected custom call, got %#v", tree.Tokens[0])
	}
}

func TestParseArrayLiteralOfCallsInCustomFunction(t *testing.T) {
	tree, _, err := ParseCustomFunction("{[%upper($0), %lower($1)]}", builtins.Default)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr, ok := tree.Tokens[0].(ast.ArrayLiteral)
	if !ok || len(arr.Elements) != 2 {
		t.Fatalf("expected 2-element array, got %#v", tree.Tokens[0])
	}
	if _, ok := arr.Elements[0].(ast.Call); !ok {
		t.Fatalf("expected a call to %%upper, got %#v", arr.Elements[0])
	}
}

func TestParseWrappedMapLiteral(t *testing.T) {
	tree, err := Parse("{{'Key1':'Value1','Key2':'Value2'}}", builtins.Default)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := tree.Tokens[0].(ast.MapLiteral)
	if !ok || len(m.Entries) != 2 {
		t.Fatalf("expected 2-entry map literal, got %#v", tree.Tokens[0])
	}
}

func TestParseIncompatibleArgumentsVariadic(t *testing.T) {
	_, err := Parse("{%array_extend('not', 'array')}", builtins.Default)
	if !scripterr.Is(err, scripterr.IncompatibleFunctionArguments) {
		t.Fatalf("expected IncompatibleFunctionArguments, got %v", err)
	}
}

func TestParseNestedIfUnionRejectedByMapGet(t *testing.T) {
	_, err := Parse("{%map_get(%if(True, {}, []), 'k')}", builtins.Default)
	if !scripterr.Is(err, scripterr.IncompatibleFunctionArguments) {
		t.Fatalf("expected IncompatibleFunctionArguments for Map∪Array into map_get, got %v", err)
	}
}

func TestParseCustomFunctionArity(t *testing.T) {
	tree, arity, err := ParseCustomFunction("{[%upper($0), %lower($1)]}", builtins.Default)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if arity != 2 {
		t.Fatalf("expected arity 2, got %d", arity)
	}
	if len(tree.Tokens) != 1 {
		t.Fatalf("expected a single top-level token, got %d", len(tree.Tokens))
	}
}

func TestParseCustomFunctionArityGapRejected(t *testing.T) {
	_, _, err := ParseCustomFunction("{%string($1)}", builtins.Default)
	if !scripterr.Is(err, scripterr.InvalidSyntax) {
		t.Fatalf("expected InvalidSyntaxException for a non-contiguous $N gap, got %v", err)
	}
}

func TestParseArgRefOutsideCustomFunctionRejected(t *testing.T) {
	_, err := Parse("{$0}", builtins.Default)
	if !scripterr.Is(err, scripterr.InvalidSyntax) {
		t.Fatalf("expected InvalidSyntaxException for $N outside a custom function, got %v", err)
	}
}
