package script

import (
	"testing"

	"github.com/jmbannon/ytdl-sub/internal/script/scripterr"
	"github.com/jmbannon/ytdl-sub/internal/script/value"
)

func TestScriptArithmeticWithStringConcat(t *testing.T) {
	s := New()
	if err := s.Add(map[string]string{
		"a": "{%int(1)}",
		"b": "{%int(2)}",
		"c": "sum={%add(a,b)}",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := s.Resolve(ResolveOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["c"].Display() != "sum=3" {
		t.Fatalf("expected sum=3, got %v", out["c"])
	}
}

func TestScriptMapAndLambda(t *testing.T) {
	s := New()
	if err := s.Add(map[string]string{
		"%f": "{[%upper($0), %lower($1)]}",
		"m":  "{{'Key1':'Value1','Key2':'Value2'}}",
		"out": "{%map_apply(m, %f)}",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := s.Resolve(ResolveOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out["out"].(value.Array)
	if len(got.V) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(got.V))
	}
}

func TestScriptCycleDetected(t *testing.T) {
	s := New()
	if err := s.Add(map[string]string{"a": "{b}", "b": "{a}"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := s.Resolve(ResolveOptions{})
	if !scripterr.Is(err, scripterr.StringFormatting) {
		t.Fatalf("expected StringFormattingException, got %v", err)
	}
}

func TestScriptUnresolvablePropagation(t *testing.T) {
	s := New()
	if err := s.Add(map[string]string{
		"entry":    "{%throw('nope')}",
		"title":    "{%map_get(entry,'title')}",
		"greeting": "hi",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := s.Resolve(ResolveOptions{Unresolvable: map[string]bool{"entry": true}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out["greeting"].Display() != "hi" {
		t.Fatalf("expected only greeting=hi, got %#v", out)
	}
}

func TestScriptUpdateModeCachesAndGet(t *testing.T) {
	s := New()
	if err := s.Add(map[string]string{"a": "{%int(1)}"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Resolve(ResolveOptions{Update: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := s.Get("a")
	if !ok || v.Display() != "1" {
		t.Fatalf("expected cached a=1, got %v, %v", v, ok)
	}
}

func TestScriptIncompatibleArgumentsRejectedAtAdd(t *testing.T) {
	s := New()
	err := s.Add(map[string]string{"bad": "{%array_extend('not', 'array')}"})
	if !scripterr.Is(err, scripterr.IncompatibleFunctionArguments) {
		t.Fatalf("expected IncompatibleFunctionArguments, got %v", err)
	}
}
