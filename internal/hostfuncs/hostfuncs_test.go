package hostfuncs

import (
	"testing"

	"github.com/jmbannon/ytdl-sub/internal/script/builtins"
	"github.com/jmbannon/ytdl-sub/internal/script/value"
)

func registry(t *testing.T) *builtins.Registry {
	t.Helper()
	r := builtins.NewRegistry()
	builtins.RegisterAll(r)
	Register(r)
	return r
}

func call(t *testing.T, r *builtins.Registry, name string, args ...value.Value) value.Value {
	t.Helper()
	info, ok := r.Lookup(name)
	if !ok {
		t.Fatalf("function %q not registered", name)
	}
	v, err := info.Callback(args)
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", name, err)
	}
	return v
}

func TestSanitizeStripsIllegalChars(t *testing.T) {
	r := registry(t)
	got := call(t, r, "sanitize", value.String{V: `a/b:c*d`})
	if got.Display() != "abcd" {
		t.Fatalf("expected sanitized %q, got %q", "abcd", got.Display())
	}
}

func TestToDateMetadataExpandsParts(t *testing.T) {
	r := registry(t)
	got := call(t, r, "to_date_metadata", value.String{V: "20230115"})
	m := got.(value.Map)
	year, _ := m.Get(value.String{V: "year"})
	if year.Display() != "2023" {
		t.Fatalf("expected year=2023, got %v", year)
	}
	monthReversed, _ := m.Get(value.String{V: "month_reversed"})
	if monthReversed.Display() != "12" {
		t.Fatalf("expected month_reversed=12, got %v", monthReversed)
	}
}

func TestToDateMetadataRejectsMalformedInput(t *testing.T) {
	r := registry(t)
	info, _ := r.Lookup("to_date_metadata")
	_, err := info.Callback([]value.Value{value.String{V: "not-a-date"}})
	if err == nil {
		t.Fatalf("expected an error for malformed input")
	}
}

func TestTruncateFilepathPreservesExtension(t *testing.T) {
	r := registry(t)
	long := ""
	for i := 0; i < 300; i++ {
		long += "a"
	}
	got := call(t, r, "truncate_filepath_if_too_long", value.String{V: long + ".mp4"})
	result := got.(value.String).V
	if len(result) != maxPathComponentBytes {
		t.Fatalf("expected truncated path of exactly %d bytes, got %d", maxPathComponentBytes, len(result))
	}
	if result[len(result)-4:] != ".mp4" {
		t.Fatalf("expected extension preserved, got %q", result)
	}
}
