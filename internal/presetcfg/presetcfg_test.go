package presetcfg

import (
	"testing"

	"github.com/jmbannon/ytdl-sub/script"
)

const sample = `
a: "{%int(1)}"
b: "{%int(2)}"
c: "sum={%add(a,b)}"
`

func TestLoadAndResolve(t *testing.T) {
	s, err := Load([]byte(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := s.Resolve(script.ResolveOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["c"].Display() != "sum=3" {
		t.Fatalf("expected sum=3, got %v", out["c"])
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load([]byte("a: [unterminated"))
	if err == nil {
		t.Fatalf("expected a YAML parse error")
	}
}
