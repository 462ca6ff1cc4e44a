// Package presetcfg is a host collaborator (spec.md §6): it loads a flat
// YAML document of `name: format-string` entries into a script.Script,
// the way a preset file's "overrides" section feeds the templating
// engine. It has no knowledge of the broader YAML preset schema (download
// archives, plugins, subscription lifecycle) — those remain out of scope
// per spec.md's Non-goals.
package presetcfg

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/jmbannon/ytdl-sub/internal/script/builtins"
	"github.com/jmbannon/ytdl-sub/script"
)

// Document is the flat shape this package understands: every key is
// either a variable name or, prefixed with `%`, a custom-function name;
// every value is the format string assigned to it.
type Document map[string]string

// Parse unmarshals raw YAML bytes into a Document.
func Parse(raw []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("presetcfg: invalid YAML: %w", err)
	}
	return doc, nil
}

// Load builds a Script from raw YAML using the core registry.
func Load(raw []byte) (*script.Script, error) {
	return LoadWithRegistry(raw, builtins.Default)
}

// LoadWithRegistry builds a Script from raw YAML, type-checking every
// built-in call against reg (use this to include host-registered
// functions from internal/hostfuncs before parsing).
func LoadWithRegistry(raw []byte, reg *builtins.Registry) (*script.Script, error) {
	doc, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	s := script.NewWithRegistry(reg)
	if err := s.Add(doc); err != nil {
		return nil, err
	}
	return s, nil
}
