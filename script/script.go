// Package script is the single public entry point for the embedded
// expression language: parse format strings, install custom functions,
// and drive incremental dependency resolution (spec.md §4.7). It wraps
// lexer -> parser -> resolver -> eval the way the teacher's pkg/dwscript
// wraps lexer -> parser -> semantic -> interp, generalized to this
// language's add/resolve/get lifecycle instead of DWScript's compile/run.
package script

import (
	"strings"

	"github.com/jmbannon/ytdl-sub/internal/script/ast"
	"github.com/jmbannon/ytdl-sub/internal/script/builtins"
	"github.com/jmbannon/ytdl-sub/internal/script/parser"
	"github.com/jmbannon/ytdl-sub/internal/script/resolver"
	"github.com/jmbannon/ytdl-sub/internal/script/value"
)

// Script owns a set of variable ASTs, a custom-function table, and an
// optional resolution cache. It is single-threaded and synchronous: all
// mutation happens on the calling goroutine (spec.md §5).
type Script struct {
	registry *builtins.Registry
	vars     map[string]ast.Tree
	custom   map[string]ast.CustomFunction
	cache    map[string]value.Value
}

// New returns an empty Script using the core built-in registry. Use
// NewWithRegistry to layer host-registered functions on top (spec.md §6).
func New() *Script {
	return NewWithRegistry(builtins.Default)
}

// NewWithRegistry returns an empty Script that type-checks and evaluates
// calls against reg instead of the core-only builtins.Default.
func NewWithRegistry(reg *builtins.Registry) *Script {
	return &Script{
		registry: reg,
		vars:     make(map[string]ast.Tree),
		custom:   make(map[string]ast.CustomFunction),
		cache:    make(map[string]value.Value),
	}
}

// Add parses every entry of defs and installs it: a key beginning with
// `%` is a custom-function declaration, everything else a variable
// (spec.md §4.7/§6.1). Parsing type-checks every built-in call inline;
// the first error aborts before any entry from this call is installed.
func (s *Script) Add(defs map[string]string) error {
	newVars := make(map[string]ast.Tree, len(defs))
	newCustom := make(map[string]ast.CustomFunction, len(defs))

	for name, src := range defs {
		if strings.HasPrefix(name, "%") {
			fnName := strings.TrimPrefix(name, "%")
			tree, arity, err := parser.ParseCustomFunction(src, s.registry)
			if err != nil {
				return err
			}
			newCustom[fnName] = ast.CustomFunction{Name: fnName, Arity: arity, Body: tree}
			continue
		}
		tree, err := parser.Parse(src, s.registry)
		if err != nil {
			return err
		}
		newVars[name] = tree
	}

	for name, fn := range newCustom {
		s.custom[name] = fn
	}
	for name, tree := range newVars {
		s.vars[name] = tree
	}
	return nil
}

// ResolveOptions configures one Resolve invocation.
type ResolveOptions struct {
	// Resolved seeds the fixpoint with already-known values (e.g. host
	// metadata supplied directly, spec.md §6.2), bypassing parsing.
	Resolved map[string]value.Value
	// Unresolvable names variables the caller promises not to need this
	// invocation; any variable transitively depending on one is skipped.
	Unresolvable map[string]bool
	// Update caches the result inside the Script so the next Resolve call
	// starts from it (spec.md §4.7's update mode).
	Update bool
}

// Resolve runs the dependency resolver over every installed variable and
// returns the resolved snapshot. Resolution starts from opts.Resolved
// merged over the Script's own cache (if any prior call used Update).
func (s *Script) Resolve(opts ResolveOptions) (map[string]value.Value, error) {
	seed := make(map[string]value.Value, len(s.cache)+len(opts.Resolved))
	for k, v := range s.cache {
		seed[k] = v
	}
	for k, v := range opts.Resolved {
		seed[k] = v
	}

	out, err := resolver.Resolve(s.vars, s.custom, s.registry, seed, opts.Unresolvable)
	if err != nil {
		return nil, err
	}
	if opts.Update {
		s.cache = out
	}
	return out, nil
}

// Get reads a value from the Script's resolution cache, populated only by
// a prior Resolve call made with Update: true (spec.md §4.7).
func (s *Script) Get(name string) (value.Value, bool) {
	v, ok := s.cache[name]
	return v, ok
}
