// Package resolver implements the iterative fixpoint dependency resolution
// algorithm from spec.md §4.5: repeatedly resolve every variable whose
// dependencies are already resolved, until nothing is left pending or a
// full pass makes no progress (a cycle). Grounded on the control flow of
// original_source's syntax_tree.py resolve_overrides loop, reimplemented
// idiomatically rather than translated.
package resolver

import (
	"sort"

	"github.com/jmbannon/ytdl-sub/internal/script/ast"
	"github.com/jmbannon/ytdl-sub/internal/script/builtins"
	"github.com/jmbannon/ytdl-sub/internal/script/eval"
	"github.com/jmbannon/ytdl-sub/internal/script/scripterr"
	"github.com/jmbannon/ytdl-sub/internal/script/value"
)

// Resolve runs the fixpoint loop over vars (variable name -> parsed AST),
// starting from the already-resolved snapshot preResolved. custom holds
// the Script's custom-function table; registry is the function registry
// (core built-ins plus any host-registered functions, spec.md §6).
//
// Any variable transitively depending on a name in unresolvable is skipped
// entirely — it does not appear in the returned map and raises no error —
// unless the caller later asks for it in a subsequent invocation with that
// name removed from unresolvable.
func Resolve(
	vars map[string]ast.Tree,
	custom map[string]ast.CustomFunction,
	registry *builtins.Registry,
	preResolved map[string]value.Value,
	unresolvable map[string]bool,
) (map[string]value.Value, error) {
	resolved := make(map[string]value.Value, len(preResolved))
	for k, v := range preResolved {
		resolved[k] = v
	}
	skip := make(map[string]bool, len(unresolvable))
	for k := range unresolvable {
		skip[k] = true
	}

	pending := make(map[string]bool)
	for name := range vars {
		if _, ok := resolved[name]; !ok {
			pending[name] = true
		}
	}

	for len(pending) > 0 {
		progressed := false
		for _, name := range sortedNames(pending) {
			if skip[name] {
				delete(pending, name)
				progressed = true
				continue
			}

			tree := vars[name]
			deps := tree.Variables()

			if dependsOnSkip(deps, skip) {
				skip[name] = true
				delete(pending, name)
				progressed = true
				continue
			}
			if !allResolved(deps, resolved) {
				continue
			}

			env := &eval.Env{Registry: registry, Vars: resolved, Custom: custom}
			v, err := eval.Eval(tree, env)
			if err != nil {
				return nil, err
			}
			resolved[name] = v
			delete(pending, name)
			progressed = true
		}
		if !progressed {
			return nil, scripterr.New(scripterr.StringFormatting, "did not resolve any variables, cycle detected")
		}
	}
	return resolved, nil
}

func dependsOnSkip(deps map[string]bool, skip map[string]bool) bool {
	for d := range deps {
		if skip[d] {
			return true
		}
	}
	return false
}

func allResolved(deps map[string]bool, resolved map[string]value.Value) bool {
	for d := range deps {
		if _, ok := resolved[d]; !ok {
			return false
		}
	}
	return true
}

func sortedNames(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
