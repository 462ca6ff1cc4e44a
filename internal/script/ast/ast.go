// Package ast defines the typed syntax tree produced by the parser: a list
// of tokens (literal values, variable references, function-argument
// placeholders, and function calls) for a single format string.
package ast

import (
	"fmt"
	"strings"

	"github.com/jmbannon/ytdl-sub/internal/script/value"
)

// Node is one token of a parsed format string's AST.
type Node interface {
	// String renders a human-readable (not necessarily round-trippable)
	// description of the node, used in diagnostics.
	String() string
}

// Tree is the parsed representation of one format string: an ordered list
// of tokens. Once returned from the parser a Tree is immutable.
type Tree struct {
	Tokens []Node
}

func (t Tree) String() string {
	parts := make([]string, len(t.Tokens))
	for i, tok := range t.Tokens {
		parts[i] = tok.String()
	}
	return strings.Join(parts, "")
}

// Variables returns the set of distinct Variable names referenced anywhere
// in t, including inside nested calls, arrays, and map literals. Used by
// the resolver to determine a variable's dependency set (spec.md §4.5).
func (t Tree) Variables() map[string]bool {
	out := make(map[string]bool)
	for _, tok := range t.Tokens {
		collectVariables(tok, out)
	}
	return out
}

func collectVariables(n Node, out map[string]bool) {
	switch node := n.(type) {
	case Variable:
		out[node.Name] = true
	case Call:
		for _, a := range node.Args {
			collectVariables(a, out)
		}
	case ArrayLiteral:
		for _, e := range node.Elements {
			collectVariables(e, out)
		}
	case MapLiteral:
		for _, e := range node.Entries {
			collectVariables(e.Key, out)
			collectVariables(e.Value, out)
		}
	}
}

// Literal is a parsed constant value: Integer, Float, Boolean, or String.
type Literal struct {
	Value value.Value
}

func (l Literal) String() string { return l.Value.Display() }

// Variable is a reference to a named Script variable.
type Variable struct {
	Name string
}

func (v Variable) String() string { return v.Name }

// FunctionArgRef is a positional placeholder `$N` legal only inside a
// custom-function body.
type FunctionArgRef struct {
	Index int
}

func (f FunctionArgRef) String() string { return fmt.Sprintf("$%d", f.Index) }

// LambdaLiteral is a bare `%name` passed as an argument (no parens),
// denoting the function-as-value used by higher-order built-ins.
type LambdaLiteral struct {
	Name   string
	Custom bool
}

func (l LambdaLiteral) String() string { return "%" + l.Name }

// ArrayLiteral is a parsed `[expr, expr, ...]`.
type ArrayLiteral struct {
	Elements []Node
}

func (a ArrayLiteral) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// MapEntry is one `key: value` pair of a MapLiteral.
type MapEntry struct {
	Key   Node
	Value Node
}

// MapLiteral is a parsed `{key: value, ...}`.
type MapLiteral struct {
	Entries []MapEntry
}

func (m MapLiteral) String() string {
	parts := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		parts[i] = fmt.Sprintf("%s: %s", e.Key, e.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Call is a function invocation, `%name(arg, arg, ...)`. Custom reports
// whether name resolves against the custom-function table (names declared
// with a leading `%` in the Script's input map) rather than the built-in
// registry.
type Call struct {
	Name   string
	Args   []Node
	Custom bool
}

func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%%%s(%s)", c.Name, strings.Join(parts, ", "))
}

// CustomFunction is a named, user-defined function: an AST body
// parameterized by positional placeholders $0..$(Arity-1).
type CustomFunction struct {
	Name  string
	Arity int
	Body  Tree
}
