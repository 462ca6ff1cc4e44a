// Package scripterr defines the closed set of error kinds the script
// engine raises (spec.md §7) and formats them with source context, the way
// the teacher's compiler front-end reports diagnostics.
package scripterr

import (
	"fmt"
	"strings"
)

// Kind classifies an Error. All errors produced by this module's packages
// carry exactly one Kind.
type Kind string

const (
	// InvalidSyntax is raised by the parser/lexer: malformed tokens,
	// unbalanced braces, numeric/string-only argument violations.
	InvalidSyntax Kind = "InvalidSyntaxException"
	// IncompatibleFunctionArguments is raised by the type checker.
	IncompatibleFunctionArguments Kind = "IncompatibleFunctionArguments"
	// FunctionDoesNotExist is raised by the evaluator on an unregistered call.
	FunctionDoesNotExist Kind = "FunctionDoesNotExist"
	// StringFormatting is raised by the resolver: cycles, custom-function
	// arity mismatches.
	StringFormatting Kind = "StringFormattingException"
	// KeyDoesNotExistRuntime is raised by map_get on a missing key with no default.
	KeyDoesNotExistRuntime Kind = "KeyDoesNotExistRuntimeException"
	// ArrayValueDoesNotExist is raised by array_index when the value is absent.
	ArrayValueDoesNotExist Kind = "ArrayValueDoesNotExist"
	// FunctionRuntime wraps a host-side error raised while executing a
	// built-in (anything other than an explicit %throw).
	FunctionRuntime Kind = "FunctionRuntimeException"
	// UserThrownRuntime is raised by %throw and propagates unchanged.
	UserThrownRuntime Kind = "UserThrownRuntimeError"
)

// Position is a 1-indexed line/column location in a format string, in the
// same spirit as the teacher's lexer.Position (rune-counted columns).
type Position struct {
	Line   int
	Column int
}

// Error is the single error type raised across the script engine. It
// implements the standard error interface and all typed "exceptions" named
// in spec.md §7 are just distinct Kind values of this one struct, per
// design note "no exception-as-control-flow" (spec.md §9).
type Error struct {
	Kind     Kind
	Message  string
	Source   string // the original format string, for caret rendering
	Pos      Position
	HasPos   bool
	Function string // set for FunctionRuntime/IncompatibleFunctionArguments
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Format(false)
}

// Format renders the error with a source-context line and a caret pointing
// at the offending column, mirroring the teacher's
// internal/errors.CompilerError.Format.
func (e *Error) Format(color bool) string {
	var sb strings.Builder

	if e.HasPos {
		sb.WriteString(fmt.Sprintf("%s at line %d:%d\n", e.Kind, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("%s\n", e.Kind))
	}

	if line := sourceLine(e.Source, e.Pos.Line); e.HasPos && line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteByte('^')
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteByte('\n')
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// New builds an Error with no source position (used for errors that occur
// after parsing, where there is no format string to point into).
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewAt builds an Error with a source position for caret rendering.
func NewAt(kind Kind, source string, pos Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Source: source, Pos: pos, HasPos: true}
}

// WithFunction returns a copy of e with Function set, used to annotate
// IncompatibleFunctionArguments/FunctionRuntime with the offending name.
func (e *Error) WithFunction(name string) *Error {
	cp := *e
	cp.Function = name
	return &cp
}

// Is reports whether err is a *Error of the given kind, for callers that
// want to branch on error category (e.g. tests asserting scenario 4's
// "throw never runs").
func Is(err error, kind Kind) bool {
	se, ok := err.(*Error)
	return ok && se.Kind == kind
}
