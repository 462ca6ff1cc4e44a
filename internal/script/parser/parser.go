// Package parser turns a lexed token stream into a typed ast.Tree,
// type-checking every built-in function call against
// internal/script/builtins as it goes (spec.md §4.1/§4.3). Custom-function
// calls are left unconstrained; their arity is checked later, at
// resolution/evaluation time, once the whole custom-function table exists.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmbannon/ytdl-sub/internal/script/ast"
	"github.com/jmbannon/ytdl-sub/internal/script/builtins"
	"github.com/jmbannon/ytdl-sub/internal/script/lexer"
	"github.com/jmbannon/ytdl-sub/internal/script/scripterr"
	"github.com/jmbannon/ytdl-sub/internal/script/types"
	"github.com/jmbannon/ytdl-sub/internal/script/value"
)

type parser struct {
	source      string
	tokens      []lexer.Token
	pos         int
	registry    *builtins.Registry
	allowArgRef bool
	maxArgIndex int
	sawArgIndex map[int]bool
}

// Parse parses a variable's format string against reg, rejecting any `$N`
// placeholder (legal only inside a custom-function body).
func Parse(source string, reg *builtins.Registry) (ast.Tree, error) {
	p := newParser(source, reg, false)
	return p.parseTree()
}

// ParseCustomFunction parses a custom function's body, permitting `$N`
// placeholders and returning the inferred arity (spec.md §4.4: arity is
// max(N)+1 over every `$N` occurring in the body; every index in
// [0, arity) must occur at least once).
func ParseCustomFunction(source string, reg *builtins.Registry) (ast.Tree, int, error) {
	p := newParser(source, reg, true)
	tree, err := p.parseTree()
	if err != nil {
		return ast.Tree{}, 0, err
	}
	if len(p.sawArgIndex) == 0 {
		return tree, 0, nil
	}
	arity := p.maxArgIndex + 1
	for i := 0; i < arity; i++ {
		if !p.sawArgIndex[i] {
			return ast.Tree{}, 0, scripterr.New(scripterr.InvalidSyntax,
				"custom function body never uses $%d, but uses $%d (arity must be contiguous from 0)", i, p.maxArgIndex)
		}
	}
	return tree, arity, nil
}

func newParser(source string, reg *builtins.Registry, allowArgRef bool) *parser {
	return &parser{
		source:      source,
		tokens:      lexer.Lex(source),
		registry:    reg,
		allowArgRef: allowArgRef,
		sawArgIndex: make(map[int]bool),
	}
}

func (p *parser) cur() lexer.Token  { return p.tokens[p.pos] }
func (p *parser) advance() lexer.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errAt(tok lexer.Token, format string, args ...any) error {
	return scripterr.NewAt(scripterr.InvalidSyntax, p.source,
		scripterr.Position{Line: tok.Line, Column: tok.Column}, format, args...)
}

// parseTree consumes the whole token stream, producing one ast.Node per
// TEXT run and per `{ … }` expression block.
func (p *parser) parseTree() (ast.Tree, error) {
	var nodes []ast.Node
	for {
		tok := p.cur()
		switch tok.Type {
		case lexer.EOF:
			return ast.Tree{Tokens: nodes}, nil
		case lexer.TEXT:
			p.advance()
			nodes = append(nodes, ast.Literal{Value: value.String{V: tok.Literal}})
		case lexer.EXPRSTART:
			p.advance()
			node, _, err := p.parseAtom()
			if err != nil {
				return ast.Tree{}, err
			}
			if lit, ok := node.(ast.Literal); ok {
				if lit.Value.Kind() == value.IntegerKind || lit.Value.Kind() == value.FloatKind {
					return ast.Tree{}, p.errAt(tok,
						"a bare numeric literal is not allowed as an expression's entire content; wrap it in a cast, e.g. %%int(%s)", lit.Value.Display())
				}
			}
			if p.cur().Type != lexer.EXPRSTOP {
				return ast.Tree{}, p.errAt(p.cur(), "expected '}' to close expression, got %s", lexer.Describe(p.cur()))
			}
			p.advance()
			nodes = append(nodes, node)
		default:
			return ast.Tree{}, p.errAt(tok, "unexpected %s outside of an expression block", lexer.Describe(tok))
		}
	}
}

// parseAtom parses exactly one expression atom, returning its node and its
// static type (used by the caller, if any, to type-check a surrounding
// function call or map-literal key).
func (p *parser) parseAtom() (ast.Node, types.Type, error) {
	tok := p.cur()
	switch tok.Type {
	case lexer.IDENT:
		p.advance()
		return ast.Variable{Name: tok.Literal}, types.Unconstrained, nil

	case lexer.INT:
		p.advance()
		n, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, types.Type{}, p.errAt(tok, "malformed integer literal %q", tok.Literal)
		}
		return ast.Literal{Value: value.Integer{V: n}}, types.Of(value.IntegerKind), nil

	case lexer.FLOAT:
		p.advance()
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, types.Type{}, p.errAt(tok, "malformed float literal %q", tok.Literal)
		}
		return ast.Literal{Value: value.Float{V: f}}, types.Of(value.FloatKind), nil

	case lexer.STRING:
		p.advance()
		return ast.Literal{Value: value.String{V: tok.Literal}}, types.Of(value.StringKind), nil

	case lexer.TRUE:
		p.advance()
		return ast.Literal{Value: value.Boolean{V: true}}, types.Of(value.BooleanKind), nil

	case lexer.FALSE:
		p.advance()
		return ast.Literal{Value: value.Boolean{V: false}}, types.Of(value.BooleanKind), nil

	case lexer.ARGREF:
		p.advance()
		if !p.allowArgRef {
			return nil, types.Type{}, p.errAt(tok, "$%s is only legal inside a custom function body", tok.Literal)
		}
		n, err := strconv.Atoi(tok.Literal)
		if err != nil || n < 0 {
			return nil, types.Type{}, p.errAt(tok, "malformed positional placeholder $%s", tok.Literal)
		}
		p.sawArgIndex[n] = true
		if n > p.maxArgIndex {
			p.maxArgIndex = n
		}
		return ast.FunctionArgRef{Index: n}, types.Unconstrained, nil

	case lexer.PERCENT:
		return p.parsePercent(tok)

	case lexer.LBRACKET:
		return p.parseArray(tok)

	case lexer.LBRACE:
		return p.parseMap(tok)

	case lexer.COMMA:
		return nil, types.Type{}, p.errAt(tok, "UNEXPECTED_COMMA_ARGUMENT: unexpected ',' here")

	default:
		return nil, types.Type{}, p.errAt(tok, "UNEXPECTED_CHAR_ARGUMENT: unexpected %s", lexer.Describe(tok))
	}
}

// parsePercent parses either a `%name(args…)` function call or a bare
// `%name` lambda reference.
func (p *parser) parsePercent(percentTok lexer.Token) (ast.Node, types.Type, error) {
	p.advance() // consume '%'
	nameTok := p.cur()
	if nameTok.Type != lexer.IDENT {
		return nil, types.Type{}, p.errAt(nameTok, "expected a function name after '%%', got %s", lexer.Describe(nameTok))
	}
	p.advance()

	if p.cur().Type != lexer.LPAREN {
		// bare %name: a lambda reference, first-class value.
		_, isCustom := p.registry.Lookup(nameTok.Literal)
		return ast.LambdaLiteral{Name: nameTok.Literal, Custom: !isCustom}, types.Of(value.LambdaRefKind), nil
	}

	return p.parseCall(percentTok, nameTok.Literal)
}

func (p *parser) parseCall(nameTok lexer.Token, name string) (ast.Node, types.Type, error) {
	p.advance() // consume '('

	var argNodes []ast.Node
	var argTypes []types.Type
	expectArg := true
	for p.cur().Type != lexer.RPAREN {
		if p.cur().Type == lexer.EOF {
			return nil, types.Type{}, p.errAt(p.cur(), "unbalanced '(' in call to %%%s", name)
		}
		if p.cur().Type == lexer.COMMA {
			if expectArg {
				return nil, types.Type{}, p.errAt(p.cur(), "UNEXPECTED_COMMA_ARGUMENT: unexpected ',' in arguments to %%%s", name)
			}
			p.advance()
			expectArg = true
			continue
		}
		if !expectArg {
			return nil, types.Type{}, p.errAt(p.cur(), "expected ',' or ')' in arguments to %%%s, got %s", name, lexer.Describe(p.cur()))
		}
		node, typ, err := p.parseAtom()
		if err != nil {
			return nil, types.Type{}, err
		}
		argNodes = append(argNodes, node)
		argTypes = append(argTypes, typ)
		expectArg = false
	}
	p.advance() // consume ')'

	info, ok := p.registry.Lookup(name)
	if !ok {
		return ast.Call{Name: name, Args: argNodes, Custom: true}, types.Unconstrained, nil
	}

	if info.LambdaTaking {
		if len(argNodes) == 0 {
			return nil, types.Type{}, p.errAt(nameTok, "%%%s requires a lambda as its final argument", name)
		}
		if _, ok := argNodes[len(argNodes)-1].(ast.LambdaLiteral); !ok {
			return nil, types.Type{}, p.errAt(nameTok, "%%%s's final argument must be a bare lambda reference (e.g. %%name), not an expression", name)
		}
	}

	if err := typeCheck(p.source, nameTok, name, info.Signature, argTypes); err != nil {
		return nil, types.Type{}, err
	}

	retType := builtins.ResolveReturn(info.Signature, argTypes)
	return ast.Call{Name: name, Args: argNodes, Custom: false}, retType, nil
}

func (p *parser) parseArray(openTok lexer.Token) (ast.Node, types.Type, error) {
	p.advance() // consume '['
	var elems []ast.Node
	expectArg := true
	for p.cur().Type != lexer.RBRACKET {
		if p.cur().Type == lexer.EOF {
			return nil, types.Type{}, p.errAt(openTok, "unbalanced '[' in array literal")
		}
		if p.cur().Type == lexer.COMMA {
			if expectArg {
				return nil, types.Type{}, p.errAt(p.cur(), "UNEXPECTED_COMMA_ARGUMENT: unexpected ',' in array literal")
			}
			p.advance()
			expectArg = true
			continue
		}
		if !expectArg {
			return nil, types.Type{}, p.errAt(p.cur(), "expected ',' or ']' in array literal, got %s", lexer.Describe(p.cur()))
		}
		node, _, err := p.parseAtom()
		if err != nil {
			return nil, types.Type{}, err
		}
		elems = append(elems, node)
		expectArg = false
	}
	p.advance()
	return ast.ArrayLiteral{Elements: elems}, types.Of(value.ArrayKind), nil
}

func (p *parser) parseMap(openTok lexer.Token) (ast.Node, types.Type, error) {
	p.advance() // consume '{'
	var entries []ast.MapEntry
	expectEntry := true
	for p.cur().Type != lexer.RBRACE {
		if p.cur().Type == lexer.EOF {
			return nil, types.Type{}, p.errAt(openTok, "unbalanced '{' in map literal")
		}
		if p.cur().Type == lexer.COMMA {
			if expectEntry {
				return nil, types.Type{}, p.errAt(p.cur(), "UNEXPECTED_COMMA_ARGUMENT: unexpected ',' in map literal")
			}
			p.advance()
			expectEntry = true
			continue
		}
		if !expectEntry {
			return nil, types.Type{}, p.errAt(p.cur(), "expected ',' or '}' in map literal, got %s", lexer.Describe(p.cur()))
		}
		keyTok := p.cur()
		keyNode, keyType, err := p.parseAtom()
		if err != nil {
			return nil, types.Type{}, err
		}
		if err := requireHashable(p.source, keyTok, keyType); err != nil {
			return nil, types.Type{}, err
		}
		if p.cur().Type != lexer.COLON {
			return nil, types.Type{}, p.errAt(p.cur(), "expected ':' after map key, got %s", lexer.Describe(p.cur()))
		}
		p.advance()
		valNode, _, err := p.parseAtom()
		if err != nil {
			return nil, types.Type{}, err
		}
		entries = append(entries, ast.MapEntry{Key: keyNode, Value: valNode})
		expectEntry = false
	}
	p.advance()
	return ast.MapLiteral{Entries: entries}, types.Of(value.MapKind), nil
}

// requireHashable enforces map-key hashability at parse time only for keys
// whose static type is already known and concrete; a key coming from a
// Variable or a custom-function call is Unconstrained and is instead
// checked at evaluation time (spec.md §9's hashability design note).
func requireHashable(source string, tok lexer.Token, keyType types.Type) error {
	if keyType.Unconstrained || keyType.Any || keyType.IsMarker() {
		return nil
	}
	if !types.IsCompatible(keyType, types.Hashable) {
		return scripterr.NewAt(scripterr.InvalidSyntax, source,
			scripterr.Position{Line: tok.Line, Column: tok.Column},
			"map literal key must be Hashable (Integer, String, or Boolean), got %s", keyType)
	}
	return nil
}

func typeCheck(source string, nameTok lexer.Token, name string, sig builtins.Signature, argTypes []types.Type) error {
	if sig.Variadic != nil {
		for _, t := range argTypes {
			if !types.IsCompatible(t, sig.Variadic.Type) {
				return incompatibleErr(source, nameTok, name, sig, argTypes)
			}
		}
		return nil
	}

	if len(argTypes) > len(sig.Params) {
		return incompatibleErr(source, nameTok, name, sig, argTypes)
	}
	for i, param := range sig.Params {
		if i >= len(argTypes) {
			if !param.Optional {
				return incompatibleErr(source, nameTok, name, sig, argTypes)
			}
			continue
		}
		if !types.IsCompatible(argTypes[i], param.Type) {
			return incompatibleErr(source, nameTok, name, sig, argTypes)
		}
	}
	return nil
}

func incompatibleErr(source string, nameTok lexer.Token, name string, sig builtins.Signature, argTypes []types.Type) error {
	expected := signatureString(sig)
	received := make([]string, len(argTypes))
	for i, t := range argTypes {
		received[i] = t.String()
	}
	msg := fmt.Sprintf("%%%s: Expected %s.\nReceived (%s)", name, expected, strings.Join(received, ", "))
	return scripterr.NewAt(scripterr.IncompatibleFunctionArguments, source,
		scripterr.Position{Line: nameTok.Line, Column: nameTok.Column}, "%s", msg).WithFunction(name)
}

func signatureString(sig builtins.Signature) string {
	if sig.Variadic != nil {
		return fmt.Sprintf("(%s, …)", sig.Variadic.Type)
	}
	parts := make([]string, len(sig.Params))
	for i, p := range sig.Params {
		if p.Optional {
			parts[i] = fmt.Sprintf("Optional<%s>", p.Type)
		} else {
			parts[i] = p.Type.String()
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
