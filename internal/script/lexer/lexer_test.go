package lexer

import "testing"

func TestLexPlainText(t *testing.T) {
	tokens := Lex("prefix suffix")
	want := []TokenType{TEXT, EOF}
	assertTypes(t, tokens, want)
	if tokens[0].Literal != "prefix suffix" {
		t.Fatalf("literal wrong, got=%q", tokens[0].Literal)
	}
}

func TestLexEscapedBraces(t *testing.T) {
	tokens := Lex("a {{ b }} c")
	assertTypes(t, tokens, []TokenType{TEXT, EOF})
	if tokens[0].Literal != "a { b } c" {
		t.Fatalf("escape not collapsed, got=%q", tokens[0].Literal)
	}
}

func TestLexExpressionCall(t *testing.T) {
	tokens := Lex("prefix {%upper(title)} suffix")
	want := []TokenType{
		TEXT, EXPRSTART, PERCENT, IDENT, LPAREN, IDENT, RPAREN, EXPRSTOP, TEXT, EOF,
	}
	assertTypes(t, tokens, want)
}

func TestLexVariableReference(t *testing.T) {
	tokens := Lex("{count}")
	want := []TokenType{EXPRSTART, IDENT, EXPRSTOP, EOF}
	assertTypes(t, tokens, want)
}

func TestLexWrappedMapLiteral(t *testing.T) {
	tokens := Lex("{{'Key1':'Value1','Key2':'Value2'}}")
	want := []TokenType{
		EXPRSTART, LBRACE,
		STRING, COLON, STRING, COMMA,
		STRING, COLON, STRING,
		RBRACE, EXPRSTOP, EOF,
	}
	assertTypes(t, tokens, want)
}

func TestLexArgRefAndLambda(t *testing.T) {
	tokens := Lex("{[%upper($0), %lower($1)]}")
	want := []TokenType{
		EXPRSTART, LBRACKET,
		PERCENT, IDENT, LPAREN, ARGREF, RPAREN, COMMA,
		PERCENT, IDENT, LPAREN, ARGREF, RPAREN,
		RBRACKET, EXPRSTOP, EOF,
	}
	assertTypes(t, tokens, want)
}

func TestLexBooleanAndFloat(t *testing.T) {
	tokens := Lex("{True, False, 3.5, -2}")
	want := []TokenType{EXPRSTART, TRUE, COMMA, FALSE, COMMA, FLOAT, COMMA, INT, EXPRSTOP, EOF}
	assertTypes(t, tokens, want)
}

func TestLexMalformedNumberInvalidChar(t *testing.T) {
	tokens := Lex("{1a}")
	found := false
	for _, tok := range tokens {
		if tok.Type == ILLEGAL {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an ILLEGAL token for a malformed numeric literal, got %v", tokens)
	}
}

func assertTypes(t *testing.T, tokens []Token, want []TokenType) {
	t.Helper()
	if len(tokens) != len(want) {
		t.Fatalf("token count mismatch: got %d want %d (%v)", len(tokens), len(want), tokens)
	}
	for i, tok := range tokens {
		if tok.Type != want[i] {
			t.Fatalf("tokens[%d]: got %s want %s (literal=%q)", i, tok.Type, want[i], tok.Literal)
		}
	}
}
