package lexer

import (
	"testing"

	"github.com/dhamidi/cfront/c/token"
	"github.com/nalgeon/be"
)

func kinds(toks []token.Token) []token.Kind {
	var out []token.Kind
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.Kind
	}{
		{"", []token.Kind{token.EOF}},
		{"int", []token.Kind{token.INT, token.EOF}},
		{"int main(){return 0;}", []token.Kind{
			token.INT, token.IDENT, token.LPAREN, token.RPAREN, token.LBRACE,
			token.RETURN, token.INT_CONSTANT, token.SEMICOLON, token.RBRACE, token.EOF,
		}},
		{"3.14 1e10 0x1p-3 42u 0x1F", []token.Kind{
			token.FLOAT_CONSTANT, token.FLOAT_CONSTANT, token.FLOAT_CONSTANT,
			token.INT_CONSTANT, token.INT_CONSTANT, token.EOF,
		}},
		{`"hello" L"wide" u8"x"`, []token.Kind{token.STRING, token.STRING, token.STRING, token.EOF}},
		{`'a' '\n' L'x'`, []token.Kind{token.CHAR_CONSTANT, token.CHAR_CONSTANT, token.CHAR_CONSTANT, token.EOF}},
		{"// comment\nx", []token.Kind{token.IDENT, token.EOF}},
		{"/* block ** with stars */ x", []token.Kind{token.IDENT, token.EOF}},
		{"#include <stdio.h>\nint", []token.Kind{token.INT, token.EOF}},
		{"a->b ... <<= >>= && ||", []token.Kind{
			token.IDENT, token.ARROW, token.IDENT, token.ELLIPSIS,
			token.SHL_ASSIGN, token.SHR_ASSIGN, token.LAND, token.LOR, token.EOF,
		}},
		{"x @ y", []token.Kind{token.IDENT, token.ILLEGAL, token.IDENT, token.EOF}},
		{"café = π;", []token.Kind{token.IDENT, token.ASSIGN, token.IDENT, token.SEMICOLON, token.EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, err := Tokenize([]byte(tt.input), WithFile("test.c"))
			be.Err(t, err, nil)
			got := kinds(toks)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestKeywordsFollowStandard(t *testing.T) {
	toks, err := Tokenize([]byte("bool inline"), WithStandard(token.C89))
	be.Err(t, err, nil)
	be.Equal(t, toks[0].Kind, token.IDENT)
	be.Equal(t, toks[1].Kind, token.IDENT)

	toks, err = Tokenize([]byte("bool inline"), WithStandard(token.C23))
	be.Err(t, err, nil)
	be.Equal(t, toks[0].Kind, token.BOOL)
	be.Equal(t, toks[1].Kind, token.INLINE)
}

func TestPositions(t *testing.T) {
	toks, err := Tokenize([]byte("int\n  x;"), WithFile("pos.c"))
	be.Err(t, err, nil)
	be.Equal(t, toks[1].Lexeme, "x")
	be.Equal(t, toks[1].Pos.Line, 2)
	be.Equal(t, toks[1].Pos.Column, 3)
	be.Equal(t, toks[1].Pos.File, "pos.c")
}

func TestTriviaKeepsComments(t *testing.T) {
	toks, err := Tokenize([]byte("/* c */ x"), WithTrivia())
	be.Err(t, err, nil)
	be.Equal(t, toks[0].Kind, token.HASH)
	be.Equal(t, toks[0].Lexeme, "/* c */")
}

func TestGrammarVerifies(t *testing.T) {
	be.Err(t, Verify(), nil)
}
