package token

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{EOF, "EOF"},
		{IDENT, "Identifier"},
		{ARROW, "->"},
		{SHL_ASSIGN, "<<="},
		{INT, "int"},
		{BOOL_, "_Bool"},
		{STATIC_ASSERT, "static_assert"},
		{Kind(9999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestLookupGatesKeywordsByStandard(t *testing.T) {
	tests := []struct {
		word string
		std  Standard
		want Kind
	}{
		{"int", C89, INT},
		{"inline", C89, IDENT},
		{"inline", C99, INLINE},
		{"_Bool", C99, BOOL_},
		{"_Static_assert", C99, IDENT},
		{"_Static_assert", C11, STATIC_ASSERT_},
		{"bool", C17, IDENT},
		{"bool", C23, BOOL},
		{"nullptr", C23, NULLPTR},
		{"main", C23, IDENT},
	}

	for _, tt := range tests {
		t.Run(tt.word+"/"+tt.std.String(), func(t *testing.T) {
			be.Equal(t, Lookup(tt.word, tt.std), tt.want)
		})
	}
}

func TestParseStandard(t *testing.T) {
	tests := []struct {
		in   string
		want Standard
	}{
		{"c89", C89},
		{"C90", C89},
		{"gnu99", C99},
		{"11", C11},
		{"c18", C17},
		{"c2x", C23},
	}
	for _, tt := range tests {
		got, err := ParseStandard(tt.in)
		be.Err(t, err, nil)
		be.Equal(t, got, tt.want)
	}

	_, err := ParseStandard("c42")
	be.Err(t, err)
}

func TestLookupPunctuator(t *testing.T) {
	k, ok := LookupPunctuator("...")
	be.True(t, ok)
	be.Equal(t, k, ELLIPSIS)

	_, ok = LookupPunctuator("@")
	be.True(t, !ok)
}

func TestTokenEnd(t *testing.T) {
	tok := Token{Kind: IDENT, Lexeme: "main", Pos: Position{Line: 2, Column: 5, Offset: 10}}
	end := tok.End()
	be.Equal(t, end.Line, 2)
	be.Equal(t, end.Column, 9)
	be.Equal(t, end.Offset, 14)
}
