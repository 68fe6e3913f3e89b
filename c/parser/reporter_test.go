package parser

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/cfront/c/token"
	"github.com/nalgeon/be"
)

func tokenAt(kind token.Kind, lexeme string, line, col int) token.Token {
	return token.Token{Kind: kind, Lexeme: lexeme, Pos: token.Position{File: "a.c", Line: line, Column: col}}
}

func TestFormatQuotesSourceLine(t *testing.T) {
	src := []byte("int main(void) {\n\tint x = 1 +;\n}\n")
	err := NewSyntaxError(tokenAt(token.SEMICOLON, ";", 2, 13), "expected expression, found ';'")
	err.Note("while parsing declaration").Suggest("remove the trailing operator")

	r := NewErrorReporter(10)
	got := r.Format(err, src)
	want := strings.Join([]string{
		"a.c:2:13: error: expected expression, found ';'",
		"    2 | \tint x = 1 +;",
		"      | \t           ^",
		"note: while parsing declaration",
		"help: remove the trailing operator",
		"",
	}, "\n")
	be.Equal(t, got, want)
}

func TestFormatWithoutSource(t *testing.T) {
	err := NewLimitError(tokenAt(token.LPAREN, "(", 1, 1), "too deeply nested")
	got := NewErrorReporter(1).Format(err, nil)
	be.Equal(t, got, "a.c:1:1: fatal error: too deeply nested\n")
}

func TestReporterCap(t *testing.T) {
	r := NewErrorReporter(2)
	tok := tokenAt(token.IDENT, "x", 1, 1)
	be.True(t, r.Report(NewWarning(tok, "first")))
	be.True(t, r.Report(NewSyntaxError(tok, "second")))
	be.True(t, r.Full())
	be.True(t, !r.Report(NewSyntaxError(tok, "third")))

	be.Equal(t, len(r.Diagnostics()), 2)
	be.Equal(t, len(r.Errors()), 1)
	be.Equal(t, len(r.Warnings()), 1)
	be.Equal(t, r.Dropped(), 1)

	var buf bytes.Buffer
	be.Err(t, r.Print(&buf, nil), nil)
	be.True(t, strings.HasSuffix(buf.String(), "1 more diagnostics not shown\n"))

	r.Reset()
	be.Equal(t, len(r.Diagnostics()), 0)
	be.Equal(t, r.Dropped(), 0)
}

func TestErrorMessages(t *testing.T) {
	tok := tokenAt(token.IDENT, "y", 3, 7)
	tests := []struct {
		err  *ParseError
		kind ErrorKind
		want string
	}{
		{NewUnexpectedToken(tok, token.SEMICOLON), ErrUnexpectedToken, "expected ';', found 'y'"},
		{NewUnexpectedToken(tok, token.IDENT, token.LBRACE), ErrUnexpectedToken, "expected identifier or '{', found 'y'"},
		{NewUnexpectedToken(tok, token.RPAREN, token.COMMA, token.EOF), ErrUnexpectedToken, "expected ')', ',' or end of file, found 'y'"},
		{NewMissingToken(tok, token.RBRACK), ErrMissingToken, "missing ']' before 'y'"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			be.Equal(t, tt.err.Kind, tt.kind)
			be.Equal(t, tt.err.Message, tt.want)
			be.Equal(t, tt.err.Error(), "a.c:3:7: error: "+tt.want)
			be.True(t, tt.err.IsError())
		})
	}
}

func TestDiagnosticJSON(t *testing.T) {
	err := NewMissingToken(tokenAt(token.RBRACE, "}", 4, 1), token.SEMICOLON)
	data, jerr := json.Marshal(err)
	be.Err(t, jerr, nil)

	var got map[string]any
	be.Err(t, json.Unmarshal(data, &got), nil)
	be.Equal(t, got["kind"], "MissingToken")
	be.Equal(t, got["severity"], "error")
	be.Equal(t, got["message"], "missing ';' before '}'")
}
