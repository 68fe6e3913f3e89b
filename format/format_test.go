package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/cfront/c/lexer"
	"github.com/dhamidi/cfront/c/parser"
	"github.com/dhamidi/cfront/c/token"
	"github.com/nalgeon/be"
)

func parseDocument(t *testing.T, src string) *Document {
	t.Helper()
	toks, err := lexer.Tokenize([]byte(src), lexer.WithFile("a.c"))
	be.Err(t, err, nil)
	p, err := parser.New(parser.DefaultConfig(), parser.WithFile("a.c"))
	be.Err(t, err, nil)
	unit, _ := p.ParseTokens(toks)
	return &Document{File: "a.c", Standard: token.C17, AST: unit, Diagnostics: p.Diagnostics()}
}

func encode(t *testing.T, name string, doc *Document) string {
	t.Helper()
	var buf bytes.Buffer
	enc, err := New(name, &buf)
	be.Err(t, err, nil)
	be.Err(t, enc.Encode(doc), nil)
	return buf.String()
}

func TestSExprEncoder(t *testing.T) {
	doc := parseDocument(t, "int x = 1;")
	be.Equal(t, encode(t, "sexpr", doc), "(unit (var x int 1))\n")
}

func TestSExprEncoderAppendsDiagnostics(t *testing.T) {
	tok := token.Token{Kind: token.IDENT, Lexeme: "y", Pos: token.Position{File: "a.c", Line: 2, Column: 3}}
	doc := &Document{Diagnostics: []*parser.ParseError{parser.NewWarning(tok, "unused")}}
	be.Equal(t, encode(t, "sexpr", doc), "; a.c:2:3: warning: unused\n")
}

func TestTreeEncoder(t *testing.T) {
	doc := parseDocument(t, "int x = 1;")
	want := strings.Join([]string{
		"TranslationUnit",
		"  VariableDeclaration x : int",
		"    IntegerLiteral 1",
		"",
	}, "\n")
	be.Equal(t, encode(t, "tree", doc), want)
	be.True(t, strings.Contains(encode(t, "tree+positions", doc), "IntegerLiteral [a.c:1:9-a.c:1:10]"))
}

func TestASTJSONEncoder(t *testing.T) {
	tok := token.Token{Kind: token.SEMICOLON, Lexeme: ";", Pos: token.Position{File: "a.c", Line: 1, Column: 9}}
	doc := parseDocument(t, "int x = 1;")
	doc.Diagnostics = []*parser.ParseError{
		parser.NewSyntaxError(tok, "expected expression"),
		parser.NewWarning(tok, "empty declaration"),
	}

	var got struct {
		File     string `json:"file"`
		Standard string `json:"standard"`
		Errors   int    `json:"errors"`
		Warnings int    `json:"warnings"`
		AST      struct {
			Kind string `json:"kind"`
		} `json:"ast"`
		Diagnostics []struct {
			Severity string `json:"severity"`
		} `json:"diagnostics"`
	}
	be.Err(t, json.Unmarshal([]byte(encode(t, "json", doc)), &got), nil)
	be.Equal(t, got.File, "a.c")
	be.Equal(t, got.Standard, "c17")
	be.Equal(t, got.Errors, 1)
	be.Equal(t, got.Warnings, 1)
	be.Equal(t, got.AST.Kind, "TranslationUnit")
	be.Equal(t, got.Diagnostics[1].Severity, "warning")
}

func TestUnknownFormat(t *testing.T) {
	_, err := New("yaml", &bytes.Buffer{})
	be.Err(t, err, "unknown format: yaml")
	be.Equal(t, Names(), []string{"json", "sexpr", "tree", "tree+positions"})
}

func TestTokenEncoder(t *testing.T) {
	toks, err := lexer.Tokenize([]byte("x = 1;"))
	be.Err(t, err, nil)

	var buf bytes.Buffer
	be.Err(t, NewTokenEncoder(&buf).Encode(toks), nil)
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	be.Equal(t, len(lines), 5)
	be.Equal(t, lines[0], "1:1\tIdentifier\t\"x\"")
	be.Equal(t, lines[1], "1:3\t=\t\"=\"")
	be.Equal(t, lines[3], "1:6\t;\t\";\"")
	be.True(t, strings.HasSuffix(lines[4], "\tEOF\t\"\""))

	buf.Reset()
	be.Err(t, NewTokenJSONEncoder(&buf).Encode(toks), nil)
	var got []struct {
		Kind   string `json:"kind"`
		Column int    `json:"column"`
	}
	be.Err(t, json.Unmarshal(buf.Bytes(), &got), nil)
	be.Equal(t, got[2].Kind, "IntConstant")
	be.Equal(t, got[2].Column, 5)
}
