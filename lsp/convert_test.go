package lsp

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/cfront/c/parser"
	"github.com/dhamidi/cfront/workspace"
	"github.com/nalgeon/be"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestDiagnostics(t *testing.T) {
	content := []byte("int ok;\nchar *s = \"é\" +;\n")
	f := workspace.ParseFile(parser.DefaultConfig(), "a.c", content)
	be.True(t, len(f.Diagnostics) > 0)

	diags := Diagnostics(f.Diagnostics, content)
	d := diags[0]
	be.Equal(t, d.Message, "expected expression, found ';'")
	be.Equal(t, *d.Severity, protocol.DiagnosticSeverityError)
	be.Equal(t, *d.Source, "cfront")
	be.Equal(t, d.Code.Value, any("SyntaxError"))
	// The ';' is byte column 17; é takes two bytes but one UTF-16 unit.
	be.Equal(t, d.Range.Start, protocol.Position{Line: 1, Character: 15})
	be.Equal(t, d.Range.End, protocol.Position{Line: 1, Character: 16})
}

func TestDiagnosticsCarryNotesAndWarnings(t *testing.T) {
	f := workspace.ParseFile(parser.DefaultConfig(), "a.c", []byte("int f(void) { return 1;"))
	diags := Diagnostics(f.Diagnostics, f.Content)
	be.True(t, len(diags) > 0)
	be.True(t, strings.Contains(diags[0].Message, "\nnote: block opened at a.c:1:13"))

	warn := workspace.ParseFile(parser.DefaultConfig(), "a.c", []byte("int a[2] = {};"))
	diags = Diagnostics(warn.Diagnostics, warn.Content)
	be.Equal(t, len(diags), 1)
	be.Equal(t, *diags[0].Severity, protocol.DiagnosticSeverityWarning)
}

func TestDocumentSymbols(t *testing.T) {
	content := []byte(strings.Join([]string{
		"int x = 1, y;",
		"enum color { RED, GREEN };",
		"struct point { int x; };",
		"typedef int myint;",
		"int main(void) { return 0; }",
	}, "\n"))
	f := workspace.ParseFile(parser.DefaultConfig(), "a.c", content)
	be.Equal(t, len(f.Diagnostics), 0)

	symbols := DocumentSymbols(f.AST, content)
	var names []string
	for _, s := range symbols {
		names = append(names, s.Name)
	}
	be.Equal(t, names, []string{"x", "y", "color", "point", "myint", "main"})

	be.Equal(t, symbols[0].Kind, protocol.SymbolKindVariable)
	be.Equal(t, symbols[2].Kind, protocol.SymbolKindEnum)
	be.Equal(t, len(symbols[2].Children), 2)
	be.Equal(t, symbols[2].Children[1].Name, "GREEN")
	be.Equal(t, symbols[3].Kind, protocol.SymbolKindStruct)

	fn := symbols[5]
	be.Equal(t, fn.Kind, protocol.SymbolKindFunction)
	be.Equal(t, *fn.Detail, "func() int")
	be.Equal(t, fn.Range.Start.Line, protocol.UInteger(4))
	be.Equal(t, fn.SelectionRange.Start, protocol.Position{Line: 4, Character: 4})
	be.Equal(t, fn.SelectionRange.End, protocol.Position{Line: 4, Character: 8})
}

func TestURIConversion(t *testing.T) {
	path, err := uriToPath("file:///home/user/src/a%20b.c")
	be.Err(t, err, nil)
	be.Equal(t, path, filepath.Clean("/home/user/src/a b.c"))

	path, err = uriToPath("untitled:1")
	be.Err(t, err, nil)
	be.Equal(t, path, "untitled:1")

	be.Equal(t, pathToURI("/home/user/src/a b.c"), "file:///home/user/src/a%20b.c")
}
