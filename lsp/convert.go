package lsp

import (
	"bytes"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dhamidi/cfront/c/parser"
	"github.com/dhamidi/cfront/c/token"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Diagnostics converts parse diagnostics. Notes and suggestions are
// appended to the message, one per line.
func Diagnostics(diags []*parser.ParseError, content []byte) []protocol.Diagnostic {
	lines := splitLines(content)
	out := make([]protocol.Diagnostic, 0, len(diags))
	source := lsName
	for _, d := range diags {
		severity := protocol.DiagnosticSeverityError
		if !d.IsError() {
			severity = protocol.DiagnosticSeverityWarning
		}

		var msg strings.Builder
		msg.WriteString(d.Message)
		for _, note := range d.Notes {
			msg.WriteString("\nnote: " + note)
		}
		for _, s := range d.Suggestions {
			msg.WriteString("\nhelp: " + s)
		}

		out = append(out, protocol.Diagnostic{
			Range:    toRange(lines, d.Range),
			Severity: &severity,
			Code:     &protocol.IntegerOrString{Value: d.Kind.String()},
			Source:   &source,
			Message:  msg.String(),
		})
	}
	return out
}

// DocumentSymbols outlines the file-scope declarations of a translation unit.
func DocumentSymbols(unit *parser.Node, content []byte) []protocol.DocumentSymbol {
	lines := splitLines(content)
	var symbols []protocol.DocumentSymbol
	for _, decl := range unit.Children {
		symbols = append(symbols, declarationSymbols(lines, decl)...)
	}
	return symbols
}

func declarationSymbols(lines [][]byte, n *parser.Node) []protocol.DocumentSymbol {
	if n.Kind == parser.KindDeclarationGroup {
		var symbols []protocol.DocumentSymbol
		for _, c := range n.Children {
			symbols = append(symbols, declarationSymbols(lines, c)...)
		}
		return symbols
	}

	kind, ok := symbolKind(n)
	if !ok {
		return nil
	}
	name := n.Name
	if name == "" {
		name = "<anonymous " + n.Op.String() + ">"
	}

	sym := protocol.DocumentSymbol{
		Name:           name,
		Kind:           kind,
		Range:          toRange(lines, n.Span),
		SelectionRange: toRange(lines, n.Span),
	}
	if n.Token != nil && n.Token.Lexeme == n.Name {
		sym.SelectionRange = toRange(lines, n.Token.Span())
	}
	if n.Type != nil {
		detail := n.Type.String()
		sym.Detail = &detail
	}
	for _, e := range n.ChildrenOfKind(parser.KindEnumerator) {
		sym.Children = append(sym.Children, declarationSymbols(lines, e)...)
	}
	return []protocol.DocumentSymbol{sym}
}

func symbolKind(n *parser.Node) (protocol.SymbolKind, bool) {
	switch n.Kind {
	case parser.KindFunctionDeclaration:
		return protocol.SymbolKindFunction, true
	case parser.KindVariableDeclaration:
		return protocol.SymbolKindVariable, true
	case parser.KindEnumerator:
		return protocol.SymbolKindEnumMember, true
	case parser.KindTypeDeclaration:
		switch n.Op {
		case token.ENUM:
			return protocol.SymbolKindEnum, true
		case token.STRUCT, token.UNION:
			return protocol.SymbolKindStruct, true
		default:
			return protocol.SymbolKindTypeParameter, true
		}
	}
	return 0, false
}

func splitLines(content []byte) [][]byte {
	return bytes.Split(content, []byte("\n"))
}

func toRange(lines [][]byte, span token.Span) protocol.Range {
	start := toPosition(lines, span.Start)
	end := toPosition(lines, span.End)
	if span.End.Line == 0 {
		end = start
	}
	return protocol.Range{Start: start, End: end}
}

// toPosition maps a 1-based line and byte column to the protocol's
// 0-based line and UTF-16 character offset.
func toPosition(lines [][]byte, pos token.Position) protocol.Position {
	if pos.Line <= 0 {
		return protocol.Position{}
	}
	line := pos.Line - 1
	col := pos.Column - 1
	if col < 0 {
		col = 0
	}
	if line >= len(lines) {
		return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)}
	}
	text := lines[line]
	if col > len(text) {
		col = len(text)
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(utf16Len(text[:col]))}
}

func utf16Len(b []byte) int {
	n := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		n += utf16.RuneLen(r)
	}
	return n
}
