package parser

import "github.com/dhamidi/cfront/c/token"

type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolParameter
	SymbolTypedef
	SymbolTag
	SymbolEnumerator
	SymbolLabel
)

var symbolKindNames = map[SymbolKind]string{
	SymbolVariable:   "variable",
	SymbolFunction:   "function",
	SymbolParameter:  "parameter",
	SymbolTypedef:    "typedef",
	SymbolTag:        "tag",
	SymbolEnumerator: "enumerator",
	SymbolLabel:      "label",
}

func (k SymbolKind) String() string {
	if name, ok := symbolKindNames[k]; ok {
		return name
	}
	return "unknown"
}

type Symbol struct {
	Name       string
	Kind       SymbolKind
	ScopeLevel int
	Pos        token.Position
}

// Scope is one level of the lexical nesting. Level 0 is the file scope.
type Scope struct {
	Name    string
	Level   int
	symbols map[string]*Symbol
}

func newScope(name string, level int) *Scope {
	return &Scope{
		Name:    name,
		Level:   level,
		symbols: make(map[string]*Symbol),
	}
}

func (s *Scope) Lookup(name string) *Symbol {
	return s.symbols[name]
}

func (s *Scope) Len() int {
	return len(s.symbols)
}
