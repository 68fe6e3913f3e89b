// Package ebnflex provides lexical scanning based on EBNF grammars.
//
// A grammar's start production lists the token productions, for example
//
//	Source = { Whitespace | Identifier | Number } .
//
// Each call to NextToken tries those productions at the current offset and
// returns the longest match. Ties go to the production listed first.
package ebnflex

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// Position represents a location in source code.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token with its position.
type Token struct {
	Kind     string
	Literal  string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position, t.Kind, t.Literal)
}

// KindError is the kind of single-byte tokens no production matched.
const KindError = "ERROR"

// KindEOF is the kind of the token returned at end of input.
const KindEOF = "EOF"

// memoKey is used for memoization of match results.
type memoKey struct {
	name   string
	offset int
}

// Lexer tokenizes input based on an EBNF grammar.
type Lexer struct {
	grammar  ebnf.Grammar
	kinds    []string
	input    []byte
	filename string
	pos      int
	line     int
	column   int
	memo     map[memoKey]int  // match length per production and offset, -1 = no match
	visiting map[memoKey]bool // cycle detection
}

// NewLexer creates a lexer whose token kinds are the productions named by start.
func NewLexer(grammar ebnf.Grammar, start string, input []byte, filename string) (*Lexer, error) {
	kinds, err := TokenProductions(grammar, start)
	if err != nil {
		return nil, err
	}
	return &Lexer{
		grammar:  grammar,
		kinds:    kinds,
		input:    input,
		filename: filename,
		line:     1,
		column:   1,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}, nil
}

// TokenProductions returns the production names referenced by the start
// production, in the order they appear.
func TokenProductions(grammar ebnf.Grammar, start string) ([]string, error) {
	prod, ok := grammar[start]
	if !ok || prod.Expr == nil {
		return nil, fmt.Errorf("no start production %q", start)
	}
	var names []string
	seen := make(map[string]bool)
	var collect func(expr ebnf.Expression)
	collect = func(expr ebnf.Expression) {
		switch e := expr.(type) {
		case ebnf.Alternative:
			for _, alt := range e {
				collect(alt)
			}
		case ebnf.Sequence:
			for _, item := range e {
				collect(item)
			}
		case *ebnf.Repetition:
			collect(e.Body)
		case *ebnf.Option:
			collect(e.Body)
		case *ebnf.Group:
			collect(e.Body)
		case *ebnf.Name:
			if !seen[e.String] {
				seen[e.String] = true
				names = append(names, e.String)
			}
		}
	}
	collect(prod.Expr)
	if len(names) == 0 {
		return nil, fmt.Errorf("start production %q names no tokens", start)
	}
	for _, name := range names {
		if _, ok := grammar[name]; !ok {
			return nil, fmt.Errorf("missing token production %q", name)
		}
	}
	return names, nil
}

// LoadGrammar loads an EBNF grammar from a file.
func LoadGrammar(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	return ParseGrammar(filename, f)
}

// ParseGrammar parses an EBNF grammar from r.
func ParseGrammar(filename string, r io.Reader) (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return grammar, nil
}

// Position returns the current position in the input.
func (l *Lexer) Position() Position {
	return Position{
		Filename: l.filename,
		Offset:   l.pos,
		Line:     l.line,
		Column:   l.column,
	}
}

func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

// NextToken returns the next token from the input and io.EOF once the
// input is exhausted.
func (l *Lexer) NextToken() (Token, error) {
	if l.pos >= len(l.input) {
		return Token{Kind: KindEOF, Position: l.Position()}, io.EOF
	}

	startPos := l.Position()
	startOffset := l.pos

	// Offsets only grow, so results for earlier offsets are never reused.
	clear(l.memo)

	var bestKind string
	var bestLen int
	for _, name := range l.kinds {
		clear(l.visiting)
		n := l.tryMatchName(name, startOffset)
		if n > bestLen {
			bestLen = n
			bestKind = name
		}
	}

	if bestLen == 0 {
		l.advance()
		return Token{
			Kind:     KindError,
			Literal:  string(l.input[startOffset:l.pos]),
			Position: startPos,
		}, nil
	}

	for i := 0; i < bestLen; i++ {
		l.advance()
	}

	return Token{
		Kind:     bestKind,
		Literal:  string(l.input[startOffset : startOffset+bestLen]),
		Position: startPos,
	}, nil
}

// tryMatch attempts to match an expression at the given offset.
// Returns the length of the match, or 0 if no match.
func (l *Lexer) tryMatch(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		return l.tryMatchToken(e.String, offset)

	case *ebnf.Range:
		return l.tryMatchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		pos := offset
		for _, item := range e {
			n := l.tryMatch(item, pos)
			if n == 0 && !nullable(item) {
				return 0
			}
			pos += n
		}
		return pos - offset

	case ebnf.Alternative:
		best := 0
		for _, alt := range e {
			if n := l.tryMatch(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		pos := offset
		for {
			n := l.tryMatch(e.Body, pos)
			if n == 0 {
				break
			}
			pos += n
		}
		return pos - offset

	case *ebnf.Option:
		return l.tryMatch(e.Body, offset)

	case *ebnf.Group:
		return l.tryMatch(e.Body, offset)

	case *ebnf.Name:
		return l.tryMatchName(e.String, offset)

	default:
		return 0
	}
}

// nullable reports whether expr may legitimately match the empty string.
func nullable(expr ebnf.Expression) bool {
	switch e := expr.(type) {
	case *ebnf.Repetition, *ebnf.Option:
		return true
	case *ebnf.Group:
		return nullable(e.Body)
	}
	return false
}

// tryMatchName matches a named production with memoization and cycle detection.
func (l *Lexer) tryMatchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}

	if result, ok := l.memo[key]; ok {
		if result == -1 {
			return 0
		}
		return result
	}

	// Left recursion: already expanding this production at this offset.
	if l.visiting[key] {
		return 0
	}

	prod, ok := l.grammar[name]
	if !ok || prod.Expr == nil {
		l.memo[key] = -1
		return 0
	}

	l.visiting[key] = true
	result := l.tryMatch(prod.Expr, offset)
	delete(l.visiting, key)

	if result == 0 {
		l.memo[key] = -1
	} else {
		l.memo[key] = result
	}
	return result
}

// tryMatchToken matches a literal string. ebnf.Parse has already unquoted it.
func (l *Lexer) tryMatchToken(s string, offset int) int {
	if s == "" || offset+len(s) > len(l.input) {
		return 0
	}
	if string(l.input[offset:offset+len(s)]) == s {
		return len(s)
	}
	return 0
}

// tryMatchRange matches one rune within a character range such as "a" … "z".
// Invalid UTF-8 decodes as utf8.RuneError and is matched by ranges covering it.
func (l *Lexer) tryMatchRange(begin, end string, offset int) int {
	if offset >= len(l.input) {
		return 0
	}
	lo, _ := utf8.DecodeRuneInString(begin)
	hi, _ := utf8.DecodeRuneInString(end)
	r, size := utf8.DecodeRune(l.input[offset:])
	if r >= lo && r <= hi {
		return size
	}
	return 0
}

// Tokenize reads all tokens from input. The final token has kind KindEOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err == io.EOF {
			tokens = append(tokens, tok)
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
}
