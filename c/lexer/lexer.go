// Package lexer turns C source text into the token sequence the parser
// consumes. Tokens are recognized by the EBNF grammar in c.ebnf; keywords
// are classified afterwards according to the selected C standard.
//
// Preprocessing is not performed: directive lines are skipped like comments.
package lexer

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"github.com/dhamidi/cfront/c/token"
	"github.com/dhamidi/cfront/ebnflex"
	"golang.org/x/exp/ebnf"
)

//go:embed c.ebnf
var grammarSource []byte

// StartProduction names the production listing every token kind.
const StartProduction = "Source"

var cGrammar ebnf.Grammar

func init() {
	g, err := ebnflex.ParseGrammar("c.ebnf", bytes.NewReader(grammarSource))
	if err != nil {
		panic(fmt.Sprintf("failed to parse C token grammar: %v", err))
	}
	cGrammar = g
}

// Grammar returns the lexical grammar used by the lexer.
func Grammar() ebnf.Grammar {
	return cGrammar
}

// GrammarSource returns the text of the embedded lexical grammar.
func GrammarSource() []byte {
	return grammarSource
}

// Verify checks the embedded grammar for missing or unreachable productions.
func Verify() error {
	return ebnf.Verify(cGrammar, StartProduction)
}

type Option func(*Lexer)

func WithFile(path string) Option {
	return func(l *Lexer) {
		l.file = path
	}
}

func WithStandard(std token.Standard) Option {
	return func(l *Lexer) {
		l.std = std
	}
}

// WithTrivia keeps comments and directive lines in the output as HASH
// tokens. Whitespace is always dropped.
func WithTrivia() Option {
	return func(l *Lexer) {
		l.trivia = true
	}
}

type Lexer struct {
	file   string
	std    token.Standard
	trivia bool
}

// Tokenize scans src and returns its tokens terminated by an EOF token.
// Bytes that start no token become ILLEGAL tokens; the parser reports them.
func Tokenize(src []byte, opts ...Option) ([]token.Token, error) {
	l := &Lexer{std: token.C17}
	for _, opt := range opts {
		opt(l)
	}
	return l.Tokenize(src)
}

func (l *Lexer) Tokenize(src []byte) ([]token.Token, error) {
	scanner, err := ebnflex.NewLexer(cGrammar, StartProduction, src, l.file)
	if err != nil {
		return nil, fmt.Errorf("create scanner: %w", err)
	}
	raw, err := scanner.Tokenize()
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", l.file, err)
	}

	tokens := make([]token.Token, 0, len(raw)/2+1)
	for _, r := range raw {
		pos := token.Position{
			File:   l.file,
			Offset: r.Position.Offset,
			Line:   r.Position.Line,
			Column: r.Position.Column,
		}
		var kind token.Kind
		switch r.Kind {
		case "Whitespace":
			continue
		case "LineComment", "BlockComment", "Directive":
			if !l.trivia {
				continue
			}
			kind = token.HASH
		case "Identifier":
			kind = token.Lookup(r.Literal, l.std)
		case "Number":
			kind = classifyNumber(r.Literal)
		case "CharConstant":
			kind = token.CHAR_CONSTANT
		case "StringLiteral":
			kind = token.STRING
		case "Punctuator":
			k, ok := token.LookupPunctuator(r.Literal)
			if !ok {
				kind = token.ILLEGAL
				break
			}
			kind = k
		case ebnflex.KindEOF:
			kind = token.EOF
		default:
			kind = token.ILLEGAL
		}
		tokens = append(tokens, token.Token{Kind: kind, Lexeme: r.Literal, Pos: pos})
	}
	return tokens, nil
}

// classifyNumber splits preprocessing numbers into integer and floating constants.
func classifyNumber(lit string) token.Kind {
	lower := strings.ToLower(lit)
	if strings.HasPrefix(lower, "0x") {
		if strings.ContainsAny(lower, ".p") {
			return token.FLOAT_CONSTANT
		}
		return token.INT_CONSTANT
	}
	if strings.ContainsAny(lower, ".e") {
		return token.FLOAT_CONSTANT
	}
	return token.INT_CONSTANT
}
