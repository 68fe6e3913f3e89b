package ebnflex

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

const testGrammar = `
Source = { Space | Word | Number | Arrow | Minus } .
Space = " " { " " } .
Word = letter { letter | digit } .
Number = digit { digit } [ "." digit { digit } ] .
Arrow = "->" .
Minus = "-" .
letter = "a" … "z" | "α" … "ω" .
digit = "0" … "9" .
`

func lex(t *testing.T, input string) []Token {
	t.Helper()
	g, err := ParseGrammar("test.ebnf", strings.NewReader(testGrammar))
	be.Err(t, err, nil)
	l, err := NewLexer(g, "Source", []byte(input), "in.txt")
	be.Err(t, err, nil)
	toks, err := l.Tokenize()
	be.Err(t, err, nil)
	return toks
}

func TestTokenProductionsKeepGrammarOrder(t *testing.T) {
	g, err := ParseGrammar("test.ebnf", strings.NewReader(testGrammar))
	be.Err(t, err, nil)
	kinds, err := TokenProductions(g, "Source")
	be.Err(t, err, nil)
	be.Equal(t, strings.Join(kinds, ","), "Space,Word,Number,Arrow,Minus")

	_, err = TokenProductions(g, "Missing")
	be.Err(t, err)
}

func TestLongestMatchWins(t *testing.T) {
	toks := lex(t, "a1 -> - 3.25")
	var kinds, lits []string
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
		lits = append(lits, tok.Literal)
	}
	be.Equal(t, strings.Join(kinds, " "), "Word Space Arrow Space Minus Space Number EOF")
	be.Equal(t, lits[6], "3.25")
}

func TestOptionalTailDoesNotSwallowPrefix(t *testing.T) {
	toks := lex(t, "12")
	be.Equal(t, toks[0].Kind, "Number")
	be.Equal(t, toks[0].Literal, "12")
}

func TestUnicodeRange(t *testing.T) {
	toks := lex(t, "αβγ")
	be.Equal(t, toks[0].Kind, "Word")
	be.Equal(t, toks[0].Literal, "αβγ")
	be.Equal(t, toks[1].Kind, KindEOF)
}

func TestUnmatchedByteBecomesErrorToken(t *testing.T) {
	toks := lex(t, "a?b")
	be.Equal(t, toks[1].Kind, KindError)
	be.Equal(t, toks[1].Literal, "?")
	be.Equal(t, toks[2].Position.Column, 3)
}
