package parser

import "github.com/dhamidi/cfront/c/token"

// TokenStream is a read-only cursor over a lexed token sequence. Lookahead
// outside the sequence yields a synthetic EOF token instead of failing.
type TokenStream struct {
	tokens []token.Token
	pos    int
}

// NewTokenStream wraps tokens, appending an EOF sentinel when the lexer
// did not supply one.
func NewTokenStream(tokens []token.Token) *TokenStream {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		eof := token.Token{Kind: token.EOF}
		if len(tokens) > 0 {
			eof.Pos = tokens[len(tokens)-1].End()
		}
		tokens = append(tokens[:len(tokens):len(tokens)], eof)
	}
	return &TokenStream{tokens: tokens}
}

func (s *TokenStream) eof() token.Token {
	return s.tokens[len(s.tokens)-1]
}

func (s *TokenStream) Current() token.Token {
	return s.Peek(0)
}

// Peek returns the token offset positions after the cursor; Peek(0) is Current.
func (s *TokenStream) Peek(offset int) token.Token {
	i := s.pos + offset
	if i < 0 || i >= len(s.tokens) {
		return s.eof()
	}
	return s.tokens[i]
}

// At returns the token at absolute index i.
func (s *TokenStream) At(i int) token.Token {
	return s.Peek(i - s.pos)
}

// Previous returns the token offset positions before the cursor.
func (s *TokenStream) Previous(offset int) token.Token {
	return s.Peek(-offset)
}

// Advance moves to the next token. It reports false, and stays put, on the
// terminal EOF token.
func (s *TokenStream) Advance() bool {
	if s.pos >= len(s.tokens)-1 {
		return false
	}
	s.pos++
	return true
}

func (s *TokenStream) IsAtEnd() bool {
	return s.pos >= len(s.tokens)-1 || s.tokens[s.pos].Kind == token.EOF
}

func (s *TokenStream) Position() int {
	return s.pos
}

// SetPosition moves the cursor, clamping to the valid range.
func (s *TokenStream) SetPosition(n int) {
	switch {
	case n < 0:
		n = 0
	case n >= len(s.tokens):
		n = len(s.tokens) - 1
	}
	s.pos = n
}

// Range returns the tokens in [start, end), clamped to the stream.
func (s *TokenStream) Range(start, end int) []token.Token {
	if start < 0 {
		start = 0
	}
	if end > len(s.tokens) {
		end = len(s.tokens)
	}
	if start >= end {
		return nil
	}
	return s.tokens[start:end]
}

// Len counts tokens including the EOF sentinel.
func (s *TokenStream) Len() int {
	return len(s.tokens)
}
