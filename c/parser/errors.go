package parser

import (
	"fmt"
	"strings"

	"github.com/dhamidi/cfront/c/token"
)

type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	}
	return "unknown"
}

// ErrorKind tags the variant of a ParseError.
type ErrorKind int

const (
	// ErrSyntax is a malformed construct with no single expected token.
	ErrSyntax ErrorKind = iota
	// ErrUnexpectedToken carries Expected and Actual.
	ErrUnexpectedToken
	// ErrMissingToken carries Missing.
	ErrMissingToken
	// ErrSemantic is a construct that parses but is invalid in context.
	ErrSemantic
	// ErrLimit reports an internal guard that tripped.
	ErrLimit
)

var errorKindNames = map[ErrorKind]string{
	ErrSyntax:          "SyntaxError",
	ErrUnexpectedToken: "UnexpectedToken",
	ErrMissingToken:    "MissingToken",
	ErrSemantic:        "SemanticError",
	ErrLimit:           "LimitExceeded",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type ParseError struct {
	Kind        ErrorKind
	Severity    Severity
	Message     string
	Range       token.Span
	Expected    []token.Kind
	Actual      token.Token
	Missing     token.Kind
	Notes       []string
	Suggestions []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Range.Start, e.Severity, e.Message)
}

// IsError reports whether the diagnostic counts toward HasErrors.
func (e *ParseError) IsError() bool {
	return e.Severity >= SeverityError
}

// Note appends an explanatory note and returns e for chaining.
func (e *ParseError) Note(format string, args ...any) *ParseError {
	e.Notes = append(e.Notes, fmt.Sprintf(format, args...))
	return e
}

// Suggest appends a fix-it hint and returns e for chaining.
func (e *ParseError) Suggest(format string, args ...any) *ParseError {
	e.Suggestions = append(e.Suggestions, fmt.Sprintf(format, args...))
	return e
}

func NewSyntaxError(tok token.Token, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:     ErrSyntax,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Range:    tok.Span(),
		Actual:   tok,
	}
}

func NewUnexpectedToken(tok token.Token, expected ...token.Kind) *ParseError {
	return &ParseError{
		Kind:     ErrUnexpectedToken,
		Severity: SeverityError,
		Message:  fmt.Sprintf("expected %s, found %s", describeKinds(expected), tok.Describe()),
		Range:    tok.Span(),
		Expected: expected,
		Actual:   tok,
	}
}

// NewMissingToken reports that missing should have appeared before tok.
func NewMissingToken(tok token.Token, missing token.Kind) *ParseError {
	return &ParseError{
		Kind:     ErrMissingToken,
		Severity: SeverityError,
		Message:  fmt.Sprintf("missing '%s' before %s", missing, tok.Describe()),
		Range:    tok.Span(),
		Missing:  missing,
		Actual:   tok,
	}
}

func NewSemanticError(tok token.Token, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:     ErrSemantic,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Range:    tok.Span(),
		Actual:   tok,
	}
}

func NewLimitError(tok token.Token, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:     ErrLimit,
		Severity: SeverityFatal,
		Message:  fmt.Sprintf(format, args...),
		Range:    tok.Span(),
		Actual:   tok,
	}
}

func NewWarning(tok token.Token, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:     ErrSemantic,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
		Range:    tok.Span(),
		Actual:   tok,
	}
}

func describeKinds(kinds []token.Kind) string {
	quoted := make([]string, len(kinds))
	for i, k := range kinds {
		switch {
		case k.IsPunctuator() || k.IsKeyword():
			quoted[i] = "'" + k.String() + "'"
		case k == token.EOF:
			quoted[i] = "end of file"
		case k == token.IDENT:
			quoted[i] = "identifier"
		default:
			quoted[i] = strings.ToLower(k.String())
		}
	}
	switch len(quoted) {
	case 0:
		return "something else"
	case 1:
		return quoted[0]
	case 2:
		return quoted[0] + " or " + quoted[1]
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
}
