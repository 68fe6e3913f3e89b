package token

import (
	"fmt"
	"unicode/utf8"
)

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position carries line information.
func (p Position) IsValid() bool {
	return p.Line > 0
}

type Span struct {
	Start Position
	End   Position
}

func (s Span) String() string {
	return s.Start.String() + "-" + s.End.String()
}

type Kind int

const (
	EOF Kind = iota
	ILLEGAL

	IDENT
	INT_CONSTANT
	FLOAT_CONSTANT
	CHAR_CONSTANT
	STRING

	// Punctuators
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACK
	RBRACK
	SEMICOLON
	COMMA
	PERIOD
	ELLIPSIS
	ARROW
	QUESTION
	COLON
	HASH

	ADD
	SUB
	MUL
	QUO
	REM
	AND
	OR
	XOR
	NOT
	BNOT
	SHL
	SHR
	LAND
	LOR
	INC
	DEC
	EQL
	NEQ
	LSS
	GTR
	LEQ
	GEQ

	ASSIGN
	ADD_ASSIGN
	SUB_ASSIGN
	MUL_ASSIGN
	QUO_ASSIGN
	REM_ASSIGN
	AND_ASSIGN
	OR_ASSIGN
	XOR_ASSIGN
	SHL_ASSIGN
	SHR_ASSIGN

	// C89 keywords
	AUTO
	BREAK
	CASE
	CHAR
	CONST
	CONTINUE
	DEFAULT
	DO
	DOUBLE
	ELSE
	ENUM
	EXTERN
	FLOAT
	FOR
	GOTO
	IF
	INT
	LONG
	REGISTER
	RETURN
	SHORT
	SIGNED
	SIZEOF
	STATIC
	STRUCT
	SWITCH
	TYPEDEF
	UNION
	UNSIGNED
	VOID
	VOLATILE
	WHILE

	// C99 keywords
	INLINE
	RESTRICT
	BOOL_
	COMPLEX
	IMAGINARY

	// C11 keywords
	ALIGNAS_
	ALIGNOF_
	ATOMIC
	GENERIC
	NORETURN
	STATIC_ASSERT_
	THREAD_LOCAL_

	// C23 keywords
	ALIGNAS
	ALIGNOF
	BOOL
	CONSTEXPR
	FALSE
	NULLPTR
	STATIC_ASSERT
	THREAD_LOCAL
	TRUE
	TYPEOF
	TYPEOF_UNQUAL
	BITINT
	DECIMAL32
	DECIMAL64
	DECIMAL128
)

var kindNames = map[Kind]string{
	EOF:            "EOF",
	ILLEGAL:        "Illegal",
	IDENT:          "Identifier",
	INT_CONSTANT:   "IntConstant",
	FLOAT_CONSTANT: "FloatConstant",
	CHAR_CONSTANT:  "CharConstant",
	STRING:         "StringLiteral",

	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	LBRACK:    "[",
	RBRACK:    "]",
	SEMICOLON: ";",
	COMMA:     ",",
	PERIOD:    ".",
	ELLIPSIS:  "...",
	ARROW:     "->",
	QUESTION:  "?",
	COLON:     ":",
	HASH:      "#",

	ADD:  "+",
	SUB:  "-",
	MUL:  "*",
	QUO:  "/",
	REM:  "%",
	AND:  "&",
	OR:   "|",
	XOR:  "^",
	NOT:  "!",
	BNOT: "~",
	SHL:  "<<",
	SHR:  ">>",
	LAND: "&&",
	LOR:  "||",
	INC:  "++",
	DEC:  "--",
	EQL:  "==",
	NEQ:  "!=",
	LSS:  "<",
	GTR:  ">",
	LEQ:  "<=",
	GEQ:  ">=",

	ASSIGN:     "=",
	ADD_ASSIGN: "+=",
	SUB_ASSIGN: "-=",
	MUL_ASSIGN: "*=",
	QUO_ASSIGN: "/=",
	REM_ASSIGN: "%=",
	AND_ASSIGN: "&=",
	OR_ASSIGN:  "|=",
	XOR_ASSIGN: "^=",
	SHL_ASSIGN: "<<=",
	SHR_ASSIGN: ">>=",

	AUTO:     "auto",
	BREAK:    "break",
	CASE:     "case",
	CHAR:     "char",
	CONST:    "const",
	CONTINUE: "continue",
	DEFAULT:  "default",
	DO:       "do",
	DOUBLE:   "double",
	ELSE:     "else",
	ENUM:     "enum",
	EXTERN:   "extern",
	FLOAT:    "float",
	FOR:      "for",
	GOTO:     "goto",
	IF:       "if",
	INT:      "int",
	LONG:     "long",
	REGISTER: "register",
	RETURN:   "return",
	SHORT:    "short",
	SIGNED:   "signed",
	SIZEOF:   "sizeof",
	STATIC:   "static",
	STRUCT:   "struct",
	SWITCH:   "switch",
	TYPEDEF:  "typedef",
	UNION:    "union",
	UNSIGNED: "unsigned",
	VOID:     "void",
	VOLATILE: "volatile",
	WHILE:    "while",

	INLINE:    "inline",
	RESTRICT:  "restrict",
	BOOL_:     "_Bool",
	COMPLEX:   "_Complex",
	IMAGINARY: "_Imaginary",

	ALIGNAS_:       "_Alignas",
	ALIGNOF_:       "_Alignof",
	ATOMIC:         "_Atomic",
	GENERIC:        "_Generic",
	NORETURN:       "_Noreturn",
	STATIC_ASSERT_: "_Static_assert",
	THREAD_LOCAL_:  "_Thread_local",

	ALIGNAS:       "alignas",
	ALIGNOF:       "alignof",
	BOOL:          "bool",
	CONSTEXPR:     "constexpr",
	FALSE:         "false",
	NULLPTR:       "nullptr",
	STATIC_ASSERT: "static_assert",
	THREAD_LOCAL:  "thread_local",
	TRUE:          "true",
	TYPEOF:        "typeof",
	TYPEOF_UNQUAL: "typeof_unqual",
	BITINT:        "_BitInt",
	DECIMAL32:     "_Decimal32",
	DECIMAL64:     "_Decimal64",
	DECIMAL128:    "_Decimal128",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsKeyword reports whether k is a reserved word in some C standard.
func (k Kind) IsKeyword() bool {
	return k >= AUTO && k <= DECIMAL128
}

// IsPunctuator reports whether k is an operator or punctuation token.
func (k Kind) IsPunctuator() bool {
	return k >= LPAREN && k <= SHR_ASSIGN
}

// IsLiteral reports whether k is a constant or string literal.
func (k Kind) IsLiteral() bool {
	return k >= INT_CONSTANT && k <= STRING
}

// IsAssignment reports whether k is = or a compound assignment operator.
func (k Kind) IsAssignment() bool {
	return k >= ASSIGN && k <= SHR_ASSIGN
}

type Token struct {
	Kind   Kind
	Lexeme string
	Pos    Position
}

// End returns the position immediately after the token's lexeme. Columns
// count bytes, as the lexer does.
func (t Token) End() Position {
	end := t.Pos
	end.Offset += len(t.Lexeme)
	for i := 0; i < len(t.Lexeme); i++ {
		if t.Lexeme[i] == '\n' {
			end.Line++
			end.Column = 1
			continue
		}
		end.Column++
	}
	return end
}

func (t Token) Span() Span {
	return Span{Start: t.Pos, End: t.End()}
}

func (t Token) String() string {
	if t.Kind == EOF {
		return fmt.Sprintf("%s EOF", t.Pos)
	}
	return fmt.Sprintf("%s %s %q", t.Pos, t.Kind, t.Lexeme)
}

// Describe renders the token the way diagnostics quote it.
func (t Token) Describe() string {
	switch {
	case t.Kind == EOF:
		return "end of file"
	case utf8.RuneCountInString(t.Lexeme) > 32:
		return fmt.Sprintf("'%s...'", string([]rune(t.Lexeme)[:32]))
	default:
		return fmt.Sprintf("'%s'", t.Lexeme)
	}
}

var punctuators = map[string]Kind{}

func init() {
	for k := LPAREN; k <= SHR_ASSIGN; k++ {
		punctuators[kindNames[k]] = k
	}
}

// LookupPunctuator maps punctuator text to its kind.
func LookupPunctuator(text string) (Kind, bool) {
	k, ok := punctuators[text]
	return k, ok
}
