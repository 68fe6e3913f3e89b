package parser

import (
	"github.com/dhamidi/cfront/c/token"
	"github.com/tliron/commonlog"
)

const (
	// PanicModeLimit is the furthest PanicMode scans for a synchronization token.
	PanicModeLimit = 50

	synchronizeLimit     = 30
	skipSemicolonLimit   = 20
	missingBraceLimit    = 25
	expressionErrorLimit = 15
)

// RecoveryStrategy repairs the token position after a parse error. Recover
// works on a copy of the cursor in pos and leaves the stream itself alone;
// on failure pos is unspecified and the caller restores it.
type RecoveryStrategy interface {
	Name() string
	CanHandle(err *ParseError, ts *TokenStream, pos int) bool
	Recover(state *StateManager, ts *TokenStream, pos *int) bool
}

// DefaultStrategies returns the strategies a Parser registers unless
// WithRecoveryStrategies says otherwise.
func DefaultStrategies() []RecoveryStrategy {
	return []RecoveryStrategy{
		PhraseLevel{},
		ErrorProduction{},
		PanicMode{Limit: PanicModeLimit},
	}
}

// isStatementKeyword reports whether k begins a statement.
func isStatementKeyword(k token.Kind) bool {
	switch k {
	case token.IF, token.ELSE, token.WHILE, token.DO, token.FOR, token.SWITCH,
		token.CASE, token.DEFAULT, token.RETURN, token.BREAK, token.CONTINUE, token.GOTO:
		return true
	}
	return false
}

// isDeclarationKeyword reports whether k can begin a declaration.
func isDeclarationKeyword(k token.Kind) bool {
	return isTypeKeyword(k) || isStorageClass(k) || isQualifier(k) || isFunctionSpecifier(k) ||
		k == token.STATIC_ASSERT || k == token.STATIC_ASSERT_ ||
		k == token.ALIGNAS || k == token.ALIGNAS_
}

// isTypeKeyword reports whether k is a built-in type specifier or introduces one.
func isTypeKeyword(k token.Kind) bool {
	switch k {
	case token.VOID, token.CHAR, token.SHORT, token.INT, token.LONG, token.FLOAT,
		token.DOUBLE, token.SIGNED, token.UNSIGNED, token.BOOL_, token.BOOL,
		token.COMPLEX, token.IMAGINARY, token.BITINT,
		token.DECIMAL32, token.DECIMAL64, token.DECIMAL128,
		token.STRUCT, token.UNION, token.ENUM, token.TYPEOF, token.TYPEOF_UNQUAL:
		return true
	}
	return false
}

func isStorageClass(k token.Kind) bool {
	switch k {
	case token.TYPEDEF, token.EXTERN, token.STATIC, token.AUTO, token.REGISTER,
		token.THREAD_LOCAL, token.THREAD_LOCAL_, token.CONSTEXPR:
		return true
	}
	return false
}

func isQualifier(k token.Kind) bool {
	switch k {
	case token.CONST, token.VOLATILE, token.RESTRICT, token.ATOMIC:
		return true
	}
	return false
}

func isFunctionSpecifier(k token.Kind) bool {
	return k == token.INLINE || k == token.NORETURN
}

// isSyncToken is the PanicMode synchronization set.
func isSyncToken(k token.Kind) bool {
	switch k {
	case token.SEMICOLON, token.LBRACE, token.RBRACE:
		return true
	}
	return isStatementKeyword(k) || isDeclarationKeyword(k)
}

// PanicMode skips tokens until one in the synchronization set.
type PanicMode struct {
	Limit int
}

func (PanicMode) Name() string { return "panic-mode" }

func (PanicMode) CanHandle(err *ParseError, ts *TokenStream, pos int) bool {
	return err == nil || err.Kind != ErrLimit
}

func (s PanicMode) Recover(state *StateManager, ts *TokenStream, pos *int) bool {
	limit := s.Limit
	if limit <= 0 {
		limit = PanicModeLimit
	}
	for i := 0; i < limit; i++ {
		tok := ts.At(*pos)
		if tok.Kind == token.EOF {
			return false
		}
		if isSyncToken(tok.Kind) {
			return true
		}
		*pos++
	}
	return false
}

// PhraseLevel applies single-token fixes: a virtual ';' before a token that
// cannot continue the current statement, or deletion of a doubled ';' or ','.
type PhraseLevel struct{}

func (PhraseLevel) Name() string { return "phrase-level" }

func (PhraseLevel) CanHandle(err *ParseError, ts *TokenStream, pos int) bool {
	if err == nil {
		return false
	}
	switch err.Kind {
	case ErrMissingToken, ErrUnexpectedToken, ErrSyntax:
		return true
	}
	return false
}

func (PhraseLevel) Recover(state *StateManager, ts *TokenStream, pos *int) bool {
	cur := ts.At(*pos)
	switch cur.Kind {
	case token.SEMICOLON, token.COMMA:
		if ts.At(*pos+1).Kind == cur.Kind {
			*pos++
			return true
		}
	case token.RBRACE, token.RETURN:
		// A ';' belongs before this token; the caller sees it as inserted.
		return ts.At(*pos-1).Kind != token.SEMICOLON
	}
	if isStatementKeyword(cur.Kind) && cur.Kind != token.ELSE {
		prev := ts.At(*pos - 1).Kind
		return prev != token.SEMICOLON && prev != token.LBRACE && prev != token.RBRACE
	}
	return false
}

// ErrorProduction recognizes a few malformed shapes common enough to treat
// as if they were part of the grammar.
type ErrorProduction struct{}

func (ErrorProduction) Name() string { return "error-production" }

func (ErrorProduction) CanHandle(err *ParseError, ts *TokenStream, pos int) bool {
	return err != nil && err.Kind != ErrLimit && err.Kind != ErrSemantic
}

func (ErrorProduction) Recover(state *StateManager, ts *TokenStream, pos *int) bool {
	cur := ts.At(*pos)
	switch {
	case cur.Kind == token.COMMA:
		// trailing comma before a closer
		switch ts.At(*pos + 1).Kind {
		case token.RPAREN, token.RBRACK, token.RBRACE:
			*pos++
			return true
		}
	case cur.Kind == token.RBRACE:
		// virtual ';' before '}'
		return true
	case cur.Kind == token.EOF:
		// virtual '}' closing whatever block is still open
		return state != nil && state.CurrentScopeLevel() > 0
	case isStatementKeyword(cur.Kind) || isDeclarationKeyword(cur.Kind):
		// virtual ';' before a following keyword
		return *pos > 0 && ts.At(*pos-1).Kind != token.SEMICOLON
	}
	return false
}

// RecoveryManager tries each registered strategy in order.
type RecoveryManager struct {
	strategies []RecoveryStrategy
	log        commonlog.Logger
	attempts   int
	successes  int
}

func NewRecoveryManager(log commonlog.Logger, strategies ...RecoveryStrategy) *RecoveryManager {
	if log == nil {
		log = commonlog.GetLogger("cfront.recovery")
	}
	return &RecoveryManager{strategies: strategies, log: log}
}

func (m *RecoveryManager) Register(s RecoveryStrategy) {
	m.strategies = append(m.strategies, s)
}

func (m *RecoveryManager) Strategies() []RecoveryStrategy {
	return m.strategies
}

// AttemptRecovery lets the first strategy that succeeds move the cursor. If
// none succeeds the cursor is left where it was.
func (m *RecoveryManager) AttemptRecovery(err *ParseError, state *StateManager, ts *TokenStream) bool {
	m.attempts++
	state.AddState(StateRecovering)
	defer state.RemoveState(StateRecovering)

	start := ts.Position()
	for _, s := range m.strategies {
		if !s.CanHandle(err, ts, start) {
			continue
		}
		pos := start
		if s.Recover(state, ts, &pos) {
			ts.SetPosition(pos)
			state.AddRecoveryPoint(s.Name() + " at " + ts.Current().Pos.String())
			m.successes++
			m.log.Debugf("recovered with %s: skipped %d tokens", s.Name(), pos-start)
			return true
		}
	}
	ts.SetPosition(start)
	m.log.Debugf("no strategy recovered at %s", ts.Current().Pos)
	return false
}

// Counts reports how many recoveries were attempted and how many succeeded.
func (m *RecoveryManager) Counts() (attempts, successes int) {
	return m.attempts, m.successes
}

func (m *RecoveryManager) Reset() {
	m.attempts = 0
	m.successes = 0
}

// scan moves forward at most limit tokens looking for stop. It leaves the
// cursor at the matching token, or restores it and reports false.
func scan(ts *TokenStream, limit int, stop func(token.Kind, int) bool) bool {
	start := ts.Position()
	depth := 0
	for i := 0; i < limit; i++ {
		k := ts.Current().Kind
		if k == token.EOF {
			break
		}
		if stop(k, depth) {
			return true
		}
		switch k {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACK, token.RBRACE:
			depth--
		}
		ts.Advance()
	}
	ts.SetPosition(start)
	return false
}

// SynchronizeToToken advances to the first token of one of kinds within limit
// tokens. A non-positive limit means 30.
func SynchronizeToToken(ts *TokenStream, kinds []token.Kind, limit int) bool {
	if limit <= 0 {
		limit = synchronizeLimit
	}
	return scan(ts, limit, func(k token.Kind, _ int) bool {
		for _, want := range kinds {
			if k == want {
				return true
			}
		}
		return false
	})
}

// SkipToSemicolon advances past the next ';' within 20 tokens.
func SkipToSemicolon(ts *TokenStream) bool {
	if !scan(ts, skipSemicolonLimit, func(k token.Kind, _ int) bool {
		return k == token.SEMICOLON
	}) {
		return false
	}
	ts.Advance()
	return true
}

// RecoverFromMissingBrace advances to the '}' that closes the current
// block, within 25 tokens.
func RecoverFromMissingBrace(ts *TokenStream) bool {
	return scan(ts, missingBraceLimit, func(k token.Kind, depth int) bool {
		return k == token.RBRACE && depth == 0
	})
}

// RecoverFromExpressionError advances to the next token that can end an
// expression at the current nesting level, within 15 tokens.
func RecoverFromExpressionError(ts *TokenStream) bool {
	return scan(ts, expressionErrorLimit, func(k token.Kind, depth int) bool {
		if depth > 0 {
			return false
		}
		switch k {
		case token.SEMICOLON, token.COMMA, token.RPAREN, token.RBRACK, token.RBRACE:
			return true
		}
		return false
	})
}
