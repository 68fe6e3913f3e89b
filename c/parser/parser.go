package parser

import (
	"github.com/dhamidi/cfront/c/token"
	"github.com/tliron/commonlog"
)

// Parser is a recursive-descent parser for one C translation unit at a
// time. It is not safe for concurrent use; Reset or a new Parse makes it
// reusable.
type Parser struct {
	cfg        Config
	file       string
	log        commonlog.Logger
	strategies []RecoveryStrategy

	ts       *TokenStream
	state    *StateManager
	recovery *RecoveryManager
	reporter *ErrorReporter

	// speculating is non-zero while a trial parse runs; diagnostics and
	// symbol declarations are discarded then.
	speculating   int
	reported      int
	lastError     *ParseError
	halted        bool
	depthReported bool
	declDepth     int
}

// New validates cfg and returns a parser ready for Parse.
func New(cfg Config, opts ...Option) (*Parser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Parser{
		cfg:        cfg,
		log:        commonlog.GetLogger("cfront.parser"),
		strategies: DefaultStrategies(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.ts = NewTokenStream(nil)
	p.state = NewStateManager(p.ts, p.log)
	p.recovery = NewRecoveryManager(p.log, p.strategies...)
	p.reporter = NewErrorReporter(cfg.MaxErrors)
	return p, nil
}

func (p *Parser) Config() Config {
	return p.cfg
}

// Parse parses a whole translation unit. The returned node is never nil;
// the error is the first error-severity diagnostic, if any. Every
// diagnostic stays available through Diagnostics.
func (p *Parser) Parse(ts *TokenStream) (*Node, error) {
	p.begin(ts)
	done := p.state.StartTimer("parse")
	unit := p.parseTranslationUnit()
	done()
	p.log.Debugf("%s: %d declarations, %d errors, %d warnings",
		p.displayName(), len(unit.Children), len(p.Errors()), len(p.Warnings()))
	return unit, p.firstError()
}

// ParseTokens is Parse over a plain token slice.
func (p *Parser) ParseTokens(tokens []token.Token) (*Node, error) {
	return p.Parse(NewTokenStream(tokens))
}

// ParseExpression parses ts as a single expression.
func (p *Parser) ParseExpression(ts *TokenStream) (*Node, error) {
	p.begin(ts)
	expr := p.parseExpression()
	if expr != nil && !p.ts.IsAtEnd() {
		p.report(NewSyntaxError(p.peek(), "unexpected %s after expression", p.peek().Describe()))
	}
	return expr, p.firstError()
}

// ParseStatement parses ts as a single statement inside an implicit
// function body.
func (p *Parser) ParseStatement(ts *TokenStream) (*Node, error) {
	p.begin(ts)
	p.state.AddState(StateInFunction)
	stmt := p.parseBlockItem(new(bool))
	if stmt != nil && !p.ts.IsAtEnd() {
		p.report(NewSyntaxError(p.peek(), "unexpected %s after statement", p.peek().Describe()))
	}
	return stmt, p.firstError()
}

// Reset clears all per-parse state.
func (p *Parser) Reset() {
	p.begin(NewTokenStream(nil))
}

func (p *Parser) begin(ts *TokenStream) {
	p.ts = ts
	p.state.Bind(ts)
	p.state.Reset()
	p.recovery.Reset()
	p.reporter.Reset()
	p.speculating = 0
	p.reported = 0
	p.lastError = nil
	p.halted = false
	p.depthReported = false
	p.declDepth = 0
	p.checkIdentifiers()
}

// Diagnostics returns errors and warnings in the order they were reported.
func (p *Parser) Diagnostics() []*ParseError {
	return p.reporter.Diagnostics()
}

func (p *Parser) Errors() []*ParseError {
	return p.reporter.Errors()
}

func (p *Parser) Warnings() []*ParseError {
	return p.reporter.Warnings()
}

func (p *Parser) HasErrors() bool {
	return len(p.reporter.Errors()) > 0 || p.state.Stats().Errors > 0
}

func (p *Parser) Reporter() *ErrorReporter {
	return p.reporter
}

func (p *Parser) State() *StateManager {
	return p.state
}

func (p *Parser) Recovery() *RecoveryManager {
	return p.recovery
}

func (p *Parser) firstError() error {
	for _, d := range p.reporter.Diagnostics() {
		if d.IsError() {
			return d
		}
	}
	return nil
}

func (p *Parser) displayName() string {
	if p.file != "" {
		return p.file
	}
	if f := p.ts.At(0).Pos.File; f != "" {
		return f
	}
	return "<input>"
}

// Token helpers

func (p *Parser) peek() token.Token {
	return p.ts.Current()
}

func (p *Parser) peekN(n int) token.Token {
	return p.ts.Peek(n)
}

func (p *Parser) advance() token.Token {
	tok := p.ts.Current()
	if p.ts.Advance() {
		p.state.NoteTokens(1)
	}
	return tok
}

func (p *Parser) check(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

// accept consumes the current token if it has the given kind.
func (p *Parser) accept(kind token.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of the given kind or reports it missing.
func (p *Parser) expect(kind token.Kind) (token.Token, bool) {
	tok := p.peek()
	if tok.Kind == kind {
		p.advance()
		return tok, true
	}
	switch kind {
	case token.SEMICOLON, token.RPAREN, token.RBRACK, token.RBRACE, token.COLON:
		err := NewMissingToken(tok, kind)
		if prev := p.ts.Previous(1); p.ts.Position() > 0 && prev.Pos.Line != tok.Pos.Line {
			err.Range = token.Span{Start: prev.End(), End: prev.End()}
			err.Actual = prev
		}
		p.report(err.Suggest("insert '%s'", kind))
	default:
		p.report(NewUnexpectedToken(tok, kind))
	}
	return tok, false
}

// mustProgress returns a function that checks if the parser has advanced.
// Call it at the start of a loop iteration, then call the returned function
// at the end to break if no progress was made.
func (p *Parser) mustProgress() func() bool {
	saved := p.ts.Position()
	return func() bool {
		if p.ts.Position() == saved {
			if !p.ts.IsAtEnd() {
				p.advance()
			}
			return false
		}
		return true
	}
}

func (p *Parser) startNode(kind NodeKind) *Node {
	return &Node{
		Kind: kind,
		Span: token.Span{Start: p.peek().Pos},
	}
}

func (p *Parser) finishNode(n *Node) *Node {
	if p.ts.Position() > 0 {
		n.Span.End = p.ts.Previous(1).End()
	} else {
		n.Span.End = n.Span.Start
	}
	return n
}

func (p *Parser) tokenNode(kind NodeKind, tok token.Token) *Node {
	return &Node{Kind: kind, Token: &tok, Span: tok.Span()}
}

// Diagnostics

// report records err unless a trial parse is running. It always remembers
// err as the most recent failure so recovery can inspect it.
func (p *Parser) report(err *ParseError) *ParseError {
	p.lastError = err
	if p.speculating > 0 || p.halted {
		return err
	}
	p.reported++
	if err.IsError() {
		p.state.IncrementErrors()
	} else {
		p.state.IncrementWarnings()
	}
	if ctx := p.state.ContextPath(); ctx != "" && p.cfg.Verbosity > 1 {
		err.Note("while parsing %s", ctx)
	}
	if !p.reporter.Report(err) {
		return err
	}
	if p.cfg.Verbosity > 0 {
		p.log.Infof("%s", err)
	} else {
		p.log.Debugf("%s", err)
	}
	return err
}

func (p *Parser) warn(tok token.Token, format string, args ...any) {
	p.report(NewWarning(tok, format, args...))
}

// enter opens a named frame for the depth guard. Callers must defer exit
// whether or not enter succeeds.
func (p *Parser) enter(name string) bool {
	p.state.PushContext(name)
	if p.state.Depth() <= p.cfg.MaxDepth {
		return true
	}
	if !p.depthReported && p.speculating == 0 {
		p.depthReported = true
		p.report(NewLimitError(p.peek(), "too deeply nested: %s exceeds depth %d", name, p.cfg.MaxDepth))
	}
	return false
}

func (p *Parser) exit() {
	p.state.PopContext()
}

func (p *Parser) declare(name string, kind SymbolKind, pos token.Position) {
	if p.speculating > 0 || name == "" {
		return
	}
	p.state.DeclareSymbol(name, kind, pos)
}

func (p *Parser) isTypedefName(tok token.Token) bool {
	if tok.Kind != token.IDENT {
		return false
	}
	sym := p.state.LookupSymbol(tok.Lexeme)
	return sym != nil && sym.Kind == SymbolTypedef
}

// Translation unit

func (p *Parser) parseTranslationUnit() *Node {
	unit := p.startNode(KindTranslationUnit)
	failures := 0

	for !p.ts.IsAtEnd() && !p.halted {
		progress := p.mustProgress()
		if p.accept(token.SEMICOLON) {
			continue
		}

		start := p.ts.Position()
		before := p.reported
		decl := p.parseExternalDeclaration()
		if decl != nil {
			unit.AddChild(decl)
			if !progress() {
				break
			}
			continue
		}

		failures++
		tok := p.ts.At(start)
		if p.reported == before {
			p.report(NewSyntaxError(tok, "unexpected %s (%s) at %s; expected a declaration",
				tok.Describe(), tok.Kind, tok.Pos))
		}
		if failures > maxTopLevelFailures {
			p.report(NewLimitError(p.peek(), "too many errors in translation unit; giving up"))
			break
		}
		p.recoverAfter(start, false)
	}

	return p.finishNode(unit)
}

// recoverAfter resynchronizes after a failed item that began at token start.
// The cursor always ends up past start.
func (p *Parser) recoverAfter(start int, inBlock bool) {
	if !p.cfg.Recovery {
		p.halted = true
		return
	}
	err := p.lastError
	if err == nil {
		err = NewSyntaxError(p.peek(), "unexpected %s", p.peek().Describe())
	}

	if !p.recovery.AttemptRecovery(err, p.state, p.ts) {
		switch {
		case inBlock:
			_ = RecoverFromExpressionError(p.ts) || SkipToSemicolon(p.ts) || RecoverFromMissingBrace(p.ts)
		default:
			_ = SkipToSemicolon(p.ts) || SynchronizeToToken(p.ts, declarationStarts, synchronizeLimit)
		}
	}

	if p.check(token.SEMICOLON) || !inBlock && p.check(token.RBRACE) {
		p.advance()
	}
	if p.ts.Position() <= start && !p.ts.IsAtEnd() {
		p.ts.SetPosition(start)
		p.advance()
	}
}

var declarationStarts = []token.Kind{
	token.TYPEDEF, token.EXTERN, token.STATIC, token.VOID, token.CHAR, token.SHORT,
	token.INT, token.LONG, token.FLOAT, token.DOUBLE, token.SIGNED, token.UNSIGNED,
	token.STRUCT, token.UNION, token.ENUM, token.CONST, token.VOLATILE,
}

func (p *Parser) parseExternalDeclaration() *Node {
	ok := p.enter("external-declaration")
	defer p.exit()
	if !ok {
		return nil
	}

	if p.tryFunctionDefinition() {
		return p.parseFunctionDefinition()
	}
	if !p.startsDeclaration() && !p.startsImplicitInt() {
		return nil
	}
	return p.parseDeclaration()
}
