package parser

import (
	"testing"

	"github.com/dhamidi/cfront/c/token"
	"github.com/nalgeon/be"
)

func identTokens(names ...string) []token.Token {
	toks := make([]token.Token, len(names))
	for i, name := range names {
		toks[i] = token.Token{Kind: token.IDENT, Lexeme: name, Pos: token.Position{Line: 1, Column: 2*i + 1, Offset: 2 * i}}
	}
	return toks
}

func TestTokenStream(t *testing.T) {
	ts := NewTokenStream(identTokens("a", "b", "c"))
	be.Equal(t, ts.Len(), 4)
	be.Equal(t, ts.Current().Lexeme, "a")
	be.Equal(t, ts.Peek(2).Lexeme, "c")
	be.Equal(t, ts.Peek(10).Kind, token.EOF)
	be.Equal(t, ts.Previous(1).Kind, token.EOF)

	be.True(t, ts.Advance())
	be.Equal(t, ts.Previous(1).Lexeme, "a")
	ts.SetPosition(100)
	be.True(t, ts.IsAtEnd())
	be.True(t, !ts.Advance())
	be.Equal(t, ts.Position(), 3)

	ts.SetPosition(-5)
	be.Equal(t, ts.Position(), 0)
	be.Equal(t, len(ts.Range(0, 2)), 2)
}

func TestTokenStreamKeepsLexerEOF(t *testing.T) {
	toks := append(identTokens("x"), token.Token{Kind: token.EOF, Pos: token.Position{Line: 1, Column: 2}})
	ts := NewTokenStream(toks)
	be.Equal(t, ts.Len(), 2)
	be.Equal(t, ts.At(1).Pos.Column, 2)
}

func TestScopes(t *testing.T) {
	m := NewStateManager(NewTokenStream(nil), nil)
	be.Equal(t, m.CurrentScopeLevel(), 0)
	m.DeclareSymbol("x", SymbolVariable, token.Position{Line: 1})
	m.DeclareSymbol("T", SymbolTypedef, token.Position{Line: 2})

	m.EnterScope("f")
	be.Equal(t, m.CurrentScopeLevel(), 1)
	be.Equal(t, m.CurrentScope().Name, "f")
	m.DeclareSymbol("x", SymbolParameter, token.Position{Line: 3})
	be.Equal(t, m.LookupSymbol("x").Kind, SymbolParameter)
	be.Equal(t, m.LookupSymbol("T").Kind, SymbolTypedef)

	m.EnterScope("")
	be.Equal(t, m.CurrentScope().Name, "scope2")
	be.True(t, m.IsSymbolDeclared("x"))
	m.ExitScope()
	m.ExitScope()

	be.Equal(t, m.LookupSymbol("x").Kind, SymbolVariable)
	be.True(t, !m.IsSymbolDeclared("missing"))

	// Leaving the global scope is ignored.
	m.ExitScope()
	be.Equal(t, m.CurrentScopeLevel(), 0)
	be.True(t, m.IsValid())
}

func TestStateFlags(t *testing.T) {
	m := NewStateManager(NewTokenStream(nil), nil)
	be.Equal(t, m.State(), StateNormal)
	m.AddState(StateInFunction)
	m.AddState(StateInLoop)
	be.True(t, m.HasState(StateInLoop))
	be.Equal(t, m.State().String(), "InFunction|InLoop")
	m.RemoveState(StateInLoop)
	be.True(t, !m.HasState(StateInLoop))
	be.True(t, m.HasState(StateInFunction))
}

func TestContextStack(t *testing.T) {
	m := NewStateManager(NewTokenStream(nil), nil)
	_, ok := m.CurrentContext()
	be.True(t, !ok)

	m.PushContext("declaration")
	m.PushContext("expression")
	be.Equal(t, m.Depth(), 2)
	be.Equal(t, m.ContextPath(), "declaration > expression")
	ctx, ok := m.CurrentContext()
	be.True(t, ok)
	be.Equal(t, ctx.Name, "expression")

	m.PopContext()
	m.PopContext()
	m.PopContext()
	be.Equal(t, m.Depth(), 0)
	be.True(t, m.IsValid())
}

func TestCheckpoints(t *testing.T) {
	ts := NewTokenStream(identTokens("a", "b", "c", "d"))
	m := NewStateManager(ts, nil)

	outer := m.Mark()
	ts.Advance()
	inner := m.Mark()
	ts.Advance()
	be.Equal(t, m.CheckpointDepth(), 2)

	m.Rewind(inner)
	be.Equal(t, ts.Position(), 1)
	be.Equal(t, m.CheckpointDepth(), 1)

	ts.Advance()
	m.Commit(outer)
	be.Equal(t, ts.Position(), 2)
	be.Equal(t, m.CheckpointDepth(), 0)
}

func TestNamedPositions(t *testing.T) {
	ts := NewTokenStream(identTokens("a", "b", "c"))
	m := NewStateManager(ts, nil)

	m.SavePosition("start")
	ts.Advance()
	label := m.SavePosition("")
	be.Equal(t, label, "auto_1")
	ts.Advance()

	be.True(t, m.RestorePosition(""))
	be.Equal(t, ts.Position(), 1)
	be.True(t, m.RestorePosition("start"))
	be.Equal(t, ts.Position(), 0)
	be.True(t, !m.RestorePosition("nowhere"))
}

func TestPositionHistory(t *testing.T) {
	ts := NewTokenStream(identTokens("a", "b"))
	m := NewStateManager(ts, nil)
	be.True(t, !m.PopPositionHistory())

	m.PushPositionHistory()
	ts.Advance()
	be.True(t, m.PopPositionHistory())
	be.Equal(t, ts.Position(), 0)

	m.PushPositionHistory()
	ts.Advance()
	be.True(t, m.DiscardPositionHistory())
	be.Equal(t, ts.Position(), 1)
	be.Equal(t, m.CheckpointDepth(), 0)
}

func TestStatsAndRecoveryPoints(t *testing.T) {
	m := NewStateManager(NewTokenStream(identTokens("a")), nil)
	m.IncrementErrors()
	m.IncrementErrors()
	m.IncrementWarnings()
	m.NoteTokens(3)
	m.AddRecoveryPoint("panic-mode at 1:1")
	done := m.StartTimer("parse")
	done()

	stats := m.Stats()
	be.Equal(t, stats.Errors, 2)
	be.Equal(t, stats.Warnings, 1)
	be.Equal(t, stats.TokensProcessed, 3)
	be.Equal(t, stats.Recoveries, 1)
	_, timed := stats.Timings["parse"]
	be.True(t, timed)
	be.Equal(t, m.RecoveryPoints()[0].Description, "panic-mode at 1:1")

	m.Reset()
	be.Equal(t, m.Stats().Errors, 0)
	be.Equal(t, len(m.RecoveryPoints()), 0)
}

func TestValidateReportsBrokenInvariants(t *testing.T) {
	m := NewStateManager(NewTokenStream(nil), nil)
	be.Equal(t, m.Validate(), []string(nil))

	m.depth = 3
	be.Equal(t, m.Validate(), []string{"parse depth 3 with 0 contexts"})
	be.True(t, !m.IsValid())
}
