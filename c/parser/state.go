package parser

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dhamidi/cfront/c/token"
	"github.com/tliron/commonlog"
)

// ParserState is a set of context flags; several may hold at once, as in a
// loop nested inside a function.
type ParserState uint8

const (
	StateNormal     ParserState = 0
	StateInFunction ParserState = 1 << iota
	StateInLoop
	StateInSwitch
	StateRecovering
)

var stateNames = []struct {
	flag ParserState
	name string
}{
	{StateInFunction, "InFunction"},
	{StateInLoop, "InLoop"},
	{StateInSwitch, "InSwitch"},
	{StateRecovering, "Recovering"},
}

func (s ParserState) Has(flag ParserState) bool {
	return flag != 0 && s&flag == flag
}

func (s ParserState) With(flag ParserState) ParserState {
	return s | flag
}

func (s ParserState) Without(flag ParserState) ParserState {
	return s &^ flag
}

func (s ParserState) String() string {
	if s == StateNormal {
		return "Normal"
	}
	var parts []string
	for _, n := range stateNames {
		if s.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseContext is one named frame of the recursive descent.
type ParseContext struct {
	Name     string
	State    ParserState
	TokenPos int
}

// RecoveryPoint is a diagnostic breadcrumb left when recovery succeeds.
type RecoveryPoint struct {
	TokenPos    int
	State       ParserState
	ScopeLevel  int
	Description string
}

// Checkpoint identifies a saved cursor position on the checkpoint stack.
type Checkpoint struct {
	depth int
	pos   int
}

// Stats are counters kept for diagnostics; parsing never depends on them.
type Stats struct {
	Errors          int
	Warnings        int
	TokensProcessed int
	Recoveries      int
	MaxScopeLevel   int
	Timings         map[string]time.Duration
}

// StateManager owns the symbol table, context stack, checkpoints and
// counters of one parse. It keeps the TokenStream cursor in sync whenever a
// position is restored.
type StateManager struct {
	ts       *TokenStream
	log      commonlog.Logger
	state    ParserState
	scopes   []*Scope
	contexts []ParseContext
	depth    int

	checkpoints []int
	labels      map[string]int // label -> index into checkpoints
	autoLabels  int
	lastAuto    string

	recoveryPoints []RecoveryPoint
	stats          Stats
}

func NewStateManager(ts *TokenStream, log commonlog.Logger) *StateManager {
	if log == nil {
		log = commonlog.GetLogger("cfront.state")
	}
	m := &StateManager{ts: ts, log: log}
	m.Reset()
	return m
}

// Bind attaches the manager to a different token stream.
func (m *StateManager) Bind(ts *TokenStream) {
	m.ts = ts
}

// Reset returns the manager to a single global scope with nothing recorded.
func (m *StateManager) Reset() {
	m.state = StateNormal
	m.scopes = []*Scope{newScope("global", 0)}
	m.contexts = nil
	m.depth = 0
	m.checkpoints = nil
	m.labels = make(map[string]int)
	m.autoLabels = 0
	m.lastAuto = ""
	m.recoveryPoints = nil
	m.stats = Stats{Timings: make(map[string]time.Duration)}
}

// State flags

func (m *StateManager) State() ParserState {
	return m.state
}

func (m *StateManager) SetState(s ParserState) {
	m.state = s
}

func (m *StateManager) AddState(flag ParserState) {
	m.state = m.state.With(flag)
}

func (m *StateManager) RemoveState(flag ParserState) {
	m.state = m.state.Without(flag)
}

func (m *StateManager) HasState(flag ParserState) bool {
	return m.state.Has(flag)
}

// Scopes

func (m *StateManager) EnterScope(name string) {
	level := len(m.scopes)
	if name == "" {
		name = fmt.Sprintf("scope%d", level)
	}
	m.scopes = append(m.scopes, newScope(name, level))
	if level > m.stats.MaxScopeLevel {
		m.stats.MaxScopeLevel = level
	}
}

func (m *StateManager) ExitScope() {
	if len(m.scopes) <= 1 {
		m.log.Warning("exit of global scope ignored")
		return
	}
	m.scopes = m.scopes[:len(m.scopes)-1]
}

func (m *StateManager) CurrentScopeLevel() int {
	return m.scopes[len(m.scopes)-1].Level
}

func (m *StateManager) CurrentScope() *Scope {
	return m.scopes[len(m.scopes)-1]
}

// DeclareSymbol records name in the innermost scope, replacing any earlier
// declaration of the same name there.
func (m *StateManager) DeclareSymbol(name string, kind SymbolKind, pos token.Position) *Symbol {
	scope := m.CurrentScope()
	sym := &Symbol{Name: name, Kind: kind, ScopeLevel: scope.Level, Pos: pos}
	scope.symbols[name] = sym
	return sym
}

// LookupSymbol searches from the innermost scope outward.
func (m *StateManager) LookupSymbol(name string) *Symbol {
	for i := len(m.scopes) - 1; i >= 0; i-- {
		if sym := m.scopes[i].Lookup(name); sym != nil {
			return sym
		}
	}
	return nil
}

func (m *StateManager) IsSymbolDeclared(name string) bool {
	return m.LookupSymbol(name) != nil
}

// Context stack

// PushContext opens a named frame and increases the parse depth.
func (m *StateManager) PushContext(name string) {
	m.contexts = append(m.contexts, ParseContext{
		Name:     name,
		State:    m.state,
		TokenPos: m.ts.Position(),
	})
	m.depth++
}

func (m *StateManager) PopContext() {
	if len(m.contexts) == 0 {
		m.log.Warning("pop of empty context stack ignored")
		return
	}
	m.contexts = m.contexts[:len(m.contexts)-1]
	m.depth--
}

// CurrentContext returns the innermost frame, or false when none is open.
func (m *StateManager) CurrentContext() (ParseContext, bool) {
	if len(m.contexts) == 0 {
		return ParseContext{}, false
	}
	return m.contexts[len(m.contexts)-1], true
}

func (m *StateManager) Depth() int {
	return m.depth
}

// ContextPath renders the open frames outermost first, for diagnostics.
func (m *StateManager) ContextPath() string {
	names := make([]string, len(m.contexts))
	for i, c := range m.contexts {
		names[i] = c.Name
	}
	return strings.Join(names, " > ")
}

// Checkpoints

// Mark pushes the current cursor position.
func (m *StateManager) Mark() Checkpoint {
	m.checkpoints = append(m.checkpoints, m.ts.Position())
	return Checkpoint{depth: len(m.checkpoints), pos: m.ts.Position()}
}

// Rewind restores the cursor to cp and drops cp along with anything pushed after it.
func (m *StateManager) Rewind(cp Checkpoint) {
	m.ts.SetPosition(cp.pos)
	m.truncate(cp.depth - 1)
}

// Commit drops cp without moving the cursor.
func (m *StateManager) Commit(cp Checkpoint) {
	m.truncate(cp.depth - 1)
}

func (m *StateManager) truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n > len(m.checkpoints) {
		return
	}
	m.checkpoints = m.checkpoints[:n]
	for label, idx := range m.labels {
		if idx >= n {
			delete(m.labels, label)
		}
	}
}

// SavePosition records the cursor under label, generating a label when it
// is empty, and returns the label used.
func (m *StateManager) SavePosition(label string) string {
	if label == "" {
		m.autoLabels++
		label = fmt.Sprintf("auto_%d", m.autoLabels)
		m.lastAuto = label
	}
	m.checkpoints = append(m.checkpoints, m.ts.Position())
	m.labels[label] = len(m.checkpoints) - 1
	return label
}

// RestorePosition moves the cursor back to the position saved under label,
// or under the most recent generated label when label is empty. The saved
// entry stays available for further restores.
func (m *StateManager) RestorePosition(label string) bool {
	if label == "" {
		label = m.lastAuto
	}
	idx, ok := m.labels[label]
	if !ok {
		return false
	}
	m.ts.SetPosition(m.checkpoints[idx])
	return true
}

// PushPositionHistory saves the cursor for a later PopPositionHistory.
func (m *StateManager) PushPositionHistory() {
	m.Mark()
}

// PopPositionHistory restores the most recently pushed position.
func (m *StateManager) PopPositionHistory() bool {
	if len(m.checkpoints) == 0 {
		return false
	}
	n := len(m.checkpoints)
	m.Rewind(Checkpoint{depth: n, pos: m.checkpoints[n-1]})
	return true
}

// DiscardPositionHistory drops the most recently pushed position, keeping the cursor.
func (m *StateManager) DiscardPositionHistory() bool {
	if len(m.checkpoints) == 0 {
		return false
	}
	m.truncate(len(m.checkpoints) - 1)
	return true
}

// CheckpointDepth reports how many positions are saved.
func (m *StateManager) CheckpointDepth() int {
	return len(m.checkpoints)
}

// Recovery breadcrumbs

func (m *StateManager) AddRecoveryPoint(description string) {
	m.recoveryPoints = append(m.recoveryPoints, RecoveryPoint{
		TokenPos:    m.ts.Position(),
		State:       m.state,
		ScopeLevel:  m.CurrentScopeLevel(),
		Description: description,
	})
	m.stats.Recoveries++
}

func (m *StateManager) RecoveryPoints() []RecoveryPoint {
	return m.recoveryPoints
}

// Statistics

func (m *StateManager) IncrementErrors() {
	m.stats.Errors++
}

func (m *StateManager) IncrementWarnings() {
	m.stats.Warnings++
}

func (m *StateManager) NoteTokens(n int) {
	m.stats.TokensProcessed += n
}

// StartTimer returns a function that adds the elapsed time to op's total.
func (m *StateManager) StartTimer(op string) func() {
	start := time.Now()
	return func() {
		m.stats.Timings[op] += time.Since(start)
	}
}

func (m *StateManager) Stats() Stats {
	timings := make(map[string]time.Duration, len(m.stats.Timings))
	for k, v := range m.stats.Timings {
		timings[k] = v
	}
	s := m.stats
	s.Timings = timings
	return s
}

// Validation

// Validate returns a description of every broken invariant.
func (m *StateManager) Validate() []string {
	var problems []string
	if len(m.scopes) == 0 {
		problems = append(problems, "no global scope")
	} else {
		if m.scopes[0].Level != 0 {
			problems = append(problems, fmt.Sprintf("outermost scope has level %d", m.scopes[0].Level))
		}
		if got := m.CurrentScopeLevel(); got != len(m.scopes)-1 {
			problems = append(problems, fmt.Sprintf("scope level %d with %d scopes", got, len(m.scopes)))
		}
		for i, s := range m.scopes {
			if s.Level != i {
				problems = append(problems, fmt.Sprintf("scope %q at index %d has level %d", s.Name, i, s.Level))
			}
		}
	}
	if m.depth != len(m.contexts) {
		problems = append(problems, fmt.Sprintf("parse depth %d with %d contexts", m.depth, len(m.contexts)))
	}
	if m.ts == nil {
		problems = append(problems, "no token stream bound")
	} else if pos := m.ts.Position(); pos < 0 || pos >= m.ts.Len() {
		problems = append(problems, fmt.Sprintf("cursor %d outside stream of %d tokens", pos, m.ts.Len()))
	}
	for label, idx := range m.labels {
		if idx >= len(m.checkpoints) {
			problems = append(problems, fmt.Sprintf("label %q refers to dropped checkpoint", label))
		}
	}
	sort.Strings(problems)
	return problems
}

func (m *StateManager) IsValid() bool {
	return len(m.Validate()) == 0
}
