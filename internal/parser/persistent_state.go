package parser

import (
	"fmt"

	"sable/internal/ast"
	"sable/internal/source"
)

// DelayedDeclKind tags what kind of body a delayed decl state holds.
type DelayedDeclKind uint8

const (
	DelayedTopLevelCode DelayedDeclKind = iota
	DelayedDecl
	DelayedFunctionBody
)

func (k DelayedDeclKind) String() string {
	switch k {
	case DelayedTopLevelCode:
		return "toplevelcode"
	case DelayedDecl:
		return "decl"
	case DelayedFunctionBody:
		return "functionbody"
	default:
		return fmt.Sprintf("DelayedDeclKind(%d)", k)
	}
}

// FunctionBodyState remembers everything needed to come back and parse a
// skipped function body: where to resume and the scope chain that was live
// at the opening brace.
type FunctionBodyState struct {
	BodyPos Position
	scope   SavedScope
}

// TakeScope moves the captured scope chain out of the state. It can be
// taken once.
func (s *FunctionBodyState) TakeScope() SavedScope {
	out := s.scope
	s.scope = SavedScope{}
	return out
}

// DelayedDeclState is the record kept for the single declaration enclosing
// the code-completion point whose parsing was deferred.
type DelayedDeclState struct {
	Kind          DelayedDeclKind
	Flags         uint32
	ParentContext ast.DeclID
	BodyPos       Position
	BodyEnd       source.Pos
	scope         SavedScope
}

// TakeScope moves the captured scope chain out of the state. It can be
// taken once.
func (s *DelayedDeclState) TakeScope() SavedScope {
	out := s.scope
	s.scope = SavedScope{}
	return out
}

// PersistentParserState is the parser state kept alive across multiple
// parses of the same buffer. It owns the live scope chain, the skipped
// function bodies, the single code-completion delayed decl, the queue of
// skipped member lists, and the marked resume position. It is a pure
// container: it never fails, and replay errors belong to the parser.
//
// One parser owns the state at a time; nothing here is safe for concurrent
// use.
type PersistentParserState struct {
	// InPoundLineEnvironment tracks whether the marked position sits inside
	// a #line region.
	InPoundLineEnvironment bool

	// PerformConditionEvaluation controls whether conditional-compilation
	// branches are evaluated. The state stores the bit for the parser; it
	// does not interpret it.
	// TODO: drop once condition evaluation moves to a later phase and
	// performParseOnly clients are adjusted.
	PerformConditionEvaluation bool

	scopeInfo ScopeInfo

	delayedFunctionBodies map[ast.FuncID]*FunctionBodyState

	// markedPos is set by the parser when it stopped before the buffer end.
	markedPos Position

	codeCompletionDelayedDecl *DelayedDeclState

	delayedDeclLists []ast.DeclID

	// topLevel is the local context for all top-level code.
	topLevel TopLevelContext
}

// NewPersistentParserState creates an empty state.
func NewPersistentParserState() *PersistentParserState {
	return &PersistentParserState{
		PerformConditionEvaluation: true,
		delayedFunctionBodies:      make(map[ast.FuncID]*FunctionBodyState),
	}
}

// ScopeInfo returns the live scope registry.
func (ps *PersistentParserState) ScopeInfo() *ScopeInfo {
	return &ps.scopeInfo
}

// TopLevelContext returns the local context for top-level code.
func (ps *PersistentParserState) TopLevelContext() *TopLevelContext {
	return &ps.topLevel
}

// Deferral -------------------------------------------------------------------

// DelayDecl records the declaration enclosing the code-completion point for
// later parsing, capturing the live scope chain. A second delay before the
// first is taken is a parser bug and panics.
func (ps *PersistentParserState) DelayDecl(kind DelayedDeclKind, flags uint32, parent ast.DeclID, body source.Span, prevLoc source.Pos) {
	if ps.codeCompletionDelayedDecl != nil {
		panic("parser: code-completion delayed decl already pending")
	}
	ps.codeCompletionDelayedDecl = &DelayedDeclState{
		Kind:          kind,
		Flags:         flags,
		ParentContext: parent,
		BodyPos:       Position{Loc: body.StartPos(), PrevLoc: prevLoc},
		BodyEnd:       body.EndPos(),
		scope:         ps.scopeInfo.CaptureScope(),
	}
}

// DelayTopLevel records skipped top-level code enclosing the
// code-completion point.
func (ps *PersistentParserState) DelayTopLevel(decl ast.DeclID, body source.Span, prevLoc source.Pos) {
	ps.DelayDecl(DelayedTopLevelCode, 0, decl, body, prevLoc)
}

// DelayFunctionBodyParsing records a skipped function body. Each function
// can be delayed at most once.
func (ps *PersistentParserState) DelayFunctionBodyParsing(fn ast.FuncID, body source.Span, prevLoc source.Pos) {
	if _, dup := ps.delayedFunctionBodies[fn]; dup {
		panic(fmt.Sprintf("parser: function %d body delayed twice", fn))
	}
	ps.delayedFunctionBodies[fn] = &FunctionBodyState{
		BodyPos: Position{Loc: body.StartPos(), PrevLoc: prevLoc},
		scope:   ps.scopeInfo.CaptureScope(),
	}
}

// HasDelayedFunctionBody reports whether fn's body is waiting to be parsed.
func (ps *PersistentParserState) HasDelayedFunctionBody(fn ast.FuncID) bool {
	_, ok := ps.delayedFunctionBodies[fn]
	return ok
}

// TakeFunctionBodyState transfers ownership of fn's delayed body record to
// the caller, or returns nil when none is pending.
func (ps *PersistentParserState) TakeFunctionBodyState(fn ast.FuncID) *FunctionBodyState {
	s, ok := ps.delayedFunctionBodies[fn]
	if !ok {
		return nil
	}
	delete(ps.delayedFunctionBodies, fn)
	return s
}

// DelayDeclList queues an iterable declaration context whose member list
// was skipped. Order of calls is the order of replay.
func (ps *PersistentParserState) DelayDeclList(d ast.DeclID) {
	ps.delayedDeclLists = append(ps.delayedDeclLists, d)
}

// Resumption -----------------------------------------------------------------

// HasDelayedDecl reports whether a code-completion delayed decl is pending.
func (ps *PersistentParserState) HasDelayedDecl() bool {
	return ps.codeCompletionDelayedDecl != nil
}

// DelayedDeclKind returns the pending decl's kind without consuming it.
func (ps *PersistentParserState) DelayedDeclKind() DelayedDeclKind {
	return ps.codeCompletionDelayedDecl.Kind
}

// DelayedDeclLoc returns the pending decl's body start without consuming it.
func (ps *PersistentParserState) DelayedDeclLoc() source.Pos {
	return ps.codeCompletionDelayedDecl.BodyPos.Loc
}

// DelayedDeclContext returns the pending decl's parent context without
// consuming it.
func (ps *PersistentParserState) DelayedDeclContext() ast.DeclID {
	return ps.codeCompletionDelayedDecl.ParentContext
}

// TakeDelayedDeclState transfers ownership of the pending record to the
// caller and empties the slot.
func (ps *PersistentParserState) TakeDelayedDeclState() *DelayedDeclState {
	s := ps.codeCompletionDelayedDecl
	ps.codeCompletionDelayedDecl = nil
	return s
}

// ParseAllDelayedDeclLists drains the queued member lists in insertion
// order, handing each context to parse. An entry leaves the queue only
// after parse succeeds; on error the failed entry and everything after it
// stay queued and the error is returned.
func (ps *PersistentParserState) ParseAllDelayedDeclLists(parse func(ast.DeclID) error) error {
	for len(ps.delayedDeclLists) > 0 {
		d := ps.delayedDeclLists[0]
		if err := parse(d); err != nil {
			return fmt.Errorf("parsing delayed member list of decl %d: %w", d, err)
		}
		ps.delayedDeclLists = ps.delayedDeclLists[1:]
	}
	return nil
}

// PendingDeclLists returns the number of queued member lists.
func (ps *PersistentParserState) PendingDeclLists() int {
	return len(ps.delayedDeclLists)
}

// Marked position ------------------------------------------------------------

// MarkParserPosition stores the resume position; the last write wins.
func (ps *PersistentParserState) MarkParserPosition(pos Position, inPoundLineEnvironment bool) {
	ps.markedPos = pos
	ps.InPoundLineEnvironment = inPoundLineEnvironment
}

// TakeParserPosition returns the marked position and resets it; a second
// take yields the invalid sentinel.
func (ps *PersistentParserState) TakeParserPosition() Position {
	pos := ps.markedPos
	ps.markedPos = Position{}
	return pos
}
