package parser

import (
	"sable/internal/source"
)

// ScopeKind enumerates the lexical scope categories the parser introduces.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeTopLevel
	ScopeFunctionBody
	ScopeGenerics
	ScopeBrace
	ScopeClosure
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeTopLevel:
		return "toplevel"
	case ScopeFunctionBody:
		return "functionbody"
	case ScopeGenerics:
		return "generics"
	case ScopeBrace:
		return "brace"
	case ScopeClosure:
		return "closure"
	default:
		return "invalid"
	}
}

// scopeFrame is one level of the live scope chain.
type scopeFrame struct {
	kind  ScopeKind
	names map[string]source.StringID
}

func (f *scopeFrame) clone() scopeFrame {
	out := scopeFrame{kind: f.kind}
	if len(f.names) > 0 {
		out.names = make(map[string]source.StringID, len(f.names))
		for k, v := range f.names {
			out.names[k] = v
		}
	}
	return out
}

// ScopeInfo is the live, mutable lexical scope chain the parser pushes and
// pops while walking a file. Snapshots taken from it restore the whole
// chain later, when a deferred body is finally parsed.
type ScopeInfo struct {
	frames []scopeFrame
}

// PushScope enters a new innermost scope.
func (si *ScopeInfo) PushScope(kind ScopeKind) {
	si.frames = append(si.frames, scopeFrame{kind: kind})
}

// PopScope leaves the innermost scope. Popping an empty chain panics.
func (si *ScopeInfo) PopScope() {
	if len(si.frames) == 0 {
		panic("parser: PopScope on empty scope chain")
	}
	si.frames = si.frames[:len(si.frames)-1]
}

// AddToScope declares a name in the innermost scope.
func (si *ScopeInfo) AddToScope(name string, sym source.StringID) {
	if len(si.frames) == 0 {
		panic("parser: AddToScope with no open scope")
	}
	top := &si.frames[len(si.frames)-1]
	if top.names == nil {
		top.names = make(map[string]source.StringID)
	}
	top.names[name] = sym
}

// Lookup resolves a name against the chain, innermost first.
func (si *ScopeInfo) Lookup(name string) (source.StringID, bool) {
	for i := len(si.frames) - 1; i >= 0; i-- {
		if id, ok := si.frames[i].names[name]; ok {
			return id, true
		}
	}
	return source.NoStringID, false
}

// Depth returns the number of open scopes.
func (si *ScopeInfo) Depth() int {
	return len(si.frames)
}

// InnermostKind returns the kind of the innermost open scope.
func (si *ScopeInfo) InnermostKind() ScopeKind {
	if len(si.frames) == 0 {
		return ScopeInvalid
	}
	return si.frames[len(si.frames)-1].kind
}

// CaptureScope snapshots the current chain. The snapshot is a move-only
// resource: it restores exactly once.
func (si *ScopeInfo) CaptureScope() SavedScope {
	frames := make([]scopeFrame, len(si.frames))
	for i := range si.frames {
		frames[i] = si.frames[i].clone()
	}
	return SavedScope{frames: frames, live: true}
}

// SavedScope is a captured scope chain. The zero value is the consumed
// (empty) snapshot; restoring it, or restoring any snapshot twice, panics.
type SavedScope struct {
	frames []scopeFrame
	live   bool
}

// IsLive reports whether the snapshot can still be restored.
func (s *SavedScope) IsLive() bool {
	return s.live
}

// Restore replaces the live chain with the captured one and consumes the
// snapshot.
func (s *SavedScope) Restore(si *ScopeInfo) {
	if !s.live {
		panic("parser: SavedScope restored twice")
	}
	si.frames = s.frames
	s.frames = nil
	s.live = false
}
