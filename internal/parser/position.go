// Package parser holds the state a parser keeps alive across multiple
// parses of the same buffer: resume positions, lexical scope snapshots, and
// the queue of declaration bodies whose parsing was deferred.
package parser

import "sable/internal/source"

// Position is a parser resume point: the location of the next token plus
// the location of the token before it, so the resumed parser can recover
// its lookback state. The zero value is the invalid sentinel.
type Position struct {
	Loc     source.Pos
	PrevLoc source.Pos
}

// IsValid reports whether the position can be resumed from.
func (p Position) IsValid() bool {
	return p.Loc.IsValid()
}
