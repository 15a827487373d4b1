package source

import (
	"fmt"
)

// Span is a half-open byte range inside a single source file.
type Span struct {
	File  FileID
	Start uint32 // inclusive
	End   uint32 // exclusive
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// StartPos returns the first position covered by the span.
func (s Span) StartPos() Pos {
	return Pos{File: s.File, Offset: s.Start}
}

// EndPos returns the position one past the last byte of the span.
func (s Span) EndPos() Pos {
	return Pos{File: s.File, Offset: s.End}
}

// Cover extends the span to include other. Spans from different files are
// left untouched.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Contains reports whether the position falls inside the span.
func (s Span) Contains(p Pos) bool {
	return p.File == s.File && p.Offset >= s.Start && p.Offset < s.End
}
