package source

import "fmt"

// Pos is a single location inside a source file. The zero value is NoPos,
// the invalid sentinel returned by take-style accessors.
type Pos struct {
	File   FileID
	Offset uint32 // byte offset from the start of the file
}

// NoPos marks the absence of a location.
var NoPos = Pos{}

// IsValid reports whether the position names a real file location.
func (p Pos) IsValid() bool {
	return p.File != NoFileID
}

func (p Pos) String() string {
	if !p.IsValid() {
		return "<invalid>"
	}
	return fmt.Sprintf("%d:%d", p.File, p.Offset)
}

// Before reports whether p precedes other inside the same file.
// Positions in different files are unordered.
func (p Pos) Before(other Pos) bool {
	return p.File == other.File && p.Offset < other.Offset
}
