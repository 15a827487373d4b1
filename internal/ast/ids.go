// Package ast defines the arena-style handles the parser state uses to refer
// to declarations without owning them. The declaration graph itself is owned
// by the host; handles here are opaque keys into it.
package ast

type (
	// DeclID identifies a declaration or declaration context.
	DeclID uint32
	// FuncID identifies a function declaration.
	FuncID uint32
)

const (
	NoDeclID DeclID = 0
	NoFuncID FuncID = 0
)

// IsValid reports whether the handle names a real declaration.
func (id DeclID) IsValid() bool { return id != NoDeclID }

// IsValid reports whether the handle names a real function declaration.
func (id FuncID) IsValid() bool { return id != NoFuncID }
