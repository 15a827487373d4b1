package sil

import (
	"fmt"
	"io"
	"os"
)

// String renders the handle in SIL syntax: $T for objects, $*T for
// addresses.
func (t Type) String() string {
	if t.value == nil {
		return "$<null>"
	}
	if t.IsAddress() {
		return "$*" + t.node().String()
	}
	return "$" + t.node().String()
}

// Print writes the rendered type to w.
func (t Type) Print(w io.Writer) {
	fmt.Fprint(w, t.String())
}

// Dump writes the rendered type and a newline to stderr.
func (t Type) Dump() {
	fmt.Fprintln(os.Stderr, t.String())
}

// MangledName returns the diagnostic mangling of the referenced type,
// without the global prefix.
func (t Type) MangledName() string {
	return t.node().MangledName()
}
