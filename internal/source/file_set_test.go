package source

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFileSetAdd(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.sb", []byte("let x = 1\nlet y = 2\n"))
	if id == NoFileID {
		t.Fatalf("expected a valid FileID")
	}
	f, ok := fs.Get(id)
	if !ok {
		t.Fatalf("file not found by id")
	}
	if f.Flags&FileVirtual == 0 {
		t.Fatalf("virtual flag not set")
	}
	if _, ok := fs.Get(NoFileID); ok {
		t.Fatalf("NoFileID must not resolve")
	}
}

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.sb", []byte("ab\ncd\nef"))

	tests := []struct {
		off      uint32
		expected LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{1, LineCol{Line: 1, Col: 2}},
		{3, LineCol{Line: 2, Col: 1}},
		{4, LineCol{Line: 2, Col: 2}},
		{6, LineCol{Line: 3, Col: 1}},
	}
	for _, tt := range tests {
		got := fs.Resolve(Pos{File: id, Offset: tt.off})
		if diff := cmp.Diff(tt.expected, got); diff != "" {
			t.Fatalf("Resolve(%d) mismatch (-want +got):\n%s", tt.off, diff)
		}
	}
}

func TestFileSetByPathKeepsLatest(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("a.sb", []byte("old"))
	id2 := fs.AddVirtual("a.sb", []byte("new"))
	f, ok := fs.ByPath("a.sb")
	if !ok || f.ID != id2 {
		t.Fatalf("ByPath should return the latest version")
	}
}

func TestInternerRoundTrip(t *testing.T) {
	in := NewInterner()
	a := in.Intern("hello")
	b := in.Intern("hello")
	if a != b {
		t.Fatalf("same string must intern to the same id")
	}
	if s := in.MustLookup(a); s != "hello" {
		t.Fatalf("lookup returned %q", s)
	}
	if got, _ := in.Lookup(NoStringID); got != "" {
		t.Fatalf("NoStringID must map to the empty string")
	}
}
