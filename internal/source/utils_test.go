package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
		changed  bool
	}{
		{"no carriage returns", "a\nb\n", "a\nb\n", false},
		{"windows endings", "a\r\nb\r\n", "a\nb\n", true},
		{"lone cr kept", "a\rb", "a\rb", false},
		{"mixed", "a\r\nb\rc\n", "a\nb\rc\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, changed := normalizeCRLF([]byte(tt.in))
			if string(out) != tt.expected || changed != tt.changed {
				t.Fatalf("got (%q, %v), want (%q, %v)", out, changed, tt.expected, tt.changed)
			}
		})
	}
}

func TestRemoveBOM(t *testing.T) {
	out, had := removeBOM([]byte("\xEF\xBB\xBFlet x"))
	if !had || string(out) != "let x" {
		t.Fatalf("BOM not stripped: (%q, %v)", out, had)
	}
	out, had = removeBOM([]byte("let x"))
	if had || string(out) != "let x" {
		t.Fatalf("BOM misdetected: (%q, %v)", out, had)
	}
}

func TestLoadNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.sb")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFlet x = 1\r\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f, _ := fs.Get(id)
	if string(f.Content) != "let x = 1\n" {
		t.Fatalf("content not normalized: %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("normalization flags not set: %v", f.Flags)
	}

	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.sb")); err == nil {
		t.Fatalf("loading a missing file must fail")
	}
}
