package version

import (
	"strings"
	"testing"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"no escapes", "0.1.0-dev", "0.1.0-dev"},
		{"colored components", "\x1b[33;1m0\x1b[0m.\x1b[32;1m1\x1b[0m.\x1b[34;1m0\x1b[0m-dev", "0.1.0-dev"},
		{"escape at end", "0.1.0\x1b[0m", "0.1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripANSI(tt.in); got != tt.expected {
				t.Fatalf("stripANSI(%q) = %q, want %q", tt.in, got, tt.expected)
			}
		})
	}
}

func TestPlainFollowsVersion(t *testing.T) {
	if strings.ContainsRune(Plain(), '\x1b') {
		t.Fatalf("Plain() must not contain ANSI escapes: %q", Plain())
	}
	if Plain() == "" {
		t.Fatalf("version must not be empty")
	}

	old := Version
	defer func() { Version = old }()
	Version = "\x1b[33;1m9\x1b[0m.9.9"
	if Plain() != "9.9.9" {
		t.Fatalf("Plain() must track Version, got %q", Plain())
	}
}
