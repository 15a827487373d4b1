package parser

// LocalContext allots the discriminators that keep same-named local
// declarations and anonymous closures apart within one context.
type LocalContext struct {
	named    map[string]uint32
	closures uint32
}

// ClaimNextNamedDiscriminator returns the next discriminator for a local
// declaration with the given name.
func (lc *LocalContext) ClaimNextNamedDiscriminator(name string) uint32 {
	if lc.named == nil {
		lc.named = make(map[string]uint32)
	}
	n := lc.named[name]
	lc.named[name] = n + 1
	return n
}

// ClaimNextClosureDiscriminator returns the next discriminator for an
// anonymous closure.
func (lc *LocalContext) ClaimNextClosureDiscriminator() uint32 {
	n := lc.closures
	lc.closures++
	return n
}

// HasLocals reports whether anything was allotted in this context.
func (lc *LocalContext) HasLocals() bool {
	return lc.closures > 0 || len(lc.named) > 0
}

// TopLevelContext is the local context shared by all top-level code in a
// parse session.
type TopLevelContext struct {
	LocalContext
}
