package sil

import (
	"sable/internal/types"
)

// Subst rebuilds the referenced type with generic parameters and archetypes
// replaced, preserving the value category. The conformance callback, when
// non-nil, is consulted for every constraint a replaced archetype carried.
func (t Type) Subst(tc *TypeConverter, subs types.SubstitutionFn, conf types.ConformanceLookupFn, opts types.SubstOptions) Type {
	n := t.node()
	if n == nil {
		return Type{}
	}
	return Primitive(tc.Lower(tc.Context().Subst(n, subs, conf, opts)), t.Category())
}

// SubstMap is the shorthand substitution over a direct parameter-to-type
// map.
func (t Type) SubstMap(tc *TypeConverter, subs types.SubstMap) Type {
	return t.Subst(tc, subs.Fn(), nil, types.SubstOptions{})
}

// SubstGenericArgs replaces the interface generic arguments of the
// referenced function type. Only valid on function types.
func (t Type) SubstGenericArgs(tc *TypeConverter, subs types.SubstMap) Type {
	n := t.CastToKind(types.KindSILFunction)
	return Primitive(tc.Context().SubstGenericArgs(n, subs), t.Category())
}
