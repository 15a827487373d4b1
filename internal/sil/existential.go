package sil

import (
	"sable/internal/types"
)

// PreferredExistentialRepresentation returns the representation an
// existential container should use. When the concrete contained type is
// known, a more specialized representation may be returned; contained may be
// nil for the general answer. Non-existential types yield ReprNone.
func (t Type) PreferredExistentialRepresentation(contained *types.Node) ExistentialRepresentation {
	n := t.node()
	if n == nil {
		return ReprNone
	}
	switch {
	case n.Kind() == types.KindExistentialMetatype:
		return ReprMetatype
	case !n.IsExistential():
		return ReprNone
	case n.IsClassExistential():
		return ReprClass
	case n.IsErrorExistential():
		// The error box can directly adopt a class reference.
		if contained != nil && contained.IsAnyClassReferenceType() {
			return ReprClass
		}
		return ReprBoxed
	default:
		return ReprOpaque
	}
}

// CanUseExistentialRepresentation reports whether values of contained (or of
// an unknown type when contained is nil) may be stored through repr in this
// existential.
func (t Type) CanUseExistentialRepresentation(repr ExistentialRepresentation, contained *types.Node) bool {
	n := t.node()
	switch repr {
	case ReprNone:
		return n == nil || !n.IsAnyExistential()
	case ReprOpaque:
		return n != nil && n.IsExistential() && !n.IsClassExistential() && !n.IsErrorExistential()
	case ReprClass:
		if n == nil {
			return false
		}
		if n.IsClassExistential() {
			return true
		}
		// The boxed error existential can adopt a class reference directly.
		return n.IsErrorExistential() && contained != nil && contained.IsAnyClassReferenceType()
	case ReprMetatype:
		return n != nil && n.Kind() == types.KindExistentialMetatype
	case ReprBoxed:
		return n != nil && n.IsErrorExistential()
	default:
		return false
	}
}
