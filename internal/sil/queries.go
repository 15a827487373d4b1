package sil

import (
	"sable/internal/types"
)

// Structural predicates -----------------------------------------------------

// IsVoid reports whether the referenced type is the empty tuple.
func (t Type) IsVoid() bool {
	n := t.node()
	return n != nil && n.IsVoid()
}

// IsAnyObject reports whether this is the AnyObject type.
func (t Type) IsAnyObject() bool {
	n := t.node()
	return n != nil && n.IsAnyObject()
}

// HasReferenceSemantics reports whether the referenced AST type has
// reference semantics, even when the lowered type is known to be trivial.
func (t Type) HasReferenceSemantics() bool {
	return t.node().HasReferenceSemantics()
}

// IsAnyClassReferenceType reports whether the referenced type is a
// class-reference type: reference semantics and not a function type.
func (t Type) IsAnyClassReferenceType() bool {
	return t.node().IsAnyClassReferenceType()
}

// HasRetainablePointerRepresentation reports whether values are guaranteed
// to be a single retainable pointer.
func (t Type) HasRetainablePointerRepresentation() bool {
	return t.node().HasRetainablePointerRepresentation()
}

// IsExistentialType reports whether the referenced type is an existential.
func (t Type) IsExistentialType() bool {
	return t.node().IsExistential()
}

// IsAnyExistentialType also admits existential metatypes.
func (t Type) IsAnyExistentialType() bool {
	return t.node().IsAnyExistential()
}

// IsClassExistentialType reports whether the referenced type is a
// class-constrained existential.
func (t Type) IsClassExistentialType() bool {
	return t.node().IsClassExistential()
}

// IsOpenedExistential reports whether the referenced type is an archetype
// opened from an existential.
func (t Type) IsOpenedExistential() bool {
	return t.node().IsOpenedExistential()
}

// HasOpenedExistential reports whether the referenced type mentions an
// opened existential anywhere.
func (t Type) HasOpenedExistential() bool {
	return t.node().HasOpenedExistential()
}

// HasTypeParameter reports whether the referenced type mentions an interface
// generic parameter.
func (t Type) HasTypeParameter() bool {
	return t.node().HasTypeParameter()
}

// HasArchetype reports whether the referenced type mentions an archetype.
func (t Type) HasArchetype() bool {
	return t.node().HasArchetype()
}

// IsBridgeableObjectType reports whether the referenced type bridges to an
// object pointer without conversion.
func (t Type) IsBridgeableObjectType() bool {
	return t.node().IsBridgeableObjectType()
}

// IsClassOrClassMetatypeNode reports whether the node is a class or a
// metatype of a class.
func IsClassOrClassMetatypeNode(n *types.Node) bool {
	switch n.Kind() {
	case types.KindMetatype, types.KindExistentialMetatype:
		return n.Elem().ClassOrBoundGenericClass() != nil
	default:
		return n.ClassOrBoundGenericClass() != nil
	}
}

// IsClassOrClassMetatype reports whether this is an object handle for a
// class or class metatype.
func (t Type) IsClassOrClassMetatype() bool {
	return t.IsObject() && IsClassOrClassMetatypeNode(t.node())
}

// ClassOrBoundGenericClass returns the class declaration, if any.
func (t Type) ClassOrBoundGenericClass() *types.Decl {
	return t.node().ClassOrBoundGenericClass()
}

// StructOrBoundGenericStruct returns the struct declaration, if any.
func (t Type) StructOrBoundGenericStruct() *types.Decl {
	return t.node().StructOrBoundGenericStruct()
}

// EnumOrBoundGenericEnum returns the enum declaration, if any.
func (t Type) EnumOrBoundGenericEnum() *types.Decl {
	return t.node().EnumOrBoundGenericEnum()
}

// NominalOrBoundGenericNominal returns the nominal declaration, if any.
func (t Type) NominalOrBoundGenericNominal() *types.Decl {
	return t.node().NominalOrBoundGenericNominal()
}

// Lowering-sensitive predicates ---------------------------------------------

// IsAddressOnly reports whether the type, or the referenced type of an
// address handle, must be manipulated through memory in f.
func (t Type) IsAddressOnly(f *Function) bool {
	return f.module.converter.IsAddressOnly(t.node(), f.expansion)
}

// IsLoadable is the complement of IsAddressOnly.
func (t Type) IsLoadable(f *Function) bool {
	return !t.IsAddressOnly(f)
}

// IsLoadableOrOpaque reports whether the type is loadable or the module runs
// with lowered addresses.
func (t Type) IsLoadableOrOpaque(f *Function) bool {
	return t.IsLoadable(f) || f.module.UseLoweredAddresses()
}

// IsTrivial reports whether the underlying type is loadable in f and needs
// no work to copy, move, or destroy. Address handles report false even when
// the pointee is trivial.
func (t Type) IsTrivial(f *Function) bool {
	if t.IsAddress() {
		return false
	}
	return f.module.converter.IsTrivial(t.node(), f.expansion)
}

// IsReferenceCounted reports whether the referenced type is a scalar
// reference-counted value such as a class, box, or thick function.
func (t Type) IsReferenceCounted(m *Module) bool {
	return m.converter.IsReferenceCounted(t.node())
}

// IsNoReturnFunction reports whether the referenced type is a function type
// statically known not to return.
func (t Type) IsNoReturnFunction(m *Module) bool {
	if info := t.node().FnInfo(); info != nil {
		return info.NoReturn
	}
	return false
}

// IsPointerSizeAndAligned reports whether the representation has at least
// the size and alignment of a native pointer.
func (t Type) IsPointerSizeAndAligned() bool {
	n := t.node()
	switch n.Kind() {
	case types.KindBuiltinRawPointer:
		return true
	case types.KindBuiltinInteger:
		w := n.IntegerWidth()
		return w == types.WordWidth || w >= n.Context().PointerBits
	default:
		return t.IsHeapObjectReferenceType()
	}
}

// IsBlockPointerCompatible reports whether the type is a block or an
// Optional with a block payload. Only one optionality level is looked
// through.
func (t Type) IsBlockPointerCompatible() bool {
	n := t.node()
	if payload := n.OptionalObject(); payload != nil {
		n = payload
	}
	info := n.FnInfo()
	if info == nil {
		return false
	}
	return info.Rep == types.RepBlock
}

// IsHeapObjectReferenceType reports whether the referenced type is a single
// heap pointer at runtime. Class existentials with witness tables do not
// qualify; the bare AnyObject or single class bound does.
func (t Type) IsHeapObjectReferenceType() bool {
	n := t.node()
	switch n.Kind() {
	case types.KindClass, types.KindSILBox,
		types.KindBuiltinNativeObject, types.KindBuiltinBridgeObject:
		return true
	case types.KindArchetype:
		return n.RequiresClass()
	case types.KindExistential:
		return n.IsAnyObject() || (n.Superclass() != nil && len(n.Protocols()) == 0)
	default:
		return false
	}
}

// Aggregate decomposition ---------------------------------------------------

// FieldType returns the lowered type of a stored property of a struct or
// class, substitutions applied. The result is an address handle when the
// base is an address handle or a class; otherwise an object handle.
func (t Type) FieldType(field int, tc *TypeConverter) Type {
	n := t.node()
	lowered := tc.LoweredFieldType(n, field)
	if t.IsAddress() || n.ClassOrBoundGenericClass() != nil {
		return PrimitiveAddress(lowered)
	}
	return PrimitiveObject(lowered)
}

// EnumElementType returns the lowered payload type of an enum case,
// substitutions applied, preserving the base's category.
func (t Type) EnumElementType(elt int, tc *TypeConverter) Type {
	return Primitive(tc.LoweredEnumPayloadType(t.node(), elt), t.Category())
}

// TupleElementType returns the i-th tuple element, preserving category.
func (t Type) TupleElementType(i int) Type {
	return Primitive(t.CastToKind(types.KindTuple).TupleElem(i), t.Category())
}

// NumTupleElements returns the tuple arity, or 0 for non-tuples.
func (t Type) NumTupleElements() int {
	return t.node().NumTupleElems()
}

// ReferenceStorageReferent looks through weak/unowned wrappers, preserving
// category.
func (t Type) ReferenceStorageReferent() Type {
	return Primitive(t.node().ReferenceStorageReferent(), t.Category())
}

// OptionalObjectType returns the lowered T for Optional<T>, preserving
// category, or the null handle for non-optionals.
func (t Type) OptionalObjectType() Type {
	if payload := t.node().OptionalObject(); payload != nil {
		return Primitive(payload, t.Category())
	}
	return Type{}
}

// UnwrapOptionalType unwraps one optionality level, or returns the type
// unchanged when it is not optional.
func (t Type) UnwrapOptionalType() Type {
	if unwrapped := t.OptionalObjectType(); !unwrapped.IsNull() {
		return unwrapped
	}
	return t
}

// Superclass returns the immediate superclass as an object handle, or the
// null handle for root classes and non-classes.
func (t Type) Superclass() Type {
	super := t.node().Superclass()
	if super == nil {
		return Type{}
	}
	return PrimitiveObject(super)
}

// Subtype predicates --------------------------------------------------------

// IsExactSuperclassOf reports whether other's referenced type is this exact
// class or one of its subclasses. Categories are ignored.
func (t Type) IsExactSuperclassOf(other Type) bool {
	self := t.node()
	for n := other.node(); n != nil; n = n.Superclass() {
		if n == self {
			return true
		}
	}
	return false
}

// IsBindableToSuperclassOf reports whether archetypes in this type could be
// bound so that it becomes a superclass of other. Categories are ignored.
func (t Type) IsBindableToSuperclassOf(other Type) bool {
	pattern := t.node()
	for n := other.node(); n != nil; n = n.Superclass() {
		if bindableTo(pattern, n) {
			return true
		}
	}
	return false
}

// bindableTo reports whether pattern can match concrete with archetypes and
// generic parameters in pattern binding freely.
func bindableTo(pattern, concrete *types.Node) bool {
	if pattern == concrete {
		return true
	}
	switch pattern.Kind() {
	case types.KindArchetype, types.KindGenericParam:
		return true
	}
	if pattern.Kind() != concrete.Kind() {
		return false
	}
	if d := pattern.NominalOrBoundGenericNominal(); d != nil {
		if d != concrete.NominalOrBoundGenericNominal() {
			return false
		}
		pa, ca := pattern.GenericArgs(), concrete.GenericArgs()
		if len(pa) != len(ca) {
			return false
		}
		for i := range pa {
			if !bindableTo(pa[i], ca[i]) {
				return false
			}
		}
		return true
	}
	if pattern.Kind() == types.KindOptional {
		return bindableTo(pattern.OptionalObject(), concrete.OptionalObject())
	}
	return false
}

// Casting -------------------------------------------------------------------

// CanRefCast reports whether a value of src can be cast to dst as a single
// reference value, validating ref_cast-style instructions. One optionality
// level is looked through on both sides.
func CanRefCast(src, dst Type, m *Module) bool {
	if src.IsNull() || dst.IsNull() {
		return false
	}
	if !src.IsObject() || !dst.IsObject() {
		return false
	}
	return refCastable(src.node()) && refCastable(dst.node())
}

func refCastable(n *types.Node) bool {
	if payload := n.OptionalObject(); payload != nil {
		n = payload
	}
	switch n.Kind() {
	case types.KindBuiltinNativeObject, types.KindBuiltinBridgeObject:
		return true
	default:
		return n.HasRetainablePointerRepresentation()
	}
}

// Abstraction ---------------------------------------------------------------

// HasAbstractionDifference reports whether this type and other, lowerings of
// the same formal type under the given function representation, need a
// re-abstraction thunk to convert between.
func (t Type) HasAbstractionDifference(rep types.Representation, other Type) bool {
	// C-derived conventions have no abstraction patterns to differ in.
	if rep == types.RepCFunctionPointer || rep == types.RepBlock {
		return false
	}
	return abstractionDiffers(t.node(), other.node())
}

func abstractionDiffers(a, b *types.Node) bool {
	if a == b {
		return false
	}
	if a == nil || b == nil {
		return true
	}
	// A substituted archetype against anything concrete re-abstracts.
	if a.Kind() == types.KindArchetype || b.Kind() == types.KindArchetype ||
		a.Kind() == types.KindGenericParam || b.Kind() == types.KindGenericParam {
		return true
	}
	if a.Kind() != b.Kind() {
		return true
	}
	switch a.Kind() {
	case types.KindTuple:
		if a.NumTupleElems() != b.NumTupleElems() {
			return true
		}
		for i := 0; i < a.NumTupleElems(); i++ {
			if abstractionDiffers(a.TupleElem(i), b.TupleElem(i)) {
				return true
			}
		}
		return false
	case types.KindOptional:
		return abstractionDiffers(a.OptionalObject(), b.OptionalObject())
	case types.KindSILFunction:
		ai, bi := a.FnInfo(), b.FnInfo()
		if ai.Rep != bi.Rep || len(ai.Params) != len(bi.Params) {
			return true
		}
		for i := range ai.Params {
			if abstractionDiffers(ai.Params[i], bi.Params[i]) {
				return true
			}
		}
		return abstractionDiffers(ai.Result, bi.Result)
	default:
		return true
	}
}

// Aggregate containment -----------------------------------------------------

// AggregateContainsRecord reports whether needle occurs as a field or
// element of this aggregate at any depth.
func (t Type) AggregateContainsRecord(needle Type, m *Module) bool {
	tc := m.converter
	seen := map[Type]bool{}
	worklist := []Type{t}
	for len(worklist) > 0 {
		cur := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		if cur == needle {
			return true
		}
		n := cur.node()
		switch n.Kind() {
		case types.KindTuple:
			for i := 0; i < n.NumTupleElems(); i++ {
				worklist = append(worklist, cur.TupleElementType(i))
			}
		case types.KindStruct, types.KindClass:
			decl := n.NominalOrBoundGenericNominal()
			for i := range decl.Fields {
				worklist = append(worklist, cur.FieldType(i, tc))
			}
		case types.KindEnum:
			decl := n.EnumOrBoundGenericEnum()
			for i := range decl.Cases {
				if decl.Cases[i].Payload != nil {
					worklist = append(worklist, cur.EnumElementType(i, tc))
				}
			}
		case types.KindOptional:
			worklist = append(worklist, cur.OptionalObjectType())
		}
	}
	return false
}

// AggregateHasUnreferenceableStorage reports whether the aggregate contains
// storage SIL cannot destructure, at any depth.
func (t Type) AggregateHasUnreferenceableStorage() bool {
	return hasUnreferenceableStorage(t.node())
}

func hasUnreferenceableStorage(n *types.Node) bool {
	switch n.Kind() {
	case types.KindStruct:
		decl := n.StructOrBoundGenericStruct()
		if decl.HasUnreferenceableStorage {
			return true
		}
		for i := range decl.Fields {
			if hasUnreferenceableStorage(decl.Fields[i].Type) {
				return true
			}
		}
		return false
	case types.KindTuple:
		for i := 0; i < n.NumTupleElems(); i++ {
			if hasUnreferenceableStorage(n.TupleElem(i)) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Verification --------------------------------------------------------------

// IsLoweringOf reports whether this type is a plausible lowering of the
// formal type. Meant for assertions and the verifier.
func (t Type) IsLoweringOf(m *Module, formal *types.Node) bool {
	n := t.node()
	if n == formal {
		return true
	}
	if formal == nil {
		return false
	}
	return m.converter.Lower(formal) == n
}
