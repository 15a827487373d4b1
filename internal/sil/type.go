package sil

import (
	"fmt"
	"unsafe"

	"sable/internal/types"
)

// categoryMask covers the pointer bits reserved for the value category.
const categoryMask = 0b11

// LowBitsAvailable is the number of low pointer bits still free after the
// category tag. External tagged unions holding a Type must consult this.
const LowBitsAvailable = 1

// Type is a canonical lowered type paired with a value category, packed into
// one machine word. Canonical type nodes are heap allocations of at least
// word alignment, so the low two bits of the node pointer are free for the
// category; the tagged pointer still points inside the node allocation and
// therefore keeps it reachable.
//
// The zero value is the null type. Type is trivially copyable, usable as a
// map key, and safe to read from any goroutine; mutable state lives in the
// TypeConverter and the types.Context.
type Type struct {
	value unsafe.Pointer
}

// Reserved sentinel nodes backing the hash-map key patterns. They are never
// interned, so no valid handle can collide with them.
var (
	emptyKeyNode     types.Node
	tombstoneKeyNode types.Node
)

// Primitive forms a Type from a canonical lowered type that needs no special
// handling. Constructing a non-null handle from a non-lowered type (formal
// function types, lvalues, or aggregates containing them) is a programmer
// error and panics.
func Primitive(t *types.Node, category ValueCategory) Type {
	if t == nil {
		return Type{}
	}
	if !t.IsLegalSILType() {
		panic(fmt.Sprintf("sil: constructing Type from %v, which lowering should have eliminated", t))
	}
	return Type{value: unsafe.Add(unsafe.Pointer(t), uintptr(category))}
}

// PrimitiveObject forms the object-category Type for t.
func PrimitiveObject(t *types.Node) Type {
	return Primitive(t, CategoryObject)
}

// PrimitiveAddress forms the address-category Type for t.
func PrimitiveAddress(t *types.Node) Type {
	return Primitive(t, CategoryAddress)
}

// EmptyKey returns the reserved hash-map empty sentinel. It is not a valid
// type; every query on it panics.
func EmptyKey() Type {
	return Type{value: unsafe.Pointer(&emptyKeyNode)}
}

// TombstoneKey returns the reserved hash-map tombstone sentinel.
func TombstoneKey() Type {
	return Type{value: unsafe.Pointer(&tombstoneKeyNode)}
}

// IsNull reports whether this is the null handle.
func (t Type) IsNull() bool {
	return t.value == nil
}

// OpaqueValue exposes the encoded word for hashing and tagged-union use.
func (t Type) OpaqueValue() uintptr {
	return uintptr(t.value)
}

func (t Type) node() *types.Node {
	if t.value == nil {
		return nil
	}
	if t.value == unsafe.Pointer(&emptyKeyNode) || t.value == unsafe.Pointer(&tombstoneKeyNode) {
		panic("sil: reserved hash-map key used as a real type")
	}
	return (*types.Node)(unsafe.Pointer(uintptr(t.value) &^ categoryMask))
}

// ASTType returns the canonical type the handle refers to.
//
// The result may not be a proper formal type: lowering can substitute
// SIL-only nodes, e.g. a SILFunction node for a formal function type. A
// formal type cannot be recovered from a lowered one; callers that need it
// must carry it separately.
func (t Type) ASTType() *types.Node {
	return t.node()
}

// ASTContext returns the interning context of the referenced type.
func (t Type) ASTContext() *types.Context {
	return t.node().Context()
}

// Category returns the handle's value category.
func (t Type) Category() ValueCategory {
	if t.value == nil {
		return CategoryObject
	}
	return ValueCategory(uintptr(t.value) & categoryMask)
}

// WithCategory returns the category-c variant of this type.
func (t Type) WithCategory(c ValueCategory) Type {
	if t.value == nil {
		return Type{}
	}
	return Type{value: unsafe.Add(unsafe.Pointer(t.node()), uintptr(c))}
}

// WithCategoryOf returns the variant matching other's category.
func (t Type) WithCategoryOf(other Type) Type {
	return t.WithCategory(other.Category())
}

// AsAddress returns the address variant of this type. Instructions that
// manipulate memory generally work with object addresses.
func (t Type) AsAddress() Type {
	return t.WithCategory(CategoryAddress)
}

// AsObject returns the object variant of this type. Address-only types are
// not legal to manipulate directly as objects.
func (t Type) AsObject() Type {
	return t.WithCategory(CategoryObject)
}

// IsAddress reports whether the handle carries the address category.
func (t Type) IsAddress() bool {
	return t.Category() == CategoryAddress
}

// IsObject reports whether the handle carries the object category.
func (t Type) IsObject() bool {
	return t.Category() == CategoryObject
}

// Typed accessors over the closed node-kind family -----------------------

// nonSILQueryKind rejects the kinds that can never be SIL value types, so a
// shape query against them is a bug at the call site, not a negative answer.
func nonSILQueryKind(k types.Kind) bool {
	return k == types.KindFunction || k == types.KindLValue
}

// IsKind reports whether the referenced type has the given kind. Querying a
// non-SIL-legal kind panics.
func (t Type) IsKind(k types.Kind) bool {
	if nonSILQueryKind(k) {
		panic(fmt.Sprintf("sil: kind %v can never be a SIL type", k))
	}
	n := t.node()
	return n != nil && n.Kind() == k
}

// AsKind returns the referenced node when it has the given kind, nil
// otherwise. Querying a non-SIL-legal kind panics.
func (t Type) AsKind(k types.Kind) *types.Node {
	if nonSILQueryKind(k) {
		panic(fmt.Sprintf("sil: kind %v can never be a SIL type", k))
	}
	n := t.node()
	if n == nil || n.Kind() != k {
		return nil
	}
	return n
}

// CastToKind returns the referenced node, which must have the given kind.
func (t Type) CastToKind(k types.Kind) *types.Node {
	n := t.AsKind(k)
	if n == nil {
		panic(fmt.Sprintf("sil: cast to %v on %s", k, t))
	}
	return n
}

// FunctionRepresentation returns the representation of the referenced
// function type. The handle must refer to a SIL function type.
func (t Type) FunctionRepresentation() types.Representation {
	return t.CastToKind(types.KindSILFunction).FnInfo().Rep
}
