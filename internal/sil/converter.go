package sil

import (
	"fmt"

	"sable/internal/types"
)

// TypeConverter is the lowering oracle the type handle consults for
// questions that depend on layout rather than on type structure alone:
// address-onlyness, trivialness, reference counting, field lowering, and
// formal-to-lowered conversion. Results are cached per node.
type TypeConverter struct {
	ctx *types.Context

	addressOnly [2]map[*types.Node]bool // indexed by ResilienceExpansion
	trivial     [2]map[*types.Node]bool
	lowered     map[*types.Node]*types.Node
}

// NewTypeConverter creates a converter over the given type context.
func NewTypeConverter(ctx *types.Context) *TypeConverter {
	return &TypeConverter{
		ctx: ctx,
		addressOnly: [2]map[*types.Node]bool{
			make(map[*types.Node]bool),
			make(map[*types.Node]bool),
		},
		trivial: [2]map[*types.Node]bool{
			make(map[*types.Node]bool),
			make(map[*types.Node]bool),
		},
		lowered: make(map[*types.Node]*types.Node),
	}
}

// Context returns the canonical type context.
func (tc *TypeConverter) Context() *types.Context { return tc.ctx }

// IsLegalSILType reports whether the node may appear as a SIL value type.
func (tc *TypeConverter) IsLegalSILType(n *types.Node) bool {
	return n != nil && n.IsLegalSILType()
}

// IsAddressOnly reports whether values of the type must always be
// manipulated through their address under the given expansion.
func (tc *TypeConverter) IsAddressOnly(n *types.Node, expansion ResilienceExpansion) bool {
	cache := tc.addressOnly[expansion]
	if v, ok := cache[n]; ok {
		return v
	}
	// Seed false to terminate on cyclic aggregates; a cycle through a
	// loadable edge never makes a type address-only.
	cache[n] = false
	v := tc.computeAddressOnly(n, expansion)
	cache[n] = v
	return v
}

func (tc *TypeConverter) computeAddressOnly(n *types.Node, expansion ResilienceExpansion) bool {
	switch n.Kind() {
	case types.KindGenericParam:
		return true

	case types.KindArchetype:
		// Class-bound archetypes are a single reference.
		return !n.RequiresClass()

	case types.KindExistential:
		// Class existentials and the boxed error existential are scalar
		// references; everything else lives in an opaque buffer.
		return !n.RequiresClass() && !n.IsErrorExistential()

	case types.KindStruct, types.KindEnum:
		decl := n.NominalOrBoundGenericNominal()
		if decl.Resilient && expansion == ExpansionMinimal {
			return true
		}
		if n.Kind() == types.KindStruct {
			for i := range decl.Fields {
				if tc.IsAddressOnly(tc.LoweredFieldType(n, i), expansion) {
					return true
				}
			}
			return false
		}
		for i := range decl.Cases {
			if decl.Cases[i].Payload == nil {
				continue
			}
			if tc.IsAddressOnly(tc.LoweredEnumPayloadType(n, i), expansion) {
				return true
			}
		}
		return false

	case types.KindOptional:
		return tc.IsAddressOnly(n.OptionalObject(), expansion)

	case types.KindTuple:
		for i := 0; i < n.NumTupleElems(); i++ {
			if tc.IsAddressOnly(n.TupleElem(i), expansion) {
				return true
			}
		}
		return false

	case types.KindReferenceStorage:
		// Weak references are tracked in memory by the runtime.
		return n.ReferenceOwnership() == types.OwnershipWeak

	default:
		return false
	}
}

// IsTrivial reports whether the type is loadable under the given expansion
// and needs no work to copy, move, or destroy.
func (tc *TypeConverter) IsTrivial(n *types.Node, expansion ResilienceExpansion) bool {
	cache := tc.trivial[expansion]
	if v, ok := cache[n]; ok {
		return v
	}
	cache[n] = false // cycle guard
	v := tc.computeTrivial(n, expansion)
	cache[n] = v
	return v
}

func (tc *TypeConverter) computeTrivial(n *types.Node, expansion ResilienceExpansion) bool {
	if tc.IsAddressOnly(n, expansion) {
		return false
	}
	switch n.Kind() {
	case types.KindBuiltinInteger, types.KindBuiltinIntegerLiteral,
		types.KindBuiltinFloat, types.KindBuiltinRawPointer,
		types.KindMetatype, types.KindExistentialMetatype,
		types.KindSILToken:
		return true

	case types.KindBuiltinNativeObject, types.KindBuiltinBridgeObject,
		types.KindClass, types.KindSILBox, types.KindReferenceStorage:
		return false

	case types.KindArchetype, types.KindExistential:
		// Loadable ones are class references.
		return false

	case types.KindSILFunction:
		rep := n.FnInfo().Rep
		return rep == types.RepThin || rep == types.RepCFunctionPointer

	case types.KindStruct:
		decl := n.StructOrBoundGenericStruct()
		for i := range decl.Fields {
			if !tc.IsTrivial(tc.LoweredFieldType(n, i), expansion) {
				return false
			}
		}
		return true

	case types.KindEnum:
		decl := n.EnumOrBoundGenericEnum()
		for i := range decl.Cases {
			if decl.Cases[i].Payload == nil {
				continue
			}
			if !tc.IsTrivial(tc.LoweredEnumPayloadType(n, i), expansion) {
				return false
			}
		}
		return true

	case types.KindOptional:
		return tc.IsTrivial(n.OptionalObject(), expansion)

	case types.KindTuple:
		for i := 0; i < n.NumTupleElems(); i++ {
			if !tc.IsTrivial(n.TupleElem(i), expansion) {
				return false
			}
		}
		return true

	default:
		return false
	}
}

// IsReferenceCounted reports whether values of the type are a single scalar
// reference-counted pointer: classes, boxes, thick or block functions, the
// builtin object types, and class-bound archetypes. Compound aggregates do
// not qualify even when non-trivial.
func (tc *TypeConverter) IsReferenceCounted(n *types.Node) bool {
	switch n.Kind() {
	case types.KindClass, types.KindSILBox,
		types.KindBuiltinNativeObject, types.KindBuiltinBridgeObject:
		return true
	case types.KindArchetype:
		return n.RequiresClass()
	case types.KindExistential:
		return n.IsClassExistential() || n.IsErrorExistential()
	case types.KindSILFunction:
		rep := n.FnInfo().Rep
		return rep == types.RepThick || rep == types.RepBlock
	default:
		return false
	}
}

// LoweredFieldType returns the lowered type of the i-th stored property of a
// struct or class instantiation, with the declaration's generic parameters
// substituted by the instantiation's arguments.
func (tc *TypeConverter) LoweredFieldType(n *types.Node, i int) *types.Node {
	decl := n.NominalOrBoundGenericNominal()
	if decl == nil || decl.Kind == types.DeclEnum {
		panic(fmt.Sprintf("sil: field access on non-struct, non-class type %v", n))
	}
	if i < 0 || i >= len(decl.Fields) {
		panic(fmt.Sprintf("sil: field index %d out of range for %s", i, decl.Name))
	}
	return tc.Lower(tc.substDeclType(n, decl, decl.Fields[i].Type))
}

// LoweredEnumPayloadType returns the lowered payload type of the i-th case
// of an enum instantiation. The case must carry a payload.
func (tc *TypeConverter) LoweredEnumPayloadType(n *types.Node, i int) *types.Node {
	decl := n.EnumOrBoundGenericEnum()
	if decl == nil {
		panic(fmt.Sprintf("sil: enum payload access on non-enum type %v", n))
	}
	if i < 0 || i >= len(decl.Cases) {
		panic(fmt.Sprintf("sil: case index %d out of range for %s", i, decl.Name))
	}
	payload := decl.Cases[i].Payload
	if payload == nil {
		panic(fmt.Sprintf("sil: case %s of %s has no payload", decl.Cases[i].Name, decl.Name))
	}
	return tc.Lower(tc.substDeclType(n, decl, payload))
}

func (tc *TypeConverter) substDeclType(n *types.Node, decl *types.Decl, member *types.Node) *types.Node {
	targs := n.GenericArgs()
	if len(decl.GenericParams) == 0 || len(targs) == 0 {
		return member
	}
	subs := make(types.SubstMap, len(decl.GenericParams))
	for i, p := range decl.GenericParams {
		if i < len(targs) {
			subs[p] = targs[i]
		}
	}
	return tc.ctx.Subst(member, subs.Fn(), nil, types.SubstOptions{})
}

// Lower rewrites a formal type into its lowered form: formal function types
// become SIL function types and lvalues are rejected. Already-lowered types
// come back unchanged.
func (tc *TypeConverter) Lower(n *types.Node) *types.Node {
	if n == nil {
		return nil
	}
	if n.IsLegalSILType() {
		return n
	}
	if v, ok := tc.lowered[n]; ok {
		return v
	}
	v := tc.computeLower(n)
	tc.lowered[n] = v
	return v
}

func (tc *TypeConverter) computeLower(n *types.Node) *types.Node {
	switch n.Kind() {
	case types.KindLValue:
		panic(fmt.Sprintf("sil: lvalue type %v has no SIL lowering; use the address category", n))

	case types.KindFunction:
		info := n.FnInfo()
		params := make([]*types.Node, len(info.Params))
		for i, p := range info.Params {
			params[i] = tc.Lower(p)
		}
		return tc.ctx.SILFunctionType(params, tc.Lower(info.Result), info.Rep, info.NoReturn, nil)

	case types.KindTuple:
		elems := make([]*types.Node, n.NumTupleElems())
		for i := range elems {
			elems[i] = tc.Lower(n.TupleElem(i))
		}
		return tc.ctx.TupleType(elems...)

	case types.KindOptional:
		return tc.ctx.OptionalType(tc.Lower(n.OptionalObject()))

	case types.KindReferenceStorage:
		return tc.ctx.ReferenceStorageType(n.ReferenceOwnership(), tc.Lower(n.ReferenceStorageReferent()))

	default:
		return n
	}
}

// Lowered returns the Type handle for a formal type, object category.
func (tc *TypeConverter) Lowered(n *types.Node) Type {
	return PrimitiveObject(tc.Lower(n))
}
