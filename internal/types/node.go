package types

// Node is a canonical type node. Nodes are interned by a Context: two nodes
// are the same type iff they are the same pointer. The zero Node is never a
// valid type; external holders use nil for "no type".
//
// A Node is a tagged variant: kind selects which of the payload fields are
// meaningful. Nodes are immutable after interning.
type Node struct {
	kind  Kind
	flags nodeFlags
	ctx   *Context
	id    uint32

	elem  *Node   // Optional payload, Metatype/ExistentialMetatype instance, LValue object, ReferenceStorage referent, SILBox field, opened existential of an Archetype
	list  []*Node // Tuple elements
	targs []*Node // nominal generic arguments

	decl   *Decl       // Struct, Class, Enum
	fn     *FuncInfo   // Function, SILFunction
	protos []*Protocol // Existential members; Archetype conformances

	super *Node // Existential superclass bound; Archetype class bound

	width     uint16      // BuiltinInteger bit width; WordWidth for word
	fp        FloatKind   // BuiltinFloat
	metaRep   MetatypeRep // Metatype
	ownership Ownership   // ReferenceStorage
	depth     uint32      // GenericParam
	index     uint32      // GenericParam
	name      string      // GenericParam, Archetype

	// anyObject marks an existential with an explicit class constraint
	// (the AnyObject composition when protos is empty).
	anyObject bool
	opened    bool // Archetype opened from an existential
}

// Kind returns the node's kind tag.
func (n *Node) Kind() Kind { return n.kind }

// Context returns the owning interning context.
func (n *Node) Context() *Context { return n.ctx }

// ID returns the node's stable index within its context.
func (n *Node) ID() uint32 { return n.id }

// IsLegalSILType reports whether the type may appear as a SIL value type.
// Formal function types and lvalue types (and aggregates containing them)
// must be eliminated by lowering first.
func (n *Node) IsLegalSILType() bool { return n.flags&flagSILLegal != 0 }

// HasTypeParameter reports whether the type mentions an interface generic
// parameter anywhere.
func (n *Node) HasTypeParameter() bool { return n.flags&flagHasTypeParameter != 0 }

// HasArchetype reports whether the type mentions an archetype anywhere.
func (n *Node) HasArchetype() bool { return n.flags&flagHasArchetype != 0 }

// HasOpenedExistential reports whether the type mentions an opened
// existential archetype anywhere.
func (n *Node) HasOpenedExistential() bool { return n.flags&flagHasOpenedExistential != 0 }

// IsVoid reports whether the type is the empty tuple.
func (n *Node) IsVoid() bool {
	return n.kind == KindTuple && len(n.list) == 0
}

// IsExistential reports whether the type is a protocol or composition
// existential (not an existential metatype).
func (n *Node) IsExistential() bool { return n.kind == KindExistential }

// IsAnyExistential reports whether the type is any kind of existential,
// including existential metatypes.
func (n *Node) IsAnyExistential() bool {
	return n.kind == KindExistential || n.kind == KindExistentialMetatype
}

// IsAnyObject reports whether the type is the AnyObject existential.
func (n *Node) IsAnyObject() bool {
	return n.kind == KindExistential && n.anyObject && len(n.protos) == 0 && n.super == nil
}

// RequiresClass reports whether every dynamic type fitting this existential
// or archetype must be a class.
func (n *Node) RequiresClass() bool {
	switch n.kind {
	case KindExistential:
		if n.anyObject || n.super != nil {
			return true
		}
		for _, p := range n.protos {
			if p.ClassConstrained {
				return true
			}
		}
		return false
	case KindArchetype:
		if n.super != nil {
			return true
		}
		for _, p := range n.protos {
			if p.ClassConstrained {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// IsClassExistential reports whether the type is a class-constrained
// existential.
func (n *Node) IsClassExistential() bool {
	return n.kind == KindExistential && n.RequiresClass()
}

// IsErrorExistential reports whether the type is an existential whose only
// member is the error protocol.
func (n *Node) IsErrorExistential() bool {
	return n.kind == KindExistential && len(n.protos) == 1 &&
		n.protos[0].Error && n.super == nil && !n.anyObject
}

// IsOpenedExistential reports whether the type is an archetype opened from
// an existential.
func (n *Node) IsOpenedExistential() bool {
	return n.kind == KindArchetype && n.opened
}

// HasReferenceSemantics reports whether values of this type are references:
// classes, class-bound archetypes and existentials, boxes, thick or block
// function values, and the builtin object types.
func (n *Node) HasReferenceSemantics() bool {
	switch n.kind {
	case KindClass, KindSILBox, KindBuiltinNativeObject, KindBuiltinBridgeObject:
		return true
	case KindArchetype, KindExistential:
		return n.RequiresClass()
	case KindFunction:
		return true // formal function values carry a context
	case KindSILFunction:
		return n.fn.Rep == RepThick || n.fn.Rep == RepBlock
	default:
		return false
	}
}

// IsAnyClassReferenceType reports whether the type has reference semantics
// and is not a function type.
func (n *Node) IsAnyClassReferenceType() bool {
	if n.kind == KindFunction || n.kind == KindSILFunction {
		return false
	}
	return n.HasReferenceSemantics()
}

// HasRetainablePointerRepresentation reports whether values of this type are
// guaranteed to be a single retainable pointer. Optional wrapping preserves
// the property (nil is spelled as the null pointer).
func (n *Node) HasRetainablePointerRepresentation() bool {
	switch n.kind {
	case KindClass, KindBuiltinNativeObject, KindBuiltinBridgeObject, KindSILBox:
		return true
	case KindArchetype:
		return n.RequiresClass()
	case KindExistential:
		// Class existentials with witness tables are fatter than one pointer;
		// only the bare AnyObject or single class bound qualifies.
		return n.IsAnyObject() || (n.super != nil && len(n.protos) == 0)
	case KindOptional:
		return n.elem.HasRetainablePointerRepresentation()
	default:
		return false
	}
}

// IsBridgeableObjectType reports whether the type can be bridged to an
// object pointer without conversion.
func (n *Node) IsBridgeableObjectType() bool {
	return n.HasRetainablePointerRepresentation()
}

// ClassOrBoundGenericClass returns the class declaration for class types.
func (n *Node) ClassOrBoundGenericClass() *Decl {
	if n.kind == KindClass {
		return n.decl
	}
	return nil
}

// StructOrBoundGenericStruct returns the struct declaration for struct types.
func (n *Node) StructOrBoundGenericStruct() *Decl {
	if n.kind == KindStruct {
		return n.decl
	}
	return nil
}

// EnumOrBoundGenericEnum returns the enum declaration for enum types.
func (n *Node) EnumOrBoundGenericEnum() *Decl {
	if n.kind == KindEnum {
		return n.decl
	}
	return nil
}

// NominalOrBoundGenericNominal returns the declaration for any nominal type.
func (n *Node) NominalOrBoundGenericNominal() *Decl {
	switch n.kind {
	case KindStruct, KindClass, KindEnum:
		return n.decl
	default:
		return nil
	}
}

// GenericArgs returns the nominal type's generic arguments.
func (n *Node) GenericArgs() []*Node { return n.targs }

// Superclass returns the immediate superclass of a class type with the
// class's generic arguments applied, the class bound of an archetype, or the
// superclass constraint of an existential. Nil when there is none.
func (n *Node) Superclass() *Node {
	switch n.kind {
	case KindClass:
		super := n.decl.Superclass
		if super == nil {
			return nil
		}
		if len(n.decl.GenericParams) == 0 {
			return super
		}
		subs := make(SubstMap, len(n.decl.GenericParams))
		for i, p := range n.decl.GenericParams {
			if i < len(n.targs) {
				subs[p] = n.targs[i]
			}
		}
		return n.ctx.Subst(super, subs.Fn(), nil, SubstOptions{})
	case KindArchetype, KindExistential:
		return n.super
	default:
		return nil
	}
}

// OptionalObject returns T for Optional<T>, or nil.
func (n *Node) OptionalObject() *Node {
	if n.kind == KindOptional {
		return n.elem
	}
	return nil
}

// ReferenceStorageReferent looks through a weak/unowned wrapper.
func (n *Node) ReferenceStorageReferent() *Node {
	if n.kind == KindReferenceStorage {
		return n.elem
	}
	return n
}

// ReferenceOwnership returns the wrapper flavor of a reference-storage type.
func (n *Node) ReferenceOwnership() Ownership { return n.ownership }

// Elem returns the single child payload for kinds that have one: Optional,
// Metatype, ExistentialMetatype, LValue, ReferenceStorage, SILBox, and the
// opened existential of an archetype.
func (n *Node) Elem() *Node { return n.elem }

// NumTupleElems returns the tuple arity, or 0 for non-tuples.
func (n *Node) NumTupleElems() int {
	if n.kind != KindTuple {
		return 0
	}
	return len(n.list)
}

// TupleElem returns the i-th tuple element type.
func (n *Node) TupleElem(i int) *Node {
	if n.kind != KindTuple {
		panic("types: TupleElem on non-tuple")
	}
	return n.list[i]
}

// TupleElems returns the tuple element types.
func (n *Node) TupleElems() []*Node {
	if n.kind != KindTuple {
		return nil
	}
	return n.list
}

// FnInfo returns the function shape for Function and SILFunction nodes.
func (n *Node) FnInfo() *FuncInfo {
	if n.kind == KindFunction || n.kind == KindSILFunction {
		return n.fn
	}
	return nil
}

// Protocols returns the existential's members or the archetype's
// conformance constraints.
func (n *Node) Protocols() []*Protocol { return n.protos }

// MetatypeRepresentation returns the metatype's representation.
func (n *Node) MetatypeRepresentation() MetatypeRep { return n.metaRep }

// IntegerWidth returns a builtin integer's bit width (WordWidth for word).
func (n *Node) IntegerWidth() uint16 { return n.width }

// FloatFormat returns a builtin float's IEEE format.
func (n *Node) FloatFormat() FloatKind { return n.fp }

// GenericParamDepth returns the generic parameter's depth.
func (n *Node) GenericParamDepth() uint32 { return n.depth }

// GenericParamIndex returns the generic parameter's index.
func (n *Node) GenericParamIndex() uint32 { return n.index }

// Name returns the display name of generic parameters and archetypes.
func (n *Node) Name() string { return n.name }
