package types

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// Builtins stores the well-known nodes every context seeds eagerly.
type Builtins struct {
	Void           *Node // the empty tuple
	IntegerLiteral *Node
	RawPointer     *Node
	NativeObject   *Node
	BridgeObject   *Node
	Word           *Node
	SILToken       *Node
	AnyObject      *Node // class-constrained empty composition
	Any            *Node // unconstrained empty composition
	Error          *Node // existential of the error protocol

	ErrorProtocol *Protocol
}

// Context owns an arena of interned canonical type nodes plus the nominal
// declarations and protocols they refer to. All nodes handed out by one
// context may be compared by pointer. A Context is not safe for concurrent
// mutation; fully built nodes are safe to read from any goroutine.
type Context struct {
	nodes    []*Node
	interned map[string]*Node
	decls    []*Decl
	protos   []*Protocol
	builtins Builtins

	// PointerBits is the target word size in bits, used by layout queries.
	PointerBits uint16
}

// NewContext creates a context seeded with the builtin types for a 64-bit
// target.
func NewContext() *Context {
	c := &Context{
		interned:    make(map[string]*Node, 64),
		PointerBits: 64,
	}
	c.builtins.Void = c.TupleType()
	c.builtins.IntegerLiteral = c.intern(&Node{kind: KindBuiltinIntegerLiteral})
	c.builtins.RawPointer = c.intern(&Node{kind: KindBuiltinRawPointer})
	c.builtins.NativeObject = c.intern(&Node{kind: KindBuiltinNativeObject})
	c.builtins.BridgeObject = c.intern(&Node{kind: KindBuiltinBridgeObject})
	c.builtins.Word = c.BuiltinIntegerType(WordWidth)
	c.builtins.SILToken = c.intern(&Node{kind: KindSILToken})
	c.builtins.AnyObject = c.ExistentialType(nil, nil, true)
	c.builtins.Any = c.ExistentialType(nil, nil, false)
	c.builtins.ErrorProtocol = c.RegisterProtocol("Error", false, true)
	c.builtins.Error = c.ExistentialType([]*Protocol{c.builtins.ErrorProtocol}, nil, false)
	return c
}

// Builtins returns the well-known seeded nodes.
func (c *Context) Builtins() Builtins { return c.builtins }

// NumTypes returns the number of interned nodes.
func (c *Context) NumTypes() int { return len(c.nodes) }

// RegisterProtocol allocates a protocol record owned by this context.
func (c *Context) RegisterProtocol(name string, classConstrained, isError bool) *Protocol {
	id, err := safecast.Conv[uint32](len(c.protos) + 1)
	if err != nil {
		panic(fmt.Errorf("protocol count overflow: %w", err))
	}
	p := &Protocol{Name: name, ClassConstrained: classConstrained, Error: isError, id: id}
	c.protos = append(c.protos, p)
	return p
}

// RegisterStruct allocates a struct declaration record.
func (c *Context) RegisterStruct(name string) *Decl {
	return c.registerDecl(DeclStruct, name)
}

// RegisterClass allocates a class declaration record.
func (c *Context) RegisterClass(name string) *Decl {
	return c.registerDecl(DeclClass, name)
}

// RegisterEnum allocates an enum declaration record.
func (c *Context) RegisterEnum(name string) *Decl {
	return c.registerDecl(DeclEnum, name)
}

func (c *Context) registerDecl(kind DeclKind, name string) *Decl {
	id, err := safecast.Conv[uint32](len(c.decls) + 1)
	if err != nil {
		panic(fmt.Errorf("decl count overflow: %w", err))
	}
	d := &Decl{Kind: kind, Name: name, id: id}
	c.decls = append(c.decls, d)
	return d
}

// Type constructors ----------------------------------------------------------

// TupleType interns a tuple of the given element types. No elements gives
// the Void type.
func (c *Context) TupleType(elems ...*Node) *Node {
	return c.intern(&Node{kind: KindTuple, list: append([]*Node(nil), elems...)})
}

// BuiltinIntegerType interns a fixed-width builtin integer. WordWidth gives
// the pointer-sized word type.
func (c *Context) BuiltinIntegerType(width uint16) *Node {
	return c.intern(&Node{kind: KindBuiltinInteger, width: width})
}

// BuiltinFloatType interns a builtin float of the given IEEE format.
func (c *Context) BuiltinFloatType(k FloatKind) *Node {
	return c.intern(&Node{kind: KindBuiltinFloat, fp: k})
}

// StructType interns the nominal type for a struct declaration with the
// given generic arguments.
func (c *Context) StructType(decl *Decl, targs ...*Node) *Node {
	return c.nominalType(DeclStruct, KindStruct, decl, targs)
}

// ClassType interns the nominal type for a class declaration.
func (c *Context) ClassType(decl *Decl, targs ...*Node) *Node {
	return c.nominalType(DeclClass, KindClass, decl, targs)
}

// EnumType interns the nominal type for an enum declaration.
func (c *Context) EnumType(decl *Decl, targs ...*Node) *Node {
	return c.nominalType(DeclEnum, KindEnum, decl, targs)
}

func (c *Context) nominalType(want DeclKind, kind Kind, decl *Decl, targs []*Node) *Node {
	if decl == nil || decl.Kind != want {
		panic(fmt.Sprintf("types: %v type requires a %v declaration", kind, want))
	}
	if len(targs) != 0 && len(targs) != len(decl.GenericParams) {
		panic(fmt.Sprintf("types: %s expects %d generic arguments, got %d",
			decl.Name, len(decl.GenericParams), len(targs)))
	}
	return c.intern(&Node{kind: kind, decl: decl, targs: append([]*Node(nil), targs...)})
}

// OptionalType interns Optional<elem>.
func (c *Context) OptionalType(elem *Node) *Node {
	if elem == nil {
		panic("types: OptionalType requires a payload type")
	}
	return c.intern(&Node{kind: KindOptional, elem: elem})
}

// ExistentialType interns a protocol composition existential. An explicit
// AnyObject constraint and/or a superclass bound may be attached; the empty
// composition without either is Any.
func (c *Context) ExistentialType(protos []*Protocol, superclass *Node, anyObject bool) *Node {
	return c.intern(&Node{
		kind:      KindExistential,
		protos:    append([]*Protocol(nil), protos...),
		super:     superclass,
		anyObject: anyObject,
	})
}

// ExistentialMetatypeType interns the existential metatype of instance.
func (c *Context) ExistentialMetatypeType(instance *Node) *Node {
	if instance == nil || !instance.IsExistential() {
		panic("types: existential metatype requires an existential instance type")
	}
	return c.intern(&Node{kind: KindExistentialMetatype, elem: instance, metaRep: MetatypeThick})
}

// MetatypeType interns the metatype of instance with an explicit
// representation. Lowered metatypes always carry one.
func (c *Context) MetatypeType(instance *Node, rep MetatypeRep) *Node {
	if instance == nil {
		panic("types: metatype requires an instance type")
	}
	return c.intern(&Node{kind: KindMetatype, elem: instance, metaRep: rep})
}

// FunctionType interns a formal function type. Formal function types are not
// legal SIL types; lowering rewrites them into SILFunctionType.
func (c *Context) FunctionType(params []*Node, result *Node, rep Representation, noReturn bool) *Node {
	return c.intern(&Node{kind: KindFunction, fn: &FuncInfo{
		Params:   append([]*Node(nil), params...),
		Result:   result,
		Rep:      rep,
		NoReturn: noReturn,
	}})
}

// SILFunctionType interns a lowered function type.
func (c *Context) SILFunctionType(params []*Node, result *Node, rep Representation, noReturn bool, genericParams []*Node) *Node {
	return c.intern(&Node{kind: KindSILFunction, fn: &FuncInfo{
		Params:        append([]*Node(nil), params...),
		Result:        result,
		Rep:           rep,
		NoReturn:      noReturn,
		GenericParams: append([]*Node(nil), genericParams...),
	}})
}

// GenericParamType interns the interface type parameter at (depth, index).
func (c *Context) GenericParamType(depth, index uint32, name string) *Node {
	return c.intern(&Node{kind: KindGenericParam, depth: depth, index: index, name: name})
}

// ArchetypeType interns a contextual archetype with the given conformance
// constraints and optional class bound.
func (c *Context) ArchetypeType(name string, protos []*Protocol, classBound *Node) *Node {
	return c.intern(&Node{
		kind:   KindArchetype,
		name:   name,
		protos: append([]*Protocol(nil), protos...),
		super:  classBound,
	})
}

// OpenedArchetypeType interns the archetype produced by opening an
// existential.
func (c *Context) OpenedArchetypeType(name string, existential *Node) *Node {
	if existential == nil || !existential.IsExistential() {
		panic("types: opened archetype requires an existential")
	}
	return c.intern(&Node{
		kind:   KindArchetype,
		name:   name,
		opened: true,
		elem:   existential,
		protos: append([]*Protocol(nil), existential.protos...),
		super:  existential.super,
	})
}

// LValueType interns the lvalue of obj. LValue types are not legal SIL
// types; SIL uses address categories instead.
func (c *Context) LValueType(obj *Node) *Node {
	if obj == nil {
		panic("types: lvalue requires an object type")
	}
	return c.intern(&Node{kind: KindLValue, elem: obj})
}

// ReferenceStorageType interns a weak/unowned wrapper around referent.
func (c *Context) ReferenceStorageType(o Ownership, referent *Node) *Node {
	if referent == nil {
		panic("types: reference storage requires a referent")
	}
	return c.intern(&Node{kind: KindReferenceStorage, ownership: o, elem: referent})
}

// SILBoxType interns a box holding one mutable field.
func (c *Context) SILBoxType(field *Node) *Node {
	if field == nil {
		panic("types: box requires a field type")
	}
	return c.intern(&Node{kind: KindSILBox, elem: field})
}

// Interning ------------------------------------------------------------------

func (c *Context) intern(n *Node) *Node {
	key := nodeKeyOf(n)
	if existing, ok := c.interned[key]; ok {
		return existing
	}

	id, err := safecast.Conv[uint32](len(c.nodes) + 1)
	if err != nil {
		panic(fmt.Errorf("type count overflow: %w", err))
	}
	n.ctx = c
	n.id = id
	n.flags = computeFlags(n)
	c.nodes = append(c.nodes, n)
	c.interned[key] = n
	return n
}

// nodeKeyOf encodes the structural identity of a candidate node. Children
// are interned already, so their ids are stable.
func nodeKeyOf(n *Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d", n.kind)
	if n.elem != nil {
		fmt.Fprintf(&b, ";e%d", n.elem.id)
	}
	for _, e := range n.list {
		fmt.Fprintf(&b, ";l%d", e.id)
	}
	for _, a := range n.targs {
		fmt.Fprintf(&b, ";a%d", a.id)
	}
	if n.decl != nil {
		fmt.Fprintf(&b, ";d%d", n.decl.id)
	}
	for _, p := range n.protos {
		fmt.Fprintf(&b, ";p%d", p.id)
	}
	if n.super != nil {
		fmt.Fprintf(&b, ";s%d", n.super.id)
	}
	if n.fn != nil {
		b.WriteString(";f")
		for _, p := range n.fn.Params {
			fmt.Fprintf(&b, "%d,", p.id)
		}
		if n.fn.Result != nil {
			fmt.Fprintf(&b, "->%d", n.fn.Result.id)
		}
		fmt.Fprintf(&b, "r%dn%t", n.fn.Rep, n.fn.NoReturn)
		for _, g := range n.fn.GenericParams {
			fmt.Fprintf(&b, "g%d", g.id)
		}
	}
	fmt.Fprintf(&b, ";%d.%d.%d.%d.%d.%d.%s.%t.%t",
		n.width, n.fp, n.metaRep, n.ownership, n.depth, n.index, n.name, n.anyObject, n.opened)
	return b.String()
}

func computeFlags(n *Node) nodeFlags {
	var f nodeFlags

	merge := func(child *Node) {
		if child == nil {
			return
		}
		f |= child.flags & (flagHasTypeParameter | flagHasArchetype | flagHasOpenedExistential)
	}

	merge(n.elem)
	merge(n.super)
	for _, e := range n.list {
		merge(e)
	}
	for _, a := range n.targs {
		merge(a)
	}
	if n.fn != nil {
		for _, p := range n.fn.Params {
			merge(p)
		}
		merge(n.fn.Result)
	}

	switch n.kind {
	case KindGenericParam:
		f |= flagHasTypeParameter
	case KindArchetype:
		f |= flagHasArchetype
		if n.opened {
			f |= flagHasOpenedExistential
		}
	}

	if silLegal(n) {
		f |= flagSILLegal
	}
	return f
}

// silLegal computes legality bottom-up; children carry their own flag
// already.
func silLegal(n *Node) bool {
	switch n.kind {
	case KindInvalid, KindFunction, KindLValue:
		return false
	case KindTuple:
		for _, e := range n.list {
			if !e.IsLegalSILType() {
				return false
			}
		}
		return true
	case KindOptional, KindReferenceStorage:
		return n.elem.IsLegalSILType()
	default:
		return true
	}
}
