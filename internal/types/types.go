// Package types models the canonical, lowered AST types the SIL layer works
// with. Types are interned: a Context hands out exactly one *Node per
// structurally distinct canonical type, so pointer equality is type equality.
package types

import "fmt"

// Kind enumerates all supported kinds of canonical type nodes.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindTuple
	KindBuiltinInteger
	KindBuiltinIntegerLiteral
	KindBuiltinFloat
	KindBuiltinRawPointer
	KindBuiltinNativeObject
	KindBuiltinBridgeObject
	KindStruct
	KindClass
	KindEnum
	KindOptional
	KindExistential
	KindExistentialMetatype
	KindMetatype
	KindFunction // formal function type; not a legal SIL type
	KindSILFunction
	KindGenericParam
	KindArchetype
	KindLValue // not a legal SIL type
	KindReferenceStorage
	KindSILBox
	KindSILToken
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindTuple:
		return "tuple"
	case KindBuiltinInteger:
		return "builtin.integer"
	case KindBuiltinIntegerLiteral:
		return "builtin.intliteral"
	case KindBuiltinFloat:
		return "builtin.float"
	case KindBuiltinRawPointer:
		return "builtin.rawpointer"
	case KindBuiltinNativeObject:
		return "builtin.nativeobject"
	case KindBuiltinBridgeObject:
		return "builtin.bridgeobject"
	case KindStruct:
		return "struct"
	case KindClass:
		return "class"
	case KindEnum:
		return "enum"
	case KindOptional:
		return "optional"
	case KindExistential:
		return "existential"
	case KindExistentialMetatype:
		return "existential.metatype"
	case KindMetatype:
		return "metatype"
	case KindFunction:
		return "function"
	case KindSILFunction:
		return "sil.function"
	case KindGenericParam:
		return "genericparam"
	case KindArchetype:
		return "archetype"
	case KindLValue:
		return "lvalue"
	case KindReferenceStorage:
		return "refstorage"
	case KindSILBox:
		return "sil.box"
	case KindSILToken:
		return "sil.token"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// FloatKind identifies an IEEE floating-point format.
type FloatKind uint8

const (
	FloatIEEE16 FloatKind = iota
	FloatIEEE32
	FloatIEEE64
	FloatIEEE80 // x87 extended
	FloatIEEE128
)

// BitWidth returns the storage width of the format in bits.
func (k FloatKind) BitWidth() uint16 {
	switch k {
	case FloatIEEE16:
		return 16
	case FloatIEEE32:
		return 32
	case FloatIEEE64:
		return 64
	case FloatIEEE80:
		return 80
	case FloatIEEE128:
		return 128
	default:
		return 0
	}
}

func (k FloatKind) String() string {
	return fmt.Sprintf("FPIEEE%d", k.BitWidth())
}

// WordWidth marks a builtin integer sized like the target pointer.
const WordWidth uint16 = 0

// Representation describes how a function value is physically passed.
type Representation uint8

const (
	// RepThick is the native representation: function pointer plus captured
	// context, reference counted.
	RepThick Representation = iota
	// RepThin is a bare function pointer without context.
	RepThin
	// RepBlock is a C block object.
	RepBlock
	// RepCFunctionPointer is a C function pointer without context.
	RepCFunctionPointer
)

func (r Representation) String() string {
	switch r {
	case RepThick:
		return "thick"
	case RepThin:
		return "thin"
	case RepBlock:
		return "block"
	case RepCFunctionPointer:
		return "c"
	default:
		return fmt.Sprintf("Representation(%d)", r)
	}
}

// MetatypeRep describes how a metatype value is represented.
type MetatypeRep uint8

const (
	// MetatypeThin carries no runtime payload.
	MetatypeThin MetatypeRep = iota
	// MetatypeThick carries a pointer to runtime type metadata.
	MetatypeThick
)

// Ownership identifies a reference-storage wrapper.
type Ownership uint8

const (
	OwnershipWeak Ownership = iota
	OwnershipUnowned
)

func (o Ownership) String() string {
	switch o {
	case OwnershipWeak:
		return "weak"
	case OwnershipUnowned:
		return "unowned"
	default:
		return fmt.Sprintf("Ownership(%d)", o)
	}
}

// nodeFlags caches recursive properties computed once at intern time.
type nodeFlags uint8

const (
	flagHasTypeParameter nodeFlags = 1 << iota
	flagHasArchetype
	flagHasOpenedExistential
	flagSILLegal
)

// FuncInfo stores the shape shared by formal and SIL function types.
type FuncInfo struct {
	Params        []*Node
	Result        *Node
	Rep           Representation
	NoReturn      bool
	GenericParams []*Node // interface generic parameters, KindGenericParam nodes
}

// IsGeneric reports whether the function type has interface generic parameters.
func (fi *FuncInfo) IsGeneric() bool {
	return len(fi.GenericParams) > 0
}
