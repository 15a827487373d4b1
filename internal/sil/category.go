// Package sil implements the value-level type handle of the Sable
// intermediate language: a canonical lowered type paired with a value
// category, packed into a single machine word.
package sil

import "fmt"

// ValueCategory says whether a SIL value is the value itself or the address
// of an allocated slot holding it.
type ValueCategory uint8

const (
	// CategoryObject is a value of the type.
	CategoryObject ValueCategory = 0
	// CategoryAddress is a pointer to an allocated (possibly uninitialized)
	// variable of the type.
	CategoryAddress ValueCategory = 1
)

func (c ValueCategory) String() string {
	switch c {
	case CategoryObject:
		return "object"
	case CategoryAddress:
		return "address"
	default:
		return fmt.Sprintf("ValueCategory(%d)", c)
	}
}

// ExistentialRepresentation says how an existential container is laid out.
type ExistentialRepresentation uint8

const (
	// ReprNone: the type is not existential.
	ReprNone ExistentialRepresentation = iota
	// ReprOpaque: a fixed-size opaque buffer; address-only, manipulated with
	// the *_existential_addr instructions.
	ReprOpaque
	// ReprClass: holds a reference to the conforming class instance;
	// reference counted, manipulated with the *_existential_ref instructions.
	ReprClass
	// ReprMetatype: holds a reference to the conforming type's metadata;
	// trivial, manipulated with the *_existential_metatype instructions.
	ReprMetatype
	// ReprBoxed: a reference-counted buffer indirectly holding the value,
	// manipulated with the *_existential_box instructions. The box may
	// directly adopt a class reference for some class types.
	ReprBoxed
)

func (r ExistentialRepresentation) String() string {
	switch r {
	case ReprNone:
		return "none"
	case ReprOpaque:
		return "opaque"
	case ReprClass:
		return "class"
	case ReprMetatype:
		return "metatype"
	case ReprBoxed:
		return "boxed"
	default:
		return fmt.Sprintf("ExistentialRepresentation(%d)", r)
	}
}
