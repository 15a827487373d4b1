package sil

import (
	"sable/internal/types"
)

// Factories for the types SIL instructions refer to directly. All return
// object-category handles unless noted.

// NativeObjectType returns Builtin.NativeObject.
func NativeObjectType(ctx *types.Context) Type {
	return PrimitiveObject(ctx.Builtins().NativeObject)
}

// BridgeObjectType returns Builtin.BridgeObject.
func BridgeObjectType(ctx *types.Context) Type {
	return PrimitiveObject(ctx.Builtins().BridgeObject)
}

// RawPointerType returns Builtin.RawPointer.
func RawPointerType(ctx *types.Context) Type {
	return PrimitiveObject(ctx.Builtins().RawPointer)
}

// BuiltinIntegerType returns the fixed-width builtin integer.
func BuiltinIntegerType(ctx *types.Context, bitWidth uint16) Type {
	return PrimitiveObject(ctx.BuiltinIntegerType(bitWidth))
}

// BuiltinIntegerLiteralType returns Builtin.IntLiteral.
func BuiltinIntegerLiteralType(ctx *types.Context) Type {
	return PrimitiveObject(ctx.Builtins().IntegerLiteral)
}

// BuiltinFloatType returns the builtin float of the given IEEE format.
func BuiltinFloatType(ctx *types.Context, kind types.FloatKind) Type {
	return PrimitiveObject(ctx.BuiltinFloatType(kind))
}

// BuiltinWordType returns the pointer-sized Builtin.Word.
func BuiltinWordType(ctx *types.Context) Type {
	return PrimitiveObject(ctx.Builtins().Word)
}

// ExceptionType returns the type thrown values carry: the error existential.
func ExceptionType(ctx *types.Context) Type {
	return PrimitiveObject(ctx.Builtins().Error)
}

// TokenType returns the SIL token type used to sequence instructions. It
// has no runtime representation.
func TokenType(ctx *types.Context) Type {
	return PrimitiveObject(ctx.Builtins().SILToken)
}

// OptionalType wraps a value type in Optional, preserving its category.
func OptionalType(value Type) Type {
	n := value.node()
	if n == nil {
		panic("sil: OptionalType requires a non-null type")
	}
	return Primitive(n.Context().OptionalType(n), value.Category())
}
