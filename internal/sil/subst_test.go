package sil

import (
	"testing"

	"sable/internal/types"
)

func TestSubstPreservesCategory(t *testing.T) {
	ctx := types.NewContext()
	tc := NewTypeConverter(ctx)

	tParam := ctx.GenericParamType(0, 0, "T")
	i64 := ctx.BuiltinIntegerType(64)
	subs := types.SubstMap{tParam: i64}

	addr := PrimitiveAddress(ctx.TupleType(tParam, tParam))
	got := addr.SubstMap(tc, subs)
	if !got.IsAddress() {
		t.Fatalf("substitution dropped the address category")
	}
	if got.ASTType() != ctx.TupleType(i64, i64) {
		t.Fatalf("substitution result mismatch: %s", got)
	}
}

func TestSubstLowersReplacements(t *testing.T) {
	ctx := types.NewContext()
	tc := NewTypeConverter(ctx)

	tParam := ctx.GenericParamType(0, 0, "T")
	i32 := ctx.BuiltinIntegerType(32)
	formal := ctx.FunctionType([]*types.Node{i32}, i32, types.RepThick, false)

	// Substituting a formal function type in must re-lower the result so the
	// handle stays legal.
	h := PrimitiveObject(ctx.OptionalType(tParam))
	got := h.SubstMap(tc, types.SubstMap{tParam: formal})
	payload := got.CastToKind(types.KindOptional).OptionalObject()
	if payload.Kind() != types.KindSILFunction {
		t.Fatalf("replacement was not lowered: %s", got)
	}
}

func TestSubstGenericArgsOnHandle(t *testing.T) {
	ctx := types.NewContext()
	tc := NewTypeConverter(ctx)

	tParam := ctx.GenericParamType(0, 0, "T")
	i8 := ctx.BuiltinIntegerType(8)
	generic := PrimitiveObject(ctx.SILFunctionType([]*types.Node{tParam}, tParam, types.RepThick, false, []*types.Node{tParam}))

	got := generic.SubstGenericArgs(tc, types.SubstMap{tParam: i8})
	info := got.CastToKind(types.KindSILFunction).FnInfo()
	if info.IsGeneric() || info.Params[0] != i8 || info.Result != i8 {
		t.Fatalf("specialization failed: %s", got)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("SubstGenericArgs on a non-function must panic")
		}
	}()
	BuiltinWordType(ctx).SubstGenericArgs(tc, nil)
}

func TestSubstNullHandle(t *testing.T) {
	ctx := types.NewContext()
	tc := NewTypeConverter(ctx)
	var null Type
	if !null.Subst(tc, nil, nil, types.SubstOptions{}).IsNull() {
		t.Fatalf("substitution on null stays null")
	}
}
