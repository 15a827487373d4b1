package types

import "testing"

func TestSubstIdentityWhenParameterFree(t *testing.T) {
	ctx := NewContext()
	i32 := ctx.BuiltinIntegerType(32)
	tup := ctx.TupleType(i32, ctx.OptionalType(i32))

	subs := SubstMap{ctx.GenericParamType(0, 0, "T"): i32}
	if got := ctx.Subst(tup, subs.Fn(), nil, SubstOptions{}); got != tup {
		t.Fatalf("parameter-free types must come back unchanged")
	}
}

func TestSubstRebuildsAggregates(t *testing.T) {
	ctx := NewContext()
	tParam := ctx.GenericParamType(0, 0, "T")
	i64 := ctx.BuiltinIntegerType(64)

	pair := ctx.RegisterStruct("Pair")
	pair.SetGenericParams([]*Node{tParam})

	tests := []struct {
		name     string
		node     *Node
		expected *Node
	}{
		{"param", tParam, i64},
		{"optional", ctx.OptionalType(tParam), ctx.OptionalType(i64)},
		{"tuple", ctx.TupleType(tParam, tParam), ctx.TupleType(i64, i64)},
		{"nominal", ctx.StructType(pair, tParam), ctx.StructType(pair, i64)},
		{"metatype", ctx.MetatypeType(tParam, MetatypeThick), ctx.MetatypeType(i64, MetatypeThick)},
		{"weak", ctx.ReferenceStorageType(OwnershipWeak, ctx.OptionalType(tParam)), ctx.ReferenceStorageType(OwnershipWeak, ctx.OptionalType(i64))},
	}

	subs := SubstMap{tParam: i64}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ctx.Subst(tt.node, subs.Fn(), nil, SubstOptions{})
			if got != tt.expected {
				t.Fatalf("Subst = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSubstLeavesOpenedArchetypes(t *testing.T) {
	ctx := NewContext()
	opened := ctx.OpenedArchetypeType("@opened T", ctx.Builtins().Any)
	i32 := ctx.BuiltinIntegerType(32)
	subs := SubstMap{opened: i32}

	if got := ctx.Subst(opened, subs.Fn(), nil, SubstOptions{}); got != opened {
		t.Fatalf("opened archetypes are pinned by default")
	}
	got := ctx.Subst(opened, subs.Fn(), nil, SubstOptions{SubstituteOpaqueArchetypes: true})
	if got != i32 {
		t.Fatalf("opt-in substitution must replace the opened archetype")
	}
}

func TestSubstConformanceCheck(t *testing.T) {
	ctx := NewContext()
	proto := ctx.RegisterProtocol("P", false, false)
	arch := ctx.ArchetypeType("T", []*Protocol{proto}, nil)
	i32 := ctx.BuiltinIntegerType(32)
	subs := SubstMap{arch: i32}

	ok := func(original, replacement *Node, p *Protocol) bool { return true }
	if got := ctx.Subst(arch, subs.Fn(), ok, SubstOptions{}); got != i32 {
		t.Fatalf("conforming replacement rejected")
	}

	bad := func(original, replacement *Node, p *Protocol) bool { return false }
	defer func() {
		if recover() == nil {
			t.Fatalf("broken conformance must panic")
		}
	}()
	ctx.Subst(arch, subs.Fn(), bad, SubstOptions{})
}

func TestSubstGenericArgs(t *testing.T) {
	ctx := NewContext()
	tParam := ctx.GenericParamType(0, 0, "T")
	i8 := ctx.BuiltinIntegerType(8)

	generic := ctx.SILFunctionType([]*Node{tParam}, tParam, RepThick, false, []*Node{tParam})
	got := ctx.SubstGenericArgs(generic, SubstMap{tParam: i8})

	info := got.FnInfo()
	if info == nil || info.IsGeneric() {
		t.Fatalf("specialized function must drop its generic signature")
	}
	if len(info.Params) != 1 || info.Params[0] != i8 || info.Result != i8 {
		t.Fatalf("generic args not applied: %v", got)
	}

	nonGeneric := ctx.SILFunctionType([]*Node{i8}, i8, RepThick, false, nil)
	if ctx.SubstGenericArgs(nonGeneric, SubstMap{tParam: i8}) != nonGeneric {
		t.Fatalf("non-generic function must come back unchanged")
	}
}
