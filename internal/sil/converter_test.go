package sil

import (
	"testing"

	"sable/internal/types"
)

func TestLowerFunctionTypes(t *testing.T) {
	ctx := types.NewContext()
	tc := NewTypeConverter(ctx)
	i32 := ctx.BuiltinIntegerType(32)

	formal := ctx.FunctionType([]*types.Node{i32}, i32, types.RepThick, false)
	lowered := tc.Lower(formal)
	if lowered.Kind() != types.KindSILFunction {
		t.Fatalf("formal functions must lower to SIL function types, got %v", lowered)
	}
	if !lowered.IsLegalSILType() {
		t.Fatalf("lowering must produce a legal SIL type")
	}
	info := lowered.FnInfo()
	if len(info.Params) != 1 || info.Params[0] != i32 || info.Result != i32 || info.Rep != types.RepThick {
		t.Fatalf("function shape lost in lowering: %v", lowered)
	}
	if tc.Lower(formal) != lowered {
		t.Fatalf("lowering must be cached and stable")
	}
}

func TestLowerAggregates(t *testing.T) {
	ctx := types.NewContext()
	tc := NewTypeConverter(ctx)
	i32 := ctx.BuiltinIntegerType(32)
	formal := ctx.FunctionType(nil, i32, types.RepThick, false)

	tup := tc.Lower(ctx.TupleType(i32, formal))
	if tup.Kind() != types.KindTuple || tup.TupleElem(1).Kind() != types.KindSILFunction {
		t.Fatalf("tuple elements must lower recursively, got %v", tup)
	}

	opt := tc.Lower(ctx.OptionalType(formal))
	if opt.OptionalObject().Kind() != types.KindSILFunction {
		t.Fatalf("optional payloads must lower recursively, got %v", opt)
	}

	weak := tc.Lower(ctx.ReferenceStorageType(types.OwnershipWeak, ctx.OptionalType(formal)))
	if weak.ReferenceStorageReferent().OptionalObject().Kind() != types.KindSILFunction {
		t.Fatalf("storage referents must lower recursively, got %v", weak)
	}

	legal := ctx.TupleType(i32, i32)
	if tc.Lower(legal) != legal {
		t.Fatalf("already-legal types come back unchanged")
	}
}

func TestLowerRejectsLValues(t *testing.T) {
	ctx := types.NewContext()
	tc := NewTypeConverter(ctx)
	defer func() {
		if recover() == nil {
			t.Fatalf("lvalues have no lowering and must panic")
		}
	}()
	tc.Lower(ctx.LValueType(ctx.BuiltinIntegerType(32)))
}

func TestAddressOnlyRules(t *testing.T) {
	ctx := types.NewContext()
	tc := NewTypeConverter(ctx)

	proto := ctx.RegisterProtocol("P", false, false)
	classProto := ctx.RegisterProtocol("CP", true, false)
	cls := ctx.RegisterClass("Widget")
	clsTy := ctx.ClassType(cls)

	aoStruct := ctx.RegisterStruct("Holder")
	aoStruct.SetFields([]types.Field{{Name: "value", Type: ctx.GenericParamType(0, 0, "T")}})

	aoEnum := ctx.RegisterEnum("Choice")
	aoEnum.SetCases([]types.EnumCase{
		{Name: "none", Payload: nil},
		{Name: "some", Payload: ctx.ExistentialType([]*types.Protocol{proto}, nil, false)},
	})

	tests := []struct {
		name     string
		node     *types.Node
		expected bool
	}{
		{"generic param", ctx.GenericParamType(0, 0, "T"), true},
		{"plain archetype", ctx.ArchetypeType("T", nil, nil), true},
		{"class-bound archetype", ctx.ArchetypeType("T", nil, clsTy), false},
		{"opaque existential", ctx.ExistentialType([]*types.Protocol{proto}, nil, false), true},
		{"class existential", ctx.ExistentialType([]*types.Protocol{classProto}, nil, false), false},
		{"error existential", ctx.Builtins().Error, false},
		{"class", clsTy, false},
		{"word", ctx.Builtins().Word, false},
		{"struct with address-only field", ctx.StructType(aoStruct), true},
		{"enum with address-only payload", ctx.EnumType(aoEnum), true},
		{"optional of address-only", ctx.OptionalType(ctx.GenericParamType(0, 0, "T")), true},
		{"tuple with address-only element", ctx.TupleType(ctx.Builtins().Word, ctx.GenericParamType(0, 0, "T")), true},
		{"weak storage", ctx.ReferenceStorageType(types.OwnershipWeak, ctx.OptionalType(clsTy)), true},
		{"unowned storage", ctx.ReferenceStorageType(types.OwnershipUnowned, clsTy), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tc.IsAddressOnly(tt.node, ExpansionMaximal); got != tt.expected {
				t.Fatalf("IsAddressOnly = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTrivialRules(t *testing.T) {
	ctx := types.NewContext()
	tc := NewTypeConverter(ctx)

	cls := ctx.RegisterClass("Widget")
	clsTy := ctx.ClassType(cls)
	void := ctx.Builtins().Void

	plain := ctx.RegisterStruct("Plain")
	plain.SetFields([]types.Field{
		{Name: "a", Type: ctx.BuiltinIntegerType(32)},
		{Name: "b", Type: ctx.BuiltinFloatType(types.FloatIEEE64)},
	})

	mixed := ctx.RegisterStruct("Mixed")
	mixed.SetFields([]types.Field{
		{Name: "a", Type: ctx.BuiltinIntegerType(32)},
		{Name: "ref", Type: clsTy},
	})

	tests := []struct {
		name     string
		node     *types.Node
		expected bool
	}{
		{"word", ctx.Builtins().Word, true},
		{"raw pointer", ctx.Builtins().RawPointer, true},
		{"float", ctx.BuiltinFloatType(types.FloatIEEE32), true},
		{"thin metatype", ctx.MetatypeType(ctx.Builtins().Word, types.MetatypeThin), true},
		{"token", ctx.Builtins().SILToken, true},
		{"class", clsTy, false},
		{"native object", ctx.Builtins().NativeObject, false},
		{"box", ctx.SILBoxType(ctx.Builtins().Word), false},
		{"thin function", ctx.SILFunctionType(nil, void, types.RepThin, false, nil), true},
		{"c function pointer", ctx.SILFunctionType(nil, void, types.RepCFunctionPointer, false, nil), true},
		{"thick function", ctx.SILFunctionType(nil, void, types.RepThick, false, nil), false},
		{"block", ctx.SILFunctionType(nil, void, types.RepBlock, false, nil), false},
		{"trivial struct", ctx.StructType(plain), true},
		{"struct with reference", ctx.StructType(mixed), false},
		{"optional class", ctx.OptionalType(clsTy), false},
		{"optional word", ctx.OptionalType(ctx.Builtins().Word), true},
		{"generic param", ctx.GenericParamType(0, 0, "T"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tc.IsTrivial(tt.node, ExpansionMaximal); got != tt.expected {
				t.Fatalf("IsTrivial = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestReferenceCountedRules(t *testing.T) {
	ctx := types.NewContext()
	tc := NewTypeConverter(ctx)

	cls := ctx.RegisterClass("Widget")
	clsTy := ctx.ClassType(cls)
	void := ctx.Builtins().Void

	// A non-trivial compound aggregate is still not a scalar reference.
	pair := ctx.RegisterStruct("Pair")
	pair.SetFields([]types.Field{{Name: "a", Type: clsTy}, {Name: "b", Type: clsTy}})

	tests := []struct {
		name     string
		node     *types.Node
		expected bool
	}{
		{"class", clsTy, true},
		{"box", ctx.SILBoxType(ctx.Builtins().Word), true},
		{"native object", ctx.Builtins().NativeObject, true},
		{"bridge object", ctx.Builtins().BridgeObject, true},
		{"class-bound archetype", ctx.ArchetypeType("T", nil, clsTy), true},
		{"error existential", ctx.Builtins().Error, true},
		{"anyobject", ctx.Builtins().AnyObject, true},
		{"thick function", ctx.SILFunctionType(nil, void, types.RepThick, false, nil), true},
		{"thin function", ctx.SILFunctionType(nil, void, types.RepThin, false, nil), false},
		{"struct of references", ctx.StructType(pair), false},
		{"word", ctx.Builtins().Word, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tc.IsReferenceCounted(tt.node); got != tt.expected {
				t.Fatalf("IsReferenceCounted = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLoweredEnumPayload(t *testing.T) {
	ctx := types.NewContext()
	tc := NewTypeConverter(ctx)

	tParam := ctx.GenericParamType(0, 0, "T")
	result := ctx.RegisterEnum("Result")
	result.SetGenericParams([]*types.Node{tParam})
	result.SetCases([]types.EnumCase{
		{Name: "ok", Payload: tParam},
		{Name: "err", Payload: nil},
	})

	i64 := ctx.BuiltinIntegerType(64)
	bound := ctx.EnumType(result, i64)
	if got := tc.LoweredEnumPayloadType(bound, 0); got != i64 {
		t.Fatalf("payload substitution failed, got %v", got)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("payload access on a payload-free case must panic")
		}
	}()
	tc.LoweredEnumPayloadType(bound, 1)
}

func TestLoweredFieldBounds(t *testing.T) {
	ctx := types.NewContext()
	tc := NewTypeConverter(ctx)

	point := ctx.RegisterStruct("Point")
	point.SetFields([]types.Field{{Name: "x", Type: ctx.Builtins().Word}})
	defer func() {
		if recover() == nil {
			t.Fatalf("out-of-range field access must panic")
		}
	}()
	tc.LoweredFieldType(ctx.StructType(point), 1)
}
