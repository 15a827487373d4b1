package sil

import (
	"testing"

	"sable/internal/types"
)

func TestPreferredExistentialRepresentation(t *testing.T) {
	ctx := types.NewContext()
	proto := ctx.RegisterProtocol("P", false, false)
	classProto := ctx.RegisterProtocol("CP", true, false)
	cls := ctx.RegisterClass("Widget")
	clsTy := ctx.ClassType(cls)

	opaque := PrimitiveObject(ctx.ExistentialType([]*types.Protocol{proto}, nil, false))
	classEx := PrimitiveObject(ctx.ExistentialType([]*types.Protocol{classProto}, nil, false))
	errEx := ExceptionType(ctx)
	metaEx := PrimitiveObject(ctx.ExistentialMetatypeType(ctx.Builtins().Any))

	tests := []struct {
		name      string
		handle    Type
		contained *types.Node
		expected  ExistentialRepresentation
	}{
		{"non-existential", BuiltinWordType(ctx), nil, ReprNone},
		{"opaque composition", opaque, nil, ReprOpaque},
		{"class existential", classEx, nil, ReprClass},
		{"anyobject", PrimitiveObject(ctx.Builtins().AnyObject), nil, ReprClass},
		{"error", errEx, nil, ReprBoxed},
		{"error adopting a class", errEx, clsTy, ReprClass},
		{"error holding a word", errEx, ctx.Builtins().Word, ReprBoxed},
		{"existential metatype", metaEx, nil, ReprMetatype},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.handle.PreferredExistentialRepresentation(tt.contained); got != tt.expected {
				t.Fatalf("representation = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCanUseExistentialRepresentation(t *testing.T) {
	ctx := types.NewContext()
	proto := ctx.RegisterProtocol("P", false, false)
	classProto := ctx.RegisterProtocol("CP", true, false)
	cls := ctx.RegisterClass("Widget")
	clsTy := ctx.ClassType(cls)

	opaque := PrimitiveObject(ctx.ExistentialType([]*types.Protocol{proto}, nil, false))
	classEx := PrimitiveObject(ctx.ExistentialType([]*types.Protocol{classProto}, nil, false))
	errEx := ExceptionType(ctx)
	metaEx := PrimitiveObject(ctx.ExistentialMetatypeType(ctx.Builtins().Any))
	word := BuiltinWordType(ctx)

	tests := []struct {
		name      string
		handle    Type
		repr      ExistentialRepresentation
		contained *types.Node
		expected  bool
	}{
		{"opaque in opaque", opaque, ReprOpaque, nil, true},
		{"class in opaque", opaque, ReprClass, nil, false},
		{"class in class existential", classEx, ReprClass, nil, true},
		{"opaque in class existential", classEx, ReprOpaque, nil, false},
		{"boxed in error", errEx, ReprBoxed, nil, true},
		{"class ref in error", errEx, ReprClass, clsTy, true},
		{"unknown class in error", errEx, ReprClass, nil, false},
		{"word as class in error", errEx, ReprClass, ctx.Builtins().Word, false},
		{"metatype in metatype existential", metaEx, ReprMetatype, nil, true},
		{"boxed in metatype existential", metaEx, ReprBoxed, nil, false},
		{"none on non-existential", word, ReprNone, nil, true},
		{"none on existential", opaque, ReprNone, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.handle.CanUseExistentialRepresentation(tt.repr, tt.contained); got != tt.expected {
				t.Fatalf("CanUseExistentialRepresentation = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPreferredMatchesCanUse(t *testing.T) {
	ctx := types.NewContext()
	proto := ctx.RegisterProtocol("P", false, false)
	classProto := ctx.RegisterProtocol("CP", true, false)
	cls := ctx.RegisterClass("Widget")
	clsTy := ctx.ClassType(cls)

	handles := []Type{
		PrimitiveObject(ctx.ExistentialType([]*types.Protocol{proto}, nil, false)),
		PrimitiveObject(ctx.ExistentialType([]*types.Protocol{classProto}, nil, false)),
		PrimitiveObject(ctx.Builtins().AnyObject),
		ExceptionType(ctx),
		PrimitiveObject(ctx.ExistentialMetatypeType(ctx.Builtins().Any)),
	}
	contained := []*types.Node{nil, clsTy, ctx.Builtins().Word}

	for _, h := range handles {
		for _, c := range contained {
			repr := h.PreferredExistentialRepresentation(c)
			if !h.CanUseExistentialRepresentation(repr, c) {
				t.Fatalf("preferred representation %v of %s rejected for contained %v", repr, h, c)
			}
		}
	}
}
