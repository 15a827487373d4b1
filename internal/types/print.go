package types

import (
	"fmt"
	"strings"
)

// String renders the type close to surface syntax. SIL-only nodes use their
// @-attribute spelling.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	switch n.kind {
	case KindTuple:
		b.WriteByte('(')
		for i, e := range n.list {
			if i > 0 {
				b.WriteString(", ")
			}
			e.write(b)
		}
		b.WriteByte(')')

	case KindBuiltinInteger:
		if n.width == WordWidth {
			b.WriteString("Builtin.Word")
		} else {
			fmt.Fprintf(b, "Builtin.Int%d", n.width)
		}

	case KindBuiltinIntegerLiteral:
		b.WriteString("Builtin.IntLiteral")

	case KindBuiltinFloat:
		fmt.Fprintf(b, "Builtin.%s", n.fp)

	case KindBuiltinRawPointer:
		b.WriteString("Builtin.RawPointer")

	case KindBuiltinNativeObject:
		b.WriteString("Builtin.NativeObject")

	case KindBuiltinBridgeObject:
		b.WriteString("Builtin.BridgeObject")

	case KindStruct, KindClass, KindEnum:
		b.WriteString(n.decl.Name)
		if len(n.targs) > 0 {
			b.WriteByte('<')
			for i, a := range n.targs {
				if i > 0 {
					b.WriteString(", ")
				}
				a.write(b)
			}
			b.WriteByte('>')
		}

	case KindOptional:
		b.WriteString("Optional<")
		n.elem.write(b)
		b.WriteByte('>')

	case KindExistential:
		n.writeExistential(b)

	case KindExistentialMetatype:
		n.elem.write(b)
		b.WriteString(".Type")

	case KindMetatype:
		if n.metaRep == MetatypeThin {
			b.WriteString("@thin ")
		} else {
			b.WriteString("@thick ")
		}
		n.elem.write(b)
		b.WriteString(".Type")

	case KindFunction, KindSILFunction:
		if n.fn.Rep != RepThick {
			fmt.Fprintf(b, "@convention(%s) ", n.fn.Rep)
		}
		if n.kind == KindSILFunction && n.fn.IsGeneric() {
			b.WriteByte('<')
			for i, g := range n.fn.GenericParams {
				if i > 0 {
					b.WriteString(", ")
				}
				g.write(b)
			}
			b.WriteString("> ")
		}
		b.WriteByte('(')
		for i, p := range n.fn.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			p.write(b)
		}
		b.WriteString(") -> ")
		if n.fn.Result != nil {
			n.fn.Result.write(b)
		} else {
			b.WriteString("()")
		}

	case KindGenericParam:
		if n.name != "" {
			b.WriteString(n.name)
		} else {
			fmt.Fprintf(b, "τ_%d_%d", n.depth, n.index)
		}

	case KindArchetype:
		if n.name != "" {
			b.WriteString(n.name)
		} else {
			b.WriteString("@opened")
		}

	case KindLValue:
		b.WriteString("@lvalue ")
		n.elem.write(b)

	case KindReferenceStorage:
		fmt.Fprintf(b, "@sil_%s ", n.ownership)
		n.elem.write(b)

	case KindSILBox:
		b.WriteString("{ var ")
		n.elem.write(b)
		b.WriteString(" }")

	case KindSILToken:
		b.WriteString("Builtin.SILToken")

	default:
		b.WriteString("<<invalid>>")
	}
}

func (n *Node) writeExistential(b *strings.Builder) {
	if n.IsAnyObject() {
		b.WriteString("AnyObject")
		return
	}
	if len(n.protos) == 0 && n.super == nil && !n.anyObject {
		b.WriteString("Any")
		return
	}
	first := true
	sep := func() {
		if !first {
			b.WriteString(" & ")
		}
		first = false
	}
	if n.super != nil {
		sep()
		n.super.write(b)
	}
	for _, p := range n.protos {
		sep()
		b.WriteString(p.Name)
	}
	if n.anyObject {
		sep()
		b.WriteString("AnyObject")
	}
}

// MangledName returns a compact, stable diagnostic mangling without the
// global prefix.
func (n *Node) MangledName() string {
	var b strings.Builder
	n.mangle(&b)
	return b.String()
}

func (n *Node) mangle(b *strings.Builder) {
	switch n.kind {
	case KindTuple:
		b.WriteByte('t')
		for _, e := range n.list {
			e.mangle(b)
		}
		b.WriteByte('_')
	case KindBuiltinInteger:
		fmt.Fprintf(b, "Bi%d", n.width)
	case KindBuiltinIntegerLiteral:
		b.WriteString("BI")
	case KindBuiltinFloat:
		fmt.Fprintf(b, "Bf%d", n.fp.BitWidth())
	case KindBuiltinRawPointer:
		b.WriteString("Bp")
	case KindBuiltinNativeObject:
		b.WriteString("Bo")
	case KindBuiltinBridgeObject:
		b.WriteString("Bb")
	case KindStruct:
		fmt.Fprintf(b, "V%d%s", len(n.decl.Name), n.decl.Name)
		n.mangleArgs(b)
	case KindClass:
		fmt.Fprintf(b, "C%d%s", len(n.decl.Name), n.decl.Name)
		n.mangleArgs(b)
	case KindEnum:
		fmt.Fprintf(b, "O%d%s", len(n.decl.Name), n.decl.Name)
		n.mangleArgs(b)
	case KindOptional:
		n.elem.mangle(b)
		b.WriteString("Sg")
	case KindExistential:
		b.WriteByte('P')
		for _, p := range n.protos {
			fmt.Fprintf(b, "%d%s", len(p.Name), p.Name)
		}
		b.WriteByte('_')
	case KindExistentialMetatype:
		n.elem.mangle(b)
		b.WriteString("Xm")
	case KindMetatype:
		n.elem.mangle(b)
		b.WriteByte('m')
	case KindFunction:
		b.WriteByte('F')
		n.mangleFn(b)
	case KindSILFunction:
		b.WriteString("XF")
		n.mangleFn(b)
	case KindGenericParam:
		fmt.Fprintf(b, "q%d_%d", n.depth, n.index)
	case KindArchetype:
		fmt.Fprintf(b, "A%d%s", len(n.name), n.name)
	case KindLValue:
		b.WriteByte('l')
		n.elem.mangle(b)
	case KindReferenceStorage:
		if n.ownership == OwnershipWeak {
			b.WriteString("Xw")
		} else {
			b.WriteString("Xu")
		}
		n.elem.mangle(b)
	case KindSILBox:
		b.WriteString("Xb")
		n.elem.mangle(b)
	case KindSILToken:
		b.WriteString("Xt")
	}
}

func (n *Node) mangleArgs(b *strings.Builder) {
	if len(n.targs) == 0 {
		return
	}
	b.WriteByte('y')
	for _, a := range n.targs {
		a.mangle(b)
	}
	b.WriteByte('G')
}

func (n *Node) mangleFn(b *strings.Builder) {
	for _, p := range n.fn.Params {
		p.mangle(b)
	}
	b.WriteByte('_')
	if n.fn.Result != nil {
		n.fn.Result.mangle(b)
	}
}
