package types

// SubstitutionFn maps a generic parameter or archetype leaf to its
// replacement. Returning nil leaves the leaf unchanged.
type SubstitutionFn func(*Node) *Node

// ConformanceLookupFn answers whether the replacement for original still
// conforms to proto. Substitution carries the callback through to the
// caller's oracle; it does not interpret conformances itself.
type ConformanceLookupFn func(original, replacement *Node, proto *Protocol) bool

// SubstMap is the common shorthand: a direct generic-parameter (or
// archetype) to type mapping.
type SubstMap map[*Node]*Node

// Fn adapts the map to a SubstitutionFn.
func (m SubstMap) Fn() SubstitutionFn {
	return func(n *Node) *Node {
		return m[n]
	}
}

// SubstOptions tunes substitution behavior.
type SubstOptions struct {
	// SubstituteOpaqueArchetypes also replaces archetypes opened from
	// existentials; by default only contextual archetypes and generic
	// parameters are replaced.
	SubstituteOpaqueArchetypes bool
}

// Subst rebuilds n with generic parameters and archetypes replaced.
// Substitution-free subtrees are returned as-is, so identity is preserved
// where nothing changes.
func (c *Context) Subst(n *Node, subs SubstitutionFn, conf ConformanceLookupFn, opts SubstOptions) *Node {
	if n == nil {
		return nil
	}
	if !n.HasTypeParameter() && !n.HasArchetype() {
		return n
	}
	if subs == nil {
		return n
	}

	switch n.kind {
	case KindGenericParam:
		if repl := subs(n); repl != nil {
			return repl
		}
		return n

	case KindArchetype:
		if n.opened && !opts.SubstituteOpaqueArchetypes {
			return n
		}
		repl := subs(n)
		if repl == nil {
			return n
		}
		if conf != nil {
			for _, p := range n.protos {
				if !conf(n, repl, p) {
					panic("types: substitution breaks a conformance requirement")
				}
			}
		}
		return repl

	case KindTuple:
		elems := make([]*Node, len(n.list))
		for i, e := range n.list {
			elems[i] = c.Subst(e, subs, conf, opts)
		}
		return c.TupleType(elems...)

	case KindOptional:
		return c.OptionalType(c.Subst(n.elem, subs, conf, opts))

	case KindStruct, KindClass, KindEnum:
		targs := make([]*Node, len(n.targs))
		for i, a := range n.targs {
			targs[i] = c.Subst(a, subs, conf, opts)
		}
		return c.nominalType(n.decl.Kind, n.kind, n.decl, targs)

	case KindExistential:
		var super *Node
		if n.super != nil {
			super = c.Subst(n.super, subs, conf, opts)
		}
		return c.ExistentialType(n.protos, super, n.anyObject)

	case KindExistentialMetatype:
		return c.ExistentialMetatypeType(c.Subst(n.elem, subs, conf, opts))

	case KindMetatype:
		return c.MetatypeType(c.Subst(n.elem, subs, conf, opts), n.metaRep)

	case KindFunction, KindSILFunction:
		params := make([]*Node, len(n.fn.Params))
		for i, p := range n.fn.Params {
			params[i] = c.Subst(p, subs, conf, opts)
		}
		result := c.Subst(n.fn.Result, subs, conf, opts)
		if n.kind == KindFunction {
			return c.FunctionType(params, result, n.fn.Rep, n.fn.NoReturn)
		}
		return c.SILFunctionType(params, result, n.fn.Rep, n.fn.NoReturn, n.fn.GenericParams)

	case KindLValue:
		return c.LValueType(c.Subst(n.elem, subs, conf, opts))

	case KindReferenceStorage:
		return c.ReferenceStorageType(n.ownership, c.Subst(n.elem, subs, conf, opts))

	case KindSILBox:
		return c.SILBoxType(c.Subst(n.elem, subs, conf, opts))

	default:
		return n
	}
}

// SubstGenericArgs replaces the interface generic parameters of a function
// type and drops them from the signature.
func (c *Context) SubstGenericArgs(fnType *Node, subs SubstMap) *Node {
	info := fnType.FnInfo()
	if info == nil {
		panic("types: SubstGenericArgs requires a function type")
	}
	if !info.IsGeneric() {
		return fnType
	}
	opts := SubstOptions{}
	params := make([]*Node, len(info.Params))
	for i, p := range info.Params {
		params[i] = c.Subst(p, subs.Fn(), nil, opts)
	}
	result := c.Subst(info.Result, subs.Fn(), nil, opts)
	if fnType.kind == KindFunction {
		return c.FunctionType(params, result, info.Rep, info.NoReturn)
	}
	return c.SILFunctionType(params, result, info.Rep, info.NoReturn, nil)
}
