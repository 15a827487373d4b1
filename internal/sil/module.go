package sil

import (
	"fmt"

	"sable/internal/types"
)

// ResilienceExpansion is the degree to which cross-module layout details may
// be assumed. Minimal expansion treats resilient layouts as opaque.
type ResilienceExpansion uint8

const (
	ExpansionMinimal ResilienceExpansion = iota
	ExpansionMaximal
)

func (e ResilienceExpansion) String() string {
	switch e {
	case ExpansionMinimal:
		return "minimal"
	case ExpansionMaximal:
		return "maximal"
	default:
		return fmt.Sprintf("ResilienceExpansion(%d)", e)
	}
}

// Options configures module-wide SIL conventions.
type Options struct {
	// LoweredAddresses keeps address-only values behind addresses through
	// the whole pipeline instead of using opaque values.
	LoweredAddresses bool
}

// Module is the SIL-side context: the canonical type arena, the lowering
// oracle, and module conventions. One module is built by one goroutine.
type Module struct {
	types     *types.Context
	converter *TypeConverter
	opts      Options
}

// NewModule creates a module over the given type context.
func NewModule(ctx *types.Context, opts Options) *Module {
	return &Module{
		types:     ctx,
		converter: NewTypeConverter(ctx),
		opts:      opts,
	}
}

// Types returns the canonical type context.
func (m *Module) Types() *types.Context { return m.types }

// Converter returns the module's lowering oracle.
func (m *Module) Converter() *TypeConverter { return m.converter }

// Options returns the module conventions.
func (m *Module) Options() Options { return m.opts }

// UseLoweredAddresses reports whether the module keeps address-only values
// behind addresses.
func (m *Module) UseLoweredAddresses() bool { return m.opts.LoweredAddresses }

// Function carries the per-function context type queries depend on: the
// owning module and the resilience expansion the body is emitted under.
type Function struct {
	name      string
	module    *Module
	expansion ResilienceExpansion
}

// NewFunction registers a function context within the module.
func (m *Module) NewFunction(name string, expansion ResilienceExpansion) *Function {
	return &Function{name: name, module: m, expansion: expansion}
}

// Name returns the function's name.
func (f *Function) Name() string { return f.name }

// Module returns the owning module.
func (f *Function) Module() *Module { return f.module }

// ResilienceExpansion returns the expansion the body is emitted under.
func (f *Function) ResilienceExpansion() ResilienceExpansion { return f.expansion }
