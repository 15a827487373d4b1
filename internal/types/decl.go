package types

// DeclKind distinguishes the nominal declaration flavors.
type DeclKind uint8

const (
	DeclStruct DeclKind = iota
	DeclClass
	DeclEnum
)

func (k DeclKind) String() string {
	switch k {
	case DeclStruct:
		return "struct"
	case DeclClass:
		return "class"
	case DeclEnum:
		return "enum"
	default:
		return "invalid"
	}
}

// Field describes a stored property of a struct or class. The type is an
// interface type: it may reference the declaration's generic parameters.
type Field struct {
	Name string
	Type *Node
}

// EnumCase describes one case of an enum. Payload is nil for no-payload cases.
type EnumCase struct {
	Name    string
	Payload *Node
}

// Decl is the metadata record for a nominal declaration. Nominal type nodes
// bind a Decl plus concrete generic arguments. Decls are registered through a
// Context and compared by pointer.
type Decl struct {
	Kind          DeclKind
	Name          string
	GenericParams []*Node // KindGenericParam nodes, in declaration order

	Fields []Field    // struct and class stored properties
	Cases  []EnumCase // enum cases

	Superclass *Node // class only; may reference GenericParams

	// Resilient marks a declaration whose layout is hidden across module
	// boundaries; it is address-only under minimal resilience expansion.
	Resilient bool

	// HasUnreferenceableStorage marks aggregates with storage SIL cannot
	// destructure, e.g. imported C arrays.
	HasUnreferenceableStorage bool

	id uint32
}

// SetFields stores the declaration's stored properties.
func (d *Decl) SetFields(fields []Field) {
	d.Fields = append([]Field(nil), fields...)
}

// SetCases stores the enum's cases.
func (d *Decl) SetCases(cases []EnumCase) {
	d.Cases = append([]EnumCase(nil), cases...)
}

// SetSuperclass stores the immediate superclass type of a class declaration.
func (d *Decl) SetSuperclass(super *Node) {
	d.Superclass = super
}

// SetGenericParams stores the declaration's generic parameters.
func (d *Decl) SetGenericParams(params []*Node) {
	for _, p := range params {
		if p.kind != KindGenericParam {
			panic("types: generic parameter must be a KindGenericParam node")
		}
	}
	d.GenericParams = append([]*Node(nil), params...)
}

// FieldIndex returns the index of the named stored property, or -1.
func (d *Decl) FieldIndex(name string) int {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return i
		}
	}
	return -1
}

// CaseIndex returns the index of the named enum case, or -1.
func (d *Decl) CaseIndex(name string) int {
	for i := range d.Cases {
		if d.Cases[i].Name == name {
			return i
		}
	}
	return -1
}

// Protocol describes a protocol for existential composition purposes.
// Protocols are registered through a Context and compared by pointer.
type Protocol struct {
	Name string

	// ClassConstrained restricts conforming types to classes.
	ClassConstrained bool

	// Error marks the error protocol; existentials of it use the boxed
	// representation.
	Error bool

	id uint32
}
