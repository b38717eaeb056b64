// Package normalized models the compiled interface of a Move module as
// returned by a fullnode: functions, structs, and the recursive type
// expressions they are built from. Snapshots are immutable value types.
package normalized

// TypeKind is the variant tag of a TypeExpr.
type TypeKind string

const (
	KindPrimitive        TypeKind = "primitive"
	KindVector           TypeKind = "vector"
	KindStructRef        TypeKind = "struct"
	KindTypeParameter    TypeKind = "type_parameter"
	KindReference        TypeKind = "reference"
	KindMutableReference TypeKind = "mutable_reference"
)

// TypeExpr is a recursive type expression. Exactly the fields matching Kind
// are populated; the rest stay zero.
type TypeExpr struct {
	Kind TypeKind `json:"kind"`

	// Primitive name (bool, u8, u16, u32, u64, u128, u256, address, signer).
	Name string `json:"name,omitempty"`

	// Vector element, or the referent of a (mutable) reference.
	Elem *TypeExpr `json:"elem,omitempty"`

	// Struct reference target with its generic instantiation.
	Struct *StructTag `json:"struct,omitempty"`

	// Index into the enclosing declaration's type parameter list.
	TypeParameter int `json:"type_parameter,omitempty"`
}

// StructTag names a struct type and its type arguments. Argument order is the
// generic instantiation order and is significant.
type StructTag struct {
	Address       string     `json:"address"`
	Module        string     `json:"module"`
	Name          string     `json:"name"`
	TypeArguments []TypeExpr `json:"type_arguments,omitempty"`
}

// Visibility of a Move function.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
	VisibilityFriend  Visibility = "friend"
)

// TypeParamConstraints is the ability constraint set of one function type
// parameter.
type TypeParamConstraints struct {
	Abilities []string `json:"abilities,omitempty"`
}

// StructTypeParam is one struct type parameter with its constraints.
type StructTypeParam struct {
	Constraints []string `json:"constraints,omitempty"`
	IsPhantom   bool     `json:"is_phantom,omitempty"`
}

// FunctionInterface is the callable surface of a single function.
type FunctionInterface struct {
	Name           string                 `json:"name"`
	Visibility     Visibility             `json:"visibility"`
	IsEntry        bool                   `json:"is_entry"`
	TypeParameters []TypeParamConstraints `json:"type_parameters,omitempty"`
	Parameters     []TypeExpr             `json:"parameters,omitempty"`
	Returns        []TypeExpr             `json:"returns,omitempty"`
}

// FieldInterface is a named struct field.
type FieldInterface struct {
	Name string   `json:"name"`
	Type TypeExpr `json:"type"`
}

// StructInterface is the visible shape of a single struct. Abilities are a
// set; they are stored sorted so equal sets compare equal. Field order is the
// declaration order.
type StructInterface struct {
	Name           string            `json:"name"`
	Abilities      []string          `json:"abilities,omitempty"`
	TypeParameters []StructTypeParam `json:"type_parameters,omitempty"`
	Fields         []FieldInterface  `json:"fields,omitempty"`
}

// ModuleInterface is one module's exposed functions and structs, keyed by
// name. Two of these (before/after) are the per-module diff input.
type ModuleInterface struct {
	Name      string                       `json:"name"`
	Functions map[string]FunctionInterface `json:"functions"`
	Structs   map[string]StructInterface   `json:"structs"`
}
