package metadata

// ElementKind identifies the node type of an Element.
type ElementKind string

const (
	KindAssembly    ElementKind = "assembly"
	KindNamespace   ElementKind = "namespace"
	KindType        ElementKind = "type"
	KindField       ElementKind = "field"
	KindProperty    ElementKind = "property"
	KindMethod      ElementKind = "method"
	KindEvent       ElementKind = "event"
	KindAttribute   ElementKind = "attribute"
	KindTypeForward ElementKind = "typeforward"
)

// Visibility is the declared accessibility of a type or member.
type Visibility string

const (
	Public            Visibility = "public"
	Protected         Visibility = "protected"
	ProtectedInternal Visibility = "protected internal"
	Internal          Visibility = "internal"
	PrivateProtected  Visibility = "private protected"
	Private           Visibility = "private"
)

// Keyword returns the source keyword(s) for v. An unset visibility renders
// as public.
func (v Visibility) Keyword() string {
	if v == "" {
		return string(Public)
	}
	return string(v)
}

// Normalize maps the unset value to Public.
func (v Visibility) Normalize() Visibility {
	if v == "" {
		return Public
	}
	return v
}

// TypeKind is the declaration form of a type.
type TypeKind string

const (
	Class     TypeKind = "class"
	Struct    TypeKind = "struct"
	Interface TypeKind = "interface"
	Enum      TypeKind = "enum"
	Delegate  TypeKind = "delegate"
)

// MemberKind is the declaration form of a member.
type MemberKind string

const (
	Field       MemberKind = "field"
	Property    MemberKind = "property"
	Method      MemberKind = "method"
	Constructor MemberKind = "constructor"
	Event       MemberKind = "event"
)

// ElementKind maps a member kind onto the element kind used for filtering
// and for DocId prefixes. Constructors are methods.
func (k MemberKind) ElementKind() ElementKind {
	switch k {
	case Field:
		return KindField
	case Property:
		return KindProperty
	case Event:
		return KindEvent
	default:
		return KindMethod
	}
}

// Well-known attribute types.
const (
	InternalsVisibleToAttribute = "System.Runtime.CompilerServices.InternalsVisibleToAttribute"
	CompilerGeneratedAttribute  = "System.Runtime.CompilerServices.CompilerGeneratedAttribute"
	TypeForwardedToAttribute    = "System.Runtime.CompilerServices.TypeForwardedToAttribute"
)
