package metadata

import (
	"strconv"
	"strings"
)

// Element is any node of the metadata tree that a filter can decide on.
type Element interface {
	ElementKind() ElementKind
	DocID() string
}

// Assembly is one loaded module.
type Assembly struct {
	Name         string         `yaml:"name" toml:"name" json:"name"`
	Version      string         `yaml:"version,omitempty" toml:"version,omitempty" json:"version,omitempty"`
	References   []string       `yaml:"references,omitempty" toml:"references,omitempty" json:"references,omitempty"`
	Attributes   []*Attribute   `yaml:"attributes,omitempty" toml:"attributes,omitempty" json:"attributes,omitempty"`
	Namespaces   []*Namespace   `yaml:"namespaces,omitempty" toml:"namespaces,omitempty" json:"namespaces,omitempty"`
	TypeForwards []*TypeForward `yaml:"forwards,omitempty" toml:"forwards,omitempty" json:"forwards,omitempty"`

	types map[string]*Type
}

func (a *Assembly) ElementKind() ElementKind { return KindAssembly }
func (a *Assembly) DocID() string            { return "A:" + a.Name }

// GrantsInternals reports whether the assembly carries an internals grant
// marker. The grantee is not inspected.
func (a *Assembly) GrantsInternals() bool {
	return hasAttribute(a.Attributes, InternalsVisibleToAttribute)
}

// FindType looks a type up by full name, nested types included.
func (a *Assembly) FindType(fullName string) *Type {
	if a.types == nil {
		return nil
	}
	return a.types[fullName]
}

// Types returns every top-level type of every namespace, in namespace order.
func (a *Assembly) Types() []*Type {
	var out []*Type
	for _, ns := range a.Namespaces {
		out = append(out, ns.Types...)
	}
	return out
}

// Namespace groups the types of one assembly sharing a namespace name.
type Namespace struct {
	Name  string  `yaml:"name" toml:"name" json:"name"`
	Types []*Type `yaml:"types,omitempty" toml:"types,omitempty" json:"types,omitempty"`

	assembly *Assembly
}

func (n *Namespace) ElementKind() ElementKind { return KindNamespace }
func (n *Namespace) DocID() string            { return "N:" + n.Name }

// Assembly returns the owning assembly.
func (n *Namespace) Assembly() *Assembly { return n.assembly }

// Type is a type definition.
type Type struct {
	Name              string       `yaml:"name" toml:"name" json:"name"`
	Kind              TypeKind     `yaml:"kind,omitempty" toml:"kind,omitempty" json:"kind,omitempty"`
	Visibility        Visibility   `yaml:"visibility,omitempty" toml:"visibility,omitempty" json:"visibility,omitempty"`
	Static            bool         `yaml:"static,omitempty" toml:"static,omitempty" json:"static,omitempty"`
	Abstract          bool         `yaml:"abstract,omitempty" toml:"abstract,omitempty" json:"abstract,omitempty"`
	Sealed            bool         `yaml:"sealed,omitempty" toml:"sealed,omitempty" json:"sealed,omitempty"`
	ReadOnly          bool         `yaml:"readonly,omitempty" toml:"readonly,omitempty" json:"readonly,omitempty"`
	RefLike           bool         `yaml:"ref,omitempty" toml:"ref,omitempty" json:"ref,omitempty"`
	Record            bool         `yaml:"record,omitempty" toml:"record,omitempty" json:"record,omitempty"`
	GenericParameters []string     `yaml:"generics,omitempty" toml:"generics,omitempty" json:"generics,omitempty"`
	BaseType          *TypeRef     `yaml:"base,omitempty" toml:"base,omitempty" json:"base,omitempty"`
	Interfaces        []TypeRef    `yaml:"interfaces,omitempty" toml:"interfaces,omitempty" json:"interfaces,omitempty"`
	Attributes        []*Attribute `yaml:"attributes,omitempty" toml:"attributes,omitempty" json:"attributes,omitempty"`
	Members           []*Member    `yaml:"members,omitempty" toml:"members,omitempty" json:"members,omitempty"`
	NestedTypes       []*Type      `yaml:"nested,omitempty" toml:"nested,omitempty" json:"nested,omitempty"`

	namespace     *Namespace
	declaringType *Type
}

func (t *Type) ElementKind() ElementKind { return KindType }
func (t *Type) DocID() string            { return "T:" + t.FullName() }

// Namespace returns the namespace the type (or its outermost declaring
// type) lives in.
func (t *Type) Namespace() *Namespace {
	for t.declaringType != nil {
		t = t.declaringType
	}
	return t.namespace
}

// DeclaringType returns the enclosing type of a nested type, nil otherwise.
func (t *Type) DeclaringType() *Type { return t.declaringType }

// Assembly returns the owning assembly.
func (t *Type) Assembly() *Assembly {
	if ns := t.Namespace(); ns != nil {
		return ns.assembly
	}
	return nil
}

// MetadataName is the simple name with its generic arity suffix.
func (t *Type) MetadataName() string {
	if n := len(t.GenericParameters); n > 0 {
		return t.Name + "`" + strconv.Itoa(n)
	}
	return t.Name
}

// FullName is the namespace-qualified metadata name, nested types joined
// with dots.
func (t *Type) FullName() string {
	name := t.MetadataName()
	if t.declaringType != nil {
		return t.declaringType.FullName() + "." + name
	}
	if t.namespace != nil && t.namespace.Name != "" {
		return t.namespace.Name + "." + name
	}
	return name
}

// DisplayName is the source form of the simple name, e.g. Bag<T>.
func (t *Type) DisplayName() string {
	if len(t.GenericParameters) == 0 {
		return t.Name
	}
	return t.Name + "<" + strings.Join(t.GenericParameters, ", ") + ">"
}

// AllGenericParameters returns the generic parameters of every enclosing
// type followed by the type's own, outermost first.
func (t *Type) AllGenericParameters() []string {
	var out []string
	if t.declaringType != nil {
		out = append(out, t.declaringType.AllGenericParameters()...)
	}
	return append(out, t.GenericParameters...)
}

// HasAttribute reports whether an attribute of the given full type name is
// applied to the type.
func (t *Type) HasAttribute(fullName string) bool {
	return hasAttribute(t.Attributes, fullName)
}

// IsCompilerGenerated reports whether the type is marked as synthesized.
func (t *Type) IsCompilerGenerated() bool {
	return t.HasAttribute(CompilerGeneratedAttribute)
}

// Member is a field, property, method, constructor or event.
type Member struct {
	Name              string       `yaml:"name" toml:"name" json:"name"`
	Kind              MemberKind   `yaml:"kind" toml:"kind" json:"kind"`
	Visibility        Visibility   `yaml:"visibility,omitempty" toml:"visibility,omitempty" json:"visibility,omitempty"`
	Static            bool         `yaml:"static,omitempty" toml:"static,omitempty" json:"static,omitempty"`
	Virtual           bool         `yaml:"virtual,omitempty" toml:"virtual,omitempty" json:"virtual,omitempty"`
	Abstract          bool         `yaml:"abstract,omitempty" toml:"abstract,omitempty" json:"abstract,omitempty"`
	Override          bool         `yaml:"override,omitempty" toml:"override,omitempty" json:"override,omitempty"`
	Sealed            bool         `yaml:"sealed,omitempty" toml:"sealed,omitempty" json:"sealed,omitempty"`
	ReadOnly          bool         `yaml:"readonly,omitempty" toml:"readonly,omitempty" json:"readonly,omitempty"`
	Required          bool         `yaml:"required,omitempty" toml:"required,omitempty" json:"required,omitempty"`
	Const             bool         `yaml:"const,omitempty" toml:"const,omitempty" json:"const,omitempty"`
	Value             string       `yaml:"value,omitempty" toml:"value,omitempty" json:"value,omitempty"`
	Type              *TypeRef     `yaml:"type,omitempty" toml:"type,omitempty" json:"type,omitempty"`
	GenericParameters []string     `yaml:"generics,omitempty" toml:"generics,omitempty" json:"generics,omitempty"`
	Parameters        []Parameter  `yaml:"parameters,omitempty" toml:"parameters,omitempty" json:"parameters,omitempty"`
	Getter            bool         `yaml:"get,omitempty" toml:"get,omitempty" json:"get,omitempty"`
	Setter            bool         `yaml:"set,omitempty" toml:"set,omitempty" json:"set,omitempty"`
	InitOnly          bool         `yaml:"init,omitempty" toml:"init,omitempty" json:"init,omitempty"`
	Implements        string       `yaml:"implements,omitempty" toml:"implements,omitempty" json:"implements,omitempty"`
	Attributes        []*Attribute `yaml:"attributes,omitempty" toml:"attributes,omitempty" json:"attributes,omitempty"`

	declaringType *Type
}

func (m *Member) ElementKind() ElementKind { return m.Kind.ElementKind() }

// DocID returns the canonical identifier of the member.
func (m *Member) DocID() string {
	var b strings.Builder
	b.WriteString(docIDPrefix(m.Kind.ElementKind()))
	if m.declaringType != nil {
		b.WriteString(m.declaringType.FullName())
		b.WriteByte('.')
	}
	b.WriteString(m.docIDName())
	if n := len(m.GenericParameters); n > 0 && m.Kind == Method {
		b.WriteString("``")
		b.WriteString(strconv.Itoa(n))
	}
	if len(m.Parameters) > 0 && (m.Kind == Method || m.Kind == Constructor || m.Kind == Property) {
		b.WriteByte('(')
		for i, p := range m.Parameters {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(m.refID(p.Type))
			if p.IsByRef() {
				b.WriteByte('@')
			}
		}
		b.WriteByte(')')
	}
	return b.String()
}

func (m *Member) docIDName() string {
	if m.Kind == Constructor {
		if m.Static {
			return "#cctor"
		}
		return "#ctor"
	}
	return strings.ReplaceAll(m.Name, ".", "#")
}

// refID renders a type reference in the parameter-list form used inside
// member ids: generic arguments in braces, generic parameters by position.
func (m *Member) refID(r TypeRef) string {
	var s string
	switch {
	case r.Generic:
		s = m.genericPosition(r.Name)
	case len(r.Arguments) > 0:
		args := make([]string, len(r.Arguments))
		for i, a := range r.Arguments {
			args[i] = m.refID(a)
		}
		s = stripArity(r.Name) + "{" + strings.Join(args, ",") + "}"
	default:
		s = r.Name
	}
	return s + strings.Repeat("[]", r.ArrayRank)
}

func (m *Member) genericPosition(name string) string {
	for i, p := range m.GenericParameters {
		if p == name {
			return "``" + strconv.Itoa(i)
		}
	}
	if m.declaringType != nil {
		for i, p := range m.declaringType.AllGenericParameters() {
			if p == name {
				return "`" + strconv.Itoa(i)
			}
		}
	}
	return name
}

// DeclaringType returns the type that declares the member.
func (m *Member) DeclaringType() *Type { return m.declaringType }

// HasAttribute reports whether an attribute of the given full type name is
// applied to the member.
func (m *Member) HasAttribute(fullName string) bool {
	return hasAttribute(m.Attributes, fullName)
}

// IsCompilerGenerated reports whether the member is marked as synthesized.
func (m *Member) IsCompilerGenerated() bool {
	return m.HasAttribute(CompilerGeneratedAttribute)
}

// SignatureTypes returns the declared type followed by every parameter
// type, skipping an absent declared type.
func (m *Member) SignatureTypes() []TypeRef {
	out := make([]TypeRef, 0, len(m.Parameters)+1)
	if m.Type != nil {
		out = append(out, *m.Type)
	}
	for _, p := range m.Parameters {
		out = append(out, p.Type)
	}
	return out
}

// Parameter is one formal parameter of a method, constructor or indexer.
type Parameter struct {
	Name     string  `yaml:"name" toml:"name" json:"name"`
	Type     TypeRef `yaml:"type" toml:"type" json:"type"`
	Modifier string  `yaml:"modifier,omitempty" toml:"modifier,omitempty" json:"modifier,omitempty"`
	Default  string  `yaml:"default,omitempty" toml:"default,omitempty" json:"default,omitempty"`
}

// IsByRef reports whether the parameter is passed by reference.
func (p Parameter) IsByRef() bool {
	switch p.Modifier {
	case "ref", "out", "in":
		return true
	}
	return false
}

// TypeRef names a type by its full metadata name. Generic parameters are
// referenced by name with Generic set.
type TypeRef struct {
	Name      string    `yaml:"name" toml:"name" json:"name"`
	Assembly  string    `yaml:"assembly,omitempty" toml:"assembly,omitempty" json:"assembly,omitempty"`
	Arguments []TypeRef `yaml:"args,omitempty" toml:"args,omitempty" json:"args,omitempty"`
	ArrayRank int       `yaml:"array,omitempty" toml:"array,omitempty" json:"array,omitempty"`
	Nullable  bool      `yaml:"nullable,omitempty" toml:"nullable,omitempty" json:"nullable,omitempty"`
	Generic   bool      `yaml:"generic,omitempty" toml:"generic,omitempty" json:"generic,omitempty"`

	resolved *Type
}

// DocID returns the type id of the referenced definition, ignoring generic
// arguments and array shape. Generic parameter references have no id.
func (r TypeRef) DocID() string {
	if r.Generic || r.Name == "" {
		return ""
	}
	return "T:" + r.Name
}

// Resolved returns the referenced definition when the host could find it.
func (r TypeRef) Resolved() *Type { return r.resolved }

// Attribute is one application of an attribute type to an element.
type Attribute struct {
	Type      TypeRef  `yaml:"type" toml:"type" json:"type"`
	Arguments []string `yaml:"args,omitempty" toml:"args,omitempty" json:"args,omitempty"`

	target Element
}

func (a *Attribute) ElementKind() ElementKind { return KindAttribute }

// DocID returns the id of the attribute type.
func (a *Attribute) DocID() string { return a.Type.DocID() }

// Target returns the element the attribute is applied to.
func (a *Attribute) Target() Element { return a.target }

// TypeForward declares that a type now lives in another assembly
// (Type.Assembly names the destination).
type TypeForward struct {
	Type TypeRef `yaml:"type" toml:"type" json:"type"`

	assembly *Assembly
}

func (f *TypeForward) ElementKind() ElementKind { return KindTypeForward }
func (f *TypeForward) DocID() string            { return f.Type.DocID() }

// Assembly returns the forwarding assembly.
func (f *TypeForward) Assembly() *Assembly { return f.assembly }

// Resolved returns the forwarded type definition when the destination
// assembly could be loaded.
func (f *TypeForward) Resolved() *Type { return f.Type.resolved }

func hasAttribute(attrs []*Attribute, fullName string) bool {
	for _, a := range attrs {
		if a.Type.Name == fullName {
			return true
		}
	}
	return false
}

func docIDPrefix(k ElementKind) string {
	switch k {
	case KindAssembly:
		return "A:"
	case KindNamespace:
		return "N:"
	case KindField:
		return "F:"
	case KindProperty:
		return "P:"
	case KindMethod:
		return "M:"
	case KindEvent:
		return "E:"
	default:
		return "T:"
	}
}

func stripArity(name string) string {
	if i := strings.LastIndexByte(name, '`'); i >= 0 {
		return name[:i]
	}
	return name
}
