package writers

import (
	"sort"
	"strings"

	"github.com/arthur-debert/apishape/pkg/filter"
	"github.com/arthur-debert/apishape/pkg/langversion"
	"github.com/arthur-debert/apishape/pkg/logging"
	"github.com/arthur-debert/apishape/pkg/metadata"
	"github.com/arthur-debert/apishape/pkg/syntax"
	"github.com/rs/zerolog"
)

const notSupported = "System.PlatformNotSupportedException"

// declarations renders the filtered surface as source-like declarations.
// In listing mode it renders namespaces and type headers only.
type declarations struct {
	r       syntax.Renderer
	filter  filter.Filter
	opts    Options
	names   namer
	listing bool
	logger  zerolog.Logger
}

func newDeclarations(r syntax.Renderer, f filter.Filter, opts Options, listing bool) *declarations {
	return &declarations{
		r:       r,
		filter:  f,
		opts:    opts,
		names:   newNamer(opts),
		listing: listing,
		logger:  logging.GetLogger("writers.declarations"),
	}
}

func (d *declarations) WriteAssemblies(assemblies []*metadata.Assembly) error {
	for _, a := range assemblies {
		if !d.filter.Includes(a) {
			continue
		}
		d.logger.Debug().Str("assembly", a.Name).Bool("listing", d.listing).Msg("rendering assembly")
		d.assembly(a)
	}
	return nil
}

func (d *declarations) Close() error { return d.r.Flush() }

type namespaceGroup struct {
	name  string
	types []*metadata.Type
}

func (d *declarations) assembly(a *metadata.Assembly) {
	if !d.listing {
		wrote := false
		for _, at := range a.Attributes {
			if d.attributeIncluded(at) {
				d.attribute(at, true)
				wrote = true
			}
		}
		if !d.opts.FollowTypeForwards {
			for _, fw := range a.TypeForwards {
				if forwardIncluded(d.filter, fw) {
					d.forward(fw)
					wrote = true
				}
			}
		}
		if wrote {
			d.r.LineBreak()
		}
	}

	for _, g := range d.namespaces(a) {
		if g.name == "" {
			for _, t := range g.types {
				d.typ(t)
			}
			continue
		}
		d.r.Keyword("namespace")
		d.r.Space()
		d.r.Identifier(g.name)
		d.r.OpenBlock()
		for _, t := range g.types {
			d.typ(t)
		}
		d.r.CloseBlock()
	}
}

// namespaces groups the included top-level types by namespace name. When
// following forwards, resolved forwarded types join the namespace they
// are declared in.
func (d *declarations) namespaces(a *metadata.Assembly) []namespaceGroup {
	byName := map[string][]*metadata.Type{}
	for _, ns := range a.Namespaces {
		if !d.filter.Includes(ns) {
			continue
		}
		for _, t := range ns.Types {
			if d.filter.Includes(t) {
				byName[ns.Name] = append(byName[ns.Name], t)
			}
		}
	}
	if d.opts.FollowTypeForwards {
		for _, fw := range a.TypeForwards {
			t := fw.Resolved()
			if t == nil || !forwardIncluded(d.filter, fw) {
				continue
			}
			name := ""
			if ns := t.Namespace(); ns != nil {
				name = ns.Name
			}
			byName[name] = append(byName[name], t)
		}
	}

	groups := make([]namespaceGroup, 0, len(byName))
	for name, types := range byName {
		if len(types) > 0 {
			groups = append(groups, namespaceGroup{name: name, types: types})
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].name < groups[j].name })
	return groups
}

func (d *declarations) typ(t *metadata.Type) {
	if !d.listing {
		for _, at := range t.Attributes {
			if d.attributeIncluded(at) {
				d.attribute(at, false)
			}
		}
	}

	if t.Kind == metadata.Delegate {
		d.delegate(t)
		return
	}

	d.typeModifiers(t)
	d.r.Identifier(t.DisplayName())
	d.baseList(t)
	d.r.OpenBlock()
	if !d.listing {
		d.members(t)
	}
	for _, n := range t.NestedTypes {
		if d.filter.Includes(n) {
			d.typ(n)
		}
	}
	d.r.CloseBlock()
}

func (d *declarations) typeModifiers(t *metadata.Type) {
	d.keyword(t.Visibility.Keyword())
	switch {
	case t.Static:
		d.keyword("static")
	case t.Kind == metadata.Class:
		if t.Abstract {
			d.keyword("abstract")
		} else if t.Sealed {
			d.keyword("sealed")
		}
	case t.Kind == metadata.Struct:
		if t.ReadOnly && d.opts.LangVersion.Supports(langversion.ReadOnlyStructs) {
			d.keyword("readonly")
		}
		if t.RefLike && d.opts.LangVersion.Supports(langversion.RefStructs) {
			d.keyword("ref")
		}
	}
	if !d.opts.APIOnly && t.Kind != metadata.Enum {
		d.keyword("partial")
	}
	record := t.Record && d.opts.LangVersion.Supports(langversion.Records)
	switch {
	case record && t.Kind == metadata.Struct:
		d.keyword("record")
		d.keyword("struct")
	case record:
		d.keyword("record")
	default:
		d.keyword(string(t.Kind))
	}
}

func (d *declarations) baseList(t *metadata.Type) {
	var bases []string
	if b := t.BaseType; b != nil {
		switch {
		case t.Kind == metadata.Enum:
			if b.Name != "System.Int32" && b.Name != "" {
				bases = append(bases, d.names.ref(*b))
			}
		case t.Kind == metadata.Class:
			if b.Name != "System.Object" && d.refIncluded(*b) {
				bases = append(bases, d.names.ref(*b))
			}
		}
	}
	for _, i := range t.Interfaces {
		if d.refIncluded(i) {
			bases = append(bases, d.names.ref(i))
		}
	}
	if len(bases) == 0 {
		return
	}
	d.r.Space()
	d.r.Punctuation(":")
	for i, b := range bases {
		if i > 0 {
			d.r.Punctuation(",")
		}
		d.r.Space()
		d.r.TypeName(b)
	}
}

// refIncluded reports whether a base type or interface is shown. Unresolved
// references are always shown.
func (d *declarations) refIncluded(r metadata.TypeRef) bool {
	if d.opts.AlwaysIncludeBase {
		return true
	}
	t := r.Resolved()
	return t == nil || d.filter.Includes(t)
}

// attributeIncluded bypasses visibility under AlwaysIncludeBase. An
// explicitly excluded attribute type stays hidden either way.
func (d *declarations) attributeIncluded(at *metadata.Attribute) bool {
	if d.opts.AlwaysIncludeBase {
		return !d.opts.ExcludedAttributes.Contains(at.DocID())
	}
	return d.filter.Includes(at)
}

func (d *declarations) attribute(at *metadata.Attribute, assembly bool) {
	d.r.Punctuation("[")
	if assembly {
		d.r.Keyword("assembly")
		d.r.Punctuation(":")
		d.r.Space()
	}
	d.r.TypeName(d.names.name(at.Type.Name))
	if len(at.Arguments) > 0 {
		d.r.Punctuation("(")
		for i, arg := range at.Arguments {
			if i > 0 {
				d.r.Punctuation(",")
				d.r.Space()
			}
			d.r.Literal(arg)
		}
		d.r.Punctuation(")")
	}
	d.r.Punctuation("]")
	d.r.LineBreak()
}

func (d *declarations) forward(fw *metadata.TypeForward) {
	d.r.Punctuation("[")
	d.r.Keyword("assembly")
	d.r.Punctuation(":")
	d.r.Space()
	d.r.TypeName(d.names.name(typeForwardedTo))
	d.r.Punctuation("(")
	d.r.Keyword("typeof")
	d.r.Punctuation("(")
	d.r.TypeName(d.names.open(fw.Type.Name))
	d.r.Punctuation(")")
	d.r.Punctuation(")")
	d.r.Punctuation("]")
	d.r.LineBreak()
}

func (d *declarations) delegate(t *metadata.Type) {
	var invoke *metadata.Member
	for _, m := range t.Members {
		if m.Name == "Invoke" && m.Kind == metadata.Method {
			invoke = m
		}
	}
	d.keyword(t.Visibility.Keyword())
	d.keyword("delegate")
	if invoke != nil && invoke.Type != nil {
		d.r.TypeName(d.names.ref(*invoke.Type))
	} else {
		d.r.TypeName("void")
	}
	d.r.Space()
	d.r.Identifier(t.DisplayName())
	if invoke != nil {
		d.parameters(invoke.Parameters)
	} else {
		d.r.Punctuation("()")
	}
	d.r.Punctuation(";")
	d.r.LineBreak()
}

var memberGroups = []struct {
	kind    metadata.MemberKind
	heading string
}{
	{metadata.Field, "Fields"},
	{metadata.Constructor, "Constructors"},
	{metadata.Property, "Properties"},
	{metadata.Event, "Events"},
	{metadata.Method, "Methods"},
}

func (d *declarations) members(t *metadata.Type) {
	first := true
	for _, g := range memberGroups {
		if t.Kind == metadata.Enum && g.kind != metadata.Field {
			continue
		}
		var group []*metadata.Member
		for _, m := range t.Members {
			if m.Kind == g.kind && d.memberIncluded(m) {
				group = append(group, m)
			}
		}
		if len(group) == 0 {
			continue
		}
		if d.opts.Headings {
			if !first {
				d.r.LineBreak()
			}
			d.r.Comment("// " + g.heading)
			d.r.LineBreak()
		}
		first = false
		for _, m := range group {
			d.member(t, m)
		}
	}
}

func (d *declarations) memberIncluded(m *metadata.Member) bool {
	if !d.filter.Includes(m) {
		return false
	}
	if d.opts.ExcludeMembersOnFilteredTypes {
		for _, r := range m.SignatureTypes() {
			if d.refFiltered(r) {
				return false
			}
		}
	}
	return true
}

func (d *declarations) refFiltered(r metadata.TypeRef) bool {
	if t := r.Resolved(); t != nil && !d.filter.Includes(t) {
		return true
	}
	for _, a := range r.Arguments {
		if d.refFiltered(a) {
			return true
		}
	}
	return false
}

func (d *declarations) member(t *metadata.Type, m *metadata.Member) {
	for _, at := range m.Attributes {
		if d.attributeIncluded(at) {
			d.attribute(at, false)
		}
	}

	class := d.highlight(m)
	if class != "" {
		d.r.BeginHighlight(class)
	}
	switch m.Kind {
	case metadata.Field:
		d.field(t, m)
	case metadata.Constructor:
		d.constructor(t, m)
	case metadata.Property:
		d.property(t, m)
	case metadata.Event:
		d.event(t, m)
	default:
		d.method(t, m)
	}
	if class != "" {
		d.r.EndHighlight()
	}
	d.r.LineBreak()
}

func (d *declarations) highlight(m *metadata.Member) string {
	switch {
	case d.opts.HighlightBaseMembers && m.Override:
		return syntax.HighlightOverride
	case d.opts.HighlightInterfaceMembers && (m.Implements != "" || explicitImpl(m)):
		return syntax.HighlightImplements
	}
	return ""
}

func explicitImpl(m *metadata.Member) bool {
	return m.Kind != metadata.Constructor && strings.Contains(m.Name, ".")
}

// memberModifiers writes visibility and modifiers. Interface members and
// explicit implementations carry no visibility.
func (d *declarations) memberModifiers(t *metadata.Type, m *metadata.Member) {
	iface := t.Kind == metadata.Interface
	if !iface && !explicitImpl(m) {
		d.keyword(m.Visibility.Keyword())
	}
	if m.Static && !m.Const {
		d.keyword("static")
	}
	if m.Kind == metadata.Field {
		if m.Const {
			d.keyword("const")
		} else if m.ReadOnly {
			d.keyword("readonly")
		}
	}
	if m.Required && d.opts.LangVersion.Supports(langversion.RequiredMembers) {
		d.keyword("required")
	}
	if iface {
		return
	}
	switch {
	case m.Abstract:
		d.keyword("abstract")
	case m.Override:
		if m.Sealed {
			d.keyword("sealed")
		}
		d.keyword("override")
	case m.Virtual:
		d.keyword("virtual")
	}
}

// hasBody reports whether m gets a body at all.
func (d *declarations) hasBody(t *metadata.Type, m *metadata.Member) bool {
	return !d.opts.APIOnly && !m.Abstract && t.Kind != metadata.Interface
}

// body writes a placeholder body, or the terminating semicolon when the
// member has none.
func (d *declarations) body(has, returnsValue bool) {
	if !has {
		d.r.Punctuation(";")
		return
	}
	d.r.Space()
	d.r.Punctuation("{")
	d.r.Space()
	switch {
	case d.opts.ExceptionMessage != "":
		d.r.Keyword("throw")
		d.r.Space()
		d.r.Keyword("new")
		d.r.Space()
		d.r.TypeName(d.names.name(notSupported))
		d.r.Punctuation("(")
		d.r.Literal(quote(d.opts.ExceptionMessage))
		d.r.Punctuation(")")
		d.r.Punctuation(";")
		d.r.Space()
	case returnsValue:
		d.r.Keyword("throw")
		d.r.Space()
		d.r.Keyword("null")
		d.r.Punctuation(";")
		d.r.Space()
	}
	d.r.Punctuation("}")
}

func (d *declarations) field(t *metadata.Type, m *metadata.Member) {
	if t.Kind == metadata.Enum {
		d.r.Identifier(m.Name)
		if m.Value != "" {
			d.r.Space()
			d.r.Punctuation("=")
			d.r.Space()
			d.r.Literal(m.Value)
		}
		d.r.Punctuation(",")
		return
	}
	d.memberModifiers(t, m)
	d.typeRef(m.Type)
	d.r.Space()
	d.r.Identifier(m.Name)
	if m.Const && m.Value != "" {
		d.r.Space()
		d.r.Punctuation("=")
		d.r.Space()
		d.r.Literal(m.Value)
	}
	d.r.Punctuation(";")
}

func (d *declarations) constructor(t *metadata.Type, m *metadata.Member) {
	if m.Static {
		d.keyword("static")
	} else {
		d.keyword(m.Visibility.Keyword())
	}
	d.r.Identifier(t.Name)
	d.parameters(m.Parameters)
	d.body(d.hasBody(t, m), hasOut(m))
}

func (d *declarations) method(t *metadata.Type, m *metadata.Member) {
	d.memberModifiers(t, m)
	d.typeRef(m.Type)
	d.r.Space()
	d.r.Identifier(m.Name)
	d.genericParameters(m.GenericParameters)
	d.parameters(m.Parameters)
	returns := m.Type != nil && m.Type.Name != "System.Void" && m.Type.Name != ""
	d.body(d.hasBody(t, m), returns || hasOut(m))
}

func (d *declarations) property(t *metadata.Type, m *metadata.Member) {
	d.memberModifiers(t, m)
	d.typeRef(m.Type)
	d.r.Space()
	if len(m.Parameters) > 0 {
		d.r.Keyword("this")
		d.parametersIn("[", "]", m.Parameters)
	} else {
		d.r.Identifier(m.Name)
	}
	d.r.Space()
	d.r.Punctuation("{")
	has := d.hasBody(t, m)
	if m.Getter {
		d.r.Space()
		d.r.Keyword("get")
		d.body(has, true)
	}
	if m.Setter || m.InitOnly {
		d.r.Space()
		if m.InitOnly && d.opts.LangVersion.Supports(langversion.InitAccessors) {
			d.r.Keyword("init")
		} else {
			d.r.Keyword("set")
		}
		d.body(has, false)
	}
	d.r.Space()
	d.r.Punctuation("}")
}

func (d *declarations) event(t *metadata.Type, m *metadata.Member) {
	d.memberModifiers(t, m)
	d.keyword("event")
	d.typeRef(m.Type)
	d.r.Space()
	d.r.Identifier(m.Name)
	if !d.hasBody(t, m) {
		d.r.Punctuation(";")
		return
	}
	d.r.Space()
	d.r.Punctuation("{")
	d.r.Space()
	d.r.Keyword("add")
	d.body(true, false)
	d.r.Space()
	d.r.Keyword("remove")
	d.body(true, false)
	d.r.Space()
	d.r.Punctuation("}")
}

func (d *declarations) typeRef(r *metadata.TypeRef) {
	if r == nil {
		d.r.TypeName("void")
		return
	}
	d.r.TypeName(d.names.ref(*r))
}

func (d *declarations) genericParameters(params []string) {
	if len(params) == 0 {
		return
	}
	d.r.Punctuation("<")
	for i, p := range params {
		if i > 0 {
			d.r.Punctuation(",")
			d.r.Space()
		}
		d.r.TypeName(p)
	}
	d.r.Punctuation(">")
}

func (d *declarations) parameters(params []metadata.Parameter) {
	d.parametersIn("(", ")", params)
}

func (d *declarations) parametersIn(open, close string, params []metadata.Parameter) {
	d.r.Punctuation(open)
	for i, p := range params {
		if i > 0 {
			d.r.Punctuation(",")
			d.r.Space()
		}
		if p.Modifier != "" {
			d.keyword(p.Modifier)
		}
		d.r.TypeName(d.names.ref(p.Type))
		d.r.Space()
		d.r.Identifier(p.Name)
		if p.Default != "" {
			d.r.Space()
			d.r.Punctuation("=")
			d.r.Space()
			d.r.Literal(p.Default)
		}
	}
	d.r.Punctuation(close)
}

// keyword writes kw followed by a space.
func (d *declarations) keyword(kw string) {
	d.r.Keyword(kw)
	d.r.Space()
}

func hasOut(m *metadata.Member) bool {
	for _, p := range m.Parameters {
		if p.Modifier == "out" {
			return true
		}
	}
	return false
}
