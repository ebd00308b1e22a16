package writers

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/arthur-debert/apishape/pkg/langversion"
	"github.com/arthur-debert/apishape/pkg/metadata"
)

var keywords = map[string]string{
	"System.Void":    "void",
	"System.Object":  "object",
	"System.String":  "string",
	"System.Boolean": "bool",
	"System.Byte":    "byte",
	"System.SByte":   "sbyte",
	"System.Char":    "char",
	"System.Int16":   "short",
	"System.UInt16":  "ushort",
	"System.Int32":   "int",
	"System.UInt32":  "uint",
	"System.Int64":   "long",
	"System.UInt64":  "ulong",
	"System.Single":  "float",
	"System.Double":  "double",
	"System.Decimal": "decimal",
}

const nullableName = "System.Nullable`1"

// namer spells type references the way declarations show them.
type namer struct {
	global bool
	lang   langversion.Version
}

func newNamer(opts Options) namer {
	return namer{global: opts.GlobalPrefix, lang: opts.LangVersion}
}

// ref renders a type reference: keywords for built-in types, generic
// arguments in angle brackets, nullable and array suffixes.
func (n namer) ref(r metadata.TypeRef) string {
	var s string
	switch {
	case r.Generic:
		s = r.Name
	case r.Name == nullableName && len(r.Arguments) == 1:
		s = n.ref(r.Arguments[0]) + "?"
	case len(r.Arguments) == 0 && keywords[r.Name] != "":
		s = keywords[r.Name]
	default:
		s = n.name(r.Name)
		if len(r.Arguments) > 0 {
			args := make([]string, len(r.Arguments))
			for i, a := range r.Arguments {
				args[i] = n.ref(a)
			}
			s += "<" + strings.Join(args, ", ") + ">"
		}
	}
	if r.Nullable && (isValueType(r) || n.lang.Supports(langversion.NullableReferenceTypes)) {
		s += "?"
	}
	return s + strings.Repeat("[]", r.ArrayRank)
}

// name renders a full metadata name in source form.
func (n namer) name(fullName string) string {
	s := sourceName(fullName)
	if n.global {
		return "global::" + s
	}
	return s
}

// open renders the unbound generic form used inside typeof, e.g.
// System.Collections.Generic.Dictionary<,>.
func (n namer) open(fullName string) string {
	s := n.name(fullName)
	if i := strings.LastIndexByte(fullName, '`'); i >= 0 && !strings.Contains(fullName[i:], ".") {
		arity := 0
		for _, c := range fullName[i+1:] {
			arity = arity*10 + int(c-'0')
		}
		if arity > 0 {
			s += "<" + strings.Repeat(",", arity-1) + ">"
		}
	}
	return s
}

// sourceName strips generic arity markers from every dotted segment.
func sourceName(fullName string) string {
	if !strings.Contains(fullName, "`") {
		return fullName
	}
	parts := strings.Split(fullName, ".")
	for i, p := range parts {
		if j := strings.IndexByte(p, '`'); j >= 0 {
			parts[i] = p[:j]
		}
	}
	return strings.Join(parts, ".")
}

func isValueType(r metadata.TypeRef) bool {
	if t := r.Resolved(); t != nil {
		return t.Kind == metadata.Struct || t.Kind == metadata.Enum
	}
	switch r.Name {
	case "System.Object", "System.String", "System.Void", "":
		return false
	}
	_, ok := keywords[r.Name]
	return ok
}

// quote renders s as a regular C# string literal. Control characters and
// line separators use \uXXXX escapes.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			if unicode.IsControl(r) || r == '\u2028' || r == '\u2029' {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
