package filter

import (
	"github.com/arthur-debert/apishape/pkg/docid"
	"github.com/arthur-debert/apishape/pkg/metadata"
)

// IncludeAll includes every element.
func IncludeAll() Filter {
	return Func(func(metadata.Element) bool { return true })
}

type includeList struct {
	ids docid.Set
}

// DocIDIncludeList includes the elements whose DocId is in ids, plus the
// assemblies, namespaces and types needed to reach them. Attribute
// applications are kept so listed elements render with their attributes.
func DocIDIncludeList(ids docid.Set) Filter {
	return includeList{ids: ids}
}

func (l includeList) Includes(e metadata.Element) bool {
	switch e := e.(type) {
	case *metadata.Assembly, *metadata.Attribute:
		return true
	case *metadata.Namespace:
		if l.ids.Contains(e.DocID()) {
			return true
		}
		for _, t := range e.Types {
			if l.typeIncluded(t) {
				return true
			}
		}
		return false
	case *metadata.Type:
		return l.typeIncluded(e)
	default:
		return l.ids.Contains(e.DocID())
	}
}

func (l includeList) typeIncluded(t *metadata.Type) bool {
	if l.ids.Contains(t.DocID()) {
		return true
	}
	for _, m := range t.Members {
		if l.ids.Contains(m.DocID()) {
			return true
		}
	}
	for _, n := range t.NestedTypes {
		if l.typeIncluded(n) {
			return true
		}
	}
	return false
}

type excludeList struct {
	ids     docid.Set
	cascade bool
}

// DocIDExcludeList drops the elements whose DocId is in ids. With cascade
// set it also drops members whose declared type or any parameter type,
// generic arguments included, is in ids.
func DocIDExcludeList(ids docid.Set, cascade bool) Filter {
	return excludeList{ids: ids, cascade: cascade}
}

func (l excludeList) Includes(e metadata.Element) bool {
	if l.ids.Contains(e.DocID()) {
		return false
	}
	if m, ok := e.(*metadata.Member); ok && l.cascade {
		for _, r := range m.SignatureTypes() {
			if l.refExcluded(r) {
				return false
			}
		}
	}
	return true
}

func (l excludeList) refExcluded(r metadata.TypeRef) bool {
	if id := r.DocID(); id != "" && l.ids.Contains(id) {
		return true
	}
	for _, a := range r.Arguments {
		if l.refExcluded(a) {
			return true
		}
	}
	return false
}

// ExcludeAttributes drops attribute applications whose attribute type is
// in ids. The element the attribute is applied to is unaffected.
func ExcludeAttributes(ids docid.Set) Filter {
	return Func(func(e metadata.Element) bool {
		if a, ok := e.(*metadata.Attribute); ok {
			return !ids.Contains(a.DocID())
		}
		return true
	})
}

// ExcludeCompilerGenerated drops types and members marked as synthesized.
func ExcludeCompilerGenerated() Filter {
	return Func(func(e metadata.Element) bool {
		switch e := e.(type) {
		case *metadata.Type:
			return !e.IsCompilerGenerated()
		case *metadata.Member:
			return !e.IsCompilerGenerated()
		}
		return true
	})
}
