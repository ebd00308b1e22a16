package metadata

import (
	"fmt"
	"sort"
	"strings"
)

// Link wires parent pointers, builds the type index and sorts namespaces
// and types by name. It must run once, before the assembly is shared.
func Link(a *Assembly) {
	a.types = make(map[string]*Type)

	sort.SliceStable(a.Namespaces, func(i, j int) bool {
		return a.Namespaces[i].Name < a.Namespaces[j].Name
	})
	for _, attr := range a.Attributes {
		attr.target = a
	}
	for _, ns := range a.Namespaces {
		ns.assembly = a
		sortTypes(ns.Types)
		for _, t := range ns.Types {
			t.namespace = ns
			t.declaringType = nil
			linkType(a, t)
		}
	}
	for _, f := range a.TypeForwards {
		f.assembly = a
	}
}

func linkType(a *Assembly, t *Type) {
	a.types[t.FullName()] = t
	for _, attr := range t.Attributes {
		attr.target = t
	}
	for _, m := range t.Members {
		m.declaringType = t
		for _, attr := range m.Attributes {
			attr.target = m
		}
	}
	sortTypes(t.NestedTypes)
	for _, nt := range t.NestedTypes {
		nt.declaringType = t
		nt.namespace = t.namespace
		linkType(a, nt)
	}
}

func sortTypes(types []*Type) {
	sort.SliceStable(types, func(i, j int) bool {
		return types[i].MetadataName() < types[j].MetadataName()
	})
}

// ResolveReferences sets the resolved definition of every type reference in
// the assembly using lookup. Generic parameter references are skipped.
func ResolveReferences(a *Assembly, lookup func(TypeRef) *Type) {
	resolveAttrs(a.Attributes, lookup)
	for _, t := range allTypes(a) {
		resolveAttrs(t.Attributes, lookup)
		if t.BaseType != nil {
			resolveRef(t.BaseType, lookup)
		}
		for i := range t.Interfaces {
			resolveRef(&t.Interfaces[i], lookup)
		}
		for _, m := range t.Members {
			resolveAttrs(m.Attributes, lookup)
			if m.Type != nil {
				resolveRef(m.Type, lookup)
			}
			for i := range m.Parameters {
				resolveRef(&m.Parameters[i].Type, lookup)
			}
		}
	}
	for _, f := range a.TypeForwards {
		resolveRef(&f.Type, lookup)
	}
}

func resolveAttrs(attrs []*Attribute, lookup func(TypeRef) *Type) {
	for _, attr := range attrs {
		resolveRef(&attr.Type, lookup)
	}
}

func resolveRef(r *TypeRef, lookup func(TypeRef) *Type) {
	if !r.Generic {
		r.resolved = lookup(*r)
	}
	for i := range r.Arguments {
		resolveRef(&r.Arguments[i], lookup)
	}
}

// allTypes returns every type of the assembly, nested types after their
// declaring type.
func allTypes(a *Assembly) []*Type {
	var out []*Type
	var walk func(*Type)
	walk = func(t *Type) {
		out = append(out, t)
		for _, nt := range t.NestedTypes {
			walk(nt)
		}
	}
	for _, ns := range a.Namespaces {
		for _, t := range ns.Types {
			walk(t)
		}
	}
	return out
}

// Validate reports structural problems that make an assembly unusable:
// missing names and unknown kinds.
func Validate(a *Assembly) error {
	var problems []string
	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(a.Name) == "" {
		add("assembly name is empty")
	}
	for _, ns := range a.Namespaces {
		for _, t := range ns.Types {
			validateType(t, ns.Name, add)
		}
	}
	for i, f := range a.TypeForwards {
		if f.Type.Name == "" {
			add("forward %d has no type name", i)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return nil
}

func validateType(t *Type, scope string, add func(string, ...interface{})) {
	if t.Name == "" {
		add("type in %q has no name", scope)
		return
	}
	path := scope + "." + t.Name
	switch t.Kind {
	case "", Class, Struct, Interface, Enum, Delegate:
	default:
		add("type %s has unknown kind %q", path, t.Kind)
	}
	if !validVisibility(t.Visibility) {
		add("type %s has unknown visibility %q", path, t.Visibility)
	}
	for _, m := range t.Members {
		switch m.Kind {
		case Field, Property, Method, Constructor, Event:
		default:
			add("member %s.%s has unknown kind %q", path, m.Name, m.Kind)
		}
		if m.Name == "" && m.Kind != Constructor {
			add("member of %s has no name", path)
		}
		if !validVisibility(m.Visibility) {
			add("member %s.%s has unknown visibility %q", path, m.Name, m.Visibility)
		}
	}
	for _, nt := range t.NestedTypes {
		validateType(nt, path, add)
	}
}

func validVisibility(v Visibility) bool {
	switch v {
	case "", Public, Protected, ProtectedInternal, Internal, PrivateProtected, Private:
		return true
	}
	return false
}
