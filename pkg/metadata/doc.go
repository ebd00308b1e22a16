// Package metadata defines the read-only element model that every other
// part of apishape inspects: assemblies, namespaces, types, members,
// attribute applications and type forwards.
//
// The model is produced by the metadata host (pkg/host), linked once with
// Link, and never mutated afterwards. Filters and writers may hold pointers
// into it for the whole run.
//
// Every element implements Element and exposes its canonical identifier
// (DocID). The identifier grammar follows the documentation-comment id
// convention:
//
//	A:Contoso.Core                             assembly
//	N:Contoso.Collections                      namespace
//	T:Contoso.Collections.Bag`1                type (generic arity suffix)
//	T:Contoso.Collections.Bag`1.Enumerator     nested type
//	M:Contoso.Collections.Bag`1.#ctor          constructor
//	M:Contoso.Collections.Bag`1.Add(`0)        method
//	P:Contoso.Collections.Bag`1.Count          property
//	F:Contoso.Collections.Bag`1.Empty          field
//	E:Contoso.Collections.Bag`1.Changed        event
package metadata
