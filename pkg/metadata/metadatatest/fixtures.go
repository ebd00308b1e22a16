// Package metadatatest builds linked metadata trees for tests.
package metadatatest

import (
	"github.com/arthur-debert/apishape/pkg/metadata"
)

// Ref is a shorthand type reference.
func Ref(name string) *metadata.TypeRef {
	r := metadata.ParseTypeRef(name)
	return &r
}

// Attr is an attribute application with positional arguments.
func Attr(typeName string, args ...string) *metadata.Attribute {
	return &metadata.Attribute{Type: metadata.TypeRef{Name: typeName}, Arguments: args}
}

// Grant is an internals grant marker for the named friend assembly.
func Grant(friend string) *metadata.Attribute {
	return Attr(metadata.InternalsVisibleToAttribute, `"`+friend+`"`)
}

// Link links every assembly and resolves type references across the whole
// set, the way the host does.
func Link(assemblies ...*metadata.Assembly) []*metadata.Assembly {
	for _, a := range assemblies {
		metadata.Link(a)
	}
	lookup := func(r metadata.TypeRef) *metadata.Type {
		for _, a := range assemblies {
			if r.Assembly != "" && r.Assembly != a.Name {
				continue
			}
			if t := a.FindType(r.Name); t != nil {
				return t
			}
		}
		return nil
	}
	for _, a := range assemblies {
		metadata.ResolveReferences(a, lookup)
	}
	return assemblies
}

// Contoso returns an unlinked assembly with one namespace exercising every
// visibility, member kind and marker. Callers link it with Link.
//
//	Contoso.Widgets
//	  public class Widget : Component, IDisposable
//	    public Widget()
//	    public string Name { get; set; }
//	    public event EventHandler Changed
//	    public void Dispose()                      implements IDisposable
//	    protected override void OnRender()         overrides Component
//	    internal void Reset()
//	    private int count
//	    public Secret Leak()                       returns an internal type
//	    [CompilerGenerated] public void <Clone>$()
//	    public class Part (nested)
//	  public abstract class Component
//	    protected virtual void OnRender()
//	  internal class Secret
//	  public interface IGadget
//	  [CompilerGenerated] public class <>Closure
func Contoso() *metadata.Assembly {
	return &metadata.Assembly{
		Name:       "Contoso",
		Version:    "1.0.0.0",
		References: []string{"System.Runtime"},
		Namespaces: []*metadata.Namespace{{
			Name: "Contoso.Widgets",
			Types: []*metadata.Type{
				{
					Name:       "Widget",
					Kind:       metadata.Class,
					Visibility: metadata.Public,
					BaseType:   Ref("Contoso.Widgets.Component"),
					Interfaces: []metadata.TypeRef{*Ref("System.IDisposable")},
					Attributes: []*metadata.Attribute{Attr("System.SerializableAttribute")},
					Members: []*metadata.Member{
						{Kind: metadata.Constructor, Visibility: metadata.Public},
						{Name: "Name", Kind: metadata.Property, Visibility: metadata.Public, Type: Ref("System.String"), Getter: true, Setter: true},
						{Name: "Changed", Kind: metadata.Event, Visibility: metadata.Public, Type: Ref("System.EventHandler")},
						{Name: "Dispose", Kind: metadata.Method, Visibility: metadata.Public, Type: Ref("System.Void"), Implements: "System.IDisposable"},
						{Name: "OnRender", Kind: metadata.Method, Visibility: metadata.Protected, Override: true, Type: Ref("System.Void")},
						{Name: "Reset", Kind: metadata.Method, Visibility: metadata.Internal, Type: Ref("System.Void")},
						{Name: "count", Kind: metadata.Field, Visibility: metadata.Private, Type: Ref("System.Int32")},
						{Name: "Leak", Kind: metadata.Method, Visibility: metadata.Public, Type: Ref("Contoso.Widgets.Secret")},
						{
							Name: "<Clone>$", Kind: metadata.Method, Visibility: metadata.Public, Type: Ref("Contoso.Widgets.Widget"),
							Attributes: []*metadata.Attribute{Attr(metadata.CompilerGeneratedAttribute)},
						},
					},
					NestedTypes: []*metadata.Type{
						{Name: "Part", Kind: metadata.Class, Visibility: metadata.Public},
					},
				},
				{
					Name:       "Component",
					Kind:       metadata.Class,
					Visibility: metadata.Public,
					Abstract:   true,
					Members: []*metadata.Member{
						{Name: "OnRender", Kind: metadata.Method, Visibility: metadata.Protected, Virtual: true, Type: Ref("System.Void")},
					},
				},
				{
					Name:       "Secret",
					Kind:       metadata.Class,
					Visibility: metadata.Internal,
					Members: []*metadata.Member{
						{Name: "Value", Kind: metadata.Field, Visibility: metadata.Public, Type: Ref("System.Int32")},
					},
				},
				{
					Name:       "IGadget",
					Kind:       metadata.Interface,
					Visibility: metadata.Public,
				},
				{
					Name:       "<>Closure",
					Kind:       metadata.Class,
					Visibility: metadata.Public,
					Attributes: []*metadata.Attribute{Attr(metadata.CompilerGeneratedAttribute)},
				},
			},
		}},
	}
}

// Module returns an unlinked assembly with one public and one internal
// type in a namespace named after the assembly. When grantsInternals is
// set the assembly carries an internals grant marker.
func Module(name string, grantsInternals bool) *metadata.Assembly {
	a := &metadata.Assembly{
		Name: name,
		Namespaces: []*metadata.Namespace{{
			Name: name,
			Types: []*metadata.Type{
				{
					Name:       "Api",
					Kind:       metadata.Class,
					Visibility: metadata.Public,
					Members: []*metadata.Member{
						{Name: "Run", Kind: metadata.Method, Visibility: metadata.Public, Type: Ref("System.Void")},
						{Name: "Tune", Kind: metadata.Method, Visibility: metadata.Internal, Type: Ref("System.Void")},
					},
				},
				{
					Name:       "Impl",
					Kind:       metadata.Class,
					Visibility: metadata.Internal,
				},
			},
		}},
	}
	if grantsInternals {
		a.Attributes = append(a.Attributes, Grant(name+".Tests"))
	}
	return a
}
