package metadata_test

import (
	"encoding/json"
	"testing"

	"github.com/arthur-debert/apishape/pkg/metadata"
	"github.com/arthur-debert/apishape/pkg/metadata/metadatatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func linkedContoso(t *testing.T) *metadata.Assembly {
	t.Helper()
	return metadatatest.Link(metadatatest.Contoso())[0]
}

func TestDocIDs(t *testing.T) {
	asm := linkedContoso(t)
	widget := asm.FindType("Contoso.Widgets.Widget")
	require.NotNil(t, widget)

	assert.Equal(t, "A:Contoso", asm.DocID())
	assert.Equal(t, "N:Contoso.Widgets", asm.Namespaces[0].DocID())
	assert.Equal(t, "T:Contoso.Widgets.Widget", widget.DocID())
	assert.Equal(t, "T:Contoso.Widgets.Widget.Part", widget.NestedTypes[0].DocID())

	ids := map[string]bool{}
	for _, m := range widget.Members {
		ids[m.DocID()] = true
	}
	for _, want := range []string{
		"M:Contoso.Widgets.Widget.#ctor",
		"P:Contoso.Widgets.Widget.Name",
		"E:Contoso.Widgets.Widget.Changed",
		"M:Contoso.Widgets.Widget.Dispose",
		"F:Contoso.Widgets.Widget.count",
	} {
		assert.True(t, ids[want], "missing %s", want)
	}
}

func TestGenericDocIDs(t *testing.T) {
	asm := &metadata.Assembly{
		Name: "Lib",
		Namespaces: []*metadata.Namespace{{
			Name: "Lib",
			Types: []*metadata.Type{{
				Name:              "Bag",
				GenericParameters: []string{"T"},
				Members: []*metadata.Member{
					{
						Name: "Add", Kind: metadata.Method,
						Parameters: []metadata.Parameter{{Name: "item", Type: metadata.ParseTypeRef("!T")}},
					},
					{
						Name: "Map", Kind: metadata.Method, GenericParameters: []string{"U"},
						Parameters: []metadata.Parameter{
							{Name: "source", Type: metadata.TypeRef{
								Name:      "System.Collections.Generic.List`1",
								Arguments: []metadata.TypeRef{metadata.ParseTypeRef("!U")},
							}},
							{Name: "count", Type: metadata.ParseTypeRef("System.Int32"), Modifier: "out"},
							{Name: "data", Type: metadata.ParseTypeRef("System.Byte[]")},
						},
					},
				},
			}},
		}},
	}
	metadata.Link(asm)

	bag := asm.FindType("Lib.Bag`1")
	require.NotNil(t, bag)
	assert.Equal(t, "Bag<T>", bag.DisplayName())
	assert.Equal(t, "M:Lib.Bag`1.Add(`0)", bag.Members[0].DocID())
	assert.Equal(t, "M:Lib.Bag`1.Map``1(System.Collections.Generic.List{``0},System.Int32@,System.Byte[])", bag.Members[1].DocID())
}

func TestLinkSetsParents(t *testing.T) {
	asm := linkedContoso(t)
	widget := asm.FindType("Contoso.Widgets.Widget")
	part := asm.FindType("Contoso.Widgets.Widget.Part")
	require.NotNil(t, part)

	assert.Same(t, widget, part.DeclaringType())
	assert.Same(t, asm.Namespaces[0], part.Namespace())
	assert.Same(t, asm, part.Assembly())
	assert.Same(t, widget, widget.Members[0].DeclaringType())
	assert.Same(t, widget, widget.Attributes[0].Target())

	// types are sorted by metadata name
	names := []string{}
	for _, typ := range asm.Namespaces[0].Types {
		names = append(names, typ.Name)
	}
	assert.Equal(t, []string{"<>Closure", "Component", "IGadget", "Secret", "Widget"}, names)
}

func TestResolveReferences(t *testing.T) {
	asm := linkedContoso(t)
	widget := asm.FindType("Contoso.Widgets.Widget")

	require.NotNil(t, widget.BaseType.Resolved())
	assert.Equal(t, "Component", widget.BaseType.Resolved().Name)
	assert.Nil(t, widget.Interfaces[0].Resolved(), "System.IDisposable is not loaded")
}

func TestResolveReferencesReachesNestedTypes(t *testing.T) {
	asm := metadatatest.Link(&metadata.Assembly{
		Name: "Nest",
		Namespaces: []*metadata.Namespace{{
			Name: "Nest",
			Types: []*metadata.Type{
				{Name: "Base", Kind: metadata.Class, Visibility: metadata.Public},
				{
					Name: "Outer", Kind: metadata.Class, Visibility: metadata.Public,
					NestedTypes: []*metadata.Type{{
						Name: "Inner", Kind: metadata.Class, Visibility: metadata.Public,
						BaseType: metadatatest.Ref("Nest.Base"),
						NestedTypes: []*metadata.Type{{
							Name: "Deepest", Kind: metadata.Class, Visibility: metadata.Public,
							BaseType: metadatatest.Ref("Nest.Outer.Inner"),
						}},
					}},
				},
			},
		}},
	})[0]

	inner := asm.FindType("Nest.Outer.Inner")
	deepest := asm.FindType("Nest.Outer.Inner.Deepest")
	require.NotNil(t, inner)
	require.NotNil(t, deepest)
	assert.Same(t, asm.FindType("Nest.Base"), inner.BaseType.Resolved())
	assert.Same(t, inner, deepest.BaseType.Resolved())
}

func TestMarkers(t *testing.T) {
	asm := linkedContoso(t)
	assert.False(t, asm.GrantsInternals())

	granting := metadatatest.Link(metadatatest.Module("Core", true))[0]
	assert.True(t, granting.GrantsInternals())

	closure := asm.FindType("Contoso.Widgets.<>Closure")
	require.NotNil(t, closure)
	assert.True(t, closure.IsCompilerGenerated())
	assert.False(t, asm.FindType("Contoso.Widgets.Widget").IsCompilerGenerated())
}

func TestParseTypeRef(t *testing.T) {
	tests := []struct {
		in   string
		want metadata.TypeRef
	}{
		{"System.String", metadata.TypeRef{Name: "System.String"}},
		{"System.String?", metadata.TypeRef{Name: "System.String", Nullable: true}},
		{"System.Int32[][]", metadata.TypeRef{Name: "System.Int32", ArrayRank: 2}},
		{"!T", metadata.TypeRef{Name: "T", Generic: true}},
		{" !T[]? ", metadata.TypeRef{Name: "T", Generic: true, ArrayRank: 1, Nullable: true}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, metadata.ParseTypeRef(tt.in))
		})
	}
}

func TestTypeRefDecoding(t *testing.T) {
	t.Run("yaml shorthand and mapping", func(t *testing.T) {
		var m metadata.Member
		src := "name: Get\nkind: method\ntype: System.String?\nparameters:\n  - name: key\n    type: {name: System.Int32, assembly: System.Runtime}\n"
		require.NoError(t, yaml.Unmarshal([]byte(src), &m))
		assert.Equal(t, "System.String", m.Type.Name)
		assert.True(t, m.Type.Nullable)
		assert.Equal(t, "System.Runtime", m.Parameters[0].Type.Assembly)
	})

	t.Run("json shorthand and object", func(t *testing.T) {
		var p []metadata.Parameter
		src := `[{"name":"a","type":"System.Int32[]"},{"name":"b","type":{"name":"System.Byte"}}]`
		require.NoError(t, json.Unmarshal([]byte(src), &p))
		assert.Equal(t, 1, p[0].Type.ArrayRank)
		assert.Equal(t, "System.Byte", p[1].Type.Name)
	})
}

func TestValidate(t *testing.T) {
	assert.NoError(t, metadata.Validate(metadatatest.Contoso()))

	bad := &metadata.Assembly{
		Namespaces: []*metadata.Namespace{{
			Name: "X",
			Types: []*metadata.Type{{
				Name: "T", Kind: "record-ish",
				Members: []*metadata.Member{{Name: "m", Kind: "slot"}},
			}},
		}},
	}
	err := metadata.Validate(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assembly name is empty")
	assert.Contains(t, err.Error(), `unknown kind "record-ish"`)
	assert.Contains(t, err.Error(), `unknown kind "slot"`)
}
