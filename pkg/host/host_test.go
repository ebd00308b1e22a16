package host

import (
	"testing"

	"github.com/arthur-debert/apishape/pkg/diagnostics"
	"github.com/arthur-debert/apishape/pkg/metadata"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contosoYAML = `
name: Contoso
version: 1.2.0.0
references: [Contoso.Base, System.Runtime]
attributes:
  - type: System.Runtime.CompilerServices.InternalsVisibleToAttribute
    args: ['"Contoso.Tests"']
namespaces:
  - name: Contoso
    types:
      - name: Widget
        kind: class
        visibility: public
        base: Contoso.Base.Component
        members:
          - name: Name
            kind: property
            visibility: public
            type: System.String
            get: true
forwards:
  - type: {name: Contoso.Base.Legacy, assembly: Contoso.Base}
`

const baseTOML = `
name = "Contoso.Base"

[[namespaces]]
name = "Contoso.Base"

[[namespaces.types]]
name = "Component"
kind = "class"
visibility = "public"

[[namespaces.types]]
name = "Legacy"
kind = "class"
visibility = "public"
`

const gadgetsJSON = `{
  "name": "Gadgets",
  "namespaces": [{"name": "Gadgets", "types": [{"name": "Gizmo", "visibility": "public"}]}]
}`

func newFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	return fs
}

func TestLoadResolvesReferencesFromSearchPaths(t *testing.T) {
	fs := newFS(t, map[string]string{
		"/in/Contoso.yaml":       contosoYAML,
		"/lib/Contoso.Base.toml": baseTOML,
	})
	var sink diagnostics.Collector

	assemblies := New(fs, &sink, "/lib").Load("/in/Contoso.yaml")

	require.Len(t, assemblies, 1, "references are not part of the output set")
	asm := assemblies[0]
	assert.Equal(t, "Contoso", asm.Name)
	assert.True(t, asm.GrantsInternals())

	widget := asm.FindType("Contoso.Widget")
	require.NotNil(t, widget)
	require.NotNil(t, widget.BaseType.Resolved())
	assert.Equal(t, "T:Contoso.Base.Component", widget.BaseType.Resolved().DocID())
	require.NotNil(t, asm.TypeForwards[0].Resolved())

	diags := sink.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.UnresolvedReference, diags[0].Code)
	assert.Equal(t, diagnostics.Info, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "System.Runtime")
}

func TestLoadDirectoryInNameOrder(t *testing.T) {
	fs := newFS(t, map[string]string{
		"/in/b-gadgets.json": gadgetsJSON,
		"/in/a-contoso.yaml": contosoYAML,
		"/in/notes.txt":      "ignored",
	})

	assemblies := New(fs, diagnostics.Discard).Load("/in")

	require.Len(t, assemblies, 2)
	assert.Equal(t, "Contoso", assemblies[0].Name)
	assert.Equal(t, "Gadgets", assemblies[1].Name)
}

func TestLoadReportsUnreadableManifests(t *testing.T) {
	fs := newFS(t, map[string]string{
		"/in/broken.yaml": "name: [unterminated",
		"/in/typo.yaml":   "name: X\nnamespacez: []\n",
		"/in/ok.json":     gadgetsJSON,
	})
	var sink diagnostics.Collector

	assemblies := New(fs, &sink).Load("/in/broken.yaml", "/in/typo.yaml", "/in/missing.yaml", "/in/ok.json")

	require.Len(t, assemblies, 1)
	assert.Equal(t, "Gadgets", assemblies[0].Name)

	var unreadable int
	for _, d := range sink.Diagnostics() {
		if d.Code == diagnostics.UnreadableModule {
			unreadable++
		}
	}
	assert.Equal(t, 3, unreadable)
}

func TestLoadNothing(t *testing.T) {
	var sink diagnostics.Collector
	assemblies := New(afero.NewMemMapFs(), &sink).Load("/nowhere")

	assert.Empty(t, assemblies)
	assert.Len(t, sink.Diagnostics(), 1)
}

func TestLoadSkipsDuplicateAssemblies(t *testing.T) {
	fs := newFS(t, map[string]string{
		"/a/Gadgets.json": gadgetsJSON,
		"/b/Gadgets.json": gadgetsJSON,
	})
	var sink diagnostics.Collector

	assemblies := New(fs, &sink).Load("/a/Gadgets.json", "/b/Gadgets.json")

	assert.Len(t, assemblies, 1)
	require.Len(t, sink.Diagnostics(), 1)
	assert.Contains(t, sink.Diagnostics()[0].Message, "already loaded")
}

func TestDecodeNamesAssemblyAfterFile(t *testing.T) {
	fs := newFS(t, map[string]string{"/in/Anonymous.yaml": "namespaces: []\n"})

	assemblies := New(fs, diagnostics.Discard).Load("/in/Anonymous.yaml")

	require.Len(t, assemblies, 1)
	assert.Equal(t, "Anonymous", assemblies[0].Name)
}

func TestDecodeUnsupportedFormat(t *testing.T) {
	_, err := Decode([]byte("x"), ".dll")
	assert.ErrorContains(t, err, "unsupported manifest format")
}

type typeSummary struct {
	ID         string
	Kind       metadata.TypeKind
	Visibility metadata.Visibility
	Members    []string
}

func summarize(asm *metadata.Assembly) []typeSummary {
	var out []typeSummary
	for _, t := range asm.Types() {
		s := typeSummary{ID: t.DocID(), Kind: t.Kind, Visibility: t.Visibility}
		for _, m := range t.Members {
			s.Members = append(s.Members, m.DocID())
		}
		out = append(out, s)
	}
	return out
}

func TestDecodeFormatsAgree(t *testing.T) {
	manifests := map[string]string{
		".yaml": `
name: Clocks
namespaces:
  - name: Clocks
    types:
      - name: Timer
        kind: struct
        visibility: internal
        members:
          - {name: Start, kind: method, parameters: [{name: ms, type: System.Int32}]}
          - {name: Elapsed, kind: property, type: System.Int64, get: true}
`,
		".toml": `
name = "Clocks"

[[namespaces]]
name = "Clocks"

[[namespaces.types]]
name = "Timer"
kind = "struct"
visibility = "internal"

[[namespaces.types.members]]
name = "Start"
kind = "method"
parameters = [{ name = "ms", type = { name = "System.Int32" } }]

[[namespaces.types.members]]
name = "Elapsed"
kind = "property"
type = { name = "System.Int64" }
get = true
`,
		".json": `{
  "name": "Clocks",
  "namespaces": [{"name": "Clocks", "types": [{
    "name": "Timer", "kind": "struct", "visibility": "internal",
    "members": [
      {"name": "Start", "kind": "method", "parameters": [{"name": "ms", "type": "System.Int32"}]},
      {"name": "Elapsed", "kind": "property", "type": "System.Int64", "get": true}
    ]
  }]}]
}`,
	}

	want := []typeSummary{{
		ID:         "T:Clocks.Timer",
		Kind:       metadata.Struct,
		Visibility: metadata.Internal,
		Members:    []string{"M:Clocks.Timer.Start(System.Int32)", "P:Clocks.Timer.Elapsed"},
	}}

	for ext, content := range manifests {
		t.Run(ext, func(t *testing.T) {
			asm, err := Decode([]byte(content), ext)
			require.NoError(t, err)
			metadata.Link(asm)

			if diff := cmp.Diff(want, summarize(asm)); diff != "" {
				t.Errorf("summary mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
