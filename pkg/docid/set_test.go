package docid

import (
	"strings"
	"testing"

	"github.com/arthur-debert/apishape/pkg/errors"
	"github.com/arthur-debert/apishape/pkg/metadata"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	set, err := Parse(strings.NewReader(`
# public surface
T:Contoso.Widget
M:Contoso.Widget.Run(System.Int32)   # trailing comment
  P:Contoso.Widget.Name
T:Contoso.Widget
`))
	require.NoError(t, err)

	assert.Equal(t, 3, set.Len())
	assert.True(t, set.Contains("M:Contoso.Widget.Run(System.Int32)"))
	assert.False(t, set.Contains("T:Contoso.Gadget"))
	assert.Equal(t, []string{"M:Contoso.Widget.Run(System.Int32)", "P:Contoso.Widget.Name", "T:Contoso.Widget"}, set.IDs())
}

func TestParseRejectsMalformedLines(t *testing.T) {
	for _, line := range []string{"Contoso.Widget", "X:Contoso.Widget", "T:", "T:Contoso Widget"} {
		t.Run(line, func(t *testing.T) {
			_, err := Parse(strings.NewReader("T:Ok\n" + line + "\n"))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
		})
	}
}

func TestResolve(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/lists/include.txt", []byte("T:A.B\nT:A.C\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/lists/bad.txt", []byte("T:A.B\nnot-an-id\n"), 0644))

	t.Run("file", func(t *testing.T) {
		set, err := Resolve(fs, "/lists/include.txt")
		require.NoError(t, err)
		assert.Equal(t, 2, set.Len())
	})

	t.Run("inline", func(t *testing.T) {
		set, err := Resolve(fs, "T:A.B; M:A.B.Run ,")
		require.NoError(t, err)
		assert.True(t, set.Contains("M:A.B.Run"))
	})

	t.Run("empty source is an empty set", func(t *testing.T) {
		set, err := Resolve(fs, "  ")
		require.NoError(t, err)
		assert.Zero(t, set.Len())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Resolve(fs, "/lists/missing.txt")
		require.Error(t, err)
		assert.True(t, errors.IsConfigurationError(err))
	})

	t.Run("unparsable file", func(t *testing.T) {
		_, err := Resolve(fs, "/lists/bad.txt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})
}

func TestParseKinds(t *testing.T) {
	tests := []struct {
		in      string
		want    KindMask
		wantErr bool
	}{
		{"", All, false},
		{"all", All, false},
		{"T,M", Type | Method, false},
		{"type, property;event", Type | Property | Event, false},
		{"A N", Assembly | Namespace, false},
		{"T,X", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKinds(tt.in)
			if tt.wantErr {
				assert.True(t, errors.IsConfigurationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKindMaskHas(t *testing.T) {
	m := Type | Method
	assert.True(t, m.Has(metadata.KindType))
	assert.True(t, m.Has(metadata.KindMethod))
	assert.False(t, m.Has(metadata.KindField))
	assert.False(t, All.Has(metadata.KindAttribute))
}
