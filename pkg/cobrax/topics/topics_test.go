package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func file(content string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(content)}
}

func TestTopicManager_scanTopics(t *testing.T) {
	fsys := fstest.MapFS{
		"docids.md":            file("# DocIDs"),
		"filters.txt":          file("Filter help"),
		"notes.json":           file("{}"),
		"advanced/manifest.md": file("Manifest help"),
	}

	tm := New(fsys)
	require.NoError(t, tm.scanTopics())

	assert.Equal(t, []string{"docids", "filters", "manifest"}, tm.ListTopics())

	topic, ok := tm.GetTopic("manifest")
	require.True(t, ok)
	assert.Equal(t, "Manifest help", topic.Content)
	assert.Equal(t, "advanced/manifest.md", topic.FilePath)

	_, ok = tm.GetTopic("notes")
	assert.False(t, ok)
}

func TestTopicManager_customExtensions(t *testing.T) {
	fsys := fstest.MapFS{
		"a.md":  file("a"),
		"b.rst": file("b"),
	}

	tm := NewWithOptions(fsys, Options{Extensions: []string{".rst"}})
	require.NoError(t, tm.scanTopics())
	assert.Equal(t, []string{"b"}, tm.ListTopics())
}

func TestTopicManager_GetTopic(t *testing.T) {
	fsys := fstest.MapFS{
		"option-api-list.txt": file("API list help"),
		"option-verbose.txt":  file("Verbose help"),
		"filters.txt":         file("Filter help"),
	}
	tm := New(fsys)
	require.NoError(t, tm.scanTopics())

	tests := []struct {
		input    string
		expected string
		exists   bool
	}{
		{"filters", "filters", true},
		{"option-api-list", "option-api-list", true},
		{"api-list", "option-api-list", true},
		{"--api-list", "option-api-list", true},
		{"-api-list", "option-api-list", true},
		{"--verbose", "option-verbose", true},
		{"-v", "", false},
		{"nonexistent", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, exists := tm.GetTopic(tt.input)
			assert.Equal(t, tt.exists, exists)
			if exists {
				assert.Equal(t, tt.expected, topic.Name)
			}
		})
	}
}

func TestTopicManager_nilAndEmpty(t *testing.T) {
	tm := New(nil)
	require.NoError(t, tm.scanTopics())
	assert.Empty(t, tm.ListTopics())

	tm = New(fstest.MapFS{})
	require.NoError(t, tm.scanTopics())
	assert.Empty(t, tm.ListTopics())
}

func newRoot(t *testing.T, fsys fstest.MapFS) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "apishape", Short: "Test application"}
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run:   func(cmd *cobra.Command, args []string) {},
	})
	require.NoError(t, Initialize(root, fsys))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	return root, &out
}

func TestInitialize_helpCommand(t *testing.T) {
	root, _ := newRoot(t, fstest.MapFS{"docids.md": file("x")})

	helpCmd, _, err := root.Find([]string{"help"})
	require.NoError(t, err)
	assert.Equal(t, "help [command or topic]", helpCmd.Use)
	assert.Contains(t, helpCmd.Long, "apishape help topics")
}

func TestIntegration_helpTopic(t *testing.T) {
	root, out := newRoot(t, fstest.MapFS{
		"docids.txt": file("DOCUMENTATION IDS\nOne per line."),
	})

	root.SetArgs([]string{"help", "docids"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "DOCUMENTATION IDS")
}

func TestIntegration_helpTopicsList(t *testing.T) {
	root, out := newRoot(t, fstest.MapFS{
		"docids.txt":          file("d"),
		"option-api-list.txt": file("o"),
	})

	root.SetArgs([]string{"help", "topics"})
	require.NoError(t, root.Execute())

	s := out.String()
	assert.Contains(t, s, "General topics:\n  docids")
	assert.Contains(t, s, "Option topics:\n  --api-list")
	assert.True(t, strings.HasSuffix(s, "Use 'apishape help <topic>' to read about a specific topic.\n"))
}

func TestIntegration_helpFallsBackToCommand(t *testing.T) {
	root, out := newRoot(t, fstest.MapFS{})

	root.SetArgs([]string{"help", "version"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Print the version")
}

func TestPlainRenderer(t *testing.T) {
	r := &PlainRenderer{}
	assert.Equal(t, "# raw", r.Render("# raw", ".md"))
}

func TestGlamourRenderer_nonMarkdownPassesThrough(t *testing.T) {
	r := &GlamourRenderer{Style: "notty"}
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))
	assert.Contains(t, r.Render("# Title", ".md"), "Title")
}
