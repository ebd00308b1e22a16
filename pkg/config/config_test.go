package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/apishape/pkg/docid"
	"github.com/arthur-debert/apishape/pkg/errors"
	"github.com/arthur-debert/apishape/pkg/syntax"
	"github.com/arthur-debert/apishape/pkg/writers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user config directory at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	t.Cleanup(xdg.Reload)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
	return dir
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	opts, err := Load(Sources{})
	require.NoError(t, err)

	assert.Equal(t, "declarations", opts.Writer)
	assert.Equal(t, "text", opts.Syntax)
	assert.Equal(t, "all", opts.DocIDKinds)
	assert.Equal(t, "default", opts.LangVersion)
	assert.Empty(t, opts.LibPath)
	assert.False(t, opts.RespectInternals)
	assert.Contains(t, DefaultContent(), "lang-version")
}

func TestLoadLayering(t *testing.T) {
	home := isolate(t)

	write(t, filepath.Join(home, "apishape", "config.toml"), `
writer = "docids"
syntax = "html"
member-headings = true
`)
	explicit := filepath.Join(t.TempDir(), "run.yaml")
	write(t, explicit, "syntax: xml\nall: true\n")

	t.Setenv("APISHAPE_DOCID_KINDS", "T,M")
	t.Setenv("APISHAPE_LIB_PATH", "/refs/a,/refs/b")
	t.Setenv("APISHAPE_RESPECT_INTERNALS", "true")
	t.Setenv("APISHAPE_NOT_A_KEY", "ignored")

	opts, err := Load(Sources{
		ConfigFile: explicit,
		Flags:      map[string]interface{}{"writer": "typelist", "inputs": []string{"/in"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "typelist", opts.Writer, "flags win over files")
	assert.Equal(t, "xml", opts.Syntax, "--config wins over the user file")
	assert.True(t, opts.MemberHeadings, "user file wins over defaults")
	assert.True(t, opts.All)
	assert.Equal(t, "T,M", opts.DocIDKinds)
	assert.Equal(t, []string{"/refs/a", "/refs/b"}, opts.LibPath)
	assert.True(t, opts.RespectInternals)
	assert.Equal(t, []string{"/in"}, opts.Inputs)
}

func TestLoadErrors(t *testing.T) {
	isolate(t)

	_, err := Load(Sources{ConfigFile: "/does/not/exist.toml"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))

	bad := filepath.Join(t.TempDir(), "bad.toml")
	write(t, bad, "writer = [unterminated\n")
	_, err = Load(Sources{ConfigFile: bad})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))

	unknown := filepath.Join(t.TempDir(), "unknown.toml")
	write(t, unknown, "colour = \"blue\"\n")
	_, err = Load(Sources{ConfigFile: unknown})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func valid() Options {
	return Options{
		Inputs:      []string{"/in"},
		Writer:      "declarations",
		Syntax:      "text",
		DocIDKinds:  "all",
		LangVersion: "default",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *Options)
	}{
		{"no inputs", func(o *Options) { o.Inputs = nil }},
		{"unknown writer", func(o *Options) { o.Writer = "json" }},
		{"unknown syntax", func(o *Options) { o.Syntax = "rtf" }},
		{"unknown docid kind", func(o *Options) { o.DocIDKinds = "T,Q" }},
		{"bad language version", func(o *Options) { o.LangVersion = "eleventy" }},
		{"exclude members without list", func(o *Options) { o.ExcludeMembers = true }},
		{"exception message with api only", func(o *Options) {
			o.ExceptionMessage = "nope"
			o.APIOnly = true
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid()
			tt.mutate(&o)
			_, err := o.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsConfigurationError(err))
		})
	}
}

func TestValidateMapsOptions(t *testing.T) {
	o := valid()
	o.Writer = "docid"
	o.Syntax = "xml"
	o.DocIDKinds = "T,M"
	o.ExcludeAPIList = "T:A.B"
	o.ExcludeMembers = true
	o.RespectInternals = true
	o.Global = true
	o.MemberHeadings = true
	o.Out = "/out"

	run, err := o.Validate()
	require.NoError(t, err)

	assert.Equal(t, writers.DocIDList, run.Kind)
	assert.Equal(t, syntax.XML, run.Style)
	assert.Equal(t, docid.Type|docid.Method, run.Writer.DocIDKinds)
	assert.Equal(t, "T:A.B", run.Filter.ExcludeList)
	assert.True(t, run.Filter.ExcludeMembers)
	assert.True(t, run.Filter.RespectInternals)
	assert.True(t, run.Writer.GlobalPrefix)
	assert.True(t, run.Writer.Headings)
	assert.Equal(t, "/out", run.Output)
	assert.Equal(t, "default", run.Writer.LangVersion.String())
}
