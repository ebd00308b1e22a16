// Package host loads module manifests into the read-only metadata model.
//
// A manifest describes one assembly in YAML, TOML or JSON. The host reads
// the requested inputs, resolves assembly references across the inputs and
// a list of search directories, links the model and resolves type
// references. Problems that do not prevent producing a model (an unreadable
// manifest, a reference that cannot be found) are reported to the
// diagnostics sink and loading carries on with what it has.
package host

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/apishape/pkg/diagnostics"
	"github.com/arthur-debert/apishape/pkg/logging"
	"github.com/arthur-debert/apishape/pkg/metadata"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Extensions lists the manifest formats the host understands, in lookup
// order.
var Extensions = []string{".yaml", ".yml", ".toml", ".json"}

const manifestGlob = "*.{yaml,yml,toml,json}"

// Loader produces the module set of a run.
type Loader interface {
	Load(paths ...string) []*metadata.Assembly
}

// Host is the file-backed Loader.
type Host struct {
	fs          afero.Fs
	searchPaths []string
	sink        diagnostics.Sink
	logger      zerolog.Logger
}

// New returns a host reading from fs and reporting to sink. searchPaths are
// the directories probed for referenced assemblies.
func New(fs afero.Fs, sink diagnostics.Sink, searchPaths ...string) *Host {
	if sink == nil {
		sink = diagnostics.Discard
	}
	return &Host{
		fs:          fs,
		searchPaths: searchPaths,
		sink:        sink,
		logger:      logging.GetLogger("host"),
	}
}

// Load reads every input path (a manifest or a directory of manifests) and
// returns the linked input assemblies in path order. Referenced assemblies
// are loaded for resolution only and are not returned.
func (h *Host) Load(paths ...string) []*metadata.Assembly {
	done := logging.LogOperationStart(h.logger, "load")
	defer done()

	loaded := map[string]*metadata.Assembly{}
	var inputs []*metadata.Assembly

	for _, file := range h.expand(paths) {
		asm, err := h.readManifest(file)
		if err != nil {
			h.report(diagnostics.Warning, diagnostics.UnreadableModule, file, err.Error())
			continue
		}
		if _, dup := loaded[asm.Name]; dup {
			h.report(diagnostics.Warning, diagnostics.UnreadableModule, file,
				fmt.Sprintf("assembly '%s' is already loaded, skipping", asm.Name))
			continue
		}
		loaded[asm.Name] = asm
		inputs = append(inputs, asm)
	}

	h.resolveAssemblies(inputs, loaded)

	for _, asm := range loaded {
		metadata.Link(asm)
	}
	for _, asm := range loaded {
		metadata.ResolveReferences(asm, h.lookup(asm, loaded))
	}
	for _, asm := range inputs {
		for _, f := range asm.TypeForwards {
			if f.Resolved() == nil {
				h.report(diagnostics.Info, diagnostics.UnresolvedForward, asm.Name,
					fmt.Sprintf("unable to resolve forwarded type '%s'", f.Type.Name))
			}
		}
	}

	h.logger.Info().
		Int("inputs", len(inputs)).
		Int("references", len(loaded)-len(inputs)).
		Msg("Loaded assemblies")
	return inputs
}

// expand turns input paths into manifest files. Directories contribute
// their manifests in name order; missing paths are reported.
func (h *Host) expand(paths []string) []string {
	var files []string
	for _, p := range paths {
		info, err := h.fs.Stat(p)
		if err != nil {
			h.report(diagnostics.Warning, diagnostics.UnreadableModule, p, "no such file or directory")
			continue
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		matches, err := doublestar.Glob(afero.NewIOFS(afero.NewBasePathFs(h.fs, p)), manifestGlob)
		if err != nil {
			h.report(diagnostics.Warning, diagnostics.UnreadableModule, p, err.Error())
			continue
		}
		sort.Strings(matches)
		for _, m := range matches {
			files = append(files, filepath.Join(p, m))
		}
	}
	return files
}

// resolveAssemblies loads referenced assemblies from the search paths until
// every reachable reference is either loaded or reported.
func (h *Host) resolveAssemblies(inputs []*metadata.Assembly, loaded map[string]*metadata.Assembly) {
	queue := append([]*metadata.Assembly(nil), inputs...)
	missing := map[string]bool{}

	for len(queue) > 0 {
		asm := queue[0]
		queue = queue[1:]

		for _, name := range requiredAssemblies(asm) {
			if _, ok := loaded[name]; ok {
				continue
			}
			if missing[name] {
				h.reportUnresolved(asm.Name, name)
				continue
			}
			ref, err := h.findReference(name)
			if err != nil || ref == nil {
				missing[name] = true
				if err != nil {
					h.logger.Debug().Err(err).Str("assembly", name).Msg("Reference manifest unreadable")
				}
				h.reportUnresolved(asm.Name, name)
				continue
			}
			loaded[ref.Name] = ref
			queue = append(queue, ref)
		}
	}
}

func (h *Host) reportUnresolved(from, name string) {
	h.report(diagnostics.Info, diagnostics.UnresolvedReference, from,
		fmt.Sprintf("unable to resolve assembly '%s'", name))
}

func requiredAssemblies(asm *metadata.Assembly) []string {
	seen := map[string]bool{asm.Name: true}
	var out []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, r := range asm.References {
		add(r)
	}
	for _, f := range asm.TypeForwards {
		add(f.Type.Assembly)
	}
	return out
}

// findReference probes each search path for a manifest named after the
// assembly.
func (h *Host) findReference(name string) (*metadata.Assembly, error) {
	for _, dir := range h.searchPaths {
		for _, ext := range Extensions {
			candidate := filepath.Join(dir, name+ext)
			if ok, _ := afero.Exists(h.fs, candidate); !ok {
				continue
			}
			h.logger.Debug().Str("assembly", name).Str("path", candidate).Msg("Resolved reference")
			return h.readManifest(candidate)
		}
	}
	return nil, nil
}

// lookup resolves type references from asm: an explicit assembly wins,
// then asm itself, then every other loaded assembly in name order.
func (h *Host) lookup(asm *metadata.Assembly, loaded map[string]*metadata.Assembly) func(metadata.TypeRef) *metadata.Type {
	names := make([]string, 0, len(loaded))
	for name := range loaded {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(r metadata.TypeRef) *metadata.Type {
		if r.Assembly != "" {
			if target, ok := loaded[r.Assembly]; ok {
				return target.FindType(r.Name)
			}
			return nil
		}
		if t := asm.FindType(r.Name); t != nil {
			return t
		}
		for _, name := range names {
			if t := loaded[name].FindType(r.Name); t != nil {
				return t
			}
		}
		return nil
	}
}

func (h *Host) readManifest(path string) (*metadata.Assembly, error) {
	data, err := afero.ReadFile(h.fs, path)
	if err != nil {
		return nil, err
	}
	asm, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if asm.Name == "" {
		asm.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := metadata.Validate(asm); err != nil {
		return nil, err
	}
	return asm, nil
}

// Decode parses one manifest. Unknown fields are rejected so that typos in
// hand-written manifests surface as diagnostics instead of silently
// dropping API.
func Decode(data []byte, ext string) (*metadata.Assembly, error) {
	var asm metadata.Assembly
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&asm); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&asm); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&asm); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", ext)
	}
	return &asm, nil
}

func (h *Host) report(sev diagnostics.Severity, code diagnostics.Code, source, msg string) {
	h.sink.Report(diagnostics.Diagnostic{Severity: sev, Code: code, Source: source, Message: msg})
}
