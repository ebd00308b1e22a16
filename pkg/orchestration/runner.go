package orchestration

import (
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/apishape/pkg/errors"
	"github.com/arthur-debert/apishape/pkg/filter"
	"github.com/arthur-debert/apishape/pkg/host"
	"github.com/arthur-debert/apishape/pkg/logging"
	"github.com/arthur-debert/apishape/pkg/metadata"
	"github.com/arthur-debert/apishape/pkg/syntax"
	"github.com/arthur-debert/apishape/pkg/writers"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Options is everything a run needs besides its collaborators.
type Options struct {
	Inputs     []string
	Output     string
	HeaderFile string
	Kind       writers.Kind
	Style      syntax.Style
	Filter     filter.Options
	Writer     writers.Options
}

// DispatchFunc picks the writer factory for a filter chain.
type DispatchFunc func(kind writers.Kind, f filter.Filter, style syntax.Style, opts writers.Options) writers.Factory

// Runner executes runs against a file system and a module loader.
type Runner struct {
	FS     afero.Fs
	Host   host.Loader
	Stdout io.Writer
	Logger zerolog.Logger

	// Dispatch defaults to writers.Dispatch.
	Dispatch DispatchFunc
}

// NewRunner returns a Runner with the default dispatcher and logger.
func NewRunner(fs afero.Fs, loader host.Loader, stdout io.Writer) *Runner {
	return &Runner{
		FS:       fs,
		Host:     loader,
		Stdout:   stdout,
		Logger:   logging.GetLogger("orchestration"),
		Dispatch: writers.Dispatch,
	}
}

// Run renders the inputs named in opts. It returns a configuration error
// before loading anything when a list source or the header file is bad,
// and a no-modules error when nothing could be loaded. Render and write
// failures stop the run; in per-module mode files already written stay.
func (r *Runner) Run(opts Options) error {
	opts.Kind = opts.Kind.Resolve()
	if opts.Style == "" {
		opts.Style = syntax.Text
	}

	builder, err := filter.NewBuilder(r.FS, opts.Filter)
	if err != nil {
		return err
	}
	opts.Writer.ExcludedAttributes = builder.ExcludedAttributes()

	modules := r.Host.Load(opts.Inputs...)
	if len(modules) == 0 {
		return errors.New(errors.ErrNoModules, "no modules could be loaded").
			WithDetail("inputs", opts.Inputs)
	}

	header, err := ResolveHeader(r.FS, opts.HeaderFile, opts.Kind, opts.Style)
	if err != nil {
		return err
	}

	mode := DetectMode(r.FS, opts.Output)
	r.Logger.Info().
		Str("mode", string(mode)).
		Str("kind", string(opts.Kind)).
		Str("syntax", string(opts.Style)).
		Int("modules", len(modules)).
		Msg("Rendering")

	if mode == PerModuleFile {
		return r.perModule(opts, builder, modules, header)
	}
	return r.single(opts, builder, modules, header)
}

func (r *Runner) dispatch(opts Options, f filter.Filter) writers.Factory {
	d := r.Dispatch
	if d == nil {
		d = writers.Dispatch
	}
	return d(opts.Kind, f, opts.Style, opts.Writer)
}

func (r *Runner) single(opts Options, builder *filter.Builder, modules []*metadata.Assembly, header string) (err error) {
	factory := r.dispatch(opts, builder.ForAssemblies(modules))

	name := "stdout"
	var stream io.WriteCloser = nopCloser{r.Stdout}
	if opts.Output != "" {
		name = opts.Output
		f, cerr := r.FS.Create(opts.Output)
		if cerr != nil {
			return errors.Wrapf(cerr, errors.ErrFileCreate, "create %s", opts.Output)
		}
		stream = f
	}

	s, err := openSession(name, stream, factory, header)
	if err != nil {
		return err
	}
	defer release(s, &err)
	return s.render(modules)
}

func (r *Runner) perModule(opts Options, builder *filter.Builder, modules []*metadata.Assembly, header string) error {
	ext := writers.Extension(opts.Kind, opts.Style)

	var shared writers.Factory
	scoped := builder.ModuleScoped()
	if !scoped {
		shared = r.dispatch(opts, builder.ForAssemblies(modules))
	}

	for _, m := range modules {
		factory := shared
		if scoped {
			factory = r.dispatch(opts, builder.ForAssemblies([]*metadata.Assembly{m}))
		}
		path := filepath.Join(opts.Output, m.Name+"."+ext)
		if err := r.renderFile(path, factory, m, header); err != nil {
			r.Logger.Error().Err(err).Str("module", m.Name).Msg("Stopping after failed module")
			return err
		}
		r.Logger.Debug().Str("module", m.Name).Str("path", path).Msg("Wrote module")
	}
	return nil
}

func (r *Runner) renderFile(path string, factory writers.Factory, m *metadata.Assembly, header string) (err error) {
	f, err := r.FS.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "create %s", path)
	}

	s, err := openSession(path, f, factory, header)
	if err != nil {
		return err
	}
	defer release(s, &err)
	return s.render([]*metadata.Assembly{m})
}
