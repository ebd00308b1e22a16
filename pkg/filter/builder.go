package filter

import (
	"github.com/arthur-debert/apishape/pkg/docid"
	"github.com/arthur-debert/apishape/pkg/errors"
	"github.com/arthur-debert/apishape/pkg/logging"
	"github.com/arthur-debert/apishape/pkg/metadata"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Options selects the base policy and modifiers. List fields hold a list
// source: a file path or an inline comma separated DocId list.
type Options struct {
	IncludeList              string
	ExcludeList              string
	ExcludeMembers           bool
	ExcludeAttributesList    string
	All                      bool
	RespectInternals         bool
	ExcludeCompilerGenerated bool
}

// Builder holds resolved list sources and produces the filter chain for a
// set of assemblies.
type Builder struct {
	opts    Options
	include *docid.Set
	exclude *docid.Set
	attrs   *docid.Set
	logger  zerolog.Logger
}

// NewBuilder resolves every list source in opts. Any unreadable or
// malformed source fails the whole build with a configuration error.
func NewBuilder(fs afero.Fs, opts Options) (*Builder, error) {
	b := &Builder{opts: opts, logger: logging.GetLogger("filter")}

	var err error
	if b.include, err = resolve(fs, "include", opts.IncludeList); err != nil {
		return nil, err
	}
	if b.exclude, err = resolve(fs, "exclude", opts.ExcludeList); err != nil {
		return nil, err
	}
	if b.attrs, err = resolve(fs, "exclude attributes", opts.ExcludeAttributesList); err != nil {
		return nil, err
	}
	if opts.ExcludeMembers && b.exclude == nil {
		return nil, errors.New(errors.ErrConfigInvalid, "exclude-members requires an exclude list")
	}
	return b, nil
}

func resolve(fs afero.Fs, name, source string) (*docid.Set, error) {
	if source == "" {
		return nil, nil
	}
	set, err := docid.Resolve(fs, source)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "%s list", name).WithDetail("source", source)
	}
	return &set, nil
}

// ExcludedAttributes returns the resolved exclude-attributes list, empty
// when none was given.
func (b *Builder) ExcludedAttributes() docid.Set {
	if b.attrs == nil {
		return docid.Set{}
	}
	return *b.attrs
}

// ModuleScoped reports whether the base policy depends on which
// assemblies it is built for. Only a respect-internals run without an
// include list or the all toggle does.
func (b *Builder) ModuleScoped() bool {
	return b.include == nil && !b.opts.All && b.opts.RespectInternals
}

// ForAssemblies builds the filter chain for rendering assemblies together.
// Internals are visible when respect-internals is on and any of the
// assemblies carries an internals grant.
func (b *Builder) ForAssemblies(assemblies []*metadata.Assembly) Filter {
	filters := []Filter{b.base(assemblies)}
	if b.exclude != nil {
		filters = append(filters, DocIDExcludeList(*b.exclude, b.opts.ExcludeMembers))
	}
	if b.attrs != nil {
		filters = append(filters, ExcludeAttributes(*b.attrs))
	}
	if b.opts.ExcludeCompilerGenerated {
		filters = append(filters, ExcludeCompilerGenerated())
	}
	return Intersect(filters...)
}

func (b *Builder) base(assemblies []*metadata.Assembly) Filter {
	switch {
	case b.include != nil:
		b.logger.Debug().Int("ids", b.include.Len()).Msg("base policy: include list")
		return DocIDIncludeList(*b.include)
	case b.opts.All:
		b.logger.Debug().Msg("base policy: all")
		return IncludeAll()
	case b.opts.RespectInternals && anyGrants(assemblies):
		b.logger.Debug().Int("assemblies", len(assemblies)).Msg("base policy: internals and public")
		return InternalsAndPublic()
	default:
		b.logger.Debug().Msg("base policy: public only")
		return PublicOnly()
	}
}

func anyGrants(assemblies []*metadata.Assembly) bool {
	for _, a := range assemblies {
		if a.GrantsInternals() {
			return true
		}
	}
	return false
}
