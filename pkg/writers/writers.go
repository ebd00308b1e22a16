// Package writers renders a filtered set of assemblies in one of four
// forms: source-like declarations, a DocId list, a type-forward list or a
// type listing. Dispatch picks the strategy once; nothing downstream
// branches on the kind again.
package writers

import (
	"bufio"
	"io"

	"github.com/arthur-debert/apishape/pkg/docid"
	"github.com/arthur-debert/apishape/pkg/errors"
	"github.com/arthur-debert/apishape/pkg/filter"
	"github.com/arthur-debert/apishape/pkg/langversion"
	"github.com/arthur-debert/apishape/pkg/logging"
	"github.com/arthur-debert/apishape/pkg/metadata"
	"github.com/arthur-debert/apishape/pkg/syntax"
)

// Writer renders assemblies to the stream it was opened on. Close flushes
// buffered output; it does not close the stream.
type Writer interface {
	WriteAssemblies(assemblies []*metadata.Assembly) error
	Close() error
}

// Options carries the knobs of every writer. Each writer reads only the
// fields that apply to it.
type Options struct {
	Headings                      bool
	HighlightBaseMembers          bool
	HighlightInterfaceMembers     bool
	AlwaysIncludeBase             bool
	ExcludeMembersOnFilteredTypes bool
	ExceptionMessage              string
	GlobalPrefix                  bool
	FollowTypeForwards            bool
	APIOnly                       bool
	LangVersion                   langversion.Version
	// DocIDKinds defaults to every kind when zero.
	DocIDKinds docid.KindMask
	// ExcludedAttributes is honoured even when AlwaysIncludeBase is set.
	ExcludedAttributes docid.Set
}

// Factory opens writers of one kind bound to one filter.
type Factory struct {
	kind Kind
	open func(w io.Writer) Writer
}

// NewFactory wraps an open function as a Factory of the given kind.
func NewFactory(kind Kind, open func(w io.Writer) Writer) Factory {
	return Factory{kind: kind, open: open}
}

// Kind returns the kind the factory was dispatched for.
func (f Factory) Kind() Kind { return f.kind }

// Open returns a writer emitting to w.
func (f Factory) Open(w io.Writer) Writer { return f.open(w) }

// Dispatch maps kind onto its writer. Declarations and TypeList render
// through a syntax renderer of the given style; the list writers emit
// plain lines and never get one. An unknown kind dispatches to
// Declarations.
func Dispatch(kind Kind, f filter.Filter, style syntax.Style, opts Options) Factory {
	kind = kind.Resolve()
	logger := logging.GetLogger("writers")
	logger.Debug().Str("kind", string(kind)).Str("syntax", string(style)).Msg("dispatching writer")

	switch kind {
	case DocIDList:
		kinds := opts.DocIDKinds
		if kinds == 0 {
			kinds = docid.All
		}
		return Factory{kind: kind, open: func(w io.Writer) Writer {
			return &docIDWriter{out: bufio.NewWriter(w), filter: f, kinds: kinds}
		}}
	case TypeForwardList:
		return Factory{kind: kind, open: func(w io.Writer) Writer {
			return &forwardWriter{out: bufio.NewWriter(w), filter: f, names: newNamer(opts), follow: opts.FollowTypeForwards}
		}}
	case TypeList:
		return Factory{kind: kind, open: func(w io.Writer) Writer {
			return newDeclarations(syntax.New(style, w), f, opts, true)
		}}
	default:
		return Factory{kind: Declarations, open: func(w io.Writer) Writer {
			return newDeclarations(syntax.New(style, w), f, opts, false)
		}}
	}
}

func flushErr(w *bufio.Writer) error {
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, errors.ErrRender, "write output")
	}
	return nil
}
