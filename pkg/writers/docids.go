package writers

import (
	"bufio"

	"github.com/arthur-debert/apishape/pkg/docid"
	"github.com/arthur-debert/apishape/pkg/filter"
	"github.com/arthur-debert/apishape/pkg/metadata"
)

// docIDWriter emits one DocId per included element whose kind is in the
// mask, in tree order.
type docIDWriter struct {
	out    *bufio.Writer
	filter filter.Filter
	kinds  docid.KindMask
}

func (w *docIDWriter) WriteAssemblies(assemblies []*metadata.Assembly) error {
	for _, a := range assemblies {
		if !w.filter.Includes(a) {
			continue
		}
		w.emit(a)
		for _, ns := range a.Namespaces {
			if !w.filter.Includes(ns) {
				continue
			}
			w.emit(ns)
			for _, t := range ns.Types {
				w.typ(t)
			}
		}
	}
	return nil
}

func (w *docIDWriter) typ(t *metadata.Type) {
	if !w.filter.Includes(t) {
		return
	}
	w.emit(t)
	for _, m := range t.Members {
		if w.filter.Includes(m) {
			w.emit(m)
		}
	}
	for _, n := range t.NestedTypes {
		w.typ(n)
	}
}

func (w *docIDWriter) emit(e metadata.Element) {
	if w.kinds.Has(e.ElementKind()) {
		_, _ = w.out.WriteString(e.DocID() + "\n")
	}
}

func (w *docIDWriter) Close() error { return flushErr(w.out) }
