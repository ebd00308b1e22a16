package writers

import (
	"bufio"

	"github.com/arthur-debert/apishape/pkg/filter"
	"github.com/arthur-debert/apishape/pkg/metadata"
)

const typeForwardedTo = "System.Runtime.CompilerServices.TypeForwardedTo"

// forwardWriter emits one assembly-level forwarding attribute per
// included type forward. With follow set, the nested types of a resolved
// forwarded type are forwarded too.
type forwardWriter struct {
	out    *bufio.Writer
	filter filter.Filter
	names  namer
	follow bool
}

func (w *forwardWriter) WriteAssemblies(assemblies []*metadata.Assembly) error {
	for _, a := range assemblies {
		if !w.filter.Includes(a) {
			continue
		}
		for _, fw := range a.TypeForwards {
			if !forwardIncluded(w.filter, fw) {
				continue
			}
			w.line(fw.Type.Name)
			if t := fw.Resolved(); t != nil && w.follow {
				w.nested(t)
			}
		}
	}
	return nil
}

func (w *forwardWriter) nested(t *metadata.Type) {
	for _, n := range t.NestedTypes {
		if !w.filter.Includes(n) {
			continue
		}
		w.line(n.FullName())
		w.nested(n)
	}
}

func (w *forwardWriter) line(fullName string) {
	_, _ = w.out.WriteString("[assembly: " + w.names.name(typeForwardedTo) +
		"(typeof(" + w.names.open(fullName) + "))]\n")
}

func (w *forwardWriter) Close() error { return flushErr(w.out) }

// forwardIncluded reports whether a forward passes the filter, along with
// its forwarded type when the destination could be loaded.
func forwardIncluded(f filter.Filter, fw *metadata.TypeForward) bool {
	if !f.Includes(fw) {
		return false
	}
	if t := fw.Resolved(); t != nil {
		return f.Includes(t)
	}
	return true
}
