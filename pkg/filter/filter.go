package filter

import (
	"github.com/arthur-debert/apishape/pkg/metadata"
)

// Filter decides whether an element is part of the rendered surface.
type Filter interface {
	Includes(e metadata.Element) bool
}

// Func adapts a function to the Filter interface.
type Func func(e metadata.Element) bool

// Includes calls f(e).
func (f Func) Includes(e metadata.Element) bool { return f(e) }

// chain is the flattened conjunction built by Intersect.
type chain []Filter

func (c chain) Includes(e metadata.Element) bool {
	for _, f := range c {
		if !f.Includes(e) {
			return false
		}
	}
	return true
}

// Intersect returns a filter that includes an element only when every
// given filter does. Nested intersections are flattened; nil filters are
// skipped. With no filters the result includes everything.
func Intersect(filters ...Filter) Filter {
	var out chain
	for _, f := range filters {
		switch f := f.(type) {
		case nil:
		case chain:
			out = append(out, f...)
		default:
			out = append(out, f)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

// Len reports how many predicates f evaluates. Used by tests and logging.
func Len(f Filter) int {
	if c, ok := f.(chain); ok {
		return len(c)
	}
	return 1
}
