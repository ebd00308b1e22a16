package filter

import (
	"github.com/arthur-debert/apishape/pkg/metadata"
)

type visibility struct {
	internals bool
}

// PublicOnly includes only externally visible elements and the namespaces
// that contain them. Protected members count as visible while the declaring
// type can be derived from.
func PublicOnly() Filter {
	return visibility{}
}

// InternalsAndPublic is PublicOnly that also treats internal,
// protected internal and private protected elements as visible.
func InternalsAndPublic() Filter {
	return visibility{internals: true}
}

func (v visibility) Includes(e metadata.Element) bool {
	switch e := e.(type) {
	case *metadata.Assembly, *metadata.TypeForward:
		return true
	case *metadata.Namespace:
		for _, t := range e.Types {
			if v.typeVisible(t) {
				return true
			}
		}
		return false
	case *metadata.Type:
		return v.typeVisible(e)
	case *metadata.Member:
		t := e.DeclaringType()
		if t != nil && !v.typeVisible(t) {
			return false
		}
		return v.accessible(e.Visibility, t)
	case *metadata.Attribute:
		if t := e.Type.Resolved(); t != nil {
			return v.typeVisible(t)
		}
		return true
	}
	return true
}

func (v visibility) typeVisible(t *metadata.Type) bool {
	for ; t != nil; t = t.DeclaringType() {
		if !v.accessible(t.Visibility, t.DeclaringType()) {
			return false
		}
	}
	return true
}

// accessible reports whether an element declared inside container with
// the given visibility can be seen from outside the assembly. container is
// nil for top-level types.
func (v visibility) accessible(vis metadata.Visibility, container *metadata.Type) bool {
	switch vis.Normalize() {
	case metadata.Public:
		return true
	case metadata.ProtectedInternal:
		if v.internals {
			return true
		}
		fallthrough
	case metadata.Protected:
		return container != nil && !container.Sealed && !container.Static
	case metadata.Internal, metadata.PrivateProtected:
		return v.internals
	}
	return false
}
