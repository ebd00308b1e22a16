package docid

import (
	"strings"

	"github.com/arthur-debert/apishape/pkg/errors"
	"github.com/arthur-debert/apishape/pkg/metadata"
)

// KindMask selects which element kinds the DocId list writer emits.
type KindMask uint8

const (
	Assembly KindMask = 1 << iota
	Namespace
	Type
	Field
	Property
	Method
	Event

	All = Assembly | Namespace | Type | Field | Property | Method | Event
)

var kindNames = map[string]KindMask{
	"a": Assembly, "assembly": Assembly,
	"n": Namespace, "namespace": Namespace,
	"t": Type, "type": Type,
	"f": Field, "field": Field,
	"p": Property, "property": Property,
	"m": Method, "method": Method,
	"e": Event, "event": Event,
	"all": All, "*": All,
}

// ParseKinds reads a comma separated list of kind letters (A,N,T,F,P,M,E)
// or names. An empty value selects every kind.
func ParseKinds(s string) (KindMask, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return All, nil
	}
	var mask KindMask
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' || r == ' ' }) {
		k, ok := kindNames[strings.ToLower(part)]
		if !ok {
			return 0, errors.Newf(errors.ErrConfigInvalid, "unknown docid kind %q", part)
		}
		mask |= k
	}
	return mask, nil
}

// Has reports whether the mask selects kind.
func (m KindMask) Has(kind metadata.ElementKind) bool {
	switch kind {
	case metadata.KindAssembly:
		return m&Assembly != 0
	case metadata.KindNamespace:
		return m&Namespace != 0
	case metadata.KindType:
		return m&Type != 0
	case metadata.KindField:
		return m&Field != 0
	case metadata.KindProperty:
		return m&Property != 0
	case metadata.KindMethod:
		return m&Method != 0
	case metadata.KindEvent:
		return m&Event != 0
	}
	return false
}
