package writers

import (
	"strings"

	"github.com/arthur-debert/apishape/pkg/errors"
	"github.com/arthur-debert/apishape/pkg/syntax"
)

// Kind selects one of the four output strategies.
type Kind string

const (
	Declarations    Kind = "declarations"
	DocIDList       Kind = "docids"
	TypeForwardList Kind = "typeforwards"
	TypeList        Kind = "typelist"
)

// Kinds lists every kind in table order.
var Kinds = []Kind{Declarations, DocIDList, TypeForwardList, TypeList}

var kindAliases = map[string]Kind{
	"":                Declarations,
	"decl":            Declarations,
	"declarations":    Declarations,
	"cs":              Declarations,
	"docid":           DocIDList,
	"docids":          DocIDList,
	"docidlist":       DocIDList,
	"forwards":        TypeForwardList,
	"typeforwards":    TypeForwardList,
	"typeforwardlist": TypeForwardList,
	"types":           TypeList,
	"typelist":        TypeList,
}

// ParseKind maps a configured value onto a Kind. Empty means Declarations.
func ParseKind(s string) (Kind, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return "", errors.Newf(errors.ErrConfigInvalid, "unknown writer %q", s).
		WithDetail("value", s)
}

// Resolve returns k when it is one of Kinds and Declarations otherwise,
// matching what Dispatch renders for it.
func (k Kind) Resolve() Kind {
	for _, known := range Kinds {
		if k == known {
			return k
		}
	}
	return Declarations
}

// UsesSyntax reports whether the kind renders through a syntax renderer.
func (k Kind) UsesSyntax() bool {
	k = k.Resolve()
	return k == Declarations || k == TypeList
}

// Extension returns the file extension for one module's output, without
// the leading dot.
func Extension(k Kind, style syntax.Style) string {
	if !k.UsesSyntax() {
		return "txt"
	}
	switch style {
	case syntax.HTML:
		return "html"
	case syntax.XML:
		return "xml"
	default:
		return "cs"
	}
}
