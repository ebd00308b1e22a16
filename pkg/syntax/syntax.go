// Package syntax turns structural declaration tokens into text, HTML or
// XML. Renderers know nothing about filtering; writers drive them token by
// token and call Flush once at the end.
package syntax

import (
	"io"
	"strings"

	"github.com/arthur-debert/apishape/pkg/errors"
)

// Style selects a renderer backend.
type Style string

const (
	Text Style = "text"
	HTML Style = "html"
	XML  Style = "xml"
)

// Styles lists every style in table order.
var Styles = []Style{Text, HTML, XML}

// ParseStyle maps a configured value onto a Style. Empty means Text.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt", "cs":
		return Text, nil
	case "html", "htm":
		return HTML, nil
	case "xml":
		return XML, nil
	}
	return "", errors.Newf(errors.ErrConfigInvalid, "unknown syntax style %q", s)
}

// Highlight classes understood by every renderer.
const (
	HighlightOverride   = "override"
	HighlightImplements = "implements"
)

// Renderer consumes declaration tokens. Write errors are sticky: once a
// write fails every later call is a no-op and Flush reports the error.
type Renderer interface {
	Keyword(s string)
	Identifier(s string)
	TypeName(s string)
	Punctuation(s string)
	Literal(s string)
	Comment(s string)
	Space()
	LineBreak()
	// OpenBlock ends the current line, writes an opening brace on a line
	// of its own and indents what follows.
	OpenBlock()
	// CloseBlock ends the current line, dedents and writes the closing
	// brace.
	CloseBlock()
	BeginHighlight(class string)
	EndHighlight()
	Flush() error
}

// New returns a renderer for style writing to w.
func New(style Style, w io.Writer) Renderer {
	switch style {
	case HTML:
		return newHTML(w)
	case XML:
		return newXML(w)
	default:
		return newText(w)
	}
}

const indentUnit = "    "

func renderErr(err error) error {
	return errors.Wrap(err, errors.ErrRender, "write output")
}
