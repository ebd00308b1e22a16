package syntax

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

type htmlRenderer struct {
	lines
	opened  bool
	open    int
	flushed bool
}

func newHTML(w io.Writer) *htmlRenderer {
	r := &htmlRenderer{lines: lines{w: w}}
	r.emit = func(kind, s string) {
		r.write(`<span class="` + kind + `">` + html.EscapeString(s) + `</span>`)
	}
	return r
}

func (r *htmlRenderer) start() {
	if !r.opened {
		r.opened = true
		r.write(`<pre class="apishape">`)
	}
}

func (r *htmlRenderer) token(kind, s string) {
	r.start()
	r.lines.token(kind, s)
}

func (r *htmlRenderer) Keyword(s string)     { r.token(kindKeyword, s) }
func (r *htmlRenderer) Identifier(s string)  { r.token(kindIdentifier, s) }
func (r *htmlRenderer) TypeName(s string)    { r.token(kindType, s) }
func (r *htmlRenderer) Punctuation(s string) { r.token(kindPunctuation, s) }
func (r *htmlRenderer) Literal(s string)     { r.token(kindLiteral, s) }
func (r *htmlRenderer) Comment(s string)     { r.token(kindComment, s) }

func (r *htmlRenderer) LineBreak() {
	r.start()
	r.lines.LineBreak()
}

func (r *htmlRenderer) OpenBlock() {
	r.start()
	r.lines.OpenBlock()
}

func (r *htmlRenderer) CloseBlock() {
	r.start()
	r.lines.CloseBlock()
}

func (r *htmlRenderer) BeginHighlight(class string) {
	r.start()
	if !r.lineStarted {
		r.write(strings.Repeat(indentUnit, r.depth))
		r.lineStarted = true
	}
	r.write(`<span class="` + html.EscapeString(class) + `">`)
	r.open++
}

func (r *htmlRenderer) EndHighlight() {
	if r.open == 0 {
		return
	}
	r.write(`</span>`)
	r.open--
}

func (r *htmlRenderer) Flush() error {
	if r.flushed {
		return nil
	}
	r.flushed = true
	for r.open > 0 {
		r.EndHighlight()
	}
	r.start()
	r.write("</pre>\n")
	if r.err != nil {
		return renderErr(r.err)
	}
	return nil
}
