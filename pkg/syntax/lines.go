package syntax

import (
	"io"
	"strings"
)

// token kinds shared by the line-oriented renderers
const (
	kindKeyword     = "kw"
	kindIdentifier  = "id"
	kindType        = "type"
	kindPunctuation = "punct"
	kindLiteral     = "lit"
	kindComment     = "comment"
)

// lines tracks indentation and line starts for the text and HTML
// renderers. emit writes one token in the backend's own markup.
type lines struct {
	w           io.Writer
	err         error
	depth       int
	lineStarted bool
	emit        func(kind, s string)
}

func (l *lines) write(s string) {
	if l.err != nil || s == "" {
		return
	}
	_, l.err = io.WriteString(l.w, s)
}

func (l *lines) token(kind, s string) {
	if s == "" {
		return
	}
	if !l.lineStarted {
		l.write(strings.Repeat(indentUnit, l.depth))
		l.lineStarted = true
	}
	l.emit(kind, s)
}

func (l *lines) Keyword(s string)     { l.token(kindKeyword, s) }
func (l *lines) Identifier(s string)  { l.token(kindIdentifier, s) }
func (l *lines) TypeName(s string)    { l.token(kindType, s) }
func (l *lines) Punctuation(s string) { l.token(kindPunctuation, s) }
func (l *lines) Literal(s string)     { l.token(kindLiteral, s) }
func (l *lines) Comment(s string)     { l.token(kindComment, s) }

func (l *lines) Space() {
	if l.lineStarted {
		l.write(" ")
	}
}

func (l *lines) LineBreak() {
	l.write("\n")
	l.lineStarted = false
}

func (l *lines) endLine() {
	if l.lineStarted {
		l.LineBreak()
	}
}

func (l *lines) OpenBlock() {
	l.endLine()
	l.Punctuation("{")
	l.LineBreak()
	l.depth++
}

func (l *lines) CloseBlock() {
	l.endLine()
	if l.depth > 0 {
		l.depth--
	}
	l.Punctuation("}")
	l.LineBreak()
}
