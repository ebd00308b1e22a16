package syntax

import (
	"io"

	"github.com/beevik/etree"
)

// xmlRenderer builds an element tree and serializes it on Flush:
//
//	<api>
//	  <line><keyword>namespace</keyword><space/><identifier>X</identifier></line>
//	  <block>
//	    <line>...</line>
//	  </block>
//	</api>
type xmlRenderer struct {
	w       io.Writer
	doc     *etree.Document
	blocks  []*etree.Element
	line    *etree.Element
	spans   []*etree.Element
	flushed bool
}

func newXML(w io.Writer) *xmlRenderer {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	return &xmlRenderer{w: w, doc: doc, blocks: []*etree.Element{doc.CreateElement("api")}}
}

func (r *xmlRenderer) container() *etree.Element {
	if n := len(r.spans); n > 0 {
		return r.spans[n-1]
	}
	if r.line == nil {
		r.line = r.blocks[len(r.blocks)-1].CreateElement("line")
	}
	return r.line
}

func (r *xmlRenderer) token(tag, s string) {
	if s == "" {
		return
	}
	r.container().CreateElement(tag).SetText(s)
}

func (r *xmlRenderer) Keyword(s string)     { r.token("keyword", s) }
func (r *xmlRenderer) Identifier(s string)  { r.token("identifier", s) }
func (r *xmlRenderer) TypeName(s string)    { r.token("type", s) }
func (r *xmlRenderer) Punctuation(s string) { r.token("punct", s) }
func (r *xmlRenderer) Literal(s string)     { r.token("literal", s) }
func (r *xmlRenderer) Comment(s string)     { r.token("comment", s) }

func (r *xmlRenderer) Space() {
	if r.line != nil {
		r.container().CreateElement("space")
	}
}

func (r *xmlRenderer) LineBreak() {
	if r.line == nil && len(r.spans) == 0 {
		r.blocks[len(r.blocks)-1].CreateElement("line")
	}
	r.line = nil
	r.spans = r.spans[:0]
}

func (r *xmlRenderer) OpenBlock() {
	r.endLine()
	r.blocks = append(r.blocks, r.blocks[len(r.blocks)-1].CreateElement("block"))
}

func (r *xmlRenderer) CloseBlock() {
	r.endLine()
	if len(r.blocks) > 1 {
		r.blocks = r.blocks[:len(r.blocks)-1]
	}
}

func (r *xmlRenderer) endLine() {
	r.line = nil
	r.spans = r.spans[:0]
}

func (r *xmlRenderer) BeginHighlight(class string) {
	h := r.container().CreateElement("highlight")
	h.CreateAttr("class", class)
	r.spans = append(r.spans, h)
}

func (r *xmlRenderer) EndHighlight() {
	if n := len(r.spans); n > 0 {
		r.spans = r.spans[:n-1]
	}
}

func (r *xmlRenderer) Flush() error {
	if r.flushed {
		return nil
	}
	r.flushed = true
	r.doc.Indent(2)
	if _, err := r.doc.WriteTo(r.w); err != nil {
		return renderErr(err)
	}
	return nil
}
