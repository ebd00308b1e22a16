package syntax

import "io"

type textRenderer struct {
	lines
}

func newText(w io.Writer) *textRenderer {
	r := &textRenderer{lines: lines{w: w}}
	r.emit = func(_, s string) { r.write(s) }
	return r
}

func (r *textRenderer) BeginHighlight(string) {}
func (r *textRenderer) EndHighlight()         {}

func (r *textRenderer) Flush() error {
	if r.err != nil {
		return renderErr(r.err)
	}
	return nil
}
