package topics

// Renderer formats topic content for the terminal.
type Renderer interface {
	// Render receives the raw content and the source file extension.
	Render(content string, format string) string
}

// PlainRenderer returns content unchanged.
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, format string) string {
	return content
}
