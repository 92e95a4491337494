package topics

// Renderer formats topic content for the terminal
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer returns content unchanged
type PlainRenderer struct{}

// Render returns content as-is
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}
