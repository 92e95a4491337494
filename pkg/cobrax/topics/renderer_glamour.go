package topics

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// GlamourRenderer renders markdown topics with glamour
type GlamourRenderer struct {
	Style string // "dark", "light", "notty", a style file path, or "" to detect
	Width int    // word wrap width, 0 for glamour's default
}

// NewGlamourRenderer creates a renderer that picks its style from the
// terminal it writes to
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{}
}

// detectStyle returns "notty" when stdout is not a terminal, otherwise the
// style matching the terminal background
func detectStyle() string {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return "notty"
	}
	if termenv.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

// Render converts markdown content; other formats pass through
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	style := r.Style
	if style == "" {
		style = detectStyle()
	}

	options := []glamour.TermRendererOption{glamour.WithStylePath(style)}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
