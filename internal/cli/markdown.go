package cli

import (
	"github.com/charmbracelet/glamour"
)

// renderMarkdown renders a workflow readme for the terminal, falling back to
// the raw text when rendering fails.
func renderMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
