package topics

import "github.com/charmbracelet/glamour"

// Renderer formats topic content for terminal display
type Renderer interface {
	Render(content, format string) string
}

// PlainRenderer returns content unchanged
type PlainRenderer struct{}

// Render implements Renderer
func (PlainRenderer) Render(content, _ string) string {
	return content
}

// GlamourRenderer renders markdown topics with glamour. Other formats and
// rendering failures fall back to the raw content.
type GlamourRenderer struct {
	// Style is a glamour style name or path; empty detects from the terminal
	Style string
	// Width wraps output; zero keeps glamour's default
	Width int
}

// Render implements Renderer
func (r GlamourRenderer) Render(content, format string) string {
	if format != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	if r.Style != "" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}
