package tui

import "github.com/charmbracelet/glamour"

// Markdown renders assistant replies for the terminal. It satisfies
// services.Renderer.
type Markdown struct {
	r *glamour.TermRenderer
}

func NewMarkdown(width int) (*Markdown, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Markdown{r: r}, nil
}

func (m *Markdown) Render(markdown string) (string, error) {
	return m.r.Render(markdown)
}
