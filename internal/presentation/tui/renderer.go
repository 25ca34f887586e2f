package tui

import (
	"github.com/charmbracelet/glamour"
)

// RenderStyle selects how markdown is rendered.
type RenderStyle struct {
	// Path is a glamour style file or a standard style name. Empty means
	// pick light or dark from the terminal background.
	Path  string
	Width int
}

// NewRenderer returns a function that renders markdown using glamour.
// The style is looked up on every call so that preference changes apply
// to the next message.
func NewRenderer(style func() RenderStyle) func(string) (string, error) {
	return func(markdown string) (string, error) {
		s := style()
		opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
		if s.Path != "" {
			opts = []glamour.TermRendererOption{glamour.WithStylePath(s.Path)}
		}
		if s.Width > 0 {
			opts = append(opts, glamour.WithWordWrap(s.Width))
		}

		r, err := glamour.NewTermRenderer(opts...)
		if err != nil {
			return "", err
		}
		return r.Render(markdown)
	}
}
