package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Chimara banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	// Teal into violet, like the cover of an old Infocom grey box.
	lines := []struct {
		text  string
		color string
	}{
		{`   ____ _     _                           `, "#2dd4bf"},
		{`  / ___| |__ (_)_ __ ___   __ _ _ __ __ _ `, "#38bdf8"},
		{` | |   | '_ \| | '_ ' _ \ / _' | '__/ _' |`, "#818cf8"},
		{` | |___| | | | | | | | | | (_| | | | (_| |`, "#a78bfa"},
		{`  \____|_| |_|_|_| |_| |_|\__,_|_|  \__,_|`, "#c084fc"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String(fmt.Sprintf("  interactive fiction player %s", version)).Faint())
	fmt.Fprintln(w)
}
