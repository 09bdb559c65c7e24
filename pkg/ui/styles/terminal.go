package styles

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ColorEnabled reports whether f is a terminal that should get colour.
// NO_COLOR disables it.
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// Setup switches lipgloss to plain output when f should not get colour.
func Setup(f *os.File) {
	if !ColorEnabled(f) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
