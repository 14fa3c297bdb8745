package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderInputLine pads an input view to the modal body width on the input
// background. The result is always a single line of exactly bodyW columns.
func renderInputLine(bodyW int, inputView string) string {
	if bodyW < 10 {
		bodyW = 10
	}

	// A stray newline here would look like the input wrapping while typing.
	inputView = strings.NewReplacer("\n", " ", "\r", " ").Replace(inputView)

	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > bodyW {
		// Terminate styling so the cut does not bleed into the border.
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}

// renderLabeled puts a fixed-width label before a field.
func renderLabeled(label string, focused bool, field string) string {
	st := styleMuted().Width(10)
	if focused {
		st = lipgloss.NewStyle().Width(10).Bold(true).Foreground(colorAccent)
	}
	return st.Render(label) + field
}
