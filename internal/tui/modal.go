package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	modalMaxWidth = 72
	modalMinWidth = 30
	modalPadX     = 2
)

// modalWidth is the outer width of a modal on a terminal width columns wide.
func modalWidth(width int) int {
	w := width - 4
	if w > modalMaxWidth {
		w = modalMaxWidth
	}
	if w < modalMinWidth {
		w = modalMinWidth
	}
	return w
}

// modalBodyWidth is the usable content width inside the modal border.
func modalBodyWidth(width int) int {
	return modalWidth(width) - 2 - 2*modalPadX
}

func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)

	header := lipgloss.NewStyle().
		Bold(true).
		Width(bodyW).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Render(" " + strings.TrimSpace(title))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, modalPadX).
		Width(modalWidth(width) - 2)

	return box.Render(header + "\n\n" + content)
}

// placeModal centers a rendered modal in the terminal.
func placeModal(width, height int, modal string) string {
	if width <= 0 || height <= 0 {
		return modal
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}
