// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arrange

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan  = lipgloss.Color("36")
	colorRed   = lipgloss.Color("167")
	colorWhite = lipgloss.Color("255")
	colorDim   = lipgloss.Color("240")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	normalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	dimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	warnStyle     = lipgloss.NewStyle().Foreground(colorRed)
)

// swatch renders a small block in the entry's tag color.
func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("    ")
}
