package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Nord-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#a3be8c")
	ColorYellow = lipgloss.Color("#ebcb8b")
	ColorRed    = lipgloss.Color("#bf616a")
	ColorBlue   = lipgloss.Color("#81a1c1")
	ColorPurple = lipgloss.Color("#b48ead")
	ColorDim    = lipgloss.Color("#616e88")
	ColorFg     = lipgloss.Color("#eceff4")
	ColorHeader = lipgloss.Color("#88c0d0")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// ErrorLine renders a flat failure line for transient output.
func ErrorLine(err error) string {
	return StyleRed.Render("✗ " + err.Error())
}

// SuccessLine renders a confirmation line for transient output.
func SuccessLine(msg string) string {
	return StyleGreen.Render("✔ ") + msg
}
