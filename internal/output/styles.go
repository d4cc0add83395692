package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette — named constants for all ANSI 256 colors used in the CLI.
// These are the single source of truth; never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: page routes, file paths, site URLs.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "rendered" page status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "copied" asset status.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for the "failed" status (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark (✔).
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles — map domain concepts to visual presentation.
var (
	// StyleNoun styles identifiable nouns (routes, paths, URLs).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs (building, watching, rendering).
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (scope prefixes, separators, timestamps).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Page output status constants.
const (
	StatusRendered = "rendered"
	StatusCopied   = "copied"
	StatusFailed   = "failed"
)

// StatusStyle returns the lipgloss style for a given output status string.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusRendered:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusCopied:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minRouteColumnWidth is the minimum width for the route column before the
// status suffix, so status words align consistently.
const minRouteColumnWidth = 40

// FormatPageLine renders an output route with a right-aligned, color-coded
// status suffix.
//
// Format: p:<route>  <status>
func FormatPageLine(route, status string) string {
	padding := minRouteColumnWidth - len(route)
	if padding < 2 {
		padding = 2
	}

	prefix := StyleDim.Render("p:")
	styledRoute := StyleNoun.Render(route)
	styledStatus := StatusStyle(status).Render(status)

	return prefix + styledRoute + strings.Repeat(" ", padding) + styledStatus
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatSummary renders the one-line build summary.
func FormatSummary(pages, assets int, elapsed string) string {
	return StyleSummary.Render(fmt.Sprintf("%d pages, %d assets in %s", pages, assets, elapsed))
}
