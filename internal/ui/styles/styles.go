// Package styles provides shared lipgloss styles for UI components.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Colors used throughout the UI
var (
	Primary color.Color = lipgloss.Color("62")  // cyan/teal
	Accent  color.Color = lipgloss.Color("212") // pink
	Success color.Color = lipgloss.Color("82")  // green
	Error   color.Color = lipgloss.Color("196") // red
	Warning color.Color = lipgloss.Color("214") // orange
	Muted   color.Color = lipgloss.Color("240") // gray
)

var (
	Bold         = lipgloss.NewStyle().Bold(true)
	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)
	AccentStyle  = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
)

// Status renders a repository status word with its color.
// Unknown statuses are returned unstyled.
func Status(status string) string {
	switch status {
	case "applied":
		return SuccessStyle.Render("✓ " + status)
	case "planned":
		return PrimaryStyle.Render("→ " + status)
	case "skipped":
		return WarningStyle.Render("- " + status)
	case "failed":
		return ErrorStyle.Render("✕ " + status)
	case "unchanged":
		return MutedStyle.Render("= " + status)
	default:
		return status
	}
}

// Link wraps text in an OSC 8 hyperlink to url. Terminals without hyperlink
// support show the text only.
func Link(url, text string) string {
	if url == "" {
		return text
	}
	return ansi.SetHyperlink(url) + text + ansi.ResetHyperlink()
}
