// Package styles provides shared lipgloss styles for git-side output.
//
// Styled strings are written through a colorprofile writer (see the output
// package), so colors degrade or disappear when stdout is not a terminal.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors used throughout the UI
var (
	Primary color.Color = lipgloss.Color("62")  // cyan/teal
	Accent  color.Color = lipgloss.Color("212") // pink/magenta
	Success color.Color = lipgloss.Color("82")  // green
	Error   color.Color = lipgloss.Color("196") // red
	Warning color.Color = lipgloss.Color("214") // orange
	Muted   color.Color = lipgloss.Color("240") // dark gray
	Info    color.Color = lipgloss.Color("244") // gray
)

// Common styles
var (
	Bold = lipgloss.NewStyle().Bold(true)

	// PrimaryStyle is used for section titles and paths
	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)

	// AccentStyle highlights identifiers such as the project id
	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)

	// InfoStyle is used for hints
	InfoStyle = lipgloss.NewStyle().
			Foreground(Info).
			Italic(true)

	// TitleStyle renders section headings in status and info
	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)

// Done renders a success prefix like "Done." followed by msg.
func Done(msg string) string {
	return SuccessStyle.Bold(true).Render("Done.") + " " + msg
}
