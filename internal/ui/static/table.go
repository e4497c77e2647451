// Package static provides non-interactive terminal output components.
//
// This package contains components for rendering formatted output
// that does not require user interaction, such as tables and
// key/value listings.
package static

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/Solexma/git-side/internal/ui/styles"
)

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
// Returns "" when there are no rows.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Bold.PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	return t.String() + "\n"
}

// RenderFields renders label/value pairs as an aligned two column list,
// used by "info". Labels are styled as titles.
func RenderFields(fields [][2]string) string {
	if len(fields) == 0 {
		return ""
	}

	width := 0
	for _, f := range fields {
		width = max(width, lipgloss.Width(f[0]))
	}

	label := styles.TitleStyle.Width(width + 2)
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(label.Render(f[0]))
		b.WriteString(f[1])
		b.WriteString("\n")
	}
	return b.String()
}

// RenderList renders items one per line with a leading marker.
func RenderList(marker string, items []string) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString("  ")
		b.WriteString(marker)
		b.WriteString(" ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	return b.String()
}
