// Package static provides non-interactive terminal output components.
package static

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

// RenderTable creates a borderless table with aligned columns and bold
// headers. It returns "" when there are no rows.
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
			s := lipgloss.NewStyle()
			if col < len(headers)-1 {
				s = s.PaddingRight(2)
			}
			if row == table.HeaderRow {
				return s.Bold(true)
			}
			return s
		})

	return t.String() + "\n"
}

// RenderFields renders label/value pairs as an aligned two-column list
// without a header. Pairs with an empty value are omitted.
func RenderFields(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		if p[1] != "" {
			width = max(width, lipgloss.Width(p[0]))
		}
	}

	var b strings.Builder
	label := lipgloss.NewStyle().Bold(true).Width(width + 2)
	for _, p := range pairs {
		if p[1] == "" {
			continue
		}
		b.WriteString(label.Render(p[0]))
		b.WriteString(p[1])
		b.WriteByte('\n')
	}
	return b.String()
}
