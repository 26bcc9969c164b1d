package styles

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const maxColumnWidth = 40

// NewTable builds a focused table with the shared DataShare look. Column
// widths grow to fit the widest cell in each column, up to maxColumnWidth.
func NewTable(columns []table.Column, rows []table.Row, height int) table.Model {
	for _, row := range rows {
		for i := range columns {
			if i < len(row) {
				width := min(lipgloss.Width(row[i]), maxColumnWidth)
				columns[i].Width = max(columns[i].Width, width)
			}
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(white).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(white).
		Background(accent)
	s.Cell = s.Cell.Foreground(white)
	t.SetStyles(s)

	return t
}
