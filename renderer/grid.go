package renderer

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Grid renders t as a bordered grid with a separator between rows. Cells are
// coloured according to o.Rules.
func Grid(t Table, o Options) string {
	columns := t.Columns()
	var (
		cells [][]string
		raw   [][]any
	)
	for row := range t.Rows() {
		line := make([]string, len(row))
		for i, v := range row {
			line[i] = FormatValue(v, o)
		}
		cells = append(cells, line)
		raw = append(raw, row)
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		Headers(columns...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			s := cell
			if col < len(columns) && isNumeric(columns[col]) {
				s = s.Align(lipgloss.Right)
			}
			if row >= 0 && row < len(raw) && col < len(raw[row]) && col < len(columns) {
				if c, ok := o.color(columns[col], raw[row][col]); ok {
					s = s.Foreground(c)
				}
			}
			return s
		}).
		String()
}
