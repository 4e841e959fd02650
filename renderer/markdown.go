package renderer

import (
	"io"
	"strings"

	md "github.com/nao1215/markdown"
)

// Markdown writes t as a GitHub flavoured markdown table. Amounts and
// balances are right aligned.
func Markdown(w io.Writer, t Table, o Options) error {
	doc := md.NewMarkdown(w)
	doc.Table(tableSet(t, o))
	return doc.Build()
}

// tableSet converts t into the cells of a markdown table.
func tableSet(t Table, o Options) md.TableSet {
	columns := t.Columns()
	set := md.TableSet{
		Header:    make([]string, len(columns)),
		Alignment: make([]md.TableAlignment, len(columns)),
	}
	for i, c := range columns {
		set.Header[i] = escapeCell(c)
		if isNumeric(c) {
			set.Alignment[i] = md.AlignRight
		}
	}
	for row := range t.Rows() {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = escapeCell(FormatValue(v, o))
		}
		set.Rows = append(set.Rows, cells)
	}
	return set
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
