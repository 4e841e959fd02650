package renderer

import (
	"bytes"
	"slices"
	"time"

	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// Summary totals the amounts of a table.
type Summary struct {
	Count    int
	Income   decimal.Decimal // Sum of positive amounts.
	Expenses decimal.Decimal // Sum of negative amounts.
	First    time.Time
	Last     time.Time
}

// Net is the balance at the end of the table.
func (s Summary) Net() decimal.Decimal { return s.Income.Add(s.Expenses) }

// Summarize totals the amount column of t, and spans its timestamp column.
func Summarize(t Table) Summary {
	columns := t.Columns()
	amount := slices.Index(columns, "amount")
	timestamp := slices.Index(columns, "timestamp")

	var s Summary
	for row := range t.Rows() {
		s.Count++
		if amount >= 0 {
			if d, ok := row[amount].(decimal.Decimal); ok {
				if d.IsPositive() {
					s.Income = s.Income.Add(d)
				} else {
					s.Expenses = s.Expenses.Add(d)
				}
			}
		}
		if timestamp >= 0 {
			if ts, ok := row[timestamp].(time.Time); ok {
				if s.First.IsZero() || ts.Before(s.First) {
					s.First = ts
				}
				if ts.After(s.Last) {
					s.Last = ts
				}
			}
		}
	}
	return s
}

// RenderSummary renders s as markdown.
func RenderSummary(s Summary, o Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2("Summary")
	doc.PlainText("")
	if s.Count == 0 {
		doc.PlainText("No records.\n")
		return doc.String()
	}
	doc.PlainTextf("%d records from %s to %s.", s.Count, FormatValue(s.First, o), FormatValue(s.Last, o))
	doc.PlainText("")
	doc.Table(md.TableSet{
		Header:    []string{"", "amount"},
		Alignment: []md.TableAlignment{md.AlignDefault, md.AlignRight},
		Rows: [][]string{
			{"income", FormatAmount(s.Income, o.Currency)},
			{"expenses", FormatAmount(s.Expenses, o.Currency)},
			{md.Bold("net"), md.Bold(FormatAmount(s.Net(), o.Currency))},
		},
	})
	return doc.String()
}
