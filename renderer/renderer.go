// Package renderer turns tables of records into terminal grids, markdown
// tables and short markdown reports.
package renderer

import (
	"iter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Table is the tabular data to render.
type Table interface {
	Columns() []string
	Rows() iter.Seq[[]any]
}

// Rule colours a cell when its value matches.
type Rule struct {
	Name  string
	Match func(decimal.Decimal) bool
	Color lipgloss.Color
}

var (
	// PositiveGreen colours positive amounts in green.
	PositiveGreen = Rule{Name: "positive_green", Match: decimal.Decimal.IsPositive, Color: lipgloss.Color("2")}
	// NegativeRed colours negative amounts in red.
	NegativeRed = Rule{Name: "negative_red", Match: decimal.Decimal.IsNegative, Color: lipgloss.Color("1")}
)

// DefaultRules colour amounts by sign and negative balances.
func DefaultRules() map[string][]Rule {
	return map[string][]Rule{
		"amount":  {PositiveGreen, NegativeRed},
		"balance": {NegativeRed},
	}
}

// Options holds rendering preferences.
type Options struct {
	Rules    map[string][]Rule // Colour rules per column name.
	Currency string            // ISO 4217 code used to format decimals, plain decimals if empty.
	Now      time.Time         // Reference for relative days, time.Now() if zero.
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// color returns the colour of the first rule of column matching v.
func (o Options) color(column string, v any) (lipgloss.Color, bool) {
	d, ok := v.(decimal.Decimal)
	if !ok {
		return "", false
	}
	for _, rule := range o.Rules[column] {
		if rule.Match(d) {
			return rule.Color, true
		}
	}
	return "", false
}

// isNumeric reports whether column values are right aligned.
func isNumeric(column string) bool {
	return column == "amount" || column == "balance"
}
