package renderer

import (
	"fmt"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/etnz/fintrack/date"
	"github.com/shopspring/decimal"
)

// FormatValue formats a cell value for display.
//
// Times read as relative days ("today", "Jun 07") followed by the time of day
// when it is not midnight. Decimals are formatted in o.Currency when it is set.
func FormatValue(v any, o Options) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		s := date.NaturalDay(x, o.now())
		if h, m, sec := x.Clock(); h != 0 || m != 0 || sec != 0 {
			s += " " + x.Format("15:04")
		}
		return s
	case decimal.Decimal:
		return FormatAmount(x, o.Currency)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// FormatAmount formats d in the given currency, like "-€125.50" for EUR. An
// empty or unknown currency gives the plain decimal.
func FormatAmount(d decimal.Decimal, currency string) string {
	if currency == "" {
		return d.String()
	}
	cur := money.GetCurrency(currency)
	if cur == nil {
		return d.String() + " " + currency
	}
	minor := d.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
