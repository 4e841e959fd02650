package fintrack

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseAmount converts v into an exact decimal.
//
// Strings are read with the configured decimal point: every character that is
// neither a digit, a minus sign nor the decimal point is dropped, so that
// "1.234,56 €" reads 1234.56 with the default settings.
func ParseAmount(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero, fmt.Errorf("%w: nil amount", ErrValue)
		}
		return *x, nil
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int32:
		return decimal.NewFromInt32(x), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case float32:
		return decimal.NewFromFloat32(x), nil
	case float64:
		return decimal.NewFromFloat(x), nil
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: amount %q: %w", ErrValue, x, err)
		}
		return d, nil
	case string:
		return parseAmountString(x, CurrentSettings().DecimalPoint)
	default:
		return decimal.Zero, fmt.Errorf("%w: cannot read an amount from %T", ErrType, v)
	}
}

func parseAmountString(s, point string) (decimal.Decimal, error) {
	var b strings.Builder
	for i := 0; i < len(s); {
		switch {
		case s[i] >= '0' && s[i] <= '9', s[i] == '-':
			b.WriteByte(s[i])
			i++
		case point != "" && strings.HasPrefix(s[i:], point):
			b.WriteByte('.')
			i += len(point)
		default:
			i++
		}
	}
	residue := b.String()
	if residue == "" {
		return decimal.Zero, fmt.Errorf("%w: no amount in %q", ErrValue, s)
	}
	d, err := decimal.NewFromString(residue)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q", ErrValue, s)
	}
	return d, nil
}

// ParseDatetime converts v into an instant. Strings are read by the date
// parser with the configured order and location.
func ParseDatetime(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		t, err := CurrentSettings().Parser().Parse(x)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %w", ErrValue, err)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("%w: cannot read a date from %T", ErrType, v)
	}
}
