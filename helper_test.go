package fintrack

import (
	"fmt"
	"testing"
	"time"

	"github.com/etnz/fintrack/date"
	"github.com/shopspring/decimal"
)

// pin fixes the clock, the uid generator and the settings for the duration
// of the test: dates are read day first in UTC, with a decimal comma.
func pin(t *testing.T, at time.Time) {
	t.Helper()
	prevNow, prevUID, prevSettings := now, newUID, CurrentSettings()
	n := 0
	now = func() time.Time { return at }
	newUID = func() string {
		n++
		return fmt.Sprintf("uid-%d", n)
	}
	Configure(Settings{DecimalPoint: ",", DateOrder: date.DMY, Location: time.UTC})
	t.Cleanup(func() {
		now, newUID = prevNow, prevUID
		Configure(prevSettings)
	})
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// D is a helper for tests to create decimals from constants.
func D(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func descriptions(records []Record) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.Description)
	}
	return out
}
