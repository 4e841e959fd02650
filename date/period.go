package date

import (
	"fmt"
	"strings"
	"time"
)

// Period is a calendar unit used by relative dates and recurring schedules.
type Period int

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

// ParsePeriod parses a period from its adjective, its unit (singular or
// plural) or its one letter abbreviation.
func ParsePeriod(p string) (Period, error) {
	p = strings.ToLower(strings.TrimSpace(p))
	switch p {
	case "daily", "day", "days", "d":
		return Daily, nil
	case "weekly", "week", "weeks", "w":
		return Weekly, nil
	case "monthly", "month", "months", "m":
		return Monthly, nil
	case "quarterly", "quarter", "quarters", "q":
		return Quarterly, nil
	case "yearly", "annually", "year", "years", "y":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("unknown period %s", p)
	}
}

// Add returns t moved by n periods, keeping the time of day.
func (p Period) Add(t time.Time, n int) time.Time {
	switch p {
	case Daily:
		return t.AddDate(0, 0, n)
	case Weekly:
		return t.AddDate(0, 0, 7*n)
	case Monthly:
		return t.AddDate(0, n, 0)
	case Quarterly:
		return t.AddDate(0, 3*n, 0)
	case Yearly:
		return t.AddDate(n, 0, 0)
	default:
		panic("unknown period")
	}
}
