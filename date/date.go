// Package date parses the free-form dates and times typed on the command line
// or found in imported statements.
package date

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Day is the duration of a calendar day without daylight saving changes.
const Day = 24 * time.Hour

// Order tells how ambiguous numeric dates like 7/6 are read.
type Order int

const (
	DMY Order = iota // 7/6 is the 7th of June.
	MDY              // 7/6 is July the 6th.
	YMD              // 2025/7/6 is July the 6th, 7/6 is July the 6th.
)

func (o Order) String() string {
	switch o {
	case DMY:
		return "DMY"
	case MDY:
		return "MDY"
	case YMD:
		return "YMD"
	default:
		return "unknown"
	}
}

// ParseOrder parses a date order name, case insensitive.
func ParseOrder(s string) (Order, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DMY", "":
		return DMY, nil
	case "MDY":
		return MDY, nil
	case "YMD":
		return YMD, nil
	default:
		return DMY, fmt.Errorf("unknown date order %q want DMY, MDY or YMD", s)
	}
}

// Parser parses dates and times.
//
// Its zero value reads dates day first, in the local time zone, relative to the
// current time.
type Parser struct {
	Order    Order
	Location *time.Location   // Location of dates without an explicit offset, time.Local if nil.
	Now      func() time.Time // Clock for relative dates, time.Now if nil.
}

func (p Parser) location() *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}

func (p Parser) now() time.Time {
	if p.Now == nil {
		return time.Now().In(p.location())
	}
	return p.Now().In(p.location())
}

// today returns the current day at midnight.
func (p Parser) today() time.Time {
	y, m, d := p.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, p.location())
}

var (
	relativeDateRE = regexp.MustCompile(`^([+-])(\d+)([dwmqy])$`)
	nextLastRE     = regexp.MustCompile(`^(next|last) (day|week|month|quarter|year)$`)
	isoDateRE      = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})(?:[t ](\d{1,2}):(\d{2})(?::(\d{2}))?)?$`)
	numericDateRE  = regexp.MustCompile(`^(\d{1,4})[/.-](\d{1,2})(?:[/.-](\d{2,4}))?(?:\s+(\d{1,2}):(\d{2})(?::(\d{2}))?)?$`)
)

// Parse parses a date or a date and time.
//
// Supported forms are, in order of precedence: now, today, tomorrow,
// yesterday, "next|last day|week|month|quarter|year", relative offsets like
// +2w or -1m (0d is today), ISO dates with an optional time, RFC 3339, numeric
// dates like 7/6, 7/6/25 or 7.6.2025 with an optional HH:MM[:SS] read
// according to the Order, and finally anything araddon/dateparse understands.
func (p Parser) Parse(str string) (time.Time, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	lower := strings.ToLower(str)

	switch lower {
	case "now":
		return p.now(), nil
	case "today", "0d":
		return p.today(), nil
	case "tomorrow":
		return p.today().AddDate(0, 0, 1), nil
	case "yesterday":
		return p.today().AddDate(0, 0, -1), nil
	}

	if match := relativeDateRE.FindStringSubmatch(lower); match != nil {
		num, err := strconv.Atoi(match[2])
		if err != nil {
			// This should not happen given the regex
			return time.Time{}, fmt.Errorf("invalid number in relative date %q: %w", str, err)
		}
		if match[1] == "-" {
			num = -num
		}
		period, err := ParsePeriod(match[3])
		if err != nil {
			return time.Time{}, err
		}
		return period.Add(p.today(), num), nil
	}

	if match := nextLastRE.FindStringSubmatch(lower); match != nil {
		num := 1
		if match[1] == "last" {
			num = -1
		}
		period, err := ParsePeriod(match[2])
		if err != nil {
			return time.Time{}, err
		}
		return period.Add(p.today(), num), nil
	}

	if match := isoDateRE.FindStringSubmatch(lower); match != nil {
		return p.build(str, match[1], match[2], match[3], match[4:])
	}

	if t, err := time.Parse(time.RFC3339Nano, str); err == nil {
		return t, nil
	}

	if match := numericDateRE.FindStringSubmatch(lower); match != nil {
		a, b, c := match[1], match[2], match[3]
		var year, month, day string
		switch {
		case c == "" && p.Order == DMY:
			day, month = a, b
		case c == "":
			month, day = a, b
		case p.Order == DMY:
			day, month, year = a, b, c
		case p.Order == MDY:
			month, day, year = a, b, c
		default:
			year, month, day = a, b, c
		}
		return p.build(str, year, month, day, match[4:])
	}

	t, err := dateparse.ParseIn(str, p.location(), dateparse.PreferMonthFirst(p.Order == MDY))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", str, err)
	}
	return t, nil
}

// MustParse is like Parse but panics on error.
func (p Parser) MustParse(str string) time.Time {
	t, err := p.Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return t
}

// build assembles a time from its textual parts, clock holds hour, minute
// and second, any of which may be empty.
func (p Parser) build(str, year, month, day string, clock []string) (time.Time, error) {
	y := p.now().Year()
	if year != "" {
		y, _ = strconv.Atoi(year)
		if len(year) <= 2 {
			y = expandYear(y)
		}
	}
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)

	var hms [3]int
	for i, part := range clock {
		if i < len(hms) && part != "" {
			hms[i], _ = strconv.Atoi(part)
		}
	}
	if hms[0] > 23 || hms[1] > 59 || hms[2] > 59 {
		return time.Time{}, fmt.Errorf("invalid time of day in %q", str)
	}

	t := time.Date(y, time.Month(m), d, hms[0], hms[1], hms[2], 0, p.location())
	// time.Date normalizes the 31st of February into March, reject it instead.
	if t.Year() != y || t.Month() != time.Month(m) || t.Day() != d {
		return time.Time{}, fmt.Errorf("invalid date %q", str)
	}
	return t, nil
}

// expandYear maps a two digit year into the closest century: 00-69 is 20xx,
// 70-99 is 19xx.
func expandYear(y int) int {
	if y < 70 {
		return 2000 + y
	}
	return 1900 + y
}

// NaturalDay describes the day of t relative to now: "today", "tomorrow",
// "yesterday" or the month and day like "Jun 07".
func NaturalDay(t, now time.Time) string {
	y, m, d := t.Date()
	ny, nm, nd := now.In(t.Location()).Date()
	delta := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Sub(time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC))
	switch delta {
	case 0:
		return "today"
	case Day:
		return "tomorrow"
	case -Day:
		return "yesterday"
	default:
		return t.Format("Jan 02")
	}
}
