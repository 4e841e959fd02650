package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/fintrack/date"
	"github.com/teambition/rrule-go"
)

var weekdays = map[string]rrule.Weekday{
	"monday": rrule.MO, "mon": rrule.MO,
	"tuesday": rrule.TU, "tue": rrule.TU, "tues": rrule.TU,
	"wednesday": rrule.WE, "wed": rrule.WE,
	"thursday": rrule.TH, "thu": rrule.TH, "thurs": rrule.TH,
	"friday": rrule.FR, "fri": rrule.FR,
	"saturday": rrule.SA, "sat": rrule.SA,
	"sunday": rrule.SU, "sun": rrule.SU,
}

var months = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// adverbs are the one word recurrences like "weekly".
var adverbs = map[string]struct {
	period   date.Period
	interval int
}{
	"daily":       {date.Daily, 1},
	"weekly":      {date.Weekly, 1},
	"fortnightly": {date.Weekly, 2},
	"biweekly":    {date.Weekly, 2},
	"monthly":     {date.Monthly, 1},
	"quarterly":   {date.Quarterly, 1},
	"yearly":      {date.Yearly, 1},
	"annually":    {date.Yearly, 1},
}

var (
	ordinalRE = regexp.MustCompile(`^(\d{1,2})(st|nd|rd|th)?$`)
	clockRE   = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?(am|pm)?$`)
	timesRE   = regexp.MustCompile(`^(\d+)\s+times?$`)
)

// clauses are the keywords that end the body of a recurrence.
var clauses = map[string]bool{"starting": true, "from": true, "until": true, "for": true}

// parseRecurrence parses a lower case English recurrence. It returns false
// when text does not look like a recurrence at all, and an error when it does
// but cannot be understood.
func parseRecurrence(text string, p date.Parser) (*rrule.ROption, bool, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, false, nil
	}
	if _, ok := adverbs[words[0]]; !ok && words[0] != "every" {
		return nil, false, nil
	}

	// Split the body from its trailing clauses.
	body := words
	var tail [][]string
	for i := 1; i < len(words); i++ {
		if clauses[words[i]] {
			if len(tail) == 0 {
				body = words[:i]
			}
			tail = append(tail, []string{words[i]})
			continue
		}
		if len(tail) > 0 {
			tail[len(tail)-1] = append(tail[len(tail)-1], words[i])
		}
	}

	opt, err := parseBody(body)
	if err != nil {
		return nil, true, err
	}
	for _, clause := range tail {
		if err := applyClause(opt, clause, p); err != nil {
			return nil, true, err
		}
	}
	return opt, true, nil
}

func parseBody(words []string) (*rrule.ROption, error) {
	opt := &rrule.ROption{Interval: 1}

	if a, ok := adverbs[words[0]]; ok {
		setPeriod(opt, a.period, a.interval)
		return opt, applyModifiers(opt, words[1:])
	}

	// words[0] is "every".
	rest := words[1:]
	if len(rest) == 0 {
		return nil, fmt.Errorf("missing period after %q", "every")
	}

	interval := 1
	switch n, err := strconv.Atoi(rest[0]); {
	case rest[0] == "other":
		interval, rest = 2, rest[1:]
	case err == nil && len(rest) > 1 && n > 0:
		interval, rest = n, rest[1:]
	}
	if len(rest) == 0 {
		return nil, fmt.Errorf("missing period after %q", strings.Join(words, " "))
	}

	unit := rest[0]
	switch {
	case unit == "weekday" || unit == "weekdays":
		setPeriod(opt, date.Weekly, interval)
		opt.Byweekday = []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR}
		rest = rest[1:]
	case unit == "weekend" || unit == "weekends":
		setPeriod(opt, date.Weekly, interval)
		opt.Byweekday = []rrule.Weekday{rrule.SA, rrule.SU}
		rest = rest[1:]
	case isWeekday(unit):
		setPeriod(opt, date.Weekly, interval)
		days, n := parseWeekdays(rest)
		opt.Byweekday, rest = days, rest[n:]
	case ordinalRE.MatchString(unit) && interval == 1:
		// every 15th [of the month]
		setPeriod(opt, date.Monthly, 1)
		day, _ := strconv.Atoi(ordinalRE.FindStringSubmatch(unit)[1])
		opt.Bymonthday = []int{day}
		rest = skip(rest[1:], "of", "the", "every", "month")
	case len(unit) > 1:
		period, err := date.ParsePeriod(unit)
		if err != nil {
			return nil, err
		}
		setPeriod(opt, period, interval)
		rest = rest[1:]
	default:
		return nil, fmt.Errorf("unknown period %q", unit)
	}
	return opt, applyModifiers(opt, rest)
}

func setPeriod(opt *rrule.ROption, period date.Period, interval int) {
	opt.Interval = interval
	switch period {
	case date.Daily:
		opt.Freq = rrule.DAILY
	case date.Weekly:
		opt.Freq = rrule.WEEKLY
	case date.Monthly:
		opt.Freq = rrule.MONTHLY
	case date.Quarterly:
		opt.Freq, opt.Interval = rrule.MONTHLY, 3*interval
	case date.Yearly:
		opt.Freq = rrule.YEARLY
	}
}

// applyModifiers handles "on ..." and "at ..." parts of the body.
func applyModifiers(opt *rrule.ROption, words []string) error {
	for len(words) > 0 {
		switch words[0] {
		case "on":
			n, err := applyOn(opt, words[1:])
			if err != nil {
				return err
			}
			words = words[1+n:]
		case "at":
			if len(words) < 2 {
				return fmt.Errorf("missing time after %q", "at")
			}
			if err := applyAt(opt, words[1]); err != nil {
				return err
			}
			words = words[2:]
		default:
			return fmt.Errorf("unexpected %q", strings.Join(words, " "))
		}
	}
	return nil
}

// applyOn parses what follows "on" and returns the number of words consumed.
func applyOn(opt *rrule.ROption, words []string) (int, error) {
	if len(words) == 0 {
		return 0, fmt.Errorf("missing day after %q", "on")
	}
	if isWeekday(words[0]) {
		days, n := parseWeekdays(words)
		opt.Byweekday = append(opt.Byweekday, days...)
		return n, nil
	}

	consumed := 0
	if words[0] == "the" || words[0] == "day" {
		consumed++
	}
	rest := words[consumed:]
	if len(rest) == 0 {
		return 0, fmt.Errorf("missing day after %q", "on")
	}

	// on the last day [of the month]
	if rest[0] == "last" {
		if len(rest) < 2 || rest[1] != "day" {
			return 0, fmt.Errorf("expected %q", "last day")
		}
		opt.Bymonthday = []int{-1}
		after := skip(rest[2:], "of", "the", "month")
		return len(words) - len(after), nil
	}

	// on june 7[th]
	if m, ok := months[rest[0]]; ok {
		if len(rest) < 2 || !ordinalRE.MatchString(rest[1]) {
			return 0, fmt.Errorf("missing day after %q", rest[0])
		}
		day, _ := strconv.Atoi(ordinalRE.FindStringSubmatch(rest[1])[1])
		opt.Bymonth, opt.Bymonthday = []int{int(m)}, []int{day}
		return consumed + 2, nil
	}

	// on the 7th [of june|of the month]
	match := ordinalRE.FindStringSubmatch(rest[0])
	if match == nil {
		return 0, fmt.Errorf("unknown day %q", rest[0])
	}
	day, _ := strconv.Atoi(match[1])
	if day < 1 || day > 31 {
		return 0, fmt.Errorf("invalid day of month %d", day)
	}
	opt.Bymonthday = []int{day}
	consumed++
	rest = rest[1:]
	if len(rest) >= 2 && rest[0] == "of" {
		if m, ok := months[rest[1]]; ok {
			opt.Bymonth = []int{int(m)}
			return consumed + 2, nil
		}
	}
	after := skip(rest, "of", "the", "month")
	return consumed + len(rest) - len(after), nil
}

func applyAt(opt *rrule.ROption, word string) error {
	match := clockRE.FindStringSubmatch(word)
	if match == nil {
		return fmt.Errorf("invalid time %q", word)
	}
	hour, _ := strconv.Atoi(match[1])
	minute := 0
	if match[2] != "" {
		minute, _ = strconv.Atoi(match[2])
	}
	switch match[3] {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	if hour > 23 || minute > 59 {
		return fmt.Errorf("invalid time %q", word)
	}
	opt.Byhour, opt.Byminute, opt.Bysecond = []int{hour}, []int{minute}, []int{0}
	return nil
}

func applyClause(opt *rrule.ROption, clause []string, p date.Parser) error {
	keyword, arg := clause[0], strings.Join(clause[1:], " ")
	if arg == "" {
		return fmt.Errorf("missing value after %q", keyword)
	}
	switch keyword {
	case "starting", "from":
		on, err := p.Parse(arg)
		if err != nil {
			return err
		}
		opt.Dtstart = on
	case "until":
		on, err := p.Parse(arg)
		if err != nil {
			return err
		}
		opt.Until = on
	case "for":
		match := timesRE.FindStringSubmatch(arg)
		if match == nil {
			return fmt.Errorf("expected %q got %q", "for <n> times", arg)
		}
		opt.Count, _ = strconv.Atoi(match[1])
	}
	return nil
}

func isWeekday(word string) bool {
	_, ok := weekdays[strings.TrimSuffix(strings.TrimSuffix(word, ","), "s")]
	if !ok {
		_, ok = weekdays[strings.TrimSuffix(word, ",")]
	}
	return ok
}

func weekday(word string) rrule.Weekday {
	word = strings.TrimSuffix(word, ",")
	if d, ok := weekdays[word]; ok {
		return d
	}
	return weekdays[strings.TrimSuffix(word, "s")]
}

// parseWeekdays reads "monday, wednesday and friday" and returns the days and
// the number of words consumed.
func parseWeekdays(words []string) ([]rrule.Weekday, int) {
	var days []rrule.Weekday
	n := 0
	for n < len(words) {
		switch {
		case isWeekday(words[n]):
			days = append(days, weekday(words[n]))
			n++
		case (words[n] == "and" || words[n] == ",") && n+1 < len(words) && isWeekday(words[n+1]):
			n++
		default:
			return days, n
		}
	}
	return days, n
}

// skip drops the leading words that belong to fillers.
func skip(words []string, fillers ...string) []string {
	for len(words) > 0 {
		found := false
		for _, f := range fillers {
			if words[0] == f {
				found = true
				break
			}
		}
		if !found {
			return words
		}
		words = words[1:]
	}
	return words
}
