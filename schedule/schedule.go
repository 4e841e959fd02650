// Package schedule parses recurrence expressions and enumerates the instants
// they describe.
//
// A schedule is either recurring, written in plain English ("every other week
// on friday", "monthly on the last day") or as an RFC 5545 rule
// ("FREQ=WEEKLY;BYDAY=FR"), or a single fixed instant ("7/6", "2025-06-07").
package schedule

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/etnz/fintrack/date"
	"github.com/teambition/rrule-go"
)

// ErrInvalid is returned for text that is neither a recurrence nor a date.
var ErrInvalid = errors.New("invalid schedule")

// Schedule is a parsed recurrence expression or a fixed instant.
type Schedule struct {
	text  string
	rule  *rrule.ROption // nil for a fixed instant.
	fixed time.Time
}

// Parse parses text as a recurrence, and falls back to a single instant using
// p when it is not one.
func Parse(text string, p date.Parser) (Schedule, error) {
	s := Schedule{text: strings.TrimSpace(text)}
	if s.text == "" {
		return Schedule{}, fmt.Errorf("%w: empty", ErrInvalid)
	}

	upper := strings.ToUpper(s.text)
	if strings.HasPrefix(upper, "RRULE:") || strings.HasPrefix(upper, "FREQ=") || strings.HasPrefix(upper, "DTSTART") {
		opt, err := rrule.StrToROptionInLocation(s.text, location(p))
		if err != nil {
			return Schedule{}, fmt.Errorf("%w %q: %w", ErrInvalid, text, err)
		}
		s.rule = opt
	} else {
		opt, ok, err := parseRecurrence(strings.ToLower(s.text), p)
		if err != nil {
			return Schedule{}, fmt.Errorf("%w %q: %w", ErrInvalid, text, err)
		}
		if ok {
			s.rule = opt
		}
	}

	if s.rule != nil {
		// Check the rule can actually be built, the anchor is irrelevant.
		check := *s.rule
		if check.Dtstart.IsZero() {
			check.Dtstart = time.Now()
		}
		if _, err := rrule.NewRRule(check); err != nil {
			return Schedule{}, fmt.Errorf("%w %q: %w", ErrInvalid, text, err)
		}
		return s, nil
	}

	on, err := p.Parse(s.text)
	if err != nil {
		return Schedule{}, fmt.Errorf("%w %q: not a recurrence nor a date: %w", ErrInvalid, text, err)
	}
	s.fixed = on
	return s, nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string, p date.Parser) Schedule {
	s, err := Parse(text, p)
	if err != nil {
		panic(err.Error())
	}
	return s
}

func location(p date.Parser) *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}

// String returns the text the schedule was parsed from.
func (s Schedule) String() string { return s.text }

// IsZero reports whether s is the zero Schedule.
func (s Schedule) IsZero() bool { return s.text == "" }

// IsRecurring reports whether s repeats, as opposed to a fixed instant.
func (s Schedule) IsRecurring() bool { return s.rule != nil }

// Bounded reports whether s has a finite number of instants: a fixed instant,
// or a rule with a count or an until date.
func (s Schedule) Bounded() bool {
	return s.rule == nil || s.rule.Count > 0 || !s.rule.Until.IsZero()
}

// Fixed returns the instant of a non recurring schedule.
func (s Schedule) Fixed() (time.Time, bool) { return s.fixed, s.rule == nil && !s.IsZero() }

// Rule returns the RFC 5545 form of a recurring schedule, or "".
func (s Schedule) Rule() string {
	if s.rule == nil {
		return ""
	}
	return s.rule.RRuleString()
}

// Occurrences enumerates, in ascending order, the instants of s between start
// and until, stopping after count instants when count is positive. A zero until
// leaves the sequence unbounded, it is then up to the caller to stop.
//
// Recurring schedules yield instants strictly after start and strictly before
// until. Rules without an explicit start are anchored at start, and their
// "for n times" clause counts the instants after it.
//
// A fixed instant is yielded when it is within [start, until], both inclusive.
func (s Schedule) Occurrences(start, until time.Time, count int) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if s.rule == nil {
			if s.IsZero() || s.fixed.Before(start) || (!until.IsZero() && s.fixed.After(until)) {
				return
			}
			yield(s.fixed)
			return
		}

		opt := *s.rule
		limit := count
		if opt.Dtstart.IsZero() {
			// The anchor is dropped below, so the rule's own count applies
			// to the instants after start.
			opt.Dtstart = start
			if opt.Count > 0 && (limit <= 0 || opt.Count < limit) {
				limit = opt.Count
			}
			opt.Count = 0
		}
		r, err := rrule.NewRRule(opt)
		if err != nil {
			// Parse has already checked the rule.
			return
		}
		next := r.Iterator()
		for n := 0; limit <= 0 || n < limit; {
			on, ok := next()
			if !ok {
				return
			}
			if !on.After(start) {
				continue
			}
			if !until.IsZero() && !on.Before(until) {
				return
			}
			if !yield(on) {
				return
			}
			n++
		}
	}
}

// Next returns the first instant strictly after t for recurring schedules, or
// the fixed instant, and false when there is none.
func (s Schedule) Next(t time.Time) (time.Time, bool) {
	if s.rule == nil {
		return s.Fixed()
	}
	for on := range s.Occurrences(t, time.Time{}, 1) {
		return on, true
	}
	return time.Time{}, false
}
