package fintrack

import (
	"fmt"
	"time"
)

// Bounds selects records out of a sheet.
//
// A Count less or equal to zero means no limit, a zero Start or Until means
// that side is open.
type Bounds struct {
	Count int
	Start time.Time
	Until time.Time
}

// ParseBounds builds Bounds from command line values, empty strings leave the
// corresponding side open.
func ParseBounds(count int, start, until string) (Bounds, error) {
	b := Bounds{Count: count}
	if start != "" {
		t, err := ParseDatetime(start)
		if err != nil {
			return Bounds{}, fmt.Errorf("start: %w", err)
		}
		b.Start = t
	}
	if until != "" {
		t, err := ParseDatetime(until)
		if err != nil {
			return Bounds{}, fmt.Errorf("until: %w", err)
		}
		b.Until = t
	}
	return b, nil
}

// Contains reports whether t is within [Start, Until], both inclusive.
func (b Bounds) Contains(t time.Time) bool {
	if !b.Start.IsZero() && t.Before(b.Start) {
		return false
	}
	if !b.Until.IsZero() && t.After(b.Until) {
		return false
	}
	return true
}

// IsZero reports whether b selects everything.
func (b Bounds) IsZero() bool {
	return b.Count <= 0 && b.Start.IsZero() && b.Until.IsZero()
}

// filter returns the records within b, in order, stopping after Count.
func (b Bounds) filter(records []Record) []Record {
	var out []Record
	for _, r := range records {
		if b.Count > 0 && len(out) >= b.Count {
			break
		}
		if b.Contains(r.Timestamp) {
			out = append(out, r)
		}
	}
	return out
}
