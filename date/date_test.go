package date

import (
	"testing"
	"time"
)

// fixed is a Tuesday, used as "now" in every test.
var fixed = time.Date(2025, time.June, 10, 15, 4, 5, 0, time.UTC)

func parser(order Order) Parser {
	return Parser{Order: order, Location: time.UTC, Now: func() time.Time { return fixed }}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	testCases := []struct {
		order Order
		in    string
		want  time.Time
	}{
		{DMY, "now", fixed},
		{DMY, "today", day(2025, 6, 10)},
		{DMY, "0d", day(2025, 6, 10)},
		{DMY, "Tomorrow", day(2025, 6, 11)},
		{DMY, "yesterday", day(2025, 6, 9)},
		{DMY, "next month", day(2025, 7, 10)},
		{DMY, "last week", day(2025, 6, 3)},
		{DMY, "next quarter", day(2025, 9, 10)},
		{DMY, "+2w", day(2025, 6, 24)},
		{DMY, "-1d", day(2025, 6, 9)},
		{DMY, "+1y", day(2026, 6, 10)},
		{DMY, "2019-07-06", day(2019, 7, 6)},
		{DMY, "2019-7-6", day(2019, 7, 6)},
		{DMY, "2019-07-06T12:30", time.Date(2019, 7, 6, 12, 30, 0, 0, time.UTC)},
		{DMY, "2019-07-06 12:30:15", time.Date(2019, 7, 6, 12, 30, 15, 0, time.UTC)},
		{DMY, "7/6/19", day(2019, 6, 7)},
		{DMY, "7/6", day(2025, 6, 7)},
		{DMY, "7.6.2024", day(2024, 6, 7)},
		{DMY, "8/6 12:00", time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC)},
		{MDY, "7/6", day(2025, 7, 6)},
		{MDY, "7/6/19", day(2019, 7, 6)},
		{YMD, "2019/7/6", day(2019, 7, 6)},
		{YMD, "7/6", day(2025, 7, 6)},
		{DMY, "1/1/99", day(1999, 1, 1)},
	}
	for _, tc := range testCases {
		t.Run(tc.order.String()+" "+tc.in, func(t *testing.T) {
			got, err := parser(tc.order).Parse(tc.in)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tc.in, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseRFC3339KeepsOffset(t *testing.T) {
	got, err := parser(DMY).Parse("2025-06-07T10:00:00+02:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 6, 7, 8, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "   ", "31/2", "7/13", "7/6 25:00", "not a date at all"} {
		t.Run(in, func(t *testing.T) {
			if got, err := parser(DMY).Parse(in); err == nil {
				t.Errorf("Parse(%q) = %v, want an error", in, got)
			}
		})
	}
}

func TestParseOrder(t *testing.T) {
	testCases := []struct {
		in      string
		want    Order
		wantErr bool
	}{
		{"DMY", DMY, false},
		{"mdy", MDY, false},
		{" YMD ", YMD, false},
		{"", DMY, false},
		{"DYM", DMY, true},
	}
	for _, tc := range testCases {
		got, err := ParseOrder(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseOrder(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseOrder(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNaturalDay(t *testing.T) {
	testCases := []struct {
		in   time.Time
		want string
	}{
		{day(2025, 6, 10), "today"},
		{time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC), "today"},
		{day(2025, 6, 11), "tomorrow"},
		{day(2025, 6, 9), "yesterday"},
		{day(2025, 6, 13), "Jun 13"},
		{day(2024, 1, 9), "Jan 09"},
	}
	for _, tc := range testCases {
		if got := NaturalDay(tc.in, fixed); got != tc.want {
			t.Errorf("NaturalDay(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
