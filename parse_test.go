package fintrack

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/etnz/fintrack/date"
	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	pin(t, day(2025, 6, 10))

	testCases := []struct {
		in   any
		want string
	}{
		{"-125", "-125"},
		{"1.234,56 €", "1234.56"},
		{"-0,5", "-0.5"},
		{" 42 ", "42"},
		{125, "125"},
		{int64(-3), "-3"},
		{2.5, "2.5"},
		{json.Number("10.25"), "10.25"},
		{D("3.14"), "3.14"},
	}
	for _, tc := range testCases {
		got, err := ParseAmount(tc.in)
		if err != nil {
			t.Errorf("ParseAmount(%#v) unexpected error: %v", tc.in, err)
			continue
		}
		if !got.Equal(D(tc.want)) {
			t.Errorf("ParseAmount(%#v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseAmountDecimalDot(t *testing.T) {
	pin(t, day(2025, 6, 10))
	Configure(Settings{DecimalPoint: ".", DateOrder: date.MDY, Location: time.UTC})

	got, err := ParseAmount("$1,234.56")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := decimal.RequireFromString("1234.56"); !got.Equal(want) {
		t.Errorf("ParseAmount() = %v, want %v", got, want)
	}
}

func TestParseAmountErrors(t *testing.T) {
	pin(t, day(2025, 6, 10))

	testCases := []struct {
		in   any
		want error
	}{
		{"", ErrValue},
		{"abc", ErrValue},
		{"1-2", ErrValue},
		{json.Number("x"), ErrValue},
		{struct{}{}, ErrType},
		{nil, ErrType},
	}
	for _, tc := range testCases {
		if _, err := ParseAmount(tc.in); !errors.Is(err, tc.want) {
			t.Errorf("ParseAmount(%#v) error = %v, want %v", tc.in, err, tc.want)
		}
	}
}

func TestParseDatetime(t *testing.T) {
	pin(t, day(2025, 6, 10))

	testCases := []struct {
		in   any
		want time.Time
	}{
		{"7/6", day(2025, 6, 7)},
		{"8/6 12:00", time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC)},
		{"2019-07-06", day(2019, 7, 6)},
		{"tomorrow", day(2025, 6, 11)},
		{day(2020, 1, 1), day(2020, 1, 1)},
	}
	for _, tc := range testCases {
		got, err := ParseDatetime(tc.in)
		if err != nil {
			t.Errorf("ParseDatetime(%#v) unexpected error: %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseDatetime(%#v) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := ParseDatetime("31/2"); !errors.Is(err, ErrValue) {
		t.Errorf("ParseDatetime(31/2) error = %v, want %v", err, ErrValue)
	}
	if _, err := ParseDatetime(42); !errors.Is(err, ErrType) {
		t.Errorf("ParseDatetime(42) error = %v, want %v", err, ErrType)
	}
}

func TestSettingsFromEnv(t *testing.T) {
	env := map[string]string{
		EnvDecimalPoint: ".",
		EnvDateOrder:    "mdy",
		EnvTimezone:     "UTC",
	}
	s, err := SettingsFromEnv(func(k string) string { return env[k] })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.DecimalPoint != "." || s.DateOrder != date.MDY || s.Location != time.UTC {
		t.Errorf("SettingsFromEnv() = %+v", s)
	}

	s, err = SettingsFromEnv(func(string) string { return "" })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.DecimalPoint != "," || s.DateOrder != date.DMY {
		t.Errorf("SettingsFromEnv() defaults = %+v", s)
	}

	env[EnvDateOrder] = "DYM"
	if _, err := SettingsFromEnv(func(k string) string { return env[k] }); err == nil {
		t.Error("SettingsFromEnv() want an error for an unknown date order")
	}
}

func TestParseBounds(t *testing.T) {
	pin(t, day(2025, 6, 10))

	b, err := ParseBounds(3, "7/6", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Count != 3 || !b.Start.Equal(day(2025, 6, 7)) || !b.Until.IsZero() {
		t.Errorf("ParseBounds() = %+v", b)
	}
	if _, err := ParseBounds(0, "", "not a date"); !errors.Is(err, ErrValue) {
		t.Errorf("ParseBounds() error = %v, want %v", err, ErrValue)
	}
	if !(Bounds{}).IsZero() {
		t.Error("Bounds{}.IsZero() = false")
	}
}
