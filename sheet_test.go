package fintrack

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fiveRecords returns a sheet with "test 1" to "test 5" from 6/6 to 10/6.
func fiveRecords(t *testing.T) *Sheet[Record] {
	t.Helper()
	sheet := NewRecords()
	for i, ts := range []string{"6/6", "7/6", "8/6", "9/6", "10/6"} {
		if _, err := sheet.Add(-125, "test "+string(rune('1'+i)), ts); err != nil {
			t.Fatalf("Add() unexpected error: %v", err)
		}
	}
	return sheet
}

func TestSheetTake(t *testing.T) {
	pin(t, day(2025, 6, 10))
	sheet := fiveRecords(t)

	testCases := []struct {
		name  string
		count int
		start string
		until string
		want  []string
	}{
		{"all", 0, "", "", []string{"test 1", "test 2", "test 3", "test 4", "test 5"}},
		{"count", 3, "", "", []string{"test 1", "test 2", "test 3"}},
		{"start", 0, "8/6", "", []string{"test 3", "test 4", "test 5"}},
		{"start and count", 2, "8/6", "", []string{"test 3", "test 4"}},
		{"until", 0, "", "8/6", []string{"test 1", "test 2", "test 3"}},
		{"start and until", 0, "7/6", "9/6", []string{"test 2", "test 3", "test 4"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := ParseBounds(tc.count, tc.start, tc.until)
			if err != nil {
				t.Fatalf("ParseBounds() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, descriptions(sheet.Take(b))); diff != "" {
				t.Errorf("Take() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSheetKeepsOrder(t *testing.T) {
	pin(t, day(2025, 6, 10))

	sheet := NewRecords()
	sheet.Add(-1, "late", "9/6")
	sheet.Add(-1, "first tie", "7/6")
	sheet.Add(-1, "early", "1/6")
	sheet.Add(-1, "second tie", "7/6")
	sheet.Add(-1, "third tie", "7/6")

	var got []string
	for r := range sheet.All() {
		got = append(got, r.Description)
	}
	want := []string{"early", "first tie", "second tie", "third tie", "late"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
	if sheet.Len() != 5 || sheet.At(0).Description != "early" {
		t.Errorf("Len() = %d, At(0) = %v", sheet.Len(), sheet.At(0))
	}
}

func TestSheetAdd(t *testing.T) {
	pin(t, day(2025, 6, 10))
	sheet := NewRecords()

	r := Record{Amount: D("1"), Description: "as is", Timestamp: day(2025, 6, 1), UID: "x"}
	got, err := sheet.Add(r)
	if err != nil || got.UID != "x" {
		t.Errorf("Add(Record) = %v, %v", got, err)
	}
	if _, err := sheet.Add(Fields{"amount": "2", "description": "fields"}); err != nil {
		t.Errorf("Add(Fields) unexpected error: %v", err)
	}
	if _, err := sheet.Add(map[string]any{"amount": 3, "description": "map"}); err != nil {
		t.Errorf("Add(map) unexpected error: %v", err)
	}

	plan, err := PlannedFromArgs(5, "savings", "daily")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testCases := []struct {
		name string
		args []any
		want error
	}{
		{"another kind", []any{plan}, ErrType},
		{"a lone string", []any{"blah"}, ErrValue},
		{"a lone number", []any{42}, ErrType},
		{"unrelated value", []any{struct{}{}}, ErrType},
		{"nothing", nil, ErrType},
		{"bad fields", []any{Fields{"amount": 1}}, ErrType},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := sheet.Add(tc.args...); !errors.Is(err, tc.want) {
				t.Errorf("Add(%v) error = %v, want %v", tc.args, err, tc.want)
			}
		})
	}
	if sheet.Len() != 3 {
		t.Errorf("Len() = %d, failed adds must not insert", sheet.Len())
	}

	e, err := sheet.Insert(-4, "erased")
	if err != nil {
		t.Fatalf("Insert() unexpected error: %v", err)
	}
	if _, ok := e.(Record); !ok {
		t.Errorf("Insert() = %T, want a Record", e)
	}
}

func TestSheetCombine(t *testing.T) {
	pin(t, day(2025, 6, 10))
	left := fiveRecords(t)
	right := NewRecords()
	right.Add(-1, "between", "8/6 12:00")

	combined := left.Combine(right.All())
	want := []string{"test 1", "test 2", "test 3", "between", "test 4", "test 5"}
	if diff := cmp.Diff(want, descriptions(combined.Take(Bounds{}))); diff != "" {
		t.Errorf("Combine() mismatch (-want +got):\n%s", diff)
	}
	if left.Len() != 5 {
		t.Errorf("Combine() changed the left sheet, Len() = %d", left.Len())
	}

	left.Update(right.All())
	if left.Len() != 6 {
		t.Errorf("Update() Len() = %d, want 6", left.Len())
	}
}

func TestSheetRows(t *testing.T) {
	pin(t, day(2025, 6, 10))
	sheet := NewRecords()
	sheet.Add(-125, "groceries", "7/6", "abc")

	rows := slices.Collect(sheet.Rows())
	if len(rows) != 1 {
		t.Fatalf("Rows() = %v", rows)
	}
	if diff := cmp.Diff([]any{day(2025, 6, 7), D("-125"), "groceries", "abc"}, rows[0]); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(recordColumns, sheet.Columns()); diff != "" {
		t.Errorf("Columns() mismatch (-want +got):\n%s", diff)
	}
}

func TestPlannedSheetTake(t *testing.T) {
	pin(t, day(2025, 1, 7))

	sheet := NewPlans()
	if _, err := sheet.Add(-125, "groceries", "every week on friday", "{plan.description} on {date}"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := sheet.Add(5, "savings", "every other day", "{plan.description} on {date}"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := ParseBounds(8, "7/1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []string
	for _, r := range sheet.Take(b) {
		got = append(got, r.UID)
	}
	want := []string{
		"savings on Jan 09",
		"groceries on Jan 10",
		"savings on Jan 11",
		"savings on Jan 13",
		"savings on Jan 15",
		"savings on Jan 17",
		"groceries on Jan 17",
		"savings on Jan 19",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Take() mismatch (-want +got):\n%s", diff)
	}
}

func TestSheetJSON(t *testing.T) {
	pin(t, day(2025, 6, 10))
	sheet := fiveRecords(t)

	data, err := json.Marshal(sheet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded := NewRecords()
	if err := json.Unmarshal(data, decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(slices.Collect(sheet.All()), slices.Collect(decoded.All())); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	empty, err := json.Marshal(NewPlans())
	if err != nil || string(empty) != "[]" {
		t.Errorf("Marshal(empty) = %s, %v", empty, err)
	}

	if err := json.Unmarshal([]byte(`[{"amount":"1"}]`), decoded); !errors.Is(err, ErrType) {
		t.Errorf("Unmarshal() error = %v, want %v", err, ErrType)
	}
}
