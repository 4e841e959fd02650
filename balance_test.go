package fintrack

import (
	"bytes"
	"errors"
	"iter"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestBalanced(t *testing.T) {
	pin(t, day(2025, 6, 10))

	sheet := NewRecords()
	sheet.Add(125, "income", "6/6")
	sheet.Add(-125, "rent", "7/6")
	sheet.Add(-125, "groceries", "8/6")

	balanced, err := NewBalanced(sheet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantColumns := []string{"timestamp", "amount", "balance", "description", "uid"}
	if diff := cmp.Diff(wantColumns, balanced.Columns()); diff != "" {
		t.Errorf("Columns() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(recordColumns, sheet.Columns()); diff != "" {
		t.Errorf("the wrapped columns changed (-want +got):\n%s", diff)
	}

	var balances []decimal.Decimal
	for row := range balanced.Rows() {
		balances = append(balances, row[2].(decimal.Decimal))
	}
	want := []decimal.Decimal{D("125"), D("0"), D("-125")}
	if diff := cmp.Diff(want, balances); diff != "" {
		t.Errorf("balances mismatch (-want +got):\n%s", diff)
	}

	// Rows are computed again on each iteration, from zero.
	if n := len(collectRows(balanced)); n != 3 {
		t.Errorf("Rows() yields %d rows, want 3", n)
	}
	for row := range balanced.Rows() {
		if got := row[2].(decimal.Decimal); !got.Equal(D("125")) {
			t.Errorf("first balance = %v, want 125", got)
		}
		break
	}
}

func TestBalancedDelegates(t *testing.T) {
	pin(t, day(2025, 6, 10))
	sheet := fiveRecords(t)
	balanced, err := NewBalanced(sheet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := balanced.Insert(10, "via balanced", "11/6"); err != nil {
		t.Fatalf("Insert() unexpected error: %v", err)
	}
	if sheet.Len() != 6 || balanced.Len() != 6 {
		t.Errorf("Len() = %d and %d, want 6", sheet.Len(), balanced.Len())
	}
	if got := balanced.Take(Bounds{Count: 2}); len(got) != 2 {
		t.Errorf("Take() = %v", got)
	}

	extract, err := NewBalanced(NewExtract(sheet, Bounds{Count: 2}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := extract.Insert(1, "x"); !errors.Is(err, ErrImmutable) {
		t.Errorf("Insert() error = %v, want %v", err, ErrImmutable)
	}
}

// noAmount is a collection without an amount column.
type noAmount struct{}

func (noAmount) Columns() []string            { return []string{"name"} }
func (noAmount) Rows() iter.Seq[[]any]        { return func(func([]any) bool) {} }
func (noAmount) Len() int                     { return 0 }
func (noAmount) Take(Bounds) []Record         { return nil }
func (noAmount) Insert(...any) (Entry, error) { return nil, nil }

func TestBalancedWithoutAmount(t *testing.T) {
	if _, err := NewBalanced(noAmount{}); !errors.Is(err, ErrValue) {
		t.Errorf("NewBalanced() error = %v, want %v", err, ErrValue)
	}
}

// rows is a collection of literal rows, amounts included as they come.
type rows [][]any

func (rows) Columns() []string { return []string{"amount", "description"} }
func (r rows) Rows() iter.Seq[[]any] {
	return func(yield func([]any) bool) {
		for _, row := range r {
			if !yield(row) {
				return
			}
		}
	}
}
func (r rows) Len() int                   { return len(r) }
func (rows) Take(Bounds) []Record         { return nil }
func (rows) Insert(...any) (Entry, error) { return nil, ErrImmutable }

func TestBalancedUnreadableAmount(t *testing.T) {
	var logs bytes.Buffer
	prev := log.Default()
	log.SetDefault(log.New(&logs))
	t.Cleanup(func() { log.SetDefault(prev) })

	testCases := []struct {
		name string
		rows rows
		want []decimal.Decimal
		warn bool
	}{
		{
			name: "readable",
			rows: rows{{D("10"), "a"}, {-3, "b"}},
			want: []decimal.Decimal{D("10"), D("7")},
		},
		{
			name: "unreadable in the middle",
			rows: rows{{D("10"), "a"}, {"ten", "b"}, {D("-3"), "c"}},
			want: []decimal.Decimal{D("10"), D("10"), D("7")},
			warn: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logs.Reset()
			balanced, err := NewBalanced(tc.rows)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var got []decimal.Decimal
			for row := range balanced.Rows() {
				got = append(got, row[1].(decimal.Decimal))
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("balances mismatch (-want +got):\n%s", diff)
			}
			if warned := strings.Contains(logs.String(), "amount left out of the balance"); warned != tc.warn {
				t.Errorf("warning logged = %v, want %v, logs:\n%s", warned, tc.warn, logs.String())
			}
		})
	}
}
