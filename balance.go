package fintrack

import (
	"fmt"
	"iter"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
)

// Balanced wraps a collection and adds a running balance column right after
// the amount column.
type Balanced struct {
	c      Collection
	amount int
}

// NewBalanced fails with ErrValue when c has no amount column.
func NewBalanced(c Collection) (*Balanced, error) {
	i := slices.Index(c.Columns(), "amount")
	if i < 0 {
		return nil, fmt.Errorf("%w: no amount column to balance", ErrValue)
	}
	return &Balanced{c: c, amount: i}, nil
}

func (b *Balanced) Columns() []string {
	return slices.Insert(slices.Clone(b.c.Columns()), b.amount+1, "balance")
}

// Rows returns the wrapped rows with the balance so far, starting from zero.
// Amounts that cannot be read are logged and leave the balance unchanged.
func (b *Balanced) Rows() iter.Seq[[]any] {
	return func(yield func([]any) bool) {
		balance := decimal.Zero
		for row := range b.c.Rows() {
			amount, err := ParseAmount(row[b.amount])
			if err != nil {
				log.Warn("amount left out of the balance", "amount", row[b.amount], "err", err)
			} else {
				balance = balance.Add(amount)
			}
			row = slices.Insert(slices.Clone(row), b.amount+1, any(balance))
			if !yield(row) {
				return
			}
		}
	}
}

func (b *Balanced) Len() int { return b.c.Len() }

func (b *Balanced) Take(bounds Bounds) []Record { return b.c.Take(bounds) }

func (b *Balanced) Insert(args ...any) (Entry, error) { return b.c.Insert(args...) }

// Unwrap returns the balanced collection.
func (b *Balanced) Unwrap() Collection { return b.c }
