package fintrack

import (
	"fmt"
	"iter"
)

// Table is anything that can be rendered as rows under column names.
type Table interface {
	Columns() []string
	Rows() iter.Seq[[]any]
}

// View is a Table whose content can be taken as records.
type View interface {
	Table
	Len() int
	Take(b Bounds) []Record
}

// Collection is a View that accepts new entries.
type Collection interface {
	View
	Insert(args ...any) (Entry, error)
}

func recordRows(records []Record) iter.Seq[[]any] {
	return func(yield func([]any) bool) {
		for _, r := range records {
			if !yield(r.Row()) {
				return
			}
		}
	}
}

// Extract is a read-only view on the records of a source within bounds. It
// reads the source each time it is used.
type Extract struct {
	src    View
	bounds Bounds
}

// NewExtract returns a live view on src limited by b.
func NewExtract(src View, b Bounds) *Extract { return &Extract{src: src, bounds: b} }

// Bounds returns the extract bounds.
func (e *Extract) Bounds() Bounds { return e.bounds }

func (e *Extract) Columns() []string { return recordColumns }

func (e *Extract) Rows() iter.Seq[[]any] {
	return func(yield func([]any) bool) {
		for row := range recordRows(e.src.Take(e.bounds)) {
			if !yield(row) {
				return
			}
		}
	}
}

// All iterates over the records currently in the extract.
func (e *Extract) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, r := range e.src.Take(e.bounds) {
			if !yield(r) {
				return
			}
		}
	}
}

func (e *Extract) Len() int { return len(e.src.Take(e.bounds)) }

// Take applies b on top of the extract's own bounds.
func (e *Extract) Take(b Bounds) []Record { return b.filter(e.src.Take(e.bounds)) }

func (e *Extract) Insert(args ...any) (Entry, error) {
	return nil, fmt.Errorf("cannot insert into an extract: %w", ErrImmutable)
}

func (e *Extract) Update(iter.Seq[Record]) error {
	return fmt.Errorf("cannot update an extract: %w", ErrImmutable)
}

func (e *Extract) Combine(iter.Seq[Record]) (*Sheet[Record], error) {
	return nil, fmt.Errorf("cannot combine an extract: %w", ErrImmutable)
}

// Combined is a read-only merge of several views, ordered by timestamp. It
// reads its parts each time it is used.
type Combined struct {
	parts []View
}

// NewCombined returns a live merge of parts.
func NewCombined(parts ...View) *Combined { return &Combined{parts: parts} }

func (c *Combined) merge() *Sheet[Record] {
	merged := NewRecords()
	for _, part := range c.parts {
		for _, r := range part.Take(Bounds{}) {
			merged.insert(r)
		}
	}
	return merged
}

func (c *Combined) Columns() []string { return recordColumns }

func (c *Combined) Rows() iter.Seq[[]any] {
	return func(yield func([]any) bool) {
		for row := range c.merge().Rows() {
			if !yield(row) {
				return
			}
		}
	}
}

// All iterates over the merged records.
func (c *Combined) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for r := range c.merge().All() {
			if !yield(r) {
				return
			}
		}
	}
}

// Len is the sum of the parts lengths.
func (c *Combined) Len() int {
	n := 0
	for _, part := range c.parts {
		n += len(part.Take(Bounds{}))
	}
	return n
}

func (c *Combined) Take(b Bounds) []Record { return b.filter(c.merge().entries) }

func (c *Combined) Insert(args ...any) (Entry, error) {
	return nil, fmt.Errorf("cannot insert into a combined sheet: %w", ErrImmutable)
}

func (c *Combined) Update(iter.Seq[Record]) error {
	return fmt.Errorf("cannot update a combined sheet: %w", ErrImmutable)
}

func (c *Combined) Combine(iter.Seq[Record]) (*Sheet[Record], error) {
	return nil, fmt.Errorf("cannot combine a combined sheet: %w", ErrImmutable)
}
