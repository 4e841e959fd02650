package fintrack

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"sort"
	"time"
)

// Entry is what a Sheet holds: records or plans.
type Entry interface {
	// Key is the instant entries are sorted by.
	Key() time.Time
	Columns() []string
	Row() []any
	// Take returns the records the entry stands for within the bounds.
	Take(b Bounds) []Record
	json.Marshaler
}

// Kind describes how to build and name one type of Entry.
type Kind[T Entry] struct {
	Name       string
	Columns    []string
	FromArgs   func(args ...any) (T, error)
	FromFields func(Fields) (T, error)
	Decode     func(data []byte) (T, error)
}

// RecordKind holds dated transactions.
var RecordKind = Kind[Record]{
	Name:       "records",
	Columns:    recordColumns,
	FromArgs:   RecordFromArgs,
	FromFields: RecordFromFields,
	Decode: func(data []byte) (r Record, err error) {
		err = json.Unmarshal(data, &r)
		return r, err
	},
}

// PlanKind holds planned records.
var PlanKind = Kind[PlannedRecord]{
	Name:       "plans",
	Columns:    planColumns,
	FromArgs:   PlannedFromArgs,
	FromFields: PlannedFromFields,
	Decode: func(data []byte) (p PlannedRecord, err error) {
		err = json.Unmarshal(data, &p)
		return p, err
	},
}

// Sheet keeps entries of a single kind sorted by their key. Entries with the
// same key stay in insertion order.
type Sheet[T Entry] struct {
	kind    Kind[T]
	entries []T
	keys    []time.Time // keys[i] is entries[i].Key() at insertion time.
}

// NewSheet returns an empty sheet of the given kind.
func NewSheet[T Entry](kind Kind[T]) *Sheet[T] {
	return &Sheet[T]{kind: kind}
}

// NewRecords returns an empty sheet of records.
func NewRecords() *Sheet[Record] { return NewSheet(RecordKind) }

// NewPlans returns an empty sheet of plans.
func NewPlans() *Sheet[PlannedRecord] { return NewSheet(PlanKind) }

func (s *Sheet[T]) Kind() Kind[T] { return s.kind }

// KindName is the persisted name of the sheet kind.
func (s *Sheet[T]) KindName() string { return s.kind.Name }

// Add inserts an entry and returns it.
//
// args is either a single entry of the sheet kind, a single Fields, or the
// positional arguments of the kind constructor. Entries of another kind, and
// values that are neither, fail with ErrType. A lone string fails with
// ErrValue.
func (s *Sheet[T]) Add(args ...any) (T, error) {
	var zero T
	e, err := s.build(args)
	if err != nil {
		return zero, err
	}
	s.insert(e)
	return e, nil
}

func (s *Sheet[T]) build(args []any) (T, error) {
	var zero T
	if len(args) != 1 {
		return s.kind.FromArgs(args...)
	}
	switch v := args[0].(type) {
	case T:
		return v, nil
	case Fields:
		return s.kind.FromFields(v)
	case map[string]any:
		return s.kind.FromFields(v)
	case Entry:
		return zero, fmt.Errorf("%w: %s sheets cannot hold %T", ErrType, s.kind.Name, v)
	case string:
		return zero, fmt.Errorf("%w: %q is not a %s entry", ErrValue, v, s.kind.Name)
	default:
		return zero, fmt.Errorf("%w: %s sheets cannot hold %T", ErrType, s.kind.Name, v)
	}
}

func (s *Sheet[T]) insert(e T) {
	k := e.Key()
	i := sort.Search(len(s.keys), func(i int) bool { return s.keys[i].After(k) })
	s.entries = slices.Insert(s.entries, i, e)
	s.keys = slices.Insert(s.keys, i, k)
}

// Insert is Add for callers that do not know the sheet kind.
func (s *Sheet[T]) Insert(args ...any) (Entry, error) {
	e, err := s.Add(args...)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Update adds every entry of seq.
func (s *Sheet[T]) Update(seq iter.Seq[T]) {
	for e := range seq {
		s.insert(e)
	}
}

// Combine returns a new sheet with the entries of s and seq.
func (s *Sheet[T]) Combine(seq iter.Seq[T]) *Sheet[T] {
	c := NewSheet(s.kind)
	c.entries = slices.Clone(s.entries)
	c.keys = slices.Clone(s.keys)
	c.Update(seq)
	return c
}

// All iterates over entries in order.
func (s *Sheet[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, e := range s.entries {
			if !yield(e) {
				return
			}
		}
	}
}

func (s *Sheet[T]) Len() int { return len(s.entries) }

// At returns the i-th entry, it panics if i is out of range.
func (s *Sheet[T]) At(i int) T { return s.entries[i] }

func (s *Sheet[T]) Columns() []string { return s.kind.Columns }

// Rows iterates over entries as rows of values.
func (s *Sheet[T]) Rows() iter.Seq[[]any] {
	return func(yield func([]any) bool) {
		for _, e := range s.entries {
			if !yield(e.Row()) {
				return
			}
		}
	}
}

// Take returns the records within b.
//
// A sheet of records is filtered with start and until inclusive, and stops
// after b.Count records. Other sheets expand each entry with the same bounds
// and the resulting records are filtered and limited again.
func (s *Sheet[T]) Take(b Bounds) []Record {
	if records, ok := any(s).(*Sheet[Record]); ok {
		return b.filter(records.entries)
	}
	expanded := NewRecords()
	for _, e := range s.entries {
		for _, r := range e.Take(b) {
			expanded.insert(r)
		}
	}
	return b.filter(expanded.entries)
}

// MarshalJSON writes the sheet as an array of entries.
func (s *Sheet[T]) MarshalJSON() ([]byte, error) {
	if s.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.entries)
}

// UnmarshalJSON replaces the sheet content with the decoded entries.
func (s *Sheet[T]) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	s.entries, s.keys = nil, nil
	for i, raw := range raws {
		e, err := s.kind.Decode(raw)
		if err != nil {
			return fmt.Errorf("%s entry #%d: %w", s.kind.Name, i, err)
		}
		s.insert(e)
	}
	return nil
}
