package fintrack

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// StoredSheet is a sheet a Book can persist.
type StoredSheet interface {
	Collection
	KindName() string
	json.Marshaler
	json.Unmarshaler
}

// kinds maps the persisted kind names to sheet constructors.
var kinds = map[string]func() StoredSheet{
	RecordKind.Name: func() StoredSheet { return NewRecords() },
	PlanKind.Name:   func() StoredSheet { return NewPlans() },
}

// NewSheetOf returns an empty sheet of the named kind, or ErrNotFound.
func NewSheetOf(kind string) (StoredSheet, error) {
	newSheet, ok := kinds[kind]
	if !ok {
		return nil, fmt.Errorf("sheet kind %q: %w", kind, ErrNotFound)
	}
	return newSheet(), nil
}

// KindNames returns the known sheet kinds, sorted.
func KindNames() []string {
	return slices.Sorted(maps.Keys(kinds))
}
