package fintrack

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// Query evaluates a JSONPath expression against the persisted form of the
// named sheet, e.g. `$[?(@.description == "rent")].amount`.
//
// Numbers are decoded as float64 and amounts stay exact strings, as they are
// in the sheet file.
func (b *Book) Query(name, expr string) (any, error) {
	sheet, err := b.Sheet(name)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(sheet)
	if err != nil {
		return nil, fmt.Errorf("cannot encode sheet %q: %w", name, err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("cannot decode sheet %q: %w", name, err)
	}
	v, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: query %q: %w", ErrValue, expr, err)
	}
	return v, nil
}
