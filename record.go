package fintrack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/etnz/fintrack/date"
	"github.com/shopspring/decimal"
)

// Fields is the keyword form of an entry, as found in persisted JSON or built
// by callers that prefer names to positions.
type Fields map[string]any

// Record is a dated financial transaction.
type Record struct {
	Amount      decimal.Decimal
	Description string
	Timestamp   time.Time
	UID         string
}

var recordColumns = []string{"timestamp", "amount", "description", "uid"}

// NewRecord returns a record, a zero timestamp is replaced by the current
// instant and an empty uid by a random one.
func NewRecord(amount decimal.Decimal, description string, timestamp time.Time, uid string) Record {
	if timestamp.IsZero() {
		timestamp = now()
	}
	if uid == "" {
		uid = newUID()
	}
	return Record{Amount: amount, Description: description, Timestamp: timestamp, UID: uid}
}

// RecordFromArgs builds a record from positional arguments:
// amount, description[, timestamp[, uid]].
//
// Amounts and timestamps can be strings, they are then parsed with the
// current settings. A nil timestamp or uid gets the default.
func RecordFromArgs(args ...any) (Record, error) {
	if len(args) < 2 || len(args) > 4 {
		return Record{}, fmt.Errorf("%w: a record takes amount, description[, timestamp[, uid]], got %d arguments", ErrType, len(args))
	}
	f := Fields{"amount": args[0], "description": args[1]}
	if len(args) > 2 {
		f["timestamp"] = args[2]
	}
	if len(args) > 3 {
		f["uid"] = args[3]
	}
	return RecordFromFields(f)
}

// RecordFromFields builds a record from its keyword form. amount and
// description are required, timestamp and uid are optional.
func RecordFromFields(f Fields) (Record, error) {
	if err := checkFields(f, []string{"amount", "description"}, []string{"timestamp", "uid"}); err != nil {
		return Record{}, fmt.Errorf("record: %w", err)
	}
	amount, err := ParseAmount(f["amount"])
	if err != nil {
		return Record{}, fmt.Errorf("record amount: %w", err)
	}
	description, err := stringField(f, "description")
	if err != nil {
		return Record{}, fmt.Errorf("record: %w", err)
	}
	var timestamp time.Time
	if v := f["timestamp"]; v != nil {
		if timestamp, err = ParseDatetime(v); err != nil {
			return Record{}, fmt.Errorf("record timestamp: %w", err)
		}
	}
	uid, err := stringField(f, "uid")
	if err != nil {
		return Record{}, fmt.Errorf("record: %w", err)
	}
	return NewRecord(amount, description, timestamp, uid), nil
}

// Key returns the record timestamp, records are sorted by it.
func (r Record) Key() time.Time { return r.Timestamp }

// Less reports whether r happened strictly before other.
func (r Record) Less(other Record) bool { return r.Timestamp.Before(other.Timestamp) }

func (r Record) Columns() []string { return recordColumns }

// Row returns the record values in column order.
func (r Record) Row() []any {
	return []any{r.Timestamp, r.Amount, r.Description, r.UID}
}

// Take returns the record itself if it is within the bounds.
func (r Record) Take(b Bounds) []Record {
	if !b.Contains(r.Timestamp) {
		return nil
	}
	return []Record{r}
}

func (r Record) String() string {
	return fmt.Sprintf("record for %s %s %s", r.Amount, date.NaturalDay(r.Timestamp, now()), r.Description)
}

// MarshalJSON writes the record in its canonical persisted form, amounts are
// exact decimal strings.
func (r Record) MarshalJSON() ([]byte, error) {
	var w fieldWriter
	w.Amount("amount", r.Amount)
	w.Text("description", r.Description)
	w.Time("timestamp", r.Timestamp)
	w.Text("uid", r.UID)
	return w.MarshalJSON()
}

func (r *Record) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	rec, err := RecordFromFields(f)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

// decodeFields reads a persisted entry. Amounts and timestamps are stored in
// a canonical form that must not go through the locale dependent parsers.
func decodeFields(data []byte) (Fields, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var f Fields
	if err := dec.Decode(&f); err != nil {
		return nil, err
	}
	if v, ok := f["amount"]; ok {
		var s string
		switch x := v.(type) {
		case string:
			s = x
		case json.Number:
			s = x.String()
		}
		if s != "" {
			d, err := decimal.NewFromString(s)
			if err != nil {
				return nil, fmt.Errorf("%w: stored amount %q: %w", ErrValue, s, err)
			}
			f["amount"] = d
		}
	}
	if s, ok := f["timestamp"].(string); ok {
		t, err := parseStoredTime(s)
		if err != nil {
			return nil, err
		}
		f["timestamp"] = t
	}
	return f, nil
}

// storedLayouts are the timestamp forms found in sheet files, older files
// carry timestamps without an offset.
var storedLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

func parseStoredTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range storedLayouts {
		if t, err := time.ParseInLocation(layout, s, CurrentSettings().Location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: stored timestamp %q", ErrValue, s)
}

// checkFields verifies f has every required key and no unknown key.
func checkFields(f Fields, required, optional []string) error {
	known := make(map[string]bool, len(required)+len(optional))
	for _, k := range required {
		if _, ok := f[k]; !ok {
			return fmt.Errorf("%w: missing field %q", ErrType, k)
		}
		known[k] = true
	}
	for _, k := range optional {
		known[k] = true
	}
	for k := range f {
		if !known[k] {
			return fmt.Errorf("%w: unknown field %q", ErrType, k)
		}
	}
	return nil
}

// stringField returns f[key] as a string, nil reads as "".
func stringField(f Fields, key string) (string, error) {
	switch v := f[key].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", fmt.Errorf("%w: field %q want a string got %T", ErrType, key, v)
	}
}
