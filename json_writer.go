package fintrack

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// fieldWriter writes the persisted JSON form of an entry, with its fields in
// the order they are written. Its zero value is ready to use.
type fieldWriter struct {
	buf bytes.Buffer
}

func (w *fieldWriter) field(key, value string) {
	if w.buf.Len() == 0 {
		w.buf.WriteByte('{')
	} else {
		w.buf.WriteByte(',')
	}
	// Strings always marshal.
	k, _ := json.Marshal(key)
	v, _ := json.Marshal(value)
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(v)
}

// Amount writes d as a string, so that no digit is lost to a float.
func (w *fieldWriter) Amount(key string, d decimal.Decimal) { w.field(key, d.String()) }

// Time writes t in RFC 3339, with its fraction of second if any.
func (w *fieldWriter) Time(key string, t time.Time) { w.field(key, t.Format(time.RFC3339Nano)) }

func (w *fieldWriter) Text(key, s string) { w.field(key, s) }

// OptionalText writes s unless it is empty.
func (w *fieldWriter) OptionalText(key, s string) {
	if s != "" {
		w.field(key, s)
	}
}

// MarshalJSON closes the object.
func (w *fieldWriter) MarshalJSON() ([]byte, error) {
	if w.buf.Len() == 0 {
		return []byte("{}"), nil
	}
	return append(bytes.Clone(w.buf.Bytes()), '}'), nil
}
