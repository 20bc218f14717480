package storage

import (
	"encoding/json"
	"fmt"
)

// Record is the key-mapping shape the hosted-table backend produces and
// consumes. Partial-update payloads are built as Records too, so the same
// insert/update path serves both engines.
type Record map[string]any

// Without returns a copy of the record with the given keys removed.
// The receiver is left untouched.
func (r Record) Without(keys ...string) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Decode maps the record onto a typed model. It goes through JSON so the
// model's field tags and custom unmarshalers (enum canonicalization in
// particular) apply exactly as they do for hosted-backend responses.
func (r Record) Decode(dst any) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

// ID extracts the identifier from the "id" key, tolerating the numeric
// representations the two engines hand back.
func (r Record) ID() (int64, bool) {
	switch v := r["id"].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}
