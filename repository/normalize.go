package repository

import (
	"fmt"
	"time"

	"media-journal/storage"
)

// defaulter is implemented by entities that fill absent fields after load.
// The hosted backend does not reliably apply column defaults, so this runs
// on every raw result regardless of engine.
type defaulter interface {
	ApplyDefaults(now time.Time)
}

// normalizeRecord converts a hosted-backend key-mapping record into the
// canonical entity. Enum fields canonicalize (or reject) during decode via
// the models' unmarshalers.
func normalizeRecord[T any](rec storage.Record) (*T, error) {
	row := new(T)
	if err := rec.Decode(row); err != nil {
		return nil, fmt.Errorf("normalize record: %w", err)
	}
	return normalizeModel(row), nil
}

// normalizeModel finalizes a local-engine model instance. Same canonical
// shape as the record path; callers never branch on where a result came from.
func normalizeModel[T any](row *T) *T {
	if d, ok := any(row).(defaulter); ok {
		d.ApplyDefaults(time.Now().UTC())
	}
	return row
}
