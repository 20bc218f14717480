package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an id matches no row on the active backend.
var ErrNotFound = errors.New("record not found")

// Fault wraps an engine-level failure with enough context to tell which
// backend and table it came from. Repositories propagate these unmodified.
type Fault struct {
	Backend string
	Op      string
	Table   string
	Err     error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s backend: %s %s: %v", f.Backend, f.Op, f.Table, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// NewFault wraps err as a storage fault. A nil err returns nil.
func NewFault(backend, op, table string, err error) error {
	if err == nil {
		return nil
	}
	return &Fault{Backend: backend, Op: op, Table: table, Err: err}
}
