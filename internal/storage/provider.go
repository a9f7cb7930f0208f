package storage

import (
	"context"
	"fmt"

	"github.com/daliphone/money-marketing-room/internal/models"
)

// TableStore defines the behavior for any backing sheet store.
// Write has full-table overwrite semantics.
type TableStore interface {
	Read(ctx context.Context, sheet string) (models.Table, error)
	Write(ctx context.Context, sheet string, table models.Table) error
}

// StoreError reports a failed read or write against the backing store.
type StoreError struct {
	Op    string // "read" or "write"
	Sheet string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %q: %v", e.Op, e.Sheet, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
