package store

import (
	"context"
	"errors"

	"receipts/internal/core"
)

var (
	ErrNotFound    = errors.New("entry not found")
	ErrDuplicateID = errors.New("duplicate entry id")
)

// Ports for the entry collection.
type (
	EntryWriter interface {
		// Append adds entries as one batch; either all are stored or none.
		Append(ctx context.Context, entries ...core.Entry) error
	}

	EntryDeleter interface {
		// Delete removes the entry with the given id, or returns ErrNotFound.
		Delete(ctx context.Context, id string) error
	}

	EntryLister interface {
		// List returns a snapshot of the entries in insertion order.
		List(ctx context.Context) []core.Entry
		// Revision changes on every successful mutation.
		Revision() uint64
	}

	EntryStore interface {
		EntryWriter
		EntryDeleter
		EntryLister
	}
)
