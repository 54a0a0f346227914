package memory

import (
	"context"
	"fmt"
	"sync"

	"receipts/internal/core"
	"receipts/internal/store"
)

// Store keeps entries in insertion order for the lifetime of the process.
type Store struct {
	mu    sync.Mutex
	items []core.Entry
	index map[string]struct{}
	rev   uint64
	total core.Money
}

func New() *Store {
	return &Store{index: make(map[string]struct{})}
}

// Append stores the batch. Invalid entries, ids already present (in the
// store or twice in the batch) or a stored total above core.MaxTotalCents
// reject the whole batch.
func (s *Store) Append(_ context.Context, entries ...core.Entry) error {
	batch := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		if _, dup := batch[e.ID]; dup {
			return fmt.Errorf("%w: %s", store.ErrDuplicateID, e.ID)
		}
		batch[e.ID] = struct{}{}
	}
	added, err := core.CheckedSum(entries)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range batch {
		if _, dup := s.index[id]; dup {
			return fmt.Errorf("%w: %s", store.ErrDuplicateID, id)
		}
	}
	if len(entries) == 0 {
		return nil
	}
	if added.Cents > core.MaxTotalCents-s.total.Cents {
		return core.ErrTotalTooLarge
	}
	s.items = append(s.items, entries...)
	s.total = s.total.Add(added)
	for id := range batch {
		s.index[id] = struct{}{}
	}
	s.rev++
	return nil
}

// Delete removes exactly the entry with id, keeping the others in order.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[id]; !ok {
		return fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	for i, e := range s.items {
		if e.ID == id {
			s.total.Cents -= e.Amount.Cents
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			break
		}
	}
	delete(s.index, id)
	s.rev++
	return nil
}

// List returns a copy; callers may keep or modify it freely.
func (s *Store) List(_ context.Context) []core.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Entry(nil), s.items...)
}

func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rev
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

var _ store.EntryStore = (*Store)(nil)
