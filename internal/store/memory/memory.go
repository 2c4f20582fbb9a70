// Package memory provides an in-process persistence gateway backed by a map.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/agentstation/grantmap/pkg/errors"
	"github.com/agentstation/grantmap/pkg/programs"
	"github.com/agentstation/grantmap/pkg/store"
)

var _ store.Store = (*Store)(nil)

// Store keeps programs in memory, keyed by source ID.
type Store struct {
	mu       sync.RWMutex
	programs map[string]programs.Program
	closed   bool
}

// New creates an empty store.
func New() *Store {
	return &Store{programs: make(map[string]programs.Program)}
}

// FindByKey implements store.Store.
func (s *Store) FindByKey(ctx context.Context, sourceID string) (*programs.Program, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.programs[sourceID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

// Upsert implements store.Store.
func (s *Store) Upsert(ctx context.Context, p programs.Program) (store.Outcome, error) {
	if err := s.check(ctx); err != nil {
		return 0, err
	}
	if p.SourceID == "" {
		return 0, errors.NewValidationError("source_id", p.SourceID, "is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.programs[p.SourceID]
	s.programs[p.SourceID] = p
	if exists {
		return store.Updated, nil
	}
	return store.Created, nil
}

// Count implements store.Store.
func (s *Store) Count(ctx context.Context, filter store.Filter) (int, error) {
	if err := s.check(ctx); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, p := range s.programs {
		if filter.Matches(p) {
			n++
		}
	}
	return n, nil
}

// GroupByCount implements store.Store.
func (s *Store) GroupByCount(ctx context.Context, field store.Field) ([]store.GroupCount, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	if !field.IsValid() {
		return nil, errors.NewValidationError("field", field, "cannot group on this field")
	}

	s.mu.RLock()
	counts := make(map[string]int)
	for _, p := range s.programs {
		switch field {
		case store.FieldSource:
			counts[p.Source]++
		case store.FieldStatus:
			counts[string(p.Status)]++
		}
	}
	s.mu.RUnlock()

	rows := make([]store.GroupCount, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, store.GroupCount{Key: k, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows, nil
}

// Ping implements store.Store.
func (s *Store) Ping(ctx context.Context) error {
	return s.check(ctx)
}

// Close implements store.Store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Len returns the number of stored programs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.programs)
}

func (s *Store) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return errors.New("memory store is closed")
	}
	return nil
}
