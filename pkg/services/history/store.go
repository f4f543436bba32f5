package history

import (
	"context"
	"fmt"

	"github.com/de-tools/data-brief/pkg/models/domain"
)

// Service is the slice of the analysis service the store depends on.
type Service interface {
	History(ctx context.Context) ([]domain.HistoryEntry, error)
	Reset(ctx context.Context) error
}

// Store is a read-through snapshot of the service's exchange log. It
// never appends locally: every refresh replaces the snapshot wholesale
// with the authoritative fetch.
type Store struct {
	svc     Service
	entries []domain.HistoryEntry
}

func NewStore(svc Service) *Store {
	return &Store{svc: svc}
}

// Refresh replaces the local snapshot with the service's log.
func (s *Store) Refresh(ctx context.Context) error {
	entries, err := s.svc.History(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh history: %w", err)
	}
	s.entries = entries
	return nil
}

// Clear empties the local snapshot and asks the service to reset its
// own log.
func (s *Store) Clear(ctx context.Context) error {
	s.entries = nil
	if err := s.svc.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset service history: %w", err)
	}
	return nil
}

// Entries returns the current snapshot in chronological order.
func (s *Store) Entries() []domain.HistoryEntry {
	return s.entries
}

func (s *Store) Len() int {
	return len(s.entries)
}
