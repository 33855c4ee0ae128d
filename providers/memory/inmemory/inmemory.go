package inmemory

import (
	"context"
	"sync"

	"github.com/leofalp/aistream/providers/ai"
	"github.com/leofalp/aistream/providers/memory"
	"github.com/leofalp/aistream/providers/observability"
)

// Store is a slice of turns guarded by a RWMutex.
type Store struct {
	mu    sync.RWMutex
	turns []ai.Turn
}

var _ memory.Store = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Append stores copies of turns at the end of the history. When ctx carries a
// span, one event per turn is recorded along with the new total.
func (s *Store) Append(ctx context.Context, turns ...ai.Turn) {
	if len(turns) == 0 {
		return
	}

	span := observability.SpanFromContext(ctx)
	if span != nil {
		for _, turn := range turns {
			span.AddEvent(observability.EventMemoryAppend,
				observability.String(observability.AttrMemoryTurnRole, string(turn.Role)),
				observability.Int(observability.AttrMemoryTurnLength, len(turn.Content)),
			)
		}
	}

	s.mu.Lock()
	s.turns = append(s.turns, turns...)
	total := len(s.turns)
	s.mu.Unlock()

	if span != nil {
		span.SetAttributes(observability.Int(observability.AttrMemoryTotalTurns, total))
	}
}

// Turns returns a copy of the whole history.
func (s *Store) Turns(_ context.Context) ([]ai.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ai.Turn{}, s.turns...), nil
}

// Last returns up to the n most recent turns. n <= 0 yields an empty slice.
func (s *Store) Last(_ context.Context, n int) ([]ai.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 {
		return []ai.Turn{}, nil
	}
	n = min(n, len(s.turns))
	return append([]ai.Turn{}, s.turns[len(s.turns)-n:]...), nil
}

// PopLast removes and returns the newest turn, or nil when empty.
func (s *Store) PopLast(_ context.Context) (*ai.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.turns) == 0 {
		return nil, nil
	}
	last := s.turns[len(s.turns)-1]
	s.turns = s.turns[:len(s.turns)-1]
	return &last, nil
}

// Count returns the number of stored turns.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns), nil
}

// Clear drops every turn, keeping the slice capacity.
func (s *Store) Clear(ctx context.Context) {
	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventMemoryClear)
	}

	s.mu.Lock()
	s.turns = s.turns[:0]
	s.mu.Unlock()
}
