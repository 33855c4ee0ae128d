package inmemory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/leofalp/aistream/providers/ai"
	"github.com/leofalp/aistream/providers/observability"
)

func TestStore_AppendAndTurns(t *testing.T) {
	ctx := context.Background()
	s := New()

	s.Append(ctx, ai.Turn{Role: ai.RoleUser, Content: "hi"}, ai.Turn{Role: ai.RoleAssistant, Content: "hello"})

	turns, _ := s.Turns(ctx)
	if len(turns) != 2 || turns[1].Content != "hello" {
		t.Fatalf("turns = %+v", turns)
	}

	turns[0].Content = "changed"
	if again, _ := s.Turns(ctx); again[0].Content != "hi" {
		t.Error("Turns exposed internal state")
	}
}

// TestStore_Last checks bounds and ordering.
func TestStore_Last(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, c := range "abcde" {
		s.Append(ctx, ai.Turn{Role: ai.RoleUser, Content: string(c)})
	}

	last, _ := s.Last(ctx, 2)
	if len(last) != 2 || last[0].Content != "d" || last[1].Content != "e" {
		t.Errorf("Last(2) = %+v", last)
	}
	if none, _ := s.Last(ctx, 0); none == nil || len(none) != 0 {
		t.Errorf("Last(0) = %#v, want empty non-nil", none)
	}
	if all, _ := s.Last(ctx, 10); len(all) != 5 {
		t.Errorf("Last(10) returned %d turns", len(all))
	}
}

func TestStore_PopLastAndClear(t *testing.T) {
	ctx := context.Background()
	s := New()
	if turn, _ := s.PopLast(ctx); turn != nil {
		t.Fatalf("PopLast on empty store = %+v", turn)
	}

	s.Append(ctx, ai.Turn{Role: ai.RoleUser, Content: "1"}, ai.Turn{Role: ai.RoleAssistant, Content: "2"})
	if turn, _ := s.PopLast(ctx); turn == nil || turn.Content != "2" {
		t.Errorf("PopLast = %+v", turn)
	}

	s.Clear(ctx)
	if n, _ := s.Count(ctx); n != 0 {
		t.Errorf("Count after Clear = %d", n)
	}
}

type recordingSpan struct {
	events []string
	attrs  []observability.Attribute
}

func (s *recordingSpan) End() {}
func (s *recordingSpan) SetStatus(observability.StatusCode, string) {}
func (s *recordingSpan) RecordError(error) {}
func (s *recordingSpan) SetAttributes(attrs ...observability.Attribute) {
	s.attrs = append(s.attrs, attrs...)
}
func (s *recordingSpan) AddEvent(name string, _ ...observability.Attribute) {
	s.events = append(s.events, name)
}

// TestStore_SpanEvents checks appends and clears are visible on the span in ctx.
func TestStore_SpanEvents(t *testing.T) {
	span := &recordingSpan{}
	ctx := observability.ContextWithSpan(context.Background(), span)
	s := New()

	s.Append(ctx, ai.Turn{Role: ai.RoleUser, Content: "a"}, ai.Turn{Role: ai.RoleAssistant, Content: "b"})
	s.Clear(ctx)

	want := []string{observability.EventMemoryAppend, observability.EventMemoryAppend, observability.EventMemoryClear}
	if fmt.Sprint(span.events) != fmt.Sprint(want) {
		t.Errorf("events = %v, want %v", span.events, want)
	}
	if len(span.attrs) != 1 || span.attrs[0].Key != observability.AttrMemoryTotalTurns {
		t.Errorf("attrs = %+v", span.attrs)
	}
}

func TestStore_ConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	s := New()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Append(ctx, ai.Turn{Role: ai.RoleUser, Content: fmt.Sprint(i)})
		}()
	}
	wg.Wait()

	if n, _ := s.Count(ctx); n != 50 {
		t.Errorf("Count = %d, want 50", n)
	}
}
