package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/meetocure/patient-dashboard/internal/remote"
)

// Source fetches one typed collection. *remote.Collection satisfies it.
type Source[T any] interface {
	Name() string
	RequiresAuth() bool
	Fetch(ctx context.Context, token string) ([]T, error)
}

// Section holds the load state of one list. Only the owning Dashboard's
// mount drives it, through begin and finish.
type Section[T any] struct {
	source   Source[T]
	onChange func()

	mu    sync.RWMutex
	state remote.LoadState[T]
}

func newSection[T any](source Source[T], onChange func()) *Section[T] {
	if onChange == nil {
		onChange = func() {}
	}
	return &Section[T]{
		source:   source,
		onChange: onChange,
		state:    remote.Ready[T](nil),
	}
}

// State returns the current load state.
func (s *Section[T]) State() remote.LoadState[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Section[T]) set(state remote.LoadState[T]) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	s.onChange()
}

// begin moves the section to loading. It reports false, leaving the state
// untouched, when the source needs a token and none is present.
func (s *Section[T]) begin(ctx context.Context, token string) bool {
	if s.source.RequiresAuth() && token == "" {
		slog.WarnContext(ctx, "No auth token found. Cannot fetch protected routes.", "collection", s.source.Name())
		return false
	}
	s.set(remote.Loading[T]())
	return true
}

func (s *Section[T]) finish(ctx context.Context, token string) {
	items, err := s.source.Fetch(ctx, token)
	if ctx.Err() != nil {
		slog.DebugContext(ctx, "Dropping fetch result after unmount", "collection", s.source.Name())
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "Collection load failed", "collection", s.source.Name(), "error", err)
		s.set(remote.Failed[T](remote.Message(err)))
		return
	}
	s.set(remote.Ready(items))
}
