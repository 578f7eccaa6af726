package remote

// Status is the phase of one asynchronous collection load.
type Status string

const (
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusReady   Status = "ready"
)

// LoadState is the tri-state of a single collection: loading, error (with a
// message) or ready (with zero or more items). Exactly one holds at a time.
type LoadState[T any] struct {
	Status Status `json:"status"`
	Err    string `json:"error,omitempty"`
	Items  []T    `json:"items"`
}

// Ready returns a ready state holding items. A nil slice is stored as empty.
func Ready[T any](items []T) LoadState[T] {
	if items == nil {
		items = []T{}
	}
	return LoadState[T]{Status: StatusReady, Items: items}
}

// Loading returns the in-flight state.
func Loading[T any]() LoadState[T] {
	return LoadState[T]{Status: StatusLoading, Items: []T{}}
}

// Failed returns an error state carrying a human-readable message.
func Failed[T any](message string) LoadState[T] {
	return LoadState[T]{Status: StatusError, Err: message, Items: []T{}}
}

func (s LoadState[T]) IsLoading() bool { return s.Status == StatusLoading }
func (s LoadState[T]) IsError() bool   { return s.Status == StatusError }
func (s LoadState[T]) IsReady() bool   { return s.Status == StatusReady }
