package optimistic

import "github.com/google/uuid"

// FeedEntry is one element of an optimistically appended feed. Until the
// server answers, Value holds the locally built provisional item; Confirm
// replaces it with the server-returned object.
type FeedEntry[T any] struct {
	ClientID string
	Value    T
	State    State
}

// Feed tracks an append-only list (comments under a listing) through the
// optimistic lifecycle. Appends are independent of one another, so unlike
// Counter there is no single pending slot; each entry settles on its own.
type Feed[T any] struct {
	entries []*FeedEntry[T]
	byID    map[string]*FeedEntry[T]
}

func NewFeed[T any](initial []T) *Feed[T] {
	f := &Feed[T]{byID: make(map[string]*FeedEntry[T])}
	for _, v := range initial {
		f.entries = append(f.entries, &FeedEntry[T]{Value: v, State: Confirmed})
	}
	return f
}

// Append adds a provisional entry at the end of the feed and returns its
// client id for the later Confirm or Rollback.
func (f *Feed[T]) Append(provisional T) string {
	e := &FeedEntry[T]{
		ClientID: uuid.New().String(),
		Value:    provisional,
		State:    OptimisticallyApplied,
	}
	f.entries = append(f.entries, e)
	f.byID[e.ClientID] = e
	return e.ClientID
}

// Confirm replaces the provisional entry with the server-returned object.
func (f *Feed[T]) Confirm(clientID string, canonical T) error {
	e, ok := f.byID[clientID]
	if !ok || e.State != OptimisticallyApplied {
		return ErrNoPendingMutation
	}
	e.Value = canonical
	e.State = Confirmed
	return nil
}

// Rollback removes the provisional entry from the feed.
func (f *Feed[T]) Rollback(clientID string) error {
	e, ok := f.byID[clientID]
	if !ok || e.State != OptimisticallyApplied {
		return ErrNoPendingMutation
	}
	delete(f.byID, clientID)
	for i, cur := range f.entries {
		if cur == e {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			break
		}
	}
	return nil
}

// Items returns the feed values in order, provisional entries included.
func (f *Feed[T]) Items() []T {
	out := make([]T, len(f.entries))
	for i, e := range f.entries {
		out[i] = e.Value
	}
	return out
}
