package store

import (
	"sync/atomic"
)

// Record is any domain value with a stable identity.
type Record interface {
	Key() string
}

// State is the domain state record owned by one domain store: the fetched
// items in arrival order, the in-flight flag, the last failure message, and
// the current selection.
type State[T Record] struct {
	Items    []T
	Loading  bool
	Err      string
	Selected *T
}

// Collection wraps a reactive Store of State and provides the mutations every
// domain store shares: selection, reset, and id-keyed list maintenance. The
// invariants it maintains on every mutation:
//
//   - Items never contains two records with the same key
//   - Selected always resolves to an item currently in Items, or is nil
type Collection[T Record] struct {
	state *Store[State[T]]

	// gen tags list-replacing operations. A fetch captures the generation at
	// issue time and its response is discarded if the generation has moved on
	// by completion (a newer fetch was issued, or Reset was called). This is
	// what keeps a slow stale response from overwriting fresher state.
	gen atomic.Uint64
}

// NewCollection builds a Collection with empty initial state.
func NewCollection[T Record]() *Collection[T] {
	return &Collection[T]{state: New(State[T]{})}
}

// Subscribe registers an observer on the underlying state. The observer is
// immediately handed the current state, then every subsequent transition.
func (c *Collection[T]) Subscribe(fn func(State[T])) (cancel func()) {
	return c.state.Subscribe(fn)
}

// Current returns the state as of now.
func (c *Collection[T]) Current() State[T] {
	return c.state.Get()
}

// Select points the selection at the item with the given key, or clears it
// when no such item exists. Local only; never touches the network, Loading,
// or Err.
func (c *Collection[T]) Select(id string) {
	c.state.Update(func(st State[T]) State[T] {
		st.Selected = findByKey(st.Items, id)
		return st
	})
}

// Reset returns the store to its initial empty state and invalidates any
// in-flight fetch so a late response cannot resurrect the discarded state.
func (c *Collection[T]) Reset() {
	c.gen.Add(1)
	c.state.Set(State[T]{})
}

// beginOp marks a new operation: Loading on, previous failure cleared.
func (c *Collection[T]) beginOp() {
	c.state.Update(func(st State[T]) State[T] {
		st.Loading = true
		st.Err = ""
		return st
	})
}

// failOp records a failure and ends the operation. Items and Selected are
// left untouched: stale data stays available.
func (c *Collection[T]) failOp(msg string) {
	c.state.Update(func(st State[T]) State[T] {
		st.Loading = false
		st.Err = msg
		return st
	})
}

// beginFetch marks a new fetch and returns its generation tag.
func (c *Collection[T]) beginFetch() uint64 {
	gen := c.gen.Add(1)
	c.beginOp()
	return gen
}

// fetchStale reports whether a fetch issued at gen has been superseded.
func (c *Collection[T]) fetchStale(gen uint64) bool {
	return c.gen.Load() != gen
}

// completeFetch replaces Items with the fetched list (first occurrence wins
// on duplicate keys) and re-resolves the selection against it.
func (c *Collection[T]) completeFetch(items []T) {
	c.state.Update(func(st State[T]) State[T] {
		st.Items = dedupeByKey(items)
		st.Loading = false
		st.Err = ""
		if st.Selected != nil {
			st.Selected = findByKey(st.Items, (*st.Selected).Key())
		}
		return st
	})
}

// completeAppend adds the server-confirmed record and ends the operation. An
// existing record with the same key is replaced in place instead.
func (c *Collection[T]) completeAppend(item T) {
	c.state.Update(func(st State[T]) State[T] {
		st.Items = upsertByKey(st.Items, item)
		st.Loading = false
		if st.Selected != nil && (*st.Selected).Key() == item.Key() {
			st.Selected = &item
		}
		return st
	})
}

// completeReplace swaps the matching record in place, order preserved, and
// re-points the selection when it matches.
func (c *Collection[T]) completeReplace(item T) {
	c.state.Update(func(st State[T]) State[T] {
		items := cloneItems(st.Items)
		for i := range items {
			if items[i].Key() == item.Key() {
				items[i] = item
				break
			}
		}
		st.Items = items
		st.Loading = false
		if st.Selected != nil && (*st.Selected).Key() == item.Key() {
			st.Selected = &item
		}
		return st
	})
}

// completeRemove drops the record by key and clears the selection when it
// pointed at the removed record.
func (c *Collection[T]) completeRemove(id string) {
	c.state.Update(func(st State[T]) State[T] {
		st.Items = removeByKey(st.Items, id)
		st.Loading = false
		if st.Selected != nil && (*st.Selected).Key() == id {
			st.Selected = nil
		}
		return st
	})
}

// mergeItem merges a record into state without touching Loading or Err. Used
// by the narrow mutation channels (read receipts, optimistic chat appends)
// whose failure contract is separate from the primary list operations.
func (c *Collection[T]) mergeItem(item T) {
	c.state.Update(func(st State[T]) State[T] {
		st.Items = upsertByKey(st.Items, item)
		if st.Selected != nil && (*st.Selected).Key() == item.Key() {
			st.Selected = &item
		}
		return st
	})
}

func findByKey[T Record](items []T, id string) *T {
	for i := range items {
		if items[i].Key() == id {
			match := items[i]
			return &match
		}
	}
	return nil
}

// upsertByKey returns a fresh slice so snapshots handed to observers earlier
// never see later mutations.
func upsertByKey[T Record](items []T, item T) []T {
	out := cloneItems(items)
	for i := range out {
		if out[i].Key() == item.Key() {
			out[i] = item
			return out
		}
	}
	return append(out, item)
}

func removeByKey[T Record](items []T, id string) []T {
	var out []T
	for _, it := range items {
		if it.Key() == id {
			continue
		}
		out = append(out, it)
	}
	return out
}

func cloneItems[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}

func dedupeByKey[T Record](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.Key()]; ok {
			continue
		}
		seen[it.Key()] = struct{}{}
		out = append(out, it)
	}
	return out
}
