// Package util
//
// This file provides a priority queue keyed by strings. It combines a binary
// min-heap with a map so that both priority-ordered access (Peek/PopMin) and
// key-based updates or removals are cheap:
//
//   - O(log n) for Set, PopMin and Remove
//   - O(1) for Contains and Priority lookups
//
// Two consumers exist: the expiry janitor orders keys by deadline, and the
// group recency index orders groups by last access. Neither use is
// concurrent; callers that share a KeyHeap between goroutines must
// synchronize externally.
package util

import "container/heap"

// keyItem is one entry of the heap.
type keyItem struct {
	key      string
	priority uint64
	index    int // position in the heap slice, maintained by heap.Interface
}

// KeyHeap is a min-heap over string keys with key-based access.
type KeyHeap struct {
	items []*keyItem
	byKey map[string]*keyItem
}

// NewKeyHeap creates an empty KeyHeap.
func NewKeyHeap() *KeyHeap {
	return &KeyHeap{
		byKey: make(map[string]*keyItem),
	}
}

// --------------------------------------------------------------------------
// heap.Interface
// --------------------------------------------------------------------------

func (h *KeyHeap) Len() int { return len(h.items) }

func (h *KeyHeap) Less(i, j int) bool {
	return h.items[i].priority < h.items[j].priority
}

func (h *KeyHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.items[i].index = i
	h.items[j].index = j
}

func (h *KeyHeap) Push(x interface{}) {
	it := x.(*keyItem)
	it.index = len(h.items)
	h.items = append(h.items, it)
	h.byKey[it.key] = it
}

func (h *KeyHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	h.items = old[:n-1]
	delete(h.byKey, it.key)
	return it
}

// --------------------------------------------------------------------------
// Public API
// --------------------------------------------------------------------------

// Set inserts key with the given priority, or updates the priority of an
// existing key and restores heap order.
func (h *KeyHeap) Set(key string, priority uint64) {
	if it, ok := h.byKey[key]; ok {
		it.priority = priority
		heap.Fix(h, it.index)
		return
	}
	heap.Push(h, &keyItem{key: key, priority: priority})
}

// Remove deletes key from the heap. Returns its priority and whether the
// key was present.
func (h *KeyHeap) Remove(key string) (uint64, bool) {
	it, ok := h.byKey[key]
	if !ok {
		return 0, false
	}
	heap.Remove(h, it.index)
	return it.priority, true
}

// Peek returns the key with the lowest priority without removing it.
func (h *KeyHeap) Peek() (string, uint64, bool) {
	if len(h.items) == 0 {
		return "", 0, false
	}
	return h.items[0].key, h.items[0].priority, true
}

// PopMin removes and returns the key with the lowest priority.
func (h *KeyHeap) PopMin() (string, uint64, bool) {
	if len(h.items) == 0 {
		return "", 0, false
	}
	it := heap.Pop(h).(*keyItem)
	return it.key, it.priority, true
}

// Contains reports whether key is present.
func (h *KeyHeap) Contains(key string) bool {
	_, ok := h.byKey[key]
	return ok
}

// Priority returns the priority of key.
func (h *KeyHeap) Priority(key string) (uint64, bool) {
	it, ok := h.byKey[key]
	if !ok {
		return 0, false
	}
	return it.priority, true
}
