package util

import (
	"sort"
	"testing"
)

func TestNewKeyHeap(t *testing.T) {
	h := NewKeyHeap()

	if h == nil {
		t.Fatal("NewKeyHeap() returned nil")
	}
	if h.Len() != 0 {
		t.Errorf("new heap should be empty, has length %d", h.Len())
	}
}

func TestKeyHeapSet(t *testing.T) {
	h := NewKeyHeap()

	h.Set("a", 100)
	h.Set("b", 200)
	h.Set("c", 50)

	if h.Len() != 3 {
		t.Errorf("heap should have 3 items, has %d", h.Len())
	}
	for _, k := range []string{"a", "b", "c"} {
		if !h.Contains(k) {
			t.Errorf("heap should contain key %q", k)
		}
	}

	key, prio, ok := h.Peek()
	if !ok {
		t.Fatal("Peek() should return an item")
	}
	if key != "c" || prio != 50 {
		t.Errorf("expected min item (c,50), got (%s,%d)", key, prio)
	}
}

func TestKeyHeapUpdate(t *testing.T) {
	h := NewKeyHeap()

	h.Set("a", 100)
	h.Set("b", 200)
	h.Set("a", 300)

	if h.Len() != 2 {
		t.Errorf("update must not add a duplicate, len=%d", h.Len())
	}
	if prio, ok := h.Priority("a"); !ok || prio != 300 {
		t.Errorf("expected priority 300, got %d (ok=%v)", prio, ok)
	}

	// after the update, "b" is the minimum
	if key, _, _ := h.Peek(); key != "b" {
		t.Errorf("expected min key b, got %s", key)
	}
}

func TestKeyHeapRemove(t *testing.T) {
	h := NewKeyHeap()

	h.Set("a", 100)
	h.Set("b", 200)

	prio, ok := h.Remove("a")
	if !ok || prio != 100 {
		t.Errorf("expected (100,true), got (%d,%v)", prio, ok)
	}
	if h.Contains("a") {
		t.Error("removed key should not be contained")
	}

	if _, ok := h.Remove("missing"); ok {
		t.Error("removing a missing key should report false")
	}
}

func TestKeyHeapPopOrder(t *testing.T) {
	h := NewKeyHeap()

	prios := []uint64{42, 7, 99, 1, 63, 23}
	for i, p := range prios {
		h.Set(string(rune('a'+i)), p)
	}

	var popped []uint64
	for {
		_, p, ok := h.PopMin()
		if !ok {
			break
		}
		popped = append(popped, p)
	}

	if len(popped) != len(prios) {
		t.Fatalf("expected %d items, popped %d", len(prios), len(popped))
	}
	if !sort.SliceIsSorted(popped, func(i, j int) bool { return popped[i] < popped[j] }) {
		t.Errorf("PopMin order not sorted: %v", popped)
	}
}
