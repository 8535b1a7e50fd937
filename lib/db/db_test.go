package db

import (
	"testing"
	"time"

	"github.com/groupkv/gkv/lib/strval"
)

func TestSetKeyAndLookup(t *testing.T) {
	d := New(nil)
	defer d.Close()

	d.SetKey("k", strval.NewString("v1"))

	v := d.LookupKeyRead("k")
	if v == nil {
		t.Fatal("expected key to exist after SetKey")
	}
	if v.String() != "v1" {
		t.Errorf("expected v1, got %q", v.String())
	}

	d.SetKey("k", strval.NewString("v2"))
	if got := d.LookupKeyRead("k").String(); got != "v2" {
		t.Errorf("expected v2, got %q", got)
	}

	if d.LookupKeyRead("missing") != nil {
		t.Error("missing key should return nil")
	}
}

func TestSetKeyClearsExpire(t *testing.T) {
	d := New(nil)
	defer d.Close()

	d.SetKeyExpire("k", strval.NewString("v"), 20*time.Millisecond)
	d.SetKey("k", strval.NewString("v2"))

	time.Sleep(50 * time.Millisecond)
	if d.LookupKeyRead("k") == nil {
		t.Error("plain SetKey must remove a previous deadline")
	}
}

func TestExpiration(t *testing.T) {
	d := New(&Options{JanitorInterval: 10 * time.Millisecond})
	defer d.Close()

	d.SetKeyExpire("k", strval.NewString("v"), 30*time.Millisecond)

	if d.LookupKeyRead("k") == nil {
		t.Fatal("key should be alive before the deadline")
	}

	time.Sleep(100 * time.Millisecond)
	if d.LookupKeyRead("k") != nil {
		t.Error("key should be gone after the deadline")
	}
	// the janitor should also have collected the slot itself
	if d.Len() != 0 {
		t.Errorf("expected empty keyspace, %d slots left", d.Len())
	}
}

func TestLazyExpirationWithoutJanitor(t *testing.T) {
	d := New(&Options{JanitorInterval: time.Hour})
	defer d.Close()

	d.SetKeyExpire("k", strval.NewString("v"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if d.LookupKeyRead("k") != nil {
		t.Error("lookup must enforce the deadline even before a sweep")
	}
}

func TestDelete(t *testing.T) {
	d := New(nil)
	defer d.Close()

	d.SetKey("k", strval.NewString("v"))
	if !d.Delete("k") {
		t.Error("deleting a live key should report true")
	}
	if d.Delete("k") {
		t.Error("deleting a missing key should report false")
	}
	if d.Exists("k") {
		t.Error("deleted key must not exist")
	}
}

func TestDirtyCounter(t *testing.T) {
	d := New(nil)
	defer d.Close()

	d.AddDirty(1)
	d.AddDirty(3)
	if d.Dirty() != 4 {
		t.Errorf("expected dirty=4, got %d", d.Dirty())
	}
}

func TestNotifications(t *testing.T) {
	var events []string
	var modified []string

	d := New(&Options{
		OnEvent:    func(event, key string) { events = append(events, event+":"+key) },
		OnModified: func(key string) { modified = append(modified, key) },
	})
	defer d.Close()

	d.SetKey("k", strval.NewString("v"))
	d.Notify(EventSet, "k")

	if len(events) != 1 || events[0] != "set:k" {
		t.Errorf("unexpected events %v", events)
	}

	// every write path must fire the modification hook on its own
	d.SetKeyExpire("k", strval.NewString("v2"), time.Minute)
	d.Overwrite("k", strval.NewString("v3"))
	d.Delete("k")
	d.Delete("missing") // no entry, no signal

	want := []string{"k", "k", "k", "k"}
	if len(modified) != len(want) {
		t.Fatalf("expected %d modified signals, got %v", len(want), modified)
	}
	for i, key := range want {
		if modified[i] != key {
			t.Errorf("modified[%d] = %q, want %q", i, modified[i], key)
		}
	}
}

func TestInfo(t *testing.T) {
	d := New(nil)
	defer d.Close()

	d.SetKey("a", strval.NewString("hello"))
	d.SetKey("b", strval.NewString("world!"))
	d.AddDirty(2)

	info := d.Info()
	if info.Keys != 2 {
		t.Errorf("expected 2 keys, got %d", info.Keys)
	}
	if info.Dirty != 2 {
		t.Errorf("expected dirty=2, got %d", info.Dirty)
	}
	if info.SizeBytesEstimate <= 0 {
		t.Error("size estimate should be positive")
	}
}
