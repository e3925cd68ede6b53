package cache

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// fakeClock is a controllable clock for expiry tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestStoreRoundTrip(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := New[[]string](10*time.Minute, clock.Now)

	if _, ok := store.Get("ai"); ok {
		t.Fatal("expected miss on empty store")
	}

	want := []string{"a", "b"}
	store.Put("ai", want)

	got, ok := store.Get("ai")
	if !ok {
		t.Fatal("expected hit after put")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := New[int](10*time.Minute, clock.Now)

	store.Put("topic", 42)

	clock.Advance(10 * time.Minute)
	if _, ok := store.Get("topic"); !ok {
		t.Fatal("entry at exactly TTL should still be live")
	}

	clock.Advance(time.Second)
	if _, ok := store.Get("topic"); ok {
		t.Fatal("entry past TTL should be treated as absent")
	}
}

func TestStorePutReplaces(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := New[[]int](time.Hour, clock.Now)

	store.Put("k", []int{1, 2, 3})
	store.Put("k", []int{9})

	got, ok := store.Get("k")
	if !ok {
		t.Fatal("expected hit")
	}
	if diff := cmp.Diff([]int{9}, got); diff != "" {
		t.Errorf("replacement mismatch (-want +got):\n%s", diff)
	}
}
