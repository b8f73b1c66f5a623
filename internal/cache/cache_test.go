package cache

import (
	"testing"
	"time"
)

type entity struct {
	ID   string
	Name string
}

// newTestStore returns a store plus a settable clock.
func newTestStore(ttl time.Duration) (*Store[string, entity], *time.Time) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New(ttl, func(e entity) string { return e.ID })
	s.now = func() time.Time { return now }
	return s, &now
}

func TestStale_BeforeFirstFill(t *testing.T) {
	s, _ := newTestStore(DefaultTTL)
	if !s.Stale() {
		t.Error("new store should be stale")
	}
}

func TestStale_AfterReplaceAll(t *testing.T) {
	s, _ := newTestStore(DefaultTTL)
	s.ReplaceAll([]entity{{ID: "a", Name: "Alpha"}})
	if s.Stale() {
		t.Error("freshly filled store should not be stale")
	}
}

func TestStale_AfterThresholdElapses(t *testing.T) {
	s, now := newTestStore(5 * time.Minute)
	s.ReplaceAll([]entity{{ID: "a", Name: "Alpha"}})

	*now = now.Add(5 * time.Minute)
	if s.Stale() {
		t.Error("store at exactly the threshold should still be fresh")
	}

	*now = now.Add(time.Second)
	if !s.Stale() {
		t.Error("store past the threshold should be stale")
	}
}

func TestReplaceAll_SwapsSnapshotWholesale(t *testing.T) {
	s, _ := newTestStore(DefaultTTL)
	s.ReplaceAll([]entity{{ID: "a", Name: "Alpha"}, {ID: "b", Name: "Beta"}})
	s.ReplaceAll([]entity{{ID: "b", Name: "Beta v2"}, {ID: "c", Name: "Gamma"}})

	if _, ok := s.Get("a"); ok {
		t.Error("id from previous snapshot should be gone after refill")
	}
	if got, ok := s.Get("b"); !ok || got.Name != "Beta v2" {
		t.Errorf("Get(b) = %+v, %v; want new snapshot's value", got, ok)
	}
	if _, ok := s.Get("c"); !ok {
		t.Error("id from new snapshot should be present")
	}
}

func TestValues_InsertionOrder(t *testing.T) {
	s, _ := newTestStore(DefaultTTL)
	s.ReplaceAll([]entity{{ID: "c"}, {ID: "a"}, {ID: "b"}})

	got := s.Values()
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("len(Values) = %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("Values[%d].ID = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestReplaceAll_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	s, _ := newTestStore(DefaultTTL)
	s.ReplaceAll([]entity{{ID: "a", Name: "first"}, {ID: "b"}, {ID: "a", Name: "second"}})

	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	got := s.Values()
	if got[0].ID != "a" || got[0].Name != "second" {
		t.Errorf("Values[0] = %+v, want a with the later value", got[0])
	}
}

func TestClear_ResetsToNeverFilled(t *testing.T) {
	s, _ := newTestStore(DefaultTTL)
	s.ReplaceAll([]entity{{ID: "a"}})
	s.Clear()

	if s.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", s.Len())
	}
	if !s.Stale() {
		t.Error("cleared store should report stale")
	}
}

func TestGet_NoImplicitRefill(t *testing.T) {
	s, now := newTestStore(time.Minute)
	s.ReplaceAll([]entity{{ID: "a", Name: "Alpha"}})
	*now = now.Add(time.Hour)

	// Stale, but Get still serves the old snapshot — refilling is the
	// caller's job.
	if got, ok := s.Get("a"); !ok || got.Name != "Alpha" {
		t.Errorf("Get on stale store = %+v, %v; want cached value", got, ok)
	}
}
