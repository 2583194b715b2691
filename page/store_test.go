package page

import (
	"testing"
	"time"
)

func TestStoreCreateAndGet(t *testing.T) {
	st := NewStore()
	s := st.Create()

	got, ok := st.Get(s.ID)
	if !ok || got != s {
		t.Fatalf("Get(%q) = %v, %v", s.ID, got, ok)
	}
	if _, ok := st.Get("not-a-uuid"); ok {
		t.Error("expected lookup of malformed id to fail")
	}
	if _, ok := st.Get("6ba7b810-9dad-11d1-80b4-00c04fd430c8"); ok {
		t.Error("expected lookup of unknown id to fail")
	}
}

func TestStoreSweep(t *testing.T) {
	now := time.Date(2024, 5, 27, 12, 0, 0, 0, time.UTC)
	st := NewStore()
	st.now = func() time.Time { return now }

	old := st.Create()
	now = now.Add(20 * time.Minute)
	fresh := st.Create()

	if removed := st.Sweep(30 * time.Minute); removed != 0 {
		t.Fatalf("expected nothing swept yet, removed %d", removed)
	}

	now = now.Add(15 * time.Minute)
	if removed := st.Sweep(30 * time.Minute); removed != 1 {
		t.Fatalf("expected 1 session swept, removed %d", removed)
	}
	if _, ok := st.Get(old.ID); ok {
		t.Error("expected old session to be gone")
	}
	if _, ok := st.Get(fresh.ID); !ok {
		t.Error("expected fresh session to survive")
	}
	if st.Len() != 1 {
		t.Errorf("Len() = %d, want 1", st.Len())
	}
}

func TestStoreGetKeepsSessionAlive(t *testing.T) {
	now := time.Date(2024, 5, 27, 12, 0, 0, 0, time.UTC)
	st := NewStore()
	st.now = func() time.Time { return now }

	s := st.Create()
	now = now.Add(25 * time.Minute)
	st.Get(s.ID)
	now = now.Add(25 * time.Minute)

	if removed := st.Sweep(30 * time.Minute); removed != 0 {
		t.Errorf("recently seen session was swept")
	}
}
