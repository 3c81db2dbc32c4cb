package history

import (
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndSeen(t *testing.T) {
	s := testStore(t)

	e := Entry{ItemID: "a1", Title: "Opening night", Event: "Summer Fest", ViewedAt: time.Now()}
	if err := s.Record(e); err != nil {
		t.Fatalf("Record: %v", err)
	}

	seen, err := s.Seen([]string{"a1", "b2"})
	if err != nil {
		t.Fatalf("Seen: %v", err)
	}
	if !seen["a1"] {
		t.Error("a1 should be seen")
	}
	if seen["b2"] {
		t.Error("b2 should not be seen")
	}
}

func TestRecordTwiceRefreshesTimestamp(t *testing.T) {
	s := testStore(t)

	first := time.Now().Add(-time.Hour)
	if err := s.Record(Entry{ItemID: "a1", ViewedAt: first}); err != nil {
		t.Fatal(err)
	}
	second := time.Now()
	if err := s.Record(Entry{ItemID: "a1", ViewedAt: second}); err != nil {
		t.Fatal(err)
	}

	entries, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1 (upsert, not insert)", len(entries))
	}
	if entries[0].ViewedAt.Unix() != second.Unix() {
		t.Errorf("ViewedAt = %v, want refreshed %v", entries[0].ViewedAt, second)
	}
}

func TestRecentOrder(t *testing.T) {
	s := testStore(t)

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"a", "b", "c"} {
		if err := s.Record(Entry{ItemID: id, ViewedAt: base.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].ItemID != "c" || entries[1].ItemID != "b" {
		t.Errorf("order = %s, %s; want c, b", entries[0].ItemID, entries[1].ItemID)
	}
}

func TestSeenEmptyInput(t *testing.T) {
	s := testStore(t)

	seen, err := s.Seen(nil)
	if err != nil {
		t.Fatalf("Seen(nil): %v", err)
	}
	if len(seen) != 0 {
		t.Errorf("seen = %v, want empty", seen)
	}
}
