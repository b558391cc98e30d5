package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// openTestStore opens a store in a temp dir with a clock that advances
// one minute on every read.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	clock := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsJournal(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, err := store.StartSession("alice", 4)
	if err != nil {
		t.Fatalf("StartSession() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	sess, err := store.SessionByID(id)
	if err != nil {
		t.Fatalf("SessionByID() failed: %v", err)
	}
	if sess == nil || sess.Player != "alice" || sess.StartMap != 4 {
		t.Errorf("session not persisted: %+v", sess)
	}
}

func TestStoreSessionLifecycle(t *testing.T) {
	store := openTestStore(t)

	id, err := store.StartSession("bob", 4)
	if err != nil {
		t.Fatalf("StartSession() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("expected a UUID session id, got %q", id)
	}

	for _, m := range []int{2, 4, 2, 3} {
		if err := store.RecordVisit(id, m); err != nil {
			t.Fatalf("RecordVisit(%d) failed: %v", m, err)
		}
	}

	open, err := store.SessionByID(id)
	if err != nil {
		t.Fatalf("SessionByID() failed: %v", err)
	}
	if !open.EndedAt.IsZero() || open.Duration() != 0 {
		t.Errorf("open session should have no end: %+v", open)
	}

	counters := Counters{Ticks: 900, Moves: 120, Warps: 4, Failures: 1, Respawns: 2}
	if err := store.EndSession(id, counters); err != nil {
		t.Fatalf("EndSession() failed: %v", err)
	}

	sess, err := store.SessionByID(id)
	if err != nil {
		t.Fatalf("SessionByID() failed: %v", err)
	}
	if sess.Counters != counters {
		t.Errorf("counters = %+v, expected %+v", sess.Counters, counters)
	}
	if sess.MapsVisited != 3 {
		t.Errorf("MapsVisited = %d, expected 3", sess.MapsVisited)
	}
	// Start, four visits, end: one minute per clock read.
	if sess.Duration() != 5*time.Minute {
		t.Errorf("Duration() = %s, expected 5m", sess.Duration())
	}

	visits, err := store.Visits(id)
	if err != nil {
		t.Fatalf("Visits() failed: %v", err)
	}
	want := []int{4, 2, 4, 2, 3}
	if len(visits) != len(want) {
		t.Fatalf("expected %d visits, got %d", len(want), len(visits))
	}
	for i, v := range visits {
		if v.MapID != want[i] {
			t.Errorf("visit %d: map %d, expected %d", i, v.MapID, want[i])
		}
		if i > 0 && !v.EnteredAt.After(visits[i-1].EnteredAt) {
			t.Errorf("visit %d is not after visit %d", i, i-1)
		}
	}
}

func TestStoreUnknownSession(t *testing.T) {
	store := openTestStore(t)

	if err := store.RecordVisit("nope", 1); !errors.Is(err, ErrUnknownSession) {
		t.Errorf("RecordVisit() error = %v, expected ErrUnknownSession", err)
	}
	if err := store.EndSession("nope", Counters{}); !errors.Is(err, ErrUnknownSession) {
		t.Errorf("EndSession() error = %v, expected ErrUnknownSession", err)
	}

	sess, err := store.SessionByID("nope")
	if err != nil || sess != nil {
		t.Errorf("SessionByID() = %v, %v; expected nil, nil", sess, err)
	}
}

func TestStoreRecentSessionsLimit(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for i := 0; i < 5; i++ {
		id, err := store.StartSession("p", i+1)
		if err != nil {
			t.Fatalf("StartSession() failed: %v", err)
		}
		ids = append(ids, id)
	}

	sessions, err := store.RecentSessions(3)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("Expected 3 sessions with limit, got %d", len(sessions))
	}

	// Newest first
	for i, sess := range sessions {
		if sess.ID != ids[4-i] {
			t.Errorf("session %d = %s, expected %s", i, sess.ID, ids[4-i])
		}
		if sess.MapsVisited != 1 {
			t.Errorf("session %d visited %d maps, expected 1", i, sess.MapsVisited)
		}
	}

	all, err := store.RecentSessions(0)
	if err != nil {
		t.Fatalf("RecentSessions(0) failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Expected default limit to return all 5 sessions, got %d", len(all))
	}
}

func TestStoreMapStats(t *testing.T) {
	store := openTestStore(t)

	a, _ := store.StartSession("a", 4)
	b, _ := store.StartSession("b", 4)
	store.RecordVisit(a, 2)
	store.RecordVisit(a, 4)
	store.RecordVisit(b, 1)

	stats, err := store.AllMapStats()
	if err != nil {
		t.Fatalf("AllMapStats() failed: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("expected stats for 3 maps, got %d", len(stats))
	}

	top := stats[0]
	if top.MapID != 4 || top.Visits != 3 || top.Sessions != 2 {
		t.Errorf("most visited = %+v, expected map 4 with 3 visits in 2 sessions", top)
	}
	if stats[1].MapID != 1 || stats[2].MapID != 2 {
		t.Errorf("ties should be ordered by map id: %+v", stats)
	}
	if top.LastVisit.IsZero() {
		t.Error("LastVisit should be set")
	}
	if !stats[1].LastVisit.After(top.LastVisit) {
		t.Error("map 1 was entered after the last visit to map 4")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Nested directories are created on demand.
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestParseTime(t *testing.T) {
	want := time.Date(2026, 3, 4, 5, 6, 7, 500, time.UTC)
	for _, v := range []any{
		want,
		"2026-03-04 05:06:07.0000005+00:00",
		[]byte("2026-03-04T05:06:07.0000005Z"),
	} {
		if got := parseTime(v); !got.Equal(want) {
			t.Errorf("parseTime(%v) = %v, expected %v", v, got, want)
		}
	}
	if !parseTime(nil).IsZero() {
		t.Error("NULL should parse to the zero time")
	}
}
