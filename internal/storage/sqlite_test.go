package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, err := store.StartSession("orchard", 9)
	if err != nil {
		t.Fatalf("StartSession() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	rec, err := store.Session(id)
	if err != nil {
		t.Fatalf("Session() failed: %v", err)
	}
	if rec.Seed != 9 || rec.Level != "orchard" {
		t.Errorf("got %+v", rec)
	}
}

func TestSessionLifecycle(t *testing.T) {
	store := openTestStore(t)

	id, err := store.StartSession("vineyard", 1234)
	if err != nil {
		t.Fatalf("StartSession() failed: %v", err)
	}

	rec, err := store.Session(id)
	if err != nil {
		t.Fatalf("Session() failed: %v", err)
	}
	if rec.ID != id {
		t.Errorf("ID = %v, want %v", rec.ID, id)
	}
	if rec.Finished() {
		t.Error("new session reported as finished")
	}
	if rec.StartedAt.IsZero() {
		t.Error("StartedAt not set")
	}

	board := "AAAAAAAA\nPPPPPPPP"
	if err := store.FinishSession(id, 420, 15, true, board); err != nil {
		t.Fatalf("FinishSession() failed: %v", err)
	}

	rec, err = store.Session(id)
	if err != nil {
		t.Fatalf("Session() failed: %v", err)
	}
	if !rec.Finished() {
		t.Error("finished session reported as unfinished")
	}
	if rec.Score != 420 || rec.MovesUsed != 15 || !rec.Won || rec.FinalBoard != board {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestRecordSwapsInOrder(t *testing.T) {
	store := openTestStore(t)

	id, err := store.StartSession("orchard", 1)
	if err != nil {
		t.Fatalf("StartSession() failed: %v", err)
	}

	want := []SwapRecord{
		{ARow: 0, ACol: 0, BRow: 0, BCol: 1, Accepted: false},
		{ARow: 3, ACol: 4, BRow: 4, BCol: 4, Accepted: true},
		{ARow: 7, ACol: 6, BRow: 7, BCol: 7, Accepted: true},
	}
	for i, sw := range want {
		seq, err := store.RecordSwap(id, sw)
		if err != nil {
			t.Fatalf("RecordSwap() failed: %v", err)
		}
		if seq != i {
			t.Errorf("seq = %d, want %d", seq, i)
		}
	}

	// Swaps of another session must not leak in.
	other, _ := store.StartSession("orchard", 2)
	if _, err := store.RecordSwap(other, SwapRecord{ARow: 1, BRow: 2, Accepted: true}); err != nil {
		t.Fatalf("RecordSwap() failed: %v", err)
	}

	got, err := store.Swaps(id)
	if err != nil {
		t.Fatalf("Swaps() failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d swaps, want %d", len(got), len(want))
	}
	for i := range want {
		want[i].Seq = i
		if got[i] != want[i] {
			t.Errorf("swap %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestUnknownSession(t *testing.T) {
	store := openTestStore(t)
	missing := uuid.New()

	tests := []struct {
		name string
		fn   func() error
	}{
		{"Session", func() error { _, err := store.Session(missing); return err }},
		{"RecordSwap", func() error { _, err := store.RecordSwap(missing, SwapRecord{}); return err }},
		{"FinishSession", func() error { return store.FinishSession(missing, 0, 0, false, "") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, ErrSessionNotFound) {
				t.Errorf("err = %v, want ErrSessionNotFound", err)
			}
		})
	}
}

func TestRecentSessions(t *testing.T) {
	store := openTestStore(t)

	var ids []uuid.UUID
	for seed := int64(0); seed < 5; seed++ {
		id, err := store.StartSession("orchard", seed)
		if err != nil {
			t.Fatalf("StartSession() failed: %v", err)
		}
		ids = append(ids, id)
	}

	got, err := store.RecentSessions(3)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d sessions, want 3", len(got))
	}
	// Newest first.
	if got[0].ID != ids[4] || got[2].ID != ids[2] {
		t.Errorf("unexpected order: %v %v %v", got[0].Seed, got[1].Seed, got[2].Seed)
	}
}

func TestAllLevelStats(t *testing.T) {
	store := openTestStore(t)

	finish := func(level string, score int, won bool) {
		t.Helper()
		id, err := store.StartSession(level, 0)
		if err != nil {
			t.Fatalf("StartSession() failed: %v", err)
		}
		if err := store.FinishSession(id, score, 15, won, ""); err != nil {
			t.Fatalf("FinishSession() failed: %v", err)
		}
	}
	finish("orchard", 100, false)
	finish("orchard", 300, true)
	finish("vineyard", 50, false)
	// Unfinished sessions are not counted.
	if _, err := store.StartSession("orchard", 1); err != nil {
		t.Fatalf("StartSession() failed: %v", err)
	}

	stats, err := store.AllLevelStats()
	if err != nil {
		t.Fatalf("AllLevelStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("got %d levels, want 2", len(stats))
	}

	o := stats["orchard"]
	if o.Sessions != 2 || o.Wins != 1 || o.BestScore != 300 || o.AvgScore != 200 {
		t.Errorf("orchard stats = %+v", o)
	}
	if v := stats["vineyard"]; v.Sessions != 1 || v.Wins != 0 || v.BestScore != 50 {
		t.Errorf("vineyard stats = %+v", v)
	}
}
