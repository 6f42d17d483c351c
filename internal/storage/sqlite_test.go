package storage

import (
	"os"
	"path/filepath"
	"testing"
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

func save(t *testing.T, store *Store, pack, level string, moves int) {
	t.Helper()
	if _, err := store.SaveCompletion(Completion{Pack: pack, LevelID: level, Moves: moves, Solution: "R", Player: "tester"}); err != nil {
		t.Fatalf("SaveCompletion() failed: %v", err)
	}
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

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "classic", "c01", 30)
	save(t, store, "classic", "c01", 12)
	save(t, store, "classic", "c01", 20)
	save(t, store, "classic", "c02", 7)
	save(t, store, "mechanisms", "c01", 1)

	entries, err := store.TopCompletions("classic", "c01", 10)
	if err != nil {
		t.Fatalf("TopCompletions() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 completions, got %d", len(entries))
	}

	// Fewest moves first
	if entries[0].Moves != 12 || entries[1].Moves != 20 || entries[2].Moves != 30 {
		t.Errorf("Completions not in expected order: %v", entries)
	}
	if entries[0].Player != "tester" || entries[0].Solution != "R" {
		t.Errorf("Fields not round-tripped: %+v", entries[0])
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}
}

func TestStoreTopCompletionsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		save(t, store, "p", "l", (i+1)*10)
	}

	entries, err := store.TopCompletions("p", "l", 3)
	if err != nil {
		t.Fatalf("TopCompletions() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("Expected 3 completions with limit, got %d", len(entries))
	}
	if entries[2].Moves != 30 {
		t.Errorf("Expected third best to be 30, got %d", entries[2].Moves)
	}
}

func TestStoreSaveRequiresIDs(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveCompletion(Completion{LevelID: "x", Moves: 1}); err == nil {
		t.Error("expected error for missing pack")
	}
	if _, err := store.SaveCompletion(Completion{Pack: "x", Moves: 1}); err == nil {
		t.Error("expected error for missing level id")
	}
}

func TestStoreBestMoves(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestMove("classic", "c01")
	if err != nil {
		t.Fatalf("BestMove() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for unsolved level, got %d", best)
	}

	save(t, store, "classic", "c01", 9)
	save(t, store, "classic", "c01", 4)
	save(t, store, "classic", "c02", 15)

	best, err = store.BestMove("classic", "c01")
	if err != nil {
		t.Fatalf("BestMove() failed: %v", err)
	}
	if best != 4 {
		t.Errorf("Expected best of 4, got %d", best)
	}

	all, err := store.BestMoves("classic")
	if err != nil {
		t.Fatalf("BestMoves() failed: %v", err)
	}
	if len(all) != 2 || all["c01"] != 4 || all["c02"] != 15 {
		t.Errorf("unexpected best moves: %v", all)
	}
}

func TestStorePackStats(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "classic", "c01", 10)
	save(t, store, "classic", "c01", 8)
	save(t, store, "classic", "c02", 5)
	save(t, store, "mechanisms", "m01", 3)

	stats, err := store.GetPackStats("classic")
	if err != nil {
		t.Fatalf("GetPackStats() failed: %v", err)
	}
	if stats.LevelsSolved != 2 {
		t.Errorf("LevelsSolved = %d, expected 2", stats.LevelsSolved)
	}
	if stats.Plays != 3 {
		t.Errorf("Plays = %d, expected 3", stats.Plays)
	}
	if stats.TotalMoves != 23 {
		t.Errorf("TotalMoves = %d, expected 23", stats.TotalMoves)
	}

	empty, err := store.GetPackStats("nothing")
	if err != nil {
		t.Fatalf("GetPackStats() failed: %v", err)
	}
	if empty.Plays != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("expected empty stats, got %+v", empty)
	}

	all, err := store.GetAllPackStats()
	if err != nil {
		t.Fatalf("GetAllPackStats() failed: %v", err)
	}
	if len(all) != 2 || all["mechanisms"].Plays != 1 {
		t.Errorf("unexpected all-pack stats: %v", all)
	}
}

func TestStoreClearPack(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "classic", "c01", 10)
	save(t, store, "classic", "c02", 20)
	save(t, store, "mechanisms", "m01", 30)

	if err := store.ClearPack("classic"); err != nil {
		t.Fatalf("ClearPack() failed: %v", err)
	}

	best, _ := store.BestMoves("classic")
	if len(best) != 0 {
		t.Errorf("Expected no classic records after clear, got %v", best)
	}

	other, _ := store.BestMoves("mechanisms")
	if len(other) != 1 {
		t.Errorf("mechanisms records should not be affected by clearing classic")
	}
}

func TestStoreNestedPath(t *testing.T) {
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
