package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-dance/internal/core"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func result(difficulty string, score int) core.GameState {
	return core.GameState{
		Score:      score,
		GameOver:   true,
		Difficulty: difficulty,
		MaxCombo:   score / 100,
		Perfect:    score / 100,
		Good:       1,
		Miss:       2,
		Accuracy:   75.5,
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTest(t)

	for _, st := range []core.GameState{
		result("easy", 100),
		result("easy", 50),
		result("easy", 200),
		result("normal", 500),
	} {
		if _, err := store.SaveResult(st); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	scores, err := store.TopScores("easy", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	top := scores[0]
	if top.Difficulty != "easy" || top.MaxCombo != 2 || top.Perfect != 2 ||
		top.Good != 1 || top.Miss != 2 || top.Accuracy != 75.5 {
		t.Errorf("breakdown not persisted: %+v", top)
	}
	if top.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	normal, err := store.TopScores("normal", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(normal) != 1 {
		t.Errorf("Expected 1 normal score, got %d", len(normal))
	}
}

func TestStoreSaveRequiresDifficulty(t *testing.T) {
	store := openTest(t)
	if _, err := store.SaveResult(core.GameState{Score: 10}); err == nil {
		t.Error("expected error for a result without difficulty")
	}
}

func TestStoreTopScoresLimitAndTies(t *testing.T) {
	store := openTest(t)

	for i := 0; i < 5; i++ {
		store.SaveResult(result("easy", (i+1)*100))
	}
	tie := result("easy", 500)
	tie.Accuracy = 99
	store.SaveResult(tie)

	scores, err := store.TopScores("easy", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Accuracy != 99 || scores[1].Score != 500 || scores[2].Score != 400 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	if def, _ := store.TopScores("easy", 0); len(def) != 6 {
		t.Errorf("non-positive limit should default to 10, got %d rows", len(def))
	}
}

func TestStoreRecentScores(t *testing.T) {
	store := openTest(t)
	store.SaveResult(result("easy", 100))
	store.SaveResult(result("normal", 300))
	store.SaveResult(result("easy", 200))

	recent, err := store.RecentScores(2)
	if err != nil {
		t.Fatalf("RecentScores() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Score != 200 || recent[1].Difficulty != "normal" {
		t.Errorf("unexpected recent scores: %+v", recent)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTest(t)

	high, err := store.HighScore("easy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty difficulty, got %d", high)
	}

	store.SaveResult(result("easy", 100))
	store.SaveResult(result("easy", 300))
	store.SaveResult(result("normal", 900))

	high, err = store.HighScore("easy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTest(t)
	store.SaveResult(result("easy", 100))
	store.SaveResult(result("easy", 200))
	store.SaveResult(result("normal", 300))

	if err := store.ClearScores("easy"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if easy, _ := store.TopScores("easy", 10); len(easy) != 0 {
		t.Errorf("Expected 0 easy scores after clear, got %d", len(easy))
	}
	if normal, _ := store.TopScores("normal", 10); len(normal) != 1 {
		t.Error("Normal scores should not be affected by clearing easy")
	}
}

func TestStoreGetStats(t *testing.T) {
	store := openTest(t)

	empty, err := store.GetStats("normal")
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if empty.Sessions != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unexpected stats for empty difficulty: %+v", empty)
	}

	store.SaveResult(result("normal", 100))
	store.SaveResult(result("normal", 300))

	stats, err := store.GetStats("normal")
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Sessions != 2 || stats.HighScore != 300 || stats.AvgScore != 200 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.BestCombo != 3 || stats.TotalPerfect != 4 || stats.AvgAccuracy != 75.5 {
		t.Errorf("unexpected breakdown stats: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
