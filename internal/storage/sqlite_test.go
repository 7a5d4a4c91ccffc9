package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

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

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "scores.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.cookies/scores.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".cookies", "scores.db")); err != nil {
		t.Errorf("database not created under HOME: %v", err)
	}
}

func TestStoreSaveAndTopScores(t *testing.T) {
	store := openTestStore(t)

	results := []GameResult{
		{GameID: "classic", Player: "ann", Score: 100, Moves: 30},
		{GameID: "classic", Player: "bob", Score: 50, Moves: 30},
		{GameID: "classic", Player: "cy", Score: 200, Moves: 30, BestChain: 4},
		{GameID: "blitz", Player: "ann", Score: 500, Moves: 15},
	}
	for _, r := range results {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	scores, err := store.TopScores("classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("TopScores() returned %d entries, want 3", len(scores))
	}
	if scores[0].BestChain != 4 {
		t.Errorf("scores[0].BestChain = %d, want 4", scores[0].BestChain)
	}
	wantScores := []int{200, 100, 50}
	wantPlayers := []string{"cy", "ann", "bob"}
	for i := range wantScores {
		if scores[i].Score != wantScores[i] || scores[i].Player != wantPlayers[i] {
			t.Errorf("scores[%d] = %d by %q, want %d by %q", i, scores[i].Score, scores[i].Player, wantScores[i], wantPlayers[i])
		}
		if scores[i].GameID != "classic" || scores[i].Moves != 30 {
			t.Errorf("scores[%d] = %+v", i, scores[i])
		}
		if _, err := uuid.Parse(scores[i].RunID); err != nil {
			t.Errorf("scores[%d].RunID = %q is not a uuid", i, scores[i].RunID)
		}
		if scores[i].CreatedAt.IsZero() {
			t.Errorf("scores[%d].CreatedAt is zero", i)
		}
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 20; i++ {
		if _, err := store.SaveResult(GameResult{GameID: "classic", Score: i*10}); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	scores, err := store.TopScores("classic", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 || scores[0].Score != 190 {
		t.Errorf("TopScores(5) = %d entries starting at %d, want 5 starting at 190", len(scores), scores[0].Score)
	}

	scores, _ = store.TopScores("classic", 0)
	if len(scores) != 10 {
		t.Errorf("TopScores(0) = %d entries, want default 10", len(scores))
	}

	all, err := store.AllScores("classic")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != 20 {
		t.Errorf("AllScores() = %d entries, want 20", len(all))
	}
}

func TestStoreDuplicateRunRejected(t *testing.T) {
	store := openTestStore(t)
	run := uuid.New()
	if _, err := store.SaveResult(GameResult{RunID: run, GameID: "classic", Score: 10}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if _, err := store.SaveResult(GameResult{RunID: run, GameID: "classic", Score: 10}); err == nil {
		t.Error("SaveResult() with a repeated run id should fail")
	}
	if _, err := store.SaveResult(GameResult{Score: 10}); err == nil {
		t.Error("SaveResult() without game id should fail")
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("grand")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() on empty table = %d, want 0", high)
	}

	for _, s := range []int{40, 90, 60} {
		_, _ = store.SaveResult(GameResult{GameID: "grand", Score: s})
	}
	if high, _ = store.HighScore("grand"); high != 90 {
		t.Errorf("HighScore() = %d, want 90", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	_, _ = store.SaveResult(GameResult{GameID: "classic", Score: 10})
	_, _ = store.SaveResult(GameResult{GameID: "classic", Score: 20})
	_, _ = store.SaveResult(GameResult{GameID: "blitz", Score: 30})

	n, err := store.ClearScores("classic")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("ClearScores() removed %d rows, want 2", n)
	}
	if scores, _ := store.TopScores("classic", 10); len(scores) != 0 {
		t.Errorf("classic still has %d scores", len(scores))
	}
	if scores, _ := store.TopScores("blitz", 10); len(scores) != 1 {
		t.Errorf("blitz has %d scores, want 1", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("classic")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	for i, s := range []int{30, 60, 90} {
		_, _ = store.SaveResult(GameResult{GameID: "classic", Score: s, BestChain: 3 - i})
	}
	_, _ = store.SaveResult(GameResult{GameID: "blitz", Score: 15})

	stats, err := store.GetGameStats("classic")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 90 || stats.TotalScore != 180 || stats.AvgScore != 60 || stats.BestChain != 3 {
		t.Errorf("stats = %+v", stats)
	}
	if time.Since(stats.LastPlayed) > 24*time.Hour {
		t.Errorf("LastPlayed = %v, want recent", stats.LastPlayed)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["blitz"].GamesCount != 1 {
		t.Errorf("GetAllGamesStats() = %v", all)
	}
}
