package storage

import (
	"os"
	"path/filepath"
	"testing"
)

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
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save some scores
	_, err = store.SaveScore("match3", 1000)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("match3", 500)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("match3", 2000)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Different game
	_, err = store.SaveScore("match3_endless", 5000)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Retrieve top scores for classic
	scores, err := store.TopScores("match3", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 2000 {
		t.Errorf("Expected highest score to be 2000, got %d", scores[0].Score)
	}
	if scores[1].Score != 1000 {
		t.Errorf("Expected second score to be 1000, got %d", scores[1].Score)
	}
	if scores[2].Score != 500 {
		t.Errorf("Expected third score to be 500, got %d", scores[2].Score)
	}

	// Retrieve top scores for endless
	endlessScores, err := store.TopScores("match3_endless", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(endlessScores) != 1 {
		t.Errorf("Expected 1 endless score, got %d", len(endlessScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No scores yet
	high, err := store.HighScore("match3")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	// Add scores
	store.SaveScore("match3", 1000)
	store.SaveScore("match3", 3000)
	store.SaveScore("match3", 2000)

	high, err = store.HighScore("match3")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 3000 {
		t.Errorf("Expected high score of 3000, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveScore("match3", 1000)
	store.SaveScore("match3", 2000)
	store.SaveScore("match3_endless", 3000)

	// Clear only classic scores
	err = store.ClearScores("match3")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	// Classic should be empty
	classicScores, _ := store.TopScores("match3", 10)
	if len(classicScores) != 0 {
		t.Errorf("Expected 0 classic scores after clear, got %d", len(classicScores))
	}

	// Endless should still have scores
	endlessScores, _ := store.TopScores("match3_endless", 10)
	if len(endlessScores) != 1 {
		t.Errorf("Endless scores should not be affected by clearing classic")
	}
}

func TestStoreAllScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Add many scores
	for i := 0; i < 20; i++ {
		store.SaveScore("test", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreSavedGameRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No save yet
	loaded, err := store.LoadGame("match3")
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if loaded != nil {
		t.Errorf("Expected no saved game, got %+v", loaded)
	}

	save := SavedGame{
		GameID:    "match3",
		Width:     3,
		Height:    3,
		Grid:      "RGBRBGBRG",
		Score:     1200,
		MovesUsed: 7,
	}
	if err := store.SaveGame(save); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}

	loaded, err = store.LoadGame("match3")
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected saved game, got nil")
	}

	if loaded.Grid != save.Grid {
		t.Errorf("Grid = %q, want %q", loaded.Grid, save.Grid)
	}
	if loaded.Width != 3 || loaded.Height != 3 {
		t.Errorf("Dimensions = %dx%d, want 3x3", loaded.Width, loaded.Height)
	}
	if loaded.Score != 1200 {
		t.Errorf("Score = %d, want 1200", loaded.Score)
	}
	if loaded.MovesUsed != 7 {
		t.Errorf("MovesUsed = %d, want 7", loaded.MovesUsed)
	}
}

func TestStoreSavedGameReplaces(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	first := SavedGame{GameID: "match3", Width: 3, Height: 3, Grid: "RGBRBGBRG", Score: 100, MovesUsed: 1}
	if err := store.SaveGame(first); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}

	// Saving again for the same game must replace, not accumulate
	second := SavedGame{GameID: "match3", Width: 3, Height: 3, Grid: "RGBRBGRBG", Score: 9075, MovesUsed: 2}
	if err := store.SaveGame(second); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}

	loaded, err := store.LoadGame("match3")
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected saved game, got nil")
	}
	if loaded.Grid != second.Grid || loaded.Score != 9075 {
		t.Errorf("Loaded save = %+v, want the replacement", loaded)
	}
}

func TestStoreDeleteSavedGame(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Deleting a missing save is fine
	if err := store.DeleteSavedGame("match3"); err != nil {
		t.Fatalf("DeleteSavedGame() on missing save failed: %v", err)
	}

	save := SavedGame{GameID: "match3", Width: 3, Height: 3, Grid: "RGBRBGBRG"}
	if err := store.SaveGame(save); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}

	if err := store.DeleteSavedGame("match3"); err != nil {
		t.Fatalf("DeleteSavedGame() failed: %v", err)
	}

	loaded, err := store.LoadGame("match3")
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if loaded != nil {
		t.Errorf("Expected save to be gone, got %+v", loaded)
	}
}

func TestStoreGameStats(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveScore("match3", 1000)
	store.SaveScore("match3", 2000)
	store.SaveScore("match3", 3000)

	stats, err := store.GetGameStats("match3")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}

	if stats.GamesCount != 3 {
		t.Errorf("GamesCount = %d, want 3", stats.GamesCount)
	}
	if stats.HighScore != 3000 {
		t.Errorf("HighScore = %d, want 3000", stats.HighScore)
	}
	if stats.AvgScore != 2000 {
		t.Errorf("AvgScore = %v, want 2000", stats.AvgScore)
	}
	if stats.TotalScore != 6000 {
		t.Errorf("TotalScore = %d, want 6000", stats.TotalScore)
	}
}

func TestStoreAllGamesStats(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveScore("match3", 500)
	store.SaveScore("match3", 1500)
	store.SaveScore("match3_endless", 9000)

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}

	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 modes, got %d", len(all))
	}

	classic, ok := all["match3"]
	if !ok {
		t.Fatal("Missing stats for match3")
	}
	if classic.GamesCount != 2 || classic.HighScore != 1500 {
		t.Errorf("match3 stats = %d games, best %d; want 2 games, best 1500",
			classic.GamesCount, classic.HighScore)
	}

	endless, ok := all["match3_endless"]
	if !ok {
		t.Fatal("Missing stats for match3_endless")
	}
	if endless.GamesCount != 1 || endless.HighScore != 9000 {
		t.Errorf("match3_endless stats = %d games, best %d; want 1 game, best 9000",
			endless.GamesCount, endless.HighScore)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Test that ~ expansion works (we won't actually write to home)
	// Just verify the function doesn't crash
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
