package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lausiv7/candysoda-sub007/internal/registry"
	"github.com/lausiv7/candysoda-sub007/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a game mode",
	Long: `Display the top 10 high scores for the specified mode,
or a per-mode summary when no mode is given.

Examples:
  candysoda scores
  candysoda scores match3
  candysoda scores match3_endless`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		runScoresSummary()
		return
	}
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'candysoda list' to see available modes.")
		os.Exit(1)
	}

	// Get game title
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}

	// Get top scores
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Display scores
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'candysoda play %s' to set the first high score!\n", gameID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	// Print scores
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	// Show high score
	fmt.Println()
	if len(scores) > 0 {
		highScore, err := store.HighScore(gameID)
		if err == nil {
			fmt.Printf("Best: %d\n", highScore)
		}
	}
}

// runScoresSummary prints aggregate statistics for every played mode.
func runScoresSummary() {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	stats, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	if len(stats) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'candysoda play match3' to set the first high score!")
		return
	}

	fmt.Println("Score Summary")
	fmt.Println()
	fmt.Printf("  %-20s  %-6s  %-8s  %-8s  %s\n", "Mode", "Games", "Best", "Avg", "Last Played")
	fmt.Printf("  %-20s  %-6s  %-8s  %-8s  %s\n", "----", "-----", "----", "---", "-----------")

	// Registry order keeps the listing stable
	for _, info := range registry.List() {
		st, ok := stats[info.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-20s  %-6d  %-8d  %-8.0f  %s\n",
			info.Title, st.GamesCount, st.HighScore, st.AvgScore,
			st.LastPlayed.Format("2006-01-02 15:04"))
	}
}
