package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lausiv7/candysoda-sub007/internal/core"
	"github.com/lausiv7/candysoda-sub007/internal/games/match3"
	"github.com/lausiv7/candysoda-sub007/internal/platform/tui"
	"github.com/lausiv7/candysoda-sub007/internal/registry"
	"github.com/lausiv7/candysoda-sub007/internal/storage"
)

var (
	flagLayout string
	flagResume bool
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a game mode",
	Long: `Start playing the specified game mode.

Controls:
  Arrows/WASD - Move cursor (or swap when a candy is selected)
  Space/Enter - Select the candy under the cursor
  H           - Show a hint
  P           - Pause
  B/Esc       - Deselect
  R           - Restart (after game over)
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - 5 candy colors and a generous move budget
  normal - Standard board
  hard   - Tighter move budget and slower hints
  fixed  - No endless progression, stays at config's initial level

Examples:
  candysoda play match3
  candysoda play match3 --difficulty easy
  candysoda play match3 --layout pillars
  candysoda play match3 --resume
  candysoda play match3_endless --seed 42
  candysoda play match3 --theme neon
  candysoda play match3 --config ./my-board.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLayout, "layout", "", "Obstacle layout name (open, pillars, corners, ...)")
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Resume the saved game for this mode")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]
	applyTheme()

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'candysoda list' to see available modes.")
		os.Exit(1)
	}

	// Get terminal size early for mode selector
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Set config path and difficulty before creation
	match3.SetConfigPath(flagConfig)
	match3.SetDifficultyPreset(flagDifficulty)
	if flagLayout != "" {
		match3.SetLayout(flagLayout)
	}

	// The base mode shows the mode/layout selector; the endless ID plays directly
	if gameID == "match3" && !flagResume {
		selection, updatedCfg, selErr := tui.RunMatch3ModeSelector(cfg)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}
		cfg = updatedCfg

		// User pressed back or quit
		if selection == nil {
			return
		}

		// Apply selection
		if selection.Mode == tui.Match3ModeEndless {
			gameID = "match3_endless"
		}
		if selection.Layout != "" {
			match3.SetLayout(selection.Layout)
		}
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// Queue the saved board so the next reset restores it
	if flagResume {
		if store == nil {
			fmt.Fprintln(os.Stderr, "Error: --resume requires the scores database")
			os.Exit(1)
		}
		saved, loadErr := store.LoadGame(gameID)
		if loadErr != nil {
			fmt.Fprintf(os.Stderr, "Error loading saved game: %v\n", loadErr)
			store.Close()
			os.Exit(1)
		}
		if saved == nil {
			fmt.Fprintf(os.Stderr, "No saved game for %q. Start one with 'candysoda play %s'.\n", gameID, gameID)
			store.Close()
			return
		}
		match3.SetResume(match3.Snapshot{
			Mode:       saved.GameID,
			Width:      saved.Width,
			Height:     saved.Height,
			Grid:       saved.Grid,
			Score:      saved.Score,
			MovesUsed:  saved.MovesUsed,
			InProgress: true,
		})
	}

	// Run the game
	runErr := tui.Run(game, store, cfg)

	// Persist or clear the suspended board
	if store != nil {
		saveGameState(store, game)
	}

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// saveGameState autosaves an in-progress board, or clears the stale save
// once the run has ended.
func saveGameState(store *storage.Store, game registry.Game) {
	m3, ok := game.(*match3.Game)
	if !ok {
		return
	}

	snap := m3.Snapshot()
	if snap.Mode == "" {
		return
	}

	if snap.InProgress {
		//nolint:errcheck // Best-effort save
		store.SaveGame(storage.SavedGame{
			GameID:    snap.Mode,
			Width:     snap.Width,
			Height:    snap.Height,
			Grid:      snap.Grid,
			Score:     snap.Score,
			MovesUsed: snap.MovesUsed,
		})
		return
	}

	//nolint:errcheck // Best-effort cleanup
	store.DeleteSavedGame(snap.Mode)
}
