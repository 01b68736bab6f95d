// candysoda is a TUI match-3 puzzle game played in the terminal.
//
// Usage:
//
//	candysoda list              - List available game modes
//	candysoda play <mode>       - Play a game mode
//	candysoda menu              - Start menu to pick modes interactively
//	candysoda serve             - Start SSH server for remote play
//	candysoda scores [mode]     - Show high scores, or a summary of all modes
//	candysoda config            - Print the default configuration
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 30)
//	--seed <value>         - Set RNG seed for reproducible boards
//	--db <path>            - Set database path (default: ~/.candysoda/scores.db)
//	--theme <name>         - Set menu color theme (default, neon, pastel, mono)
//	--config <path>        - Load a custom game config YAML
//	--difficulty <preset>  - Apply a difficulty preset (easy, normal, hard, fixed)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lausiv7/candysoda-sub007/internal/platform/tui"

	// Import game modes to register them
	_ "github.com/lausiv7/candysoda-sub007/internal/games/match3"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagTheme      string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "candysoda",
	Short: "Candy Soda - A match-3 puzzle in your terminal",
	Long: `Candy Soda is a terminal match-3 puzzle game. Swap adjacent candies
to line up three or more of a kind, chase cascades, and beat the score
target before your moves run out.

Available commands:
  list     - Show all available game modes
  play     - Play a mode directly
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Print the default configuration

Examples:
  candysoda list
  candysoda play match3
  candysoda menu
  candysoda serve --ssh :2222
  candysoda scores match3`,
}

// applyTheme installs the theme picked by --theme before any menus render.
func applyTheme() {
	theme, ok := tui.CandyThemeByName(flagTheme)
	if !ok {
		fmt.Fprintf(os.Stderr, "Warning: unknown theme %q, using default\n", flagTheme)
		return
	}
	tui.SetCandyTheme(theme)
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.candysoda/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "default", "Menu color theme: default, neon, pastel, mono")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
