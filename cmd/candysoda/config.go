package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lausiv7/candysoda-sub007/internal/config"
)

var flagConfigInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default game configuration",
	Long: `Print the embedded default YAML configuration.

Redirect the output to start customizing:
  candysoda config > ~/.candysoda/configs/match3.yaml

Or write it there directly:
  candysoda config --init`,
	Run: func(cmd *cobra.Command, args []string) {
		data := config.GetDefaultYAML("match3")

		if !flagConfigInit {
			os.Stdout.Write(data) //nolint:errcheck // Best-effort print
			return
		}

		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot determine home directory: %v\n", err)
			os.Exit(1)
		}
		dir := filepath.Join(home, ".candysoda", "configs")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot create %s: %v\n", dir, err)
			os.Exit(1)
		}
		path := filepath.Join(dir, "match3.yaml")
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(os.Stderr, "%s already exists, not overwriting\n", path)
			os.Exit(1)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot write %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
	},
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigInit, "init", false, "Write the default config to ~/.candysoda/configs/")
}
