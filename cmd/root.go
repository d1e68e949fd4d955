// Package cmd holds the slidecast command tree.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/slidecast/slidecast/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "slidecast",
	Short: "Turn PDFs into narrated slide videos",
	Long: `slidecast extracts the structure of a PDF, ranks its sections,
summarizes them into slides, and renders a narrated video of the deck.`,
	SilenceUsage: true,
}

// Execute runs the command tree; it is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}
