package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jyotsnat2004/doclens/internal/config"
)

var version = "0.3.0"

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "doclens",
	Short: "Document outline extraction and persona-driven relevance ranking",
	Long: `doclens extracts leveled heading outlines from documents (PDF, DOCX,
Markdown, HTML, plain text) and ranks sections and passages across a
document collection by relevance to a persona and their task.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("doclens %s\n", version))
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches . and $HOME/.doclens)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and builds the process logger. Commands call
// it from their RunE so flag parsing has already happened.
func setup() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return cfg, log, nil
}
