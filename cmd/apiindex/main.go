// Command apiindex is a thin CLI front-end over the extraction, formatting,
// usage-analysis, and diagnostics pipeline (SPEC_FULL.md C15).
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		sourcePath string
		language   string
		logLevel   string
	)

	root := &cobra.Command{
		Use:     "apiindex",
		Short:   "Extracts and renders a package's public API surface",
		Version: "0.1.0",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(logLevel)
		},
	}

	root.PersistentFlags().StringVarP(&sourcePath, "source", "s", ".", "source tree to extract")
	root.PersistentFlags().StringVarP(&language, "language", "l", "", "go|java|python|typescript|dotnet (required)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug|info|warn|error")

	root.AddCommand(
		newExtractCommand(&sourcePath, &language),
		newFormatCommand(&sourcePath, &language),
		newUsageCommand(&sourcePath, &language),
		newDiagnosticsCommand(&sourcePath, &language),
	)

	return root
}

func configureLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
