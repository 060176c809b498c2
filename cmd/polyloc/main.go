// Package main provides the entry point for the polyloc CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/polyloc/polyloc/cmd/polyloc/commands"
)

var (
	verbose bool
	quiet   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "polyloc",
		Short: "polyloc - polyglot source line counter and language detector",
		Long: `polyloc counts and classifies source lines across a directory tree.

Commands:
  summary       Per-language line-count totals and a COCOMO cost estimate
  detect        Report the detected language of each file, with the cascade
                stage that decided it
  annotate      Reprint one source file with a per-line classification
  individual    Per-file totals instead of per-language
  licenses      Report the detected license header per file
  gestalt       Report inferred platform/tool facts per directory
  raw-entities  Emit entity-mode spans (comments, strings, code) per file`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	rootCmd.AddCommand(commands.NewSummaryCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewAnnotateCommand())
	rootCmd.AddCommand(commands.NewIndividualCommand())
	rootCmd.AddCommand(commands.NewLicensesCommand())
	rootCmd.AddCommand(commands.NewGestaltCommand())
	rootCmd.AddCommand(commands.NewRawEntitiesCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	cobra.OnInitialize(func() {
		slog.SetDefault(commands.NewLogger(verbose, quiet))
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
