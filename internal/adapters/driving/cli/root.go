// Package cli implements the docqa command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/docqa-labs/docqa-cli/internal/core/ports/driving"
	"github.com/docqa-labs/docqa-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected by InitServices. Commands check for nil so the CLI
// fails with a clear message when a provider is not configured.
var (
	documentService driving.DocumentService
	answerService   driving.AnswerService
	settingsService driving.SettingsService
	watcherService  driving.Watcher
)

// ingestErr explains why upload and watch are unavailable, when they are.
var ingestErr error

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "docqa",
	Short: "Ask questions about your PDF documents",
	Long: `docqa indexes PDF documents into a vector store and answers
natural-language questions from the indexed content, citing the
document and page each answer came from.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose pipeline logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
