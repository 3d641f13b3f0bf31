// Package cli implements the formpilot command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/formpilot/formpilot/internal/core/ports/driving"
	"github.com/formpilot/formpilot/internal/logger"
)

// version is set via SetVersion from the build entrypoint.
var version = "dev"

// Injected driving ports. Commands check for nil so a partially wired
// binary fails with a clear message instead of a panic.
var (
	queryService       driving.QueryService
	indexService       driving.IndexService
	documentService    driving.DocumentService
	fieldMemoryService driving.FieldMemoryService
	settingsService    driving.SettingsService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "formpilot",
	Short: "Answer form fields from your own documents",
	Long: `Formpilot answers web form questions from a local knowledge base of
personal documents. Documents are chunked, embedded and retrieved
locally; answers come from a local model when available, with an
optional remote fallback.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Services aggregates the driving ports the CLI needs.
type Services struct {
	Query       driving.QueryService
	Index       driving.IndexService
	Document    driving.DocumentService
	FieldMemory driving.FieldMemoryService
	Settings    driving.SettingsService
}

// SetServices injects the service implementations before Execute.
func SetServices(s Services) {
	queryService = s.Query
	indexService = s.Index
	documentService = s.Document
	fieldMemoryService = s.FieldMemory
	settingsService = s.Settings
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a context, so long-running
// commands stop on signal-driven cancellation.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
