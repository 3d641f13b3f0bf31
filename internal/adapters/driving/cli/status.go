package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index and model status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if indexService == nil || queryService == nil {
		return errors.New("services not configured")
	}

	snap := indexService.Snapshot()
	cmd.Printf("Index: %d chunks", len(snap.Records))
	if snap.Empty() {
		cmd.Println(" (empty, run 'formpilot rebuild')")
	} else {
		cmd.Printf(", model %s, built %s (version %d)\n",
			snap.Model, snap.BuiltAt.Format("2006-01-02 15:04"), snap.Version)
	}
	if indexService.Stale() {
		cmd.Println("Knowledge base changed since last rebuild.")
	}

	if queryService.CheckLocalModel(cmd.Context()) {
		cmd.Println("Local model: available")
	} else {
		cmd.Println("Local model: unavailable")
	}

	if settingsService != nil {
		settings, err := settingsService.Get()
		if err == nil {
			cmd.Printf("Routing: %s (local %s, remote %s)\n",
				settings.LLM.Route, settings.LLM.LocalModel, settings.LLM.RemoteModel)
		}
	}
	return nil
}
