package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/formpilot/formpilot/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long:  `View and configure model routing, embedding and retrieval options.`,
	RunE:  runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsRouteCmd = &cobra.Command{
	Use:   "route [auto|local_only|remote_only]",
	Short: "Set the model routing preference",
	Long: `Set how answers are generated.

Available routes:
  auto         - Probe the local model first, fall back to remote
  local_only   - Never send queries to a remote model
  remote_only  - Skip the local probe entirely`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsRoute,
}

var (
	settingsLocalModel  string
	settingsRemoteModel string
)

var settingsModelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Set the local and remote model names",
	RunE:  runSettingsModels,
}

func init() {
	settingsModelsCmd.Flags().StringVar(&settingsLocalModel, "local", "", "local Ollama model name")
	settingsModelsCmd.Flags().StringVar(&settingsRemoteModel, "remote", "", "remote model name")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsRouteCmd)
	settingsCmd.AddCommand(settingsModelsCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	cmd.Println("Embedding:")
	cmd.Printf("  Provider: %s\n", settings.Embedding.Provider)
	cmd.Printf("  Model:    %s\n", settings.Embedding.Model)
	cmd.Println("Generation:")
	cmd.Printf("  Route:        %s\n", settings.LLM.Route.Description())
	cmd.Printf("  Local model:  %s\n", settings.LLM.LocalModel)
	cmd.Printf("  Remote model: %s\n", settings.LLM.RemoteModel)
	cmd.Println("Retrieval:")
	cmd.Printf("  Chunk size:       %d\n", settings.Index.ChunkSize)
	cmd.Printf("  Chunk overlap:    %d\n", settings.Index.ChunkOverlap)
	cmd.Printf("  Top K:            %d\n", settings.Index.TopK)
	cmd.Printf("  Similarity floor: %.2f\n", settings.Index.SimilarityFloor)
	return nil
}

func runSettingsRoute(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	route := domain.RoutePreference(args[0])
	if !route.IsValid() {
		return fmt.Errorf("invalid route %q (use auto, local_only or remote_only)", args[0])
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	settings.LLM.Route = route
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Route set to %s\n", route.Description())
	return nil
}

func runSettingsModels(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if settingsLocalModel == "" && settingsRemoteModel == "" {
		return errors.New("nothing to change (use --local or --remote)")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if settingsLocalModel != "" {
		settings.LLM.LocalModel = settingsLocalModel
	}
	if settingsRemoteModel != "" {
		settings.LLM.RemoteModel = settingsRemoteModel
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Models updated. Restart any running server to apply.")
	return nil
}
