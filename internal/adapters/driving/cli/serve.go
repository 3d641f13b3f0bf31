package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/formpilot/formpilot/internal/adapters/driving/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the JSON HTTP server the browser extension talks to.

The server exposes query, document management and field memory
endpoints. It runs until interrupted.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8765", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if queryService == nil || indexService == nil ||
		documentService == nil || fieldMemoryService == nil {
		return errors.New("services not configured")
	}

	server, err := api.NewServer(api.ServerConfig{
		Query:       queryService,
		Index:       indexService,
		Document:    documentService,
		FieldMemory: fieldMemoryService,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	cmd.Printf("Formpilot API listening on http://%s\n", serveAddr)
	return server.ListenAndServe(cmd.Context(), serveAddr)
}
