package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/formpilot/formpilot/internal/core/domain"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the vector index",
	Long: `Re-extracts, re-chunks and re-embeds the knowledge base. Vectors for
unchanged text are reused from the previous snapshot.`,
	RunE: runRebuild,
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

func runRebuild(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	stats, err := indexService.Rebuild(cmd.Context())
	if err != nil {
		if errors.Is(err, domain.ErrRebuildInProgress) {
			return errors.New("a rebuild is already running")
		}
		if errors.Is(err, domain.ErrEmbeddingUnavailable) {
			return fmt.Errorf("embedding backend unreachable, index left unchanged: %w", err)
		}
		return fmt.Errorf("rebuild failed: %w", err)
	}

	cmd.Printf("Rebuilt index: %d documents, %d chunks (%d embedded, %d reused)\n",
		stats.Documents, stats.Chunks, stats.Embedded, stats.Reused)
	if stats.Skipped > 0 {
		cmd.Printf("Skipped %d documents due to extraction errors\n", stats.Skipped)
	}
	return nil
}
