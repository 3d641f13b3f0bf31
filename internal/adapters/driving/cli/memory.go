package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var memoryPageURL string

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Manage field memory",
	Long:  `Inspect and clear remembered field rejections.`,
}

var memoryClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear field rejections",
	Long: `Clear remembered rejections so suppressed fields receive suggestions
again. Without --page, all rejections are cleared.`,
	RunE: runMemoryClear,
}

func init() {
	memoryClearCmd.Flags().StringVar(&memoryPageURL, "page", "", "clear rejections for this page only")
	memoryCmd.AddCommand(memoryClearCmd)
	rootCmd.AddCommand(memoryCmd)
}

func runMemoryClear(cmd *cobra.Command, _ []string) error {
	if fieldMemoryService == nil {
		return errors.New("field memory service not configured")
	}

	if err := fieldMemoryService.ClearRejections(cmd.Context(), memoryPageURL); err != nil {
		return fmt.Errorf("failed to clear rejections: %w", err)
	}

	if memoryPageURL == "" {
		cmd.Println("Cleared all rejections.")
	} else {
		cmd.Printf("Cleared rejections for %s\n", memoryPageURL)
	}
	return nil
}
