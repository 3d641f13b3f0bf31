package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage knowledge base documents",
	Long:  `Add, list, or remove the documents answers are drawn from.`,
}

var docsAddCmd = &cobra.Command{
	Use:   "add [file...]",
	Short: "Add documents to the knowledge base",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDocsAdd,
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List knowledge base documents",
	RunE:  runDocsList,
}

var docsRemoveCmd = &cobra.Command{
	Use:   "rm [name]",
	Short: "Remove a document from the knowledge base",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsRemove,
}

func init() {
	docsCmd.AddCommand(docsAddCmd)
	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsRemoveCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocsAdd(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		doc, err := documentService.Upload(cmd.Context(), filepath.Base(path), content)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", path, err)
		}
		cmd.Printf("Added %s (%s, %d bytes)\n", doc.Name, doc.Format, doc.Size)
	}

	cmd.Println("Run 'formpilot rebuild' to index the new documents.")
	return nil
}

func runDocsList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents in the knowledge base.")
		return nil
	}

	for i := range docs {
		cmd.Printf("  %-30s %5s %8d bytes  %s\n",
			docs[i].Name, docs[i].Format, docs[i].Size,
			docs[i].ModTime.Format("2006-01-02 15:04"))
	}
	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocsRemove(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove %s: %w", args[0], err)
	}
	cmd.Printf("Removed %s\n", args[0])
	cmd.Println("Run 'formpilot rebuild' to update the index.")
	return nil
}
