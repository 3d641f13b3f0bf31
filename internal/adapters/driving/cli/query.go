package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/formpilot/formpilot/internal/core/domain"
)

var (
	queryFieldContext string
	queryPartialInput string
	queryJSON         bool
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Answer a form field question from the knowledge base",
	Long: `Runs the retrieval pipeline for a single question and prints the
answer. Use --context to pass the form field label the way the browser
extension does.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVarP(&queryFieldContext, "context", "c", "", "form field context, e.g. the field label")
	queryCmd.Flags().StringVar(&queryPartialInput, "partial", "", "partially typed value to complete")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	answer, err := queryService.Query(cmd.Context(), domain.QueryRequest{
		Text:         args[0],
		FieldContext: queryFieldContext,
		PartialInput: queryPartialInput,
	})
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		data, err := json.MarshalIndent(map[string]any{
			"answer":      answer.Text,
			"source_file": answer.SourceFile,
			"source":      string(answer.Source),
			"confidence":  answer.Confidence,
			"found":       !answer.NotFound(),
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(answer.Text)
	if !answer.NotFound() && answer.SourceFile != "" {
		cmd.Printf("  (from %s, similarity %.2f, via %s)\n",
			answer.SourceFile, answer.Confidence, answer.Source)
	}
	return nil
}
