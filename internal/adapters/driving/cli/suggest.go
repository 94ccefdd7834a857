package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [partial]",
	Short: "Suggest queries for a partial input",
	Long: `Suggests completions for a partially typed query, merging recent
searches and matching conversation titles.`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("search session not configured")
	}

	suggestions, err := sessionService.Suggestions(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to build suggestions: %w", err)
	}

	if len(suggestions) == 0 {
		cmd.Println("No suggestions.")
		return nil
	}

	for _, s := range suggestions {
		cmd.Println(s)
	}
	return nil
}
