package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

var (
	searchScope string
	searchRegex bool
	searchExact bool
	searchCase  bool
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search conversations and messages",
	Long: `Searches conversation titles and message bodies.
Fuzzy token matching is the default; use --exact for literal substring
matching or --regex for pattern matching. Invalid patterns fall back to
exact matching. Results arrive ranked by relevance with snippets.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchScope, "scope", "s", "all", "search scope: all, conversation, message")
	searchCmd.Flags().BoolVarP(&searchRegex, "regex", "r", false, "treat the query as a regular expression")
	searchCmd.Flags().BoolVarP(&searchExact, "exact", "e", false, "match the query as a literal phrase")
	searchCmd.Flags().BoolVar(&searchCase, "case-sensitive", false, "case-sensitive matching for exact and regex")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (0 = default)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("search session not configured")
	}

	scope := domain.SearchScope(searchScope)
	if !scope.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidScope, searchScope)
	}

	opts := domain.SearchOptions{
		Query:         args[0],
		Scope:         scope,
		Regex:         searchRegex,
		ExactPhrase:   searchExact,
		CaseSensitive: searchCase,
		Limit:         searchLimit,
	}

	results, err := sessionService.PerformSearch(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		r := &results[i]

		// Format: [N] Title (Score)
		cmd.Printf("  [%d] %s (%.0f)\n", i+1, r.Title, r.Score)
		if r.Kind == domain.KindMessage && r.Snippet != "" {
			cmd.Printf("      %s\n", r.Snippet)
		}
		cmd.Println()
	}

	return nil
}
