package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var historyJSON bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	Long:  `Lists remembered search queries, newest first.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output history as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("search session not configured")
	}

	entries := sessionService.History()

	if historyJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(entries) == 0 {
		cmd.Println("No search history.")
		return nil
	}

	cmd.Println("Recent searches:")
	cmd.Println()
	for i := range entries {
		entry := &entries[i]
		when := ""
		if !entry.SearchedAt.IsZero() {
			when = entry.SearchedAt.Format("2006-01-02 15:04") + "  "
		}
		cmd.Printf("  %s%s (%d results)\n", when, entry.Query, entry.ResultCount)
	}

	return nil
}
