package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

var (
	listStarred  bool
	listType     string
	listFolder   string
	listFrom     string
	listTo       string
	listMessages bool
	listSort     string
	listAsc      bool
	listJSON     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversations",
	Long: `Lists conversations, optionally narrowed by filters. All given
filters must hold. Without filters, every conversation is listed newest
first.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listStarred, "starred", false, "starred conversations only (--starred=false for unstarred)")
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "chat type: all, standard, incognito")
	listCmd.Flags().StringVar(&listFolder, "folder", "", "conversations filed in this folder")
	listCmd.Flags().StringVar(&listFrom, "from", "", "last activity at or after this date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listTo, "to", "", "last activity at or before this date (YYYY-MM-DD)")
	listCmd.Flags().BoolVar(&listMessages, "with-messages", false, "conversations with messages only (=false for empty ones)")
	listCmd.Flags().StringVar(&listSort, "sort", "", "sort key: date, title, messageCount")
	listCmd.Flags().BoolVar(&listAsc, "asc", false, "sort ascending instead of descending")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output conversations as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if filterService == nil {
		return errors.New("filter service not configured")
	}

	filters, err := buildFilterOptions(cmd)
	if err != nil {
		return err
	}

	conversations, err := filterService.ListFiltered(cmd.Context(), filters)
	if err != nil {
		return fmt.Errorf("failed to list conversations: %w", err)
	}

	if listJSON {
		data, err := json.MarshalIndent(conversations, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal conversations: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(conversations) == 0 {
		cmd.Println("No conversations found.")
		return nil
	}

	cmd.Println("Conversations:")
	cmd.Println()
	for i := range conversations {
		conv := &conversations[i]

		marker := " "
		if conv.Starred {
			marker = "*"
		}
		cmd.Printf("  %s %s\n", marker, conv.Title)
		cmd.Printf("    ID: %s\n", conv.ID)
		if !conv.LastActivity.IsZero() {
			cmd.Printf("    Last activity: %s\n", conv.LastActivity.Format("2006-01-02 15:04"))
		}
		cmd.Printf("    Messages: %d\n", conv.MessageCount)
		cmd.Println()
	}

	cmd.Printf("Total: %d conversations\n", len(conversations))
	return nil
}

// buildFilterOptions assembles FilterOptions from the list flags.
// Boolean criteria only apply when their flag was given, so unset and
// explicitly-false stay distinguishable.
func buildFilterOptions(cmd *cobra.Command) (domain.FilterOptions, error) {
	filters := domain.FilterOptions{
		ChatType: domain.ChatType(listType),
		FolderID: listFolder,
		SortBy:   domain.SortKey(listSort),
		SortAsc:  listAsc,
	}

	if cmd.Flags().Changed("starred") {
		starred := listStarred
		filters.Starred = &starred
	}
	if cmd.Flags().Changed("with-messages") {
		withMessages := listMessages
		filters.HasMessages = &withMessages
	}

	if listFrom != "" {
		from, err := time.Parse("2006-01-02", listFrom)
		if err != nil {
			return filters, fmt.Errorf("invalid --from date %q: %w", listFrom, err)
		}
		filters.From = from
	}
	if listTo != "" {
		to, err := time.Parse("2006-01-02", listTo)
		if err != nil {
			return filters, fmt.Errorf("invalid --to date %q: %w", listTo, err)
		}
		// An inclusive calendar day ends just before midnight
		filters.To = to.Add(24*time.Hour - time.Nanosecond)
	}

	return filters, nil
}
