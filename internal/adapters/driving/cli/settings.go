package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure search defaults, interface behaviour, and history options.

Use 'settings set <key> <value>' to change a single setting.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting.

Available keys:
  scope           - Default search scope (conversation, message, all)
  limit           - Default result cap
  case-sensitive  - Case-sensitive matching by default (true, false)
  debounce        - Live-search debounce in milliseconds
  history         - Maximum remembered searches`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Scope: %s\n", settings.Search.DefaultScope.Description())
	cmd.Printf("  Limit: %d\n", settings.Search.DefaultLimit)
	cmd.Printf("  Case sensitive: %t\n", settings.Search.CaseSensitive)
	cmd.Println()

	cmd.Println("[UI]")
	cmd.Printf("  Debounce: %dms\n", settings.UI.DebounceMs)
	cmd.Printf("  Snippet length: %d\n", settings.UI.SnippetLength)
	cmd.Println()

	cmd.Println("[History]")
	cmd.Printf("  Max entries: %d\n", settings.History.MaxEntries)
	cmd.Printf("  Persist: %t\n", settings.History.Persist)
	cmd.Println()

	cmd.Println("[Cache]")
	if settings.Cache.Enabled {
		cmd.Printf("  Enabled: yes\n")
		cmd.Printf("  TTL: %ds\n", settings.Cache.TTLSeconds)
	} else {
		cmd.Printf("  Enabled: no\n")
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'recall settings reset' to restore defaults.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]

	switch key {
	case "scope":
		scope := domain.SearchScope(value)
		if !scope.IsValid() {
			return fmt.Errorf("%w: %q (use conversation, message or all)", domain.ErrInvalidScope, value)
		}
		if err := settingsService.SetDefaultScope(scope); err != nil {
			return fmt.Errorf("failed to set scope: %w", err)
		}
		cmd.Printf("Default scope set to: %s\n", scope.Description())

	case "limit":
		limit, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("limit must be a number, got %q", value)
		}
		if err := settingsService.SetDefaultLimit(limit); err != nil {
			return fmt.Errorf("failed to set limit: %w", err)
		}
		cmd.Printf("Default limit set to: %d\n", limit)

	case "case-sensitive":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("case-sensitive must be true or false, got %q", value)
		}
		if err := settingsService.SetCaseSensitive(enabled); err != nil {
			return fmt.Errorf("failed to set case sensitivity: %w", err)
		}
		cmd.Printf("Case-sensitive matching set to: %t\n", enabled)

	case "debounce":
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("debounce must be a number of milliseconds, got %q", value)
		}
		if err := settingsService.SetDebounce(ms); err != nil {
			return fmt.Errorf("failed to set debounce: %w", err)
		}
		cmd.Printf("Debounce set to: %dms\n", ms)

	case "history":
		limit, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("history must be a number, got %q", value)
		}
		if err := settingsService.SetHistoryLimit(limit); err != nil {
			return fmt.Errorf("failed to set history limit: %w", err)
		}
		cmd.Printf("History limit set to: %d\n", limit)

	default:
		return fmt.Errorf("unknown setting %q (use scope, limit, case-sensitive, debounce or history)", key)
	}

	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}

	cmd.Println("Settings restored to defaults.")
	return nil
}
