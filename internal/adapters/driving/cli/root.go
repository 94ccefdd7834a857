package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

// version is stamped by main at startup.
var version = "dev"

// verbose toggles debug logging for every command.
var verbose bool

// Service implementations injected by main before Execute. Commands
// nil-check the ones they need so partial wiring fails with a clear
// message instead of a panic.
var (
	sessionService    driving.SearchSession
	filterService     driving.FilterService
	settingsService   driving.SettingsService
	conversationStore driven.ConversationStore
	exportLoader      driven.ExportLoader
	newWatcher        func(path string) (driven.CorpusWatcher, error)
	sampleCorpus      func() *domain.Corpus
)

// Services bundles the implementations the CLI commands use.
type Services struct {
	Session    driving.SearchSession
	Filter     driving.FilterService
	Settings   driving.SettingsService
	Store      driven.ConversationStore
	Loader     driven.ExportLoader
	NewWatcher func(path string) (driven.CorpusWatcher, error)
	Sample     func() *domain.Corpus
}

// SetServices injects the service implementations used by commands.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	sessionService = s.Session
	filterService = s.Filter
	settingsService = s.Settings
	conversationStore = s.Store
	exportLoader = s.Loader
	newWatcher = s.NewWatcher
	sampleCorpus = s.Sample
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Search your chat history from the terminal",
	Long: `Recall searches exported chat conversations without leaving the
terminal. Fuzzy, exact, and regex matching with relevance ranking,
snippets, filters, search history, and an interactive TUI.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context, so
// long-running commands stop when it is cancelled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
