// Command recall searches exported chat conversations from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	configfile "github.com/custodia-labs/recall-cli/internal/adapters/driven/config/file"
	corpusfile "github.com/custodia-labs/recall-cli/internal/adapters/driven/corpus/file"
	"github.com/custodia-labs/recall-cli/internal/adapters/driven/search"
	"github.com/custodia-labs/recall-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
	"github.com/custodia-labs/recall-cli/internal/core/services"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Long-running commands (load --watch, mcp serve, tui) stop on ctrl-c
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Configuration and settings
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	// 2. Storage
	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer store.Close() //nolint:errcheck // shutting down

	conversationStore := store.ConversationStore()

	// 3. Search engine and session
	engine := search.NewEngine()
	session := services.NewSessionService(engine, conversationStore)

	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("Settings unavailable, using defaults: %v", err)
		defaults := domain.DefaultAppSettings()
		settings = &defaults
	}
	if settings.History.Persist {
		session.SetHistoryStore(store.HistoryStore())
	}
	session.ApplySettings(*settings)

	// 4. Listing and ingestion
	filterService := services.NewFilterService(conversationStore)
	loader := corpusfile.NewLoader()

	// 5. Wire the driving adapters
	cli.SetVersion(version)
	cli.SetServices(&cli.Services{
		Session:  session,
		Filter:   filterService,
		Settings: settingsService,
		Store:    conversationStore,
		Loader:   loader,
		NewWatcher: func(path string) (driven.CorpusWatcher, error) {
			return corpusfile.NewWatcher(path)
		},
		Sample: corpusfile.Sample,
	})
	cli.SetTUIConfig(&cli.TUIConfig{
		SessionService:  session,
		FilterService:   filterService,
		SettingsService: settingsService,
	})

	return cli.ExecuteContext(ctx)
}
