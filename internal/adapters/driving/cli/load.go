package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

var (
	loadWatch  bool
	loadSample bool
)

var loadCmd = &cobra.Command{
	Use:   "load [file]",
	Short: "Load a chat export into the local store",
	Long: `Loads a JSON chat export into the local store, replacing matching
conversations and appending their messages.

With --watch, recall keeps running and reloads the file whenever it
changes. With --sample, a small built-in corpus is loaded instead of a
file, handy for trying recall out.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().BoolVarP(&loadWatch, "watch", "w", false, "keep running and reload on file changes")
	loadCmd.Flags().BoolVar(&loadSample, "sample", false, "load the built-in sample corpus")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	if conversationStore == nil {
		return errors.New("conversation store not configured")
	}

	if loadSample {
		if loadWatch {
			return errors.New("--watch needs an export file, not --sample")
		}
		if sampleCorpus == nil {
			return errors.New("sample corpus not configured")
		}
		corpus := sampleCorpus()
		if err := saveCorpus(cmd.Context(), corpus); err != nil {
			return err
		}
		cmd.Printf("Loaded sample corpus: %d conversations\n", len(corpus.Conversations))
		return nil
	}

	if len(args) == 0 {
		return errors.New("provide an export file or --sample")
	}
	if exportLoader == nil {
		return errors.New("export loader not configured")
	}

	path := args[0]
	corpus, err := loadAndSave(cmd.Context(), path)
	if err != nil {
		return err
	}
	cmd.Printf("Loaded %s: %d conversations, %d messages\n", path, len(corpus.Conversations), countMessages(corpus))

	if !loadWatch {
		return nil
	}
	return watchAndReload(cmd, path)
}

// loadAndSave parses the export and persists it.
func loadAndSave(ctx context.Context, path string) (*domain.Corpus, error) {
	corpus, err := exportLoader.LoadExport(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading export: %w", err)
	}
	if err := saveCorpus(ctx, corpus); err != nil {
		return nil, err
	}
	return corpus, nil
}

// saveCorpus persists every conversation and its messages.
func saveCorpus(ctx context.Context, corpus *domain.Corpus) error {
	for i := range corpus.Conversations {
		conv := corpus.Conversations[i]
		if err := conversationStore.SaveConversation(ctx, &conv); err != nil {
			return fmt.Errorf("saving conversation %s: %w", conv.ID, err)
		}
		if msgs := corpus.Messages[conv.ID]; len(msgs) > 0 {
			if err := conversationStore.SaveMessages(ctx, conv.ID, msgs); err != nil {
				return fmt.Errorf("saving messages for %s: %w", conv.ID, err)
			}
		}
	}
	return nil
}

// watchAndReload blocks, reloading the export whenever it changes,
// until the command context is cancelled.
func watchAndReload(cmd *cobra.Command, path string) error {
	if newWatcher == nil {
		return errors.New("corpus watcher not configured")
	}

	watcher, err := newWatcher(path)
	if err != nil {
		return fmt.Errorf("watching export: %w", err)
	}
	defer watcher.Close() //nolint:errcheck // shutting down

	signals, err := watcher.Watch(cmd.Context())
	if err != nil {
		return fmt.Errorf("watching export: %w", err)
	}

	cmd.Printf("Watching %s for changes (ctrl-c to stop)\n", path)
	for range signals {
		corpus, err := loadAndSave(cmd.Context(), path)
		if err != nil {
			// Exporters rewrite files non-atomically; a torn read now
			// will succeed on the next change signal
			logger.Warn("Reload failed: %v", err)
			continue
		}
		cmd.Printf("Reloaded %s: %d conversations, %d messages\n", path, len(corpus.Conversations), countMessages(corpus))
	}
	return nil
}

func countMessages(corpus *domain.Corpus) int {
	total := 0
	for _, msgs := range corpus.Messages {
		total += len(msgs)
	}
	return total
}
