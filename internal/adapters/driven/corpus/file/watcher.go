package file

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

// reloadInterval is the minimum gap between reload signals. Exporters
// write in bursts; one signal per burst is enough.
const reloadInterval = time.Second

// Ensure Watcher implements the interface.
var _ driven.CorpusWatcher = (*Watcher)(nil)

// Watcher reports changes to a single export file.
type Watcher struct {
	watcher *fsnotify.Watcher
	limiter *rate.Limiter
	path    string
}

// NewWatcher creates a watcher for the export file at path. The file
// itself does not have to exist yet; its directory does.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	// Watch the containing directory: editors and exporters replace
	// files by rename, which silently drops a direct file watch.
	dir := filepath.Dir(abs)
	if err := fsw.Add(dir); err != nil {
		fsw.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	return &Watcher{
		watcher: fsw,
		limiter: rate.NewLimiter(rate.Every(reloadInterval), 1),
		path:    abs,
	}, nil
}

// Watch delivers a signal per change burst until ctx is cancelled or
// the watcher is closed. The signal channel closes when watching ends.
func (w *Watcher) Watch(ctx context.Context) (<-chan time.Time, error) {
	signals := make(chan time.Time, 1)
	pending := make(chan struct{}, 1)

	// Collapse raw events into a pending flag.
	go func() {
		defer close(pending)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !w.matches(event) {
					continue
				}
				select {
				case pending <- struct{}{}:
				default: // A flag is already queued.
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Watch error on %s: %v", w.path, err)
			}
		}
	}()

	// Rate-limit pending flags into reload signals. Waiting after the
	// receive keeps the trailing write of a burst.
	go func() {
		defer close(signals)
		for range pending {
			if err := w.limiter.Wait(ctx); err != nil {
				return
			}
			select {
			case signals <- time.Now():
			default: // Consumer already has an unread signal.
			}
		}
	}()

	return signals, nil
}

// matches reports whether the event concerns the export file.
func (w *Watcher) matches(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}

// Close releases watch resources.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
