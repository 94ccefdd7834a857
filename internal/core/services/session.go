package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SearchSession = (*SessionService)(nil)

// Suggestion source caps. History entries and title completions each
// contribute at most this many before the overall cap applies.
const (
	maxHistorySuggestions = 3
	maxTitleSuggestions   = 3
)

// Result cache defaults, overridable through ApplySettings.
const (
	defaultCacheTTL    = 60 * time.Second
	cachePurgeInterval = 5 * time.Minute
)

// SessionService owns one user's search lifecycle: current query,
// results, selection, state machine, and query history. All methods are
// safe for concurrent use; the TUI calls them from command goroutines.
type SessionService struct {
	mu sync.RWMutex

	engine driven.SearchEngine
	store  driven.ConversationStore

	// historyStore is optional. When set, history mutations are
	// mirrored to it and the persisted list seeds the session.
	historyStore driven.HistoryStore

	state    domain.SessionState
	query    string
	results  []domain.SearchResult
	selected int

	history    []domain.SearchHistoryEntry
	maxHistory int

	// resultCache memoises result lists per query, options, and corpus
	// fingerprint. A changed corpus produces a new fingerprint, so
	// stale entries are never served; they age out on TTL.
	resultCache *cache.Cache
}

// NewSessionService creates a session over the given engine and store.
// History persistence is attached separately via SetHistoryStore.
func NewSessionService(engine driven.SearchEngine, store driven.ConversationStore) *SessionService {
	return &SessionService{
		engine:      engine,
		store:       store,
		state:       domain.StateIdle,
		selected:    -1,
		maxHistory:  domain.MaxHistoryEntries,
		resultCache: cache.New(defaultCacheTTL, cachePurgeInterval),
	}
}

// SetHistoryStore attaches persisted history. Previously stored entries
// seed the in-memory list; load failures are logged and ignored so a
// broken history file never blocks searching.
func (s *SessionService) SetHistoryStore(store driven.HistoryStore) {
	s.mu.Lock()
	s.historyStore = store
	s.mu.Unlock()

	if store == nil {
		return
	}
	entries, err := store.LoadHistory(context.Background())
	if err != nil {
		logger.Warn("History load failed: %v", err)
		return
	}
	s.mu.Lock()
	s.history = entries
	if len(s.history) > s.maxHistory {
		s.history = s.history[:s.maxHistory]
	}
	s.mu.Unlock()
	logger.Debug("History restored: %d entries", len(entries))
}

// ApplySettings adjusts the history cap and result cache to the given
// settings. Trimming applies immediately; disabling the cache drops it.
func (s *SessionService) ApplySettings(settings domain.AppSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if settings.History.MaxEntries > 0 {
		s.maxHistory = settings.History.MaxEntries
		if len(s.history) > s.maxHistory {
			s.history = s.history[:s.maxHistory]
		}
	}

	if !settings.Cache.Enabled {
		s.resultCache = nil
		return
	}
	ttl := time.Duration(settings.Cache.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	s.resultCache = cache.New(ttl, cachePurgeInterval)
}

// PerformSearch runs one search against the current corpus snapshot,
// moving the session through searching into results or errored. Blank
// queries return an empty list without touching session state.
func (s *SessionService) PerformSearch(ctx context.Context, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	opts.Query = strings.TrimSpace(opts.Query)
	if opts.Query == "" {
		logger.Debug("Blank query, session state untouched")
		return []domain.SearchResult{}, nil
	}

	logger.Section("Search Execution")
	logger.Debug("Query: %q", opts.Query)

	s.mu.Lock()
	s.state = domain.StateSearching
	s.query = opts.Query
	s.mu.Unlock()

	corpus, err := s.store.Snapshot(ctx)
	if err != nil {
		s.fail()
		return nil, fmt.Errorf("corpus snapshot: %w", err)
	}

	results, hit := s.cachedResults(opts, corpus.Fingerprint())
	if hit {
		logger.Debug("Cache hit: %d results", len(results))
	} else {
		start := time.Now()
		results, err = s.engine.Search(ctx, corpus, opts)
		if err != nil {
			s.fail()
			return nil, fmt.Errorf("search: %w", err)
		}
		logger.Timing("engine search", start)
		s.cacheResults(opts, corpus.Fingerprint(), results)
	}

	s.mu.Lock()
	s.state = domain.StateResults
	s.results = results
	s.selected = -1
	s.mu.Unlock()

	if len(results) > 0 {
		s.AddToHistory(opts.Query, len(results))
	}

	logger.Info("Search complete: %d results", len(results))
	return results, nil
}

// Suggestions merges recent history entries and conversation titles
// containing the partial text, history first, at most five in total.
// An empty partial yields nothing.
func (s *SessionService) Suggestions(ctx context.Context, partial string) ([]string, error) {
	partial = strings.TrimSpace(partial)
	if partial == "" {
		return nil, nil
	}
	folded := strings.ToLower(partial)

	var suggestions []string
	seen := make(map[string]struct{})
	add := func(text string) {
		if _, dup := seen[text]; dup {
			return
		}
		seen[text] = struct{}{}
		suggestions = append(suggestions, text)
	}

	s.mu.RLock()
	var fromHistory int
	for _, entry := range s.history {
		if fromHistory == maxHistorySuggestions {
			break
		}
		if strings.Contains(strings.ToLower(entry.Query), folded) {
			add(entry.Query)
			fromHistory++
		}
	}
	s.mu.RUnlock()

	// Title completions are best-effort: a storage error degrades to
	// history-only suggestions rather than failing the keystroke.
	conversations, err := s.store.ListConversations(ctx)
	if err != nil {
		logger.Warn("Title suggestions unavailable: %v", err)
		return suggestions, nil
	}

	var fromTitles int
	for i := range conversations {
		if fromTitles == maxTitleSuggestions || len(suggestions) == domain.MaxSuggestions {
			break
		}
		title := conversations[i].Title
		if title == "" || !strings.Contains(strings.ToLower(title), folded) {
			continue
		}
		before := len(suggestions)
		add(title)
		if len(suggestions) > before {
			fromTitles++
		}
	}

	return suggestions, nil
}

// History returns remembered queries, newest first.
func (s *SessionService) History() []domain.SearchHistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]domain.SearchHistoryEntry, len(s.history))
	copy(entries, s.history)
	return entries
}

// AddToHistory records a query at the head of the history list. At most
// one entry exists per exact text; re-running a query moves it forward
// with a fresh timestamp and hit count.
func (s *SessionService) AddToHistory(query string, resultCount int) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	s.mu.Lock()
	filtered := make([]domain.SearchHistoryEntry, 0, len(s.history)+1)
	filtered = append(filtered, domain.SearchHistoryEntry{
		Query:       query,
		SearchedAt:  time.Now(),
		ResultCount: resultCount,
	})
	for _, entry := range s.history {
		if entry.Query == query {
			continue
		}
		filtered = append(filtered, entry)
	}
	if len(filtered) > s.maxHistory {
		filtered = filtered[:s.maxHistory]
	}
	s.history = filtered

	store := s.historyStore
	snapshot := make([]domain.SearchHistoryEntry, len(filtered))
	copy(snapshot, filtered)
	s.mu.Unlock()

	if err := persistHistory(store, snapshot); err != nil {
		logger.Debug("History not persisted: %v", err)
	}
}

// ClearSearch resets the session to idle, wiping the query, results,
// and selection. History survives clears.
func (s *SessionService) ClearSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = domain.StateIdle
	s.query = ""
	s.results = nil
	s.selected = -1
}

// State reports where the session is in its lifecycle.
func (s *SessionService) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Query returns the query text of the most recent search.
func (s *SessionService) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Results returns the result list of the most recent search.
func (s *SessionService) Results() []domain.SearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results
}

// SelectResult marks the result at index as the current selection and
// returns it. Out-of-range indexes clear the selection and return nil.
func (s *SessionService) SelectResult(index int) *domain.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.results) {
		s.selected = -1
		return nil
	}
	s.selected = index
	return &s.results[index]
}

// Selected returns the current selection, or nil when none is set.
func (s *SessionService) Selected() *domain.SearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selected < 0 || s.selected >= len(s.results) {
		return nil
	}
	return &s.results[s.selected]
}

// fail moves the session into the errored state and clears results, so
// the UI never renders a result list the failed search invalidated.
func (s *SessionService) fail() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = domain.StateErrored
	s.results = nil
	s.selected = -1
}

// cachedResults looks up a memoised result list for the exact query,
// options, and corpus generation.
func (s *SessionService) cachedResults(opts domain.SearchOptions, fp domain.CorpusFingerprint) ([]domain.SearchResult, bool) {
	s.mu.RLock()
	rc := s.resultCache
	s.mu.RUnlock()
	if rc == nil {
		return nil, false
	}

	value, found := rc.Get(resultCacheKey(opts, fp))
	if !found {
		return nil, false
	}
	results, ok := value.([]domain.SearchResult)
	return results, ok
}

func (s *SessionService) cacheResults(opts domain.SearchOptions, fp domain.CorpusFingerprint, results []domain.SearchResult) {
	s.mu.RLock()
	rc := s.resultCache
	s.mu.RUnlock()
	if rc == nil {
		return
	}
	rc.Set(resultCacheKey(opts, fp), results, cache.DefaultExpiration)
}

// resultCacheKey folds every option that changes the result list plus
// the corpus fingerprint into one cache key.
func resultCacheKey(opts domain.SearchOptions, fp domain.CorpusFingerprint) string {
	return fmt.Sprintf("%s|%s|%t|%t|%t|%d|%d|%d",
		opts.Query, opts.Scope, opts.Regex, opts.ExactPhrase, opts.CaseSensitive, opts.Limit,
		fp.MessageCount, fp.LastModified.UnixNano())
}

// persistHistory mirrors the history list to the attached store.
func persistHistory(store driven.HistoryStore, entries []domain.SearchHistoryEntry) error {
	if store == nil {
		return domain.ErrHistoryUnavailable
	}
	return store.SaveHistory(context.Background(), entries)
}
