package search

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

// Ensure Engine implements the interface.
var _ driven.SearchEngine = (*Engine)(nil)

// Engine is the in-memory search engine. The only state it retains
// between calls is the token index, rebuilt lazily whenever the corpus
// fingerprint moves.
type Engine struct {
	index      *Index
	snippetLen int
}

// NewEngine creates an engine with the default snippet length.
func NewEngine() *Engine {
	return &Engine{snippetLen: DefaultSnippetLength}
}

// SetSnippetLength overrides the maximum snippet length in runes.
// Non-positive values are ignored.
func (e *Engine) SetSnippetLength(n int) {
	if n > 0 {
		e.snippetLen = n
	}
}

// Search runs one query against the corpus snapshot: scope filter,
// strategy match, rank, snippet, then a stable descending sort capped
// at the limit. Ties keep snapshot order.
func (e *Engine) Search(ctx context.Context, corpus *domain.Corpus, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	if corpus == nil {
		return nil, domain.ErrCorpusUnavailable
	}

	opts.Query = strings.TrimSpace(opts.Query)
	if opts.Query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}
	logger.Debug("Query: %q, scope: %s, limit: %d", opts.Query, opts.Scope.Description(), limit)

	m := newMatcher(opts)
	if _, isFuzzy := m.(*fuzzyMatcher); isFuzzy {
		e.ensureIndex(corpus)
	}

	start := time.Now()
	candidates := findCandidates(corpus, opts, m, e.index)
	logger.Timing("match phase", start)
	logger.Debug("Candidates: %d", len(candidates))

	now := time.Now()
	results := make([]domain.SearchResult, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		result := domain.SearchResult{
			Kind:           c.kind,
			ID:             c.id,
			ConversationID: c.conversationID,
			Title:          corpus.TitleOf(c.conversationID),
			Highlights:     c.highlights,
		}

		literal := literalContains(c.text, opts.Query, opts.CaseSensitive)
		switch c.kind {
		case domain.KindConversation:
			result.Score = scoreConversation(c.conversation, c.ratio, literal, now)
		case domain.KindMessage:
			result.Score = scoreMessage(c.message, c.ratio, literal, now)
			result.Snippet = Snippet(c.text, e.snippetTerm(c, opts), e.snippetLen)
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	logger.Debug("Results: %d", len(results))
	return results, nil
}

// snippetTerm picks what the snippet centres on: the first actual match
// for patterns (the raw pattern text rarely occurs literally), the
// query itself otherwise.
func (e *Engine) snippetTerm(c *candidate, opts domain.SearchOptions) string {
	if opts.Regex && len(c.highlights) > 0 {
		return c.highlights[0]
	}
	return opts.Query
}

// ensureIndex rebuilds the token index when the corpus fingerprint has
// moved since the last build.
func (e *Engine) ensureIndex(corpus *domain.Corpus) {
	fp := corpus.Fingerprint()
	if e.index != nil && e.index.Fingerprint().Equal(fp) {
		return
	}
	start := time.Now()
	e.index = BuildIndex(corpus)
	logger.Timing("index rebuild", start)
	logger.Debug("Index rebuilt: %d distinct tokens, %d messages", e.index.Tokens(), fp.MessageCount)
}
