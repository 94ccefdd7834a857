package search

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

// maxRegexHighlights caps the distinct regex matches reported per hit.
const maxRegexHighlights = 3

// matcher locates a query inside one candidate text.
type matcher interface {
	// match reports whether the text qualifies, the token overlap ratio
	// feeding the ranker, and the matched substrings to highlight.
	match(text string) (ok bool, ratio float64, highlights []string)
}

// newMatcher selects a strategy from the option flags. An invalid regex
// pattern falls back to exact matching instead of failing the search.
func newMatcher(opts domain.SearchOptions) matcher {
	switch {
	case opts.Regex:
		pattern := opts.Query
		if !opts.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			logger.Warn("Invalid pattern %q, falling back to exact match: %v", opts.Query, err)
			return newExactMatcher(opts.Query, opts.CaseSensitive)
		}
		return &regexMatcher{re: re}
	case opts.ExactPhrase:
		return newExactMatcher(opts.Query, opts.CaseSensitive)
	default:
		return newFuzzyMatcher(opts.Query)
	}
}

// exactMatcher tests literal substring containment.
type exactMatcher struct {
	query         string
	folded        string
	caseSensitive bool
}

func newExactMatcher(query string, caseSensitive bool) *exactMatcher {
	return &exactMatcher{
		query:         query,
		folded:        strings.ToLower(query),
		caseSensitive: caseSensitive,
	}
}

func (m *exactMatcher) match(text string) (bool, float64, []string) {
	var found bool
	if m.caseSensitive {
		found = strings.Contains(text, m.query)
	} else {
		found = strings.Contains(strings.ToLower(text), m.folded)
	}
	if !found {
		return false, 0, nil
	}
	return true, 1, []string{m.query}
}

// regexMatcher tests against a compiled pattern and highlights up to
// the first three distinct matches.
type regexMatcher struct {
	re *regexp.Regexp
}

func (m *regexMatcher) match(text string) (bool, float64, []string) {
	matches := m.re.FindAllString(text, -1)
	if len(matches) == 0 {
		return false, 0, nil
	}

	highlights := make([]string, 0, maxRegexHighlights)
	seen := make(map[string]struct{}, maxRegexHighlights)
	for _, match := range matches {
		if match == "" {
			continue
		}
		if _, dup := seen[match]; dup {
			continue
		}
		seen[match] = struct{}{}
		highlights = append(highlights, match)
		if len(highlights) == maxRegexHighlights {
			break
		}
	}
	return true, 1, highlights
}

// fuzzyMatcher tokenises both sides and scores by the share of query
// tokens present in the candidate. Token order does not matter, so
// "array methods" matches "JavaScript array iteration methods".
type fuzzyMatcher struct {
	tokens []string
}

func newFuzzyMatcher(query string) *fuzzyMatcher {
	return &fuzzyMatcher{tokens: uniqueTokens(Tokenize(query))}
}

func (m *fuzzyMatcher) match(text string) (bool, float64, []string) {
	if len(m.tokens) == 0 {
		return false, 0, nil
	}

	present := make(map[string]struct{})
	for _, token := range Tokenize(text) {
		present[token] = struct{}{}
	}

	var matched []string
	for _, token := range m.tokens {
		if _, ok := present[token]; ok {
			matched = append(matched, token)
		}
	}
	if len(matched) == 0 {
		return false, 0, nil
	}
	return true, float64(len(matched)) / float64(len(m.tokens)), matched
}

// candidate is a matched location awaiting scoring and hydration.
type candidate struct {
	kind           domain.ResultKind
	id             string
	conversationID string
	text           string
	ratio          float64
	highlights     []string

	// conversation is set for title hits, message for body hits.
	conversation *domain.Conversation
	message      *domain.Message
}

// findCandidates scans the corpus in snapshot order and returns every
// location the matcher accepts, respecting the scope. Fuzzy matching
// consults the index to shortlist locations first; exact and regex
// containment is not token-based, so those strategies scan linearly.
func findCandidates(corpus *domain.Corpus, opts domain.SearchOptions, m matcher, idx *Index) []candidate {
	var shortlist map[Location]struct{}
	if fm, isFuzzy := m.(*fuzzyMatcher); isFuzzy && idx != nil {
		shortlist = idx.CandidateSet(fm.tokens)
		logger.Debug("Index shortlist: %d locations", len(shortlist))
	}

	keep := func(loc Location) bool {
		if shortlist == nil {
			return true
		}
		_, ok := shortlist[loc]
		return ok
	}

	var candidates []candidate

	if opts.Scope.IncludesConversations() {
		for i := range corpus.Conversations {
			conv := &corpus.Conversations[i]
			if !keep(Location{ConversationID: conv.ID, Message: titleOffset}) {
				continue
			}
			ok, ratio, highlights := m.match(conv.Title)
			if !ok {
				continue
			}
			candidates = append(candidates, candidate{
				kind:           domain.KindConversation,
				id:             conv.ID,
				conversationID: conv.ID,
				text:           conv.Title,
				ratio:          ratio,
				highlights:     highlights,
				conversation:   conv,
			})
		}
	}

	if opts.Scope.IncludesMessages() {
		for _, convID := range orderedConversationIDs(corpus) {
			msgs := corpus.Messages[convID]
			for offset := range msgs {
				msg := &msgs[offset]
				if !keep(Location{ConversationID: convID, Message: offset}) {
					continue
				}
				ok, ratio, highlights := m.match(msg.Content)
				if !ok {
					continue
				}
				candidates = append(candidates, candidate{
					kind:           domain.KindMessage,
					id:             msg.ID,
					conversationID: convID,
					text:           msg.Content,
					ratio:          ratio,
					highlights:     highlights,
					message:        msg,
				})
			}
		}
	}

	return candidates
}

// literalContains reports whether the raw query text appears in the
// candidate text, honouring case sensitivity. The ranker pays a bonus
// for literal presence on top of any token-level match.
func literalContains(text, query string, caseSensitive bool) bool {
	if query == "" {
		return false
	}
	if caseSensitive {
		return strings.Contains(text, query)
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(query))
}
