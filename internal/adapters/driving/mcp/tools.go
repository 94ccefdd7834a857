package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// SearchInput is the input schema for the search_chats tool.
type SearchInput struct {
	Query         string `json:"query" jsonschema:"the text, phrase, or pattern to search for"`
	Scope         string `json:"scope,omitempty" jsonschema:"search scope: all, conversation, or message (default all)"`
	Regex         bool   `json:"regex,omitempty" jsonschema:"treat the query as a regular expression"`
	ExactPhrase   bool   `json:"exact_phrase,omitempty" jsonschema:"match the query as a literal phrase instead of fuzzy tokens"`
	CaseSensitive bool   `json:"case_sensitive,omitempty" jsonschema:"case-sensitive matching for exact and regex queries"`
	Limit         int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search_chats tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	Kind           string   `json:"kind"`
	ID             string   `json:"id"`
	ConversationID string   `json:"conversation_id"`
	Title          string   `json:"title"`
	Snippet        string   `json:"snippet,omitempty"`
	Score          float64  `json:"score"`
	Highlights     []string `json:"highlights,omitempty"`
}

// SuggestInput is the input schema for the suggest_queries tool.
type SuggestInput struct {
	Partial string `json:"partial" jsonschema:"prefix or fragment of a query to complete"`
}

// SuggestOutput is the output schema for the suggest_queries tool.
type SuggestOutput struct {
	Suggestions []string `json:"suggestions"`
}

// ListConversationsInput is the input schema for the list_conversations tool.
type ListConversationsInput struct {
	Starred  bool   `json:"starred,omitempty" jsonschema:"keep starred conversations only"`
	ChatType string `json:"chat_type,omitempty" jsonschema:"chat type: all, standard, or incognito (default all)"`
	SortBy   string `json:"sort_by,omitempty" jsonschema:"sort key: date, title, or messageCount (default date)"`
	SortAsc  bool   `json:"sort_asc,omitempty" jsonschema:"sort ascending instead of descending"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of conversations to return (0 = all)"`
}

// ListConversationsOutput is the output schema for the list_conversations tool.
type ListConversationsOutput struct {
	Conversations []ConversationOutput `json:"conversations"`
	Count         int                  `json:"count"`
}

// ConversationOutput represents a single conversation listing entry.
type ConversationOutput struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Starred      bool   `json:"starred,omitempty"`
	Incognito    bool   `json:"incognito,omitempty"`
	LastActivity string `json:"last_activity,omitempty"`
	MessageCount int    `json:"message_count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_chats",
		Description: "Search chat history for conversations and messages matching a query",
	}, s.handleSearchChats)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "suggest_queries",
		Description: "Suggest query completions from search history and conversation titles",
	}, s.handleSuggestQueries)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_conversations",
		Description: "List conversations with optional filtering and sorting",
	}, s.handleListConversations)
}

// handleSearchChats handles the search_chats tool invocation.
func (s *Server) handleSearchChats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	scope := domain.ScopeAll
	if input.Scope != "" {
		scope = domain.SearchScope(input.Scope)
		if !scope.IsValid() {
			return nil, SearchOutput{}, fmt.Errorf("%w: %q", domain.ErrInvalidScope, input.Scope)
		}
	}

	opts := domain.SearchOptions{
		Query:         input.Query,
		Scope:         scope,
		Regex:         input.Regex,
		ExactPhrase:   input.ExactPhrase,
		CaseSensitive: input.CaseSensitive,
		Limit:         limit,
	}

	results, err := s.ports.Session.PerformSearch(ctx, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			Kind:           results[i].Kind.String(),
			ID:             results[i].ID,
			ConversationID: results[i].ConversationID,
			Title:          results[i].Title,
			Snippet:        results[i].Snippet,
			Score:          results[i].Score,
			Highlights:     results[i].Highlights,
		}
	}

	return nil, output, nil
}

// handleSuggestQueries handles the suggest_queries tool invocation.
func (s *Server) handleSuggestQueries(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SuggestInput,
) (*mcp.CallToolResult, SuggestOutput, error) {
	suggestions, err := s.ports.Session.Suggestions(ctx, input.Partial)
	if err != nil {
		return nil, SuggestOutput{}, err
	}

	return nil, SuggestOutput{Suggestions: suggestions}, nil
}

// handleListConversations handles the list_conversations tool invocation.
func (s *Server) handleListConversations(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListConversationsInput,
) (*mcp.CallToolResult, ListConversationsOutput, error) {
	if s.ports.Filter == nil {
		return nil, ListConversationsOutput{}, errors.New("filter service not available")
	}

	// Chat type and sort key pass through raw; the filter service
	// returns domain validation errors for unrecognised values.
	filters := domain.FilterOptions{
		ChatType: domain.ChatType(input.ChatType),
		SortBy:   domain.SortKey(input.SortBy),
		SortAsc:  input.SortAsc,
	}
	if input.Starred {
		starred := true
		filters.Starred = &starred
	}

	conversations, err := s.ports.Filter.ListFiltered(ctx, filters)
	if err != nil {
		return nil, ListConversationsOutput{}, err
	}

	if input.Limit > 0 && len(conversations) > input.Limit {
		conversations = conversations[:input.Limit]
	}

	output := ListConversationsOutput{
		Conversations: make([]ConversationOutput, len(conversations)),
		Count:         len(conversations),
	}

	for i := range conversations {
		output.Conversations[i] = ConversationOutput{
			ID:           conversations[i].ID,
			Title:        conversations[i].Title,
			Starred:      conversations[i].Starred,
			Incognito:    conversations[i].Incognito,
			LastActivity: formatActivity(conversations[i].LastActivity),
			MessageCount: conversations[i].MessageCount,
		}
	}

	return nil, output, nil
}

// formatActivity renders a timestamp as RFC 3339, or empty for the zero
// value (a conversation that was never messaged).
func formatActivity(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
