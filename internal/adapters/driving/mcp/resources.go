package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Recall resources.
	uriScheme = "recall://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing conversations.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "conversations",
		Name:        "conversations",
		Description: "List of all conversations in the chat history",
		MIMEType:    "application/json",
	}, s.handleConversationsResource)

	// Template for a single conversation with its messages.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "conversation/{conversationId}",
		Name:        "conversation",
		Description: "A conversation with its full message history",
		MIMEType:    "application/json",
	}, s.handleConversationResource)
}

// handleConversationsResource returns a list of all conversations.
func (s *Server) handleConversationsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Store == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	conversations, err := s.ports.Store.ListConversations(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}

	// Build simplified conversation list.
	type convInfo struct {
		ID           string `json:"id"`
		Title        string `json:"title"`
		Starred      bool   `json:"starred,omitempty"`
		LastActivity string `json:"last_activity,omitempty"`
		MessageCount int    `json:"message_count"`
	}

	infos := make([]convInfo, len(conversations))
	for i := range conversations {
		infos[i] = convInfo{
			ID:           conversations[i].ID,
			Title:        conversations[i].Title,
			Starred:      conversations[i].Starred,
			LastActivity: formatActivity(conversations[i].LastActivity),
			MessageCount: conversations[i].MessageCount,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling conversations: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleConversationResource returns a single conversation with its
// messages.
func (s *Server) handleConversationResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Store == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract conversationId from URI: recall://conversation/{conversationId}
	convID := extractConversationID(req.Params.URI)
	if convID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	conv, err := s.ports.Store.GetConversation(ctx, convID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting conversation: %w", err)
	}

	msgs, err := s.ports.Store.GetMessages(ctx, convID)
	if err != nil {
		return nil, fmt.Errorf("getting messages: %w", err)
	}

	type messageInfo struct {
		ID        string `json:"id"`
		Role      string `json:"role"`
		Content   string `json:"content"`
		CreatedAt string `json:"created_at,omitempty"`
	}

	type convDetail struct {
		ID           string        `json:"id"`
		Title        string        `json:"title"`
		Starred      bool          `json:"starred,omitempty"`
		Incognito    bool          `json:"incognito,omitempty"`
		LastActivity string        `json:"last_activity,omitempty"`
		MessageCount int           `json:"message_count"`
		Messages     []messageInfo `json:"messages"`
	}

	detail := convDetail{
		ID:           conv.ID,
		Title:        conv.Title,
		Starred:      conv.Starred,
		Incognito:    conv.Incognito,
		LastActivity: formatActivity(conv.LastActivity),
		MessageCount: conv.MessageCount,
		Messages:     make([]messageInfo, len(msgs)),
	}
	for i := range msgs {
		detail.Messages[i] = messageInfo{
			ID:        msgs[i].ID,
			Role:      msgs[i].Role.String(),
			Content:   msgs[i].Content,
			CreatedAt: formatActivity(msgs[i].CreatedAt),
		}
	}

	data, err := json.MarshalIndent(detail, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling conversation: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractConversationID extracts the conversation ID from a URI like
// recall://conversation/{conversationId}.
func extractConversationID(uri string) string {
	const prefix = uriScheme + "conversation/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
