package mcp

import (
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session runs searches and produces query suggestions.
	Session driving.SearchSession

	// Filter narrows and orders conversation listings.
	Filter driving.FilterService

	// Store reads conversations and messages for resource content.
	Store driven.ConversationStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSearchSession
	}
	// Filter and Store are optional; their tools and resources degrade
	return nil
}
