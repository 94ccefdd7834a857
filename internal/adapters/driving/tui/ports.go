// Package tui provides an interactive terminal user interface for recall.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session drives searches and holds search state across calls.
	Session driving.SearchSession

	// Filter lists and filters conversations.
	Filter driving.FilterService

	// Settings manages application settings. Optional: views fall back
	// to built-in defaults when absent.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	session driving.SearchSession,
	filter driving.FilterService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Session:  session,
		Filter:   filter,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSearchSession
	}
	if p.Filter == nil {
		return ErrMissingFilterService
	}
	return nil
}
