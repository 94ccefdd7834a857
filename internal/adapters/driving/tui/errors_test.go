package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errors := []error{
		ErrMissingSearchSession,
		ErrMissingFilterService,
		ErrInvalidPorts,
	}

	// Ensure all errors are unique
	seen := make(map[string]bool)
	for _, err := range errors {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrMissingSearchSession_Message(t *testing.T) {
	assert.Contains(t, ErrMissingSearchSession.Error(), "search session")
}

func TestErrMissingFilterService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingFilterService.Error(), "filter service")
}

func TestErrInvalidPorts_Message(t *testing.T) {
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
