package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrAlreadyExists", ErrAlreadyExists},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrCorpusUnavailable", ErrCorpusUnavailable},
		{"ErrInvalidScope", ErrInvalidScope},
		{"ErrInvalidChatType", ErrInvalidChatType},
		{"ErrInvalidSortKey", ErrInvalidSortKey},
		{"ErrHistoryUnavailable", ErrHistoryUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrNotFound tests ErrNotFound error
func TestErrNotFound(t *testing.T) {
	assert.Equal(t, "not found", ErrNotFound.Error())
	assert.True(t, errors.Is(ErrNotFound, ErrNotFound))
	assert.False(t, errors.Is(ErrNotFound, ErrInvalidInput))
}

// TestErrCorpusUnavailable tests ErrCorpusUnavailable error
func TestErrCorpusUnavailable(t *testing.T) {
	assert.Equal(t, "corpus unavailable", ErrCorpusUnavailable.Error())
	assert.True(t, errors.Is(ErrCorpusUnavailable, ErrCorpusUnavailable))
	assert.False(t, errors.Is(ErrCorpusUnavailable, ErrNotFound))
}

// TestErrInvalidScope tests ErrInvalidScope error
func TestErrInvalidScope(t *testing.T) {
	assert.Equal(t, "invalid search scope", ErrInvalidScope.Error())
	assert.False(t, errors.Is(ErrInvalidScope, ErrInvalidChatType))
}

// TestErrors_Wrapping tests that wrapped errors remain identifiable
func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading snapshot: %w", ErrCorpusUnavailable)

	assert.True(t, errors.Is(wrapped, ErrCorpusUnavailable))
	assert.False(t, errors.Is(wrapped, ErrNotFound))
	assert.Contains(t, wrapped.Error(), "corpus unavailable")
}

// TestErrors_Distinct tests that sentinel errors never alias each other
func TestErrors_Distinct(t *testing.T) {
	all := []error{
		ErrNotFound,
		ErrAlreadyExists,
		ErrInvalidInput,
		ErrCorpusUnavailable,
		ErrInvalidScope,
		ErrInvalidChatType,
		ErrInvalidSortKey,
		ErrHistoryUnavailable,
	}

	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}
