package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

func TestListCmd_Use(t *testing.T) {
	assert.Equal(t, "list", listCmd.Use)
}

func TestListCmd_RejectsArgs(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"list", "extra"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}

func TestListCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "Conversations:")
	assert.Contains(t, output, "Mock Conversation")
	assert.Contains(t, output, "Total: 1 conversations")
}

func TestListCmd_MarksStarred(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "* Mock Conversation")
}

func TestListCmd_EmptyListing(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	filterService = &mockFilter{
		ListFunc: func(_ context.Context, _ domain.FilterOptions) ([]domain.Conversation, error) {
			return nil, nil
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No conversations found.")
}

func TestListCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"list", "--json"})
	defer func() {
		rootCmd.SetArgs(nil)
		listJSON = false // Reset flag
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\"ID\"")
	assert.Contains(t, buf.String(), "\"Title\"")
	assert.Contains(t, buf.String(), "\"MessageCount\"")
}

func TestListCmd_PassesFiltersToService(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	var got domain.FilterOptions
	filterService = &mockFilter{
		ListFunc: func(_ context.Context, filters domain.FilterOptions) ([]domain.Conversation, error) {
			got = filters
			return nil, nil
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{
		"list", "--starred", "--type", "standard", "--folder", "work",
		"--from", "2026-01-01", "--to", "2026-06-30", "--sort", "title", "--asc",
	})
	defer func() {
		rootCmd.SetArgs(nil)
		listStarred = false
		listType = ""
		listFolder = ""
		listFrom = ""
		listTo = ""
		listSort = ""
		listAsc = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	require.NotNil(t, got.Starred)
	assert.True(t, *got.Starred)
	assert.Equal(t, domain.ChatTypeStandard, got.ChatType)
	assert.Equal(t, "work", got.FolderID)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), got.From)
	assert.Equal(t, domain.SortByTitle, got.SortBy)
	assert.True(t, got.SortAsc)
	assert.Nil(t, got.HasMessages, "with-messages not given, criterion should stay unset")
}

func TestListCmd_ToDateIsInclusive(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	var got domain.FilterOptions
	filterService = &mockFilter{
		ListFunc: func(_ context.Context, filters domain.FilterOptions) ([]domain.Conversation, error) {
			got = filters
			return nil, nil
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"list", "--to", "2026-06-30"})
	defer func() {
		rootCmd.SetArgs(nil)
		listTo = ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	// Anything written during June 30 passes the upper bound
	lateThatDay := time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC)
	assert.False(t, got.To.Before(lateThatDay))
	assert.True(t, got.To.Before(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)))
}

func TestListCmd_StarredFalseIsExplicit(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	var got domain.FilterOptions
	filterService = &mockFilter{
		ListFunc: func(_ context.Context, filters domain.FilterOptions) ([]domain.Conversation, error) {
			got = filters
			return nil, nil
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"list", "--starred=false"})
	defer func() {
		rootCmd.SetArgs(nil)
		listStarred = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	require.NotNil(t, got.Starred)
	assert.False(t, *got.Starred)
}

func TestListCmd_InvalidFromDate(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"list", "--from", "last tuesday"})
	defer func() {
		rootCmd.SetArgs(nil)
		listFrom = ""
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --from date")
}

func TestListCmd_ServiceNotConfigured(t *testing.T) {
	oldService := filterService
	filterService = nil
	defer func() {
		filterService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "filter service not configured")
}

func TestListCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	filterService = &mockFilter{
		ListFunc: func(_ context.Context, _ domain.FilterOptions) ([]domain.Conversation, error) {
			return nil, errors.New("store offline")
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list conversations")
}
