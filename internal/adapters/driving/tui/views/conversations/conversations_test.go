package conversations

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// MockFilterService implements driving.FilterService for testing.
type MockFilterService struct {
	ApplyFunc        func(conversations []domain.Conversation, filters domain.FilterOptions) ([]domain.Conversation, error)
	ListFilteredFunc func(ctx context.Context, filters domain.FilterOptions) ([]domain.Conversation, error)
}

func (m *MockFilterService) Apply(
	conversations []domain.Conversation,
	filters domain.FilterOptions,
) ([]domain.Conversation, error) {
	if m.ApplyFunc != nil {
		return m.ApplyFunc(conversations, filters)
	}
	return conversations, nil
}

func (m *MockFilterService) ListFiltered(
	ctx context.Context,
	filters domain.FilterOptions,
) ([]domain.Conversation, error) {
	if m.ListFilteredFunc != nil {
		return m.ListFilteredFunc(ctx, filters)
	}
	return []domain.Conversation{}, nil
}

// Helper function to create test conversations.
func testConversations() []domain.Conversation {
	return []domain.Conversation{
		{
			ID:           "c1",
			Title:        "Weekend hiking",
			Starred:      true,
			LastActivity: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
			MessageCount: 12,
		},
		{
			ID:           "c2",
			Title:        "Sourdough starter",
			LastActivity: time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC),
			MessageCount: 4,
		},
	}
}

func TestNewView(t *testing.T) {
	s := styles.DefaultStyles()
	mock := &MockFilterService{}

	view := NewView(s, mock)

	require.NotNil(t, view)
	assert.Equal(t, 0, view.SelectedIndex())
	assert.False(t, view.StarredOnly())
	assert.Equal(t, domain.ChatTypeAll, view.ChatType())
	assert.Equal(t, domain.SortByDate, view.SortBy())
	assert.False(t, view.SortAsc())
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil, nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
}

func TestView_WithContext(t *testing.T) {
	view := NewView(nil, nil)
	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	result := view.WithContext(ctx)

	assert.Equal(t, view, result)
	assert.Equal(t, ctx, view.ctx)
}

func TestView_Init_LoadsConversations(t *testing.T) {
	listCalled := false
	mock := &MockFilterService{
		ListFilteredFunc: func(ctx context.Context, filters domain.FilterOptions) ([]domain.Conversation, error) {
			listCalled = true
			return testConversations(), nil
		},
	}
	view := NewView(nil, mock)

	cmd := view.Init()

	require.NotNil(t, cmd)
	result := cmd()
	loaded, ok := result.(messages.ConversationsLoaded)
	require.True(t, ok)
	assert.True(t, listCalled)
	assert.NoError(t, loaded.Err)
	assert.Len(t, loaded.Conversations, 2)
}

func TestView_Init_NoFilterService(t *testing.T) {
	view := NewView(nil, nil)

	cmd := view.Init()

	require.NotNil(t, cmd)
	result := cmd()
	loaded, ok := result.(messages.ConversationsLoaded)
	require.True(t, ok)
	assert.Error(t, loaded.Err)
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, nil)

	msg := tea.WindowSizeMsg{Width: 100, Height: 40}
	updated, cmd := view.Update(msg)

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.Equal(t, 100, view.width)
	assert.Equal(t, 40, view.height)
	assert.True(t, view.ready)
}

func TestView_Update_ConversationsLoaded(t *testing.T) {
	view := NewView(nil, nil)
	view.loading = true

	msg := messages.ConversationsLoaded{Conversations: testConversations()}
	updated, cmd := view.Update(msg)

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.False(t, view.loading)
	assert.Len(t, view.Conversations(), 2)
	assert.Nil(t, view.Err())
}

func TestView_Update_ConversationsLoaded_Error(t *testing.T) {
	view := NewView(nil, nil)
	view.loading = true

	msg := messages.ConversationsLoaded{Err: errors.New("storage offline")}
	view.Update(msg)

	assert.False(t, view.loading)
	assert.Error(t, view.Err())
}

func TestView_Update_ConversationsLoaded_ClampsSelection(t *testing.T) {
	view := NewView(nil, nil)
	view.Update(messages.ConversationsLoaded{Conversations: testConversations()})
	view.selected = 1

	// Reload shrinks the listing below the selection
	view.Update(messages.ConversationsLoaded{Conversations: testConversations()[:1]})

	assert.Equal(t, 0, view.SelectedIndex())
}

func TestView_Update_KeyEsc_BackToMenu(t *testing.T) {
	view := NewView(nil, nil)

	msg := tea.KeyMsg{Type: tea.KeyEsc}
	_, cmd := view.Update(msg)

	require.NotNil(t, cmd)
	result := cmd()
	changed, ok := result.(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}

func TestView_Update_KeyQ_Quits(t *testing.T) {
	view := NewView(nil, nil)

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	_, cmd := view.Update(msg)

	require.NotNil(t, cmd)
	result := cmd()
	assert.IsType(t, messages.Quit{}, result)
}

func TestView_Update_Navigation(t *testing.T) {
	view := NewView(nil, nil)
	view.Update(messages.ConversationsLoaded{Conversations: testConversations()})

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, view.SelectedIndex())

	// At bottom, stays put
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, view.SelectedIndex())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, view.SelectedIndex())

	// At top, stays put
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, view.SelectedIndex())
}

func TestView_Update_ArrowNavigation(t *testing.T) {
	view := NewView(nil, nil)
	view.Update(messages.ConversationsLoaded{Conversations: testConversations()})

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.SelectedIndex())

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.SelectedIndex())
}

func TestView_Update_KeyS_TogglesStarred(t *testing.T) {
	var gotFilters domain.FilterOptions
	mock := &MockFilterService{
		ListFilteredFunc: func(ctx context.Context, filters domain.FilterOptions) ([]domain.Conversation, error) {
			gotFilters = filters
			return testConversations()[:1], nil
		},
	}
	view := NewView(nil, mock)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})

	assert.True(t, view.StarredOnly())
	require.NotNil(t, cmd)
	cmd()
	require.NotNil(t, gotFilters.Starred)
	assert.True(t, *gotFilters.Starred)

	// Toggling back drops the criterion entirely
	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	assert.False(t, view.StarredOnly())
	require.NotNil(t, cmd)
	cmd()
	assert.Nil(t, gotFilters.Starred)
}

func TestView_Update_KeyT_CyclesChatType(t *testing.T) {
	var gotFilters domain.FilterOptions
	mock := &MockFilterService{
		ListFilteredFunc: func(ctx context.Context, filters domain.FilterOptions) ([]domain.Conversation, error) {
			gotFilters = filters
			return nil, nil
		},
	}
	view := NewView(nil, mock)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	assert.Equal(t, domain.ChatTypeStandard, view.ChatType())
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, domain.ChatTypeStandard, gotFilters.ChatType)

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	assert.Equal(t, domain.ChatTypeIncognito, view.ChatType())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	assert.Equal(t, domain.ChatTypeAll, view.ChatType())
}

func TestView_Update_KeyO_CyclesSortKey(t *testing.T) {
	view := NewView(nil, &MockFilterService{})

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	assert.Equal(t, domain.SortByTitle, view.SortBy())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	assert.Equal(t, domain.SortByMessageCount, view.SortBy())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	assert.Equal(t, domain.SortByDate, view.SortBy())
}

func TestView_Update_KeyR_ReversesSort(t *testing.T) {
	var gotFilters domain.FilterOptions
	mock := &MockFilterService{
		ListFilteredFunc: func(ctx context.Context, filters domain.FilterOptions) ([]domain.Conversation, error) {
			gotFilters = filters
			return nil, nil
		},
	}
	view := NewView(nil, mock)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	assert.True(t, view.SortAsc())
	require.NotNil(t, cmd)
	cmd()
	assert.True(t, gotFilters.SortAsc)
}

func TestView_FilterChange_ResetsSelection(t *testing.T) {
	view := NewView(nil, &MockFilterService{})
	view.Update(messages.ConversationsLoaded{Conversations: testConversations()})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	require.Equal(t, 1, view.SelectedIndex())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})

	assert.Equal(t, 0, view.SelectedIndex())
}

func TestView_View_Loading(t *testing.T) {
	view := NewView(nil, &MockFilterService{})
	view.SetDimensions(80, 24)
	view.Init()

	output := view.View()

	assert.Contains(t, output, "Conversations")
	assert.Contains(t, output, "Loading conversations...")
}

func TestView_View_Error(t *testing.T) {
	view := NewView(nil, nil)
	view.SetDimensions(80, 24)
	view.Update(messages.ConversationsLoaded{Err: errors.New("storage offline")})

	output := view.View()

	assert.Contains(t, output, "Error: storage offline")
}

func TestView_View_Empty(t *testing.T) {
	view := NewView(nil, nil)
	view.SetDimensions(80, 24)
	view.Update(messages.ConversationsLoaded{Conversations: nil})

	output := view.View()

	assert.Contains(t, output, "No conversations found.")
}

func TestView_View_WithConversations(t *testing.T) {
	view := NewView(nil, nil)
	view.SetDimensions(80, 24)
	view.Update(messages.ConversationsLoaded{Conversations: testConversations()})

	output := view.View()

	assert.Contains(t, output, "Weekend hiking")
	assert.Contains(t, output, "Sourdough starter")
	assert.Contains(t, output, "(12)")
	assert.Contains(t, output, "2024-06-01")
	assert.Contains(t, output, ">") // Selection indicator
}

func TestView_View_StarMarker(t *testing.T) {
	view := NewView(nil, nil)
	view.SetDimensions(80, 24)
	view.Update(messages.ConversationsLoaded{Conversations: testConversations()})

	output := view.View()

	assert.Contains(t, output, "*")
}

func TestView_View_UntitledConversation(t *testing.T) {
	view := NewView(nil, nil)
	view.SetDimensions(80, 24)
	view.Update(messages.ConversationsLoaded{Conversations: []domain.Conversation{
		{ID: "c9", MessageCount: 1},
	}})

	output := view.View()

	assert.Contains(t, output, domain.UnknownTitle)
}

func TestView_View_NoActivityDate(t *testing.T) {
	view := NewView(nil, nil)
	view.SetDimensions(80, 24)
	view.Update(messages.ConversationsLoaded{Conversations: []domain.Conversation{
		{ID: "c9", Title: "Drafts"},
	}})

	output := view.View()

	assert.Contains(t, output, "-")
}

func TestView_View_FilterSummary(t *testing.T) {
	view := NewView(nil, &MockFilterService{})
	view.SetDimensions(80, 24)
	view.Update(messages.ConversationsLoaded{Conversations: testConversations()})

	output := view.View()
	assert.Contains(t, output, "type: all")
	assert.Contains(t, output, "sort: date desc")

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	view.Update(messages.ConversationsLoaded{Conversations: testConversations()[:1]})

	output = view.View()
	assert.Contains(t, output, "starred only")
}

func TestView_View_HelpFooter(t *testing.T) {
	view := NewView(nil, nil)
	view.SetDimensions(80, 24)
	view.Update(messages.ConversationsLoaded{Conversations: testConversations()})

	output := view.View()

	assert.Contains(t, output, "[s] starred")
	assert.Contains(t, output, "[esc] back")
}

func TestView_SetDimensions(t *testing.T) {
	view := NewView(nil, nil)

	view.SetDimensions(100, 50)

	assert.Equal(t, 100, view.width)
	assert.Equal(t, 50, view.height)
	assert.True(t, view.ready)
}

func TestView_Reset(t *testing.T) {
	view := NewView(nil, &MockFilterService{})
	view.Update(messages.ConversationsLoaded{Conversations: testConversations()})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	view.Reset()

	assert.Equal(t, 0, view.SelectedIndex())
	assert.False(t, view.StarredOnly())
	assert.Equal(t, domain.ChatTypeAll, view.ChatType())
	assert.Equal(t, domain.SortByDate, view.SortBy())
	assert.False(t, view.SortAsc())
	assert.Nil(t, view.Err())
}

func TestView_ContextPropagation(t *testing.T) {
	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("test"), "value")

	listCalled := false
	mock := &MockFilterService{
		ListFilteredFunc: func(receivedCtx context.Context, filters domain.FilterOptions) ([]domain.Conversation, error) {
			listCalled = true
			val := receivedCtx.Value(contextKey("test"))
			assert.Equal(t, "value", val)
			return nil, nil
		},
	}

	view := NewView(nil, mock).WithContext(ctx)

	cmd := view.Init()
	require.NotNil(t, cmd)
	cmd()

	assert.True(t, listCalled)
}
