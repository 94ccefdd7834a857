package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

func TestNewConversationStore(t *testing.T) {
	store := NewConversationStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.conversations)
	assert.NotNil(t, store.messages)
}

func TestConversationStore_SaveConversation_Success(t *testing.T) {
	store := NewConversationStore()
	ctx := context.Background()

	now := time.Now()
	conv := &domain.Conversation{
		ID:           "conv-1",
		Title:        "Python array tricks",
		Starred:      true,
		FolderID:     "folder-1",
		LastActivity: now,
		MessageCount: 3,
	}

	err := store.SaveConversation(ctx, conv)
	require.NoError(t, err)

	saved, err := store.GetConversation(ctx, "conv-1")
	require.NoError(t, err)
	assert.Equal(t, "conv-1", saved.ID)
	assert.Equal(t, "Python array tricks", saved.Title)
	assert.True(t, saved.Starred)
	assert.Equal(t, "folder-1", saved.FolderID)
	assert.Equal(t, 3, saved.MessageCount)
}

func TestConversationStore_SaveConversation_Update(t *testing.T) {
	store := NewConversationStore()
	ctx := context.Background()

	require.NoError(t, store.SaveConversation(ctx, &domain.Conversation{ID: "conv-1", Title: "Original"}))
	require.NoError(t, store.SaveConversation(ctx, &domain.Conversation{ID: "conv-2", Title: "Second"}))
	require.NoError(t, store.SaveConversation(ctx, &domain.Conversation{ID: "conv-1", Title: "Updated"}))

	saved, err := store.GetConversation(ctx, "conv-1")
	require.NoError(t, err)
	assert.Equal(t, "Updated", saved.Title)

	// Updates keep the original listing position.
	list, err := store.ListConversations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "conv-1", list[0].ID)
	assert.Equal(t, "conv-2", list[1].ID)
}

func TestConversationStore_SaveConversation_Invalid(t *testing.T) {
	store := NewConversationStore()
	ctx := context.Background()

	err := store.SaveConversation(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = store.SaveConversation(ctx, &domain.Conversation{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConversationStore_GetConversation_NotFound(t *testing.T) {
	store := NewConversationStore()

	_, err := store.GetConversation(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConversationStore_SaveMessages_RefreshesMetadata(t *testing.T) {
	store := NewConversationStore()
	ctx := context.Background()

	older := time.Now().Add(-2 * time.Hour)
	newer := time.Now().Add(-1 * time.Hour)
	require.NoError(t, store.SaveConversation(ctx, &domain.Conversation{ID: "conv-1", Title: "Chat"}))

	err := store.SaveMessages(ctx, "conv-1", []domain.Message{
		{ID: "msg-1", ConversationID: "conv-1", Role: domain.RoleUser, Content: "hello", CreatedAt: older},
		{ID: "msg-2", ConversationID: "conv-1", Role: domain.RoleAssistant, Content: "hi", CreatedAt: newer},
	})
	require.NoError(t, err)

	conv, err := store.GetConversation(ctx, "conv-1")
	require.NoError(t, err)
	assert.Equal(t, 2, conv.MessageCount)
	assert.True(t, conv.LastActivity.Equal(newer))

	msgs, err := store.GetMessages(ctx, "conv-1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "msg-1", msgs[0].ID)
	assert.Equal(t, "msg-2", msgs[1].ID)
}

func TestConversationStore_SaveMessages_Appends(t *testing.T) {
	store := NewConversationStore()
	ctx := context.Background()

	require.NoError(t, store.SaveConversation(ctx, &domain.Conversation{ID: "conv-1"}))
	require.NoError(t, store.SaveMessages(ctx, "conv-1", []domain.Message{{ID: "msg-1", ConversationID: "conv-1"}}))
	require.NoError(t, store.SaveMessages(ctx, "conv-1", []domain.Message{{ID: "msg-2", ConversationID: "conv-1"}}))

	msgs, err := store.GetMessages(ctx, "conv-1")
	require.NoError(t, err)
	assert.Len(t, msgs, 2)

	conv, err := store.GetConversation(ctx, "conv-1")
	require.NoError(t, err)
	assert.Equal(t, 2, conv.MessageCount)
}

func TestConversationStore_SaveMessages_OrphanKept(t *testing.T) {
	store := NewConversationStore()
	ctx := context.Background()

	err := store.SaveMessages(ctx, "ghost", []domain.Message{{ID: "msg-1", ConversationID: "ghost", Content: "orphan"}})
	require.NoError(t, err)

	msgs, err := store.GetMessages(ctx, "ghost")
	require.NoError(t, err)
	assert.Len(t, msgs, 1)

	corpus, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, corpus.Conversations)
	assert.Len(t, corpus.Messages["ghost"], 1)
}

func TestConversationStore_GetMessages_Empty(t *testing.T) {
	store := NewConversationStore()

	msgs, err := store.GetMessages(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, msgs)
}

func TestConversationStore_ListConversations_StorageOrder(t *testing.T) {
	store := NewConversationStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		conv := &domain.Conversation{ID: fmt.Sprintf("conv-%d", i), Title: fmt.Sprintf("Chat %d", i)}
		require.NoError(t, store.SaveConversation(ctx, conv))
	}

	list, err := store.ListConversations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 5)
	for i, conv := range list {
		assert.Equal(t, fmt.Sprintf("conv-%d", i), conv.ID)
	}
}

func TestConversationStore_DeleteConversation(t *testing.T) {
	store := NewConversationStore()
	ctx := context.Background()

	require.NoError(t, store.SaveConversation(ctx, &domain.Conversation{ID: "conv-1"}))
	require.NoError(t, store.SaveMessages(ctx, "conv-1", []domain.Message{{ID: "msg-1", ConversationID: "conv-1"}}))

	err := store.DeleteConversation(ctx, "conv-1")
	require.NoError(t, err)

	_, err = store.GetConversation(ctx, "conv-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	msgs, err := store.GetMessages(ctx, "conv-1")
	require.NoError(t, err)
	assert.Nil(t, msgs)

	list, err := store.ListConversations(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestConversationStore_DeleteConversation_NotFound(t *testing.T) {
	store := NewConversationStore()

	err := store.DeleteConversation(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConversationStore_Snapshot_Isolated(t *testing.T) {
	store := NewConversationStore()
	ctx := context.Background()

	require.NoError(t, store.SaveConversation(ctx, &domain.Conversation{ID: "conv-1", Title: "Before"}))
	require.NoError(t, store.SaveMessages(ctx, "conv-1", []domain.Message{{ID: "msg-1", ConversationID: "conv-1", Content: "first"}}))

	corpus, err := store.Snapshot(ctx)
	require.NoError(t, err)

	// Mutations after the snapshot must not show through.
	require.NoError(t, store.SaveConversation(ctx, &domain.Conversation{ID: "conv-1", Title: "After"}))
	require.NoError(t, store.SaveMessages(ctx, "conv-1", []domain.Message{{ID: "msg-2", ConversationID: "conv-1", Content: "second"}}))

	require.Len(t, corpus.Conversations, 1)
	assert.Equal(t, "Before", corpus.Conversations[0].Title)
	assert.Len(t, corpus.Messages["conv-1"], 1)
}

func TestConversationStore_ConcurrentAccess(t *testing.T) {
	store := NewConversationStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("conv-%d", n)
			_ = store.SaveConversation(ctx, &domain.Conversation{ID: id})
			_ = store.SaveMessages(ctx, id, []domain.Message{{ID: id + "-msg", ConversationID: id}})
			_, _ = store.Snapshot(ctx)
			_, _ = store.ListConversations(ctx)
		}(i)
	}
	wg.Wait()

	list, err := store.ListConversations(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 10)
}
