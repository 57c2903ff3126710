package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveChatHistoryRoundTrip(t *testing.T) {
	store, _ := newStore(t)

	require.True(t, store.SaveChatHistory("alice", "c1", map[string]any{"subject": "Math"}))

	record := store.GetConversation("alice", "c1")
	require.NotEmpty(t, record)
	assert.Equal(t, "c1", record["conversation_id"])
	assert.Equal(t, "Math", record["subject"])
	assert.NotEmpty(t, record["timestamp"])
}

func TestSaveChatHistoryKeepsCallerTimestamp(t *testing.T) {
	store, _ := newStore(t)

	require.True(t, store.SaveChatHistory("alice", "c1", map[string]any{
		"timestamp": "2026-01-02T03:04:05Z",
	}))

	record := store.GetConversation("alice", "c1")
	assert.Equal(t, "2026-01-02T03:04:05Z", record["timestamp"])
}

func TestSaveChatHistoryOverwritesConversationID(t *testing.T) {
	store, _ := newStore(t)

	require.True(t, store.SaveChatHistory("alice", "c1", map[string]any{
		"conversation_id": "something-else",
	}))

	record := store.GetConversation("alice", "c1")
	assert.Equal(t, "c1", record["conversation_id"])
}

func TestGetChatHistorySortedNewestFirst(t *testing.T) {
	store, _ := newStore(t)

	require.True(t, store.SaveChatHistory("alice", "c1", map[string]any{"timestamp": "2026-01-01T00:00:00Z"}))
	require.True(t, store.SaveChatHistory("alice", "c2", map[string]any{"timestamp": "2026-03-01T00:00:00Z"}))
	require.True(t, store.SaveChatHistory("alice", "c3", map[string]any{"timestamp": "2026-02-01T00:00:00Z"}))

	conversations := store.GetChatHistory("alice")
	require.Len(t, conversations, 3)
	assert.Equal(t, "c2", conversations[0]["conversation_id"])
	assert.Equal(t, "c3", conversations[1]["conversation_id"])
	assert.Equal(t, "c1", conversations[2]["conversation_id"])
}

func TestGetChatHistoryMissingTimestampSortsLast(t *testing.T) {
	store, _ := newStore(t)

	// A non-string timestamp is treated like a missing one for ordering.
	require.True(t, store.SaveChatHistory("alice", "old", map[string]any{"timestamp": float64(0)}))
	require.True(t, store.SaveChatHistory("alice", "new", map[string]any{"timestamp": "2026-01-01T00:00:00Z"}))

	conversations := store.GetChatHistory("alice")
	require.Len(t, conversations, 2)
	assert.Equal(t, "new", conversations[0]["conversation_id"])
	assert.Equal(t, "old", conversations[1]["conversation_id"])
}

func TestGetConversationMissing(t *testing.T) {
	store, _ := newStore(t)
	assert.Empty(t, store.GetConversation("alice", "nope"))
}

func TestDeleteChatHistoryMissingLeavesDocumentUnchanged(t *testing.T) {
	store, dir := newStore(t)

	require.True(t, store.SaveChatHistory("alice", "c1", map[string]any{"subject": "Math"}))
	before := readDocument(t, dir, "chat_history.json")

	assert.False(t, store.DeleteChatHistory("alice", "nope"))
	assert.False(t, store.DeleteChatHistory("bob", "c1"))

	after := readDocument(t, dir, "chat_history.json")
	assert.Equal(t, before, after)
}

func TestDeleteChatHistoryRemovesEmptyPartition(t *testing.T) {
	store, dir := newStore(t)

	require.True(t, store.SaveChatHistory("alice", "c1", map[string]any{"subject": "Math"}))
	require.True(t, store.DeleteChatHistory("alice", "c1"))

	doc := readDocument(t, dir, "chat_history.json")
	_, exists := doc["alice"]
	assert.False(t, exists)
}

func TestClearAllChatHistory(t *testing.T) {
	store, dir := newStore(t)

	require.True(t, store.SaveChatHistory("alice", "c1", map[string]any{}))
	require.True(t, store.SaveChatHistory("alice", "c2", map[string]any{}))
	require.True(t, store.SaveChatHistory("bob", "c1", map[string]any{}))

	require.True(t, store.ClearAllChatHistory("alice"))
	assert.Empty(t, store.GetChatHistory("alice"))

	// Other users are untouched.
	assert.Len(t, store.GetChatHistory("bob"), 1)

	doc := readDocument(t, dir, "chat_history.json")
	_, exists := doc["alice"]
	assert.False(t, exists)

	// Clearing an already-empty user reports failure.
	assert.False(t, store.ClearAllChatHistory("alice"))
}
