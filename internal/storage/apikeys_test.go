package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float64Ptr(v float64) *float64 { return &v }

func TestSaveAPIKeyOverwritesSameUniqueKey(t *testing.T) {
	store, _ := newStore(t)

	require.True(t, store.SaveAPIKey("alice", "work", "OpenAI", "sk-old", float64Ptr(10)))
	require.True(t, store.SaveAPIKey("alice", "work", "OpenAI", "sk-new", float64Ptr(50)))

	record := store.GetAPIKeyByName("alice", "work", "OpenAI")
	require.NotNil(t, record)
	assert.Equal(t, "sk-new", record["api_key"])
	assert.Equal(t, float64(50), record["credit_limit"])
	assert.Equal(t, "OpenAI_work", record["unique_key"])

	// No duplicate unique keys in the formatted listing.
	formatted := store.GetAPIKeysFormatted("alice")
	require.Len(t, formatted, 1)
	assert.Equal(t, "OpenAI_work", formatted[0].UniqueKey)
}

func TestSaveAPIKeyNilCreditLimit(t *testing.T) {
	store, _ := newStore(t)

	require.True(t, store.SaveAPIKey("alice", "default", "OpenRouter", "sk-1", nil))

	record := store.GetAPIKeyByName("alice", "default", "OpenRouter")
	require.NotNil(t, record)
	assert.Nil(t, record["credit_limit"])
	assert.NotEmpty(t, record["updated_at"])
}

func TestGetAPIKeyUsesBareProviderKey(t *testing.T) {
	store, _ := newStore(t)

	// Saved under "OpenAI_work", so the bare-provider read path misses.
	require.True(t, store.SaveAPIKey("alice", "work", "OpenAI", "sk-1", nil))

	_, ok := store.GetAPIKey("alice", "OpenAI")
	assert.False(t, ok)

	// The composite key does hit through the bare-provider path.
	key, ok := store.GetAPIKey("alice", "OpenAI_work")
	require.True(t, ok)
	assert.Equal(t, "sk-1", key)
}

func TestGetAllAPIKeysUnknownUser(t *testing.T) {
	store, _ := newStore(t)
	assert.Empty(t, store.GetAllAPIKeys("nobody"))
}

func TestGetAPIKeysFormattedSorted(t *testing.T) {
	store, _ := newStore(t)

	require.True(t, store.SaveAPIKey("alice", "zeta", "OpenRouter", "sk-1", nil))
	require.True(t, store.SaveAPIKey("alice", "alpha", "OpenRouter", "sk-2", nil))
	require.True(t, store.SaveAPIKey("alice", "default", "Anthropic", "sk-3", nil))

	formatted := store.GetAPIKeysFormatted("alice")
	require.Len(t, formatted, 3)
	assert.Equal(t, "Anthropic_default", formatted[0].UniqueKey)
	assert.Equal(t, "OpenRouter_alpha", formatted[1].UniqueKey)
	assert.Equal(t, "OpenRouter_zeta", formatted[2].UniqueKey)
}

func TestGetAPIKeyByNameMissing(t *testing.T) {
	store, _ := newStore(t)
	assert.Nil(t, store.GetAPIKeyByName("alice", "default", "OpenAI"))
}

func TestDeleteAPIKeyRemovesEmptyPartition(t *testing.T) {
	store, dir := newStore(t)

	require.True(t, store.SaveAPIKey("alice", "default", "OpenAI", "sk-1", nil))

	// DeleteAPIKey keys by the raw record key.
	require.True(t, store.DeleteAPIKey("alice", "OpenAI_default"))

	assert.Empty(t, store.GetAllAPIKeys("alice"))

	// The partition is gone on disk too, not just empty.
	doc := readDocument(t, dir, "api_keys.json")
	_, exists := doc["alice"]
	assert.False(t, exists)
}

func TestDeleteAPIKeyKeepsOtherRecords(t *testing.T) {
	store, dir := newStore(t)

	require.True(t, store.SaveAPIKey("alice", "default", "OpenAI", "sk-1", nil))
	require.True(t, store.SaveAPIKey("alice", "default", "Anthropic", "sk-2", nil))

	require.True(t, store.DeleteAPIKey("alice", "OpenAI_default"))

	assert.Len(t, store.GetAllAPIKeys("alice"), 1)
	doc := readDocument(t, dir, "api_keys.json")
	_, exists := doc["alice"]
	assert.True(t, exists)
}

func TestDeleteAPIKeyMissing(t *testing.T) {
	store, _ := newStore(t)

	assert.False(t, store.DeleteAPIKey("alice", "OpenAI"))

	require.True(t, store.SaveAPIKey("alice", "default", "OpenAI", "sk-1", nil))
	assert.False(t, store.DeleteAPIKey("alice", "nope"))
	assert.Len(t, store.GetAllAPIKeys("alice"), 1)
}
