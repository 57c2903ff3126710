package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/raphaelgruber/realapps-go/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/subjects", r.URL.Path)
		assert.Equal(t, "alice", r.Header.Get("X-User-ID"))
		_ = json.NewEncoder(w).Encode(map[string]any{"subjects": []string{"Math", "Science"}})
	}))
	defer srv.Close()

	c := client.New(srv.URL, "alice")
	subjects, err := c.Subjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Math", "Science"}, subjects)
}

func TestSaveKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/keys", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "OpenRouter", body["provider"])
		assert.Equal(t, float64(25), body["credit_limit"])

		_ = json.NewEncoder(w).Encode(map[string]string{
			"message":    "API key saved successfully",
			"unique_key": "OpenRouter_default",
		})
	}))
	defer srv.Close()

	limit := 25.0
	c := client.New(srv.URL, "alice")
	result, err := c.SaveKey(context.Background(), "default", "OpenRouter", "sk-1", &limit)
	require.NoError(t, err)
	assert.Equal(t, "OpenRouter_default", result.UniqueKey)
}

func TestServerErrorSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Conversation not found"})
	}))
	defer srv.Close()

	c := client.New(srv.URL, "")
	_, err := c.Conversation(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), "Conversation not found")
}

func TestHistoryOrderPreserved(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"conversations": []map[string]any{
			{"conversation_id": "c2"},
			{"conversation_id": "c1"},
		}})
	}))
	defer srv.Close()

	c := client.New(srv.URL, "alice")
	conversations, err := c.History(context.Background())
	require.NoError(t, err)
	require.Len(t, conversations, 2)
	assert.Equal(t, "c2", conversations[0]["conversation_id"])
}

func TestDeleteConversation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/history/c1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Conversation deleted successfully"})
	}))
	defer srv.Close()

	c := client.New(srv.URL, "alice")
	require.NoError(t, c.DeleteConversation(context.Background(), "c1"))
}
