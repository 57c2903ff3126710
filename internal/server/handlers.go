package server

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/raphaelgruber/realapps-go/internal/catalog"
	"github.com/raphaelgruber/realapps-go/internal/metrics"
	"github.com/raphaelgruber/realapps-go/internal/prompt"
	"github.com/raphaelgruber/realapps-go/internal/provider"
	"github.com/raphaelgruber/realapps-go/internal/storage"
)

type handler struct {
	store     *storage.Store
	chat      ChatCompleter
	collector *metrics.Collector
	logger    *slog.Logger

	defaultProvider string
	defaultModel    string
}

// userID identifies the requesting user: X-User-ID header, then the
// caller's network address, then "anonymous". Not authenticated.
func userID(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "anonymous"
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (h *handler) home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Real Life Applications API",
		"endpoints": []string{
			"/api/subjects - Get available subjects",
			"/api/applications/{subject} - Get applications for specific subject",
			"/api/chat - Proxy a chat message to an LLM provider",
			"/api/keys - Manage stored API keys",
			"/api/history - Manage chat history",
		},
	})
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (h *handler) subjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"subjects": catalog.Subjects()})
}

func (h *handler) applications(w http.ResponseWriter, r *http.Request) {
	subject := r.PathValue("subject")
	apps, ok := catalog.Applications(subject)
	if !ok {
		writeError(w, http.StatusNotFound, "Subject not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"subject":      subject,
		"applications": apps,
	})
}

// chatRequest is the body of POST /api/chat.
type chatRequest struct {
	Message   string  `json:"message"`
	Subject   string  `json:"subject"`
	Grade     string  `json:"grade"`
	Timestamp float64 `json:"timestamp"`
}

func (h *handler) chatCompletion(w http.ResponseWriter, r *http.Request) {
	var body chatRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON data")
		return
	}

	apiKey := r.Header.Get("X-API-Key")
	if apiKey == "" {
		writeError(w, http.StatusBadRequest, "API key is required. Please configure it in Settings.")
		return
	}

	providerName := r.Header.Get("X-Provider")
	if providerName == "" {
		providerName = h.defaultProvider
	}
	model := r.Header.Get("X-Model")
	if model == "" {
		model = h.defaultModel
	}

	start := time.Now()
	resp, err := h.chat.CreateChatCompletion(r.Context(), provider.ChatRequest{
		Provider:     providerName,
		Model:        model,
		APIKey:       apiKey,
		SystemPrompt: prompt.System(body.Subject, body.Grade),
		UserMessage:  body.Message,
	})
	if err != nil {
		h.logger.Error("chat completion failed", "provider", providerName, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.collector != nil {
		var in, out int64
		if resp.Usage != nil {
			in = int64(resp.Usage.InputTokens)
			out = int64(resp.Usage.OutputTokens)
		}
		h.collector.RecordChatUsage(time.Since(start), in, out)
	}

	// Record the exchange best-effort: a storage failure must never cost
	// the user their answer.
	h.recordExchange(r, body, resp.Message)

	out := map[string]any{"response": resp.Message}
	if resp.Usage != nil {
		out["usage"] = resp.Usage
	}
	writeJSON(w, http.StatusOK, out)
}

// recordExchange saves the proxied exchange to chat history under a
// conversation ID derived from subject, grade and the client timestamp.
func (h *handler) recordExchange(r *http.Request, body chatRequest, answer string) {
	var timestamp any = r.Header.Get("X-Timestamp")
	if timestamp == "" {
		timestamp = body.Timestamp
	}

	conversationID := prompt.ConversationID(body.Subject, body.Grade, body.Timestamp)
	saved := h.store.SaveChatHistory(userID(r), conversationID, map[string]any{
		"subject":   body.Subject,
		"grade":     body.Grade,
		"timestamp": timestamp,
		"last_message": map[string]any{
			"user":      body.Message,
			"bot":       answer,
			"timestamp": body.Timestamp,
		},
	})
	if !saved {
		h.logger.Warn("chat history storage failed", "conversation_id", conversationID)
	}
}

// saveAPIKeyRequest is the body of POST /api/keys.
type saveAPIKeyRequest struct {
	KeyName     string   `json:"key_name"`
	Provider    string   `json:"provider"`
	APIKey      string   `json:"api_key"`
	CreditLimit *float64 `json:"credit_limit"`
}

func (h *handler) saveAPIKey(w http.ResponseWriter, r *http.Request) {
	var body saveAPIKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON data")
		return
	}

	if body.Provider == "" || body.APIKey == "" {
		writeError(w, http.StatusBadRequest, "Provider and API key are required")
		return
	}
	if body.KeyName == "" {
		body.KeyName = storage.DefaultKeyName
	}

	if !h.store.SaveAPIKey(userID(r), body.KeyName, body.Provider, body.APIKey, body.CreditLimit) {
		writeError(w, http.StatusInternalServerError, "Failed to save API key")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":    "API key saved successfully",
		"unique_key": storage.UniqueKey(body.Provider, body.KeyName),
	})
}

func (h *handler) listAPIKeys(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"api_keys": h.store.GetAPIKeysFormatted(userID(r)),
	})
}

func (h *handler) deleteAPIKey(w http.ResponseWriter, r *http.Request) {
	if !h.store.DeleteAPIKey(userID(r), r.PathValue("provider")) {
		writeError(w, http.StatusNotFound, "API key not found or failed to delete")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "API key deleted successfully"})
}

// saveHistoryRequest is the body of POST /api/history.
type saveHistoryRequest struct {
	ConversationID   string         `json:"conversation_id"`
	ConversationData map[string]any `json:"conversation_data"`
}

func (h *handler) saveHistory(w http.ResponseWriter, r *http.Request) {
	var body saveHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON data")
		return
	}
	if body.ConversationID == "" {
		writeError(w, http.StatusBadRequest, "Conversation ID is required")
		return
	}
	if body.ConversationData == nil {
		body.ConversationData = map[string]any{}
	}

	if !h.store.SaveChatHistory(userID(r), body.ConversationID, body.ConversationData) {
		writeError(w, http.StatusInternalServerError, "Failed to save chat history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Chat history saved successfully"})
}

func (h *handler) listHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"conversations": h.store.GetChatHistory(userID(r)),
	})
}

func (h *handler) getConversation(w http.ResponseWriter, r *http.Request) {
	conversation := h.store.GetConversation(userID(r), r.PathValue("id"))
	if len(conversation) == 0 {
		writeError(w, http.StatusNotFound, "Conversation not found")
		return
	}
	writeJSON(w, http.StatusOK, conversation)
}

func (h *handler) deleteConversation(w http.ResponseWriter, r *http.Request) {
	if !h.store.DeleteChatHistory(userID(r), r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "Conversation not found or failed to delete")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Conversation deleted successfully"})
}

func (h *handler) clearHistory(w http.ResponseWriter, r *http.Request) {
	if !h.store.ClearAllChatHistory(userID(r)) {
		writeError(w, http.StatusInternalServerError, "Failed to clear chat history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "All chat history cleared successfully"})
}

func (h *handler) usage(w http.ResponseWriter, r *http.Request) {
	if h.collector == nil {
		writeJSON(w, http.StatusOK, metrics.Snapshot{})
		return
	}
	writeJSON(w, http.StatusOK, h.collector.Snapshot())
}
