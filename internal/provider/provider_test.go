package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveOpenAI(t *testing.T) {
	baseURL, headers := Resolve(OpenAI, "sk-test")
	assert.Equal(t, "https://api.openai.com/v1", baseURL)
	assert.Equal(t, "Bearer sk-test", headers["Authorization"])
	assert.Equal(t, "application/json", headers["Content-Type"])
}

func TestResolveAnthropic(t *testing.T) {
	baseURL, headers := Resolve(Anthropic, "sk-ant")
	assert.Equal(t, "https://api.anthropic.com/v1", baseURL)
	assert.Equal(t, "sk-ant", headers["x-api-key"])
	assert.Equal(t, "2023-06-01", headers["anthropic-version"])
	assert.NotContains(t, headers, "Authorization")
}

func TestResolveGoogleAIStudio(t *testing.T) {
	baseURL, headers := Resolve(GoogleAIStudio, "g-key")
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta", baseURL)
	assert.Equal(t, "g-key", headers["x-goog-api-key"])
}

func TestResolveLiteLLM(t *testing.T) {
	baseURL, headers := Resolve(LiteLLM, "local")
	assert.Equal(t, "http://localhost:4000", baseURL)
	assert.Equal(t, "Bearer local", headers["Authorization"])
}

func TestResolveUnknownFallsBackToOpenRouter(t *testing.T) {
	for _, name := range []string{OpenRouter, "SomethingElse", ""} {
		baseURL, headers := Resolve(name, "sk-or")
		assert.Equal(t, "https://openrouter.ai/api/v1", baseURL, "provider %q", name)
		assert.Equal(t, "Bearer sk-or", headers["Authorization"])
		assert.Equal(t, "flutter-app", headers["HTTP-Referer"])
		assert.Equal(t, "Real Life Applications App", headers["X-Title"])
	}
}
