// Package provider resolves third-party LLM provider endpoints and
// forwards chat completions to them.
//
// The resolver is a static lookup table, not a protocol client: each
// provider maps to a fixed base URL and the authorization header shape it
// expects. Unrecognized provider names fall back to OpenRouter.
package provider

// Recognized provider names. The names match what the client app sends in
// the X-Provider header.
const (
	OpenAI         = "OpenAI"
	Anthropic      = "Anthropic"
	GoogleAIStudio = "GoogleAI Studio"
	LiteLLM        = "LiteLLM"
	OpenRouter     = "OpenRouter"
)

// Provider base URLs.
const (
	openAIBaseURL     = "https://api.openai.com/v1"
	anthropicBaseURL  = "https://api.anthropic.com/v1"
	googleAIBaseURL   = "https://generativelanguage.googleapis.com/v1beta"
	liteLLMBaseURL    = "http://localhost:4000"
	openRouterBaseURL = "https://openrouter.ai/api/v1"
)

// anthropicVersion is the API version header Anthropic requires.
const anthropicVersion = "2023-06-01"

// Resolve returns the base URL and request headers for a provider.
// Unknown names resolve to the OpenRouter configuration.
func Resolve(name, apiKey string) (string, map[string]string) {
	switch name {
	case OpenAI:
		return openAIBaseURL, map[string]string{
			"Authorization": "Bearer " + apiKey,
			"Content-Type":  "application/json",
		}
	case Anthropic:
		return anthropicBaseURL, map[string]string{
			"x-api-key":         apiKey,
			"anthropic-version": anthropicVersion,
			"Content-Type":      "application/json",
		}
	case GoogleAIStudio:
		return googleAIBaseURL, map[string]string{
			"x-goog-api-key": apiKey,
			"Content-Type":   "application/json",
		}
	case LiteLLM:
		return liteLLMBaseURL, map[string]string{
			"Authorization": "Bearer " + apiKey,
			"Content-Type":  "application/json",
		}
	default:
		return openRouterBaseURL, map[string]string{
			"Authorization": "Bearer " + apiKey,
			"Content-Type":  "application/json",
			"HTTP-Referer":  "flutter-app",
			"X-Title":       "Real Life Applications App",
		}
	}
}
