package provider

import (
	"encoding/json"
	"fmt"
)

// decoder maps a raw provider response body to the normalized reply.
// Providers fall into two response families: Anthropic's messages shape
// and the OpenAI-compatible shape everything else uses.
type decoder func(raw []byte) (*ChatResponse, error)

func decoderFor(provider string) decoder {
	if provider == Anthropic {
		return decodeAnthropic
	}
	return decodeOpenAI
}

// anthropicResponse covers the fields used from the Anthropic messages API.
type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	Usage *struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func decodeAnthropic(raw []byte) (*ChatResponse, error) {
	var resp anthropicResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode anthropic response: %w", err)
	}
	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("anthropic response has no content blocks")
	}

	out := &ChatResponse{Message: resp.Content[0].Text}
	if resp.Usage != nil {
		out.Usage = &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.InputTokens + resp.Usage.OutputTokens,
		}
	}
	return out, nil
}

// openAIResponse covers the fields used from OpenAI-compatible chat
// completion APIs (OpenAI, OpenRouter, LiteLLM, GoogleAI Studio).
type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func decodeOpenAI(raw []byte) (*ChatResponse, error) {
	var resp openAIResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode completion response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("completion response has no choices")
	}

	out := &ChatResponse{Message: resp.Choices[0].Message.Content}
	if resp.Usage != nil {
		total := resp.Usage.TotalTokens
		if total == 0 {
			total = resp.Usage.PromptTokens + resp.Usage.CompletionTokens
		}
		out.Usage = &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  total,
		}
	}
	return out, nil
}
