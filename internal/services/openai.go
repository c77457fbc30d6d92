// OpenAI chat-completions implementation of [TextService]
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mixtape/internal/shared"
)

const (
	openAIBaseURL      = "https://api.openai.com/v1"
	openAIDefaultModel = "gpt-4"
)

// ChatMessage represents a message in the chat completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest represents the request body for chat completion
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

// ChatCompletionResponse represents the response from chat completion
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// OpenAIService implements [TextService] against the OpenAI chat-completions API.
type OpenAIService struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// OpenAIOpts contains optional overrides for [NewOpenAIService].
type OpenAIOpts struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

// NewOpenAIService creates a new OpenAI client with the given API key.
func NewOpenAIService(apiKey string, opts OpenAIOpts) (*OpenAIService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing openai_key", shared.ErrMissingCredentials)
	}
	if opts.BaseURL == "" {
		opts.BaseURL = openAIBaseURL
	}
	if opts.Model == "" {
		opts.Model = openAIDefaultModel
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 60 * time.Second}
	}

	return &OpenAIService{
		httpClient: opts.Client,
		baseURL:    opts.BaseURL,
		apiKey:     apiKey,
		model:      opts.Model,
	}, nil
}

func (c *OpenAIService) Name() string {
	return "OpenAI"
}

// Complete sends a system and user instruction pair and returns the raw completion text.
func (c *OpenAIService) Complete(ctx context.Context, system, user string) (string, error) {
	reqBody := ChatCompletionRequest{
		Model: c.model,
		Messages: []ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: openai API status %d: %s", shared.ErrAPIRequest, resp.StatusCode, string(respBody))
	}

	var chatResp ChatCompletionResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", shared.ErrGenerationFailed)
	}

	return chatResp.Choices[0].Message.Content, nil
}
