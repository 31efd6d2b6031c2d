package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/blezecon/X0R-AMUHACKS5.0/internal/llm"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

// Client calls the OpenRouter chat-completion API.
type Client struct {
	baseURL    string
	modelName  string
	appURL     string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config for OpenRouter client.
type Config struct {
	ModelName string // Default: "openai/gpt-3.5-turbo"
	AppURL    string // Sent as HTTP-Referer, required by OpenRouter ranking
	Timeout   time.Duration
	BaseURL   string // Overridable for tests
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewClient creates a new OpenRouter client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.ModelName == "" {
		cfg.ModelName = "openai/gpt-3.5-turbo"
	}
	if cfg.AppURL == "" {
		cfg.AppURL = "http://localhost:3000"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		modelName:  cfg.ModelName,
		appURL:     cfg.AppURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Name returns the provider identifier.
func (c *Client) Name() llm.Provider {
	return llm.ProviderOpenRouter
}

// Complete sends one chat completion request. A single attempt, no retries.
func (c *Client) Complete(ctx context.Context, apiKey, prompt string) (string, error) {
	reqBody := chatRequest{
		Model:       c.modelName,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
		MaxTokens:   80,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", c.appURL)
	req.Header.Set("X-Title", "Decision Fatigue Reducer")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("OpenRouter request failed", zap.Error(err))
		return "", llm.ClassifyTransportError(llm.ProviderOpenRouter, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", llm.ClassifyTransportError(llm.ProviderOpenRouter, err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		_ = json.Unmarshal(body, &errResp)
		c.logger.Warn("OpenRouter returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("message", errResp.Error.Message))
		return "", llm.ClassifyStatus(llm.ProviderOpenRouter, resp.StatusCode, errResp.Error.Message)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", llm.ClassifyStatus(llm.ProviderOpenRouter, 0, "malformed response body")
	}

	if len(chatResp.Choices) == 0 {
		return "", llm.EmptyResponseError(llm.ProviderOpenRouter)
	}

	return chatResp.Choices[0].Message.Content, nil
}
