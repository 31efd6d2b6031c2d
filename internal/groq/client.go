package groq

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

const defaultBaseURL = "https://api.groq.com/openai/v1"

// Client calls the Groq chat-completion API (OpenAI-compatible).
type Client struct {
	baseURL    string
	modelName  string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config for Groq client.
type Config struct {
	ModelName string // Default: "llama-3.1-8b-instant"
	Timeout   time.Duration
	BaseURL   string // Overridable for tests
}

type groqRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewClient creates a new Groq client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.ModelName == "" {
		cfg.ModelName = "llama-3.1-8b-instant"
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
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Name returns the provider identifier.
func (c *Client) Name() llm.Provider {
	return llm.ProviderGroq
}

// Complete sends one chat completion request. A single attempt, no retries.
func (c *Client) Complete(ctx context.Context, apiKey, prompt string) (string, error) {
	reqBody := groqRequest{
		Model:       c.modelName,
		Messages:    []groqMessage{{Role: "user", Content: prompt}},
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

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Groq request failed", zap.Error(err))
		return "", llm.ClassifyTransportError(llm.ProviderGroq, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", llm.ClassifyTransportError(llm.ProviderGroq, err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		_ = json.Unmarshal(body, &errResp)
		c.logger.Warn("Groq returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("message", errResp.Error.Message))
		return "", llm.ClassifyStatus(llm.ProviderGroq, resp.StatusCode, errResp.Error.Message)
	}

	var groqResp groqResponse
	if err := json.Unmarshal(body, &groqResp); err != nil {
		return "", llm.ClassifyStatus(llm.ProviderGroq, 0, "malformed response body")
	}

	if len(groqResp.Choices) == 0 {
		return "", llm.EmptyResponseError(llm.ProviderGroq)
	}

	return groqResp.Choices[0].Message.Content, nil
}
