package anthropic

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

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
)

// Client calls the Anthropic Messages API.
type Client struct {
	baseURL    string
	modelName  string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config for Anthropic client.
type Config struct {
	ModelName string // Default: "claude-3-5-sonnet-20240620"
	Timeout   time.Duration
	BaseURL   string // Overridable for tests
}

type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature,omitempty"`
	Messages    []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	ID      string `json:"id"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewClient creates a new Anthropic client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.ModelName == "" {
		cfg.ModelName = "claude-3-5-sonnet-20240620"
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
	return llm.ProviderAnthropic
}

// Complete sends one messages request. A single attempt, no retries.
func (c *Client) Complete(ctx context.Context, apiKey, prompt string) (string, error) {
	reqBody := messagesRequest{
		Model:       c.modelName,
		MaxTokens:   80,
		Temperature: 0.7,
		Messages:    []message{{Role: "user", Content: prompt}},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/messages", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Anthropic request failed", zap.Error(err))
		return "", llm.ClassifyTransportError(llm.ProviderAnthropic, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", llm.ClassifyTransportError(llm.ProviderAnthropic, err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		_ = json.Unmarshal(body, &errResp)
		c.logger.Warn("Anthropic returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("message", errResp.Error.Message))
		return "", llm.ClassifyStatus(llm.ProviderAnthropic, resp.StatusCode, errResp.Error.Message)
	}

	var msgResp messagesResponse
	if err := json.Unmarshal(body, &msgResp); err != nil {
		return "", llm.ClassifyStatus(llm.ProviderAnthropic, 0, "malformed response body")
	}

	if len(msgResp.Content) == 0 {
		return "", llm.EmptyResponseError(llm.ProviderAnthropic)
	}

	return msgResp.Content[0].Text, nil
}
