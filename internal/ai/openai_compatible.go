package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pochy-chat/internal/model"
)

const defaultHTTPTimeout = 90 * time.Second

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	// Referer and Title are sent only to OpenRouter.
	Referer string
	Title   string
}

func (c ChatConfig) isOpenRouter() bool {
	return strings.Contains(c.BaseURL, "openrouter.ai")
}

// Completion is a successful reply. Reasoning is only set by models that
// return a reasoning trace.
type Completion struct {
	Message   string
	Reasoning string
}

type OpenAICompatibleClient struct {
	httpClient *http.Client
}

func NewOpenAICompatibleClient(httpClient *http.Client) *OpenAICompatibleClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &OpenAICompatibleClient{httpClient: httpClient}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content          string `json:"content"`
			ReasoningContent string `json:"reasoning_content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends systemPrompt followed by conversation as one non-streaming
// chat completion. Every failure is returned as an *Error and never retried.
func (c *OpenAICompatibleClient) Complete(
	ctx context.Context,
	cfg ChatConfig,
	conversation []model.Message,
	systemPrompt string,
) (Completion, error) {
	messages := make([]ChatMessage, 0, len(conversation)+1)
	messages = append(messages, ChatMessage{Role: string(model.RoleSystem), Content: systemPrompt})
	for _, m := range conversation {
		messages = append(messages, ChatMessage{Role: string(m.Role), Content: m.Content})
	}

	bodyBytes, err := json.Marshal(chatRequest{
		Model:       cfg.Model,
		Messages:    messages,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Stream:      false,
	})
	if err != nil {
		return Completion{}, classify(fmt.Errorf("marshal llm request failed: %w", err))
	}

	raw, err := c.do(ctx, cfg, http.MethodPost, "/chat/completions", bodyBytes)
	if err != nil {
		return Completion{}, classify(err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Completion{}, classify(fmt.Errorf("parse llm json failed: %w", err))
	}
	if len(parsed.Choices) == 0 {
		return Completion{}, &Error{Kind: KindNoResponse, Message: msgNoResponse}
	}

	msg := parsed.Choices[0].Message
	return Completion{
		Message:   msg.Content,
		Reasoning: msg.ReasoningContent,
	}, nil
}

// ListModels returns the model ids the upstream exposes for this key.
func (c *OpenAICompatibleClient) ListModels(ctx context.Context, cfg ChatConfig) ([]string, error) {
	raw, err := c.do(ctx, cfg, http.MethodGet, "/models", nil)
	if err != nil {
		return nil, classify(err)
	}

	var parsed struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, classify(fmt.Errorf("parse models json failed: %w", err))
	}
	ids := make([]string, 0, len(parsed.Data))
	for _, m := range parsed.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// ValidateKey reports whether the configured key can list models.
func (c *OpenAICompatibleClient) ValidateKey(ctx context.Context, cfg ChatConfig) bool {
	_, err := c.ListModels(ctx, cfg)
	return err == nil
}

func (c *OpenAICompatibleClient) do(ctx context.Context, cfg ChatConfig, method, path string, body []byte) ([]byte, error) {
	url := strings.TrimRight(cfg.BaseURL, "/") + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build llm request failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	if cfg.isOpenRouter() {
		req.Header.Set("HTTP-Referer", cfg.Referer)
		req.Header.Set("X-Title", cfg.Title)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read llm response failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, statusError(resp.StatusCode, raw)
	}
	return raw, nil
}
