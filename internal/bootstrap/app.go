package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/phuslu/log"

	"pochy-chat/internal/ai"
	"pochy-chat/internal/app"
	"pochy-chat/internal/config"
	"pochy-chat/internal/knowledge"
	"pochy-chat/internal/logging"
	"pochy-chat/internal/ratelimit"
)

type App struct {
	Config    *config.Config
	Logger    *log.Logger
	Knowledge *knowledge.Base
	Limiter   *ratelimit.FixedWindow
	LLM       *ai.OpenAICompatibleClient
	Chat      *app.ChatService

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	logger := logging.New(cfg.Log)

	httpClient := &http.Client{Timeout: cfg.LLMTimeout() + 5*time.Second}
	client := ai.NewOpenAICompatibleClient(httpClient)
	a := NewWithDeps(cfg, logger, client, client)

	if !cfg.Ready() {
		logger.Warn().Msg("DEEPSEEK_API_KEY is not set; chat requests will be refused")
	} else if cfg.LLM.ValidateOnStart {
		checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if a.LLM.ValidateKey(checkCtx, ChatConfig(cfg)) {
			logger.Info().Str("base_url", cfg.LLM.BaseURL).Msg("upstream api key accepted")
		} else {
			logger.Warn().Str("base_url", cfg.LLM.BaseURL).Msg("upstream api key check failed")
		}
	}

	return a, nil
}

// NewWithDeps wires an App from already built pieces. Tests pass a stub as
// llm; in production it is the same value as client.
func NewWithDeps(cfg *config.Config, logger *log.Logger, client *ai.OpenAICompatibleClient, llm app.Completer) *App {
	kb := knowledge.New(knowledge.PochyBooks, cfg.App.AssistantName)
	limiter := ratelimit.NewFixedWindow(cfg.RateLimit.Limit, cfg.RateWindow())

	return &App{
		Config:    cfg,
		Logger:    logger,
		Knowledge: kb,
		Limiter:   limiter,
		LLM:       client,
		Chat:      app.NewChatService(llm, kb, ChatConfig(cfg), cfg.LLMTimeout()),
		StartedAt: time.Now(),
	}
}

func ChatConfig(cfg *config.Config) ai.ChatConfig {
	return ai.ChatConfig{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		Referer:     cfg.LLM.Referer,
		Title:       cfg.LLM.Title,
	}
}

// Start runs background maintenance until ctx is cancelled.
func (a *App) Start(ctx context.Context) {
	go a.Limiter.Run(ctx)
}
