package app

import (
	"context"
	"time"

	"pochy-chat/internal/ai"
	"pochy-chat/internal/model"
)

type Completer interface {
	Complete(ctx context.Context, cfg ai.ChatConfig, conversation []model.Message, systemPrompt string) (ai.Completion, error)
}

type PromptComposer interface {
	BasePrompt() string
	SystemPrompt(query string) string
}

type ChatService struct {
	llm     Completer
	prompts PromptComposer
	llmCfg  ai.ChatConfig
	timeout time.Duration
}

type ReplyResult struct {
	Message   string
	Reasoning string
}

func NewChatService(llm Completer, prompts PromptComposer, llmCfg ai.ChatConfig, timeout time.Duration) *ChatService {
	if timeout <= 0 {
		timeout = 55 * time.Second
	}
	return &ChatService{
		llm:     llm,
		prompts: prompts,
		llmCfg:  llmCfg,
		timeout: timeout,
	}
}

// SystemPrompt picks the system instruction for a conversation. Retrieval
// only runs when the last message comes from the user.
func (s *ChatService) SystemPrompt(messages []model.Message) string {
	last, ok := model.LastMessage(messages)
	if ok && last.Role == model.RoleUser {
		return s.prompts.SystemPrompt(last.Content)
	}
	return s.prompts.BasePrompt()
}

// Reply runs one upstream completion for an already validated conversation.
// Upstream failures come back as *ai.Error.
func (s *ChatService) Reply(ctx context.Context, messages []model.Message) (*ReplyResult, error) {
	if len(messages) == 0 {
		return nil, ErrMissingMessages
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.llm.Complete(ctx, s.llmCfg, messages, s.SystemPrompt(messages))
	if err != nil {
		return nil, err
	}
	return &ReplyResult{Message: out.Message, Reasoning: out.Reasoning}, nil
}
