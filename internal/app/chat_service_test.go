package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pochy-chat/internal/ai"
	"pochy-chat/internal/knowledge"
	"pochy-chat/internal/model"
)

type stubCompleter struct {
	out         ai.Completion
	err         error
	block       bool
	gotPrompt   string
	gotMessages []model.Message
	gotCfg      ai.ChatConfig
	gotDeadline bool
}

func (s *stubCompleter) Complete(ctx context.Context, cfg ai.ChatConfig, conversation []model.Message, systemPrompt string) (ai.Completion, error) {
	s.gotCfg = cfg
	s.gotMessages = conversation
	s.gotPrompt = systemPrompt
	_, s.gotDeadline = ctx.Deadline()
	if s.block {
		<-ctx.Done()
		return ai.Completion{}, &ai.Error{Kind: ai.KindTimeout, Message: "timed out", Err: ctx.Err()}
	}
	return s.out, s.err
}

func newTestService(stub *stubCompleter, timeout time.Duration) *ChatService {
	return NewChatService(stub, knowledge.New(knowledge.PochyBooks, ""), ai.ChatConfig{Model: "m"}, timeout)
}

func TestReply_UserTailGetsRetrieval(t *testing.T) {
	stub := &stubCompleter{out: ai.Completion{Message: "ok", Reasoning: "r"}}
	svc := newTestService(stub, time.Second)

	messages := []model.Message{{Role: model.RoleUser, Content: "Tell me about learning with Pochy"}}
	out, err := svc.Reply(context.Background(), messages)
	require.NoError(t, err)

	assert.Equal(t, &ReplyResult{Message: "ok", Reasoning: "r"}, out)
	assert.Equal(t, messages, stub.gotMessages)
	assert.Equal(t, "m", stub.gotCfg.Model)
	assert.True(t, stub.gotDeadline)
	assert.Contains(t, stub.gotPrompt, "**Relevant Pochy Books Content:**")
}

func TestReply_AssistantTailSkipsRetrieval(t *testing.T) {
	stub := &stubCompleter{out: ai.Completion{Message: "ok"}}
	svc := newTestService(stub, time.Second)

	_, err := svc.Reply(context.Background(), []model.Message{
		{Role: model.RoleUser, Content: "curiosity"},
		{Role: model.RoleAssistant, Content: "curiosity"},
	})
	require.NoError(t, err)

	assert.Equal(t, knowledge.New(knowledge.PochyBooks, "").BasePrompt(), stub.gotPrompt)
}

func TestReply_UpstreamErrorPassesThrough(t *testing.T) {
	upstreamErr := &ai.Error{Kind: ai.KindUnauthorized, Message: "Invalid API key. Please check your DEEPSEEK_API_KEY configuration."}
	svc := newTestService(&stubCompleter{err: upstreamErr}, time.Second)

	out, err := svc.Reply(context.Background(), []model.Message{{Role: model.RoleUser, Content: "hi"}})
	assert.Nil(t, out)
	assert.Same(t, upstreamErr, err)
}

func TestReply_Timeout(t *testing.T) {
	svc := newTestService(&stubCompleter{block: true}, 20*time.Millisecond)

	start := time.Now()
	_, err := svc.Reply(context.Background(), []model.Message{{Role: model.RoleUser, Content: "hi"}})
	assert.Equal(t, ai.KindTimeout, ai.KindOf(err))
	assert.Less(t, time.Since(start), time.Second)
}

func TestReply_Empty(t *testing.T) {
	_, err := newTestService(&stubCompleter{}, time.Second).Reply(context.Background(), nil)
	assert.ErrorIs(t, err, ErrMissingMessages)
}
