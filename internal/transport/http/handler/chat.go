package handler

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phuslu/log"

	"pochy-chat/internal/ai"
	"pochy-chat/internal/app"
	"pochy-chat/internal/logging"
	"pochy-chat/internal/model"
	"pochy-chat/internal/transport/http/middleware"
	"pochy-chat/internal/transport/http/response"
)

const previewRunes = 100

type ChatReplier interface {
	Reply(ctx context.Context, messages []model.Message) (*app.ReplyResult, error)
}

type RateLimiter interface {
	Allow(clientID string) bool
	Remaining(clientID string) int
	ResetAt(clientID string) time.Time
	Limit() int
}

type ChatHandler struct {
	chatService ChatReplier
	limiter     RateLimiter
	ready       bool
	logger      *log.Logger
}

type ChatResponse struct {
	Message   string `json:"message"`
	Reasoning string `json:"reasoning,omitempty"`
}

func NewChatHandler(chatService ChatReplier, limiter RateLimiter, ready bool, logger *log.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		limiter:     limiter,
		ready:       ready,
		logger:      logger,
	}
}

// SendMessage handles POST /api/chat. Each step either responds and stops,
// or hands over to the next one.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	clientID := middleware.ClientID(c)

	allowed := h.limiter.Allow(clientID)
	h.setRateHeaders(c, clientID)
	if !allowed {
		h.logger.Warn().Str("client", clientID).Int("limit", h.limiter.Limit()).Msg("rate limit exceeded")
		response.Error(c, http.StatusTooManyRequests, response.MsgRateLimited)
		return
	}

	if !h.ready {
		response.Error(c, http.StatusInternalServerError, response.MsgNotConfigured)
		return
	}

	messagesRaw, includeReasoning, err := parseChatBody(c)
	if err != nil {
		if errors.Is(err, errInvalidJSON) {
			response.Error(c, http.StatusBadRequest, response.MsgInvalidJSON)
			return
		}
		response.Error(c, http.StatusBadRequest, validationMessage(err))
		return
	}

	messages, err := app.ValidateMessages(messagesRaw)
	if err != nil {
		response.Error(c, http.StatusBadRequest, validationMessage(err))
		return
	}

	last, _ := model.LastMessage(messages)
	h.logger.Info().
		Str("client", clientID).
		Str("request_id", middleware.GetRequestID(c)).
		Str("preview", logging.Truncate(last.Content, previewRunes)).
		Msg("chat request")

	result, err := h.chatService.Reply(c.Request.Context(), messages)
	if err != nil {
		var upstreamErr *ai.Error
		switch {
		case errors.As(err, &upstreamErr):
			h.logger.Error().
				Str("client", clientID).
				Str("kind", string(upstreamErr.Kind)).
				Int("upstream_status", upstreamErr.Status).
				Err(err).
				Msg("upstream chat failed")
			response.Error(c, http.StatusInternalServerError, upstreamErr.Error())
		case app.IsValidationError(err):
			response.Error(c, http.StatusBadRequest, validationMessage(err))
		default:
			h.logger.Error().Str("client", clientID).Err(err).Msg("chat failed")
			response.Error(c, http.StatusInternalServerError, response.MsgUnexpected)
		}
		return
	}

	out := ChatResponse{Message: result.Message}
	if includeReasoning {
		out.Reasoning = result.Reasoning
	}
	response.OK(c, out)
}

// Preflight handles OPTIONS /api/chat.
func (h *ChatHandler) Preflight(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type")
	c.Status(http.StatusOK)
}

func (h *ChatHandler) setRateHeaders(c *gin.Context, clientID string) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(h.limiter.Limit()))
	remaining := h.limiter.Remaining(clientID)
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	if remaining > 0 {
		return
	}
	if reset := h.limiter.ResetAt(clientID); !reset.IsZero() {
		wait := int(math.Ceil(time.Until(reset).Seconds()))
		if wait < 1 {
			wait = 1
		}
		c.Header("Retry-After", strconv.Itoa(wait))
	}
}

var errInvalidJSON = errors.New("invalid json body")

// parseChatBody pulls the messages field and the reasoning flag out of the
// body. A body that is valid JSON but not an object has no messages field.
func parseChatBody(c *gin.Context) (json.RawMessage, bool, error) {
	body, err := c.GetRawData()
	if err != nil || !json.Valid(body) {
		return nil, false, errInvalidJSON
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, false, app.ErrMissingMessages
	}

	var includeReasoning bool
	if raw, ok := fields["includeReasoning"]; ok {
		_ = json.Unmarshal(raw, &includeReasoning)
	}
	return fields["messages"], includeReasoning, nil
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, app.ErrMalformedMessage):
		return response.MsgMalformed
	case errors.Is(err, app.ErrInvalidRole):
		return response.MsgInvalidRole
	default:
		return response.MsgMissingMessages
	}
}
