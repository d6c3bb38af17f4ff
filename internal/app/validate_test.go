package app

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pochy-chat/internal/model"
)

func TestValidateMessages(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		err  error
	}{
		{"absent", ``, ErrMissingMessages},
		{"null", `null`, ErrMissingMessages},
		{"not an array", `"hello"`, ErrMissingMessages},
		{"object", `{"role":"user","content":"hi"}`, ErrMissingMessages},
		{"empty", `[]`, ErrMissingMessages},
		{"missing content", `[{"role":"user"}]`, ErrMalformedMessage},
		{"missing role", `[{"content":"hi"}]`, ErrMalformedMessage},
		{"empty content", `[{"role":"user","content":""}]`, ErrMalformedMessage},
		{"null element", `[null]`, ErrMalformedMessage},
		{"non-object element", `["hi"]`, ErrMalformedMessage},
		{"numeric content", `[{"role":"user","content":5}]`, ErrMalformedMessage},
		{"admin role", `[{"role":"admin","content":"hi"}]`, ErrInvalidRole},
		{"bad role with missing content", `[{"role":"admin"}]`, ErrMalformedMessage},
		{"first failure wins", `[{"role":"admin","content":"hi"},{"role":"user"}]`, ErrInvalidRole},
		{"later malformed", `[{"role":"user","content":"hi"},{"role":"user"}]`, ErrMalformedMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateMessages(json.RawMessage(tt.raw))
			assert.ErrorIs(t, err, tt.err)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestValidateMessages_OK(t *testing.T) {
	raw := json.RawMessage(`[
		{"role":"system","content":"be nice"},
		{"role":"user","content":"  "},
		{"role":"assistant","content":"sure","extra":true}
	]`)

	messages, err := ValidateMessages(raw)
	require.NoError(t, err)
	assert.Equal(t, []model.Message{
		{Role: model.RoleSystem, Content: "be nice"},
		{Role: model.RoleUser, Content: "  "},
		{Role: model.RoleAssistant, Content: "sure"},
	}, messages)
}
