package app

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"

	"pochy-chat/internal/model"
)

var (
	ErrMissingMessages  = errors.New("messages array is required")
	ErrMalformedMessage = errors.New("each message must have role and content")
	ErrInvalidRole      = errors.New("message role must be user, assistant, or system")
)

var validate = validator.New()

// ValidateMessages decodes and checks the raw "messages" field of a chat
// request. Messages are checked in order and the first failure wins; within
// one message a missing role or content is reported before a bad role.
func ValidateMessages(raw json.RawMessage) ([]model.Message, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrMissingMessages
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil || len(items) == 0 {
		return nil, ErrMissingMessages
	}

	messages := make([]model.Message, 0, len(items))
	for _, item := range items {
		var msg model.Message
		if err := json.Unmarshal(item, &msg); err != nil {
			return nil, ErrMalformedMessage
		}
		if err := validateMessage(msg); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func validateMessage(msg model.Message) error {
	err := validate.Struct(msg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ErrMalformedMessage
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return ErrMalformedMessage
		}
	}
	return ErrInvalidRole
}

// IsValidationError reports whether err came from ValidateMessages.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingMessages) ||
		errors.Is(err, ErrMalformedMessage) ||
		errors.Is(err, ErrInvalidRole)
}
