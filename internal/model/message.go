package model

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is one turn of a client-supplied conversation. Conversations are
// never stored server-side.
type Message struct {
	Role    Role   `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// LastMessage returns the final message of a conversation.
func LastMessage(messages []Message) (Message, bool) {
	if len(messages) == 0 {
		return Message{}, false
	}
	return messages[len(messages)-1], true
}
