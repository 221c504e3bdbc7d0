package dto

import (
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/agent/retrieval"

	"github.com/google/uuid"
)

type AgentMessageRequest struct {
	Message        string     `json:"message" validate:"required"`
	UserId         uuid.UUID  `json:"user_id" validate:"required"`
	ConversationId *uuid.UUID `json:"conversation_id"`
}

type AgentMessageResponse struct {
	Response       string             `json:"response"`
	Agent          string             `json:"agent"`
	ActionTaken    string             `json:"actionTaken"`
	ContextUsed    []retrieval.Result `json:"context_used,omitempty"`
	ConversationId uuid.UUID          `json:"conversation_id"`
}

type ListConversationsResponse struct {
	Id           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	MessageCount int       `json:"message_count"`
	UpdatedAt    string    `json:"updated_at,omitempty"`
}

type PublishEmbedResourceMessage struct {
	ResourceId uuid.UUID `json:"resource_id"`
}
