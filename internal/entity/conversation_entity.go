package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConversationMessage is one turn inside a conversation's message log.
// Agent and ActionTaken are only set on assistant turns.
type ConversationMessage struct {
	Role        string    `json:"role"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
	Agent       string    `json:"agent,omitempty"`
	ActionTaken string    `json:"action_taken,omitempty"`
}

type Conversation struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;index"`
	Title     string
	Messages  []ConversationMessage
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
