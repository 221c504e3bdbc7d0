package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserSettings holds the per-user AI configuration. Provider and model drive
// which LLM backend answers that user's messages.
type UserSettings struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId            uuid.UUID `gorm:"type:uuid;index"`
	AiProvider        string
	AiModel           string
	OpenAIApiKey      string
	AnthropicApiKey   string
	OllamaBaseURL     string
	DailyMessageLimit int
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}
