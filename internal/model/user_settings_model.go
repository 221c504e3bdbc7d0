package model

import (
	"time"

	"github.com/google/uuid"
)

type UserSettings struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	AiProvider        string    `gorm:"type:varchar(50);not null;default:'openai'"`
	AiModel           string    `gorm:"type:varchar(100)"`
	OpenAIApiKey      string    `gorm:"type:text"`
	AnthropicApiKey   string    `gorm:"type:text"`
	OllamaBaseURL     string    `gorm:"type:varchar(255)"`
	DailyMessageLimit int       `gorm:"default:100"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}
