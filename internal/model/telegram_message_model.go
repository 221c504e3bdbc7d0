package model

import (
	"time"

	"github.com/google/uuid"
)

type TelegramMessage struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	ChatId    int64     `gorm:"not null;index"`
	Text      string    `gorm:"type:text"`
	Direction string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (TelegramMessage) TableName() string {
	return "telegram_messages"
}
