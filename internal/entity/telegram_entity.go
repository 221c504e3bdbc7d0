package entity

import (
	"time"

	"github.com/google/uuid"
)

// TelegramMessage records one message that passed through the Telegram
// bridge, in either direction.
type TelegramMessage struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;index"`
	ChatId    int64
	Text      string
	Direction string // "inbound" or "outbound"
	CreatedAt time.Time
}
