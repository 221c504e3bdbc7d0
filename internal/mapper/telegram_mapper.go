package mapper

import (
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/entity"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/model"
)

type TelegramMapper struct{}

func NewTelegramMapper() *TelegramMapper {
	return &TelegramMapper{}
}

func (m *TelegramMapper) ToEntity(t *model.TelegramMessage) *entity.TelegramMessage {
	if t == nil {
		return nil
	}

	return &entity.TelegramMessage{
		Id:        t.Id,
		UserId:    t.UserId,
		ChatId:    t.ChatId,
		Text:      t.Text,
		Direction: t.Direction,
		CreatedAt: t.CreatedAt,
	}
}

func (m *TelegramMapper) ToModel(t *entity.TelegramMessage) *model.TelegramMessage {
	if t == nil {
		return nil
	}

	return &model.TelegramMessage{
		Id:        t.Id,
		UserId:    t.UserId,
		ChatId:    t.ChatId,
		Text:      t.Text,
		Direction: t.Direction,
		CreatedAt: t.CreatedAt,
	}
}

func (m *TelegramMapper) ToEntities(msgs []*model.TelegramMessage) []*entity.TelegramMessage {
	entities := make([]*entity.TelegramMessage, len(msgs))
	for i, t := range msgs {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
