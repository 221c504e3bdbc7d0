package mapper

import (
	"time"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/entity"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/model"
)

type UserSettingsMapper struct{}

func NewUserSettingsMapper() *UserSettingsMapper {
	return &UserSettingsMapper{}
}

func (m *UserSettingsMapper) ToEntity(s *model.UserSettings) *entity.UserSettings {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.UserSettings{
		Id:                s.Id,
		UserId:            s.UserId,
		AiProvider:        s.AiProvider,
		AiModel:           s.AiModel,
		OpenAIApiKey:      s.OpenAIApiKey,
		AnthropicApiKey:   s.AnthropicApiKey,
		OllamaBaseURL:     s.OllamaBaseURL,
		DailyMessageLimit: s.DailyMessageLimit,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}

func (m *UserSettingsMapper) ToModel(s *entity.UserSettings) *model.UserSettings {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.UserSettings{
		Id:                s.Id,
		UserId:            s.UserId,
		AiProvider:        s.AiProvider,
		AiModel:           s.AiModel,
		OpenAIApiKey:      s.OpenAIApiKey,
		AnthropicApiKey:   s.AnthropicApiKey,
		OllamaBaseURL:     s.OllamaBaseURL,
		DailyMessageLimit: s.DailyMessageLimit,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}
