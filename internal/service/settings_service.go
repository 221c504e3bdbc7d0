package service

import (
	"context"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/dto"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/entity"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/pkg/serverutils"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/memory"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/unitofwork"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/llm"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/llm/factory"

	"github.com/google/uuid"
)

type ISettingsService interface {
	Show(ctx context.Context, userId uuid.UUID) (*dto.ShowSettingsResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateSettingsRequest) error
	Resolve(ctx context.Context, userId uuid.UUID) (*entity.UserSettings, error)
	ProviderFor(ctx context.Context, userId uuid.UUID) (llm.LLMProvider, *entity.UserSettings, error)
}

type settingsService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.SettingsCache
}

func NewSettingsService(uowFactory unitofwork.RepositoryFactory, cache *memory.SettingsCache) ISettingsService {
	return &settingsService{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func (s *settingsService) Show(ctx context.Context, userId uuid.UUID) (*dto.ShowSettingsResponse, error) {
	settings, err := s.Resolve(ctx, userId)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, serverutils.NewNotFoundError("Settings not configured yet")
	}

	return &dto.ShowSettingsResponse{
		AiProvider:        settings.AiProvider,
		AiModel:           settings.AiModel,
		HasOpenAIKey:      settings.OpenAIApiKey != "",
		HasAnthropicKey:   settings.AnthropicApiKey != "",
		OllamaBaseURL:     settings.OllamaBaseURL,
		DailyMessageLimit: settings.DailyMessageLimit,
	}, nil
}

func (s *settingsService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateSettingsRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserSettingsRepository().FindByUserId(ctx, userId)
	if err != nil {
		return err
	}

	settings := entity.UserSettings{
		Id:                uuid.New(),
		UserId:            userId,
		AiProvider:        req.AiProvider,
		AiModel:           req.AiModel,
		OpenAIApiKey:      req.OpenAIApiKey,
		AnthropicApiKey:   req.AnthropicApiKey,
		OllamaBaseURL:     req.OllamaBaseURL,
		DailyMessageLimit: req.DailyMessageLimit,
	}
	if existing != nil {
		settings.Id = existing.Id
		settings.CreatedAt = existing.CreatedAt
		// Blank key fields in the request mean "keep what is stored".
		if settings.OpenAIApiKey == "" {
			settings.OpenAIApiKey = existing.OpenAIApiKey
		}
		if settings.AnthropicApiKey == "" {
			settings.AnthropicApiKey = existing.AnthropicApiKey
		}
	}

	if err := uow.UserSettingsRepository().Upsert(ctx, &settings); err != nil {
		return err
	}

	s.cache.Invalidate(userId)
	return nil
}

// Resolve loads settings through the in-memory cache.
func (s *settingsService) Resolve(ctx context.Context, userId uuid.UUID) (*entity.UserSettings, error) {
	if cached, ok := s.cache.Get(userId); ok {
		return cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	settings, err := uow.UserSettingsRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		s.cache.Save(settings)
	}
	return settings, nil
}

// ProviderFor builds the user's configured LLM backend. Missing or
// incomplete configuration is a hard error: the agent pipeline refuses the
// turn instead of silently answering with someone else's credentials.
func (s *settingsService) ProviderFor(ctx context.Context, userId uuid.UUID) (llm.LLMProvider, *entity.UserSettings, error) {
	settings, err := s.Resolve(ctx, userId)
	if err != nil {
		return nil, nil, err
	}
	if settings == nil {
		return nil, nil, serverutils.NewBadRequestError("AI provider is not configured. Set it up in settings first.")
	}

	apiKey := ""
	switch settings.AiProvider {
	case "openai":
		apiKey = settings.OpenAIApiKey
	case "anthropic":
		apiKey = settings.AnthropicApiKey
	}

	provider, err := factory.NewLLMProvider(settings.AiProvider, settings.AiModel, settings.OllamaBaseURL, apiKey)
	if err != nil {
		return nil, nil, serverutils.NewBadRequestError("AI provider configuration is invalid: " + err.Error())
	}
	return provider, settings, nil
}
