package implementation

import (
	"context"
	"errors"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/entity"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/mapper"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/model"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserSettingsRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserSettingsMapper
}

func NewUserSettingsRepository(db *gorm.DB) contract.UserSettingsRepository {
	return &UserSettingsRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserSettingsMapper(),
	}
}

func (r *UserSettingsRepositoryImpl) Create(ctx context.Context, settings *entity.UserSettings) error {
	m := r.mapper.ToModel(settings)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*settings = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserSettingsRepositoryImpl) Update(ctx context.Context, settings *entity.UserSettings) error {
	m := r.mapper.ToModel(settings)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*settings = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserSettingsRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.UserSettings, error) {
	var m model.UserSettings
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

// Upsert writes settings keyed by user_id so a settings save works whether
// or not a row exists yet.
func (r *UserSettingsRepositoryImpl) Upsert(ctx context.Context, settings *entity.UserSettings) error {
	m := r.mapper.ToModel(settings)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"ai_provider", "ai_model", "open_ai_api_key",
			"anthropic_api_key", "ollama_base_url", "daily_message_limit",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*settings = *r.mapper.ToEntity(m)
	return nil
}
