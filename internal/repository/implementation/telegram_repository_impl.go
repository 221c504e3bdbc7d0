package implementation

import (
	"context"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/entity"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/mapper"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/model"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/contract"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/specification"

	"gorm.io/gorm"
)

type TelegramRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TelegramMapper
}

func NewTelegramRepository(db *gorm.DB) contract.TelegramRepository {
	return &TelegramRepositoryImpl{
		db:     db,
		mapper: mapper.NewTelegramMapper(),
	}
}

func (r *TelegramRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TelegramRepositoryImpl) Create(ctx context.Context, msg *entity.TelegramMessage) error {
	m := r.mapper.ToModel(msg)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*msg = *r.mapper.ToEntity(m)
	return nil
}

func (r *TelegramRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TelegramMessage, error) {
	var models []*model.TelegramMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TelegramRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.TelegramMessage{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
