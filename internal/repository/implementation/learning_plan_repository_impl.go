package implementation

import (
	"context"
	"errors"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/entity"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/mapper"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/model"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/contract"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LearningPlanRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LearningPlanMapper
}

func NewLearningPlanRepository(db *gorm.DB) contract.LearningPlanRepository {
	return &LearningPlanRepositoryImpl{
		db:     db,
		mapper: mapper.NewLearningPlanMapper(),
	}
}

func (r *LearningPlanRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LearningPlanRepositoryImpl) Create(ctx context.Context, plan *entity.LearningPlan) error {
	m := r.mapper.ToModel(plan)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*plan = *r.mapper.ToEntity(m)
	return nil
}

func (r *LearningPlanRepositoryImpl) Update(ctx context.Context, plan *entity.LearningPlan) error {
	m := r.mapper.ToModel(plan)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*plan = *r.mapper.ToEntity(m)
	return nil
}

func (r *LearningPlanRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.LearningPlan{}, id).Error
}

func (r *LearningPlanRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LearningPlan, error) {
	var m model.LearningPlan
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LearningPlanRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LearningPlan, error) {
	var models []*model.LearningPlan
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *LearningPlanRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.LearningPlan{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
