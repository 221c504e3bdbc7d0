package mapper

import (
	"encoding/json"
	"time"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/entity"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LearningPlanMapper struct{}

func NewLearningPlanMapper() *LearningPlanMapper {
	return &LearningPlanMapper{}
}

func (m *LearningPlanMapper) ToEntity(p *model.LearningPlan) *entity.LearningPlan {
	if p == nil {
		return nil
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	var modules []entity.PlanModule
	if len(p.PlanData) > 0 {
		_ = json.Unmarshal(p.PlanData, &modules)
	}

	return &entity.LearningPlan{
		Id:                    p.Id,
		Title:                 p.Title,
		Subject:               p.Subject,
		Description:           p.Description,
		DifficultyLevel:       p.DifficultyLevel,
		Modules:               modules,
		EstimatedDurationDays: p.EstimatedDurationDays,
		Status:                p.Status,
		AgentGenerated:        p.AgentGenerated,
		UserId:                p.UserId,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             updatedAt,
		DeletedAt:             deletedAt,
		IsDeleted:             p.DeletedAt.Valid,
	}
}

func (m *LearningPlanMapper) ToModel(p *entity.LearningPlan) *model.LearningPlan {
	if p == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if p.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	} else if p.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	modules := p.Modules
	if modules == nil {
		modules = []entity.PlanModule{}
	}
	raw, _ := json.Marshal(modules)

	return &model.LearningPlan{
		Id:                    p.Id,
		Title:                 p.Title,
		Subject:               p.Subject,
		Description:           p.Description,
		DifficultyLevel:       p.DifficultyLevel,
		PlanData:              datatypes.JSON(raw),
		EstimatedDurationDays: p.EstimatedDurationDays,
		Status:                p.Status,
		AgentGenerated:        p.AgentGenerated,
		UserId:                p.UserId,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             updatedAt,
		DeletedAt:             deletedAt,
	}
}

func (m *LearningPlanMapper) ToEntities(plans []*model.LearningPlan) []*entity.LearningPlan {
	entities := make([]*entity.LearningPlan, len(plans))
	for i, p := range plans {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
