package contract

import (
	"context"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/entity"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/specification"

	"github.com/google/uuid"
)

type LearningPlanRepository interface {
	Create(ctx context.Context, plan *entity.LearningPlan) error
	Update(ctx context.Context, plan *entity.LearningPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LearningPlan, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LearningPlan, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
