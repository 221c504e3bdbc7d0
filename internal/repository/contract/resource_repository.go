package contract

import (
	"context"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/entity"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/specification"

	"github.com/google/uuid"
)

type ResourceRepository interface {
	Create(ctx context.Context, resource *entity.LearningResource) error
	Update(ctx context.Context, resource *entity.LearningResource) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LearningResource, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LearningResource, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
