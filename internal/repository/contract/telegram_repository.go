package contract

import (
	"context"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/entity"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/specification"
)

type TelegramRepository interface {
	Create(ctx context.Context, msg *entity.TelegramMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TelegramMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
