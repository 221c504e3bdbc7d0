package unitofwork

import (
	"context"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	UserSettingsRepository() contract.UserSettingsRepository
	ConversationRepository() contract.ConversationRepository
	NoteRepository() contract.NoteRepository
	TaskRepository() contract.TaskRepository
	LearningPlanRepository() contract.LearningPlanRepository
	ResourceRepository() contract.ResourceRepository
	DocumentChunkRepository() contract.DocumentChunkRepository
	TelegramRepository() contract.TelegramRepository
}
