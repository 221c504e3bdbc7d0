package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/entity"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/specification"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/unitofwork"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.DocumentChunkRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Document Chunk Repository", func(t *testing.T) {
		count, err := uow.DocumentChunkRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("DocumentChunk count: %d", count)
	})

	t.Run("Conversation Round Trip", func(t *testing.T) {
		ctx := context.Background()

		user := &entity.User{
			Id:           uuid.New(),
			Email:        "test-integration-" + uuid.New().String() + "@example.com",
			Username:     "integration-test",
			PasswordHash: "not-a-real-hash",
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)
		defer uow.UserRepository().Delete(ctx, user.Id)

		conversation := &entity.Conversation{
			Id:     uuid.New(),
			UserId: user.Id,
			Title:  "integration test",
			Messages: []entity.ConversationMessage{
				{Role: "user", Content: "hello"},
				{Role: "assistant", Content: "hi", Agent: "general_assistant", ActionTaken: "response"},
			},
		}
		err = uow.ConversationRepository().Create(ctx, conversation)
		assert.NoError(t, err)
		defer uow.ConversationRepository().Delete(ctx, conversation.Id)

		loaded, err := uow.ConversationRepository().FindOne(ctx,
			specification.ByID{ID: conversation.Id},
			specification.UserOwnedBy{UserID: user.Id},
		)
		assert.NoError(t, err)
		if assert.NotNil(t, loaded) {
			assert.Len(t, loaded.Messages, 2)
			assert.Equal(t, "general_assistant", loaded.Messages[1].Agent)
		}
	})

	t.Run("Task Parent Child", func(t *testing.T) {
		ctx := context.Background()

		user := &entity.User{
			Id:           uuid.New(),
			Email:        "test-tasks-" + uuid.New().String() + "@example.com",
			Username:     "integration-test",
			PasswordHash: "not-a-real-hash",
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)
		defer uow.UserRepository().Delete(ctx, user.Id)

		parent := &entity.Task{
			Id:     uuid.New(),
			Title:  "Learn Go",
			Status: "pending",
			UserId: user.Id,
		}
		err = uow.TaskRepository().Create(ctx, parent)
		assert.NoError(t, err)
		defer uow.TaskRepository().Delete(ctx, parent.Id)

		parentId := parent.Id
		sub := &entity.Task{
			Id:           uuid.New(),
			Title:        "Install the toolchain",
			Status:       "pending",
			ParentTaskId: &parentId,
			UserId:       user.Id,
		}
		err = uow.TaskRepository().CreateBulk(ctx, []*entity.Task{sub})
		assert.NoError(t, err)
		defer uow.TaskRepository().Delete(ctx, sub.Id)

		subs, err := uow.TaskRepository().FindAll(ctx,
			specification.ByParentTask{ParentID: parent.Id},
			specification.UserOwnedBy{UserID: user.Id},
		)
		assert.NoError(t, err)
		assert.Len(t, subs, 1)

		top, err := uow.TaskRepository().FindAll(ctx,
			specification.UserOwnedBy{UserID: user.Id},
			specification.TopLevelTasks{},
		)
		assert.NoError(t, err)
		assert.Len(t, top, 1)
	})

	t.Run("Similarity Search Threshold", func(t *testing.T) {
		ctx := context.Background()

		user := &entity.User{
			Id:           uuid.New(),
			Email:        "test-chunks-" + uuid.New().String() + "@example.com",
			Username:     "integration-test",
			PasswordHash: "not-a-real-hash",
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)
		defer uow.UserRepository().Delete(ctx, user.Id)

		aligned := make([]float32, 1536)
		aligned[0] = 1
		orthogonal := make([]float32, 1536)
		orthogonal[1] = 1

		resourceId := uuid.New()
		chunks := []*entity.DocumentChunk{
			{Id: uuid.New(), ResourceId: resourceId, UserId: user.Id, DocumentTitle: "Doc", ChunkText: "aligned", ChunkIndex: 0, Embedding: aligned},
			{Id: uuid.New(), ResourceId: resourceId, UserId: user.Id, DocumentTitle: "Doc", ChunkText: "orthogonal", ChunkIndex: 1, Embedding: orthogonal},
		}
		err = uow.DocumentChunkRepository().CreateBulk(ctx, chunks)
		assert.NoError(t, err)
		defer uow.DocumentChunkRepository().DeleteByResourceId(ctx, resourceId)

		// The orthogonal chunk scores 0 and must not clear the cutoff; the
		// matching chunk must come back with a strictly greater similarity.
		scored, err := uow.DocumentChunkRepository().SearchSimilarWithScore(ctx, aligned, 5, user.Id, 0.7)
		assert.NoError(t, err)
		if assert.Len(t, scored, 1) {
			assert.Equal(t, "aligned", scored[0].Chunk.ChunkText)
			assert.Greater(t, scored[0].Similarity, 0.7)
		}
	})
}
