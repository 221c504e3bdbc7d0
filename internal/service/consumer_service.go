package service

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/constant"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/dto"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/entity"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/pkg/logger"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/specification"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/unitofwork"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/embedding"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/events"
	pktNats "github.com/ThurgyThurg/wisdom-web-mentor/pkg/nats"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/storage"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	blobStore         storage.BlobStore
	eventPublisher    *pktNats.Publisher
	log               logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	blobStore storage.BlobStore,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		blobStore:         blobStore,
		eventPublisher:    eventPublisher,
		log:               log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedResourceMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer", "failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed messages can never succeed, do not retry
		return
	}

	cs.log.Info("consumer", "processing resource embedding", map[string]interface{}{"resource_id": payload.ResourceId})

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	resource, err := uow.ResourceRepository().FindOne(ctx, specification.ByID{ID: payload.ResourceId})
	if err != nil {
		cs.log.Error("consumer", "failed to load resource", map[string]interface{}{
			"resource_id": payload.ResourceId,
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}
	if resource == nil {
		cs.log.Warn("consumer", "resource not found, dropping message", map[string]interface{}{"resource_id": payload.ResourceId})
		msg.Ack() // resource deleted before processing
		return
	}

	if err := uow.ResourceRepository().UpdateStatus(ctx, resource.Id, constant.ResourceStatusProcessing); err != nil {
		cs.log.Error("consumer", "failed to mark resource processing", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}

	content, err := cs.fetchContent(ctx, resource)
	if err != nil {
		cs.log.Error("consumer", "failed to fetch resource content", map[string]interface{}{
			"resource_id": resource.Id,
			"object_key":  resource.ObjectKey,
			"error":       err.Error(),
		})
		cs.fail(ctx, uow, resource.Id)
		msg.Nack()
		return
	}

	chunks := utils.SplitText(content, constant.ResourceChunkSize, constant.ResourceChunkOverlap)
	cs.log.Info("consumer", "content split into chunks", map[string]interface{}{
		"resource_id": resource.Id,
		"chunks":      len(chunks),
	})

	var newChunks []*entity.DocumentChunk
	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			cs.log.Error("consumer", "embedding generation failed", map[string]interface{}{
				"resource_id": resource.Id,
				"chunk":       i,
				"error":       err.Error(),
			})
			cs.fail(ctx, uow, resource.Id)
			msg.Nack()
			return
		}

		newChunks = append(newChunks, &entity.DocumentChunk{
			Id:            uuid.New(),
			ResourceId:    resource.Id,
			UserId:        resource.UserId,
			DocumentTitle: resource.Title,
			ChunkText:     chunk,
			ChunkIndex:    i,
			Embedding:     res.Embedding.Values,
			CreatedAt:     time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		cs.log.Error("consumer", "failed to begin transaction", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.DocumentChunkRepository().DeleteByResourceId(ctx, resource.Id); err != nil {
		cs.log.Error("consumer", "failed to delete old chunks", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}

	if len(newChunks) > 0 {
		if err := uow.DocumentChunkRepository().CreateBulk(ctx, newChunks); err != nil {
			cs.log.Error("consumer", "failed to create chunks", map[string]interface{}{"error": err.Error()})
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		cs.log.Error("consumer", "failed to commit transaction", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}

	if err := uow.ResourceRepository().UpdateStatus(ctx, resource.Id, constant.ResourceStatusCompleted); err != nil {
		cs.log.Warn("consumer", "failed to mark resource completed", map[string]interface{}{"error": err.Error()})
	}

	if cs.eventPublisher != nil {
		if err := cs.eventPublisher.Publish(ctx, events.New(events.TypeResourceProcessed, map[string]interface{}{
			"resource_id": resource.Id,
			"chunk_count": len(newChunks),
			"user_id":     resource.UserId,
		})); err != nil {
			cs.log.Warn("consumer", "event publish failed", map[string]interface{}{"error": err.Error()})
		}
	}

	cs.log.Info("consumer", "resource processed", map[string]interface{}{
		"resource_id": resource.Id,
		"chunks":      len(newChunks),
	})
	msg.Ack()
}

func (cs *consumerService) fetchContent(ctx context.Context, resource *entity.LearningResource) (string, error) {
	body, err := cs.blobStore.Download(ctx, resource.ObjectKey)
	if err != nil {
		return "", err
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (cs *consumerService) fail(ctx context.Context, uow unitofwork.UnitOfWork, resourceId uuid.UUID) {
	if err := uow.ResourceRepository().UpdateStatus(ctx, resourceId, constant.ResourceStatusFailed); err != nil {
		cs.log.Warn("consumer", "failed to mark resource failed", map[string]interface{}{"error": err.Error()})
	}
}
