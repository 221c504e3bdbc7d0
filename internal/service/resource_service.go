package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/constant"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/dto"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/entity"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/pkg/logger"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/pkg/serverutils"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/specification"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/unitofwork"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/events"
	pktNats "github.com/ThurgyThurg/wisdom-web-mentor/pkg/nats"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/storage"

	"github.com/google/uuid"
)

type UploadResourceInput struct {
	Title       string
	Filename    string
	ContentType string
	SizeBytes   int64
	Body        io.Reader
}

type IResourceService interface {
	Upload(ctx context.Context, userId uuid.UUID, in *UploadResourceInput) (*dto.UploadResourceResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowResourceResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.ShowResourceResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Reprocess(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type resourceService struct {
	uowFactory       unitofwork.RepositoryFactory
	blobStore        storage.BlobStore
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	log              logger.ILogger
}

func NewResourceService(
	uowFactory unitofwork.RepositoryFactory,
	blobStore storage.BlobStore,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IResourceService {
	return &resourceService{
		uowFactory:       uowFactory,
		blobStore:        blobStore,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

// Upload stores the document in object storage and records it as pending.
// Chunking and embedding happen asynchronously; the response carries the
// pending status so clients can poll.
func (s *resourceService) Upload(ctx context.Context, userId uuid.UUID, in *UploadResourceInput) (*dto.UploadResourceResponse, error) {
	id := uuid.New()
	objectKey := fmt.Sprintf("resources/%s/%s%s", userId, id, filepath.Ext(in.Filename))

	if err := s.blobStore.Upload(ctx, objectKey, in.Body, in.SizeBytes, in.ContentType); err != nil {
		s.log.Error("resource", "blob upload failed", map[string]interface{}{
			"object_key": objectKey,
			"error":      err.Error(),
		})
		return nil, serverutils.NewAppError(502, "Failed to store the uploaded file")
	}

	title := in.Title
	if title == "" {
		title = strings.TrimSuffix(in.Filename, filepath.Ext(in.Filename))
	}

	resource := entity.LearningResource{
		Id:          id,
		Title:       title,
		Type:        "document",
		ObjectKey:   objectKey,
		Status:      constant.ResourceStatusPending,
		ContentType: in.ContentType,
		SizeBytes:   in.SizeBytes,
		UserId:      userId,
		CreatedAt:   time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ResourceRepository().Create(ctx, &resource); err != nil {
		return nil, err
	}

	if err := s.enqueueEmbedding(ctx, resource.Id); err != nil {
		// The row stays pending; Reprocess can pick it up later.
		s.log.Error("resource", "failed to enqueue embedding", map[string]interface{}{
			"resource_id": resource.Id,
			"error":       err.Error(),
		})
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.New(events.TypeResourceUploaded, map[string]interface{}{
			"resource_id": resource.Id,
			"title":       resource.Title,
			"user_id":     userId,
		})); err != nil {
			s.log.Warn("resource", "event publish failed", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.UploadResourceResponse{Id: resource.Id, Status: resource.Status}, nil
}

func (s *resourceService) enqueueEmbedding(ctx context.Context, resourceId uuid.UUID) error {
	msg := dto.PublishEmbedResourceMessage{ResourceId: resourceId}
	msgJson, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, msgJson)
}

func (s *resourceService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowResourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	resource, err := uow.ResourceRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, serverutils.NewNotFoundError("Resource not found")
	}

	chunkCount, err := uow.DocumentChunkRepository().Count(ctx, specification.ByResource{ResourceID: id})
	if err != nil {
		return nil, err
	}
	return toShowResourceResponse(resource, chunkCount), nil
}

func (s *resourceService) List(ctx context.Context, userId uuid.UUID) ([]*dto.ShowResourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	resources, err := uow.ResourceRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ShowResourceResponse, len(resources))
	for i, r := range resources {
		count, err := uow.DocumentChunkRepository().Count(ctx, specification.ByResource{ResourceID: r.Id})
		if err != nil {
			return nil, err
		}
		res[i] = toShowResourceResponse(r, count)
	}
	return res, nil
}

// Delete removes the resource row, its chunks, and the stored blob. The blob
// delete runs last; object storage failures leave only an orphan blob, never
// dangling rows.
func (s *resourceService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	resource, err := uow.ResourceRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if resource == nil {
		return serverutils.NewNotFoundError("Resource not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.DocumentChunkRepository().DeleteByResourceId(ctx, id); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.ResourceRepository().Delete(ctx, id); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if resource.ObjectKey != "" {
		if err := s.blobStore.Delete(ctx, resource.ObjectKey); err != nil {
			s.log.Warn("resource", "blob delete failed", map[string]interface{}{
				"object_key": resource.ObjectKey,
				"error":      err.Error(),
			})
		}
	}
	return nil
}

// Reprocess re-enqueues chunking and embedding for an existing resource.
func (s *resourceService) Reprocess(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	resource, err := uow.ResourceRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if resource == nil {
		return serverutils.NewNotFoundError("Resource not found")
	}

	if err := uow.ResourceRepository().UpdateStatus(ctx, id, constant.ResourceStatusPending); err != nil {
		return err
	}
	return s.enqueueEmbedding(ctx, id)
}

func toShowResourceResponse(r *entity.LearningResource, chunkCount int64) *dto.ShowResourceResponse {
	return &dto.ShowResourceResponse{
		Id:          r.Id,
		Title:       r.Title,
		Type:        r.Type,
		URL:         r.URL,
		Status:      r.Status,
		ContentType: r.ContentType,
		SizeBytes:   r.SizeBytes,
		ChunkCount:  chunkCount,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
