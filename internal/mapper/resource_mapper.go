package mapper

import (
	"time"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/entity"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/model"

	"gorm.io/gorm"
)

type ResourceMapper struct{}

func NewResourceMapper() *ResourceMapper {
	return &ResourceMapper{}
}

func (m *ResourceMapper) ToEntity(r *model.LearningResource) *entity.LearningResource {
	if r == nil {
		return nil
	}

	var deletedAt *time.Time
	if r.DeletedAt.Valid {
		t := r.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.LearningResource{
		Id:          r.Id,
		Title:       r.Title,
		Type:        r.Type,
		URL:         r.URL,
		ObjectKey:   r.ObjectKey,
		Status:      r.Status,
		ContentType: r.ContentType,
		SizeBytes:   r.SizeBytes,
		UserId:      r.UserId,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   r.DeletedAt.Valid,
	}
}

func (m *ResourceMapper) ToModel(r *entity.LearningResource) *model.LearningResource {
	if r == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if r.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *r.DeletedAt, Valid: true}
	} else if r.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.LearningResource{
		Id:          r.Id,
		Title:       r.Title,
		Type:        r.Type,
		URL:         r.URL,
		ObjectKey:   r.ObjectKey,
		Status:      r.Status,
		ContentType: r.ContentType,
		SizeBytes:   r.SizeBytes,
		UserId:      r.UserId,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *ResourceMapper) ToEntities(resources []*model.LearningResource) []*entity.LearningResource {
	entities := make([]*entity.LearningResource, len(resources))
	for i, r := range resources {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
