package mapper

import (
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/entity"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/model"

	"github.com/pgvector/pgvector-go"
)

type DocumentChunkMapper struct{}

func NewDocumentChunkMapper() *DocumentChunkMapper {
	return &DocumentChunkMapper{}
}

func (m *DocumentChunkMapper) ToEntity(c *model.DocumentChunk) *entity.DocumentChunk {
	if c == nil {
		return nil
	}

	return &entity.DocumentChunk{
		Id:            c.Id,
		ResourceId:    c.ResourceId,
		UserId:        c.UserId,
		DocumentTitle: c.DocumentTitle,
		ChunkText:     c.ChunkText,
		ChunkIndex:    c.ChunkIndex,
		Embedding:     c.Embedding.Slice(),
		CreatedAt:     c.CreatedAt,
	}
}

func (m *DocumentChunkMapper) ToModel(c *entity.DocumentChunk) *model.DocumentChunk {
	if c == nil {
		return nil
	}

	return &model.DocumentChunk{
		Id:            c.Id,
		ResourceId:    c.ResourceId,
		UserId:        c.UserId,
		DocumentTitle: c.DocumentTitle,
		ChunkText:     c.ChunkText,
		ChunkIndex:    c.ChunkIndex,
		Embedding:     pgvector.NewVector(c.Embedding),
		CreatedAt:     c.CreatedAt,
	}
}

func (m *DocumentChunkMapper) ToEntities(chunks []*model.DocumentChunk) []*entity.DocumentChunk {
	entities := make([]*entity.DocumentChunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
