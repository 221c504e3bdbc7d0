package service

import (
	"context"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/unitofwork"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/agent/retrieval"

	"github.com/google/uuid"
)

// chunkSource adapts the document chunk repository to the retriever.
type chunkSource struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewChunkSource(uowFactory unitofwork.RepositoryFactory) retrieval.ChunkSource {
	return &chunkSource{uowFactory: uowFactory}
}

func (s *chunkSource) FindAllByUser(ctx context.Context, userId uuid.UUID) ([]retrieval.Chunk, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	chunks, err := uow.DocumentChunkRepository().FindAllByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	res := make([]retrieval.Chunk, len(chunks))
	for i, c := range chunks {
		res[i] = retrieval.Chunk{
			ChunkText:     c.ChunkText,
			ChunkIndex:    c.ChunkIndex,
			DocumentTitle: c.DocumentTitle,
			Embedding:     c.Embedding,
		}
	}
	return res, nil
}
