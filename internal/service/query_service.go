package service

import (
	"context"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/dto"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/pkg/logger"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/pkg/serverutils"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/specification"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/unitofwork"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/agent/retrieval"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/embedding"

	"github.com/google/uuid"
)

const defaultQueryLimit = 10

type IQueryService interface {
	QueryDocuments(ctx context.Context, userId uuid.UUID, req *dto.QueryDocumentsRequest) (*dto.QueryDocumentsResponse, error)
}

type queryService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	log               logger.ILogger
}

func NewQueryService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IQueryService {
	return &queryService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		log:               log,
	}
}

// QueryDocuments runs a semantic search over the user's document chunks.
// Unlike the agent pipeline this ranks in the database, so it scales past
// what an in-process scan would bear.
func (s *queryService) QueryDocuments(ctx context.Context, userId uuid.UUID, req *dto.QueryDocumentsRequest) (*dto.QueryDocumentsResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	res, err := s.embeddingProvider.Generate(req.Query, "RETRIEVAL_QUERY")
	if err != nil {
		s.log.Error("query", "query embedding failed", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return nil, serverutils.NewAppError(502, "Failed to embed the search query")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	scored, err := uow.DocumentChunkRepository().SearchSimilarWithScore(
		ctx, res.Embedding.Values, limit, userId, retrieval.SimilarityThreshold,
	)
	if err != nil {
		return nil, err
	}

	total, err := uow.DocumentChunkRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	results := make([]dto.QueryDocumentResult, len(scored))
	for i, sc := range scored {
		results[i] = dto.QueryDocumentResult{
			ResourceId:    sc.Chunk.ResourceId,
			DocumentTitle: sc.Chunk.DocumentTitle,
			ChunkText:     sc.Chunk.ChunkText,
			ChunkIndex:    sc.Chunk.ChunkIndex,
			Similarity:    sc.Similarity,
		}
	}

	return &dto.QueryDocumentsResponse{
		Results:       results,
		TotalSearched: total,
	}, nil
}
