package retrieval

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/embedding"

	"github.com/google/uuid"
)

const (
	// DefaultLimit caps how many chunks are injected into the research prompt.
	DefaultLimit = 5

	// SimilarityThreshold filters out chunks that are only vaguely related.
	SimilarityThreshold = 0.7
)

// Chunk is one stored document slice with its embedding, as loaded from the store.
type Chunk struct {
	ChunkText     string
	ChunkIndex    int
	DocumentTitle string
	Embedding     []float32
}

// ChunkSource loads every chunk owned by a user. Implemented by the document
// chunk repository.
type ChunkSource interface {
	FindAllByUser(ctx context.Context, userId uuid.UUID) ([]Chunk, error)
}

// Result is a ranked retrieval hit.
type Result struct {
	ChunkText     string  `json:"chunk_text"`
	DocumentTitle string  `json:"document_title"`
	Similarity    float64 `json:"similarity"`
	ChunkIndex    int     `json:"chunk_index"`
}

// Retriever ranks a user's document chunks against a query embedding.
//
// The scan is deliberately linear over all of the user's chunks; personal
// knowledge bases are small enough that an ANN index is not worth carrying.
type Retriever struct {
	embeddingProvider embedding.EmbeddingProvider
	source            ChunkSource
	logger            *log.Logger
}

func NewRetriever(embeddingProvider embedding.EmbeddingProvider, source ChunkSource, logger *log.Logger) *Retriever {
	return &Retriever{
		embeddingProvider: embeddingProvider,
		source:            source,
		logger:            logger,
	}
}

// Retrieve returns at most limit chunks with similarity strictly above the
// threshold, sorted descending. An empty result is not an error: it means the
// caller should answer from general knowledge.
func (r *Retriever) Retrieve(ctx context.Context, query string, userId uuid.UUID, limit int) ([]Result, int, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	embeddingRes, err := r.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, 0, fmt.Errorf("query embedding failed: %w", err)
	}
	queryVector := embeddingRes.Embedding.Values

	chunks, err := r.source.FindAllByUser(ctx, userId)
	if err != nil {
		return nil, 0, fmt.Errorf("loading document chunks failed: %w", err)
	}
	if len(chunks) == 0 {
		return []Result{}, 0, nil
	}

	scored := make([]Result, 0, len(chunks))
	for _, c := range chunks {
		scored = append(scored, Result{
			ChunkText:     c.ChunkText,
			DocumentTitle: c.DocumentTitle,
			Similarity:    CosineSimilarity(queryVector, c.Embedding),
			ChunkIndex:    c.ChunkIndex,
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	results := make([]Result, 0, limit)
	for _, s := range scored {
		if s.Similarity <= SimilarityThreshold {
			break
		}
		results = append(results, s)
		if len(results) == limit {
			break
		}
	}

	if r.logger != nil {
		r.logger.Printf("[DEBUG] retrieval: %d/%d chunks above threshold for user %s", len(results), len(chunks), userId)
	}

	return results, len(chunks), nil
}
