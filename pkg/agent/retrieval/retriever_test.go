package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/embedding"

	"github.com/google/uuid"
)

type stubEmbedder struct {
	vector []float32
	err    error
}

func (s *stubEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: s.vector},
	}, nil
}

type stubSource struct {
	chunks []Chunk
	err    error
}

func (s *stubSource) FindAllByUser(ctx context.Context, userId uuid.UUID) ([]Chunk, error) {
	return s.chunks, s.err
}

func TestRetrieveEmptyStore(t *testing.T) {
	r := NewRetriever(&stubEmbedder{vector: []float32{1, 0}}, &stubSource{}, nil)

	results, searched, err := r.Retrieve(context.Background(), "anything", uuid.New(), 5)
	if err != nil {
		t.Fatalf("Retrieve() error = %v, want nil", err)
	}
	if len(results) != 0 {
		t.Errorf("Retrieve() = %d results, want 0", len(results))
	}
	if searched != 0 {
		t.Errorf("searched = %d, want 0", searched)
	}
}

func TestRetrieveRankingAndThreshold(t *testing.T) {
	// Query aligned with the x axis. Chunks at decreasing alignment; the last
	// two sit below the 0.7 threshold.
	source := &stubSource{chunks: []Chunk{
		{ChunkText: "weak", DocumentTitle: "Doc C", Embedding: []float32{0.5, 0.87}},
		{ChunkText: "best", DocumentTitle: "Doc A", Embedding: []float32{1, 0}},
		{ChunkText: "good", DocumentTitle: "Doc B", Embedding: []float32{0.9, 0.2}},
		{ChunkText: "orthogonal", DocumentTitle: "Doc D", Embedding: []float32{0, 1}},
	}}
	r := NewRetriever(&stubEmbedder{vector: []float32{1, 0}}, source, nil)

	results, searched, err := r.Retrieve(context.Background(), "query", uuid.New(), 5)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if searched != 4 {
		t.Errorf("searched = %d, want 4", searched)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (above threshold)", len(results))
	}
	if results[0].ChunkText != "best" || results[1].ChunkText != "good" {
		t.Errorf("wrong order: %q, %q", results[0].ChunkText, results[1].ChunkText)
	}
	for _, res := range results {
		if res.Similarity <= SimilarityThreshold {
			t.Errorf("result %q similarity %v not above threshold", res.ChunkText, res.Similarity)
		}
	}
	if results[0].Similarity < results[1].Similarity {
		t.Error("results not sorted descending")
	}
}

func TestRetrieveRespectsLimit(t *testing.T) {
	var chunks []Chunk
	for i := 0; i < 10; i++ {
		chunks = append(chunks, Chunk{ChunkText: "c", Embedding: []float32{1, 0}})
	}
	r := NewRetriever(&stubEmbedder{vector: []float32{1, 0}}, &stubSource{chunks: chunks}, nil)

	results, _, err := r.Retrieve(context.Background(), "query", uuid.New(), 3)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(results) != 3 {
		t.Errorf("got %d results, want limit 3", len(results))
	}
}

func TestRetrieveMismatchedDimensionsFilteredOut(t *testing.T) {
	source := &stubSource{chunks: []Chunk{
		{ChunkText: "stale model dims", Embedding: []float32{1, 0, 0}},
	}}
	r := NewRetriever(&stubEmbedder{vector: []float32{1, 0}}, source, nil)

	results, _, err := r.Retrieve(context.Background(), "query", uuid.New(), 5)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("mismatched-dimension chunk should score 0 and be filtered, got %d results", len(results))
	}
}

func TestRetrieveErrors(t *testing.T) {
	r := NewRetriever(&stubEmbedder{err: errors.New("embedding down")}, &stubSource{}, nil)
	if _, _, err := r.Retrieve(context.Background(), "q", uuid.New(), 5); err == nil {
		t.Error("expected error when embedding provider fails")
	}

	r = NewRetriever(&stubEmbedder{vector: []float32{1}}, &stubSource{err: errors.New("db down")}, nil)
	if _, _, err := r.Retrieve(context.Background(), "q", uuid.New(), 5); err == nil {
		t.Error("expected error when chunk source fails")
	}
}
