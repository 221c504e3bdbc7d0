package dto

import "github.com/google/uuid"

type QueryDocumentsRequest struct {
	Query string `json:"query" validate:"required"`
	Limit int    `json:"limit" validate:"gte=0,lte=50"`
}

type QueryDocumentResult struct {
	ResourceId    uuid.UUID `json:"resource_id"`
	DocumentTitle string    `json:"document_title"`
	ChunkText     string    `json:"chunk_text"`
	ChunkIndex    int       `json:"chunk_index"`
	Similarity    float64   `json:"similarity"`
}

type QueryDocumentsResponse struct {
	Results       []QueryDocumentResult `json:"results"`
	TotalSearched int64                 `json:"total_searched"`
}
