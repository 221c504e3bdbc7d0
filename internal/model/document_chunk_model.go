package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type DocumentChunk struct {
	Id            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ResourceId    uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserId        uuid.UUID       `gorm:"type:uuid;not null;index"`
	DocumentTitle string          `gorm:"type:varchar(255)"`
	ChunkText     string          `gorm:"type:text;not null"`
	ChunkIndex    int             `gorm:"default:0"`
	Embedding     pgvector.Vector `gorm:"type:vector(1536)"` // text-embedding-3-small dimensions
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
