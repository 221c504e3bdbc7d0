package entity

import (
	"time"

	"github.com/google/uuid"
)

// LearningResource is an uploaded study document. ObjectKey points at the
// blob in object storage; chunk embedding happens asynchronously after upload.
type LearningResource struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string
	Type        string
	URL         string
	ObjectKey   string
	Status      string
	ContentType string
	SizeBytes   int64
	UserId      uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}

// DocumentChunk is one embedded slice of a resource's text.
type DocumentChunk struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ResourceId    uuid.UUID `gorm:"type:uuid;index"`
	UserId        uuid.UUID `gorm:"type:uuid;index"`
	DocumentTitle string
	ChunkText     string
	ChunkIndex    int
	Embedding     []float32
	CreatedAt     time.Time
}
