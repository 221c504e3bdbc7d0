package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LearningResource struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string         `gorm:"type:varchar(255);not null"`
	Type        string         `gorm:"type:varchar(50);not null;default:'document'"`
	URL         string         `gorm:"type:text"`
	ObjectKey   string         `gorm:"type:varchar(512)"`
	Status      string         `gorm:"type:varchar(50);not null;default:'pending'"`
	ContentType string         `gorm:"type:varchar(100)"`
	SizeBytes   int64          `gorm:"default:0"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (LearningResource) TableName() string {
	return "learning_resources"
}
