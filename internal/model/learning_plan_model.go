package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LearningPlan struct {
	Id                    uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title                 string         `gorm:"type:varchar(255);not null"`
	Subject               string         `gorm:"type:varchar(255)"`
	Description           string         `gorm:"type:text"`
	DifficultyLevel       string         `gorm:"type:varchar(50);default:'beginner'"`
	PlanData              datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	EstimatedDurationDays int            `gorm:"default:0"`
	Status                string         `gorm:"type:varchar(50);not null;default:'active'"`
	AgentGenerated        bool           `gorm:"not null;default:false"`
	UserId                uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt             time.Time      `gorm:"autoCreateTime"`
	UpdatedAt             time.Time      `gorm:"autoUpdateTime"`
	DeletedAt             gorm.DeletedAt `gorm:"index"`
}

func (LearningPlan) TableName() string {
	return "learning_plans"
}
