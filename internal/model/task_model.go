package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title          string     `gorm:"type:varchar(255);not null"`
	Description    string     `gorm:"type:text"`
	Status         string     `gorm:"type:varchar(50);not null;default:'pending'"`
	Priority       string     `gorm:"type:varchar(20);not null;default:'medium'"`
	AgentGenerated bool       `gorm:"not null;default:false"`
	ParentTaskId   *uuid.UUID `gorm:"type:uuid;index"`
	DueDate        *time.Time
	UserId         uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Task) TableName() string {
	return "tasks"
}
