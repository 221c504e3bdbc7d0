package entity

import (
	"time"

	"github.com/google/uuid"
)

// Task is a todo item. ParentTaskId links subtasks to the breakdown parent.
type Task struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title          string
	Description    string
	Status         string
	Priority       string
	AgentGenerated bool
	ParentTaskId   *uuid.UUID `gorm:"type:uuid;index"`
	DueDate        *time.Time
	UserId         uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
