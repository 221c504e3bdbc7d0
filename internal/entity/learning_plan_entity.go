package entity

import (
	"time"

	"github.com/google/uuid"
)

// PlanModule is one unit inside a learning plan's module list.
type PlanModule struct {
	Id             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	EstimatedHours float64  `json:"estimatedHours"`
	Resources      []string `json:"resources,omitempty"`
	Completed      bool     `json:"completed"`
}

type LearningPlan struct {
	Id                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title                 string
	Subject               string
	Description           string
	DifficultyLevel       string
	Modules               []PlanModule
	EstimatedDurationDays int
	Status                string
	AgentGenerated        bool
	UserId                uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt             time.Time
	UpdatedAt             *time.Time
	DeletedAt             *time.Time
	IsDeleted             bool
}
