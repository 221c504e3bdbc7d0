package dto

import (
	"time"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/entity"

	"github.com/google/uuid"
)

type GeneratePlanRequest struct {
	Subject         string `json:"subject" validate:"required"`
	DifficultyLevel string `json:"difficulty_level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Goal            string `json:"goal"`
}

type GeneratePlanResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowPlanResponse struct {
	Id                    uuid.UUID           `json:"id"`
	Title                 string              `json:"title"`
	Subject               string              `json:"subject"`
	Description           string              `json:"description"`
	DifficultyLevel       string              `json:"difficulty_level"`
	Modules               []entity.PlanModule `json:"modules"`
	EstimatedDurationDays int                 `json:"estimated_duration_days"`
	Status                string              `json:"status"`
	AgentGenerated        bool                `json:"agent_generated"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             *time.Time          `json:"updated_at"`
}

type UpdatePlanModuleRequest struct {
	PlanId    uuid.UUID
	ModuleId  string `json:"module_id" validate:"required"`
	Completed bool   `json:"completed"`
}

type UpdatePlanModuleResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}
