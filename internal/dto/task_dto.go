package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Title        string     `json:"title" validate:"required"`
	Description  string     `json:"description"`
	Priority     string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	ParentTaskId *uuid.UUID `json:"parent_task_id"`
	DueDate      *time.Time `json:"due_date"`
}

type CreateTaskResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowTaskResponse struct {
	Id             uuid.UUID          `json:"id"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Status         string             `json:"status"`
	Priority       string             `json:"priority"`
	AgentGenerated bool               `json:"agent_generated"`
	ParentTaskId   *uuid.UUID         `json:"parent_task_id"`
	DueDate        *time.Time         `json:"due_date"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      *time.Time         `json:"updated_at"`
	Subtasks       []ShowTaskResponse `json:"subtasks,omitempty"`
}

type UpdateTaskRequest struct {
	Id          uuid.UUID
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateTaskResponse struct {
	Id uuid.UUID `json:"id"`
}
