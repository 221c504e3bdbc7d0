package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByStatus filters tasks, plans or resources by their status column.
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByParentTask selects the subtasks of a breakdown parent.
type ByParentTask struct {
	ParentID uuid.UUID
}

func (s ByParentTask) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("parent_task_id = ?", s.ParentID)
}

// TopLevelTasks selects tasks that are not subtasks of anything.
type TopLevelTasks struct{}

func (s TopLevelTasks) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("parent_task_id IS NULL")
}
