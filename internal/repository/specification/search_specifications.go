package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TitleContains does a case-insensitive substring match on the title column.
type TitleContains struct {
	Query string
}

func (s TitleContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title ILIKE ?", "%"+s.Query+"%")
}

// ByResource selects the chunks of one learning resource.
type ByResource struct {
	ResourceID uuid.UUID
}

func (s ByResource) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("resource_id = ?", s.ResourceID)
}
