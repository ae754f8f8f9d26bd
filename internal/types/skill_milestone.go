package types

import (
	"time"

	"github.com/google/uuid"
)

// SkillMilestone is an ordered checklist item. OrderIndex defines
// iteration order and is not enforced unique. Deletion is permanent.
type SkillMilestone struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SkillID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"skill_id"`
	Skill       *Skill     `gorm:"constraint:OnDelete:CASCADE;foreignKey:SkillID;references:ID" json:"skill,omitempty"`
	Title       string     `gorm:"not null;column:title" json:"title"`
	OrderIndex  int        `gorm:"column:order_index;not null;default:0" json:"order_index"`
	IsCompleted bool       `gorm:"column:is_completed;not null;default:false" json:"is_completed"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CompletedBy *uuid.UUID `gorm:"type:uuid;column:completed_by" json:"completed_by,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (SkillMilestone) TableName() string { return "skill_milestone" }
