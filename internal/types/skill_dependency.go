package types

import (
	"time"

	"github.com/google/uuid"
)

// SkillDependency is a directed edge skill -> prerequisite skill.
// IsRequired distinguishes blocking prerequisites from suggestions.
// No structural cycle or self-reference constraint exists.
type SkillDependency struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SkillID        uuid.UUID `gorm:"type:uuid;not null;index:idx_skill_prerequisite,unique" json:"skill_id"`
	Skill          *Skill    `gorm:"constraint:OnDelete:CASCADE;foreignKey:SkillID;references:ID" json:"skill,omitempty"`
	PrerequisiteID uuid.UUID `gorm:"type:uuid;not null;index:idx_skill_prerequisite,unique" json:"prerequisite_id"`
	Prerequisite   *Skill    `gorm:"constraint:OnDelete:CASCADE;foreignKey:PrerequisiteID;references:ID" json:"prerequisite,omitempty"`
	IsRequired     bool      `gorm:"column:is_required;not null;default:true" json:"is_required"`
	CreatedAt      time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (SkillDependency) TableName() string { return "skill_dependency" }
