package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SkillEntry is a diary/log record. Insights only ever read its creation
// time (distinct active days); the note and hours are for the owner.
type SkillEntry struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SkillID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"skill_id"`
	Skill      *Skill         `gorm:"constraint:OnDelete:CASCADE;foreignKey:SkillID;references:ID" json:"skill,omitempty"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Note       string         `gorm:"type:text;column:note" json:"note"`
	HoursSpent float64        `gorm:"column:hours_spent;not null;default:0" json:"hours_spent"`
	Metadata   datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (SkillEntry) TableName() string { return "skill_entry" }
