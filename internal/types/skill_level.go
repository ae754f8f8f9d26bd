package types

import (
	"time"

	"github.com/google/uuid"
)

// Proficiency tier tags, ascending.
const (
	LevelBeginner     = "beginner"
	LevelNovice       = "novice"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
	LevelExpert       = "expert"
)

// SkillLevel is one tier of a skill's ladder. The five tiers of a skill
// partition [0,100] into contiguous half-open ranges [min,max), ascending.
// Rows are created lazily on first access and never updated.
type SkillLevel struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SkillID       uuid.UUID `gorm:"type:uuid;not null;index" json:"skill_id"`
	Skill         *Skill    `gorm:"constraint:OnDelete:CASCADE;foreignKey:SkillID;references:ID" json:"skill,omitempty"`
	LevelType     string    `gorm:"column:level_type;not null" json:"level_type"`
	MinProgress   int       `gorm:"column:min_progress;not null" json:"min_progress"`
	MaxProgress   int       `gorm:"column:max_progress;not null" json:"max_progress"`
	RequiredHours float64   `gorm:"column:required_hours;not null;default:0" json:"required_hours"`
	CreatedAt     time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (SkillLevel) TableName() string { return "skill_level" }
