package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Skill is a single learning goal owned by one user. Progress is an
// integer percentage in [0,100]; CurrentLevel is a denormalized cache of
// the ladder classification and is only as fresh as the last call to
// LevelService.UpdateSkillLevel.
type Skill struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User           *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Name           string         `gorm:"not null;column:name" json:"name"`
	Description    string         `gorm:"type:text;column:description" json:"description"`
	Category       string         `gorm:"column:category" json:"category"`
	Progress       int            `gorm:"column:progress;not null;default:0" json:"progress"`
	TotalHours     float64        `gorm:"column:total_hours;not null;default:0" json:"total_hours"`
	EstimatedHours *float64       `gorm:"column:estimated_hours" json:"estimated_hours,omitempty"`
	CurrentLevel   string         `gorm:"column:current_level;not null;default:'beginner'" json:"current_level"`
	LastUpdated    *time.Time     `gorm:"column:last_updated" json:"last_updated,omitempty"`
	Metadata       datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Skill) TableName() string { return "skill" }
