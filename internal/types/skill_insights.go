package types

import "github.com/google/uuid"

// Units for SkillInsights.EstimatedToCompletion. The estimate switches
// from days to raw remaining hours when velocity drops below 1 point/day.
const (
	EstimateUnitDays  = "days"
	EstimateUnitHours = "hours"
)

// SkillInsights is the computed insight bundle for one skill. Not a
// table; served to callers and cached as JSON.
type SkillInsights struct {
	SkillID               uuid.UUID       `json:"skill_id"`
	Velocity              float64         `json:"velocity"`
	Consistency           float64         `json:"consistency"`
	PlateauDetected       bool            `json:"plateau_detected"`
	NextMilestone         *SkillMilestone `json:"next_milestone,omitempty"`
	EstimatedToCompletion float64         `json:"estimated_to_completion"`
	EstimateUnit          string          `json:"estimate_unit"`
}

// LevelGap describes the distance from a skill's current ladder tier to
// the next one. HasNext is false when the skill sits in the final tier
// (or at 100, which no half-open range contains).
type LevelGap struct {
	SkillID        uuid.UUID   `json:"skill_id"`
	CurrentLevel   *SkillLevel `json:"current_level,omitempty"`
	NextLevel      *SkillLevel `json:"next_level,omitempty"`
	HasNext        bool        `json:"has_next"`
	HoursNeeded    float64     `json:"hours_needed"`
	ProgressNeeded int         `json:"progress_needed"`
}
