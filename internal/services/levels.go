package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/skillbridge-backend/internal/logger"
	"github.com/yungbote/skillbridge-backend/internal/repos"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

// Default ladder: five contiguous half-open bands over [0,100] with the
// hours expected to reach each tier. Created once per skill, never edited.
var defaultLevelBands = []struct {
	levelType     string
	minProgress   int
	maxProgress   int
	requiredHours float64
}{
	{types.LevelBeginner, 0, 20, 0},
	{types.LevelNovice, 20, 40, 5},
	{types.LevelIntermediate, 40, 70, 20},
	{types.LevelAdvanced, 70, 90, 50},
	{types.LevelExpert, 90, 100, 100},
}

type LevelService interface {
	// GetLevels returns the skill's five levels ascending by min_progress,
	// creating the default ladder on first access. Idempotent afterwards.
	GetLevels(ctx context.Context, skillID uuid.UUID) ([]*types.SkillLevel, error)
	// ClassifyProgress picks the highest tier whose min_progress the given
	// progress has reached. Falls back to beginner when nothing matches.
	ClassifyProgress(progress int, levels []*types.SkillLevel) string
	// UpdateSkillLevel recomputes and persists current_level. Callers that
	// mutate progress are responsible for invoking this; nothing in the
	// engine triggers it automatically.
	UpdateSkillLevel(ctx context.Context, skillID uuid.UUID) error
	// NextLevelGap reports the next tier and the hours/progress still
	// needed to reach it.
	NextLevelGap(ctx context.Context, skillID uuid.UUID) (*types.LevelGap, error)
}

type levelService struct {
	log       *logger.Logger
	skillRepo repos.SkillRepo
	levelRepo repos.SkillLevelRepo
}

func NewLevelService(log *logger.Logger, skillRepo repos.SkillRepo, levelRepo repos.SkillLevelRepo) LevelService {
	serviceLog := log.With("service", "LevelService")
	return &levelService{log: serviceLog, skillRepo: skillRepo, levelRepo: levelRepo}
}

func (ls *levelService) GetLevels(ctx context.Context, skillID uuid.UUID) ([]*types.SkillLevel, error) {
	levels, err := ls.levelRepo.GetBySkillID(ctx, nil, skillID)
	if err != nil {
		return nil, fmt.Errorf("fetching skill levels: %w", err)
	}
	if len(levels) > 0 {
		return levels, nil
	}

	if _, err := getSkill(ctx, ls.skillRepo, skillID); err != nil {
		return nil, err
	}

	ls.log.Debug("No ladder for skill yet, creating defaults", "skill_id", skillID)
	now := time.Now()
	rows := make([]*types.SkillLevel, 0, len(defaultLevelBands))
	for _, band := range defaultLevelBands {
		rows = append(rows, &types.SkillLevel{
			ID:            uuid.New(),
			SkillID:       skillID,
			LevelType:     band.levelType,
			MinProgress:   band.minProgress,
			MaxProgress:   band.maxProgress,
			RequiredHours: band.requiredHours,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	created, err := ls.levelRepo.Create(ctx, nil, rows)
	if err != nil {
		return nil, fmt.Errorf("creating default skill levels: %w", err)
	}
	return created, nil
}

func (ls *levelService) ClassifyProgress(progress int, levels []*types.SkillLevel) string {
	// Highest threshold wins: scan from the top of the ladder down and take
	// the first tier the progress has reached. 100 lands on expert even
	// though its stored range is half-open.
	for i := len(levels) - 1; i >= 0; i-- {
		if levels[i] != nil && progress >= levels[i].MinProgress {
			return levels[i].LevelType
		}
	}
	return types.LevelBeginner
}

func (ls *levelService) UpdateSkillLevel(ctx context.Context, skillID uuid.UUID) error {
	skill, err := getSkill(ctx, ls.skillRepo, skillID)
	if err != nil {
		return err
	}
	levels, err := ls.GetLevels(ctx, skillID)
	if err != nil {
		return err
	}

	levelType := ls.ClassifyProgress(skill.Progress, levels)
	if levelType == skill.CurrentLevel {
		return nil
	}
	if err := ls.skillRepo.UpdateFields(ctx, nil, skillID, map[string]interface{}{
		"current_level": levelType,
	}); err != nil {
		return fmt.Errorf("updating current level: %w", err)
	}
	ls.log.Debug("Skill level updated", "skill_id", skillID, "current_level", levelType)
	return nil
}

func (ls *levelService) NextLevelGap(ctx context.Context, skillID uuid.UUID) (*types.LevelGap, error) {
	skill, err := getSkill(ctx, ls.skillRepo, skillID)
	if err != nil {
		return nil, err
	}
	levels, err := ls.GetLevels(ctx, skillID)
	if err != nil {
		return nil, err
	}

	gap := &types.LevelGap{SkillID: skillID}

	// Containment scan, ascending: min <= p < max. Deliberately not the
	// same walk as ClassifyProgress; the two differ at tier boundaries and
	// at 100, where no half-open range matches and there is no next level.
	currentIdx := -1
	for i, level := range levels {
		if level == nil {
			continue
		}
		if skill.Progress >= level.MinProgress && skill.Progress < level.MaxProgress {
			currentIdx = i
			break
		}
	}
	if currentIdx < 0 || currentIdx >= len(levels)-1 {
		if currentIdx >= 0 {
			gap.CurrentLevel = levels[currentIdx]
		}
		return gap, nil
	}

	next := levels[currentIdx+1]
	hoursNeeded := next.RequiredHours - skill.TotalHours
	if hoursNeeded < 0 {
		hoursNeeded = 0
	}
	gap.CurrentLevel = levels[currentIdx]
	gap.NextLevel = next
	gap.HasNext = true
	gap.HoursNeeded = hoursNeeded
	gap.ProgressNeeded = next.MinProgress - skill.Progress
	return gap, nil
}
