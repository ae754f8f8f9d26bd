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

type SkillService interface {
	CreateSkill(ctx context.Context, name, description, category string, estimatedHours *float64) (*types.Skill, error)
	GetSkill(ctx context.Context, skillID uuid.UUID) (*types.Skill, error)
	ListSkills(ctx context.Context) ([]*types.Skill, error)
	// UpdateProgress sets progress directly (the manual path; milestone
	// recomputation overwrites it as soon as milestones exist). Callers
	// that want current_level to stay fresh invoke
	// LevelService.UpdateSkillLevel afterwards.
	UpdateProgress(ctx context.Context, skillID uuid.UUID, progress int) (*types.Skill, error)
	AddHours(ctx context.Context, skillID uuid.UUID, hours float64) (*types.Skill, error)
	// LogEntry appends a diary entry, accumulates its hours onto the
	// skill, and touches last_updated.
	LogEntry(ctx context.Context, skillID uuid.UUID, note string, hours float64) (*types.SkillEntry, error)
	DeleteSkill(ctx context.Context, skillID uuid.UUID) error
}

type skillService struct {
	log       *logger.Logger
	skillRepo repos.SkillRepo
	entryRepo repos.SkillEntryRepo
}

func NewSkillService(log *logger.Logger, skillRepo repos.SkillRepo, entryRepo repos.SkillEntryRepo) SkillService {
	serviceLog := log.With("service", "SkillService")
	return &skillService{log: serviceLog, skillRepo: skillRepo, entryRepo: entryRepo}
}

func (ss *skillService) CreateSkill(ctx context.Context, name, description, category string, estimatedHours *float64) (*types.Skill, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("skill name required: %w", ErrInvalidInput)
	}
	if estimatedHours != nil && *estimatedHours < 0 {
		return nil, fmt.Errorf("estimated hours must be non-negative: %w", ErrInvalidInput)
	}

	now := time.Now()
	row := &types.Skill{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           name,
		Description:    description,
		Category:       category,
		EstimatedHours: estimatedHours,
		CurrentLevel:   types.LevelBeginner,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	created, err := ss.skillRepo.Create(ctx, nil, []*types.Skill{row})
	if err != nil {
		return nil, fmt.Errorf("creating skill: %w", err)
	}
	ss.log.Info("Skill created", "skill_id", row.ID, "user_id", userID)
	return created[0], nil
}

func (ss *skillService) GetSkill(ctx context.Context, skillID uuid.UUID) (*types.Skill, error) {
	return getSkill(ctx, ss.skillRepo, skillID)
}

func (ss *skillService) ListSkills(ctx context.Context) ([]*types.Skill, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	skills, err := ss.skillRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("listing skills: %w", err)
	}
	return skills, nil
}

func (ss *skillService) UpdateProgress(ctx context.Context, skillID uuid.UUID, progress int) (*types.Skill, error) {
	if progress < 0 || progress > 100 {
		return nil, fmt.Errorf("progress must be within [0,100], got %d: %w", progress, ErrInvalidInput)
	}
	skill, err := getSkill(ctx, ss.skillRepo, skillID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := ss.skillRepo.UpdateFields(ctx, nil, skillID, map[string]interface{}{
		"progress":     progress,
		"last_updated": now,
	}); err != nil {
		return nil, fmt.Errorf("updating progress: %w", err)
	}
	skill.Progress = progress
	skill.LastUpdated = &now
	return skill, nil
}

func (ss *skillService) AddHours(ctx context.Context, skillID uuid.UUID, hours float64) (*types.Skill, error) {
	if hours < 0 {
		return nil, fmt.Errorf("hours must be non-negative, got %f: %w", hours, ErrInvalidInput)
	}
	skill, err := getSkill(ctx, ss.skillRepo, skillID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	totalHours := skill.TotalHours + hours
	if err := ss.skillRepo.UpdateFields(ctx, nil, skillID, map[string]interface{}{
		"total_hours":  totalHours,
		"last_updated": now,
	}); err != nil {
		return nil, fmt.Errorf("updating total hours: %w", err)
	}
	skill.TotalHours = totalHours
	skill.LastUpdated = &now
	return skill, nil
}

func (ss *skillService) LogEntry(ctx context.Context, skillID uuid.UUID, note string, hours float64) (*types.SkillEntry, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	if hours < 0 {
		return nil, fmt.Errorf("hours must be non-negative, got %f: %w", hours, ErrInvalidInput)
	}
	skill, err := getSkill(ctx, ss.skillRepo, skillID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entry := &types.SkillEntry{
		ID:         uuid.New(),
		SkillID:    skillID,
		UserID:     userID,
		Note:       note,
		HoursSpent: hours,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	created, err := ss.entryRepo.Create(ctx, nil, []*types.SkillEntry{entry})
	if err != nil {
		return nil, fmt.Errorf("creating entry: %w", err)
	}

	if err := ss.skillRepo.UpdateFields(ctx, nil, skillID, map[string]interface{}{
		"total_hours":  skill.TotalHours + hours,
		"last_updated": now,
	}); err != nil {
		return nil, fmt.Errorf("updating skill from entry: %w", err)
	}
	return created[0], nil
}

func (ss *skillService) DeleteSkill(ctx context.Context, skillID uuid.UUID) error {
	if _, err := getSkill(ctx, ss.skillRepo, skillID); err != nil {
		return err
	}
	if err := ss.skillRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{skillID}); err != nil {
		return fmt.Errorf("deleting skill: %w", err)
	}
	return nil
}
