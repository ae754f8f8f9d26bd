package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/skillbridge-backend/internal/logger"
	"github.com/yungbote/skillbridge-backend/internal/repos"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

type MilestoneService interface {
	List(ctx context.Context, skillID uuid.UUID) ([]*types.SkillMilestone, error)
	Create(ctx context.Context, skillID uuid.UUID, title string, orderIndex int) (*types.SkillMilestone, error)
	// Complete marks the milestone done and recomputes the skill's progress
	// from milestone state. The two writes are separate; if the recompute
	// fails the milestone stays completed and progress is stale until the
	// next recompute.
	Complete(ctx context.Context, milestoneID uuid.UUID) error
	// Revert clears the completion fields. It does not recompute progress;
	// unchecking a milestone never lowers a skill automatically.
	Revert(ctx context.Context, milestoneID uuid.UUID) error
	// Delete removes the milestone permanently, without recomputing.
	Delete(ctx context.Context, milestoneID uuid.UUID) error
	// RecomputeProgress sets progress = round(100 * completed / total),
	// overwriting whatever was there. With zero milestones it is a no-op
	// and returns the progress already on the skill.
	RecomputeProgress(ctx context.Context, skillID uuid.UUID) (int, error)
}

type milestoneService struct {
	log           *logger.Logger
	skillRepo     repos.SkillRepo
	milestoneRepo repos.SkillMilestoneRepo
}

func NewMilestoneService(log *logger.Logger, skillRepo repos.SkillRepo, milestoneRepo repos.SkillMilestoneRepo) MilestoneService {
	serviceLog := log.With("service", "MilestoneService")
	return &milestoneService{log: serviceLog, skillRepo: skillRepo, milestoneRepo: milestoneRepo}
}

func (ms *milestoneService) List(ctx context.Context, skillID uuid.UUID) ([]*types.SkillMilestone, error) {
	milestones, err := ms.milestoneRepo.GetBySkillID(ctx, nil, skillID)
	if err != nil {
		return nil, fmt.Errorf("fetching milestones: %w", err)
	}
	return milestones, nil
}

func (ms *milestoneService) Create(ctx context.Context, skillID uuid.UUID, title string, orderIndex int) (*types.SkillMilestone, error) {
	if _, err := currentUserID(ctx); err != nil {
		return nil, err
	}
	if _, err := getSkill(ctx, ms.skillRepo, skillID); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, fmt.Errorf("milestone title required: %w", ErrInvalidInput)
	}

	now := time.Now()
	row := &types.SkillMilestone{
		ID:         uuid.New(),
		SkillID:    skillID,
		Title:      title,
		OrderIndex: orderIndex,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	created, err := ms.milestoneRepo.Create(ctx, nil, []*types.SkillMilestone{row})
	if err != nil {
		return nil, fmt.Errorf("creating milestone: %w", err)
	}
	return created[0], nil
}

func (ms *milestoneService) Complete(ctx context.Context, milestoneID uuid.UUID) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	milestone, err := ms.getMilestone(ctx, milestoneID)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := ms.milestoneRepo.UpdateFields(ctx, nil, milestoneID, map[string]interface{}{
		"is_completed": true,
		"completed_at": now,
		"completed_by": userID,
	}); err != nil {
		return fmt.Errorf("completing milestone: %w", err)
	}

	if _, err := ms.RecomputeProgress(ctx, milestone.SkillID); err != nil {
		return err
	}
	return nil
}

func (ms *milestoneService) Revert(ctx context.Context, milestoneID uuid.UUID) error {
	if _, err := ms.getMilestone(ctx, milestoneID); err != nil {
		return err
	}
	if err := ms.milestoneRepo.UpdateFields(ctx, nil, milestoneID, map[string]interface{}{
		"is_completed": false,
		"completed_at": nil,
		"completed_by": nil,
	}); err != nil {
		return fmt.Errorf("reverting milestone: %w", err)
	}
	return nil
}

func (ms *milestoneService) Delete(ctx context.Context, milestoneID uuid.UUID) error {
	if _, err := ms.getMilestone(ctx, milestoneID); err != nil {
		return err
	}
	if err := ms.milestoneRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{milestoneID}); err != nil {
		return fmt.Errorf("deleting milestone: %w", err)
	}
	return nil
}

func (ms *milestoneService) RecomputeProgress(ctx context.Context, skillID uuid.UUID) (int, error) {
	skill, err := getSkill(ctx, ms.skillRepo, skillID)
	if err != nil {
		return 0, err
	}
	milestones, err := ms.milestoneRepo.GetBySkillID(ctx, nil, skillID)
	if err != nil {
		return 0, fmt.Errorf("fetching milestones: %w", err)
	}
	if len(milestones) == 0 {
		// Milestone-derived progress is only authoritative when milestones
		// exist; leave a directly-set value alone.
		return skill.Progress, nil
	}

	completed := 0
	for _, m := range milestones {
		if m != nil && m.IsCompleted {
			completed++
		}
	}
	progress := int(math.Round(float64(completed) / float64(len(milestones)) * 100))

	if err := ms.skillRepo.UpdateFields(ctx, nil, skillID, map[string]interface{}{
		"progress":     progress,
		"last_updated": time.Now(),
	}); err != nil {
		return 0, fmt.Errorf("updating skill progress: %w", err)
	}
	ms.log.Debug("Skill progress recomputed", "skill_id", skillID, "progress", progress, "completed", completed, "total", len(milestones))
	return progress, nil
}

func (ms *milestoneService) getMilestone(ctx context.Context, milestoneID uuid.UUID) (*types.SkillMilestone, error) {
	if milestoneID == uuid.Nil {
		return nil, fmt.Errorf("milestone %s: %w", milestoneID, ErrNotFound)
	}
	found, err := ms.milestoneRepo.GetByIDs(ctx, nil, []uuid.UUID{milestoneID})
	if err != nil {
		return nil, fmt.Errorf("fetching milestone: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, fmt.Errorf("milestone %s: %w", milestoneID, ErrNotFound)
	}
	return found[0], nil
}
