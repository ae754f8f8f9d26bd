package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	rediscache "github.com/yungbote/skillbridge-backend/internal/clients/redis"
	"github.com/yungbote/skillbridge-backend/internal/logger"
	"github.com/yungbote/skillbridge-backend/internal/repos"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

const (
	// A skill has plateaued when nothing touched it for over a week.
	plateauWindow = 7 * 24 * time.Hour
	// Consistency looks at the newest entries only, bounded to this many.
	insightsEntrySample = 30
	insightsCacheTTL    = 60 * time.Second
)

type InsightsService interface {
	// Velocity is progress points gained per day since creation, floored
	// at one day of life. Always >= 0 and finite.
	Velocity(ctx context.Context, skillID uuid.UUID) (float64, error)
	// Consistency is distinct calendar days with an entry, over the last
	// 30 entries, divided by days since creation. The denominator spans
	// the skill's whole life, so it drifts toward 0 for old skills even
	// with steady recent activity.
	Consistency(ctx context.Context, skillID uuid.UUID) (float64, error)
	PlateauDetected(ctx context.Context, skillID uuid.UUID) (bool, error)
	// NextMilestone is the first incomplete milestone in order_index
	// order, or nil when everything is done (or nothing exists).
	NextMilestone(ctx context.Context, skillID uuid.UUID) (*types.SkillMilestone, error)
	// EstimatedToCompletion returns the estimate and its unit: days of
	// remaining progress at current velocity, or, below one point/day,
	// the raw remaining hours against the estimated target.
	EstimatedToCompletion(ctx context.Context, skillID uuid.UUID) (float64, string, error)
	// GetInsights bundles everything above, consulting the cache first.
	GetInsights(ctx context.Context, skillID uuid.UUID) (*types.SkillInsights, error)
}

type insightsService struct {
	log           *logger.Logger
	skillRepo     repos.SkillRepo
	milestoneRepo repos.SkillMilestoneRepo
	entryRepo     repos.SkillEntryRepo
	cache         rediscache.Cache
}

func NewInsightsService(log *logger.Logger, skillRepo repos.SkillRepo, milestoneRepo repos.SkillMilestoneRepo, entryRepo repos.SkillEntryRepo, cache rediscache.Cache) InsightsService {
	serviceLog := log.With("service", "InsightsService")
	return &insightsService{
		log:           serviceLog,
		skillRepo:     skillRepo,
		milestoneRepo: milestoneRepo,
		entryRepo:     entryRepo,
		cache:         cache,
	}
}

// daysActive is whole days since creation, floored at 1 so that ratios
// over it stay defined and finite.
func daysActive(skill *types.Skill, now time.Time) int {
	days := int(now.Sub(skill.CreatedAt).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return days
}

func velocityAt(skill *types.Skill, now time.Time) float64 {
	return float64(skill.Progress) / float64(daysActive(skill, now))
}

func consistencyAt(skill *types.Skill, entries []*types.SkillEntry, now time.Time) float64 {
	sample := entries
	if len(sample) > insightsEntrySample {
		sample = sample[:insightsEntrySample]
	}
	seen := map[string]struct{}{}
	for _, entry := range sample {
		if entry == nil {
			continue
		}
		seen[entry.CreatedAt.Format("2006-01-02")] = struct{}{}
	}
	return float64(len(seen)) / float64(daysActive(skill, now))
}

func plateauAt(skill *types.Skill, now time.Time) bool {
	if skill.LastUpdated == nil {
		return false
	}
	return now.Sub(*skill.LastUpdated) > plateauWindow
}

// estimateAt keeps the source's unit switch: below one point/day the
// velocity projection is useless, so it falls back to remaining hours
// against the estimated target and the unit changes with it.
func estimateAt(skill *types.Skill, now time.Time) (float64, string) {
	velocity := velocityAt(skill, now)
	if velocity < 1 {
		var estimated float64
		if skill.EstimatedHours != nil {
			estimated = *skill.EstimatedHours
		}
		return estimated - skill.TotalHours, types.EstimateUnitHours
	}
	return float64(100-skill.Progress) / velocity, types.EstimateUnitDays
}

func firstIncomplete(milestones []*types.SkillMilestone) *types.SkillMilestone {
	for _, m := range milestones {
		if m != nil && !m.IsCompleted {
			return m
		}
	}
	return nil
}

func (is *insightsService) Velocity(ctx context.Context, skillID uuid.UUID) (float64, error) {
	skill, err := getSkill(ctx, is.skillRepo, skillID)
	if err != nil {
		return 0, err
	}
	return velocityAt(skill, time.Now()), nil
}

func (is *insightsService) Consistency(ctx context.Context, skillID uuid.UUID) (float64, error) {
	skill, err := getSkill(ctx, is.skillRepo, skillID)
	if err != nil {
		return 0, err
	}
	entries, err := is.entryRepo.GetRecentBySkillID(ctx, nil, skillID, insightsEntrySample)
	if err != nil {
		return 0, fmt.Errorf("fetching entries: %w", err)
	}
	return consistencyAt(skill, entries, time.Now()), nil
}

func (is *insightsService) PlateauDetected(ctx context.Context, skillID uuid.UUID) (bool, error) {
	skill, err := getSkill(ctx, is.skillRepo, skillID)
	if err != nil {
		return false, err
	}
	return plateauAt(skill, time.Now()), nil
}

func (is *insightsService) NextMilestone(ctx context.Context, skillID uuid.UUID) (*types.SkillMilestone, error) {
	if _, err := getSkill(ctx, is.skillRepo, skillID); err != nil {
		return nil, err
	}
	milestones, err := is.milestoneRepo.GetBySkillID(ctx, nil, skillID)
	if err != nil {
		return nil, fmt.Errorf("fetching milestones: %w", err)
	}
	return firstIncomplete(milestones), nil
}

func (is *insightsService) EstimatedToCompletion(ctx context.Context, skillID uuid.UUID) (float64, string, error) {
	skill, err := getSkill(ctx, is.skillRepo, skillID)
	if err != nil {
		return 0, "", err
	}
	estimate, unit := estimateAt(skill, time.Now())
	return estimate, unit, nil
}

func (is *insightsService) GetInsights(ctx context.Context, skillID uuid.UUID) (*types.SkillInsights, error) {
	cacheKey := fmt.Sprintf("skill:insights:%s", skillID)
	if is.cache != nil {
		var cached types.SkillInsights
		hit, err := is.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			is.log.Warn("Insights cache read failed", "skill_id", skillID, "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	skill, err := getSkill(ctx, is.skillRepo, skillID)
	if err != nil {
		return nil, err
	}

	var milestones []*types.SkillMilestone
	var entries []*types.SkillEntry
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var gErr error
		milestones, gErr = is.milestoneRepo.GetBySkillID(gctx, nil, skillID)
		if gErr != nil {
			return fmt.Errorf("fetching milestones: %w", gErr)
		}
		return nil
	})
	g.Go(func() error {
		var gErr error
		entries, gErr = is.entryRepo.GetRecentBySkillID(gctx, nil, skillID, insightsEntrySample)
		if gErr != nil {
			return fmt.Errorf("fetching entries: %w", gErr)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := time.Now()
	estimate, unit := estimateAt(skill, now)
	insights := &types.SkillInsights{
		SkillID:               skillID,
		Velocity:              velocityAt(skill, now),
		Consistency:           consistencyAt(skill, entries, now),
		PlateauDetected:       plateauAt(skill, now),
		NextMilestone:         firstIncomplete(milestones),
		EstimatedToCompletion: estimate,
		EstimateUnit:          unit,
	}

	if is.cache != nil {
		if err := is.cache.SetJSON(ctx, cacheKey, insights, insightsCacheTTL); err != nil {
			is.log.Warn("Insights cache write failed", "skill_id", skillID, "error", err)
		}
	}
	return insights, nil
}
