package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/skillbridge-backend/internal/logger"
	"github.com/yungbote/skillbridge-backend/internal/repos"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

// A required prerequisite unlocks its dependent once it reaches this
// progress. Fixed for every edge.
const prerequisiteProgressThreshold = 80

type DependencyService interface {
	List(ctx context.Context, skillID uuid.UUID) ([]*types.SkillDependency, error)
	// Add creates a directed edge skill -> prerequisite. Self-referential
	// and cyclic edges are representable; no validation rejects them.
	Add(ctx context.Context, skillID, prerequisiteID uuid.UUID, isRequired bool) (*types.SkillDependency, error)
	Remove(ctx context.Context, skillID, prerequisiteID uuid.UUID) error
	// ArePrerequisitesMet is true when every required prerequisite sits at
	// or above the threshold. Optional edges never block.
	ArePrerequisitesMet(ctx context.Context, skillID uuid.UUID) (bool, error)
}

type dependencyService struct {
	log            *logger.Logger
	skillRepo      repos.SkillRepo
	dependencyRepo repos.SkillDependencyRepo
}

func NewDependencyService(log *logger.Logger, skillRepo repos.SkillRepo, dependencyRepo repos.SkillDependencyRepo) DependencyService {
	serviceLog := log.With("service", "DependencyService")
	return &dependencyService{log: serviceLog, skillRepo: skillRepo, dependencyRepo: dependencyRepo}
}

func (ds *dependencyService) List(ctx context.Context, skillID uuid.UUID) ([]*types.SkillDependency, error) {
	deps, err := ds.dependencyRepo.GetBySkillID(ctx, nil, skillID)
	if err != nil {
		return nil, fmt.Errorf("fetching dependencies: %w", err)
	}
	return deps, nil
}

func (ds *dependencyService) Add(ctx context.Context, skillID, prerequisiteID uuid.UUID, isRequired bool) (*types.SkillDependency, error) {
	if _, err := currentUserID(ctx); err != nil {
		return nil, err
	}
	if _, err := getSkill(ctx, ds.skillRepo, skillID); err != nil {
		return nil, err
	}
	if _, err := getSkill(ctx, ds.skillRepo, prerequisiteID); err != nil {
		return nil, err
	}

	row := &types.SkillDependency{
		ID:             uuid.New(),
		SkillID:        skillID,
		PrerequisiteID: prerequisiteID,
		IsRequired:     isRequired,
	}
	created, err := ds.dependencyRepo.Create(ctx, nil, []*types.SkillDependency{row})
	if err != nil {
		return nil, fmt.Errorf("creating dependency: %w", err)
	}
	return created[0], nil
}

func (ds *dependencyService) Remove(ctx context.Context, skillID, prerequisiteID uuid.UUID) error {
	if err := ds.dependencyRepo.FullDeleteBySkillAndPrerequisite(ctx, nil, skillID, prerequisiteID); err != nil {
		return fmt.Errorf("removing dependency: %w", err)
	}
	return nil
}

func (ds *dependencyService) ArePrerequisitesMet(ctx context.Context, skillID uuid.UUID) (bool, error) {
	deps, err := ds.dependencyRepo.GetBySkillID(ctx, nil, skillID)
	if err != nil {
		return false, fmt.Errorf("fetching dependencies: %w", err)
	}

	for _, dep := range deps {
		if dep == nil || !dep.IsRequired {
			continue
		}
		prerequisite := dep.Prerequisite
		if prerequisite == nil {
			prerequisite, err = getSkill(ctx, ds.skillRepo, dep.PrerequisiteID)
			if err != nil {
				return false, err
			}
		}
		if prerequisite.Progress < prerequisiteProgressThreshold {
			return false, nil
		}
	}
	return true, nil
}
