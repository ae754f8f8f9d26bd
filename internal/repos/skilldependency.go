package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/logger"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

type SkillDependencyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.SkillDependency) ([]*types.SkillDependency, error)
	// GetBySkillID returns edges where skillID is the dependent side, with
	// the prerequisite skill preloaded.
	GetBySkillID(ctx context.Context, tx *gorm.DB, skillID uuid.UUID) ([]*types.SkillDependency, error)
	FullDeleteBySkillAndPrerequisite(ctx context.Context, tx *gorm.DB, skillID, prerequisiteID uuid.UUID) error
}

type skillDependencyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSkillDependencyRepo(db *gorm.DB, baseLog *logger.Logger) SkillDependencyRepo {
	repoLog := baseLog.With("repo", "SkillDependencyRepo")
	return &skillDependencyRepo{db: db, log: repoLog}
}

func (r *skillDependencyRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.SkillDependency) ([]*types.SkillDependency, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.SkillDependency{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *skillDependencyRepo) GetBySkillID(ctx context.Context, tx *gorm.DB, skillID uuid.UUID) ([]*types.SkillDependency, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SkillDependency
	if skillID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Prerequisite").
		Where("skill_id = ?", skillID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *skillDependencyRepo) FullDeleteBySkillAndPrerequisite(ctx context.Context, tx *gorm.DB, skillID, prerequisiteID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if skillID == uuid.Nil || prerequisiteID == uuid.Nil {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("skill_id = ? AND prerequisite_id = ?", skillID, prerequisiteID).
		Delete(&types.SkillDependency{}).Error; err != nil {
		return err
	}
	return nil
}
