package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/logger"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

type SkillLevelRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.SkillLevel) ([]*types.SkillLevel, error)
	// GetBySkillID returns the ladder ascending by min_progress.
	GetBySkillID(ctx context.Context, tx *gorm.DB, skillID uuid.UUID) ([]*types.SkillLevel, error)
}

type skillLevelRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSkillLevelRepo(db *gorm.DB, baseLog *logger.Logger) SkillLevelRepo {
	repoLog := baseLog.With("repo", "SkillLevelRepo")
	return &skillLevelRepo{db: db, log: repoLog}
}

func (r *skillLevelRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.SkillLevel) ([]*types.SkillLevel, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.SkillLevel{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *skillLevelRepo) GetBySkillID(ctx context.Context, tx *gorm.DB, skillID uuid.UUID) ([]*types.SkillLevel, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SkillLevel
	if skillID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("skill_id = ?", skillID).
		Order("min_progress ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
