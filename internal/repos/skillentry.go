package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/logger"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

type SkillEntryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.SkillEntry) ([]*types.SkillEntry, error)
	// GetRecentBySkillID returns the newest entries first, at most limit.
	GetRecentBySkillID(ctx context.Context, tx *gorm.DB, skillID uuid.UUID, limit int) ([]*types.SkillEntry, error)
}

type skillEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSkillEntryRepo(db *gorm.DB, baseLog *logger.Logger) SkillEntryRepo {
	repoLog := baseLog.With("repo", "SkillEntryRepo")
	return &skillEntryRepo{db: db, log: repoLog}
}

func (r *skillEntryRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.SkillEntry) ([]*types.SkillEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.SkillEntry{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *skillEntryRepo) GetRecentBySkillID(ctx context.Context, tx *gorm.DB, skillID uuid.UUID, limit int) ([]*types.SkillEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SkillEntry
	if skillID == uuid.Nil {
		return results, nil
	}

	query := transaction.WithContext(ctx).
		Where("skill_id = ?", skillID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
