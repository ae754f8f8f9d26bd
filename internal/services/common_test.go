package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/logger"
	"github.com/yungbote/skillbridge-backend/internal/requestdata"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

func errorsIsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func authedCtx(userID uuid.UUID) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: userID})
}

// In-memory repo fakes. They ignore the tx parameter the way callers pass
// nil for single-statement operations.

type fakeUserRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*types.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{rows: map[uuid.UUID]*types.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.User) ([]*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range rows {
		f.rows[row.ID] = row
	}
	return rows, nil
}

func (f *fakeUserRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.User
	for _, id := range ids {
		if row, ok := f.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetByEmails(ctx context.Context, tx *gorm.DB, emails []string) ([]*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.User
	for _, row := range f.rows {
		for _, email := range emails {
			if row.Email == email {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

type fakeSkillRepo struct {
	mu     sync.Mutex
	rows   map[uuid.UUID]*types.Skill
	writes int
}

func newFakeSkillRepo() *fakeSkillRepo {
	return &fakeSkillRepo{rows: map[uuid.UUID]*types.Skill{}}
}

func (f *fakeSkillRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Skill) ([]*types.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range rows {
		f.rows[row.ID] = row
	}
	return rows, nil
}

func (f *fakeSkillRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.Skill
	for _, id := range ids {
		if row, ok := f.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeSkillRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.Skill
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeSkillRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil
	}
	f.writes++
	if v, ok := fields["progress"]; ok {
		row.Progress = v.(int)
	}
	if v, ok := fields["total_hours"]; ok {
		row.TotalHours = v.(float64)
	}
	if v, ok := fields["current_level"]; ok {
		row.CurrentLevel = v.(string)
	}
	if v, ok := fields["last_updated"]; ok {
		if v == nil {
			row.LastUpdated = nil
		} else {
			t := v.(time.Time)
			row.LastUpdated = &t
		}
	}
	return nil
}

func (f *fakeSkillRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.rows, id)
	}
	return nil
}

type fakeSkillLevelRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID][]*types.SkillLevel
}

func newFakeSkillLevelRepo() *fakeSkillLevelRepo {
	return &fakeSkillLevelRepo{rows: map[uuid.UUID][]*types.SkillLevel{}}
}

func (f *fakeSkillLevelRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.SkillLevel) ([]*types.SkillLevel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range rows {
		f.rows[row.SkillID] = append(f.rows[row.SkillID], row)
	}
	return rows, nil
}

func (f *fakeSkillLevelRepo) GetBySkillID(ctx context.Context, tx *gorm.DB, skillID uuid.UUID) ([]*types.SkillLevel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]*types.SkillLevel{}, f.rows[skillID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].MinProgress < out[j].MinProgress })
	return out, nil
}

type fakeSkillMilestoneRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*types.SkillMilestone
}

func newFakeSkillMilestoneRepo() *fakeSkillMilestoneRepo {
	return &fakeSkillMilestoneRepo{rows: map[uuid.UUID]*types.SkillMilestone{}}
}

func (f *fakeSkillMilestoneRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.SkillMilestone) ([]*types.SkillMilestone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range rows {
		f.rows[row.ID] = row
	}
	return rows, nil
}

func (f *fakeSkillMilestoneRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.SkillMilestone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.SkillMilestone
	for _, id := range ids {
		if row, ok := f.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeSkillMilestoneRepo) GetBySkillID(ctx context.Context, tx *gorm.DB, skillID uuid.UUID) ([]*types.SkillMilestone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.SkillMilestone
	for _, row := range f.rows {
		if row.SkillID == skillID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (f *fakeSkillMilestoneRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil
	}
	if v, ok := fields["is_completed"]; ok {
		row.IsCompleted = v.(bool)
	}
	if v, ok := fields["completed_at"]; ok {
		if v == nil {
			row.CompletedAt = nil
		} else {
			t := v.(time.Time)
			row.CompletedAt = &t
		}
	}
	if v, ok := fields["completed_by"]; ok {
		if v == nil {
			row.CompletedBy = nil
		} else {
			u := v.(uuid.UUID)
			row.CompletedBy = &u
		}
	}
	return nil
}

func (f *fakeSkillMilestoneRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.rows, id)
	}
	return nil
}

type fakeSkillDependencyRepo struct {
	mu     sync.Mutex
	rows   []*types.SkillDependency
	skills *fakeSkillRepo
}

func newFakeSkillDependencyRepo(skills *fakeSkillRepo) *fakeSkillDependencyRepo {
	return &fakeSkillDependencyRepo{skills: skills}
}

func (f *fakeSkillDependencyRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.SkillDependency) ([]*types.SkillDependency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, rows...)
	return rows, nil
}

func (f *fakeSkillDependencyRepo) GetBySkillID(ctx context.Context, tx *gorm.DB, skillID uuid.UUID) ([]*types.SkillDependency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.SkillDependency
	for _, row := range f.rows {
		if row.SkillID != skillID {
			continue
		}
		// Mirror the production Preload("Prerequisite").
		if f.skills != nil {
			row.Prerequisite = f.skills.rows[row.PrerequisiteID]
		}
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeSkillDependencyRepo) FullDeleteBySkillAndPrerequisite(ctx context.Context, tx *gorm.DB, skillID, prerequisiteID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.rows[:0]
	for _, row := range f.rows {
		if row.SkillID == skillID && row.PrerequisiteID == prerequisiteID {
			continue
		}
		kept = append(kept, row)
	}
	f.rows = kept
	return nil
}

type fakeSkillEntryRepo struct {
	mu   sync.Mutex
	rows []*types.SkillEntry
}

func newFakeSkillEntryRepo() *fakeSkillEntryRepo {
	return &fakeSkillEntryRepo{}
}

func (f *fakeSkillEntryRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.SkillEntry) ([]*types.SkillEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, rows...)
	return rows, nil
}

func (f *fakeSkillEntryRepo) GetRecentBySkillID(ctx context.Context, tx *gorm.DB, skillID uuid.UUID, limit int) ([]*types.SkillEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.SkillEntry
	for _, row := range f.rows {
		if row.SkillID == skillID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func seedSkill(skills *fakeSkillRepo, userID uuid.UUID, progress int, totalHours float64, createdAt time.Time) *types.Skill {
	skill := &types.Skill{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         "test skill",
		Progress:     progress,
		TotalHours:   totalHours,
		CurrentLevel: types.LevelBeginner,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	skills.rows[skill.ID] = skill
	return skill
}
