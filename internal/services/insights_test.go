package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/skillbridge-backend/internal/types"
)

// Fixed midday reference keeps calendar-day math away from midnight in
// the pure-helper tests.
var insightsNow = time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

func skillCreatedDaysAgo(now time.Time, days int, progress int) *types.Skill {
	return &types.Skill{
		ID:        uuid.New(),
		Progress:  progress,
		CreatedAt: now.Add(-time.Duration(days) * 24 * time.Hour),
	}
}

func TestVelocity_TenDaysFiftyPercent(t *testing.T) {
	now := time.Now()
	skill := &types.Skill{Progress: 50, CreatedAt: now.Add(-10 * 24 * time.Hour)}
	if got := velocityAt(skill, now); got != 5.0 {
		t.Fatalf("velocity = %v, want 5.0", got)
	}
}

func TestVelocity_FlooredAtOneDay(t *testing.T) {
	now := time.Now()
	skill := &types.Skill{Progress: 30, CreatedAt: now.Add(-2 * time.Hour)}
	if got := velocityAt(skill, now); got != 30.0 {
		t.Fatalf("velocity for a brand-new skill = %v, want 30.0 (one-day floor)", got)
	}
	zero := &types.Skill{Progress: 0, CreatedAt: now.Add(-100 * 24 * time.Hour)}
	if got := velocityAt(zero, now); got != 0 {
		t.Fatalf("velocity = %v, want 0 for zero progress", got)
	}
}

func TestEstimate_DaysBranch(t *testing.T) {
	now := time.Now()
	skill := &types.Skill{Progress: 50, CreatedAt: now.Add(-10 * 24 * time.Hour)}
	estimate, unit := estimateAt(skill, now)
	if unit != types.EstimateUnitDays {
		t.Fatalf("unit = %s, want days", unit)
	}
	if estimate != 10 {
		t.Fatalf("estimate = %v, want 10 days", estimate)
	}
}

func TestEstimate_SwitchesUnitsExactlyBelowOne(t *testing.T) {
	now := time.Now()
	estimated := 100.0

	// velocity = 1.0 exactly: still the days branch.
	atOne := &types.Skill{Progress: 10, TotalHours: 30, EstimatedHours: &estimated, CreatedAt: now.Add(-10 * 24 * time.Hour)}
	estimate, unit := estimateAt(atOne, now)
	if unit != types.EstimateUnitDays {
		t.Fatalf("unit at velocity 1.0 = %s, want days", unit)
	}
	if estimate != 90 {
		t.Fatalf("estimate at velocity 1.0 = %v, want 90 days", estimate)
	}

	// velocity = 0.9: hours fallback against the estimated target.
	belowOne := &types.Skill{Progress: 9, TotalHours: 30, EstimatedHours: &estimated, CreatedAt: now.Add(-10 * 24 * time.Hour)}
	estimate, unit = estimateAt(belowOne, now)
	if unit != types.EstimateUnitHours {
		t.Fatalf("unit at velocity 0.9 = %s, want hours", unit)
	}
	if estimate != 70 {
		t.Fatalf("estimate at velocity 0.9 = %v, want 70 hours", estimate)
	}
}

func TestEstimate_HoursBranchWithoutTarget(t *testing.T) {
	// Absent estimated_hours reads as zero; the fallback can go negative
	// and is served as-is.
	now := time.Now()
	skill := &types.Skill{Progress: 0, TotalHours: 12, CreatedAt: now.Add(-30 * 24 * time.Hour)}
	estimate, unit := estimateAt(skill, now)
	if unit != types.EstimateUnitHours {
		t.Fatalf("unit = %s, want hours", unit)
	}
	if estimate != -12 {
		t.Fatalf("estimate = %v, want -12", estimate)
	}
}

func TestPlateau_Window(t *testing.T) {
	now := time.Now()
	eightDays := now.Add(-8 * 24 * time.Hour)
	sixDays := now.Add(-6 * 24 * time.Hour)

	stale := &types.Skill{LastUpdated: &eightDays}
	if !plateauAt(stale, now) {
		t.Errorf("8 days stale should be a plateau")
	}
	fresh := &types.Skill{LastUpdated: &sixDays}
	if plateauAt(fresh, now) {
		t.Errorf("6 days stale should not be a plateau")
	}
	if plateauAt(&types.Skill{}, now) {
		t.Errorf("missing last_updated should not be a plateau")
	}
}

func TestConsistency_DistinctDaysOverLifetime(t *testing.T) {
	now := insightsNow
	skill := skillCreatedDaysAgo(now, 10, 50)

	var entries []*types.SkillEntry
	for _, age := range []time.Duration{
		25 * time.Hour, // day -1
		26 * time.Hour, // same day as above
		50 * time.Hour, // day -2
		75 * time.Hour, // day -3
	} {
		entries = append(entries, &types.SkillEntry{CreatedAt: now.Add(-age)})
	}

	got := consistencyAt(skill, entries, now)
	if got != 0.3 {
		t.Fatalf("consistency = %v, want 0.3 (3 distinct days / 10 days active)", got)
	}
}

func TestConsistency_SampleBoundedToThirtyEntries(t *testing.T) {
	now := insightsNow
	skill := skillCreatedDaysAgo(now, 40, 50)

	// 31 entries on 31 distinct days, newest first; only the newest 30
	// may count.
	var entries []*types.SkillEntry
	for i := 1; i <= 31; i++ {
		entries = append(entries, &types.SkillEntry{CreatedAt: now.Add(-time.Duration(i) * 24 * time.Hour)})
	}

	got := consistencyAt(skill, entries, now)
	if got != 0.75 {
		t.Fatalf("consistency = %v, want 0.75 (30 sampled days / 40 days active)", got)
	}
}

func TestFirstIncomplete(t *testing.T) {
	a := &types.SkillMilestone{OrderIndex: 0, IsCompleted: true}
	b := &types.SkillMilestone{OrderIndex: 1}
	c := &types.SkillMilestone{OrderIndex: 2}
	if got := firstIncomplete([]*types.SkillMilestone{a, b, c}); got != b {
		t.Fatalf("expected first incomplete milestone by order")
	}
	if got := firstIncomplete([]*types.SkillMilestone{a}); got != nil {
		t.Fatalf("expected nil when everything is completed")
	}
	if got := firstIncomplete(nil); got != nil {
		t.Fatalf("expected nil for no milestones")
	}
}

type insightsFixture struct {
	svc        InsightsService
	skills     *fakeSkillRepo
	milestones *fakeSkillMilestoneRepo
	entries    *fakeSkillEntryRepo
	cache      *fakeCache
}

func newInsightsFixture(withCache bool) *insightsFixture {
	skills := newFakeSkillRepo()
	milestones := newFakeSkillMilestoneRepo()
	entries := newFakeSkillEntryRepo()
	var cache *fakeCache
	f := &insightsFixture{skills: skills, milestones: milestones, entries: entries}
	if withCache {
		cache = newFakeCache()
		f.cache = cache
		f.svc = NewInsightsService(testLogger(), skills, milestones, entries, cache)
	} else {
		f.svc = NewInsightsService(testLogger(), skills, milestones, entries, nil)
	}
	return f
}

func TestGetInsights_Bundle(t *testing.T) {
	f := newInsightsFixture(false)
	userID := uuid.New()
	skill := seedSkill(f.skills, userID, 50, 20, time.Now().Add(-10*24*time.Hour))
	staleAt := time.Now().Add(-8 * 24 * time.Hour)
	skill.LastUpdated = &staleAt

	done := &types.SkillMilestone{ID: uuid.New(), SkillID: skill.ID, OrderIndex: 0, IsCompleted: true}
	todo := &types.SkillMilestone{ID: uuid.New(), SkillID: skill.ID, OrderIndex: 1}
	f.milestones.rows[done.ID] = done
	f.milestones.rows[todo.ID] = todo

	f.entries.rows = append(f.entries.rows, &types.SkillEntry{SkillID: skill.ID, CreatedAt: time.Now().Add(-25 * time.Hour)})

	insights, err := f.svc.GetInsights(context.Background(), skill.ID)
	if err != nil {
		t.Fatalf("GetInsights: %v", err)
	}
	if insights.SkillID != skill.ID {
		t.Errorf("skill id = %s, want %s", insights.SkillID, skill.ID)
	}
	if insights.Velocity != 5.0 {
		t.Errorf("velocity = %v, want 5.0", insights.Velocity)
	}
	if insights.Consistency != 0.1 {
		t.Errorf("consistency = %v, want 0.1", insights.Consistency)
	}
	if !insights.PlateauDetected {
		t.Errorf("expected plateau at 8 days stale")
	}
	if insights.NextMilestone == nil || insights.NextMilestone.ID != todo.ID {
		t.Errorf("next milestone wrong: %+v", insights.NextMilestone)
	}
	if insights.EstimateUnit != types.EstimateUnitDays || insights.EstimatedToCompletion != 10 {
		t.Errorf("estimate = %v %s, want 10 days", insights.EstimatedToCompletion, insights.EstimateUnit)
	}
}

func TestGetInsights_MissingSkill(t *testing.T) {
	f := newInsightsFixture(false)
	if _, err := f.svc.GetInsights(context.Background(), uuid.New()); !errorsIsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetInsights_ServedFromCache(t *testing.T) {
	f := newInsightsFixture(true)
	skill := seedSkill(f.skills, uuid.New(), 50, 0, time.Now().Add(-10*24*time.Hour))

	if _, err := f.svc.GetInsights(context.Background(), skill.ID); err != nil {
		t.Fatalf("first GetInsights: %v", err)
	}
	if f.cache.sets != 1 {
		t.Fatalf("expected one cache fill, got %d", f.cache.sets)
	}

	// Progress moves, but within the TTL the cached bundle is returned.
	f.skills.rows[skill.ID].Progress = 90
	second, err := f.svc.GetInsights(context.Background(), skill.ID)
	if err != nil {
		t.Fatalf("second GetInsights: %v", err)
	}
	if second.Velocity != 5.0 {
		t.Fatalf("expected cached velocity 5.0, got %v", second.Velocity)
	}
	if f.cache.sets != 1 {
		t.Fatalf("cache refilled on a hit: %d sets", f.cache.sets)
	}
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *fakeCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	c.sets++
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.data, key)
	}
	return nil
}

func (c *fakeCache) Close() error { return nil }
