package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/skillbridge-backend/internal/types"
)

func newLevelFixture(progress int, totalHours float64) (LevelService, *fakeSkillRepo, *types.Skill) {
	skills := newFakeSkillRepo()
	levels := newFakeSkillLevelRepo()
	skill := seedSkill(skills, uuid.New(), progress, totalHours, time.Now().Add(-24*time.Hour))
	return NewLevelService(testLogger(), skills, levels), skills, skill
}

func TestGetLevels_CreatesDefaultLadder(t *testing.T) {
	svc, _, skill := newLevelFixture(0, 0)
	ctx := context.Background()

	levels, err := svc.GetLevels(ctx, skill.ID)
	if err != nil {
		t.Fatalf("GetLevels: %v", err)
	}
	if len(levels) != 5 {
		t.Fatalf("expected 5 levels, got %d", len(levels))
	}

	want := []struct {
		levelType string
		min, max  int
		hours     float64
	}{
		{types.LevelBeginner, 0, 20, 0},
		{types.LevelNovice, 20, 40, 5},
		{types.LevelIntermediate, 40, 70, 20},
		{types.LevelAdvanced, 70, 90, 50},
		{types.LevelExpert, 90, 100, 100},
	}
	for i, w := range want {
		got := levels[i]
		if got.LevelType != w.levelType || got.MinProgress != w.min || got.MaxProgress != w.max || got.RequiredHours != w.hours {
			t.Errorf("level %d = %s [%d,%d) %vh, want %s [%d,%d) %vh",
				i, got.LevelType, got.MinProgress, got.MaxProgress, got.RequiredHours, w.levelType, w.min, w.max, w.hours)
		}
		if got.SkillID != skill.ID {
			t.Errorf("level %d has skill id %s, want %s", i, got.SkillID, skill.ID)
		}
	}
}

func TestGetLevels_IdempotentAfterFirstCreation(t *testing.T) {
	svc, _, skill := newLevelFixture(0, 0)
	ctx := context.Background()

	first, err := svc.GetLevels(ctx, skill.ID)
	if err != nil {
		t.Fatalf("first GetLevels: %v", err)
	}
	second, err := svc.GetLevels(ctx, skill.ID)
	if err != nil {
		t.Fatalf("second GetLevels: %v", err)
	}
	if len(second) != 5 {
		t.Fatalf("expected 5 levels on second read, got %d", len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("level %d recreated: %s != %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestGetLevels_MissingSkill(t *testing.T) {
	svc, _, _ := newLevelFixture(0, 0)
	if _, err := svc.GetLevels(context.Background(), uuid.New()); !errorsIsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClassifyProgress_DefaultLadder(t *testing.T) {
	svc, _, skill := newLevelFixture(0, 0)
	levels, err := svc.GetLevels(context.Background(), skill.ID)
	if err != nil {
		t.Fatalf("GetLevels: %v", err)
	}

	cases := []struct {
		progress int
		want     string
	}{
		{0, types.LevelBeginner},
		{10, types.LevelBeginner},
		{19, types.LevelBeginner},
		{20, types.LevelNovice},
		{39, types.LevelNovice},
		{40, types.LevelIntermediate},
		{69, types.LevelIntermediate},
		{70, types.LevelAdvanced},
		{89, types.LevelAdvanced},
		{90, types.LevelExpert},
		{95, types.LevelExpert},
		{100, types.LevelExpert},
	}
	for _, c := range cases {
		if got := svc.ClassifyProgress(c.progress, levels); got != c.want {
			t.Errorf("ClassifyProgress(%d) = %s, want %s", c.progress, got, c.want)
		}
	}
}

func TestClassifyProgress_EmptyLadderFallsBackToBeginner(t *testing.T) {
	svc, _, _ := newLevelFixture(0, 0)
	if got := svc.ClassifyProgress(55, nil); got != types.LevelBeginner {
		t.Fatalf("ClassifyProgress with no levels = %s, want %s", got, types.LevelBeginner)
	}
}

func TestUpdateSkillLevel_PersistsClassification(t *testing.T) {
	svc, skills, skill := newLevelFixture(95, 0)
	ctx := context.Background()

	if err := svc.UpdateSkillLevel(ctx, skill.ID); err != nil {
		t.Fatalf("UpdateSkillLevel: %v", err)
	}
	if got := skills.rows[skill.ID].CurrentLevel; got != types.LevelExpert {
		t.Fatalf("current_level = %s, want %s", got, types.LevelExpert)
	}
}

func TestNextLevelGap_MidLadder(t *testing.T) {
	svc, _, skill := newLevelFixture(50, 10)
	gap, err := svc.NextLevelGap(context.Background(), skill.ID)
	if err != nil {
		t.Fatalf("NextLevelGap: %v", err)
	}
	if !gap.HasNext {
		t.Fatalf("expected a next level at progress 50")
	}
	if gap.CurrentLevel.LevelType != types.LevelIntermediate {
		t.Errorf("current = %s, want %s", gap.CurrentLevel.LevelType, types.LevelIntermediate)
	}
	if gap.NextLevel.LevelType != types.LevelAdvanced {
		t.Errorf("next = %s, want %s", gap.NextLevel.LevelType, types.LevelAdvanced)
	}
	if gap.HoursNeeded != 40 {
		t.Errorf("hours needed = %v, want 40", gap.HoursNeeded)
	}
	if gap.ProgressNeeded != 20 {
		t.Errorf("progress needed = %d, want 20", gap.ProgressNeeded)
	}
}

func TestNextLevelGap_HoursClampedAtZero(t *testing.T) {
	svc, _, skill := newLevelFixture(50, 60)
	gap, err := svc.NextLevelGap(context.Background(), skill.ID)
	if err != nil {
		t.Fatalf("NextLevelGap: %v", err)
	}
	if gap.HoursNeeded != 0 {
		t.Fatalf("hours needed = %v, want 0 (total hours already past the requirement)", gap.HoursNeeded)
	}
}

func TestNextLevelGap_FinalTier(t *testing.T) {
	svc, _, skill := newLevelFixture(95, 0)
	gap, err := svc.NextLevelGap(context.Background(), skill.ID)
	if err != nil {
		t.Fatalf("NextLevelGap: %v", err)
	}
	if gap.HasNext {
		t.Fatalf("expected no next level at progress 95")
	}
	if gap.CurrentLevel == nil || gap.CurrentLevel.LevelType != types.LevelExpert {
		t.Fatalf("expected expert as current level")
	}
	if gap.HoursNeeded != 0 || gap.ProgressNeeded != 0 {
		t.Fatalf("expected zero gaps in final tier, got %v hours / %d progress", gap.HoursNeeded, gap.ProgressNeeded)
	}
}

func TestNextLevelGap_ProgressOneHundredMatchesNoRange(t *testing.T) {
	// 100 sits outside every half-open range, so the ascending containment
	// scan finds nothing: no current level and no next.
	svc, _, skill := newLevelFixture(100, 0)
	gap, err := svc.NextLevelGap(context.Background(), skill.ID)
	if err != nil {
		t.Fatalf("NextLevelGap: %v", err)
	}
	if gap.HasNext {
		t.Fatalf("expected no next level at progress 100")
	}
	if gap.CurrentLevel != nil {
		t.Fatalf("expected no containing level at progress 100, got %s", gap.CurrentLevel.LevelType)
	}
}
