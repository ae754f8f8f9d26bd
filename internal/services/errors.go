package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/skillbridge-backend/internal/repos"
	"github.com/yungbote/skillbridge-backend/internal/requestdata"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

// Service error taxonomy. Store errors are wrapped and surfaced verbatim;
// nothing below is retried or repaired at this layer.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
)

// currentUserID pulls the authenticated user out of the request context.
func currentUserID(ctx context.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, ErrNotAuthenticated
	}
	return rd.UserID, nil
}

// getSkill fetches one skill and normalizes "missing" into ErrNotFound so
// every service reports absence the same way.
func getSkill(ctx context.Context, skillRepo repos.SkillRepo, id uuid.UUID) (*types.Skill, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("skill %s: %w", id, ErrNotFound)
	}
	found, err := skillRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("fetching skill: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, fmt.Errorf("skill %s: %w", id, ErrNotFound)
	}
	return found[0], nil
}
