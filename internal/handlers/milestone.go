package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/skillbridge-backend/internal/logger"
	"github.com/yungbote/skillbridge-backend/internal/services"
)

type MilestoneHandler struct {
	log              *logger.Logger
	milestoneService services.MilestoneService
	levelService     services.LevelService
}

func NewMilestoneHandler(log *logger.Logger, milestoneService services.MilestoneService, levelService services.LevelService) *MilestoneHandler {
	handlerLog := log.With("handler", "MilestoneHandler")
	return &MilestoneHandler{log: handlerLog, milestoneService: milestoneService, levelService: levelService}
}

func milestoneIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("milestoneId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
		return uuid.Nil, false
	}
	return id, true
}

func (h *MilestoneHandler) List(c *gin.Context) {
	skillID, ok := skillIDParam(c)
	if !ok {
		return
	}
	milestones, err := h.milestoneService.List(c.Request.Context(), skillID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, milestones)
}

func (h *MilestoneHandler) Create(c *gin.Context) {
	skillID, ok := skillIDParam(c)
	if !ok {
		return
	}
	var body struct {
		Title      string `json:"title" binding:"required"`
		OrderIndex int    `json:"order_index"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
		return
	}
	milestone, err := h.milestoneService.Create(c.Request.Context(), skillID, body.Title, body.OrderIndex)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, milestone)
}

// Complete marks the milestone done (which recomputes progress) and then
// refreshes current_level, since progress just moved.
func (h *MilestoneHandler) Complete(c *gin.Context) {
	skillID, ok := skillIDParam(c)
	if !ok {
		return
	}
	milestoneID, ok := milestoneIDParam(c)
	if !ok {
		return
	}
	if err := h.milestoneService.Complete(c.Request.Context(), milestoneID); err != nil {
		RespondServiceError(c, err)
		return
	}
	if err := h.levelService.UpdateSkillLevel(c.Request.Context(), skillID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "completed"})
}

// Revert intentionally leaves progress (and therefore current_level)
// untouched; unchecking never lowers a skill automatically.
func (h *MilestoneHandler) Revert(c *gin.Context) {
	milestoneID, ok := milestoneIDParam(c)
	if !ok {
		return
	}
	if err := h.milestoneService.Revert(c.Request.Context(), milestoneID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "reverted"})
}

func (h *MilestoneHandler) Delete(c *gin.Context) {
	milestoneID, ok := milestoneIDParam(c)
	if !ok {
		return
	}
	if err := h.milestoneService.Delete(c.Request.Context(), milestoneID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "deleted"})
}
