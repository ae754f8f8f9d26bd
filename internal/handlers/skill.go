package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/skillbridge-backend/internal/logger"
	"github.com/yungbote/skillbridge-backend/internal/services"
)

type SkillHandler struct {
	log          *logger.Logger
	skillService services.SkillService
	levelService services.LevelService
}

func NewSkillHandler(log *logger.Logger, skillService services.SkillService, levelService services.LevelService) *SkillHandler {
	handlerLog := log.With("handler", "SkillHandler")
	return &SkillHandler{log: handlerLog, skillService: skillService, levelService: levelService}
}

func skillIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
		return uuid.Nil, false
	}
	return id, true
}

func (h *SkillHandler) Create(c *gin.Context) {
	var body struct {
		Name           string   `json:"name" binding:"required"`
		Description    string   `json:"description"`
		Category       string   `json:"category"`
		EstimatedHours *float64 `json:"estimated_hours"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
		return
	}
	skill, err := h.skillService.CreateSkill(c.Request.Context(), body.Name, body.Description, body.Category, body.EstimatedHours)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, skill)
}

func (h *SkillHandler) Get(c *gin.Context) {
	id, ok := skillIDParam(c)
	if !ok {
		return
	}
	skill, err := h.skillService.GetSkill(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, skill)
}

func (h *SkillHandler) List(c *gin.Context) {
	skills, err := h.skillService.ListSkills(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, skills)
}

// UpdateProgress sets progress manually, then refreshes current_level.
// The level refresh is the caller's duty, not the engine's; this handler
// is that caller.
func (h *SkillHandler) UpdateProgress(c *gin.Context) {
	id, ok := skillIDParam(c)
	if !ok {
		return
	}
	var body struct {
		Progress *int `json:"progress" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
		return
	}
	skill, err := h.skillService.UpdateProgress(c.Request.Context(), id, *body.Progress)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if err := h.levelService.UpdateSkillLevel(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, skill)
}

func (h *SkillHandler) AddHours(c *gin.Context) {
	id, ok := skillIDParam(c)
	if !ok {
		return
	}
	var body struct {
		Hours *float64 `json:"hours" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
		return
	}
	skill, err := h.skillService.AddHours(c.Request.Context(), id, *body.Hours)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, skill)
}

func (h *SkillHandler) LogEntry(c *gin.Context) {
	id, ok := skillIDParam(c)
	if !ok {
		return
	}
	var body struct {
		Note  string  `json:"note"`
		Hours float64 `json:"hours"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
		return
	}
	entry, err := h.skillService.LogEntry(c.Request.Context(), id, body.Note, body.Hours)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, entry)
}

func (h *SkillHandler) Delete(c *gin.Context) {
	id, ok := skillIDParam(c)
	if !ok {
		return
	}
	if err := h.skillService.DeleteSkill(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "deleted"})
}

func (h *SkillHandler) GetLevels(c *gin.Context) {
	id, ok := skillIDParam(c)
	if !ok {
		return
	}
	levels, err := h.levelService.GetLevels(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, levels)
}

func (h *SkillHandler) NextLevelGap(c *gin.Context) {
	id, ok := skillIDParam(c)
	if !ok {
		return
	}
	gap, err := h.levelService.NextLevelGap(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gap)
}
