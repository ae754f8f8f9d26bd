package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/skillbridge-backend/internal/logger"
	"github.com/yungbote/skillbridge-backend/internal/services"
)

type DependencyHandler struct {
	log               *logger.Logger
	dependencyService services.DependencyService
}

func NewDependencyHandler(log *logger.Logger, dependencyService services.DependencyService) *DependencyHandler {
	handlerLog := log.With("handler", "DependencyHandler")
	return &DependencyHandler{log: handlerLog, dependencyService: dependencyService}
}

func (h *DependencyHandler) List(c *gin.Context) {
	skillID, ok := skillIDParam(c)
	if !ok {
		return
	}
	deps, err := h.dependencyService.List(c.Request.Context(), skillID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, deps)
}

func (h *DependencyHandler) Add(c *gin.Context) {
	skillID, ok := skillIDParam(c)
	if !ok {
		return
	}
	var body struct {
		PrerequisiteID string `json:"prerequisite_id" binding:"required"`
		IsRequired     *bool  `json:"is_required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
		return
	}
	prerequisiteID, err := uuid.Parse(body.PrerequisiteID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
		return
	}
	isRequired := true
	if body.IsRequired != nil {
		isRequired = *body.IsRequired
	}
	dep, err := h.dependencyService.Add(c.Request.Context(), skillID, prerequisiteID, isRequired)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, dep)
}

func (h *DependencyHandler) Remove(c *gin.Context) {
	skillID, ok := skillIDParam(c)
	if !ok {
		return
	}
	prerequisiteID, err := uuid.Parse(c.Param("prerequisiteId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
		return
	}
	if err := h.dependencyService.Remove(c.Request.Context(), skillID, prerequisiteID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "removed"})
}

func (h *DependencyHandler) PrerequisitesMet(c *gin.Context) {
	skillID, ok := skillIDParam(c)
	if !ok {
		return
	}
	met, err := h.dependencyService.ArePrerequisitesMet(c.Request.Context(), skillID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"prerequisites_met": met})
}
