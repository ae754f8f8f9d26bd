package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillbridge-backend/internal/logger"
	"github.com/yungbote/skillbridge-backend/internal/services"
)

type InsightsHandler struct {
	log             *logger.Logger
	insightsService services.InsightsService
}

func NewInsightsHandler(log *logger.Logger, insightsService services.InsightsService) *InsightsHandler {
	handlerLog := log.With("handler", "InsightsHandler")
	return &InsightsHandler{log: handlerLog, insightsService: insightsService}
}

func (h *InsightsHandler) Get(c *gin.Context) {
	skillID, ok := skillIDParam(c)
	if !ok {
		return
	}
	insights, err := h.insightsService.GetInsights(c.Request.Context(), skillID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, insights)
}
