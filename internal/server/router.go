package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillbridge-backend/internal/handlers"
	"github.com/yungbote/skillbridge-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	SkillHandler      *handlers.SkillHandler
	MilestoneHandler  *handlers.MilestoneHandler
	DependencyHandler *handlers.DependencyHandler
	InsightsHandler   *handlers.InsightsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	router.POST("/refresh", cfg.AuthHandler.Refresh)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// Skills
	protected.POST("/skills", cfg.SkillHandler.Create)
	protected.GET("/skills", cfg.SkillHandler.List)
	protected.GET("/skills/:id", cfg.SkillHandler.Get)
	protected.DELETE("/skills/:id", cfg.SkillHandler.Delete)
	protected.PATCH("/skills/:id/progress", cfg.SkillHandler.UpdateProgress)
	protected.PATCH("/skills/:id/hours", cfg.SkillHandler.AddHours)
	protected.POST("/skills/:id/entries", cfg.SkillHandler.LogEntry)
	// Levels
	protected.GET("/skills/:id/levels", cfg.SkillHandler.GetLevels)
	protected.GET("/skills/:id/next-level", cfg.SkillHandler.NextLevelGap)
	// Milestones
	protected.GET("/skills/:id/milestones", cfg.MilestoneHandler.List)
	protected.POST("/skills/:id/milestones", cfg.MilestoneHandler.Create)
	protected.POST("/skills/:id/milestones/:milestoneId/complete", cfg.MilestoneHandler.Complete)
	protected.POST("/skills/:id/milestones/:milestoneId/revert", cfg.MilestoneHandler.Revert)
	protected.DELETE("/skills/:id/milestones/:milestoneId", cfg.MilestoneHandler.Delete)
	// Dependencies
	protected.GET("/skills/:id/dependencies", cfg.DependencyHandler.List)
	protected.POST("/skills/:id/dependencies", cfg.DependencyHandler.Add)
	protected.DELETE("/skills/:id/dependencies/:prerequisiteId", cfg.DependencyHandler.Remove)
	protected.GET("/skills/:id/prerequisites-met", cfg.DependencyHandler.PrerequisitesMet)
	// Insights
	protected.GET("/skills/:id/insights", cfg.InsightsHandler.Get)

	return router
}
