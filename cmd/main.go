package main

import (
	"fmt"
	"os"
	"time"

	rediscache "github.com/yungbote/skillbridge-backend/internal/clients/redis"
	"github.com/yungbote/skillbridge-backend/internal/db"
	"github.com/yungbote/skillbridge-backend/internal/handlers"
	"github.com/yungbote/skillbridge-backend/internal/logger"
	"github.com/yungbote/skillbridge-backend/internal/middleware"
	"github.com/yungbote/skillbridge-backend/internal/repos"
	"github.com/yungbote/skillbridge-backend/internal/server"
	"github.com/yungbote/skillbridge-backend/internal/services"
	"github.com/yungbote/skillbridge-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	serverPort := utils.GetEnv("SERVER_PORT", "8080", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Redis (optional; insights fall back to computing every time)
	var cache rediscache.Cache
	if c, cErr := rediscache.NewCache(log); cErr != nil {
		log.Warn("Redis cache unavailable, insights will not be cached", "error", cErr)
	} else {
		cache = c
		defer cache.Close()
	}

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	skillRepo := repos.NewSkillRepo(thePG, log)
	skillLevelRepo := repos.NewSkillLevelRepo(thePG, log)
	skillMilestoneRepo := repos.NewSkillMilestoneRepo(thePG, log)
	skillDependencyRepo := repos.NewSkillDependencyRepo(thePG, log)
	skillEntryRepo := repos.NewSkillEntryRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	skillService := services.NewSkillService(log, skillRepo, skillEntryRepo)
	levelService := services.NewLevelService(log, skillRepo, skillLevelRepo)
	milestoneService := services.NewMilestoneService(log, skillRepo, skillMilestoneRepo)
	dependencyService := services.NewDependencyService(log, skillRepo, skillDependencyRepo)
	insightsService := services.NewInsightsService(log, skillRepo, skillMilestoneRepo, skillEntryRepo, cache)

	// Handlers
	log.Info("Setting up Handlers from main...")
	authHandler := handlers.NewAuthHandler(log, authService)
	skillHandler := handlers.NewSkillHandler(log, skillService, levelService)
	milestoneHandler := handlers.NewMilestoneHandler(log, milestoneService, levelService)
	dependencyHandler := handlers.NewDependencyHandler(log, dependencyService)
	insightsHandler := handlers.NewInsightsHandler(log, insightsService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:       authHandler,
		AuthMiddleware:    authMiddleware,
		SkillHandler:      skillHandler,
		MilestoneHandler:  milestoneHandler,
		DependencyHandler: dependencyHandler,
		InsightsHandler:   insightsHandler,
	})

	log.Info("Starting server...", "port", serverPort)
	if err := router.Run(":" + serverPort); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
