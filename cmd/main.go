package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hyppolabs/hyppo-backend/internal/cache"
	"github.com/hyppolabs/hyppo-backend/internal/db"
	"github.com/hyppolabs/hyppo-backend/internal/handlers"
	"github.com/hyppolabs/hyppo-backend/internal/logger"
	"github.com/hyppolabs/hyppo-backend/internal/middleware"
	"github.com/hyppolabs/hyppo-backend/internal/repos"
	"github.com/hyppolabs/hyppo-backend/internal/server"
	"github.com/hyppolabs/hyppo-backend/internal/services"
	"github.com/hyppolabs/hyppo-backend/internal/utils"
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
	port := utils.GetEnv("PORT", "8080", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	profileRepo := repos.NewProfileRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	postRepo := repos.NewPostRepo(thePG, log)
	postUpvoteRepo := repos.NewPostUpvoteRepo(thePG, log)
	postCommentRepo := repos.NewPostCommentRepo(thePG, log)
	tagRepo := repos.NewTagRepo(thePG, log)
	debateQuestionRepo := repos.NewDebateQuestionRepo(thePG, log)
	debateArgumentRepo := repos.NewDebateArgumentRepo(thePG, log)
	debateCounterRepo := repos.NewDebateCounterargumentRepo(thePG, log)
	weeklyPostRepo := repos.NewWeeklyPostRepo(thePG, log)
	weeklyReflectionRepo := repos.NewWeeklyReflectionRepo(thePG, log)
	weeklyReflectionCommentRepo := repos.NewWeeklyReflectionCommentRepo(thePG, log)
	suggestionRepo := repos.NewSuggestionRepo(thePG, log)

	// Redis count cache, optional: without REDIS_ADDR every stance count
	// goes straight to Postgres.
	var countCache cache.CountCache
	if os.Getenv("REDIS_ADDR") != "" {
		countCache, err = cache.NewCountCache(log)
		if err != nil {
			log.Warn("Count cache unavailable, continuing without it", "error", err)
			countCache = nil
		}
	}
	if countCache != nil {
		defer countCache.Close()
	}

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(thePG, log, profileRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	feedService := services.NewFeedService(thePG, log, postRepo, debateQuestionRepo, debateArgumentRepo, countCache)
	voteService := services.NewVoteService(thePG, log, postRepo, postUpvoteRepo)
	postService := services.NewPostService(thePG, log, postRepo, tagRepo, postCommentRepo, postUpvoteRepo)
	debateService := services.NewDebateService(thePG, log, debateQuestionRepo, debateArgumentRepo, debateCounterRepo, countCache)
	weeklyService := services.NewWeeklyService(thePG, log, weeklyPostRepo, weeklyReflectionRepo, weeklyReflectionCommentRepo)
	tagService := services.NewTagService(thePG, log, tagRepo)
	suggestionService := services.NewSuggestionService(thePG, log, suggestionRepo)
	profileService := services.NewProfileService(thePG, log, profileRepo, postRepo)

	// Handlers
	log.Info("Setting up Handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	feedHandler := handlers.NewFeedHandler(log, feedService)
	postHandler := handlers.NewPostHandler(postService, voteService)
	debateHandler := handlers.NewDebateHandler(debateService)
	weeklyHandler := handlers.NewWeeklyHandler(weeklyService)
	tagHandler := handlers.NewTagHandler(tagService)
	suggestionHandler := handlers.NewSuggestionHandler(suggestionService)
	profileHandler := handlers.NewProfileHandler(profileService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:       authHandler,
		AuthMiddleware:    authMiddleware,
		FeedHandler:       feedHandler,
		PostHandler:       postHandler,
		DebateHandler:     debateHandler,
		WeeklyHandler:     weeklyHandler,
		TagHandler:        tagHandler,
		SuggestionHandler: suggestionHandler,
		ProfileHandler:    profileHandler,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
