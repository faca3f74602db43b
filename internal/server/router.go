package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hyppolabs/hyppo-backend/internal/handlers"
	"github.com/hyppolabs/hyppo-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	FeedHandler       *handlers.FeedHandler
	PostHandler       *handlers.PostHandler
	DebateHandler     *handlers.DebateHandler
	WeeklyHandler     *handlers.WeeklyHandler
	TagHandler        *handlers.TagHandler
	SuggestionHandler *handlers.SuggestionHandler
	ProfileHandler    *handlers.ProfileHandler
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
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Feed-Session"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	// Reads are open to anonymous visitors; a token only adds viewer state
	// like has_voted.
	public := router.Group("/")
	public.Use(cfg.AuthMiddleware.OptionalAuth())
	public.GET("/feed", cfg.FeedHandler.GetFeed)
	public.POST("/feed/more", cfg.FeedHandler.LoadMore)
	public.POST("/feed/expand", cfg.FeedHandler.Expand)
	public.POST("/feed/collapse", cfg.FeedHandler.Collapse)
	public.PUT("/feed/sort", cfg.FeedHandler.SetSort)
	public.GET("/debates", cfg.FeedHandler.ListDebates)
	public.GET("/debates/:id", cfg.DebateHandler.GetQuestion)
	public.GET("/posts/:id", cfg.PostHandler.Get)
	public.GET("/weekly", cfg.WeeklyHandler.List)
	public.GET("/weekly/:id", cfg.WeeklyHandler.Get)
	public.GET("/reflections/:id/comments", cfg.WeeklyHandler.ListReflectionComments)
	public.GET("/tags", cfg.TagHandler.List)
	public.GET("/profiles/:username", cfg.ProfileHandler.GetByUsername)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// Posts
	protected.POST("/posts", cfg.PostHandler.Create)
	protected.DELETE("/posts/:id", cfg.PostHandler.Delete)
	protected.POST("/posts/:id/comments", cfg.PostHandler.AddComment)
	protected.POST("/posts/:id/vote", cfg.PostHandler.ToggleVote)
	// Debates
	protected.POST("/debates", cfg.DebateHandler.CreateQuestion)
	protected.POST("/debates/:id/arguments", cfg.DebateHandler.AddArgument)
	protected.POST("/arguments/:id/counterarguments", cfg.DebateHandler.AddCounterargument)
	// Weekly
	protected.POST("/weekly", cfg.WeeklyHandler.Create)
	protected.POST("/weekly/:id/reflections", cfg.WeeklyHandler.AddReflection)
	protected.POST("/reflections/:id/comments", cfg.WeeklyHandler.AddReflectionComment)
	// Suggestions
	protected.POST("/suggestions", cfg.SuggestionHandler.Create)
	protected.GET("/suggestions", cfg.SuggestionHandler.List)

	return router
}
