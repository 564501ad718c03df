package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mathpath/mathpath-backend/internal/config"
	"github.com/mathpath/mathpath-backend/internal/handler"
	"github.com/mathpath/mathpath-backend/internal/middleware"
	"github.com/mathpath/mathpath-backend/internal/response"
	"github.com/mathpath/mathpath-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Practice *handler.PracticeHandler
	Progress *handler.ProgressHandler
	Question *handler.QuestionHandler
	Media    *handler.MediaHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Serve question illustrations statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/student/signup", handlers.Auth.StudentSignup)
		auth.POST("/student/login", handlers.Auth.StudentLogin)
		auth.POST("/teacher/login", handlers.Auth.TeacherLogin)

		// Authenticated profile routes
		auth.POST("/student/logout", middleware.RequireStudentJWT(authService), handlers.Auth.StudentLogout)
		auth.GET("/student/me", middleware.RequireStudentJWT(authService), handlers.Auth.GetStudentProfile)
		auth.GET("/teacher/me", middleware.RequireTeacherJWT(authService), handlers.Auth.GetTeacherProfile)
	}

	// ─── 2. Practice Group (JWT + Single Device) ───────────────────────
	practiceAPI := router.Group("/api/v1/practice")
	practiceAPI.Use(
		middleware.RequireStudentJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		practiceAPI.GET("/chapters", handlers.Practice.ListChapters)
		practiceAPI.POST("/start", handlers.Practice.Start)
		practiceAPI.GET("/current", handlers.Practice.Current)
		practiceAPI.DELETE("/current", handlers.Practice.Abandon)
		practiceAPI.POST("/answer", handlers.Practice.Answer)
		practiceAPI.POST("/skip", handlers.Practice.Skip)
		practiceAPI.POST("/finish", handlers.Practice.Finish)
	}

	// ─── 3. Progress Group (JWT + Single Device) ───────────────────────
	progressAPI := router.Group("/api/v1/progress")
	progressAPI.Use(
		middleware.RequireStudentJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		progressAPI.GET("/history", handlers.Progress.History)
		progressAPI.GET("/mastery", handlers.Progress.Mastery)
		progressAPI.GET("/chart", handlers.Progress.Chart)
		progressAPI.GET("/overview", handlers.Progress.Overview)
	}

	// ─── 4. Authoring Group (Teacher JWT) ──────────────────────────────
	authoringAPI := router.Group("/api/v1/authoring")
	authoringAPI.Use(middleware.RequireTeacherJWT(authService))
	{
		authoringAPI.POST("/media", handlers.Media.Upload)

		authoringAPI.GET("/questions", handlers.Question.List)
		authoringAPI.POST("/questions", handlers.Question.Create)
		authoringAPI.GET("/questions/:id", handlers.Question.Get)
		authoringAPI.PUT("/questions/:id", handlers.Question.Update)
		authoringAPI.DELETE("/questions/:id", handlers.Question.Delete)
	}

	return router
}
