package routes

import (
	"context"
	"net/http"
	"time"

	"portfolio-api/internal/auth"
	"portfolio-api/internal/database"
	"portfolio-api/internal/handlers"
	"portfolio-api/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options are the pieces SetupRoutes wires together.
type Options struct {
	Handler        *handlers.Handler
	Tokens         *auth.Tokens
	DB             *gorm.DB
	Logger         *zap.Logger
	CORSOrigin     string
	ContactLimiter *middleware.RateLimiter
}

func SetupRoutes(opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.CORSOrigin == "" {
		opts.CORSOrigin = "*"
	}
	if opts.ContactLimiter == nil {
		opts.ContactLimiter = middleware.NewRateLimiter(5, 3)
	}
	h := opts.Handler

	// Create a new GIN Router
	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery(), middleware.RequestLogger(opts.Logger))

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", opts.CORSOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Expose-Headers", handlers.CacheSourceHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Portfolio API is running",
		})
	})
	// Readiness: the database must answer
	ginRouter.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := database.Ping(ctx, opts.DB); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))
	ginRouter.GET("/feed.xml", h.GetFeed)

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.GET("/user/profile", h.GetProfile)
		api.GET("/projects", h.GetPublishedProjects)
		api.GET("/projects/:slug", h.GetProjectBySlug)
		api.GET("/skills", h.GetSkills)
		api.GET("/skills/:id", h.GetSkill)
		api.GET("/experience", h.GetExperience)
		api.GET("/experience/:id", h.GetExperienceByID)

		pages := api.Group("/pages")
		pages.GET("/home", h.GetHomePage)
		pages.GET("/about", h.GetAboutPage)
		pages.GET("/projects", h.GetProjectsPage)
		pages.GET("/services", h.GetServicesPage)

		api.POST("/contact", middleware.RateLimitByIP(opts.ContactLimiter), h.Contact)
		api.GET("/ws", h.PublicWebSocket)

		api.POST("/admin/login", h.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware(opts.Tokens))
	{
		// Skill and experience writes share their public read paths
		protectedRoutes.POST("/skills", h.CreateSkill)
		protectedRoutes.PUT("/skills/:id", h.UpdateSkill)
		protectedRoutes.DELETE("/skills/:id", h.DeleteSkill)
		protectedRoutes.POST("/experience", h.CreateExperience)
		protectedRoutes.PUT("/experience/:id", h.UpdateExperience)
		protectedRoutes.DELETE("/experience/:id", h.DeleteExperience)

		admin := protectedRoutes.Group("/admin")
		admin.PUT("/profile", h.UpdateProfile)
		admin.GET("/projects", h.GetAllProjects)
		admin.POST("/projects", h.CreateProject)
		admin.GET("/projects/:id", h.GetProject)
		admin.PUT("/projects/:id", h.UpdateProject)
		admin.DELETE("/projects/:id", h.DeleteProject)
		admin.GET("/messages", h.GetMessages)
		admin.PATCH("/messages/:id/status", h.UpdateMessageStatus)
		admin.DELETE("/messages/:id", h.DeleteMessage)
		admin.GET("/stats", h.GetStats)
		admin.POST("/cache", h.ClearCache)
		admin.GET("/ws", h.AdminWebSocket)
	}

	return ginRouter
}
