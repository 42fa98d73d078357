package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/clipper-api/api/admin"
	authHandlers "github.com/killallgit/clipper-api/api/auth"
	"github.com/killallgit/clipper-api/api/clips"
	"github.com/killallgit/clipper-api/api/health"
	"github.com/killallgit/clipper-api/api/types"
	"github.com/killallgit/clipper-api/api/version"
	"github.com/killallgit/clipper-api/api/video"
	_ "github.com/killallgit/clipper-api/docs/swagger"
	"github.com/killallgit/clipper-api/internal/services/auth"
	"github.com/killallgit/clipper-api/pkg/config"
)

// Rate limit rule names under rate_limiting.endpoints
const (
	LimitClipsCreate = "clips_create"
	LimitDefault     = "default"
)

var defaultRules = map[string]config.RateLimitRule{
	LimitClipsCreate: {RPS: 1, Burst: 5},
	LimitDefault:     {RPS: 10, Burst: 20},
}

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	if deps == nil || deps.Auth == nil || deps.ClipService == nil || deps.VideoService == nil {
		return fmt.Errorf("api dependencies are incomplete")
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	limiter := func(name string) gin.HandlerFunc {
		if !cfg.RateLimiting.Enabled {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := cfg.RateLimiting.Endpoints[name]
		if !ok || rule.RPS <= 0 {
			rule = defaultRules[name]
		}
		return PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, name, rule.RPS, rule.Burst)
	}

	authHandler := authHandlers.NewHandler(deps.Auth)

	// API v1 routes, all authenticated
	v1 := engine.Group("/api/v1")
	v1.Use(limiter(LimitDefault), authHandler.AuthMiddleware())

	v1.GET("/me", authHandler.Me)

	video.RegisterRoutes(v1.Group("/video"), deps)

	// Clip creation has its own limit on top of the default one
	clips.RegisterRoutes(v1.Group("/clips"), deps, limiter(LimitClipsCreate))

	adminGroup := v1.Group("/admin")
	adminGroup.Use(authHandler.RequireRole(auth.RoleAdmin))
	admin.RegisterRoutes(adminGroup, deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
