package api

import (
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/GloryMsasalaga/django-voice/api/audio"
	"github.com/GloryMsasalaga/django-voice/api/documents"
	"github.com/GloryMsasalaga/django-voice/api/health"
	"github.com/GloryMsasalaga/django-voice/api/scrape"
	"github.com/GloryMsasalaga/django-voice/api/search"
	"github.com/GloryMsasalaga/django-voice/api/types"
	"github.com/GloryMsasalaga/django-voice/api/version"
	"github.com/GloryMsasalaga/django-voice/api/voice"
	_ "github.com/GloryMsasalaga/django-voice/docs/swagger"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Public routes, no rate limiting
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.NoRoute(NotFoundHandler())

	v1 := engine.Group("/api/v1")

	// Document browsing gets the general rate limit (10 req/s, burst of 20)
	documentGroup := v1.Group("")
	documentGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	documents.RegisterRoutes(documentGroup, deps)

	// Search is the most expensive read path (5 req/s, burst of 10)
	searchGroup := v1.Group("/search")
	searchGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 5, 10))
	search.RegisterRoutes(searchGroup, deps)

	// Audio streaming allows seeking and replays (20 req/s, burst of 30)
	audioGroup := v1.Group("/audio")
	audioGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 20, 30))
	audio.RegisterRoutes(audioGroup, deps)

	// Voice commands get the general rate limit (10 req/s, burst of 20)
	voiceGroup := v1.Group("/voice")
	voiceGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	voice.RegisterRoutes(voiceGroup, deps)

	// Manual scrape triggers are nearly free to reject (1 req/s, burst of 2)
	scrapeGroup := v1.Group("/scrape")
	scrapeGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 1, 2))
	scrape.RegisterRoutes(scrapeGroup, deps)

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
