package handlers

import (
	"github.com/gin-gonic/gin"
	"rev-shortener/config"
)

// RegisterRoutes sets up all the routes for the URL shortener service.
func RegisterRoutes(r *gin.Engine, handler URLHandlerInterface, config *config.Config) {
	r.Use(CORSMiddleware())

	var limit []gin.HandlerFunc
	if !config.DisableRateLimit {
		limit = append(limit, handler.RateLimitMiddleware())
	}
	limited := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, limit...), h)
	}

	v1 := r.Group("/api/v1", limit...)
	{
		short := v1.Group("/short")
		{
			short.POST("", handler.CreateShortURL)
			short.GET("/:short_url", handler.GetURLData)
		}
		v1.GET("/stats", handler.GetStats)
	}

	r.GET("/health", limited(handler.HealthCheck)...)

	// Redirection route (not under /api/v1 as it's user-facing)
	r.GET("/:short_url", limited(handler.RedirectURL)...)
}
