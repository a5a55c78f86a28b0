package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/vgokul27/Recipe-API/internal/middleware"
	"github.com/vgokul27/Recipe-API/internal/service"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Recipe API is running",
		"version": "v1.0.0",
	})
}

// RegisterRoutes registers all API routes. redisClient may be nil; the
// service then runs without rate limiting.
func RegisterRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.Client) {
	router.GET("/health", HealthCheck)

	var limiter *middleware.RateLimiter
	if redisClient != nil {
		limiter = middleware.NewSearchRateLimiter(redisClient)
	}

	recipeHandler := NewRecipeHandler(service.NewRecipeService(db), limiter)
	recipeHandler.RegisterRoutes(router.Group(""))
}
